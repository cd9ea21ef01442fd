package ast

// Node is the minimal surface the evaluator needs from any parse-tree node:
// a byte-offset span and a parent pointer for scope/constraint walks. The
// tokenizer and parser are external collaborators (§1) — they populate
// these fields; the evaluator never mutates Span and only reads Parent.
type Node interface {
	Span() Span
	GetParent() Node
	SetParent(Node)
	Accept(Visitor)
}

// baseNode is embedded by every concrete node and supplies the Node plumbing
// so each variant only has to declare its own fields.
type baseNode struct {
	span   Span
	parent Node
}

func (n *baseNode) Span() Span       { return n.span }
func (n *baseNode) GetParent() Node  { return n.parent }
func (n *baseNode) SetParent(p Node) { n.parent = p }

// Visitor is the double-dispatch hook used by tree walks (the narrowing
// glue needs to find an expression's enclosing statement/function; tests
// walk trees to assert shapes). Concrete visitors embed BaseVisitor and
// override only the methods they care about.
type Visitor interface {
	EnterExpr(Expr) bool
	ExitExpr(Expr)
}

// BaseVisitor is a no-op Visitor; embed it to avoid implementing every
// method.
type BaseVisitor struct{}

func (BaseVisitor) EnterExpr(Expr) bool { return true }
func (BaseVisitor) ExitExpr(Expr)       {}

// Walk visits e and, if the visitor's EnterExpr returns true, its children.
func Walk(v Visitor, e Expr) {
	if e == nil {
		return
	}
	if !v.EnterExpr(e) {
		return
	}
	for _, child := range e.Children() {
		Walk(v, child)
	}
	v.ExitExpr(e)
}


