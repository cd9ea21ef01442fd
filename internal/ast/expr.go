package ast

//sumtype:decl
// Expr is the closed set of expression node kinds the dispatcher (C5)
// switches on. New kinds must be added to this interface, given an isExpr
// marker, and given an exhaustive case in every `switch expr := e.(type)`
// in the evaluator — the Go compiler won't check exhaustiveness for us,
// but a lint pass (`go vet`-adjacent) over missing cases is cheap to add
// later; until then the dispatcher's default arm reports an "Unhandled
// expression type" error diagnostic and returns Unknown, matching the
// source's fallback philosophy from §9.
type Expr interface {
	Node
	isExpr()
	Children() []Expr
}

func (*NameExpr) isExpr()           {}
func (*MemberAccessExpr) isExpr()   {}
func (*IndexExpr) isExpr()          {}
func (*CallExpr) isExpr()           {}
func (*TupleExpr) isExpr()          {}
func (*ListExpr) isExpr()           {}
func (*SetExpr) isExpr()            {}
func (*DictExpr) isExpr()           {}
func (*UnaryOpExpr) isExpr()        {}
func (*BinaryOpExpr) isExpr()       {}
func (*TernaryExpr) isExpr()        {}
func (*AwaitExpr) isExpr()          {}
func (*YieldExpr) isExpr()          {}
func (*YieldFromExpr) isExpr()      {}
func (*LambdaExpr) isExpr()         {}
func (*ComprehensionExpr) isExpr()  {}
func (*SliceExpr) isExpr()          {}
func (*AssignmentExpr) isExpr()     {}
func (*TypeAnnotationExpr) isExpr() {}
func (*ConstantExpr) isExpr()       {}
func (*NumberLitExpr) isExpr()      {}
func (*StringLitExpr) isExpr()      {}

// NameExpr is a bare identifier reference, resolved via Scope.lookUpRecursive.
type NameExpr struct {
	baseNode
	Name string
}

func NewNameExpr(name string, span Span) *NameExpr {
	return &NameExpr{baseNode: baseNode{span: span}, Name: name}
}
func (e *NameExpr) Accept(v Visitor) { Walk(v, e) }
func (e *NameExpr) Children() []Expr { return nil }

// MemberUsage is how a member expression is being evaluated: read, written,
// or deleted (§4.2's `usage` parameter to getMember).
type MemberUsage int

const (
	MemberGet MemberUsage = iota
	MemberSet
	MemberDelete
)

// MemberAccessExpr is `Object.Name`.
type MemberAccessExpr struct {
	baseNode
	Object Expr
	Name   string
}

func NewMemberAccessExpr(object Expr, name string, span Span) *MemberAccessExpr {
	return &MemberAccessExpr{baseNode: baseNode{span: span}, Object: object, Name: name}
}
func (e *MemberAccessExpr) Accept(v Visitor) { Walk(v, e) }
func (e *MemberAccessExpr) Children() []Expr { return []Expr{e.Object} }

// IndexExpr is `Object[Index]` — a subscription. On a Class this is generic
// specialization (C6); on other bases it is the stubbed-out Subscription
// rule in §4.4.
type IndexExpr struct {
	baseNode
	Object Expr
	Index  Expr
}

func NewIndexExpr(object, index Expr, span Span) *IndexExpr {
	return &IndexExpr{baseNode: baseNode{span: span}, Object: object, Index: index}
}
func (e *IndexExpr) Accept(v Visitor) { Walk(v, e) }
func (e *IndexExpr) Children() []Expr { return []Expr{e.Object, e.Index} }

// ArgCategory mirrors FunctionArgument.category (§3): a plain positional or
// keyword argument, a `*`-unpacked list argument, or a `**`-unpacked
// dictionary argument.
type ArgCategory int

const (
	ArgSimple ArgCategory = iota
	ArgList
	ArgDictionary
)

// Argument is one call-site argument. Name is non-nil for `name=value`
// keyword arguments.
type Argument struct {
	Value    Expr
	Category ArgCategory
	Name     *NameExpr
	span     Span
}

func NewArgument(value Expr, category ArgCategory, name *NameExpr, span Span) *Argument {
	return &Argument{Value: value, Category: category, Name: name, span: span}
}
func (a *Argument) Span() Span { return a.span }

// CallExpr is `Callee(Args...)`.
type CallExpr struct {
	baseNode
	Callee Expr
	Args   []*Argument
}

func NewCallExpr(callee Expr, args []*Argument, span Span) *CallExpr {
	return &CallExpr{baseNode: baseNode{span: span}, Callee: callee, Args: args}
}
func (e *CallExpr) Accept(v Visitor) { Walk(v, e) }
func (e *CallExpr) Children() []Expr {
	children := make([]Expr, 0, len(e.Args)+1)
	children = append(children, e.Callee)
	for _, a := range e.Args {
		children = append(children, a.Value)
	}
	return children
}

// TupleExpr, ListExpr, SetExpr are the three homogeneous-container literal
// forms (§4.4); each is specialized by the combined element type.
type TupleExpr struct {
	baseNode
	Elems []Expr
}

func NewTupleExpr(elems []Expr, span Span) *TupleExpr {
	return &TupleExpr{baseNode: baseNode{span: span}, Elems: elems}
}
func (e *TupleExpr) Accept(v Visitor) { Walk(v, e) }
func (e *TupleExpr) Children() []Expr { return e.Elems }

type ListExpr struct {
	baseNode
	Elems []Expr
}

func NewListExpr(elems []Expr, span Span) *ListExpr {
	return &ListExpr{baseNode: baseNode{span: span}, Elems: elems}
}
func (e *ListExpr) Accept(v Visitor) { Walk(v, e) }
func (e *ListExpr) Children() []Expr { return e.Elems }

type SetExpr struct {
	baseNode
	Elems []Expr
}

func NewSetExpr(elems []Expr, span Span) *SetExpr {
	return &SetExpr{baseNode: baseNode{span: span}, Elems: elems}
}
func (e *SetExpr) Accept(v Visitor) { Walk(v, e) }
func (e *SetExpr) Children() []Expr { return e.Elems }

// DictEntry is one `key: value` pair of a dict display.
type DictEntry struct {
	Key   Expr
	Value Expr
}

// DictExpr does not infer key/value types from its entries in this
// revision (§9) — it is always specialized to `dict[Unknown, Unknown]`.
type DictExpr struct {
	baseNode
	Entries []DictEntry
}

func NewDictExpr(entries []DictEntry, span Span) *DictExpr {
	return &DictExpr{baseNode: baseNode{span: span}, Entries: entries}
}
func (e *DictExpr) Accept(v Visitor) { Walk(v, e) }
func (e *DictExpr) Children() []Expr {
	children := make([]Expr, 0, len(e.Entries)*2)
	for _, entry := range e.Entries {
		children = append(children, entry.Key, entry.Value)
	}
	return children
}

// UnaryOpExpr covers `not x`, `-x`, `+x`, `~x`.
type UnaryOpExpr struct {
	baseNode
	Op      OperatorType
	Operand Expr
}

func NewUnaryOpExpr(op OperatorType, operand Expr, span Span) *UnaryOpExpr {
	return &UnaryOpExpr{baseNode: baseNode{span: span}, Op: op, Operand: operand}
}
func (e *UnaryOpExpr) Accept(v Visitor) { Walk(v, e) }
func (e *UnaryOpExpr) Children() []Expr { return []Expr{e.Operand} }

// BinaryOpExpr covers arithmetic, bitwise, comparison, boolean, identity,
// and membership operators — the dispatcher picks the rule by Op's group
// (§4.4).
type BinaryOpExpr struct {
	baseNode
	Op    OperatorType
	Left  Expr
	Right Expr
}

func NewBinaryOpExpr(op OperatorType, left, right Expr, span Span) *BinaryOpExpr {
	return &BinaryOpExpr{baseNode: baseNode{span: span}, Op: op, Left: left, Right: right}
}
func (e *BinaryOpExpr) Accept(v Visitor) { Walk(v, e) }
func (e *BinaryOpExpr) Children() []Expr { return []Expr{e.Left, e.Right} }

// TernaryExpr is `Then if Cond else Else`.
type TernaryExpr struct {
	baseNode
	Cond Expr
	Then Expr
	Else Expr
}

func NewTernaryExpr(cond, then, els Expr, span Span) *TernaryExpr {
	return &TernaryExpr{baseNode: baseNode{span: span}, Cond: cond, Then: then, Else: els}
}
func (e *TernaryExpr) Accept(v Visitor) { Walk(v, e) }
func (e *TernaryExpr) Children() []Expr { return []Expr{e.Cond, e.Then, e.Else} }

// AwaitExpr is `await Value`.
type AwaitExpr struct {
	baseNode
	Value Expr
}

func NewAwaitExpr(value Expr, span Span) *AwaitExpr {
	return &AwaitExpr{baseNode: baseNode{span: span}, Value: value}
}
func (e *AwaitExpr) Accept(v Visitor) { Walk(v, e) }
func (e *AwaitExpr) Children() []Expr { return []Expr{e.Value} }

// YieldExpr is `yield Value` (Value may be nil for a bare `yield`).
type YieldExpr struct {
	baseNode
	Value Expr
}

func NewYieldExpr(value Expr, span Span) *YieldExpr {
	return &YieldExpr{baseNode: baseNode{span: span}, Value: value}
}
func (e *YieldExpr) Accept(v Visitor) { Walk(v, e) }
func (e *YieldExpr) Children() []Expr {
	if e.Value == nil {
		return nil
	}
	return []Expr{e.Value}
}

// YieldFromExpr is `yield from Value`.
type YieldFromExpr struct {
	baseNode
	Value Expr
}

func NewYieldFromExpr(value Expr, span Span) *YieldFromExpr {
	return &YieldFromExpr{baseNode: baseNode{span: span}, Value: value}
}
func (e *YieldFromExpr) Accept(v Visitor) { Walk(v, e) }
func (e *YieldFromExpr) Children() []Expr { return []Expr{e.Value} }

// ParamCategory mirrors the Function parameter categories in §3.
type ParamCategory int

const (
	ParamSimple ParamCategory = iota
	ParamVarArgList
	ParamVarArgDictionary
)

// Param is a lambda/function parameter as it appears in source, before the
// evaluator turns it into a pytype.Param.
type Param struct {
	Category   ParamCategory
	Name       string // empty for a bare `*` separator
	HasDefault bool
	Default    Expr
	Annotation Expr
}

// LambdaExpr is `lambda params: body`.
type LambdaExpr struct {
	baseNode
	Params []*Param
	Body   Expr
}

func NewLambdaExpr(params []*Param, body Expr, span Span) *LambdaExpr {
	return &LambdaExpr{baseNode: baseNode{span: span}, Params: params, Body: body}
}
func (e *LambdaExpr) Accept(v Visitor) { Walk(v, e) }
func (e *LambdaExpr) Children() []Expr {
	children := make([]Expr, 0, len(e.Params)+1)
	for _, p := range e.Params {
		if p.Default != nil {
			children = append(children, p.Default)
		}
	}
	children = append(children, e.Body)
	return children
}

// ComprehensionFor is one `for target in iter [if cond]*` clause.
type ComprehensionFor struct {
	Target Expr
	Iter   Expr
	Ifs    []Expr
}

// ComprehensionExpr covers list/set/dict/generator comprehensions. Per §1's
// non-goals this is a stub: the evaluator returns Unknown (§9) rather than
// inferring the element type through the clauses.
type ComprehensionExpr struct {
	baseNode
	Element Expr
	Clauses []ComprehensionFor
}

func NewComprehensionExpr(element Expr, clauses []ComprehensionFor, span Span) *ComprehensionExpr {
	return &ComprehensionExpr{baseNode: baseNode{span: span}, Element: element, Clauses: clauses}
}
func (e *ComprehensionExpr) Accept(v Visitor) { Walk(v, e) }
func (e *ComprehensionExpr) Children() []Expr {
	children := []Expr{e.Element}
	for _, c := range e.Clauses {
		children = append(children, c.Target, c.Iter)
		children = append(children, c.Ifs...)
	}
	return children
}

// SliceExpr is `lower:upper:step` inside a subscription. Stubbed per §9:
// the evaluator builds a set-specialized placeholder type instead of the
// correct `slice` built-in. TODO: specialize to the `slice` built-in once
// a concrete built-in registry carries one.
type SliceExpr struct {
	baseNode
	Lower Expr
	Upper Expr
	Step  Expr
}

func NewSliceExpr(lower, upper, step Expr, span Span) *SliceExpr {
	return &SliceExpr{baseNode: baseNode{span: span}, Lower: lower, Upper: upper, Step: step}
}
func (e *SliceExpr) Accept(v Visitor) { Walk(v, e) }
func (e *SliceExpr) Children() []Expr {
	var children []Expr
	for _, c := range []Expr{e.Lower, e.Upper, e.Step} {
		if c != nil {
			children = append(children, c)
		}
	}
	return children
}

// AssignmentExpr is a plain or augmented assignment `Target = Value` /
// `Target op= Value`. Op is OpAssign for a plain assignment.
type AssignmentExpr struct {
	baseNode
	Op     OperatorType
	Target Expr
	Value  Expr
}

func NewAssignmentExpr(op OperatorType, target, value Expr, span Span) *AssignmentExpr {
	return &AssignmentExpr{baseNode: baseNode{span: span}, Op: op, Target: target, Value: value}
}
func (e *AssignmentExpr) Accept(v Visitor) { Walk(v, e) }
func (e *AssignmentExpr) Children() []Expr { return []Expr{e.Target, e.Value} }

// TypeAnnotationExpr is `Value: Annotation` (a type-annotated assignment
// target or a bare annotation-only statement's expression form).
type TypeAnnotationExpr struct {
	baseNode
	Value      Expr
	Annotation Expr
}

func NewTypeAnnotationExpr(value, annotation Expr, span Span) *TypeAnnotationExpr {
	return &TypeAnnotationExpr{baseNode: baseNode{span: span}, Value: value, Annotation: annotation}
}
func (e *TypeAnnotationExpr) Accept(v Visitor) { Walk(v, e) }
func (e *TypeAnnotationExpr) Children() []Expr { return []Expr{e.Value, e.Annotation} }

// ConstantExpr is one of the keyword literal constants (§6's KeywordType):
// True, False, None, Debug.
type ConstantExpr struct {
	baseNode
	Keyword KeywordType
}

func NewConstantExpr(kw KeywordType, span Span) *ConstantExpr {
	return &ConstantExpr{baseNode: baseNode{span: span}, Keyword: kw}
}
func (e *ConstantExpr) Accept(v Visitor) { Walk(v, e) }
func (e *ConstantExpr) Children() []Expr { return nil }

// NumberLitExpr is a numeric literal; IsFloat/IsComplex let the dispatcher
// pick the built-in without re-lexing the text.
type NumberLitExpr struct {
	baseNode
	Text      string
	IsFloat   bool
	IsComplex bool
}

func NewNumberLitExpr(text string, isFloat, isComplex bool, span Span) *NumberLitExpr {
	return &NumberLitExpr{baseNode: baseNode{span: span}, Text: text, IsFloat: isFloat, IsComplex: isComplex}
}
func (e *NumberLitExpr) Accept(v Visitor) { Walk(v, e) }
func (e *NumberLitExpr) Children() []Expr { return nil }

// StringLitExpr is a string literal. TypeComment, when non-empty, carries a
// forward-reference type-comment annotation; the dispatcher evaluates it as
// if it were the annotation expression text (§4.4 "Literal constants").
type StringLitExpr struct {
	baseNode
	Value       string
	TypeComment Expr
}

func NewStringLitExpr(value string, typeComment Expr, span Span) *StringLitExpr {
	return &StringLitExpr{baseNode: baseNode{span: span}, Value: value, TypeComment: typeComment}
}
func (e *StringLitExpr) Accept(v Visitor) { Walk(v, e) }
func (e *StringLitExpr) Children() []Expr {
	if e.TypeComment == nil {
		return nil
	}
	return []Expr{e.TypeComment}
}


