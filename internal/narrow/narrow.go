// Package narrow defines the narrowing-builder interface the evaluator
// consumes (§6, C7). Constraint construction itself is an external
// collaborator's job — the evaluator only pushes, applies, and pops
// whatever constraints the builder hands back.
package narrow

import "github.com/laughingirL/pyright/internal/ast"

// Constraint refines a type within one conditional branch (GLOSSARY:
// "Narrowing"). ApplyToType returns the narrowed type for a value of type
// t observed at node; BlockSubsequentConstraints reports whether applying
// this constraint should stop the walk from applying any constraints after
// it to the same node: the scope-chain walk runs outermost scope first, so a
// blocking constraint there hides the inner scopes' constraints (§4.6).
type Constraint interface {
	ApplyToType(node ast.Expr, t TypeLike) TypeLike
	BlockSubsequentConstraints(node ast.Expr) bool
}

// TypeLike is pytype.Type without importing pytype here, avoiding an
// import cycle (pytype <- narrow <- evaluator -> pytype). The evaluator's
// narrow.go adapter casts through the concrete pytype.Type at the call
// site.
type TypeLike interface {
	String() string
}

// EvalFunc evaluates a sub-expression to a type, handed to the builder so
// it can inspect operand types while building constraints (e.g. "is this
// operand's declared type Optional[X]?").
type EvalFunc func(ast.Expr) TypeLike

// ConditionalConstraints is buildTypeConstraintsForConditional's result
// (§6): one constraint set for the truthy branch, one for the falsy
// branch.
type ConditionalConstraints struct {
	IfConstraints   []Constraint
	ElseConstraints []Constraint
}

// Builder is the external narrowing-constraint builder (§6). A real
// implementation inspects a conditional's test expression (`is None`,
// `isinstance(...)`, truthiness of a bare name, ...) and produces
// constraints; the evaluator never builds one itself.
type Builder interface {
	BuildTypeConstraintsForConditional(node ast.Expr, eval EvalFunc) ConditionalConstraints
}

// NoopBuilder never narrows anything — both branches get an empty
// constraint set. Used by tests and by the CLI demo, which has no real
// constraint-builder wired in.
type NoopBuilder struct{}

func (NoopBuilder) BuildTypeConstraintsForConditional(ast.Expr, EvalFunc) ConditionalConstraints {
	return ConditionalConstraints{}
}

// Stack is the push/pop scoped-acquisition wrapper §4.6/§9 describe: a
// stack of constraint sets pushed before recursing into a narrowed branch
// and popped on return, exception-safe via defer at every call site.
type Stack struct {
	frames [][]Constraint
}

// Push adds a new frame of constraints to the top of the stack.
func (s *Stack) Push(constraints []Constraint) {
	s.frames = append(s.frames, constraints)
}

// Pop removes the most recently pushed frame. Safe to call even if Push
// was never called for this frame (no-op), so a deferred Pop after a
// conditionally-skipped Push is harmless.
func (s *Stack) Pop() {
	if len(s.frames) == 0 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth reports how many frames are currently pushed — used by tests to
// assert the §8 "push/pop balance" invariant.
func (s *Stack) Depth() int { return len(s.frames) }

// Apply runs every constraint in every frame (innermost first) over t for
// node, stopping early if a constraint reports
// BlockSubsequentConstraints.
func (s *Stack) Apply(node ast.Expr, t TypeLike) TypeLike {
	for i := len(s.frames) - 1; i >= 0; i-- {
		for _, c := range s.frames[i] {
			t = c.ApplyToType(node, t)
			if c.BlockSubsequentConstraints(node) {
				return t
			}
		}
	}
	return t
}


