package pytype

import "github.com/laughingirL/pyright/internal/ast"

// TypeResult is the evaluator's return value for one expression (§3): the
// computed type, an optional flattened list of component types (used for
// `Callable[[A, B], R]`'s argument list — never nested), and the node it
// was computed for.
type TypeResult struct {
	Type     Type
	TypeList []TypeResult
	Node     ast.Expr
}

func NewTypeResult(t Type, node ast.Expr) TypeResult {
	return TypeResult{Type: t, Node: node}
}

// ArgumentCategory mirrors ast.ArgCategory at the type-evaluation layer so
// the call matcher doesn't need to import the ast package's node-level
// enum directly in its signatures.
type ArgumentCategory = ast.ArgCategory

const (
	ArgSimple     = ast.ArgSimple
	ArgList       = ast.ArgList
	ArgDictionary = ast.ArgDictionary
)

// FunctionArgument is one call-site argument, already evaluated to a Type
// (§3).
type FunctionArgument struct {
	ValueExpression ast.Expr
	Category        ArgumentCategory
	Name            *ast.NameExpr
	Type            Type
}

// TypeVarMap is the ordered substitution built up during call validation
// and applied by SpecializeType (§3). Insertion order matters for
// deterministic diagnostics, hence the parallel slice of keys alongside the
// map.
type TypeVarMap struct {
	order   []uint64
	bound   map[uint64]Type
	varByID map[uint64]*TypeVarType
}

func NewTypeVarMap() *TypeVarMap {
	return &TypeVarMap{
		bound:   make(map[uint64]Type),
		varByID: make(map[uint64]*TypeVarType),
	}
}

// Get returns the type currently bound to tv, if any.
func (m *TypeVarMap) Get(tv *TypeVarType) (Type, bool) {
	t, ok := m.bound[tv.ID()]
	return t, ok
}

// Set records src as the binding for tv. Re-binding the same TypeVar
// overwrites the prior binding but preserves its position in Order().
func (m *TypeVarMap) Set(tv *TypeVarType, src Type) {
	id := tv.ID()
	if _, exists := m.bound[id]; !exists {
		m.order = append(m.order, id)
	}
	m.bound[id] = src
	m.varByID[id] = tv
}

// Order returns the TypeVars in binding order, for deterministic
// specialization and diagnostics.
func (m *TypeVarMap) Order() []*TypeVarType {
	result := make([]*TypeVarType, len(m.order))
	for i, id := range m.order {
		result[i] = m.varByID[id]
	}
	return result
}

func (m *TypeVarMap) Len() int { return len(m.order) }


