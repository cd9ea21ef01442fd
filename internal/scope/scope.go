// Package scope defines the lexical-scope interface the evaluator consumes
// (§6) and a minimal concrete implementation for tests and the CLI demo.
// Scope construction and symbol interning are external collaborators
// (§1); the evaluator only ever reads from a Scope it's handed.
package scope

import (
	"github.com/laughingirL/pyright/internal/narrow"
	"github.com/laughingirL/pyright/internal/pytype"
)

// Kind distinguishes a Temporary scope (a narrowing sub-scope pushed for
// one conditional branch, per §4.6) from a Permanent one (a function,
// class, or module body).
type Kind int

const (
	Permanent Kind = iota
	Temporary
)

// LookupResult is what lookUpSymbolRecursive returns — the matched symbol
// together with the scope that owns it, or nil if no enclosing scope binds
// the name.
type LookupResult struct {
	Symbol *pytype.Symbol
	Scope  Scope
}

// Scope is the external scope-builder surface §6 lists.
type Scope interface {
	LookUpSymbolRecursive(name string) *LookupResult
	GetParent() Scope
	GetKind() Kind
	GetTypeConstraints() []narrow.Constraint
	GetBuiltInType(name string) pytype.Type
	GetBuiltInObject(name string, typeArgs ...pytype.Type) pytype.Type
}

// MapScope is a minimal concrete Scope backed by a map, sufficient for
// tests and the CLI demo; a real implementation lives in the scope
// builder's own package per §1.
type MapScope struct {
	parent      Scope
	kind        Kind
	symbols     map[string]*pytype.Symbol
	builtins    map[string]*pytype.ClassType
	constraints []narrow.Constraint
}

func NewMapScope(parent Scope, kind Kind) *MapScope {
	return &MapScope{
		parent:   parent,
		kind:     kind,
		symbols:  make(map[string]*pytype.Symbol),
		builtins: make(map[string]*pytype.ClassType),
	}
}

func (s *MapScope) Define(sym *pytype.Symbol) {
	s.symbols[sym.Name] = sym
}

func (s *MapScope) DefineBuiltIn(name string, class *pytype.ClassType) {
	s.builtins[name] = class
}

func (s *MapScope) LookUpSymbolRecursive(name string) *LookupResult {
	if sym, ok := s.symbols[name]; ok {
		return &LookupResult{Symbol: sym, Scope: s}
	}
	if s.parent != nil {
		return s.parent.LookUpSymbolRecursive(name)
	}
	return nil
}

func (s *MapScope) GetParent() Scope { return s.parent }
func (s *MapScope) GetKind() Kind    { return s.kind }

// SetTypeConstraints attaches the constraints a Temporary scope carries
// (e.g. the ones proved true on entry to an `if` branch's block scope).
func (s *MapScope) SetTypeConstraints(cs []narrow.Constraint) {
	s.constraints = cs
}

func (s *MapScope) GetTypeConstraints() []narrow.Constraint { return s.constraints }

func (s *MapScope) GetBuiltInType(name string) pytype.Type {
	if class, ok := s.builtins[name]; ok {
		return class
	}
	if s.parent != nil {
		return s.parent.GetBuiltInType(name)
	}
	return pytype.NewUnknownType()
}

func (s *MapScope) GetBuiltInObject(name string, typeArgs ...pytype.Type) pytype.Type {
	class, ok := s.builtins[name]
	if !ok {
		if s.parent != nil {
			return s.parent.GetBuiltInObject(name, typeArgs...)
		}
		return pytype.NewUnknownType()
	}
	if len(typeArgs) > 0 {
		class = class.CloneForSpecialization(typeArgs)
	}
	return pytype.NewObjectType(class)
}


