package pytype

import optional "github.com/moznion/go-optional"

// DeclarationCategory is what kind of binding a Symbol's declaration
// represents (§3) — determines whether Name resolution prefers
// currentType or the lazily-computed inferredType (§4.4).
type DeclarationCategory int

const (
	DeclVariable DeclarationCategory = iota
	DeclClass
	DeclFunction
	DeclMethod
	DeclParameter
	DeclModule
)

// Declaration is one binding site contributing to a Symbol. A name can be
// declared more than once (e.g. an overloaded function, or re-assignment
// without a new annotation); Symbol.Declarations keeps them all.
type Declaration struct {
	Category     DeclarationCategory
	DeclaredType optional.Option[Type]
}

// InferredTypeThunk lazily computes a Symbol's inferred type — the scope
// builder (external, §6) supplies one per Symbol so the evaluator never
// has to eagerly infer every binding in a scope before it needs one.
type InferredTypeThunk interface {
	GetType() Type
}

type inferredTypeFunc func() Type

func (f inferredTypeFunc) GetType() Type { return f() }

// NewInferredType wraps a plain Type as an InferredTypeThunk, for the
// common case where the inferred type is already known.
func NewInferredType(t Type) InferredTypeThunk {
	return inferredTypeFunc(func() Type { return t })
}

// Symbol is the scope builder's unit of name binding (§3); it exclusively
// owns its Declarations (§3's Ownership note).
type Symbol struct {
	Name         string
	Declarations []Declaration
	CurrentType  Type
	InferredType InferredTypeThunk
}

func NewSymbol(name string) *Symbol {
	return &Symbol{Name: name}
}

// AddDeclaration is one of the three controlled append operations (§3).
func (s *Symbol) AddDeclaration(d Declaration) {
	s.Declarations = append(s.Declarations, d)
}

// EffectiveType implements the Name-resolution precedence from §4.4: a
// declared type wins if any declaration carries one; else a non-Variable
// symbol uses CurrentType; else the lazily computed InferredType.
func (s *Symbol) EffectiveType() Type {
	for _, d := range s.Declarations {
		if dt, ok := d.DeclaredType.Take(); ok {
			return dt
		}
	}
	if len(s.Declarations) > 0 && s.Declarations[0].Category != DeclVariable {
		if s.CurrentType != nil {
			return s.CurrentType
		}
	}
	if s.InferredType != nil {
		return s.InferredType.GetType()
	}
	return NewUnknownType()
}


