// Package pytype implements the evaluator's type model (§3/C1): a closed,
// immutable-by-convention discriminated union of the types a gradually
// typed, class-based language's expressions can carry, plus the
// identity/equality rules the rest of the evaluator leans on.
package pytype

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	optional "github.com/moznion/go-optional"
)

//sumtype:decl
// Type is the closed set of type variants §3 describes. The variant structs
// are exported and each has a New* helper below; the unexported isType
// marker keeps types outside this package from joining the set.
type Type interface {
	isType()
	String() string
	// Copy returns a shallow copy — used by, among others, SpecializeType,
	// function binding and ObjectType.WithTruthy, which must never mutate a
	// type another Symbol still references.
	Copy() Type
}

func (*UnknownType) isType()            {}
func (*AnyType) isType()                {}
func (*NoneType) isType()               {}
func (*NeverType) isType()              {}
func (*ClassType) isType()              {}
func (*ObjectType) isType()             {}
func (*FunctionType) isType()           {}
func (*OverloadedFunctionType) isType() {}
func (*ModuleType) isType()             {}
func (*UnionType) isType()              {}
func (*TypeVarType) isType()            {}
func (*PropertyType) isType()           {}

// --- Unknown / Any / None / Never -----------------------------------------

// UnknownType is the terminal unresolved type: assignable to and from
// anything, never itself a source of a diagnostic (§4.1 rule 1).
type UnknownType struct{}

func NewUnknownType() *UnknownType    { return &UnknownType{} }
func (t *UnknownType) String() string { return "Unknown" }
func (t *UnknownType) Copy() Type     { return &UnknownType{} }

// AnyType is the terminal dynamic type. IsEllipsis preserves a literal `...`
// through `Callable[..., T]` (§3).
type AnyType struct {
	IsEllipsis bool
}

func NewAnyType() *AnyType { return &AnyType{} }
func (t *AnyType) String() string {
	if t.IsEllipsis {
		return "..."
	}
	return "Any"
}
func (t *AnyType) Copy() Type { return &AnyType{IsEllipsis: t.IsEllipsis} }

type NoneType struct{}

func NewNoneType() *NoneType    { return &NoneType{} }
func (t *NoneType) String() string { return "None" }
func (t *NoneType) Copy() Type  { return &NoneType{} }

type NeverType struct{}

func NewNeverType() *NeverType   { return &NeverType{} }
func (t *NeverType) String() string { return "Never" }
func (t *NeverType) Copy() Type { return &NeverType{} }

// --- Class / Object --------------------------------------------------------

// ClassFlags are the boolean facets §3/C1 calls out: built-in, special
// built-in (non-uniform subscription semantics, §4.5), abstract, dataclass.
type ClassFlags uint8

const (
	ClassFlagNone ClassFlags = 0
	ClassFlagBuiltIn ClassFlags = 1 << iota
	ClassFlagSpecialBuiltIn
	ClassFlagAbstract
	ClassFlagDataclass
	ClassFlagNamedTuple
	ClassFlagProtocol
)

func (f ClassFlags) Has(flag ClassFlags) bool { return f&flag != 0 }

// BaseClass is one entry of ClassType.BaseClasses: the base itself, and
// whether it participates in MRO walks (§4.1's lookUpClassMember).
type BaseClass struct {
	Class        *ClassType
	IncludeInMro bool
}

// ClassType is a (possibly generic, possibly specialized) class. A class is
// unspecialized when TypeArgs is empty; it is specialized when
// len(TypeArgs) == len(TypeParams), with missing slots filled with Any by
// cloneForSpecialization (§3).
type ClassType struct {
	Name           string
	Flags          ClassFlags
	TypeParams     []*TypeVarType
	TypeArgs       []Type
	BaseClasses    []BaseClass
	ClassFields    map[string]*Symbol
	InstanceFields map[string]*Symbol
	AliasClass     optional.Option[*ClassType]
	SourceID       string
}

// NewClassType creates an unspecialized class with a freshly minted
// identity. Synthesized classes (dataclass/NamedTuple/specialization
// clones) that have no backing scope-builder symbol still need a stable
// identity for isSameGenericClass (§9's "store classes by identity"); a
// uuid gives them one without a global counter.
func NewClassType(name string, flags ClassFlags) *ClassType {
	return &ClassType{
		Name:           name,
		Flags:          flags,
		ClassFields:    make(map[string]*Symbol),
		InstanceFields: make(map[string]*Symbol),
		SourceID:       uuid.New().String(),
	}
}

func (t *ClassType) String() string {
	if len(t.TypeArgs) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		parts[i] = a.String()
	}
	return t.Name + "[" + strings.Join(parts, ", ") + "]"
}

func (t *ClassType) Copy() Type {
	clone := *t
	clone.TypeArgs = append([]Type(nil), t.TypeArgs...)
	return &clone
}

// IsSameGenericClass compares by identity, ignoring specialization args
// (§3).
func (t *ClassType) IsSameGenericClass(other *ClassType) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.SourceID == other.SourceID
}

// AddBaseClass is one of the three controlled append operations allowed
// during construction (§3's Lifecycle note).
func (t *ClassType) AddBaseClass(base *ClassType, includeInMro bool) {
	t.BaseClasses = append(t.BaseClasses, BaseClass{Class: base, IncludeInMro: includeInMro})
}

// CloneForSpecialization returns a new ClassType sharing the unspecialized
// class's identity (SourceID) but carrying typeArgs, padding missing slots
// with Any per §3.
func (t *ClassType) CloneForSpecialization(typeArgs []Type) *ClassType {
	clone := *t
	args := make([]Type, len(t.TypeParams))
	for i := range args {
		if i < len(typeArgs) {
			args[i] = typeArgs[i]
		} else {
			args[i] = NewAnyType()
		}
	}
	clone.TypeArgs = args
	return &clone
}

// ObjectType is an instance of a class. Truthy carries the narrowing tag
// fed by True/False literal evaluation (§4.4 "Literal constants").
type ObjectType struct {
	ClassType *ClassType
	Truthy    optional.Option[bool]
}

func NewObjectType(class *ClassType) *ObjectType {
	return &ObjectType{ClassType: class}
}
func (t *ObjectType) String() string { return t.ClassType.String() }
func (t *ObjectType) Copy() Type {
	clone := *t
	return &clone
}

// WithTruthy returns a copy of the object tagged with a fixed truthiness,
// used when evaluating the `True`/`False` keyword constants.
func (t *ObjectType) WithTruthy(truthy bool) *ObjectType {
	clone := t.Copy().(*ObjectType)
	clone.Truthy = optional.Some(truthy)
	return clone
}

// --- Function / OverloadedFunction -----------------------------------------

type FunctionFlags uint8

const (
	FunctionFlagNone FunctionFlags = 0
	FunctionFlagStaticMethod FunctionFlags = 1 << iota
	FunctionFlagClassMethod
	FunctionFlagAsync
	FunctionFlagGenerator
	FunctionFlagOverloaded
)

func (f FunctionFlags) Has(flag FunctionFlags) bool { return f&flag != 0 }

// Param is one function parameter (§3).
type Param struct {
	Category    ParamCategory
	Name        optional.Option[string]
	HasDefault  bool
	DefaultType optional.Option[Type]
	Type        Type
}

type ParamCategory int

const (
	ParamSimple ParamCategory = iota
	ParamVarArgList
	ParamVarArgDictionary
)

// FunctionType is a callable's signature.
type FunctionType struct {
	Flags              FunctionFlags
	Parameters         []*Param
	DeclaredReturnType optional.Option[Type]
	InferredReturnType optional.Option[Type]
	BuiltInName        optional.Option[string]
}

func NewFunctionType(flags FunctionFlags) *FunctionType {
	return &FunctionType{Flags: flags}
}

// AddParameter is one of the three controlled append operations (§3).
func (t *FunctionType) AddParameter(p *Param) {
	t.Parameters = append(t.Parameters, p)
}

// EffectiveReturnType prefers the declared return type, falling back to the
// inferred one, matching pyright's own precedence for a function's result.
func (t *FunctionType) EffectiveReturnType() Type {
	if rt, ok := t.DeclaredReturnType.Take(); ok {
		return rt
	}
	if rt, ok := t.InferredReturnType.Take(); ok {
		return rt
	}
	return NewUnknownType()
}

func (t *FunctionType) String() string {
	parts := make([]string, len(t.Parameters))
	for i, p := range t.Parameters {
		name, _ := p.Name.Take()
		parts[i] = name + ": " + p.Type.String()
	}
	name := "<function>"
	if n, ok := t.BuiltInName.Take(); ok {
		name = n
	}
	return name + "(" + strings.Join(parts, ", ") + ") -> " + t.EffectiveReturnType().String()
}

func (t *FunctionType) Copy() Type {
	clone := *t
	clone.Parameters = append([]*Param(nil), t.Parameters...)
	return &clone
}

// OverloadedFunctionType is a set of overloads tried in declaration order
// (§4.3).
type OverloadedFunctionType struct {
	Overloads []*FunctionType
}

func NewOverloadedFunctionType(overloads ...*FunctionType) *OverloadedFunctionType {
	return &OverloadedFunctionType{Overloads: overloads}
}
func (t *OverloadedFunctionType) String() string {
	parts := make([]string, len(t.Overloads))
	for i, o := range t.Overloads {
		parts[i] = o.String()
	}
	return "Overload[" + strings.Join(parts, " | ") + "]"
}
func (t *OverloadedFunctionType) Copy() Type {
	clone := *t
	clone.Overloads = append([]*FunctionType(nil), t.Overloads...)
	return &clone
}

// --- Module ----------------------------------------------------------------

type ModuleType struct {
	Name   string
	Fields map[string]*Symbol
}

func NewModuleType(name string) *ModuleType {
	return &ModuleType{Name: name, Fields: make(map[string]*Symbol)}
}
func (t *ModuleType) String() string { return "module " + t.Name }
func (t *ModuleType) Copy() Type {
	clone := *t
	return &clone
}

// --- Union -------------------------------------------------------------

// UnionType's Subtypes is never empty, never nested, and never a singleton
// — combineTypes (in the evaluator package) is the only place a UnionType
// is constructed.
type UnionType struct {
	Subtypes []Type
}

func (t *UnionType) String() string {
	parts := make([]string, len(t.Subtypes))
	for i, s := range t.Subtypes {
		parts[i] = s.String()
	}
	return strings.Join(parts, " | ")
}
func (t *UnionType) Copy() Type {
	clone := *t
	clone.Subtypes = append([]Type(nil), t.Subtypes...)
	return &clone
}

// --- TypeVar -----------------------------------------------------------

type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

// TypeVarType. Invariant (§3): never both Bound and non-empty Constraints;
// never both Covariant and Contravariant (there's no "both" value to
// represent that, so the invariant is enforced at construction).
type TypeVarType struct {
	Name        string
	Bound       optional.Option[Type]
	Constraints []Type
	Variance    Variance
	id          uint64 // identity for TypeVarMap / union dedup
}

var typeVarIDCounter uint64

func NewTypeVarType(name string) *TypeVarType {
	typeVarIDCounter++
	return &TypeVarType{Name: name, id: typeVarIDCounter}
}

func (t *TypeVarType) ID() uint64 { return t.id }

func (t *TypeVarType) String() string { return t.Name }
func (t *TypeVarType) Copy() Type {
	clone := *t
	clone.Constraints = append([]Type(nil), t.Constraints...)
	return &clone
}

// --- Property ------------------------------------------------------------

// PropertyType models a `@property`-style descriptor (§3, §4.2).
type PropertyType struct {
	Getter  optional.Option[*FunctionType]
	Setter  optional.Option[*FunctionType]
	Deleter optional.Option[*FunctionType]
}

func (t *PropertyType) String() string { return "property" }
func (t *PropertyType) Copy() Type {
	clone := *t
	return &clone
}

// --- structural identity, used by combineTypes' dedup (§4.1) ---------------

// StructuralKey returns a string that is equal for two types iff they
// should be treated as the same member of a union: same variant, and for
// classes/objects the same generic identity plus specialization args, and
// for TypeVars the same id (a Copy keeps the id).
func StructuralKey(t Type) string {
	switch t := t.(type) {
	case *UnknownType:
		return "Unknown"
	case *AnyType:
		if t.IsEllipsis {
			return "Any:..."
		}
		return "Any"
	case *NoneType:
		return "None"
	case *NeverType:
		return "Never"
	case *ClassType:
		return "Class:" + t.SourceID + ":" + argsKey(t.TypeArgs)
	case *ObjectType:
		key := "Object:" + t.ClassType.SourceID + ":" + argsKey(t.ClassType.TypeArgs)
		if truthy, ok := t.Truthy.Take(); ok {
			if truthy {
				key += ":true"
			} else {
				key += ":false"
			}
		}
		return key
	case *TypeVarType:
		return "TypeVar:" + strconv.FormatUint(t.id, 10)
	case *FunctionType:
		return "Function:" + t.String()
	case *OverloadedFunctionType:
		return "Overload:" + t.String()
	case *ModuleType:
		return "Module:" + t.Name
	case *PropertyType:
		return "Property:" + t.String()
	case *UnionType:
		keys := make([]string, len(t.Subtypes))
		for i, s := range t.Subtypes {
			keys[i] = StructuralKey(s)
		}
		sort.Strings(keys)
		return "Union:" + strings.Join(keys, ",")
	default:
		return t.String()
	}
}

func argsKey(args []Type) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = StructuralKey(a)
	}
	return strings.Join(parts, ",")
}



