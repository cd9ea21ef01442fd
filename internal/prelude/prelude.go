// Package prelude bootstraps the built-in classes the evaluator's scope
// consumes (§6's "Built-in class registry", an external collaborator's
// responsibility in general, but one minimal bootstrap is needed for the
// CLI demo and the evaluator's own tests). Scope construction proper —
// binding user source to symbols — remains entirely out of scope (§1).
package prelude

import (
	optional "github.com/moznion/go-optional"

	"github.com/laughingirL/pyright/internal/pytype"
	"github.com/laughingirL/pyright/internal/scope"
)

func installMethod(class *pytype.ClassType, name string, fn *pytype.FunctionType) {
	sym := pytype.NewSymbol(name)
	sym.AddDeclaration(pytype.Declaration{Category: pytype.DeclMethod, DeclaredType: optional.Some[pytype.Type](fn)})
	class.ClassFields[name] = sym
}

func method(params []*pytype.Param, ret pytype.Type) *pytype.FunctionType {
	fn := pytype.NewFunctionType(pytype.FunctionFlagNone)
	fn.AddParameter(&pytype.Param{Category: pytype.ParamSimple, Name: optional.Some("self")})
	for _, p := range params {
		fn.AddParameter(p)
	}
	fn.DeclaredReturnType = optional.Some[pytype.Type](ret)
	return fn
}

func simpleParam(name string, t pytype.Type) *pytype.Param {
	return &pytype.Param{Category: pytype.ParamSimple, Name: optional.Some(name), Type: t}
}

// NewRootScope builds the Permanent root scope the CLI demo and the
// evaluator's tests hand to a Context: `object` at the root of every MRO,
// the numeric tower (bool/int/float/complex), str, and the container
// built-ins (list/dict/set/frozenset/tuple/deque/defaultdict/chainmap),
// each generic over one or two TypeVars where that applies.
func NewRootScope() *scope.MapScope {
	root := scope.NewMapScope(nil, scope.Permanent)

	object := pytype.NewClassType("object", pytype.ClassFlagBuiltIn)
	installMethod(object, "__init__", method(nil, pytype.NewNoneType()))
	installMethod(object, "__new__", method(nil, pytype.NewNoneType()))
	installMethod(object, "__eq__", method([]*pytype.Param{simpleParam("other", pytype.NewAnyType())}, boolPlaceholder))
	root.DefineBuiltIn("object", object)

	boolClass := builtinClass("bool", object)
	intClass := builtinClass("int", object)
	floatClass := builtinClass("float", object)
	complexClass := builtinClass("complex", object)
	strClass := builtinClass("str", object)

	installMethod(intClass, "__add__", method([]*pytype.Param{simpleParam("other", pytype.NewAnyType())}, objectOf(intClass)))
	installMethod(floatClass, "__add__", method([]*pytype.Param{simpleParam("other", pytype.NewAnyType())}, objectOf(floatClass)))
	installMethod(strClass, "__add__", method([]*pytype.Param{simpleParam("other", objectOf(strClass))}, objectOf(strClass)))

	root.DefineBuiltIn("bool", boolClass)
	root.DefineBuiltIn("int", intClass)
	root.DefineBuiltIn("float", floatClass)
	root.DefineBuiltIn("complex", complexClass)
	root.DefineBuiltIn("str", strClass)

	elemT := pytype.NewTypeVarType("_T")
	listClass := genericContainer("list", object, elemT)
	setClass := genericContainer("set", object, elemT)
	frozenSetClass := genericContainer("frozenset", object, elemT)
	tupleClass := genericContainer("tuple", object, elemT)
	dequeClass := genericContainer("deque", object, elemT)

	keyT := pytype.NewTypeVarType("_K")
	valT := pytype.NewTypeVarType("_V")
	dictClass := genericContainer2("dict", object, keyT, valT)
	defaultDictClass := genericContainer2("defaultdict", object, keyT, valT)
	chainMapClass := genericContainer2("chainmap", object, keyT, valT)

	root.DefineBuiltIn("list", listClass)
	root.DefineBuiltIn("set", setClass)
	root.DefineBuiltIn("frozenset", frozenSetClass)
	root.DefineBuiltIn("tuple", tupleClass)
	root.DefineBuiltIn("deque", dequeClass)
	root.DefineBuiltIn("dict", dictClass)
	root.DefineBuiltIn("defaultdict", defaultDictClass)
	root.DefineBuiltIn("chainmap", chainMapClass)

	return root
}

// boolPlaceholder stands in for the `bool` built-in inside object's own
// bootstrap, before the bool class exists; object.__eq__ is rarely invoked
// through the fast path anyway (comparisons always short-circuit to bool
// directly, §4.4), so an Unknown return here is harmless.
var boolPlaceholder pytype.Type = pytype.NewUnknownType()

func builtinClass(name string, base *pytype.ClassType) *pytype.ClassType {
	class := pytype.NewClassType(name, pytype.ClassFlagBuiltIn)
	class.AddBaseClass(base, true)
	return class
}

func objectOf(class *pytype.ClassType) *pytype.ObjectType {
	return pytype.NewObjectType(class)
}

func genericContainer(name string, base *pytype.ClassType, elem *pytype.TypeVarType) *pytype.ClassType {
	class := pytype.NewClassType(name, pytype.ClassFlagBuiltIn)
	class.AddBaseClass(base, true)
	class.TypeParams = []*pytype.TypeVarType{elem}
	installMethod(class, "__len__", method(nil, pytype.NewUnknownType()))
	installMethod(class, "__iter__", method(nil, pytype.NewUnknownType()))
	installMethod(class, "__contains__", method([]*pytype.Param{simpleParam("item", pytype.NewAnyType())}, boolPlaceholder))
	return class
}

func genericContainer2(name string, base *pytype.ClassType, key, val *pytype.TypeVarType) *pytype.ClassType {
	class := pytype.NewClassType(name, pytype.ClassFlagBuiltIn)
	class.AddBaseClass(base, true)
	class.TypeParams = []*pytype.TypeVarType{key, val}
	installMethod(class, "__len__", method(nil, pytype.NewUnknownType()))
	installMethod(class, "keys", method(nil, pytype.NewUnknownType()))
	installMethod(class, "values", method(nil, pytype.NewUnknownType()))
	installMethod(class, "items", method(nil, pytype.NewUnknownType()))
	return class
}


