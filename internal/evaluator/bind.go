package evaluator

import "github.com/laughingirL/pyright/internal/pytype"

// BindFunctionToClassOrObject implements §4.1's bindFunctionToClassOrObject:
// drop the leading `self`/`cls` parameter when base is an instance and fn
// is an instance method, or base is a class and fn is a class method.
// Static methods and plain functions are returned unchanged.
func BindFunctionToClassOrObject(base pytype.Type, fn *pytype.FunctionType) *pytype.FunctionType {
	if fn.Flags.Has(pytype.FunctionFlagStaticMethod) {
		return fn
	}

	_, isObject := base.(*pytype.ObjectType)
	_, isClass := base.(*pytype.ClassType)

	shouldBind := (isObject && !fn.Flags.Has(pytype.FunctionFlagClassMethod)) ||
		(isClass && fn.Flags.Has(pytype.FunctionFlagClassMethod))

	if !shouldBind || len(fn.Parameters) == 0 {
		return fn
	}

	bound := fn.Copy().(*pytype.FunctionType)
	bound.Parameters = bound.Parameters[1:]
	return bound
}

// resolveAlias follows a class's AliasClass chain (§4.1 "Alias classes are
// followed before lookup") until it reaches a non-aliased class. The
// prelude bootstrap sets no AliasClass on its classes.
func resolveAlias(class *pytype.ClassType) *pytype.ClassType {
	for {
		if alias, ok := class.AliasClass.Take(); ok && alias != nil {
			class = alias
			continue
		}
		return class
	}
}

// LookUpClassMember implements §4.1's lookUpClassMember: a depth-first MRO
// walk over baseClasses marked includeInMro, returning the first match
// together with its owning class. Aliases are followed before lookup.
func LookUpClassMember(class *pytype.ClassType, name string, includeInstance, includeBases bool) (*pytype.Symbol, *pytype.ClassType) {
	class = resolveAlias(class)
	if sym, ok := class.ClassFields[name]; ok {
		return sym, class
	}
	if includeInstance {
		if sym, ok := class.InstanceFields[name]; ok {
			return sym, class
		}
	}
	if !includeBases {
		return nil, nil
	}
	for _, bc := range class.BaseClasses {
		if !bc.IncludeInMro {
			continue
		}
		if sym, owner := LookUpClassMember(bc.Class, name, includeInstance, includeBases); sym != nil {
			return sym, owner
		}
	}
	return nil, nil
}


