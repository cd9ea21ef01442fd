package evaluator

import "github.com/laughingirL/pyright/internal/pytype"

// SpecializeType implements §4.1's specializeType: replace every TypeVar
// reachable in t with its binding in varMap, leaving unbound TypeVars
// untouched. Used to realize a call's return type (§4.3 step 7) and to
// apply a generic class's TypeArgs in place of its TypeParams.
func SpecializeType(t pytype.Type, varMap *pytype.TypeVarMap) pytype.Type {
	if varMap == nil {
		return t
	}
	switch t := t.(type) {
	case *pytype.TypeVarType:
		if bound, ok := varMap.Get(t); ok {
			return bound
		}
		return t
	case *pytype.ClassType:
		if len(t.TypeArgs) == 0 {
			return t
		}
		clone := t.Copy().(*pytype.ClassType)
		for i, arg := range clone.TypeArgs {
			clone.TypeArgs[i] = SpecializeType(arg, varMap)
		}
		return clone
	case *pytype.ObjectType:
		clone := t.Copy().(*pytype.ObjectType)
		clone.ClassType = SpecializeType(t.ClassType, varMap).(*pytype.ClassType)
		return clone
	case *pytype.FunctionType:
		clone := t.Copy().(*pytype.FunctionType)
		clone.Parameters = make([]*pytype.Param, len(t.Parameters))
		for i, p := range t.Parameters {
			paramClone := *p
			paramClone.Type = SpecializeType(p.Type, varMap)
			clone.Parameters[i] = &paramClone
		}
		if rt, ok := t.DeclaredReturnType.Take(); ok {
			clone.DeclaredReturnType = optionSome(SpecializeType(rt, varMap))
		}
		if rt, ok := t.InferredReturnType.Take(); ok {
			clone.InferredReturnType = optionSome(SpecializeType(rt, varMap))
		}
		return clone
	case *pytype.OverloadedFunctionType:
		overloads := make([]*pytype.FunctionType, len(t.Overloads))
		for i, o := range t.Overloads {
			overloads[i] = SpecializeType(o, varMap).(*pytype.FunctionType)
		}
		return &pytype.OverloadedFunctionType{Overloads: overloads}
	case *pytype.UnionType:
		specialized := make([]pytype.Type, len(t.Subtypes))
		for i, sub := range t.Subtypes {
			specialized[i] = SpecializeType(sub, varMap)
		}
		return CombineTypes(specialized)
	default:
		return t
	}
}


