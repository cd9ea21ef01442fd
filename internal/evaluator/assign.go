package evaluator

import (
	"github.com/laughingirL/pyright/internal/ast"
	"github.com/laughingirL/pyright/internal/diagnostics"
	"github.com/laughingirL/pyright/internal/pytype"
)

// CanAssignType implements §4.1's canAssignType: assignability with
// structural reasoning, recording TypeVar substitutions into varMap as a
// side effect. node is only used for diagnostic ranges; a nil node
// suppresses diagnostics (used by speculative overload probing in
// addition to the silenced sink, §5).
func (e *Evaluator) CanAssignType(dst, src pytype.Type, node ast.Expr, varMap *pytype.TypeVarMap) bool {
	// Rule 1: Unknown/Any absorb on either side, no diagnostics.
	if isDynamic(dst) || isDynamic(src) {
		return true
	}

	// Rule 2: Never is assignable to anything; only Never assigns to Never.
	if _, ok := src.(*pytype.NeverType); ok {
		return true
	}
	if _, ok := dst.(*pytype.NeverType); ok {
		return false
	}

	// Rule 3 (source side): every branch of a Union source must be
	// assignable to dst.
	if srcUnion, ok := src.(*pytype.UnionType); ok {
		for _, sub := range srcUnion.Subtypes {
			if !e.CanAssignType(dst, sub, node, varMap) {
				return false
			}
		}
		return true
	}

	// Rule 3 (destination side): some branch of a Union destination must
	// accept src. A `None` member implements Optional[T] simply by being
	// one of the branches a plain equality/identity match can land on.
	if dstUnion, ok := dst.(*pytype.UnionType); ok {
		for _, sub := range dstUnion.Subtypes {
			if e.CanAssignType(sub, src, nil, varMap) {
				return true
			}
		}
		if node != nil {
			diagnostics.Error(e.Sink,
				"Argument of type '"+src.String()+"' cannot be assigned to parameter of type '"+dst.String()+"'",
				node.Span())
		}
		return false
	}

	// Rule 5: TypeVar destination.
	if tv, ok := dst.(*pytype.TypeVarType); ok {
		return e.canAssignToTypeVar(tv, src, node, varMap)
	}

	switch dst := dst.(type) {
	case *pytype.NoneType:
		_, ok := src.(*pytype.NoneType)
		if !ok && node != nil {
			diagnostics.Error(e.Sink, "Argument of type '"+src.String()+"' cannot be assigned to parameter of type 'None'", node.Span())
		}
		return ok
	case *pytype.ObjectType:
		return e.canAssignObject(dst, src, node, varMap)
	case *pytype.ClassType:
		return e.canAssignClass(dst, src, node, varMap)
	case *pytype.FunctionType:
		return e.canAssignFunction(dst, src, node, varMap)
	case *pytype.ModuleType:
		srcMod, ok := src.(*pytype.ModuleType)
		return ok && srcMod.Name == dst.Name
	default:
		// Property/OverloadedFunction destinations aren't valid assignment
		// targets in this revision; fall through to a structural-key
		// comparison so at least identical types assign to each other.
		return pytype.StructuralKey(dst) == pytype.StructuralKey(src)
	}
}

func isDynamic(t pytype.Type) bool {
	switch t.(type) {
	case *pytype.UnknownType, *pytype.AnyType:
		return true
	default:
		return false
	}
}

// canAssignToTypeVar is §4.1 rule 5: if tv is already bound in varMap,
// require src to be assignable to the binding; otherwise record src as the
// binding, subject to tv's bound/constraints.
func (e *Evaluator) canAssignToTypeVar(tv *pytype.TypeVarType, src pytype.Type, node ast.Expr, varMap *pytype.TypeVarMap) bool {
	if varMap != nil {
		if bound, ok := varMap.Get(tv); ok {
			return e.CanAssignType(bound, src, node, varMap)
		}
	}
	if bound, ok := tv.Bound.Take(); ok {
		if !e.CanAssignType(bound, src, nil, nil) {
			if node != nil {
				diagnostics.Error(e.Sink, "Type '"+src.String()+"' is incompatible with bound '"+bound.String()+"' of type variable '"+tv.Name+"'", node.Span())
			}
			return false
		}
	}
	if len(tv.Constraints) > 0 {
		matched := false
		for _, c := range tv.Constraints {
			if pytype.StructuralKey(c) == pytype.StructuralKey(src) || e.CanAssignType(c, src, nil, nil) {
				matched = true
				break
			}
		}
		if !matched {
			if node != nil {
				diagnostics.Error(e.Sink, "Type '"+src.String()+"' does not satisfy any constraint of type variable '"+tv.Name+"'", node.Span())
			}
			return false
		}
	}
	if varMap != nil {
		varMap.Set(tv, src)
	}
	return true
}

// canAssignObject is §4.1 rule 4: Object(C) -> Object(D) iff D appears in
// C's transitive base classes (following includeInMro) with generic
// arguments satisfying the variance of D's parameters.
func (e *Evaluator) canAssignObject(dst *pytype.ObjectType, src pytype.Type, node ast.Expr, varMap *pytype.TypeVarMap) bool {
	srcObj, ok := src.(*pytype.ObjectType)
	if !ok {
		if node != nil {
			diagnostics.Error(e.Sink, "Argument of type '"+src.String()+"' cannot be assigned to parameter of type '"+dst.String()+"'", node.Span())
		}
		return false
	}
	if !classIsOrInherits(srcObj.ClassType, dst.ClassType) {
		if node != nil {
			diagnostics.Error(e.Sink, "Argument of type '"+src.String()+"' cannot be assigned to parameter of type '"+dst.String()+"'", node.Span())
		}
		return false
	}
	return e.typeArgsCompatible(dst.ClassType, srcObj.ClassType, node, varMap)
}

func (e *Evaluator) canAssignClass(dst *pytype.ClassType, src pytype.Type, node ast.Expr, varMap *pytype.TypeVarMap) bool {
	srcClass, ok := src.(*pytype.ClassType)
	if !ok {
		if node != nil {
			diagnostics.Error(e.Sink, "Argument of type '"+src.String()+"' cannot be assigned to parameter of type '"+dst.String()+"'", node.Span())
		}
		return false
	}
	if !classIsOrInherits(srcClass, dst) {
		if node != nil {
			diagnostics.Error(e.Sink, "Argument of type '"+src.String()+"' cannot be assigned to parameter of type '"+dst.String()+"'", node.Span())
		}
		return false
	}
	return e.typeArgsCompatible(dst, srcClass, node, varMap)
}

// classIsOrInherits reports whether candidate is base itself or inherits
// from it transitively through MRO-included base classes.
func classIsOrInherits(candidate, base *pytype.ClassType) bool {
	if candidate.IsSameGenericClass(base) {
		return true
	}
	for _, bc := range candidate.BaseClasses {
		if !bc.IncludeInMro {
			continue
		}
		if classIsOrInherits(bc.Class, base) {
			return true
		}
	}
	return false
}

// typeArgsCompatible checks each specialization arg of dstClass against
// the corresponding arg of srcClass per that type parameter's declared
// variance. When dstClass's own TypeParams are unavailable (e.g. it's the
// unspecialized form used as a constraint target) any args present are
// checked invariantly.
func (e *Evaluator) typeArgsCompatible(dstClass, srcClass *pytype.ClassType, node ast.Expr, varMap *pytype.TypeVarMap) bool {
	n := len(dstClass.TypeArgs)
	if n == 0 {
		return true
	}
	if len(srcClass.TypeArgs) != n {
		return true // unspecialized source: treat as compatible with Any-filled args
	}
	for i := 0; i < n; i++ {
		dstArg := dstClass.TypeArgs[i]
		srcArg := srcClass.TypeArgs[i]
		variance := pytype.Invariant
		if i < len(dstClass.TypeParams) {
			variance = dstClass.TypeParams[i].Variance
		}
		switch variance {
		case pytype.Covariant:
			if !e.CanAssignType(dstArg, srcArg, node, varMap) {
				return false
			}
		case pytype.Contravariant:
			if !e.CanAssignType(srcArg, dstArg, node, varMap) {
				return false
			}
		default:
			if !e.CanAssignType(dstArg, srcArg, node, varMap) || !e.CanAssignType(srcArg, dstArg, nil, nil) {
				return false
			}
		}
	}
	return true
}

// canAssignFunction is §4.1 rule 6: Function -> Function is contravariant
// parameter-by-position, covariant return; parameter categories must
// match.
func (e *Evaluator) canAssignFunction(dst *pytype.FunctionType, src pytype.Type, node ast.Expr, varMap *pytype.TypeVarMap) bool {
	srcFn, ok := src.(*pytype.FunctionType)
	if !ok {
		if node != nil {
			diagnostics.Error(e.Sink, "Argument of type '"+src.String()+"' cannot be assigned to parameter of type '"+dst.String()+"'", node.Span())
		}
		return false
	}
	if len(dst.Parameters) != len(srcFn.Parameters) {
		return false
	}
	for i, dstParam := range dst.Parameters {
		srcParam := srcFn.Parameters[i]
		if dstParam.Category != srcParam.Category {
			return false
		}
		// contravariant: src's parameter type must accept dst's.
		if !e.CanAssignType(srcParam.Type, dstParam.Type, node, varMap) {
			return false
		}
	}
	// covariant return
	return e.CanAssignType(dst.EffectiveReturnType(), srcFn.EffectiveReturnType(), node, varMap)
}


