package evaluator

import (
	"github.com/laughingirL/pyright/internal/ast"
	"github.com/laughingirL/pyright/internal/diagnostics"
	"github.com/laughingirL/pyright/internal/pytype"
)

// dispatch implements §4.4's getType switch over expression kinds: the
// heart of C5. getType (evaluator.go) wraps this with caching, recursion
// guarding, and narrowing; dispatch itself never touches the cache.
func (e *Evaluator) dispatch(ctx Context, node ast.Expr, usage Usage, flags Flags) pytype.Type {
	switch node := node.(type) {
	case *ast.NameExpr:
		return e.dispatchName(ctx, node, usage)

	case *ast.MemberAccessExpr:
		base := e.getType(ctx, node.Object, UsageGet, FlagNone)
		return e.GetMember(ctx, base, node.Name, usage, flags, node)

	case *ast.IndexExpr:
		return e.dispatchIndex(ctx, node)

	case *ast.CallExpr:
		return e.dispatchCall(ctx, node)

	case *ast.TupleExpr:
		return e.dispatchContainer(ctx, "tuple", node.Elems, node)
	case *ast.ListExpr:
		return e.dispatchContainer(ctx, "list", node.Elems, node)
	case *ast.SetExpr:
		return e.dispatchContainer(ctx, "set", node.Elems, node)

	case *ast.DictExpr:
		// §9: dict displays never infer key/value types from their entries.
		return ctx.Scope.GetBuiltInObject("dict", pytype.NewUnknownType(), pytype.NewUnknownType())

	case *ast.UnaryOpExpr:
		return e.dispatchUnary(ctx, node)
	case *ast.BinaryOpExpr:
		return e.dispatchBinary(ctx, node)

	case *ast.TernaryExpr:
		return e.dispatchTernary(ctx, node)

	case *ast.AwaitExpr:
		return e.dispatchAwait(ctx, node)
	case *ast.YieldExpr:
		return e.dispatchYield(ctx, node)
	case *ast.YieldFromExpr:
		return e.dispatchYieldFrom(ctx, node)

	case *ast.LambdaExpr:
		return e.dispatchLambda(ctx, node)

	case *ast.ComprehensionExpr:
		// §1 Non-goals / §9: comprehensions are a stub — element-type
		// inference through their clauses is not implemented.
		return pytype.NewUnknownType()

	case *ast.SliceExpr:
		return e.dispatchSlice(ctx, node)

	case *ast.AssignmentExpr:
		return e.dispatchAssignment(ctx, node)

	case *ast.TypeAnnotationExpr:
		return e.evaluateTypeExpr(ctx, node.Annotation)

	case *ast.ConstantExpr:
		return e.dispatchConstant(ctx, node)

	case *ast.NumberLitExpr:
		return e.dispatchNumberLit(ctx, node)

	case *ast.StringLitExpr:
		if node.TypeComment != nil {
			return e.evaluateTypeExpr(ctx, node.TypeComment)
		}
		return ctx.Scope.GetBuiltInObject("str")

	default:
		diagnostics.Error(e.Sink, "Unhandled expression type", node.Span())
		return pytype.NewUnknownType()
	}
}

func (e *Evaluator) dispatchName(ctx Context, node *ast.NameExpr, usage Usage) pytype.Type {
	result := ctx.Scope.LookUpSymbolRecursive(node.Name)
	if result == nil {
		if usage != UsageGet {
			return pytype.NewUnknownType()
		}
		diagnostics.Error(e.Sink, "'"+node.Name+"' is not defined", node.Span())
		return pytype.NewUnknownType()
	}
	return result.Symbol.EffectiveType()
}

// dispatchContainer implements §4.4's homogeneous-container literal rule:
// the built-in is specialized to the combined type of its elements (Unknown
// for an empty display).
func (e *Evaluator) dispatchContainer(ctx Context, builtin string, elems []ast.Expr, node ast.Expr) pytype.Type {
	if len(elems) == 0 {
		return ctx.Scope.GetBuiltInObject(builtin, pytype.NewUnknownType())
	}
	elemTypes := make([]pytype.Type, len(elems))
	for i, elem := range elems {
		elemTypes[i] = e.getType(ctx, elem, UsageGet, FlagNone)
	}
	return ctx.Scope.GetBuiltInObject(builtin, CombineTypes(elemTypes))
}

func (e *Evaluator) dispatchTernary(ctx Context, node *ast.TernaryExpr) pytype.Type {
	constraints := e.conditionalConstraintsFor(ctx, node.Cond)

	thenType := e.pushBranchConstraints(constraints.IfConstraints, func() pytype.Type {
		return e.getType(ctx, node.Then, UsageGet, FlagNone)
	})
	elseType := e.pushBranchConstraints(constraints.ElseConstraints, func() pytype.Type {
		return e.getType(ctx, node.Else, UsageGet, FlagNone)
	})
	return CombineTypes([]pytype.Type{thenType, elseType})
}

// dispatchAwait implements §4.4's await rule: for an Object(C), resolve
// `__await__` (falling back to the awaited expression's own type for any
// other base, since `await` on a non-awaitable is a runtime error the
// checker doesn't model further).
func (e *Evaluator) dispatchAwait(ctx Context, node *ast.AwaitExpr) pytype.Type {
	inner := e.getType(ctx, node.Value, UsageGet, FlagNone)
	obj, ok := inner.(*pytype.ObjectType)
	if !ok {
		return inner
	}
	sym, _ := LookUpClassMember(obj.ClassType, "__await__", true, true)
	if sym == nil {
		return inner
	}
	fn, ok := sym.EffectiveType().(*pytype.FunctionType)
	if !ok {
		return inner
	}
	return fn.EffectiveReturnType()
}

// dispatchYield / dispatchYieldFrom implement §4.4's generator rules: the
// expression's type is the enclosing generator's declared send type,
// threaded in through Context.
func (e *Evaluator) dispatchYield(ctx Context, node *ast.YieldExpr) pytype.Type {
	if node.Value != nil {
		e.getType(ctx, node.Value, UsageGet, FlagNone)
	}
	if ctx.GeneratorSend != nil {
		return ctx.GeneratorSend
	}
	return pytype.NewNoneType()
}

func (e *Evaluator) dispatchYieldFrom(ctx Context, node *ast.YieldFromExpr) pytype.Type {
	e.getType(ctx, node.Value, UsageGet, FlagNone)
	if ctx.GeneratorSend != nil {
		return ctx.GeneratorSend
	}
	return pytype.NewUnknownType()
}

func (e *Evaluator) dispatchLambda(ctx Context, node *ast.LambdaExpr) pytype.Type {
	fn := pytype.NewFunctionType(pytype.FunctionFlagNone)
	for _, p := range node.Params {
		var declType pytype.Type = pytype.NewUnknownType()
		if p.Annotation != nil {
			declType = e.evaluateTypeExpr(ctx, p.Annotation)
		}
		var category pytype.ParamCategory
		switch p.Category {
		case ast.ParamVarArgList:
			category = pytype.ParamVarArgList
		case ast.ParamVarArgDictionary:
			category = pytype.ParamVarArgDictionary
		default:
			category = pytype.ParamSimple
		}
		param := &pytype.Param{
			Category:   category,
			HasDefault: p.HasDefault,
			Type:       declType,
		}
		if p.Name != "" {
			param.Name = optionSome(p.Name)
		}
		fn.AddParameter(param)
	}
	bodyType := e.getType(ctx, node.Body, UsageGet, FlagNone)
	fn.InferredReturnType = optionSome[pytype.Type](bodyType)
	return fn
}

// dispatchSlice is §9's stub: a slice subscript always evaluates to a
// set-specialized placeholder rather than the `slice` built-in.
func (e *Evaluator) dispatchSlice(ctx Context, node *ast.SliceExpr) pytype.Type {
	for _, part := range []ast.Expr{node.Lower, node.Upper, node.Step} {
		if part != nil {
			e.getType(ctx, part, UsageGet, FlagNone)
		}
	}
	return ctx.Scope.GetBuiltInObject("set", pytype.NewUnknownType())
}

func (e *Evaluator) dispatchAssignment(ctx Context, node *ast.AssignmentExpr) pytype.Type {
	valueType := e.getType(ctx, node.Value, UsageGet, FlagNone)
	e.getType(ctx, node.Target, UsageSet, FlagNone)
	return valueType
}

func (e *Evaluator) dispatchConstant(ctx Context, node *ast.ConstantExpr) pytype.Type {
	switch node.Keyword {
	case ast.KeywordNone:
		return pytype.NewNoneType()
	case ast.KeywordTrue:
		return ctx.Scope.GetBuiltInObject("bool").(*pytype.ObjectType).WithTruthy(true)
	case ast.KeywordFalse:
		return ctx.Scope.GetBuiltInObject("bool").(*pytype.ObjectType).WithTruthy(false)
	case ast.KeywordDebug:
		return ctx.Scope.GetBuiltInObject("bool")
	default:
		return pytype.NewUnknownType()
	}
}

func (e *Evaluator) dispatchNumberLit(ctx Context, node *ast.NumberLitExpr) pytype.Type {
	switch {
	case node.IsComplex:
		return ctx.Scope.GetBuiltInObject("complex")
	case node.IsFloat:
		return ctx.Scope.GetBuiltInObject("float")
	default:
		return ctx.Scope.GetBuiltInObject("int")
	}
}

// dispatchCall implements §4.4's Call rule: evaluate the callee and each
// argument, then hand off to the call matcher (C4).
func (e *Evaluator) dispatchCall(ctx Context, node *ast.CallExpr) pytype.Type {
	if synthesized, ok := e.trySynthesizeCall(ctx, node); ok {
		return synthesized
	}

	callee := e.getType(ctx, node.Callee, UsageGet, FlagNone)

	args := make([]pytype.FunctionArgument, len(node.Args))
	for i, a := range node.Args {
		args[i] = pytype.FunctionArgument{
			ValueExpression: a.Value,
			Category:        a.Category,
			Name:            a.Name,
			Type:            e.getType(ctx, a.Value, UsageGet, FlagNone),
		}
	}

	varMap := pytype.NewTypeVarMap()
	return e.ValidateCall(ctx, node, args, callee, varMap)
}


