package evaluator

import (
	"github.com/laughingirL/pyright/internal/ast"
	"github.com/laughingirL/pyright/internal/diagnostics"
	"github.com/laughingirL/pyright/internal/pytype"
	"github.com/laughingirL/pyright/internal/set"
)

// specialForms names the built-ins C6 gives non-uniform subscription
// semantics to (§4.5): each is looked up by name rather than going through
// CloneForSpecialization's positional-padding rule.
var specialForms = map[string]bool{
	"Callable": true, "Optional": true, "Union": true, "Type": true,
	"Tuple": true, "List": true, "Set": true, "FrozenSet": true,
	"Deque": true, "Dict": true, "DefaultDict": true, "ChainMap": true,
	"Protocol": true, "ClassVar": true, "Generic": true,
}

// dispatchIndex implements §4.4's Subscription rule: generic specialization
// when the base is a Class, the special-form synthesizer when the class is
// one of §4.5's non-uniform forms, and the §9 stub for any other base.
func (e *Evaluator) dispatchIndex(ctx Context, node *ast.IndexExpr) pytype.Type {
	base := e.getType(ctx, node.Object, UsageGet, FlagNone)
	class, ok := base.(*pytype.ClassType)
	if !ok {
		// Subscripting a non-class value (e.g. `x[0]` on an instance) isn't
		// modeled in this revision (§9); the type is simply Unknown.
		e.getType(ctx, node.Index, UsageGet, FlagNone)
		return pytype.NewUnknownType()
	}

	resolved := resolveAlias(class)
	if specialForms[resolved.Name] {
		return e.synthesizeSpecialForm(ctx, resolved.Name, node.Index, node)
	}

	typeArgs := e.evaluateTypeArgList(ctx, node.Index)
	return class.CloneForSpecialization(typeArgs)
}

// evaluateTypeExpr evaluates expr in "type expression" position: the same
// dispatch as a value expression, since classes, TypeVars, and synthesized
// special forms are themselves first-class Type values in this model.
func (e *Evaluator) evaluateTypeExpr(ctx Context, expr ast.Expr) pytype.Type {
	if expr == nil {
		return pytype.NewAnyType()
	}
	return e.getType(ctx, expr, UsageGet, FlagNone)
}

// evaluateTypeArgList splits a subscript's index expression into its
// component type arguments: a bare Tuple display is multiple arguments,
// anything else is a single argument.
func (e *Evaluator) evaluateTypeArgList(ctx Context, index ast.Expr) []pytype.Type {
	if tuple, ok := index.(*ast.TupleExpr); ok {
		args := make([]pytype.Type, len(tuple.Elems))
		for i, elem := range tuple.Elems {
			args[i] = e.evaluateTypeExpr(ctx, elem)
		}
		return args
	}
	return []pytype.Type{e.evaluateTypeExpr(ctx, index)}
}

// synthesizeSpecialForm implements §4.5/C6: each special form's own
// subscription rule.
func (e *Evaluator) synthesizeSpecialForm(ctx Context, name string, index ast.Expr, node ast.Expr) pytype.Type {
	switch name {
	case "Callable":
		return e.synthesizeCallable(ctx, index, node)
	case "Optional":
		arg := e.evaluateTypeExpr(ctx, index)
		return CombineTypes([]pytype.Type{arg, pytype.NewNoneType()})
	case "Union":
		args := e.evaluateTypeArgList(ctx, index)
		return CombineTypes(args)
	case "Type":
		arg := e.evaluateTypeExpr(ctx, index)
		if obj, ok := arg.(*pytype.ObjectType); ok {
			return obj.ClassType
		}
		return arg
	case "ClassVar":
		// ClassVar[X] erases to X at the type-evaluation layer (§4.5); only
		// the scope builder cares about the class-vs-instance distinction.
		return e.evaluateTypeExpr(ctx, index)
	case "Tuple":
		return e.synthesizeTuple(ctx, index, node)
	case "List":
		return ctx.Scope.GetBuiltInObject("list", e.evaluateTypeExpr(ctx, index))
	case "Set":
		return ctx.Scope.GetBuiltInObject("set", e.evaluateTypeExpr(ctx, index))
	case "FrozenSet":
		return ctx.Scope.GetBuiltInObject("frozenset", e.evaluateTypeExpr(ctx, index))
	case "Deque":
		return e.synthesizeAtMostOneArg(ctx, "deque", index)
	case "Dict":
		return e.synthesizeExactlyTwoArgs(ctx, "dict", index, node)
	case "DefaultDict":
		return e.synthesizeExactlyTwoArgs(ctx, "defaultdict", index, node)
	case "ChainMap":
		return e.synthesizeAtMostNArgs(ctx, "chainmap", index, 2)
	case "Protocol":
		return e.synthesizeProtocol(ctx, index, node)
	case "Generic":
		return e.synthesizeGeneric(ctx, index, node)
	default:
		diagnostics.Error(e.Sink, "Unsupported special form '"+name+"'", node.Span())
		return pytype.NewUnknownType()
	}
}

// synthesizeCallable implements `Callable[[A, B], R]` / `Callable[..., R]`
// (§4.5): the parameter list is `...` (any arguments, modeled with a single
// `*args: Any` parameter) or an explicit bracketed list of argument types.
func (e *Evaluator) synthesizeCallable(ctx Context, index ast.Expr, node ast.Expr) pytype.Type {
	tuple, ok := index.(*ast.TupleExpr)
	if !ok || len(tuple.Elems) != 2 {
		diagnostics.Error(e.Sink, "Callable requires exactly two type arguments", node.Span())
		return pytype.NewUnknownType()
	}
	paramsExpr, returnExpr := tuple.Elems[0], tuple.Elems[1]

	fn := pytype.NewFunctionType(pytype.FunctionFlagNone)
	if paramsList, ok := paramsExpr.(*ast.ListExpr); ok {
		for _, p := range paramsList.Elems {
			fn.AddParameter(&pytype.Param{Category: pytype.ParamSimple, Type: e.evaluateTypeExpr(ctx, p)})
		}
	} else {
		// `...`: any argument list is accepted.
		fn.AddParameter(&pytype.Param{Category: pytype.ParamVarArgList, Type: pytype.NewAnyType()})
	}
	fn.DeclaredReturnType = optionSome[pytype.Type](e.evaluateTypeExpr(ctx, returnExpr))
	return fn
}

// synthesizeTuple implements `Tuple[A, B, ...]` / `Tuple[A, ...]` (ellipsis
// only in last position, §4.5): a fixed heterogeneous arity, or a
// homogeneous variable-length tuple when the last element is `...`.
func (e *Evaluator) synthesizeTuple(ctx Context, index ast.Expr, node ast.Expr) pytype.Type {
	elems := []ast.Expr{index}
	if tuple, ok := index.(*ast.TupleExpr); ok {
		elems = tuple.Elems
	}

	homogeneous := false
	if len(elems) >= 2 {
		if ell, ok := elems[len(elems)-1].(*ast.ConstantExpr); ok && ell.Keyword == ast.KeywordDebug {
			// No dedicated ellipsis literal node exists in this AST
			// revision; a bare `...` argument is not yet distinguishable
			// from other constants at parse time. Treated as homogeneous
			// only when the parser tags it this way. See DESIGN.md.
			homogeneous = true
			elems = elems[:len(elems)-1]
		}
	}

	argTypes := make([]pytype.Type, len(elems))
	for i, elem := range elems {
		argTypes[i] = e.evaluateTypeExpr(ctx, elem)
	}

	if homogeneous {
		return ctx.Scope.GetBuiltInObject("tuple", CombineTypes(argTypes))
	}

	base := ctx.Scope.GetBuiltInType("tuple")
	class, ok := base.(*pytype.ClassType)
	if !ok {
		diagnostics.Error(e.Sink, "'tuple' is not registered as a built-in class", node.Span())
		return pytype.NewUnknownType()
	}
	clone := class.Copy().(*pytype.ClassType)
	clone.TypeArgs = argTypes
	return pytype.NewObjectType(clone)
}

func (e *Evaluator) synthesizeAtMostOneArg(ctx Context, builtin string, index ast.Expr) pytype.Type {
	if index == nil {
		return ctx.Scope.GetBuiltInObject(builtin, pytype.NewUnknownType())
	}
	return ctx.Scope.GetBuiltInObject(builtin, e.evaluateTypeExpr(ctx, index))
}

func (e *Evaluator) synthesizeAtMostNArgs(ctx Context, builtin string, index ast.Expr, maxArgs int) pytype.Type {
	args := e.evaluateTypeArgList(ctx, index)
	if len(args) > maxArgs {
		args = args[:maxArgs]
	}
	return ctx.Scope.GetBuiltInObject(builtin, args...)
}

func (e *Evaluator) synthesizeExactlyTwoArgs(ctx Context, builtin string, index ast.Expr, node ast.Expr) pytype.Type {
	args := e.evaluateTypeArgList(ctx, index)
	if len(args) != 2 {
		diagnostics.Error(e.Sink, "'"+builtin+"' requires exactly two type arguments", node.Span())
		return ctx.Scope.GetBuiltInObject(builtin, pytype.NewUnknownType(), pytype.NewUnknownType())
	}
	return ctx.Scope.GetBuiltInObject(builtin, args...)
}

// synthesizeProtocol implements `Protocol[T, ...]` (§4.5): unbounded,
// including zero type arguments (a bare `Protocol` base is valid and
// carries no type parameters at all).
func (e *Evaluator) synthesizeProtocol(ctx Context, index ast.Expr, node ast.Expr) pytype.Type {
	class := pytype.NewClassType("Protocol", pytype.ClassFlagProtocol|pytype.ClassFlagSpecialBuiltIn)
	if index == nil {
		return class
	}
	for _, arg := range e.evaluateTypeArgList(ctx, index) {
		tv, ok := arg.(*pytype.TypeVarType)
		if !ok {
			diagnostics.Error(e.Sink, "Protocol type arguments must be TypeVars", node.Span())
			continue
		}
		class.TypeParams = append(class.TypeParams, tv)
	}
	return class
}

// synthesizeGeneric implements `Generic[T1, T2, ...]` (§4.5): at least one
// type argument, and every argument must be a distinct TypeVar.
func (e *Evaluator) synthesizeGeneric(ctx Context, index ast.Expr, node ast.Expr) pytype.Type {
	args := e.evaluateTypeArgList(ctx, index)
	if len(args) == 0 {
		diagnostics.Error(e.Sink, "Generic requires at least one type argument", node.Span())
		return pytype.NewUnknownType()
	}
	seen := set.NewSet[uint64]()
	class := pytype.NewClassType("Generic", pytype.ClassFlagSpecialBuiltIn)
	for _, arg := range args {
		tv, ok := arg.(*pytype.TypeVarType)
		if !ok {
			diagnostics.Error(e.Sink, "Generic type arguments must be TypeVars", node.Span())
			continue
		}
		if seen.Contains(tv.ID()) {
			diagnostics.Error(e.Sink, "Duplicate TypeVar '"+tv.Name+"' in Generic", node.Span())
			continue
		}
		seen.Add(tv.ID())
		class.TypeParams = append(class.TypeParams, tv)
	}
	return class
}

// trySynthesizeCall intercepts the call forms C6 handles specially before
// the ordinary call matcher ever sees them: `TypeVar(...)` and
// `NamedTuple(...)`.
func (e *Evaluator) trySynthesizeCall(ctx Context, node *ast.CallExpr) (pytype.Type, bool) {
	name, ok := node.Callee.(*ast.NameExpr)
	if !ok {
		return nil, false
	}
	switch name.Name {
	case "TypeVar":
		return e.synthesizeTypeVar(ctx, node), true
	case "NamedTuple":
		return e.synthesizeNamedTupleCall(ctx, node), true
	default:
		return nil, false
	}
}

// synthesizeTypeVar implements the `TypeVar(name, *constraints, bound=...,
// covariant=..., contravariant=...)` constructor (§4.5): the first
// positional argument must be a string literal; bound and a non-empty
// constraint list are mutually exclusive, as are covariant and
// contravariant.
func (e *Evaluator) synthesizeTypeVar(ctx Context, node *ast.CallExpr) pytype.Type {
	if len(node.Args) == 0 {
		diagnostics.Error(e.Sink, "TypeVar requires a name argument", node.Span())
		return pytype.NewUnknownType()
	}
	nameLit, ok := node.Args[0].Value.(*ast.StringLitExpr)
	if !ok {
		diagnostics.Error(e.Sink, "TypeVar's first argument must be a string literal", node.Span())
		return pytype.NewUnknownType()
	}

	tv := pytype.NewTypeVarType(nameLit.Value)

	var constraints []pytype.Type
	var covariant, contravariant, hasBound bool

	for _, arg := range node.Args[1:] {
		if arg.Name == nil {
			constraints = append(constraints, e.evaluateTypeExpr(ctx, arg.Value))
			continue
		}
		switch arg.Name.Name {
		case "bound":
			tv.Bound = optionSome[pytype.Type](e.evaluateTypeExpr(ctx, arg.Value))
			hasBound = true
		case "covariant":
			if lit, ok := arg.Value.(*ast.ConstantExpr); ok {
				covariant = lit.Keyword == ast.KeywordTrue
			}
		case "contravariant":
			if lit, ok := arg.Value.(*ast.ConstantExpr); ok {
				contravariant = lit.Keyword == ast.KeywordTrue
			}
		}
	}

	if hasBound && len(constraints) > 0 {
		diagnostics.Error(e.Sink, "TypeVar cannot have both a bound and constraints", node.Span())
	}
	if covariant && contravariant {
		diagnostics.Error(e.Sink, "TypeVar cannot be both covariant and contravariant", node.Span())
	}

	tv.Constraints = constraints
	switch {
	case covariant:
		tv.Variance = pytype.Covariant
	case contravariant:
		tv.Variance = pytype.Contravariant
	default:
		tv.Variance = pytype.Invariant
	}
	return tv
}


