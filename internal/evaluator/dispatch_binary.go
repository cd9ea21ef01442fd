package evaluator

import (
	"github.com/laughingirL/pyright/internal/ast"
	"github.com/laughingirL/pyright/internal/diagnostics"
	"github.com/laughingirL/pyright/internal/pytype"
)

// dispatchBinary implements §4.4's binary-operator rule, routing to the
// sub-rule each operator group gets: comparisons and identity/membership
// always yield bool, `and`/`or` short-circuit with narrowing, everything
// else goes through numeric promotion with a magic-method fallback.
func (e *Evaluator) dispatchBinary(ctx Context, node *ast.BinaryOpExpr) pytype.Type {
	switch {
	case node.Op.IsComparison():
		e.getType(ctx, node.Left, UsageGet, FlagNone)
		e.getType(ctx, node.Right, UsageGet, FlagNone)
		return ctx.Scope.GetBuiltInObject("bool")

	case node.Op == ast.OpIs || node.Op == ast.OpIsNot:
		e.getType(ctx, node.Left, UsageGet, FlagNone)
		e.getType(ctx, node.Right, UsageGet, FlagNone)
		return ctx.Scope.GetBuiltInObject("bool")

	case node.Op == ast.OpIn || node.Op == ast.OpNotIn:
		e.getType(ctx, node.Left, UsageGet, FlagNone)
		e.getType(ctx, node.Right, UsageGet, FlagNone)
		return ctx.Scope.GetBuiltInObject("bool")

	case node.Op == ast.OpAnd:
		return e.dispatchBooleanAnd(ctx, node)

	case node.Op == ast.OpOr:
		return e.dispatchBooleanOr(ctx, node)

	case node.Op.IsArithmetic() || node.Op.IsBitwise():
		return e.dispatchArithmeticOrBitwise(ctx, node)

	default:
		diagnostics.Error(e.Sink, "Unsupported operator", node.Span())
		return pytype.NewUnknownType()
	}
}

// dispatchBooleanAnd implements `a and b`: if a is falsy, the result is a;
// otherwise the result is b, evaluated under a's truthy narrowing.
func (e *Evaluator) dispatchBooleanAnd(ctx Context, node *ast.BinaryOpExpr) pytype.Type {
	leftType := e.getType(ctx, node.Left, UsageGet, FlagNone)
	constraints := e.conditionalConstraintsFor(ctx, node.Left)
	rightType := e.pushBranchConstraints(constraints.IfConstraints, func() pytype.Type {
		return e.getType(ctx, node.Right, UsageGet, FlagNone)
	})
	return CombineTypes([]pytype.Type{RemoveFalsinessFromType(leftType), rightType})
}

// dispatchBooleanOr implements `a or b`: if a is truthy, the result is a;
// otherwise the result is b, evaluated under a's falsy narrowing.
func (e *Evaluator) dispatchBooleanOr(ctx Context, node *ast.BinaryOpExpr) pytype.Type {
	leftType := e.getType(ctx, node.Left, UsageGet, FlagNone)
	constraints := e.conditionalConstraintsFor(ctx, node.Left)
	rightType := e.pushBranchConstraints(constraints.ElseConstraints, func() pytype.Type {
		return e.getType(ctx, node.Right, UsageGet, FlagNone)
	})
	return CombineTypes([]pytype.Type{RemoveTruthinessFromType(leftType), rightType})
}

// numericRank classifies an Object's built-in numeric class for the
// int -> float -> complex promotion ladder (§4.4); bool ranks with int.
func numericRank(t pytype.Type) (int, bool) {
	obj, ok := t.(*pytype.ObjectType)
	if !ok {
		return 0, false
	}
	switch obj.ClassType.Name {
	case "bool", "int":
		return 1, true
	case "float":
		return 2, true
	case "complex":
		return 3, true
	}
	return 0, false
}

func (e *Evaluator) dispatchArithmeticOrBitwise(ctx Context, node *ast.BinaryOpExpr) pytype.Type {
	leftType := e.getType(ctx, node.Left, UsageGet, FlagNone)
	rightType := e.getType(ctx, node.Right, UsageGet, FlagNone)

	if promoted, ok := e.numericPromotion(ctx, node.Op, leftType, rightType); ok {
		return promoted
	}
	return e.magicMethodBinary(ctx, node, leftType, rightType)
}

// numericPromotion implements §4.4's "numeric fast path": for arithmetic
// operators, the wider of the two built-in numeric ranks; for bitwise
// operators, only int/bool operands qualify and the result is always int.
func (e *Evaluator) numericPromotion(ctx Context, op ast.OperatorType, left, right pytype.Type) (pytype.Type, bool) {
	if op == ast.OpMatrixMultiply {
		// §4.4: matmul has no built-in numeric meaning and always falls
		// through to __matmul__, even for two int/float operands.
		return nil, false
	}
	leftRank, leftOK := numericRank(left)
	rightRank, rightOK := numericRank(right)
	if !leftOK || !rightOK {
		return nil, false
	}
	if op.IsBitwise() {
		if leftRank > 1 || rightRank > 1 {
			return nil, false
		}
		return ctx.Scope.GetBuiltInObject("int"), true
	}
	rank := leftRank
	if rightRank > rank {
		rank = rightRank
	}
	switch rank {
	case 1:
		return ctx.Scope.GetBuiltInObject("int"), true
	case 2:
		return ctx.Scope.GetBuiltInObject("float"), true
	default:
		return ctx.Scope.GetBuiltInObject("complex"), true
	}
}

// magicMethodBinary implements §4.4's fallback: dispatch to the operator's
// magic method on the left operand's class, passing the right operand as
// its sole argument.
func (e *Evaluator) magicMethodBinary(ctx Context, node *ast.BinaryOpExpr, left, right pytype.Type) pytype.Type {
	dunder := node.Op.MagicMethodName()
	if dunder == "" {
		diagnostics.Error(e.Sink, "Unsupported operator", node.Span())
		return pytype.NewUnknownType()
	}
	obj, ok := left.(*pytype.ObjectType)
	if !ok {
		diagnostics.Error(e.Sink, "Operator not supported for type '"+left.String()+"'", node.Span())
		return pytype.NewUnknownType()
	}
	sym, _ := LookUpClassMember(obj.ClassType, dunder, true, true)
	if sym == nil {
		diagnostics.Error(e.Sink, "Operator '"+dunder+"' not supported between instances of '"+left.String()+"' and '"+right.String()+"'", node.Span())
		return pytype.NewUnknownType()
	}
	fn, ok := sym.EffectiveType().(*pytype.FunctionType)
	if !ok {
		return pytype.NewUnknownType()
	}
	bound := BindFunctionToClassOrObject(left, fn)
	args := []pytype.FunctionArgument{{Category: pytype.ArgSimple, Type: right}}
	return e.ValidateCall(ctx, node, args, bound, pytype.NewTypeVarMap())
}

// dispatchUnary implements §4.4's unary rule: `not` always yields bool;
// +/-/~ take the numeric fast path when the operand is numeric, else fall
// back to the operator's magic method.
func (e *Evaluator) dispatchUnary(ctx Context, node *ast.UnaryOpExpr) pytype.Type {
	operandType := e.getType(ctx, node.Operand, UsageGet, FlagNone)

	if node.Op == ast.OpNot {
		return ctx.Scope.GetBuiltInObject("bool")
	}

	if rank, ok := numericRank(operandType); ok {
		if node.Op == ast.OpBitwiseInvert {
			if rank == 1 {
				return ctx.Scope.GetBuiltInObject("int")
			}
		} else {
			switch rank {
			case 1:
				return ctx.Scope.GetBuiltInObject("int")
			case 2:
				return ctx.Scope.GetBuiltInObject("float")
			default:
				return ctx.Scope.GetBuiltInObject("complex")
			}
		}
	}

	return e.magicMethodUnary(ctx, node, operandType)
}

func (e *Evaluator) magicMethodUnary(ctx Context, node *ast.UnaryOpExpr, operand pytype.Type) pytype.Type {
	dunder := node.Op.MagicMethodName()
	if dunder == "" {
		diagnostics.Error(e.Sink, "Unsupported operator", node.Span())
		return pytype.NewUnknownType()
	}
	obj, ok := operand.(*pytype.ObjectType)
	if !ok {
		diagnostics.Error(e.Sink, "Operator not supported for type '"+operand.String()+"'", node.Span())
		return pytype.NewUnknownType()
	}
	sym, _ := LookUpClassMember(obj.ClassType, dunder, true, true)
	if sym == nil {
		diagnostics.Error(e.Sink, "Operator '"+dunder+"' not supported for type '"+operand.String()+"'", node.Span())
		return pytype.NewUnknownType()
	}
	fn, ok := sym.EffectiveType().(*pytype.FunctionType)
	if !ok {
		return pytype.NewUnknownType()
	}
	bound := BindFunctionToClassOrObject(operand, fn)
	return e.ValidateCall(ctx, node, nil, bound, pytype.NewTypeVarMap())
}


