package evaluator

import (
	"testing"

	"github.com/laughingirL/pyright/internal/ast"
	"github.com/laughingirL/pyright/internal/pytype"
)

func intLit(span ast.Span) *ast.NumberLitExpr   { return ast.NewNumberLitExpr("1", false, false, span) }
func floatLit(span ast.Span) *ast.NumberLitExpr { return ast.NewNumberLitExpr("1.5", true, false, span) }

func TestDispatchBinaryComparisonAlwaysBool(t *testing.T) {
	e, _ := newTestEvaluator()
	ctx := testContext()
	span := ast.NewSpan(0, 0)

	expr := ast.NewBinaryOpExpr(ast.OpLess, intLit(span), floatLit(span), span)
	got := e.GetType(ctx, expr, UsageGet, FlagNone)
	obj, ok := got.(*pytype.ObjectType)
	if !ok || obj.ClassType.Name != "bool" {
		t.Errorf("expected bool, got %v", got)
	}
}

func TestDispatchBinaryArithmeticPromotesToWiderRank(t *testing.T) {
	e, _ := newTestEvaluator()
	ctx := testContext()
	span := ast.NewSpan(0, 0)

	expr := ast.NewBinaryOpExpr(ast.OpAdd, intLit(span), floatLit(span), span)
	got := e.GetType(ctx, expr, UsageGet, FlagNone)
	obj, ok := got.(*pytype.ObjectType)
	if !ok || obj.ClassType.Name != "float" {
		t.Errorf("expected int+float to promote to float, got %v", got)
	}
}

func TestDispatchBinaryBitwiseRejectsFloat(t *testing.T) {
	e, sink := newTestEvaluator()
	ctx := testContext()
	span := ast.NewSpan(0, 0)

	expr := ast.NewBinaryOpExpr(ast.OpBitwiseAnd, intLit(span), floatLit(span), span)
	e.GetType(ctx, expr, UsageGet, FlagNone)
	if len(sink.Diagnostics) != 1 {
		t.Fatalf("expected a magic-method fallback diagnostic since int has no __and__, got %d: %v", len(sink.Diagnostics), sink.Diagnostics)
	}
}

func TestDispatchBinaryBitwiseBothIntReturnsInt(t *testing.T) {
	e, _ := newTestEvaluator()
	ctx := testContext()
	span := ast.NewSpan(0, 0)

	expr := ast.NewBinaryOpExpr(ast.OpBitwiseOr, intLit(span), intLit(span), span)
	got := e.GetType(ctx, expr, UsageGet, FlagNone)
	obj, ok := got.(*pytype.ObjectType)
	if !ok || obj.ClassType.Name != "int" {
		t.Errorf("expected int | int to stay int, got %v", got)
	}
}

func TestDispatchBinaryMatmulNeverUsesNumericFastPath(t *testing.T) {
	e, sink := newTestEvaluator()
	ctx := testContext()
	span := ast.NewSpan(0, 0)

	expr := ast.NewBinaryOpExpr(ast.OpMatrixMultiply, intLit(span), intLit(span), span)
	got := e.GetType(ctx, expr, UsageGet, FlagNone)
	if _, ok := got.(*pytype.UnknownType); !ok {
		t.Errorf("expected int @ int to fall through to __matmul__ (int has none) rather than promote, got %v", got)
	}
	if len(sink.Diagnostics) != 1 {
		t.Fatalf("expected a magic-method fallback diagnostic since int has no __matmul__, got %d: %v", len(sink.Diagnostics), sink.Diagnostics)
	}
}

func TestDispatchBinaryMagicMethodFallback(t *testing.T) {
	e, _ := newTestEvaluator()
	ctx := testContext()
	span := ast.NewSpan(0, 0)

	expr := ast.NewBinaryOpExpr(ast.OpAdd, ast.NewStringLitExpr("a", nil, span), ast.NewStringLitExpr("b", nil, span), span)
	got := e.GetType(ctx, expr, UsageGet, FlagNone)
	obj, ok := got.(*pytype.ObjectType)
	if !ok || obj.ClassType.Name != "str" {
		t.Errorf("expected str.__add__ fallback to yield str, got %v", got)
	}
}

func TestDispatchBinaryAndShortCircuitsOnFalsyLeft(t *testing.T) {
	e, _ := newTestEvaluator()
	ctx := testContext()
	span := ast.NewSpan(0, 0)

	left := ast.NewConstantExpr(ast.KeywordFalse, span)
	right := ast.NewConstantExpr(ast.KeywordNone, span)
	expr := ast.NewBinaryOpExpr(ast.OpAnd, left, right, span)

	got := e.GetType(ctx, expr, UsageGet, FlagNone)
	// left is definitively false, so RemoveFalsinessFromType(left) keeps it
	// unchanged and the right branch's None joins it.
	union, ok := got.(*pytype.UnionType)
	if !ok || len(union.Subtypes) != 2 {
		t.Fatalf("expected a 2-member union, got %v", got)
	}
}

func TestDispatchBinaryOrShortCircuitsOnTruthyLeft(t *testing.T) {
	e, _ := newTestEvaluator()
	ctx := testContext()
	span := ast.NewSpan(0, 0)

	left := ast.NewConstantExpr(ast.KeywordTrue, span)
	right := ast.NewConstantExpr(ast.KeywordNone, span)
	expr := ast.NewBinaryOpExpr(ast.OpOr, left, right, span)

	got := e.GetType(ctx, expr, UsageGet, FlagNone)
	union, ok := got.(*pytype.UnionType)
	if !ok || len(union.Subtypes) != 2 {
		t.Fatalf("expected a 2-member union, got %v", got)
	}
}

func TestDispatchUnaryNotAlwaysBool(t *testing.T) {
	e, _ := newTestEvaluator()
	ctx := testContext()
	span := ast.NewSpan(0, 0)

	expr := ast.NewUnaryOpExpr(ast.OpNot, intLit(span), span)
	got := e.GetType(ctx, expr, UsageGet, FlagNone)
	obj, ok := got.(*pytype.ObjectType)
	if !ok || obj.ClassType.Name != "bool" {
		t.Errorf("expected bool, got %v", got)
	}
}

func TestDispatchUnaryNegativeOnNumeric(t *testing.T) {
	e, _ := newTestEvaluator()
	ctx := testContext()
	span := ast.NewSpan(0, 0)

	expr := ast.NewUnaryOpExpr(ast.OpUnaryNegative, floatLit(span), span)
	got := e.GetType(ctx, expr, UsageGet, FlagNone)
	obj, ok := got.(*pytype.ObjectType)
	if !ok || obj.ClassType.Name != "float" {
		t.Errorf("expected float, got %v", got)
	}
}

func TestDispatchUnaryInvertRejectsFloat(t *testing.T) {
	e, sink := newTestEvaluator()
	ctx := testContext()
	span := ast.NewSpan(0, 0)

	expr := ast.NewUnaryOpExpr(ast.OpBitwiseInvert, floatLit(span), span)
	e.GetType(ctx, expr, UsageGet, FlagNone)
	if len(sink.Diagnostics) != 1 {
		t.Fatalf("expected a fallback diagnostic since float has no __inv__, got %d: %v", len(sink.Diagnostics), sink.Diagnostics)
	}
}

func TestDispatchUnaryInvertAcceptsInt(t *testing.T) {
	e, _ := newTestEvaluator()
	ctx := testContext()
	span := ast.NewSpan(0, 0)

	expr := ast.NewUnaryOpExpr(ast.OpBitwiseInvert, intLit(span), span)
	got := e.GetType(ctx, expr, UsageGet, FlagNone)
	obj, ok := got.(*pytype.ObjectType)
	if !ok || obj.ClassType.Name != "int" {
		t.Errorf("expected int, got %v", got)
	}
}


