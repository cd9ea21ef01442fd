package evaluator

import (
	"github.com/laughingirL/pyright/internal/ast"
	"github.com/laughingirL/pyright/internal/narrow"
	"github.com/laughingirL/pyright/internal/pytype"
	"github.com/laughingirL/pyright/internal/scope"
)

// applyScopeChainNarrowing walks from s upward through Temporary scopes
// only (§4.6), applying each scope's own constraints to t in outer-first
// order, stopping early if a constraint blocks subsequent ones.
func (e *Evaluator) applyScopeChainNarrowing(s scope.Scope, node ast.Expr, t pytype.Type) pytype.Type {
	var chain []scope.Scope
	for cur := s; cur != nil && cur.GetKind() == scope.Temporary; cur = cur.GetParent() {
		chain = append(chain, cur)
	}
	// chain is innermost-first; walk it in reverse for outer-first order.
	for i := len(chain) - 1; i >= 0; i-- {
		blocked := false
		for _, c := range chain[i].GetTypeConstraints() {
			t = asPytype(c.ApplyToType(node, t), t)
			if c.BlockSubsequentConstraints(node) {
				blocked = true
				break
			}
		}
		if blocked {
			break
		}
	}
	return t
}

// applyExpressionNarrowing applies whatever constraint frames are
// currently pushed on the expression-level stack (§4.6's "within a single
// expression" stack, used by ternary/and/or branch evaluation).
func (e *Evaluator) applyExpressionNarrowing(node ast.Expr, t pytype.Type) pytype.Type {
	return asPytype(e.narrowStack.Apply(node, t), t)
}

func asPytype(v narrow.TypeLike, fallback pytype.Type) pytype.Type {
	if t, ok := v.(pytype.Type); ok {
		return t
	}
	return fallback
}

// pushBranchConstraints evaluates fn with constraints pushed onto the
// expression-level narrowing stack, guaranteeing the pop happens even if
// fn panics (§5's "exception-safe" push/pop requirement).
func (e *Evaluator) pushBranchConstraints(constraints []narrow.Constraint, fn func() pytype.Type) pytype.Type {
	e.narrowStack.Push(constraints)
	defer e.narrowStack.Pop()
	return fn()
}

// conditionalConstraintsFor asks the injected narrowing builder for the
// if/else constraint sets derived from cond, using e.getType as the
// builder's evalFn (§6).
func (e *Evaluator) conditionalConstraintsFor(ctx Context, cond ast.Expr) narrow.ConditionalConstraints {
	evalFn := func(n ast.Expr) narrow.TypeLike {
		return e.getType(ctx, n, UsageGet, FlagNone)
	}
	return e.ConstraintBuild.BuildTypeConstraintsForConditional(cond, evalFn)
}


