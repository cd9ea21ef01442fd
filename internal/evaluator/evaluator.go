// Package evaluator implements the expression type evaluator: recursive
// dispatch over expression nodes (C5), member access and descriptor
// resolution (C3), call-argument validation (C4), generic specialization
// (C2/C6), and narrowing glue (C7), gated behind an injected cache (C8).
//
// An Evaluator is single-threaded and owned by exactly one scope under
// analysis (§5) — never share one across goroutines. deadlockMu turns an
// accidental concurrent second caller into an immediate panic during tests
// instead of a silent race.
package evaluator

import (
	stderrors "errors"

	"github.com/hashicorp/go-hclog"
	deadlock "github.com/sasha-s/go-deadlock"

	"github.com/laughingirL/pyright/internal/ast"
	"github.com/laughingirL/pyright/internal/config"
	"github.com/laughingirL/pyright/internal/diagnostics"
	"github.com/laughingirL/pyright/internal/narrow"
	"github.com/laughingirL/pyright/internal/pytype"
	"github.com/laughingirL/pyright/internal/scope"
)

// errInvariant is the sentinel wrapped by every structural-invariant panic
// (§7.3) — a programming error, not a user-facing diagnostic. pkg/errors.Wrap
// attaches the call-site stack trace so it survives the unwind into test
// harnesses.
var errInvariant = stderrors.New("evaluator invariant violated")

// CacheReader/CacheWriter are the injected per-node type cache callbacks
// (C8, §5's "Shared resources"). They must be idempotent: writing the same
// type twice for the same node is permitted.
type CacheReader func(node ast.Expr) (pytype.Type, bool)
type CacheWriter func(node ast.Expr, t pytype.Type)

// Usage is what a name/member/index lookup is being evaluated for.
type Usage = ast.MemberUsage

const (
	UsageGet    = ast.MemberGet
	UsageSet    = ast.MemberSet
	UsageDelete = ast.MemberDelete
)

// Flags gates optional per-call evaluator behavior (the §4.2 flag set).
type Flags uint16

const (
	FlagNone Flags = 0
	// SkipInstanceMembers restricts member lookup to class-level fields
	// (used when resolving `Cls.name`).
	FlagSkipInstanceMembers Flags = 1 << iota
	// FlagSkipGetAttributeCheck disables the __getattribute__/__getattr__
	// fallback (§4.2).
	FlagSkipGetAttributeCheck
	// FlagSkipGetCheck disables invoking a descriptor's __get__ (used while
	// resolving a raw method definition).
	FlagSkipGetCheck
	// FlagSkipObjectBaseClass skips `object`'s own members during lookup
	// (used by __new__ resolution, §4.3).
	FlagSkipObjectBaseClass
)

// SkipForMethodLookup is the flag combination used internally to find raw
// method definitions without invoking descriptors or attribute fallbacks
// (§4.2).
const SkipForMethodLookup = FlagSkipInstanceMembers | FlagSkipGetAttributeCheck | FlagSkipGetCheck

func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

// Context threads the ambient state a recursive getType call needs beyond
// its own arguments: the lexical scope, whether we're inside an async
// function (carried for callers; no dispatch path reads it), and the
// enclosing generator's declared send type (for `yield`).
type Context struct {
	Scope          scope.Scope
	IsAsync        bool
	GeneratorSend  pytype.Type // nil outside a generator function body
}

func (ctx Context) WithScope(s scope.Scope) Context {
	ctx.Scope = s
	return ctx
}

// Evaluator is the expression type evaluator (§2's C1–C8 bundled
// together). One instance is parameterized by a configuration, a diagnostic
// sink, the cache callbacks, and a narrowing-constraint builder; the scope
// arrives per call through Context (§9 "Global mutable state — none
// required").
type Evaluator struct {
	Config          config.Configuration
	Sink            diagnostics.Sink
	ConstraintBuild narrow.Builder
	Logger          hclog.Logger

	readCache  CacheReader
	writeCache CacheWriter

	narrowStack narrow.Stack
	recursion   int

	typeVarSeq int

	deadlockMu deadlock.Mutex
}

// MaxRecursionDepth bounds getType's recursion (§5's "Recursion depth" —
// a guard counter with a diagnostic on overflow rather than a process
// abort).
const MaxRecursionDepth = 512

// New builds an Evaluator backed by an in-memory map cache (WithCache
// replaces it). A nil builder becomes narrow.NoopBuilder and a nil logger
// a null logger.
func New(cfg config.Configuration, sink diagnostics.Sink, builder narrow.Builder, logger hclog.Logger) *Evaluator {
	if builder == nil {
		builder = narrow.NoopBuilder{}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	e := &Evaluator{
		Config:          cfg,
		Sink:            sink,
		ConstraintBuild: builder,
		Logger:          logger.Named("evaluator"),
	}
	cache := make(map[ast.Expr]pytype.Type)
	e.readCache = func(node ast.Expr) (pytype.Type, bool) {
		t, ok := cache[node]
		return t, ok
	}
	e.writeCache = func(node ast.Expr, t pytype.Type) {
		cache[node] = t
	}
	return e
}

// WithCache overrides the injected cache callbacks (C8) — used by front
// ends that maintain their own per-file cache keyed some other way.
func (e *Evaluator) WithCache(read CacheReader, write CacheWriter) *Evaluator {
	e.readCache = read
	e.writeCache = write
	return e
}

// FreshTypeVar mints a new, uniquely-identified TypeVar — used internally
// by overload/generic resolution when a callee's own type params must be
// instantiated fresh per call site.
func (e *Evaluator) FreshTypeVar(name string) *pytype.TypeVarType {
	e.typeVarSeq++
	return pytype.NewTypeVarType(name)
}

// GetType is the evaluator's public entry point (§2's data-flow summary):
// consult the cache, dispatch on node kind, recurse into sub-expressions,
// apply member/call/synthesis rules as needed, pipe the result through
// narrowing, write back to the cache, and return.
//
// This is the only locking boundary (§5's single-caller-per-instance rule):
// it acquires deadlockMu once for the whole call tree and then delegates to
// getType, which recurses into sub-expressions without re-locking. Internal
// recursion must go through getType, never back through GetType, or
// go-deadlock reports recursive locking on the first compound expression.
func (e *Evaluator) GetType(ctx Context, node ast.Expr, usage Usage, flags Flags) pytype.Type {
	e.deadlockMu.Lock()
	defer e.deadlockMu.Unlock()
	return e.getType(ctx, node, usage, flags)
}

// getType is GetType's non-locking body; every recursive call within the
// evaluator (dispatch, synthesis, narrowing) calls this directly.
func (e *Evaluator) getType(ctx Context, node ast.Expr, usage Usage, flags Flags) pytype.Type {
	if cached, ok := e.readCache(node); ok {
		e.Logger.Trace("cache hit", "node", node.Span().String())
		return cached
	}

	e.recursion++
	defer func() { e.recursion-- }()
	if e.recursion > MaxRecursionDepth {
		diagnostics.Error(e.Sink, "Expression is too deeply nested to evaluate", node.Span())
		return pytype.NewUnknownType()
	}

	result := e.dispatch(ctx, node, usage, flags)
	result = e.applyScopeChainNarrowing(ctx.Scope, node, result)
	result = e.applyExpressionNarrowing(node, result)

	e.writeCache(node, result)
	return result
}


