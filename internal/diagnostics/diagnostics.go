// Package diagnostics is the evaluator's output gateway (C8, §6/§7):
// error/warning routing, the three configurable diagnostics, and batch
// aggregation for call-argument validation.
package diagnostics

import (
	"github.com/hashicorp/go-multierror"

	"github.com/laughingirL/pyright/internal/ast"
)

// Kind is the diagnostic's severity bucket on the wire (§6).
type Kind int

const (
	KindError Kind = iota
	KindWarning
)

func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	return "warning"
}

// Level is a configurable diagnostic's reporting level (§6): emit as an
// error, emit as a warning, or suppress entirely.
type Level string

const (
	LevelNone    Level = "none"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Diagnostic is one reported finding (§6): kind, message, and the node
// range it was raised against.
type Diagnostic struct {
	Kind    Kind
	Message string
	Range   ast.Span
}

func (d Diagnostic) Error() string { return d.Message }

// Sink is the abstract diagnostic destination the evaluator is
// parameterized by (§6's exposed surface, §7's "never throw"). Concrete
// sinks (collecting, forwarding to an LSP connection, etc.) implement it;
// the evaluator never assumes a particular one.
type Sink interface {
	Report(Diagnostic)
}

// SinkFunc adapts a plain function to a Sink.
type SinkFunc func(Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

// CollectingSink accumulates every diagnostic reported to it, in order.
// It's the sink the evaluator's own tests and the CLI demo use; an LSP
// front end would instead forward each Report call over the wire.
type CollectingSink struct {
	Diagnostics []Diagnostic
}

func NewCollectingSink() *CollectingSink {
	return &CollectingSink{}
}

func (s *CollectingSink) Report(d Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
}

// Errors returns every KindError diagnostic collected so far, aggregated
// through hashicorp/go-multierror so a caller validating one call's
// arguments (§4.3, which can raise several errors before giving up) can
// treat the batch as a single error value as well as inspect it
// diagnostic-by-diagnostic.
func (s *CollectingSink) Errors() *multierror.Error {
	var result *multierror.Error
	for _, d := range s.Diagnostics {
		if d.Kind == KindError {
			result = multierror.Append(result, d)
		}
	}
	return result
}

// NullSink discards every diagnostic reported to it. Used by the evaluator
// while probing overloads speculatively (§5 "Silenced-diagnostic scope").
type NullSink struct{}

func (NullSink) Report(Diagnostic) {}

// AddDiagnostic routes a configurable diagnostic (§6's "Error-level
// mapping", §7.2) through level, reporting it as the given message/range
// pair at the mapped severity, or suppressing it entirely when level is
// LevelNone.
func AddDiagnostic(sink Sink, level Level, message string, rng ast.Span) {
	switch level {
	case LevelError:
		sink.Report(Diagnostic{Kind: KindError, Message: message, Range: rng})
	case LevelWarning:
		sink.Report(Diagnostic{Kind: KindWarning, Message: message, Range: rng})
	case LevelNone:
		// suppressed
	}
}

// Error reports an unconditional diagnostic error (§7.1's "user-facing
// type mismatches").
func Error(sink Sink, message string, rng ast.Span) {
	sink.Report(Diagnostic{Kind: KindError, Message: message, Range: rng})
}

// Warning reports an unconditional diagnostic warning.
func Warning(sink Sink, message string, rng ast.Span) {
	sink.Report(Diagnostic{Kind: KindWarning, Message: message, Range: rng})
}


