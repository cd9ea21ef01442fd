// Command pyright-eval is a minimal demonstration front end for the
// expression type evaluator: it wires a configuration, a diagnostic sink,
// and the built-in prelude scope together, evaluates a single hard-coded
// expression tree, and prints whatever diagnostics fall out.
//
// A real front end's tokenizer, parser, and scope builder are external
// collaborators this module never implements (§1); this binary exists only
// to exercise the wiring end to end.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/laughingirL/pyright/internal/ast"
	"github.com/laughingirL/pyright/internal/config"
	"github.com/laughingirL/pyright/internal/diagnostics"
	"github.com/laughingirL/pyright/internal/evaluator"
	"github.com/laughingirL/pyright/internal/narrow"
	"github.com/laughingirL/pyright/internal/prelude"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file (defaults to config.Default())")
	verbose := flag.Bool("verbose", false, "log evaluator trace output")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	level := hclog.Warn
	if *verbose {
		level = hclog.Trace
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "pyright-eval",
		Level: level,
	})

	sink := diagnostics.NewCollectingSink()
	eval := evaluator.New(cfg, sink, narrow.NoopBuilder{}, logger)

	root := prelude.NewRootScope()
	ctx := evaluator.Context{Scope: root}

	// `1 + 2.5`, evaluated as a demonstration of the numeric promotion
	// ladder (§4.4): int widens to float.
	span := ast.NewSpan(0, 0)
	left := ast.NewNumberLitExpr("1", false, false, span)
	right := ast.NewNumberLitExpr("2.5", true, false, span)
	expr := ast.NewBinaryOpExpr(ast.OpAdd, left, right, span)

	result := eval.GetType(ctx, expr, evaluator.UsageGet, evaluator.FlagNone)
	fmt.Println("type:", result.String())

	for _, d := range sink.Diagnostics {
		fmt.Fprintf(os.Stderr, "%s: %s\n", d.Kind, d.Message)
	}
	if errs := sink.Errors(); errs != nil && len(errs.Errors) > 0 {
		os.Exit(1)
	}
}


