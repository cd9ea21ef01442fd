package evaluator

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/laughingirL/pyright/internal/ast"
	"github.com/laughingirL/pyright/internal/diagnostics"
	"github.com/laughingirL/pyright/internal/pytype"
)

// DataclassField is one top-level simple/annotated assignment in a
// `@dataclass`-decorated class's suite, in source order. Walking the class
// suite to produce this list is the scope builder's job (§1's external
// collaborators); SynthesizeDataclass only consumes the result.
type DataclassField struct {
	Name       string
	Type       pytype.Type
	HasDefault bool
}

// SynthesizeDataclass implements §4.5/C6's dataclass synthesis: installs a
// generated `__init__`/`__new__` pair with one parameter per field, in
// order, onto class.ClassFields.
func (e *Evaluator) SynthesizeDataclass(class *pytype.ClassType, fields []DataclassField, node ast.Expr) {
	if class.Flags.Has(pytype.ClassFlagDataclass) {
		panic(errors.Wrap(errInvariant, "SynthesizeDataclass called twice on class '"+class.Name+"'"))
	}
	if class.Flags.Has(pytype.ClassFlagNamedTuple) {
		panic(errors.Wrap(errInvariant, "SynthesizeDataclass called on NamedTuple class '"+class.Name+"'"))
	}

	seenDefault := false
	for _, f := range fields {
		if f.HasDefault {
			seenDefault = true
			continue
		}
		if seenDefault {
			diagnostics.Error(e.Sink,
				"Data fields without default value cannot appear after data fields with default values",
				node.Span())
			return
		}
	}

	if e.Config.PythonVersion >= 7 {
		for _, f := range fields {
			if strings.HasPrefix(f.Name, "_") {
				diagnostics.Error(e.Sink,
					"Dataclass field '"+f.Name+"' cannot start with an underscore",
					node.Span())
				return
			}
		}
	}

	initFn := pytype.NewFunctionType(pytype.FunctionFlagNone)
	initFn.AddParameter(&pytype.Param{Category: pytype.ParamSimple, Name: optionSome("self")})
	for _, f := range fields {
		initFn.AddParameter(&pytype.Param{
			Category:   pytype.ParamSimple,
			Name:       optionSome(f.Name),
			HasDefault: f.HasDefault,
			Type:       f.Type,
		})
	}
	initFn.DeclaredReturnType = optionSome[pytype.Type](pytype.NewNoneType())

	installMethod(class, "__init__", initFn)
	installMethod(class, "__new__", initFn)

	for _, f := range fields {
		sym := pytype.NewSymbol(f.Name)
		sym.AddDeclaration(pytype.Declaration{Category: pytype.DeclVariable, DeclaredType: optionSome[pytype.Type](f.Type)})
		class.InstanceFields[f.Name] = sym
	}

	class.Flags |= pytype.ClassFlagDataclass
}
