package evaluator

import (
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/laughingirL/pyright/internal/ast"
	"github.com/laughingirL/pyright/internal/diagnostics"
	"github.com/laughingirL/pyright/internal/pytype"
)

// namedTupleField is one parsed field of a NamedTuple synthesis request:
// a name and its declared type (Any for the untyped whitespace-separated
// form).
type namedTupleField struct {
	name string
	typ  pytype.Type
}

// synthesizeNamedTupleCall implements the `NamedTuple(name, fields)` call
// form (§4.5/C6): fields is either a whitespace-separated string of
// (untyped) names, or a list of `(name, type)` pairs.
func (e *Evaluator) synthesizeNamedTupleCall(ctx Context, node *ast.CallExpr) pytype.Type {
	if len(node.Args) < 2 {
		diagnostics.Error(e.Sink, "NamedTuple requires a name and a field list", node.Span())
		return pytype.NewUnknownType()
	}
	nameLit, ok := node.Args[0].Value.(*ast.StringLitExpr)
	if !ok {
		diagnostics.Error(e.Sink, "NamedTuple's first argument must be a string literal", node.Span())
		return pytype.NewUnknownType()
	}

	var fields []namedTupleField
	switch fieldsArg := node.Args[1].Value.(type) {
	case *ast.StringLitExpr:
		for _, raw := range strings.Fields(fieldsArg.Value) {
			fields = append(fields, namedTupleField{name: raw, typ: pytype.NewAnyType()})
		}
	case *ast.ListExpr:
		for _, elem := range fieldsArg.Elems {
			pair, ok := elem.(*ast.TupleExpr)
			if !ok || len(pair.Elems) != 2 {
				diagnostics.Error(e.Sink, "NamedTuple field entries must be (name, type) pairs", node.Span())
				continue
			}
			fieldName, ok := pair.Elems[0].(*ast.StringLitExpr)
			if !ok {
				diagnostics.Error(e.Sink, "NamedTuple field name must be a string literal", node.Span())
				continue
			}
			fieldType := e.evaluateTypeExpr(ctx, pair.Elems[1])
			fields = append(fields, namedTupleField{name: fieldName.Value, typ: fieldType})
		}
	default:
		diagnostics.Error(e.Sink, "NamedTuple's second argument must be a string or a list of pairs", node.Span())
		return pytype.NewUnknownType()
	}

	return e.synthesizeNamedTuple(nameLit.Value, fields, node)
}

// synthesizeNamedTuple builds the class the NamedTuple call form produces:
// duplicate or empty field names are errors and fall back to `_<index>`; a
// name that is not already snake_case (strcase.ToSnake changes it) also
// falls back to `_<index>`, without a diagnostic.
func (e *Evaluator) synthesizeNamedTuple(className string, fields []namedTupleField, node ast.Expr) *pytype.ClassType {
	seen := make(map[string]bool, len(fields))
	resolved := make([]namedTupleField, len(fields))
	for i, f := range fields {
		name := f.name
		if name == "" || strcase.ToSnake(name) != name || seen[name] {
			if name == "" {
				diagnostics.Error(e.Sink, "NamedTuple field name cannot be empty", node.Span())
			} else if seen[name] {
				diagnostics.Error(e.Sink, "Duplicate NamedTuple field name '"+name+"'", node.Span())
			}
			name = "_" + strconv.Itoa(i)
		}
		seen[name] = true
		resolved[i] = namedTupleField{name: name, typ: f.typ}
	}

	class := pytype.NewClassType(className, pytype.ClassFlagNamedTuple)

	initFn := pytype.NewFunctionType(pytype.FunctionFlagNone)
	initFn.AddParameter(&pytype.Param{Category: pytype.ParamSimple})
	for _, f := range resolved {
		param := &pytype.Param{Category: pytype.ParamSimple, Type: f.typ}
		initFn.AddParameter(withParamName(param, f.name))

		fieldSym := pytype.NewSymbol(f.name)
		fieldSym.AddDeclaration(pytype.Declaration{Category: pytype.DeclVariable, DeclaredType: optionSome[pytype.Type](f.typ)})
		class.InstanceFields[f.name] = fieldSym
	}
	initFn.DeclaredReturnType = optionSome[pytype.Type](pytype.NewNoneType())
	installMethod(class, "__init__", initFn)
	installMethod(class, "__new__", initFn)

	keysFn := pytype.NewFunctionType(pytype.FunctionFlagNone)
	keysFn.AddParameter(&pytype.Param{Category: pytype.ParamSimple})
	keysFn.DeclaredReturnType = optionSome[pytype.Type](pytype.NewUnknownType())
	installMethod(class, "keys", keysFn)
	installMethod(class, "items", keysFn)

	// __len__'s return should be the built-in int class, but that class
	// isn't reachable from this function (no Scope is threaded through the
	// NamedTuple synthesis path); Unknown is the honest fallback.
	lenFn := pytype.NewFunctionType(pytype.FunctionFlagNone)
	lenFn.AddParameter(&pytype.Param{Category: pytype.ParamSimple})
	lenFn.DeclaredReturnType = optionSome[pytype.Type](pytype.NewUnknownType())
	installMethod(class, "__len__", lenFn)

	// Positional/attribute access by field name is covered by the ordinary
	// member-lookup path above; integer-index access (`t[0]`) falls back to
	// a dynamic __getattribute__ returning Unknown rather than narrowing to
	// the specific field's type, since the index isn't known statically.
	getAttrFn := pytype.NewFunctionType(pytype.FunctionFlagNone)
	getAttrFn.AddParameter(&pytype.Param{Category: pytype.ParamSimple})
	getAttrFn.AddParameter(&pytype.Param{Category: pytype.ParamSimple, Type: pytype.NewUnknownType()})
	getAttrFn.DeclaredReturnType = optionSome[pytype.Type](pytype.NewUnknownType())
	installMethod(class, "__getattribute__", getAttrFn)

	return class
}

func withParamName(p *pytype.Param, name string) *pytype.Param {
	p.Name = optionSome(name)
	return p
}

func installMethod(class *pytype.ClassType, name string, fn *pytype.FunctionType) {
	sym := pytype.NewSymbol(name)
	sym.AddDeclaration(pytype.Declaration{Category: pytype.DeclMethod, DeclaredType: optionSome[pytype.Type](fn)})
	class.ClassFields[name] = sym
}


