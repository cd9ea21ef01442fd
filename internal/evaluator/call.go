package evaluator

import (
	"strconv"

	"github.com/laughingirL/pyright/internal/ast"
	"github.com/laughingirL/pyright/internal/diagnostics"
	"github.com/laughingirL/pyright/internal/pytype"
)

// ValidateCall implements §4.3's validateCall: dispatch on the callee's
// variant.
func (e *Evaluator) ValidateCall(ctx Context, node ast.Expr, args []pytype.FunctionArgument, callee pytype.Type, varMap *pytype.TypeVarMap) pytype.Type {
	switch callee := callee.(type) {
	case *pytype.UnknownType, *pytype.AnyType:
		return pytype.NewUnknownType()

	case *pytype.FunctionType:
		result, ok := e.validateFunctionArguments(node, args, callee, varMap)
		if !ok {
			return pytype.NewUnknownType()
		}
		return result

	case *pytype.OverloadedFunctionType:
		return e.validateOverloadedCall(node, args, callee, varMap)

	case *pytype.ClassType:
		return e.validateConstructorArguments(ctx, node, args, callee)

	case *pytype.ObjectType:
		sym, _ := LookUpClassMember(callee.ClassType, "__call__", true, true)
		if sym == nil {
			diagnostics.Error(e.Sink, "Object of type '"+callee.String()+"' is not callable", node.Span())
			return pytype.NewUnknownType()
		}
		fn, ok := sym.EffectiveType().(*pytype.FunctionType)
		if !ok {
			diagnostics.Error(e.Sink, "Object of type '"+callee.String()+"' is not callable", node.Span())
			return pytype.NewUnknownType()
		}
		bound := BindFunctionToClassOrObject(callee, fn)
		return e.ValidateCall(ctx, node, args, bound, varMap)

	case *pytype.UnionType:
		results := make([]pytype.Type, 0, len(callee.Subtypes))
		for _, sub := range callee.Subtypes {
			if _, isNone := sub.(*pytype.NoneType); isNone {
				diagnostics.AddDiagnostic(e.Sink, e.Config.ReportOptionalCall,
					"Object of type 'None' cannot be called", node.Span())
				continue
			}
			results = append(results, e.ValidateCall(ctx, node, args, sub, varMap))
		}
		return CombineTypes(results)

	default:
		diagnostics.Error(e.Sink, "Object of type '"+callee.String()+"' is not callable", node.Span())
		return pytype.NewUnknownType()
	}
}

// validateOverloadedCall tries each overload in declaration order under a
// silenced sink (§4.3, §5): the first that succeeds wins.
func (e *Evaluator) validateOverloadedCall(node ast.Expr, args []pytype.FunctionArgument, overloaded *pytype.OverloadedFunctionType, varMap *pytype.TypeVarMap) pytype.Type {
	realSink := e.Sink
	for _, overload := range overloaded.Overloads {
		probeVarMap := pytype.NewTypeVarMap()
		e.Sink = diagnostics.NullSink{}
		result, ok := func() (pytype.Type, bool) {
			defer func() { e.Sink = realSink }()
			return e.validateFunctionArguments(node, args, overload, probeVarMap)
		}()
		if ok {
			if varMap != nil {
				for _, tv := range probeVarMap.Order() {
					bound, _ := probeVarMap.Get(tv)
					varMap.Set(tv, bound)
				}
			}
			return result
		}
	}
	diagnostics.Error(realSink, "No overloads match parameters", node.Span())
	return pytype.NewUnknownType()
}

// paramState tracks how many arguments a parameter has received so far
// (§4.3 step 1).
type paramState struct {
	param        *pytype.Param
	argsNeeded   int
	argsReceived int
}

// validateFunctionArguments implements §4.3's PEP-3102 matching algorithm.
func (e *Evaluator) validateFunctionArguments(node ast.Expr, args []pytype.FunctionArgument, fn *pytype.FunctionType, varMap *pytype.TypeVarMap) (pytype.Type, bool) {
	// Step 1: parameter map.
	states := make([]*paramState, len(fn.Parameters))
	for i, p := range fn.Parameters {
		needed := 0
		if p.Category == pytype.ParamSimple && !p.HasDefault {
			needed = 1
		}
		states[i] = &paramState{param: p, argsNeeded: needed}
	}

	// Step 2: positionalParamCount.
	positionalParamCount := len(fn.Parameters)
	for i, p := range fn.Parameters {
		if p.Category == pytype.ParamVarArgList {
			if name, ok := p.Name.Take(); !ok || name == "" {
				positionalParamCount = i
			} else {
				positionalParamCount = i + 1
			}
			goto foundPositionalBound
		}
		if p.Category == pytype.ParamVarArgDictionary {
			positionalParamCount = i
			goto foundPositionalBound
		}
	}
foundPositionalBound:

	// Step 3: positionalArgCount.
	positionalArgCount := len(args)
	for i, a := range args {
		if a.Category == pytype.ArgDictionary || a.Name != nil {
			positionalArgCount = i
			break
		}
	}

	hasError := false
	paramIndex := 0

	// Step 4: positional phase.
	argIndex := 0
	for argIndex < positionalArgCount {
		if paramIndex >= positionalParamCount {
			diagnostics.Error(e.Sink, "Expected "+strconv.Itoa(positionalParamCount)+" positional arguments", node.Span())
			hasError = true
			break
		}
		state := states[paramIndex]
		arg := args[argIndex]

		if state.param.Category == pytype.ParamVarArgList {
			for argIndex < positionalArgCount {
				if !e.CanAssignType(state.param.Type, args[argIndex].Type, node, varMap) {
					hasError = true
				}
				argIndex++
			}
			paramIndex++
			break
		}

		if !e.CanAssignType(state.param.Type, arg.Type, node, varMap) {
			hasError = true
		}
		state.argsReceived++
		argIndex++
		paramIndex++
	}

	// Step 5: named phase.
	foundDictionaryArg := false
	foundStarArg := false
	nameToIndex := make(map[string]int, len(fn.Parameters))
	dictParamIndex := -1
	for i, p := range fn.Parameters {
		if p.Category == pytype.ParamVarArgDictionary {
			dictParamIndex = i
			continue
		}
		if name, ok := p.Name.Take(); ok && name != "" {
			nameToIndex[name] = i
		}
	}
	for i := argIndex; i < len(args); i++ {
		arg := args[i]
		if arg.Category == pytype.ArgDictionary {
			foundDictionaryArg = true
			continue
		}
		if arg.Category == pytype.ArgList {
			foundStarArg = true
			continue
		}
		if arg.Name == nil {
			continue
		}
		name := arg.Name.Name
		idx, ok := nameToIndex[name]
		if !ok {
			if dictParamIndex >= 0 {
				states[dictParamIndex].argsReceived++
				if !e.CanAssignType(states[dictParamIndex].param.Type, arg.Type, node, varMap) {
					hasError = true
				}
				continue
			}
			diagnostics.Error(e.Sink, "No parameter named '"+name+"'", node.Span())
			hasError = true
			continue
		}
		state := states[idx]
		if state.argsReceived > 0 {
			diagnostics.Error(e.Sink, "Parameter '"+name+"' is already assigned", node.Span())
			hasError = true
			continue
		}
		state.argsReceived++
		if !e.CanAssignType(state.param.Type, arg.Type, node, varMap) {
			hasError = true
		}
	}

	// Step 6: completeness.
	if !foundDictionaryArg && !foundStarArg {
		for _, state := range states {
			if state.argsReceived < state.argsNeeded {
				name, _ := state.param.Name.Take()
				diagnostics.Error(e.Sink, "Argument missing for parameter '"+name+"'", node.Span())
				hasError = true
			}
		}
	}

	if hasError {
		return nil, false
	}
	return SpecializeType(fn.EffectiveReturnType(), varMap), true
}

// validateConstructorArguments implements §4.3's validateConstructorArguments:
// try __new__ first (with SkipInstanceMembers|SkipObjectBaseClass-style
// lookup), then __init__ against Object(C), suppressing __init__
// diagnostics if __new__ already failed.
func (e *Evaluator) validateConstructorArguments(ctx Context, node ast.Expr, args []pytype.FunctionArgument, class *pytype.ClassType) pytype.Type {
	varMap := pytype.NewTypeVarMap()

	newSym, newOwner := e.lookUpConstructorMethod(class, "__new__")
	initSym, _ := e.lookUpConstructorMethod(class, "__init__")

	if newSym == nil && initSym == nil {
		if len(args) > 0 {
			diagnostics.Error(e.Sink, "Expected no arguments", node.Span())
			return pytype.NewUnknownType()
		}
		return pytype.NewObjectType(class)
	}

	newFailed := false
	if newSym != nil {
		if fn, ok := newSym.EffectiveType().(*pytype.FunctionType); ok {
			bound := BindFunctionToClassOrObject(newOwner, fn)
			if _, ok := e.validateFunctionArguments(node, args, bound, varMap); !ok {
				newFailed = true
			}
		}
	}

	if initSym != nil {
		sink := e.Sink
		if newFailed {
			e.Sink = diagnostics.NullSink{}
		}
		if fn, ok := initSym.EffectiveType().(*pytype.FunctionType); ok {
			instance := pytype.NewObjectType(class)
			bound := BindFunctionToClassOrObject(instance, fn)
			e.validateFunctionArguments(node, args, bound, varMap)
		}
		e.Sink = sink
	}

	return pytype.NewObjectType(SpecializeType(class, varMap).(*pytype.ClassType))
}

// lookUpConstructorMethod looks up name with the method-lookup flags
// (SkipForMethodLookup) so descriptors and attribute fallbacks are never
// invoked while locating a raw __new__/__init__ definition (§4.2/§4.3).
// __new__ is looked up with FlagSkipObjectBaseClass as well, so the built-in
// object's own __new__ is never reported as the class's constructor.
func (e *Evaluator) lookUpConstructorMethod(class *pytype.ClassType, name string) (*pytype.Symbol, *pytype.ClassType) {
	flags := SkipForMethodLookup
	if name == "__new__" {
		flags |= FlagSkipObjectBaseClass
	}
	sym, owner := LookUpClassMember(class, name, !flags.Has(FlagSkipInstanceMembers), true)
	if sym != nil && flags.Has(FlagSkipObjectBaseClass) && owner.Name == "object" && owner.Flags.Has(pytype.ClassFlagBuiltIn) {
		return nil, nil
	}
	return sym, owner
}


