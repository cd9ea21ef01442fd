package evaluator

import (
	"github.com/laughingirL/pyright/internal/ast"
	"github.com/laughingirL/pyright/internal/diagnostics"
	"github.com/laughingirL/pyright/internal/pytype"
)

// GetMember implements §4.2's getMember: resolve `obj.name` / `Cls.name`
// with descriptor and __getattribute__/__getattr__/__setattr__/
// __delattr__ fallback.
func (e *Evaluator) GetMember(ctx Context, base pytype.Type, name string, usage Usage, flags Flags, node ast.Expr) pytype.Type {
	switch base := base.(type) {
	case *pytype.UnknownType, *pytype.AnyType:
		return base

	case *pytype.ClassType:
		sym, _ := LookUpClassMember(base, name, false /* includeInstance: SkipInstanceMembers */, true)
		if sym == nil {
			return e.memberLookupFailed(ctx, base, name, usage, flags, node)
		}
		return e.resolveMember(ctx, base, sym, usage, flags, node)

	case *pytype.ObjectType:
		sym, _ := LookUpClassMember(base.ClassType, name, !flags.Has(FlagSkipInstanceMembers), true)
		if sym == nil {
			return e.memberLookupFailed(ctx, base, name, usage, flags, node)
		}
		return e.resolveMember(ctx, base, sym, usage, flags, node)

	case *pytype.ModuleType:
		sym, ok := base.Fields[name]
		if !ok {
			diagnostics.Error(e.Sink, "'"+name+"' is not a known member of module '"+base.Name+"'", node.Span())
			return pytype.NewUnknownType()
		}
		return sym.EffectiveType()

	case *pytype.UnionType:
		results := make([]pytype.Type, 0, len(base.Subtypes))
		for _, sub := range base.Subtypes {
			if _, isNone := sub.(*pytype.NoneType); isNone {
				diagnostics.AddDiagnostic(e.Sink, e.optionalAccessLevel(usage),
					"'"+name+"' is not a known member of 'None'", node.Span())
				continue
			}
			results = append(results, e.GetMember(ctx, sub, name, usage, flags, node))
		}
		return CombineTypes(results)

	case *pytype.PropertyType:
		return e.getPropertyMember(base, usage, node)

	case *pytype.NoneType:
		diagnostics.AddDiagnostic(e.Sink, e.optionalAccessLevel(usage),
			"'"+name+"' is not a known member of 'None'", node.Span())
		return pytype.NewUnknownType()

	default:
		return e.memberAccessError(base, name, usage, node)
	}
}

func (e *Evaluator) optionalAccessLevel(usage Usage) diagnostics.Level {
	return e.Config.ReportOptionalMemberAccess
}

// resolveMember applies the descriptor protocol to a found symbol's type
// before returning it (§4.2).
func (e *Evaluator) resolveMember(ctx Context, base pytype.Type, sym *pytype.Symbol, usage Usage, flags Flags, node ast.Expr) pytype.Type {
	memberType := sym.EffectiveType()

	if prop, ok := memberType.(*pytype.PropertyType); ok {
		return e.getPropertyMember(prop, usage, node)
	}

	if obj, ok := memberType.(*pytype.ObjectType); ok && !flags.Has(FlagSkipGetCheck) {
		if descriptorResult, handled := e.applyDescriptorProtocol(obj, usage, node); handled {
			return descriptorResult
		}
	}

	if fn, ok := memberType.(*pytype.FunctionType); ok {
		return BindFunctionToClassOrObject(base, fn)
	}

	return memberType
}

// applyDescriptorProtocol implements §4.2's descriptor-protocol rule: if
// the resolved member is an Object whose class defines __get__ / __set__ /
// __detattr__ (the delete probe, see below), substitute the return of that
// method (for __get__) or Any (for __set__/__detattr__).
func (e *Evaluator) applyDescriptorProtocol(obj *pytype.ObjectType, usage Usage, node ast.Expr) (pytype.Type, bool) {
	var dunder string
	switch usage {
	case UsageGet:
		dunder = "__get__"
	case UsageSet:
		dunder = "__set__"
	case UsageDelete:
		// The delete-attribute probe looks up `__detattr__`, a typo for
		// `__delattr__` in the source evaluator. Retained verbatim (§9).
		dunder = "__detattr__"
	}

	sym, _ := LookUpClassMember(obj.ClassType, dunder, true, true)
	if sym == nil {
		return nil, false
	}

	if usage == UsageGet {
		if fn, ok := sym.EffectiveType().(*pytype.FunctionType); ok {
			return fn.EffectiveReturnType(), true
		}
	}
	return pytype.NewAnyType(), true
}

// getPropertyMember implements §4.2's Property access rule.
func (e *Evaluator) getPropertyMember(prop *pytype.PropertyType, usage Usage, node ast.Expr) pytype.Type {
	switch usage {
	case UsageGet:
		if getter, ok := prop.Getter.Take(); ok {
			return getter.EffectiveReturnType()
		}
		diagnostics.Error(e.Sink, "Property has no getter", node.Span())
		return pytype.NewUnknownType()
	case UsageSet:
		if _, ok := prop.Setter.Take(); ok {
			return pytype.NewAnyType()
		}
		return pytype.NewUnknownType()
	case UsageDelete:
		if _, ok := prop.Deleter.Take(); ok {
			return pytype.NewAnyType()
		}
		return pytype.NewUnknownType()
	default:
		return pytype.NewUnknownType()
	}
}

// memberLookupFailed implements §4.2's __getattribute__/__getattr__
// fallback chain before finally reporting failure.
func (e *Evaluator) memberLookupFailed(ctx Context, base pytype.Type, name string, usage Usage, flags Flags, node ast.Expr) pytype.Type {
	if !flags.Has(FlagSkipGetAttributeCheck) {
		var class *pytype.ClassType
		switch base := base.(type) {
		case *pytype.ClassType:
			class = base
		case *pytype.ObjectType:
			class = base.ClassType
		}
		if class != nil {
			dunders := []string{"__getattribute__", "__getattr__"}
			if usage == UsageSet {
				dunders = []string{"__setattr__"}
			} else if usage == UsageDelete {
				dunders = []string{"__delattr__"}
			}
			for _, dunder := range dunders {
				sym, _ := LookUpClassMember(class, dunder, true, true)
				if sym == nil {
					continue
				}
				if fn, ok := sym.EffectiveType().(*pytype.FunctionType); ok {
					return fn.EffectiveReturnType()
				}
			}
		}
	}
	return e.memberAccessError(base, name, usage, node)
}

func (e *Evaluator) memberAccessError(base pytype.Type, name string, usage Usage, node ast.Expr) pytype.Type {
	var verb string
	switch usage {
	case UsageSet:
		verb = "set"
	case UsageDelete:
		verb = "delete"
	default:
		verb = "access"
	}
	diagnostics.Error(e.Sink, "Cannot "+verb+" member '"+name+"' for type '"+base.String()+"'", node.Span())
	return pytype.NewUnknownType()
}


