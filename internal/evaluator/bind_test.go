package evaluator

import (
	"testing"

	"github.com/laughingirL/pyright/internal/pytype"
)

func methodWithSelf(extra ...*pytype.Param) *pytype.FunctionType {
	fn := pytype.NewFunctionType(pytype.FunctionFlagNone)
	fn.AddParameter(&pytype.Param{Category: pytype.ParamSimple, Name: optionSome("self")})
	for _, p := range extra {
		fn.AddParameter(p)
	}
	return fn
}

func TestBindFunctionToClassOrObjectDropsSelfForInstanceMethod(t *testing.T) {
	class := pytype.NewClassType("C", pytype.ClassFlagNone)
	obj := pytype.NewObjectType(class)
	fn := methodWithSelf(&pytype.Param{Category: pytype.ParamSimple, Name: optionSome("x")})

	bound := BindFunctionToClassOrObject(obj, fn)
	if len(bound.Parameters) != 1 {
		t.Fatalf("expected self dropped, got %d params", len(bound.Parameters))
	}
	if len(fn.Parameters) != 2 {
		t.Errorf("binding must not mutate the original function, got %d params", len(fn.Parameters))
	}
}

func TestBindFunctionToClassOrObjectLeavesUnboundForClassBase(t *testing.T) {
	class := pytype.NewClassType("C", pytype.ClassFlagNone)
	fn := methodWithSelf()

	bound := BindFunctionToClassOrObject(class, fn)
	if len(bound.Parameters) != 1 {
		t.Errorf("an instance method accessed through its class should keep self, got %d params", len(bound.Parameters))
	}
}

func TestBindFunctionToClassOrObjectClassMethod(t *testing.T) {
	class := pytype.NewClassType("C", pytype.ClassFlagNone)
	obj := pytype.NewObjectType(class)

	fn := methodWithSelf()
	fn.Flags = pytype.FunctionFlagClassMethod

	// Through the class: cls is bound (dropped).
	bound := BindFunctionToClassOrObject(class, fn)
	if len(bound.Parameters) != 0 {
		t.Errorf("a classmethod accessed via the class should drop cls, got %d params", len(bound.Parameters))
	}

	// Through an instance: this rule does not bind the classmethod, so cls is kept.
	bound = BindFunctionToClassOrObject(obj, fn)
	if len(bound.Parameters) != 1 {
		t.Errorf("a classmethod accessed via an instance should keep its (unbound-by-this-rule) parameter, got %d params", len(bound.Parameters))
	}
}

func TestBindFunctionToClassOrObjectStaticMethodUnchanged(t *testing.T) {
	class := pytype.NewClassType("C", pytype.ClassFlagNone)
	fn := pytype.NewFunctionType(pytype.FunctionFlagStaticMethod)
	fn.AddParameter(&pytype.Param{Category: pytype.ParamSimple, Name: optionSome("x")})

	bound := BindFunctionToClassOrObject(class, fn)
	if len(bound.Parameters) != 1 {
		t.Errorf("a static method must be returned unchanged, got %d params", len(bound.Parameters))
	}
}

func TestResolveAliasFollowsChain(t *testing.T) {
	target := pytype.NewClassType("list", pytype.ClassFlagBuiltIn)
	alias := pytype.NewClassType("List", pytype.ClassFlagSpecialBuiltIn)
	alias.AliasClass = optionSome(target)

	if got := resolveAlias(alias); got != target {
		t.Errorf("expected resolveAlias to follow the AliasClass chain to list, got %v", got.Name)
	}
	if got := resolveAlias(target); got != target {
		t.Errorf("a class with no alias should resolve to itself")
	}
}

func TestLookUpClassMemberWalksMRO(t *testing.T) {
	base := pytype.NewClassType("Base", pytype.ClassFlagNone)
	baseSym := pytype.NewSymbol("greet")
	base.ClassFields["greet"] = baseSym

	derived := pytype.NewClassType("Derived", pytype.ClassFlagNone)
	derived.AddBaseClass(base, true)

	sym, owner := LookUpClassMember(derived, "greet", false, true)
	if sym != baseSym {
		t.Errorf("expected to find greet via the base class")
	}
	if owner != base {
		t.Errorf("expected owner to be the base class, got %v", owner.Name)
	}
}

func TestLookUpClassMemberRespectsIncludeInMro(t *testing.T) {
	excluded := pytype.NewClassType("Excluded", pytype.ClassFlagNone)
	excluded.ClassFields["greet"] = pytype.NewSymbol("greet")

	derived := pytype.NewClassType("Derived", pytype.ClassFlagNone)
	derived.AddBaseClass(excluded, false)

	sym, _ := LookUpClassMember(derived, "greet", false, true)
	if sym != nil {
		t.Errorf("a base class with IncludeInMro=false must not contribute members")
	}
}

func TestLookUpClassMemberInstanceVsClassFields(t *testing.T) {
	class := pytype.NewClassType("C", pytype.ClassFlagNone)
	instanceSym := pytype.NewSymbol("x")
	class.InstanceFields["x"] = instanceSym

	if sym, _ := LookUpClassMember(class, "x", false, true); sym != nil {
		t.Errorf("instance fields must not be visible when includeInstance=false")
	}
	if sym, _ := LookUpClassMember(class, "x", true, true); sym != instanceSym {
		t.Errorf("instance fields must be visible when includeInstance=true")
	}
}

func TestLookUpClassMemberNoBasesStopsAtClass(t *testing.T) {
	base := pytype.NewClassType("Base", pytype.ClassFlagNone)
	base.ClassFields["greet"] = pytype.NewSymbol("greet")

	derived := pytype.NewClassType("Derived", pytype.ClassFlagNone)
	derived.AddBaseClass(base, true)

	if sym, _ := LookUpClassMember(derived, "greet", false, false); sym != nil {
		t.Errorf("includeBases=false must not walk base classes")
	}
}


