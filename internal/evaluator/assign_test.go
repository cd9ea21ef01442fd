package evaluator

import (
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/laughingirL/pyright/internal/config"
	"github.com/laughingirL/pyright/internal/diagnostics"
	"github.com/laughingirL/pyright/internal/narrow"
	"github.com/laughingirL/pyright/internal/pytype"
)

func newTestEvaluator() (*Evaluator, *diagnostics.CollectingSink) {
	sink := diagnostics.NewCollectingSink()
	e := New(config.Default(), sink, narrow.NoopBuilder{}, hclog.NewNullLogger())
	return e, sink
}

func TestCanAssignTypeDynamicAbsorbsEitherSide(t *testing.T) {
	e, _ := newTestEvaluator()
	if !e.CanAssignType(pytype.NewUnknownType(), pytype.NewNeverType(), nil, nil) {
		t.Errorf("Unknown destination should accept anything")
	}
	if !e.CanAssignType(pytype.NewNoneType(), pytype.NewAnyType(), nil, nil) {
		t.Errorf("Any source should be accepted by any destination")
	}
}

func TestCanAssignTypeNeverRules(t *testing.T) {
	e, _ := newTestEvaluator()
	if !e.CanAssignType(pytype.NewNoneType(), pytype.NewNeverType(), nil, nil) {
		t.Errorf("Never source should be assignable to anything")
	}
	if e.CanAssignType(pytype.NewNeverType(), pytype.NewNoneType(), nil, nil) {
		t.Errorf("only Never should be assignable to Never")
	}
	if !e.CanAssignType(pytype.NewNeverType(), pytype.NewNeverType(), nil, nil) {
		t.Errorf("Never should be assignable to itself")
	}
}

func TestCanAssignTypeUnionSource(t *testing.T) {
	e, _ := newTestEvaluator()
	cls := pytype.NewClassType("int", pytype.ClassFlagBuiltIn)
	obj := pytype.NewObjectType(cls)
	src := &pytype.UnionType{Subtypes: []pytype.Type{obj, pytype.NewNoneType()}}

	// dst must accept every branch; None isn't an Object(int), so this fails.
	if e.CanAssignType(obj, src, nil, nil) {
		t.Errorf("expected union source with a non-matching branch to be rejected")
	}

	dstUnion := &pytype.UnionType{Subtypes: []pytype.Type{obj, pytype.NewNoneType()}}
	if !e.CanAssignType(dstUnion, src, nil, nil) {
		t.Errorf("expected every branch of src to be assignable into the matching dst union branch")
	}
}

func TestCanAssignTypeUnionDestination(t *testing.T) {
	e, _ := newTestEvaluator()
	cls := pytype.NewClassType("int", pytype.ClassFlagBuiltIn)
	dst := &pytype.UnionType{Subtypes: []pytype.Type{pytype.NewObjectType(cls), pytype.NewNoneType()}}

	if !e.CanAssignType(dst, pytype.NewNoneType(), nil, nil) {
		t.Errorf("None should be assignable to a union containing None")
	}
	if e.CanAssignType(dst, pytype.NewNeverType(), nil, nil) != true {
		// Never is handled before the union destination rule is reached.
		t.Errorf("Never source bypasses the union-destination rule and is always assignable")
	}

	other := pytype.NewClassType("str", pytype.ClassFlagBuiltIn)
	if e.CanAssignType(dst, pytype.NewObjectType(other), nil, nil) {
		t.Errorf("an object of an unrelated class should not be assignable to the union")
	}
}

func TestCanAssignObjectFollowsInheritance(t *testing.T) {
	e, _ := newTestEvaluator()
	base := pytype.NewClassType("Animal", pytype.ClassFlagNone)
	derived := pytype.NewClassType("Dog", pytype.ClassFlagNone)
	derived.AddBaseClass(base, true)

	dst := pytype.NewObjectType(base)
	src := pytype.NewObjectType(derived)
	if !e.CanAssignType(dst, src, nil, nil) {
		t.Errorf("a subclass instance should be assignable to a base-class parameter")
	}
	if e.CanAssignType(src, dst, nil, nil) {
		t.Errorf("a base-class instance should not be assignable to a subclass parameter")
	}
}

func TestCanAssignObjectRespectsVariance(t *testing.T) {
	e, _ := newTestEvaluator()
	base := pytype.NewClassType("object", pytype.ClassFlagNone)
	intCls := pytype.NewClassType("int", pytype.ClassFlagNone)
	intCls.AddBaseClass(base, true)
	strCls := pytype.NewClassType("str", pytype.ClassFlagNone)
	strCls.AddBaseClass(base, true)

	container := pytype.NewClassType("Box", pytype.ClassFlagNone)
	elem := pytype.NewTypeVarType("_T")
	elem.Variance = pytype.Covariant
	container.TypeParams = []*pytype.TypeVarType{elem}

	boxOfObject := container.CloneForSpecialization([]pytype.Type{pytype.NewObjectType(base)})
	boxOfInt := container.CloneForSpecialization([]pytype.Type{pytype.NewObjectType(intCls)})

	dst := pytype.NewObjectType(boxOfObject)
	src := pytype.NewObjectType(boxOfInt)
	if !e.CanAssignType(dst, src, nil, nil) {
		t.Errorf("Box[int] should be assignable to Box[object] under covariance")
	}

	boxOfStr := container.CloneForSpecialization([]pytype.Type{pytype.NewObjectType(strCls)})
	if e.CanAssignType(pytype.NewObjectType(boxOfInt), pytype.NewObjectType(boxOfStr), nil, nil) {
		t.Errorf("Box[str] should not be assignable to Box[int] even under covariance")
	}
}

func TestCanAssignToTypeVarRecordsBindingAndReusesIt(t *testing.T) {
	e, _ := newTestEvaluator()
	varMap := pytype.NewTypeVarMap()
	tv := pytype.NewTypeVarType("_T")

	if !e.CanAssignType(tv, pytype.NewNoneType(), nil, varMap) {
		t.Fatalf("expected the first assignment to bind the TypeVar")
	}
	bound, ok := varMap.Get(tv)
	if !ok {
		t.Fatalf("expected tv to be bound in varMap")
	}
	if _, isNone := bound.(*pytype.NoneType); !isNone {
		t.Errorf("expected tv bound to None, got %T", bound)
	}

	if !e.CanAssignType(tv, pytype.NewNoneType(), nil, varMap) {
		t.Errorf("re-assigning the same type to an already-bound TypeVar should succeed")
	}
	if e.CanAssignType(tv, pytype.NewUnknownType(), nil, varMap) != true {
		// Unknown is dynamic and absorbs regardless of the existing binding.
		t.Errorf("Unknown source should still be accepted against a bound TypeVar")
	}
}

func TestCanAssignToTypeVarHonorsBoundAndConstraints(t *testing.T) {
	e, _ := newTestEvaluator()

	base := pytype.NewClassType("Animal", pytype.ClassFlagNone)
	dog := pytype.NewClassType("Dog", pytype.ClassFlagNone)
	dog.AddBaseClass(base, true)
	cat := pytype.NewClassType("Cat", pytype.ClassFlagNone)

	boundedTV := pytype.NewTypeVarType("_T")
	boundedTV.Bound = optionSome[pytype.Type](pytype.NewObjectType(base))
	if !e.CanAssignType(boundedTV, pytype.NewObjectType(dog), nil, pytype.NewTypeVarMap()) {
		t.Errorf("a type within the bound should be assignable")
	}
	if e.CanAssignType(boundedTV, pytype.NewObjectType(cat), nil, pytype.NewTypeVarMap()) {
		t.Errorf("a type outside the bound should be rejected")
	}

	constrainedTV := pytype.NewTypeVarType("_U")
	constrainedTV.Constraints = []pytype.Type{pytype.NewObjectType(dog), pytype.NewObjectType(cat)}
	if !e.CanAssignType(constrainedTV, pytype.NewObjectType(cat), nil, pytype.NewTypeVarMap()) {
		t.Errorf("a constraint match should be assignable")
	}
	other := pytype.NewClassType("Fish", pytype.ClassFlagNone)
	if e.CanAssignType(constrainedTV, pytype.NewObjectType(other), nil, pytype.NewTypeVarMap()) {
		t.Errorf("a type satisfying no constraint should be rejected")
	}
}

func TestCanAssignFunctionIsContravariantInParamsCovariantInReturn(t *testing.T) {
	e, _ := newTestEvaluator()
	base := pytype.NewClassType("Animal", pytype.ClassFlagNone)
	dog := pytype.NewClassType("Dog", pytype.ClassFlagNone)
	dog.AddBaseClass(base, true)

	// dst: (Dog) -> Animal ; src: (Animal) -> Dog. src's parameter is wider
	// (contravariant) and its return narrower (covariant), so src is
	// assignable to dst and the reverse is not.
	dst := pytype.NewFunctionType(pytype.FunctionFlagNone)
	dst.AddParameter(&pytype.Param{Type: pytype.NewObjectType(dog)})
	dst.DeclaredReturnType = optionSome[pytype.Type](pytype.NewObjectType(base))

	src := pytype.NewFunctionType(pytype.FunctionFlagNone)
	src.AddParameter(&pytype.Param{Type: pytype.NewObjectType(base)})
	src.DeclaredReturnType = optionSome[pytype.Type](pytype.NewObjectType(dog))

	if !e.CanAssignType(dst, src, nil, nil) {
		t.Errorf("a function accepting a wider param and returning a narrower type should be assignable")
	}
	if e.CanAssignType(src, dst, nil, nil) {
		t.Errorf("the reverse assignment should fail")
	}
}

func TestCanAssignFunctionParamCountAndCategoryMismatch(t *testing.T) {
	e, _ := newTestEvaluator()
	dst := pytype.NewFunctionType(pytype.FunctionFlagNone)
	dst.AddParameter(&pytype.Param{Category: pytype.ParamSimple, Type: pytype.NewUnknownType()})

	src := pytype.NewFunctionType(pytype.FunctionFlagNone)
	if e.CanAssignType(dst, src, nil, nil) {
		t.Errorf("mismatched parameter counts should be rejected")
	}

	src.AddParameter(&pytype.Param{Category: pytype.ParamVarArgList, Type: pytype.NewUnknownType()})
	if e.CanAssignType(dst, src, nil, nil) {
		t.Errorf("mismatched parameter categories should be rejected")
	}
}


