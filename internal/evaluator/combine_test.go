package evaluator

import (
	"testing"

	"github.com/laughingirL/pyright/internal/pytype"
)

func TestCombineTypesEmptyIsNever(t *testing.T) {
	got := CombineTypes(nil)
	if _, ok := got.(*pytype.NeverType); !ok {
		t.Errorf("CombineTypes(nil) = %T, want *pytype.NeverType", got)
	}
}

func TestCombineTypesSingleIsUnwrapped(t *testing.T) {
	none := pytype.NewNoneType()
	got := CombineTypes([]pytype.Type{none})
	if got != pytype.Type(none) {
		t.Errorf("CombineTypes of one type should return it unwrapped, got %T", got)
	}
}

func TestCombineTypesFlattensAndDedupes(t *testing.T) {
	cls := pytype.NewClassType("int", pytype.ClassFlagBuiltIn)
	obj := pytype.NewObjectType(cls)
	nested := &pytype.UnionType{Subtypes: []pytype.Type{obj, pytype.NewNoneType()}}

	got := CombineTypes([]pytype.Type{nested, pytype.NewObjectType(cls), pytype.NewNoneType()})

	union, ok := got.(*pytype.UnionType)
	if !ok {
		t.Fatalf("expected a UnionType, got %T", got)
	}
	if len(union.Subtypes) != 2 {
		t.Fatalf("expected exactly 2 deduplicated subtypes, got %d: %v", len(union.Subtypes), union)
	}
	for _, sub := range union.Subtypes {
		if _, isUnion := sub.(*pytype.UnionType); isUnion {
			t.Errorf("CombineTypes must never produce a nested union")
		}
	}
}

func TestCombineTypesDropsNever(t *testing.T) {
	none := pytype.NewNoneType()
	got := CombineTypes([]pytype.Type{pytype.NewNeverType(), none})
	if got != pytype.Type(none) {
		t.Errorf("Never must contribute nothing to a union, got %v", got)
	}
}

func TestDoForSubtypesDistributesOverUnion(t *testing.T) {
	union := &pytype.UnionType{Subtypes: []pytype.Type{pytype.NewNoneType(), pytype.NewUnknownType()}}
	calls := 0
	got := DoForSubtypes(union, func(sub pytype.Type) pytype.Type {
		calls++
		return sub
	})
	if calls != 2 {
		t.Errorf("expected f to be called once per subtype, got %d calls", calls)
	}
	if got.String() != union.String() {
		t.Errorf("identity function over every subtype must return an equal union, got %v", got)
	}
}

func TestDoForSubtypesIdentityOnNonUnion(t *testing.T) {
	none := pytype.NewNoneType()
	got := DoForSubtypes(none, func(sub pytype.Type) pytype.Type { return sub })
	if got != pytype.Type(none) {
		t.Errorf("DoForSubtypes on a non-union should apply f directly, got %T", got)
	}
}

func TestRemoveTruthinessFromTypeKeepsOnlyTruthyCapableMembers(t *testing.T) {
	boolCls := pytype.NewClassType("bool", pytype.ClassFlagBuiltIn)
	falseObj := pytype.NewObjectType(boolCls).WithTruthy(false)
	trueObj := pytype.NewObjectType(boolCls).WithTruthy(true)
	untagged := pytype.NewObjectType(boolCls)

	if _, ok := RemoveTruthinessFromType(pytype.NewNoneType()).(*pytype.NeverType); !ok {
		t.Errorf("None is always falsy and must reduce to Never")
	}
	if _, ok := RemoveTruthinessFromType(falseObj).(*pytype.NeverType); !ok {
		t.Errorf("a definitively false-tagged object must reduce to Never")
	}
	if got := RemoveTruthinessFromType(trueObj); got != pytype.Type(trueObj) {
		t.Errorf("a definitively true-tagged object must pass through unchanged, got %v", got)
	}
	if got := RemoveTruthinessFromType(untagged); got != pytype.Type(untagged) {
		t.Errorf("an untagged object must pass through unchanged, got %v", got)
	}

	union := &pytype.UnionType{Subtypes: []pytype.Type{falseObj, trueObj, pytype.NewNoneType()}}
	got := RemoveTruthinessFromType(union)
	if got != pytype.Type(trueObj) {
		t.Errorf("union of [false, true, None] should narrow to just the true-tagged object, got %v", got)
	}
}

func TestRemoveFalsinessFromTypeKeepsOnlyFalsyCapableMembers(t *testing.T) {
	boolCls := pytype.NewClassType("bool", pytype.ClassFlagBuiltIn)
	falseObj := pytype.NewObjectType(boolCls).WithTruthy(false)
	trueObj := pytype.NewObjectType(boolCls).WithTruthy(true)
	none := pytype.NewNoneType()

	if got := RemoveFalsinessFromType(none); got != pytype.Type(none) {
		t.Errorf("None is always falsy and must pass through unchanged, got %v", got)
	}
	if _, ok := RemoveFalsinessFromType(trueObj).(*pytype.NeverType); !ok {
		t.Errorf("a definitively true-tagged object must reduce to Never")
	}
	if got := RemoveFalsinessFromType(falseObj); got != pytype.Type(falseObj) {
		t.Errorf("a definitively false-tagged object must pass through unchanged, got %v", got)
	}

	union := &pytype.UnionType{Subtypes: []pytype.Type{falseObj, trueObj, none}}
	got := RemoveFalsinessFromType(union)
	gotUnion, ok := got.(*pytype.UnionType)
	if !ok || len(gotUnion.Subtypes) != 2 {
		t.Errorf("union of [false, true, None] should narrow to [false, None], got %v", got)
	}
}


