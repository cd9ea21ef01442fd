package evaluator

import "github.com/laughingirL/pyright/internal/pytype"

// CombineTypes implements §4.1's combineTypes: Never for no inputs, the
// single type for one input, else a flattened, deduplicated Union. No
// output ever nests a Union or repeats a structurally-identical subtype
// (§8's union-canonicalization invariant).
func CombineTypes(types []pytype.Type) pytype.Type {
	flattened := make([]pytype.Type, 0, len(types))
	for _, t := range types {
		flattened = appendFlattened(flattened, t)
	}

	seen := make(map[string]bool, len(flattened))
	deduped := flattened[:0:0]
	for _, t := range flattened {
		key := pytype.StructuralKey(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, t)
	}

	switch len(deduped) {
	case 0:
		return pytype.NewNeverType()
	case 1:
		return deduped[0]
	default:
		return &pytype.UnionType{Subtypes: deduped}
	}
}

func appendFlattened(out []pytype.Type, t pytype.Type) []pytype.Type {
	if union, ok := t.(*pytype.UnionType); ok {
		for _, sub := range union.Subtypes {
			out = appendFlattened(out, sub)
		}
		return out
	}
	if _, ok := t.(*pytype.NeverType); ok {
		// Never contributes nothing to a union — combining with Never is
		// the empty-input case, handled by the caller ending up with 0
		// deduped members if that was the only input.
		return out
	}
	return append(out, t)
}

// DoForSubtypes implements §4.1's doForSubtypes: the only sanctioned way to
// distribute an operation over a Union. Applying identity to any type
// returns an equal type (§8's invariant).
func DoForSubtypes(t pytype.Type, f func(pytype.Type) pytype.Type) pytype.Type {
	if union, ok := t.(*pytype.UnionType); ok {
		results := make([]pytype.Type, len(union.Subtypes))
		for i, sub := range union.Subtypes {
			results[i] = f(sub)
		}
		return CombineTypes(results)
	}
	return f(t)
}

// RemoveTruthinessFromType strips the `False`-compatible branch of a type,
// leaving the part that can be truthy; `or` uses it for its left operand,
// which is only the result when truthy (§4.4's boolean binary rule). For an
// Object tagged definitively false, this yields Never; for a plain union
// containing None, None is dropped.
func RemoveTruthinessFromType(t pytype.Type) pytype.Type {
	switch t := t.(type) {
	case *pytype.ObjectType:
		if truthy, ok := t.Truthy.Take(); ok && !truthy {
			return pytype.NewNeverType()
		}
		return t
	case *pytype.NoneType:
		return pytype.NewNeverType()
	case *pytype.UnionType:
		var kept []pytype.Type
		for _, sub := range t.Subtypes {
			reduced := RemoveTruthinessFromType(sub)
			if _, isNever := reduced.(*pytype.NeverType); isNever {
				continue
			}
			kept = append(kept, sub)
		}
		return CombineTypes(kept)
	default:
		return t
	}
}

// RemoveFalsinessFromType is RemoveTruthinessFromType's dual, used by `and`
// for its left operand, which is only the result when falsy (§4.4).
func RemoveFalsinessFromType(t pytype.Type) pytype.Type {
	switch t := t.(type) {
	case *pytype.ObjectType:
		if truthy, ok := t.Truthy.Take(); ok && truthy {
			return pytype.NewNeverType()
		}
		return t
	case *pytype.NoneType:
		return t
	case *pytype.UnionType:
		var kept []pytype.Type
		for _, sub := range t.Subtypes {
			reduced := RemoveFalsinessFromType(sub)
			if _, isNever := reduced.(*pytype.NeverType); isNever {
				continue
			}
			kept = append(kept, sub)
		}
		return CombineTypes(kept)
	default:
		return t
	}
}


