package evaluator

import optional "github.com/moznion/go-optional"

// optionSome is a tiny generic-inference helper: optional.Some[T](v) reads
// awkwardly at several call sites in this package because Go can't always infer T
// from the surrounding assignment target; this wrapper lets the compiler
// infer T from v's own type instead.
func optionSome[T any](v T) optional.Option[T] {
	return optional.Some(v)
}


