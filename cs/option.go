package cs

// option is a value which may be absent, such as the advance width of a
// glyph program which does not encode one.
type option[T any] struct {
	value T
	ok    bool
}

func some[T any](v T) option[T] {
	return option[T]{value: v, ok: true}
}

// or returns the value of o, if present, else dflt.
func (o option[T]) or(dflt T) T {
	if o.ok {
		return o.value
	}
	return dflt
}
