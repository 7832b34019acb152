package core

// Opt is a tri-state column value for partial updates. The zero value means
// "leave the column unchanged"; Set carries a new value and Null writes SQL
// NULL. Update statements only touch columns whose Opt is non-zero.
type Opt[T any] struct {
	set   bool
	null  bool
	value T
}

// Set returns an Opt carrying v.
func Set[T any](v T) Opt[T] {
	return Opt[T]{set: true, value: v}
}

// Null returns an Opt that writes SQL NULL.
func Null[T any]() Opt[T] {
	return Opt[T]{set: true, null: true}
}

// IsSet reports whether the column should be written at all.
func (o Opt[T]) IsSet() bool {
	return o.set
}

// IsNull reports whether the column should be written as SQL NULL.
func (o Opt[T]) IsNull() bool {
	return o.set && o.null
}

// Get returns the carried value. ok is false when the Opt is unset or NULL.
func (o Opt[T]) Get() (v T, ok bool) {
	if !o.set || o.null {
		return v, false
	}
	return o.value, true
}

// Arg returns the value as a driver argument: the carried value, or nil for
// SQL NULL. Calling Arg on an unset Opt also yields nil; callers gate on
// IsSet first.
func (o Opt[T]) Arg() any {
	if !o.set || o.null {
		return nil
	}
	return o.value
}
