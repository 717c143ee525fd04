// Package optional provides a small present-or-absent container. It exists so
// that "caller did not supply this setting" can be told apart from "caller
// supplied the zero value", which matters when merging partial configuration
// over defaults.
package optional

import "fmt"

// Value holds either a single value of type T or nothing.
// The zero Value is empty.
type Value[T any] struct {
	value T
	isSet bool
}

// Some returns a Value containing v.
func Some[T any](v T) Value[T] {
	return Value[T]{value: v, isSet: true}
}

// None returns an empty Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// Get returns the contained value and whether one is present.
func (o Value[T]) Get() (T, bool) {
	return o.value, o.isSet
}

// NonEmpty returns true if a value is present.
func (o Value[T]) NonEmpty() bool {
	return o.isSet
}

// Empty returns true if no value is present.
func (o Value[T]) Empty() bool {
	return !o.isSet
}

// GetOrElse returns the contained value, or fallback when empty.
func (o Value[T]) GetOrElse(fallback T) T {
	if o.isSet {
		return o.value
	}

	return fallback
}

// OrElse returns o when it holds a value, otherwise alternative.
func (o Value[T]) OrElse(alternative Value[T]) Value[T] {
	if o.isSet {
		return o
	}

	return alternative
}

// String returns "Some(v)" or "None".
func (o Value[T]) String() string {
	if o.isSet {
		return fmt.Sprintf("Some(%v)", o.value)
	}

	return "None"
}

// Map applies f to the contained value, producing a Value of the result type.
// An empty input yields an empty output.
func Map[T any, U any](o Value[T], f func(T) U) Value[U] {
	if o.isSet {
		return Some(f(o.value))
	}

	return None[U]()
}
