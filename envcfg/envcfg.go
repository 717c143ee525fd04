// Package envcfg reads typed configuration values from environment variables.
// Each read produces a Reader that remembers whether the variable was present
// and whether its value parsed, so callers can decide how strictly to treat
// missing or malformed configuration.
//
// Example:
//
//	timeout := envcfg.Duration("WAITLOOP_TIMEOUT",
//	    envcfg.Default(5*time.Second)).ValueOrElse(5 * time.Second)
package envcfg

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// ErrNotSet is returned by Value when the environment variable is absent and
// no Default option was applied.
var ErrNotSet = errors.New("environment variable not set")

// Reader holds the outcome of reading a single environment variable.
// It is immutable; options produce adjusted copies.
type Reader[T any] struct {
	key     string
	present bool
	value   T
	err     error
}

// Option adjusts a Reader, typically to supply fallback behavior.
type Option[T any] func(Reader[T]) Reader[T]

// Default supplies a value to use when the environment variable is absent.
// It does not mask parse errors: a present-but-malformed value still fails.
func Default[T any](value T) Option[T] {
	return func(r Reader[T]) Reader[T] {
		if !r.present && r.err == nil {
			r.value = value
			r.present = true
		}

		return r
	}
}

// Key returns the environment variable name this Reader was built from.
func (r Reader[T]) Key() string {
	return r.key
}

// Present returns true if the variable was set (or a Default was applied).
func (r Reader[T]) Present() bool {
	return r.present
}

// Value returns the parsed value. It returns ErrNotSet (wrapped with the key)
// when the variable is absent and no default was supplied, or the parse error
// when the raw value could not be converted.
func (r Reader[T]) Value() (T, error) {
	var zero T

	if r.err != nil {
		return zero, r.err
	}

	if !r.present {
		return zero, fmt.Errorf("%w: %s", ErrNotSet, r.key)
	}

	return r.value, nil
}

// ValueOrElse returns the parsed value, or fallback when the variable is
// absent or malformed. A malformed value is logged at warn level since it
// usually indicates a deployment mistake rather than an intentional omission.
func (r Reader[T]) ValueOrElse(fallback T) T {
	if r.err != nil {
		slog.Warn("Ignoring malformed environment variable",
			"key", r.key, "error", r.err)

		return fallback
	}

	if !r.present {
		return fallback
	}

	return r.value
}

// String returns a Reader for the given environment variable key.
func String(key string, opts ...Option[string]) Reader[string] {
	return apply(read(key, func(raw string) (string, error) {
		return raw, nil
	}), opts)
}

// Bool returns a Reader that parses the variable with strconv.ParseBool.
func Bool(key string, opts ...Option[bool]) Reader[bool] {
	return apply(read(key, strconv.ParseBool), opts)
}

// Int returns a Reader that parses the variable as a base-10 integer.
func Int(key string, opts ...Option[int]) Reader[int] {
	return apply(read(key, strconv.Atoi), opts)
}

// Duration returns a Reader that parses the variable with time.ParseDuration
// (e.g. "500ms", "2s", "1m30s").
func Duration(key string, opts ...Option[time.Duration]) Reader[time.Duration] {
	return apply(read(key, time.ParseDuration), opts)
}

// SlogLevel returns a Reader that parses the variable as a slog level name
// ("debug", "info", "warn", "error", optionally with offsets like "info+2").
func SlogLevel(key string, opts ...Option[slog.Level]) Reader[slog.Level] {
	return apply(read(key, func(raw string) (slog.Level, error) {
		var level slog.Level
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return level, err
		}

		return level, nil
	}), opts)
}

// read looks up key and converts its raw value with parse.
func read[T any](key string, parse func(string) (T, error)) Reader[T] {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return Reader[T]{key: key}
	}

	value, err := parse(raw)
	if err != nil {
		return Reader[T]{
			key: key,
			err: fmt.Errorf("parsing %s=%q: %w", key, raw, err),
		}
	}

	return Reader[T]{key: key, present: true, value: value}
}

func apply[T any](r Reader[T], opts []Option[T]) Reader[T] {
	for _, opt := range opts {
		r = opt(r)
	}

	return r
}
