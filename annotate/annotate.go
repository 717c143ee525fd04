// Package annotate builds errors that carry extra context without disturbing
// the underlying cause chain. Wrap prefixes a human-readable message; WithAttrs
// attaches structured slog attributes that a logging handler can surface later.
// Both wrappers support errors.Is and errors.As through Unwrap.
package annotate

import (
	"errors"
	"log/slog"
	"time"
)

// Wrap returns a new error whose text is "msg: <err>" and whose cause chain
// still contains err. It never mutates err.
//
// Wrap(nil, msg) returns nil, and Wrap(err, "") returns err unchanged, so
// callers can pass an optional message through without branching.
func Wrap(err error, msg string) error {
	if err == nil || msg == "" {
		return err
	}

	return &messageError{msg: msg, cause: err}
}

// messageError prefixes a message onto an underlying error.
type messageError struct {
	msg   string
	cause error
}

func (e *messageError) Error() string {
	return e.msg + ": " + e.cause.Error()
}

func (e *messageError) Unwrap() error {
	return e.cause
}

var _ error = (*messageError)(nil)

// WithAttrs attaches structured logging attributes to an error. The attributes
// travel with the error and are extracted when it is logged through a handler
// installed by the logger package.
//
// Args are slog key-value pairs (string keys followed by values).
// Returns nil if err is nil.
func WithAttrs(err error, args ...any) error {
	if err == nil {
		return nil
	}

	// slog.Record is the simplest way to turn loose key-value args into
	// well-formed attrs, including its handling of dangling keys.
	rec := slog.NewRecord(time.Now(), slog.LevelDebug, "", 0)
	rec.Add(args...)

	var attrs []slog.Attr

	rec.Attrs(func(attr slog.Attr) bool {
		attrs = append(attrs, attr)

		return true
	})

	return &attrError{cause: err, attrs: attrs}
}

// attrError carries slog attributes alongside an underlying error.
type attrError struct {
	cause error
	attrs []slog.Attr
}

func (e *attrError) Error() string {
	return e.cause.Error()
}

func (e *attrError) Unwrap() error {
	return e.cause
}

var _ error = (*attrError)(nil)

// Split returns the underlying cause and the attached attributes when err
// (anywhere in its chain) was built with WithAttrs. The third return value
// reports whether any attributes were found.
func Split(err error) (error, []slog.Attr, bool) {
	var ae *attrError
	if !errors.As(err, &ae) {
		return err, nil, false
	}

	return ae.cause, ae.attrs, true
}
