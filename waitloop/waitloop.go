// Package waitloop implements the bounded wait-and-recheck loop used by the
// UI test harness to tolerate asynchronous state: keep invoking a check while
// it succeeds, pausing a fixed interval between invocations, until a deadline
// passes, then make one final unconditional invocation and return its result.
//
// The control flow is deliberately asymmetric: a check that fails aborts the
// whole wait immediately with that error (optionally annotated), it is never
// retried. Exceeding the deadline is not an error at all, it only ends the
// looping phase. See the package tests for the exact timing contract.
//
// Basic usage:
//
//	err := waitloop.Do(ctx, func(ctx context.Context) error {
//	    return page.AssertVisible("#dashboard")
//	})
//
// With per-call overrides:
//
//	err := waitloop.Do(ctx, checkState,
//	    waitloop.WithTimeout(10*time.Second),
//	    waitloop.WithInterval(250*time.Millisecond),
//	    waitloop.WithFailureMessage("dashboard never settled"),
//	)
//
// For checks that produce a value:
//
//	rows, err := waitloop.DoValue(ctx, func(ctx context.Context) (int, error) {
//	    return table.CountRows()
//	})
package waitloop

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/probekit/probekit/annotate"
)

// tracerName identifies this package's spans. The spans are no-ops unless the
// telemetry package (or other code) installed a global tracer provider.
const tracerName = "github.com/probekit/probekit/waitloop"

// Loop runs wait-and-recheck cycles against a fixed set of default timings.
// Construct one per harness (or use the package-level Do/DoValue, which build
// their defaults from the environment). Loop holds no per-call state; each Do
// computes its own start time and waiter, so a Loop is safe for concurrent
// use.
type Loop struct {
	defaults Config
	log      *slog.Logger
}

// New creates a Loop with the given default configuration. The defaults are
// an explicit immutable value: per-call tweaks go through Options, never
// through shared mutation.
func New(defaults Config, opts ...LoopOption) *Loop {
	l := &Loop{
		defaults: defaults,
		log:      slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Defaults returns the Loop's default configuration.
func (l *Loop) Defaults() Config {
	return l.defaults
}

// Do runs action repeatedly until the configured deadline passes, then makes
// one final unconditional invocation and returns its error (nil on success).
//
// During the looped phase, any error from action aborts the wait immediately:
// the error is returned as-is, or wrapped with the WithFailureMessage text
// when one was supplied. The final invocation's error is always returned
// unwrapped. Do never synthesizes an error of its own; in particular there is
// no timeout error.
//
// The deadline is cooperative: it is checked only between full
// invoke-then-sleep cycles, so a slow action can overrun the budget, and a
// wait in progress cannot be cut short. Callers needing early exit must
// arrange it inside the action itself.
func (l *Loop) Do(ctx context.Context, action func(ctx context.Context) error, opts ...Option) error {
	callOpts := &options{}
	for _, opt := range opts {
		opt(callOpts)
	}

	cfg := callOpts.resolve(l.defaults)

	log := l.log.With("wait_id", "wait-"+uuid.New().String())

	ctx, span := otel.Tracer(tracerName).Start(ctx, "waitloop.do",
		trace.WithAttributes(
			attribute.Int64("waitloop.timeout_ms", cfg.Timeout.Milliseconds()),
			attribute.Int64("waitloop.interval_ms", cfg.Interval.Milliseconds()),
		))
	defer span.End()

	start := time.Now()
	sleeper := newWaiter()

	for {
		actionCalls.Inc()

		if err := action(ctx); err != nil {
			actionFailures.Inc()
			waitDuration.Observe(time.Since(start).Seconds())

			log.Error("Wait action failed, aborting wait",
				"error", err,
				"timeout", cfg.Timeout,
				"interval", cfg.Interval,
			)

			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			if msg, ok := callOpts.failureMessage.Get(); ok {
				return annotate.Wrap(err, msg)
			}

			return err
		}

		// The pause comes before the deadline check, so a wait always
		// overshoots its timeout by up to one interval.
		sleeper.sleep(cfg.Interval)

		if time.Since(start) > cfg.Timeout {
			break
		}
	}

	deadlineExits.Inc()

	log.Info("Wait deadline reached, making final check",
		"elapsed", time.Since(start),
		"timeout", cfg.Timeout,
	)

	actionCalls.Inc()

	err := action(ctx)

	waitDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

// ValueLoop runs wait-and-recheck cycles for actions that produce a value.
// Go methods cannot introduce type parameters, so the value-returning form is
// a separate generic type rather than a method on Loop.
type ValueLoop[T any] struct {
	loop *Loop
}

// NewValue creates a ValueLoop with the given default configuration.
func NewValue[T any](defaults Config, opts ...LoopOption) *ValueLoop[T] {
	return &ValueLoop[T]{loop: New(defaults, opts...)}
}

// Do behaves exactly like Loop.Do and additionally returns the value produced
// by the last invocation of action. On error it returns the zero value of T.
func (v *ValueLoop[T]) Do(
	ctx context.Context,
	action func(ctx context.Context) (T, error),
	opts ...Option,
) (T, error) {
	var out T

	err := v.loop.Do(ctx, func(ctx context.Context) error {
		var err error

		out, err = action(ctx)

		return err
	}, opts...)
	if err != nil {
		var zero T

		return zero, err
	}

	return out, nil
}

// Do is a convenience that builds a Loop from the process-wide defaults (see
// DefaultConfig) and runs a single wait.
func Do(ctx context.Context, action func(ctx context.Context) error, opts ...Option) error {
	return New(DefaultConfig()).Do(ctx, action, opts...)
}

// DoValue is a convenience that builds a ValueLoop from the process-wide
// defaults and runs a single wait for a value-producing action.
func DoValue[T any](
	ctx context.Context,
	action func(ctx context.Context) (T, error),
	opts ...Option,
) (T, error) {
	return NewValue[T](DefaultConfig()).Do(ctx, action, opts...)
}
