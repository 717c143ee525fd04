package waitloop

import (
	"log/slog"
	"time"

	"github.com/probekit/probekit/optional"
)

// Option adjusts a single Do/DoValue call. Settings not supplied fall back to
// the Loop's defaults, field by field.
type Option func(*options)

// options holds the per-call overrides. Each field is optional so that an
// unset override can fall through to the corresponding default.
type options struct {
	timeout        optional.Value[time.Duration]
	interval       optional.Value[time.Duration]
	failureMessage optional.Value[string]
}

// resolve merges the per-call overrides over the given defaults.
func (o *options) resolve(defaults Config) Config {
	return Config{
		Timeout:  o.timeout.GetOrElse(defaults.Timeout),
		Interval: o.interval.GetOrElse(defaults.Interval),
	}
}

// WithTimeout overrides the wait deadline for this call only.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = optional.Some(d)
	}
}

// WithInterval overrides the pause between successful checks for this call
// only.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		o.interval = optional.Some(d)
	}
}

// WithFailureMessage annotates any error the action returns during the looped
// phase with msg (see annotate.Wrap). The final post-deadline invocation's
// error is never annotated.
func WithFailureMessage(msg string) Option {
	return func(o *options) {
		o.failureMessage = optional.Some(msg)
	}
}

// LoopOption configures a Loop at construction time.
type LoopOption func(*Loop)

// WithLogger sets the logger used for the loop's operational trace lines.
// Defaults to slog.Default().
func WithLogger(log *slog.Logger) LoopOption {
	return func(l *Loop) {
		l.log = log
	}
}
