// Package logger configures the process-wide slog logger used by the rest of
// the library. It also installs a handler decorator that surfaces structured
// attributes attached to errors via annotate.WithAttrs.
package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/probekit/probekit/envcfg"
)

// component names the part of the test harness emitting logs. Informational
// only; carried as an attribute on every log line.
// atomic.Value keeps reads and writes race-free.
var component atomic.Value //nolint:gochecknoglobals

// configMutex serializes calls to ConfigureLoggingWithOptions, which mutate
// global state (slog.SetDefault and log.Default).
var configMutex sync.Mutex //nolint:gochecknoglobals

// Options configures logging.
type Options struct {
	// Component is a short name for the subsystem producing logs
	// (e.g. "ui-tests"). Added to every record as "component".
	Component string

	// JSON selects JSON output instead of text.
	JSON bool

	// MinLevel is the minimum level that will be emitted.
	MinLevel slog.Level

	// Output is where log records are written. Defaults to os.Stdout.
	Output io.Writer
}

// ConfigureLoggingWithOptions configures the default slog logger and returns
// it. The installed handler extracts attributes from annotated errors (see
// annotate.WithAttrs) so they appear as first-class log attributes.
//
// Thread-safe, but it modifies global state, so concurrent calls are
// serialized and last-writer-wins.
func ConfigureLoggingWithOptions(opts Options) *slog.Logger {
	configMutex.Lock()
	defer configMutex.Unlock()

	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	var inner slog.Handler

	handlerOpts := &slog.HandlerOptions{Level: opts.MinLevel}

	if opts.JSON {
		inner = slog.NewJSONHandler(opts.Output, handlerOpts)
	} else {
		inner = slog.NewTextHandler(opts.Output, handlerOpts)
	}

	handler := NewAnnotatedErrorHandler(inner)

	logger := slog.New(handler)
	if opts.Component != "" {
		logger = logger.With("component", opts.Component)
	}

	slog.SetDefault(logger)

	// Redirect the legacy log package through the same handler; third-party
	// code may still use it.
	def := log.Default()
	*def = *slog.NewLogLogger(handler, slog.LevelInfo)

	component.Store(opts.Component)

	return logger
}

// ConfigureLogging configures logging from the environment and returns the
// default logger. LOG_JSON selects the output format, LOG_LEVEL the minimum
// level, and LOG_OUTPUT either "stdout" or "stderr".
func ConfigureLogging(componentName string) *slog.Logger {
	logJSON := envcfg.Bool("LOG_JSON", envcfg.Default(false)).ValueOrElse(false)

	minLevel := envcfg.SlogLevel("LOG_LEVEL",
		envcfg.Default(slog.LevelInfo)).ValueOrElse(slog.LevelInfo)

	var output io.Writer = os.Stdout
	if envcfg.String("LOG_OUTPUT").ValueOrElse("stdout") == "stderr" {
		output = os.Stderr
	}

	return ConfigureLoggingWithOptions(Options{
		Component: componentName,
		JSON:      logJSON,
		MinLevel:  minLevel,
		Output:    output,
	})
}

// Component returns the component name set by the most recent configuration
// call, or the empty string if logging has not been configured.
func Component() string {
	name, ok := component.Load().(string)
	if !ok {
		return ""
	}

	return name
}
