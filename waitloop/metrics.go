package waitloop

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for monitoring wait behavior across a test run.

var (
	// actionCalls counts every invocation of a wait action, including the
	// final post-deadline call.
	actionCalls = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "waitloop_action_calls_total",
		Help: "The total number of wait action invocations",
	})

	// actionFailures counts actions that returned an error during the looped
	// phase, each of which aborts its wait.
	actionFailures = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "waitloop_action_failures_total",
		Help: "The total number of wait actions that failed and aborted the wait",
	})

	// deadlineExits counts waits that ran their full deadline and proceeded
	// to the final unconditional invocation.
	deadlineExits = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "waitloop_deadline_exits_total",
		Help: "The total number of waits that reached their deadline",
	})

	// waitDuration measures the total wall-clock time of each completed wait.
	waitDuration = promauto.NewHistogram(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name: "waitloop_duration_seconds",
		Help: "The wall-clock duration of completed waits",
		Buckets: []float64{
			0.01, // 10ms
			0.1,  // 100ms
			0.5,  // 500ms
			1,    // 1s
			5,    // 5s
			15,   // 15s
			60,   // 1m
			300,  // 5m
		},
	})
)
