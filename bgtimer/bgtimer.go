// Package bgtimer owns a process-wide worker pool for short-lived background
// tasks, primarily the one-shot timers that wake waitloop's rendezvous sleeps.
package bgtimer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/alitto/pond/v2"

	"github.com/probekit/probekit/envcfg"
)

// defaultWorkerCount bounds the number of timer tasks in flight at once. Each
// in-flight timer occupies a worker for its full duration, so this also caps
// the number of concurrent rendezvous sleeps.
const defaultWorkerCount = 64

// workerPool is created on first use and lives for the rest of the process.
var workerPool = sync.OnceValue(func() pond.Pool { //nolint:gochecknoglobals
	count := envcfg.Int("TIMER_WORKER_COUNT",
		envcfg.Default(defaultWorkerCount)).ValueOrElse(defaultWorkerCount)

	slog.Debug("Initializing timer worker pool", "count", count)

	return pond.NewPool(count)
})

// Submit submits a function to the shared pool. The returned Task can be used
// to wait for completion.
func Submit(f func()) pond.Task { //nolint:ireturn
	return workerPool().Submit(f)
}

// Go submits a function to the shared pool and returns immediately.
// It returns an error if the pool has been stopped.
func Go(f func()) error {
	return workerPool().Go(f)
}

// After runs f on the shared pool once d has elapsed. The timer always runs to
// completion; there is no cancellation. Returns a Task that completes after f
// returns.
func After(d time.Duration, f func()) pond.Task { //nolint:ireturn
	return workerPool().Submit(func() {
		timer := time.NewTimer(d)
		defer timer.Stop()

		<-timer.C

		f()
	})
}
