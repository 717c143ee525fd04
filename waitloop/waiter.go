package waitloop

import (
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/probekit/probekit/bgtimer"
)

// waiter performs the rendezvous sleep between loop iterations: the calling
// goroutine blocks on a condition variable until a one-shot timer task,
// running on the shared bgtimer pool, fires and signals it.
//
// The lock and condition variable are private to the owning loop call and are
// never shared with callers. There is no cancellation: once started, the wait
// always runs to timer completion.
type waiter struct {
	mu    sync.Mutex
	cond  *sync.Cond
	fired *atomic.Bool
}

func newWaiter() *waiter {
	w := &waiter{fired: atomic.NewBool(false)}
	w.cond = sync.NewCond(&w.mu)

	return w
}

// sleep blocks the calling goroutine for d. A non-positive d returns
// immediately without touching the timer pool, which is the degenerate
// busy-recheck path.
//
// sleep is not safe for concurrent use; the loop calls it from a single
// goroutine, once per iteration.
func (w *waiter) sleep(d time.Duration) {
	if d <= 0 {
		return
	}

	w.fired.Store(false)

	bgtimer.After(d, func() {
		// Take the lock before signaling so the wake-up cannot slip in
		// between the sleeper's check of fired and its cond.Wait.
		w.mu.Lock()
		w.fired.Store(true)
		w.mu.Unlock()

		w.cond.Signal()
	})

	w.mu.Lock()
	for !w.fired.Load() {
		w.cond.Wait()
	}
	w.mu.Unlock()
}
