package bgtimer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/probekit/probekit/bgtimer"
)

func TestSubmit(t *testing.T) {
	t.Parallel()

	ran := atomic.NewBool(false)

	task := bgtimer.Submit(func() {
		ran.Store(true)
	})

	require.NoError(t, task.Wait())
	assert.True(t, ran.Load())
}

func TestGo(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})

	require.NoError(t, bgtimer.Go(func() {
		close(done)
	}))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("background task never ran")
	}
}

func TestAfter(t *testing.T) {
	t.Parallel()

	const delay = 50 * time.Millisecond

	start := time.Now()
	task := bgtimer.After(delay, func() {})

	require.NoError(t, task.Wait())
	assert.GreaterOrEqual(t, time.Since(start), delay)
}

func TestAfter_ZeroDelay(t *testing.T) {
	t.Parallel()

	ran := atomic.NewBool(false)

	task := bgtimer.After(0, func() {
		ran.Store(true)
	})

	require.NoError(t, task.Wait())
	assert.True(t, ran.Load())
}
