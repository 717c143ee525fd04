package waitloop_test

import (
	"context"
	"fmt"
	"time"

	"github.com/probekit/probekit/waitloop"
)

// ExampleLoop_Do demonstrates waiting on an assertion that holds throughout
// the deadline: the loop keeps rechecking it, then the final check decides
// the outcome.
func ExampleLoop_Do() {
	loop := waitloop.New(waitloop.Config{
		Timeout:  20 * time.Millisecond,
		Interval: 5 * time.Millisecond,
	})

	err := loop.Do(context.Background(), func(ctx context.Context) error {
		return nil // e.g. page.AssertVisible("#dashboard")
	})

	fmt.Println(err == nil)
	// Output: true
}

// ExampleValueLoop_Do demonstrates waiting for a value-producing check.
func ExampleValueLoop_Do() {
	loop := waitloop.NewValue[int](waitloop.Config{
		Timeout:  20 * time.Millisecond,
		Interval: 5 * time.Millisecond,
	})

	rows, err := loop.Do(context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil // e.g. table.CountRows()
	})

	fmt.Println(rows, err == nil)
	// Output: 42 true
}
