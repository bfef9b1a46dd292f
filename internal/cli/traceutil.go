package cli

import (
	"context"
	"log"
	"runtime/trace"
	"time"
)

// withPhase runs fn inside a trace region and logs how long it took.
func withPhase[T any](ctx context.Context, name string, fn func() (T, error)) (T, error) {
	var value T
	var err error
	start := time.Now()
	trace.WithRegion(ctx, name, func() {
		value, err = fn()
	})
	log.Printf("%s: %s", name, time.Since(start).Round(time.Microsecond))
	return value, err
}

func withPhaseErr(ctx context.Context, name string, fn func() error) error {
	_, err := withPhase(ctx, name, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}
