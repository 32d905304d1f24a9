package utils

import (
	"context"
	"strings"
	"time"
)

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

type result[T any] struct {
	value T
	err   error
}

// Await runs fn in its own goroutine and waits for it or for ctx, whichever
// comes first. A fn that outlives ctx keeps running until it returns; its
// result is discarded.
func Await[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	done := make(chan result[T], 1)
	go func() {
		value, err := fn()
		done <- result[T]{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-done:
		return res.value, res.err
	}
}

// AwaitTimeout is Await bounded by d. A non-positive d only honors ctx.
func AwaitTimeout[T any](ctx context.Context, d time.Duration, fn func() (T, error)) (T, error) {
	if d <= 0 {
		return Await(ctx, fn)
	}

	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	return Await(ctx, fn)
}
