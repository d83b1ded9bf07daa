// Package timing wraps computations with wall-clock measurement.
package timing

import (
	"context"
	"fmt"
	"time"

	"github.com/Makepad-fr/listbench/internal/logging"
)

// Result holds either a value with its elapsed time, or the error the
// computation returned. On error Elapsed is zero: the timing is discarded.
type Result[T any] struct {
	Value   T
	Elapsed time.Duration
	Err     error
}

// Millis returns Elapsed in whole milliseconds, never negative.
func (r Result[T]) Millis() int64 { return Millis(r.Elapsed) }

// Millis truncates d to milliseconds and clamps at zero.
func Millis(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	return d.Milliseconds()
}

// Measure runs fn once and logs how long it took.
func Measure[T any](label string, fn func() (T, error)) Result[T] {
	r := Time(fn)
	if r.Err == nil {
		logExecution(label, r.Elapsed)
	}
	return r
}

// Time is Measure without the log line, for callers that report the
// duration under their own message.
func Time[T any](fn func() (T, error)) Result[T] {
	sw := Start()
	v, err := fn()
	if err != nil {
		return Result[T]{Err: err}
	}
	return Result[T]{Value: v, Elapsed: sw.Lap()}
}

// MeasureAsync runs fn in its own goroutine. The channel receives exactly one
// Result, timed from invocation until fn returns. If ctx ends first the
// Result carries ctx.Err() and fn is left to finish on its own.
func MeasureAsync[T any](ctx context.Context, label string, fn func(context.Context) (T, error)) <-chan Result[T] {
	return runAsync(ctx, fn, nil, func(r Result[T]) { logExecution(label, r.Elapsed) })
}

// TimeAsync is MeasureAsync without the log line. A value fn returns after
// ctx has ended is handed to release, if set.
func TimeAsync[T any](ctx context.Context, fn func(context.Context) (T, error), release func(T)) <-chan Result[T] {
	return runAsync(ctx, fn, release, nil)
}

func runAsync[T any](ctx context.Context, fn func(context.Context) (T, error), release func(T), onDone func(Result[T])) <-chan Result[T] {
	out := make(chan Result[T], 1)
	sw := Start()

	done := make(chan Result[T], 1)
	go func() {
		v, err := fn(ctx)
		if err != nil {
			done <- Result[T]{Err: err}
			return
		}
		done <- Result[T]{Value: v, Elapsed: sw.Lap()}
	}()

	go func() {
		select {
		case r := <-done:
			if r.Err == nil && onDone != nil {
				onDone(r)
			}
			out <- r
		case <-ctx.Done():
			select {
			case r := <-done:
				out <- r
			default:
				out <- Result[T]{Err: ctx.Err()}
				if release == nil {
					return
				}
				if r := <-done; r.Err == nil {
					release(r.Value)
				}
			}
		}
	}()
	return out
}

func logExecution(label string, d time.Duration) {
	logging.Info(fmt.Sprintf("[%s] Execution time: %d milliseconds", label, Millis(d)))
}

// Stopwatch measures elapsed time from Start using the monotonic clock.
type Stopwatch struct {
	start time.Time
}

func Start() Stopwatch { return Stopwatch{start: time.Now()} }

// Lap returns the time elapsed since Start.
func (s Stopwatch) Lap() time.Duration { return time.Since(s.start) }
