// Package fetch issues the /movies request and times each stage of it.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/Makepad-fr/listbench/internal/logging"
	"github.com/Makepad-fr/listbench/internal/model"
	"github.com/Makepad-fr/listbench/internal/timing"
)

var (
	// ErrNetwork covers transport failures, cancellation and non-2xx statuses.
	ErrNetwork = errors.New("network failure")
	// ErrParse means the response body was not the JSON we expected.
	ErrParse = errors.New("parse failure")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Result is the outcome of a timed fetch. Durations are zero when Err is set.
type Result[T any] struct {
	Value     T
	Inflight  time.Duration
	JSONParse time.Duration
	Total     time.Duration
	Err       error
}

func (r Result[T]) InflightMillis() int64  { return timing.Millis(r.Inflight) }
func (r Result[T]) JSONParseMillis() int64 { return timing.Millis(r.JSONParse) }
func (r Result[T]) TotalMillis() int64     { return timing.Millis(r.Total) }

// Measure issues the request produced by do and decodes its body into T,
// timing the round-trip and the decode separately.
func Measure[T any](ctx context.Context, label string, do func(context.Context) (*http.Response, error)) Result[T] {
	sw := timing.Start()

	sent := <-timing.TimeAsync(ctx, do, func(resp *http.Response) { resp.Body.Close() })
	if sent.Err != nil {
		return Result[T]{Err: classify(sent.Err)}
	}
	resp := sent.Value
	defer resp.Body.Close()
	logging.Info(fmt.Sprintf("[%s] Fetch time: %d milliseconds", label, sent.Millis()))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result[T]{Err: fmt.Errorf("%w: HTTP %s", ErrNetwork, resp.Status)}
	}

	parsed := timing.Time(func() (T, error) {
		var v T
		if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
			return v, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return v, nil
	})
	if parsed.Err != nil {
		return Result[T]{Err: parsed.Err}
	}
	logging.Info(fmt.Sprintf("[%s] JSON parse time: %d milliseconds", label, parsed.Millis()))

	return Result[T]{
		Value:     parsed.Value,
		Inflight:  sent.Elapsed,
		JSONParse: parsed.Elapsed,
		Total:     sw.Lap(),
	}
}

func classify(err error) error {
	if errors.Is(err, model.ErrInvalidSize) || errors.Is(err, ErrNetwork) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}
