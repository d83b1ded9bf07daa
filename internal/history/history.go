// Package history keeps the per-fetch timing records for the session.
package history

import (
	"sync"

	"github.com/Makepad-fr/listbench/internal/logging"
	"github.com/Makepad-fr/listbench/internal/model"
)

// Sink receives every record passed to Persist, e.g. a database.
type Sink interface {
	RecordStats(model.FetchStats) error
}

// History is append-only. Records are kept in the order fetches complete
// and are never trimmed.
type History struct {
	mu      sync.Mutex
	records []model.FetchStats
	sinks   []Sink
}

func New(sinks ...Sink) *History {
	return &History{sinks: sinks}
}

// Record appends s and writes it to every sink.
func (h *History) Record(s model.FetchStats) {
	h.Append(s)
	h.Persist(s)
}

// Append adds s to the in-memory records only.
func (h *History) Append(s model.FetchStats) {
	h.mu.Lock()
	h.records = append(h.records, s)
	h.mu.Unlock()
}

// HasSinks reports whether Persist has anywhere to write.
func (h *History) HasSinks() bool {
	return len(h.sinks) > 0
}

// Persist writes s to the sinks without appending it. Sink errors are
// logged and otherwise ignored.
func (h *History) Persist(s model.FetchStats) {
	for _, sink := range h.sinks {
		if err := sink.RecordStats(s); err != nil {
			logging.Warn("history sink failed", "error", err)
		}
	}
}

// Dump returns a copy of every record so far.
func (h *History) Dump() []model.FetchStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]model.FetchStats, len(h.records))
	copy(out, h.records)
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}
