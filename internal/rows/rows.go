// Package rows turns decoded movie items into display rows.
package rows

import (
	"github.com/Makepad-fr/listbench/internal/model"
	"github.com/Makepad-fr/listbench/internal/timing"
)

// Transform keeps every other item (indexes 0, 2, 4, ...) projected to a
// DisplayRow. The input is never modified; nil yields an empty slice.
func Transform(items []model.Item) []model.DisplayRow {
	out := make([]model.DisplayRow, 0, (len(items)+1)/2)
	for i := 0; i < len(items); i += 2 {
		out = append(out, Project(items[i]))
	}
	return out
}

func Project(it model.Item) model.DisplayRow {
	return model.DisplayRow{ID: it.ID, Title: it.Title}
}

// Measure runs Transform under the "getRows" timer.
func Measure(items []model.Item) timing.Result[[]model.DisplayRow] {
	return timing.Measure("getRows", func() ([]model.DisplayRow, error) {
		return Transform(items), nil
	})
}
