package ui

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/Makepad-fr/listbench/internal/history"
	"github.com/Makepad-fr/listbench/internal/model"
)

// SummaryTable renders stats grouped by payload size, one row per size,
// timings as "mean (min-max)".
func SummaryTable(stats []model.FetchStats) []string {
	rows := [][]string{{"size MB", "fetches", "rows", "in flight ms", "parse ms", "transform ms"}}
	for _, s := range history.Summarize(stats) {
		rows = append(rows, []string{
			humanize.Ftoa(s.SizeMB),
			humanize.Comma(int64(s.Count)),
			humanize.Comma(int64(s.MeanRows)),
			SpanCell(s.Inflight),
			SpanCell(s.JSONParse),
			SpanCell(s.Transform),
		})
	}
	return Table(rows)
}

func SpanCell(s history.Span) string {
	return fmt.Sprintf("%s (%s-%s)", humanize.FtoaWithDigits(s.Mean, 1), humanize.Ftoa(s.Min), humanize.Ftoa(s.Max))
}
