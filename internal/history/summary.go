package history

import (
	"sort"

	"github.com/Makepad-fr/listbench/internal/model"
)

// Span is min/mean/max over one timing column, in milliseconds.
type Span struct {
	Min, Mean, Max float64
}

// SizeSummary aggregates every record fetched at one payload size.
type SizeSummary struct {
	SizeMB    float64
	Count     int
	MeanRows  float64
	Inflight  Span
	JSONParse Span
	Transform Span
}

// Summarize groups stats by size, smallest size first.
func Summarize(stats []model.FetchStats) []SizeSummary {
	groups := make(map[float64][]model.FetchStats)
	for _, s := range stats {
		groups[s.SizeMB] = append(groups[s.SizeMB], s)
	}

	out := make([]SizeSummary, 0, len(groups))
	for size, g := range groups {
		sum := SizeSummary{SizeMB: size, Count: len(g)}
		var rows float64
		for _, s := range g {
			rows += float64(s.NumberOfRows)
		}
		sum.MeanRows = rows / float64(len(g))
		sum.Inflight = span(g, func(s model.FetchStats) int64 { return s.InflightTime })
		sum.JSONParse = span(g, func(s model.FetchStats) int64 { return s.JSONParseTime })
		sum.Transform = span(g, func(s model.FetchStats) int64 { return s.TransformTime })
		out = append(out, sum)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].SizeMB < out[j].SizeMB })
	return out
}

func span(g []model.FetchStats, field func(model.FetchStats) int64) Span {
	sp := Span{Min: float64(field(g[0])), Max: float64(field(g[0]))}
	var total float64
	for _, s := range g {
		v := float64(field(s))
		total += v
		if v < sp.Min {
			sp.Min = v
		}
		if v > sp.Max {
			sp.Max = v
		}
	}
	sp.Mean = total / float64(len(g))
	return sp
}
