package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/Makepad-fr/listbench/internal/model"
	"github.com/Makepad-fr/listbench/internal/ui"
)

// summaryLines renders stats as a per-size table for ui.Panel.
func summaryLines(title string, stats []model.FetchStats) []string {
	t := ui.Current()
	lines := []string{
		fmt.Sprintf("%s   %s %s", t.Title.Render(title), t.Accent.Render("fetches"), humanize.Comma(int64(len(stats)))),
		"",
	}
	if len(stats) == 0 {
		return append(lines, t.Muted.Render("no fetches recorded"))
	}

	lines = append(lines, ui.SummaryTable(stats)...)
	lines = append(lines, "", t.Muted.Render("mean (min-max)"))
	return lines
}
