package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a Unicode progress bar with a done/total counter.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %d/%d", bar, done, total)
}

// PanelString frames lines in the current theme's border.
func PanelString(lines []string) string {
	t := Current()
	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

// Panel prints a framed box to stdout.
func Panel(lines []string) { fmt.Println(PanelString(lines)) }

// Table pads columns to equal width. The first row is the header.
func Table(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := make([]int, len(rows[0]))
	for _, r := range rows {
		for i, cell := range r {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	out := make([]string, 0, len(rows))
	for ri, r := range rows {
		cells := make([]string, len(r))
		for i, cell := range r {
			pad := widths[i] - lipgloss.Width(cell)
			if i == 0 {
				cells[i] = cell + strings.Repeat(" ", pad)
			} else {
				cells[i] = strings.Repeat(" ", pad) + cell
			}
		}
		line := strings.Join(cells, "  ")
		if ri == 0 {
			line = Current().Accent.Render(line)
		}
		out = append(out, line)
	}
	return out
}

func OK(msg string) { Fprintln(os.Stdout, msg) }

func Fail(msg string) { FprintFail(os.Stderr, msg) }

func Fprintln(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymOK+" "+msg))
}

func FprintFail(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Error.Render(t.SymFail+" "+msg))
}
