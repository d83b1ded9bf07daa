package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Makepad-fr/listbench/internal/ui"
)

func (m Model) View() string {
	content := m.list.View()
	if m.showStats {
		content = m.statsView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, ui.PanelString([]string{content}), m.controlsView())
}

// resize gives the list whatever height the control panel leaves over.
func (m *Model) resize() {
	controls := lipgloss.Height(m.controlsView())
	h := m.height - controls - 2
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.list.SetSize(w, h)
}

func (m Model) controlsView() string {
	t := ui.Current()
	c := m.ctrl
	tm := c.Timings()

	rowsLine := fmt.Sprintf("Rows: %s", t.Title.Render(humanize.Comma(int64(len(c.Rows())))))
	if m.selection != nil {
		rowsLine += fmt.Sprintf(" %s Selected: %s", t.SymDot, t.Title.Render(humanize.Comma(int64(m.selection.Count()))))
	}
	if c.State() == Fetching {
		rowsLine += "   " + m.spinner.View() + t.Pending.Render(" fetching")
	}

	lines := []string{rowsLine}
	if m.editing {
		lines = append(lines, "Payload Size (MB): "+m.input.View())
	} else {
		sizeLine := "Payload Size (MB): " + t.Title.Render(c.Size().String())
		if m.opts.Features.SizeInput {
			sizeLine += t.Help.Render("  (e to edit)")
		}
		lines = append(lines, sizeLine)
	}
	if err := c.InputErr(); err != nil {
		lines = append(lines, t.Error.Render("  "+err.Error()))
	}

	lines = append(lines,
		fmt.Sprintf("Fetch In Flight Time: %s", t.Title.Render(fmt.Sprintf("%dms", tm.Inflight))),
		fmt.Sprintf("JSON Parse Time: %s", t.Title.Render(fmt.Sprintf("%dms", tm.JSONParse))),
		fmt.Sprintf("Transform Execution Time: %s", t.Title.Render(fmt.Sprintf("%dms", tm.Transform))),
	)

	refetch := t.Accent.Render("[r] Refetch")
	if !c.CanRefetch() || m.refetchPending {
		refetch = t.Muted.Render("[r] Refetch")
	}
	buttons := refetch
	if m.opts.Features.History {
		buttons += "   " + t.Accent.Render("[s] Get Stats")
	}
	lines = append(lines, buttons)

	if err := c.LastErr(); err != nil {
		lines = append(lines, t.Error.Render(truncate("last fetch failed: "+err.Error(), max(m.width-6, 20))))
	}
	if m.notice != "" {
		lines = append(lines, t.Help.Render(m.notice))
	}

	panel := ui.PanelString(lines)
	if c.State() == Fetching {
		panel = t.Muted.Render(panel)
	}
	return panel
}

func (m Model) statsView() string {
	t := ui.Current()
	h := m.ctrl.History()
	if h == nil {
		return t.Muted.Render("stats history is off")
	}
	dump := h.Dump()
	if len(dump) == 0 {
		return t.Muted.Render("no fetches recorded yet")
	}

	lines := []string{t.Title.Render(fmt.Sprintf("Stats (%s fetches)", humanize.Comma(int64(len(dump)))))}
	lines = append(lines, "")
	lines = append(lines, ui.SummaryTable(dump)...)
	lines = append(lines, "", t.Help.Render("s/esc to close"))
	return strings.Join(lines, "\n")
}
