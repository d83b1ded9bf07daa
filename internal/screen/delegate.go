package screen

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/listbench/internal/model"
	"github.com/Makepad-fr/listbench/internal/selection"
	"github.com/Makepad-fr/listbench/internal/ui"
)

// rowItem adapts a DisplayRow to bubbles/list.Item
type rowItem struct {
	model.DisplayRow
}

func (i rowItem) FilterValue() string { return i.Title }

func toListItems(rows []model.DisplayRow) []list.Item {
	out := make([]list.Item, len(rows))
	for i, r := range rows {
		out[i] = rowItem{r}
	}
	return out
}

// rowCache keeps rendered row bodies by id. Each cached id holds a
// selection subscription that drops just that entry when it toggles, so a
// toggle re-renders one row and leaves the rest cached.
type rowCache struct {
	mu      sync.Mutex
	lines   map[string]string
	unsubs  map[string]func()
	width   int
	renders int
}

func newRowCache() *rowCache {
	return &rowCache{lines: map[string]string{}, unsubs: map[string]func(){}}
}

func (c *rowCache) invalidate(id string) {
	c.mu.Lock()
	delete(c.lines, id)
	c.mu.Unlock()
}

// reset drops every entry and subscription, e.g. after new rows arrive.
func (c *rowCache) reset() {
	c.mu.Lock()
	unsubs := c.unsubs
	c.lines = map[string]string{}
	c.unsubs = map[string]func(){}
	c.mu.Unlock()
	for _, u := range unsubs {
		u()
	}
}

func (c *rowCache) get(id string, width int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if width != c.width {
		return "", false
	}
	s, ok := c.lines[id]
	return s, ok
}

func (c *rowCache) put(id string, width int, line string, store *selection.Store) {
	c.mu.Lock()
	if width != c.width {
		c.width = width
		c.lines = map[string]string{}
	}
	c.lines[id] = line
	c.renders++
	_, subscribed := c.unsubs[id]
	c.mu.Unlock()

	if !subscribed && store != nil {
		unsub := store.Subscribe(id, func(bool) { c.invalidate(id) })
		c.mu.Lock()
		c.unsubs[id] = unsub
		c.mu.Unlock()
	}
}

// rowDelegate renders single-line rows: title on the left, "Selected" on
// the right.
type rowDelegate struct {
	selection *selection.Store
	cache     *rowCache
	faint     *bool
}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(rowItem)
	if !ok {
		return
	}
	t := ui.Current()
	width := m.Width() - 2
	if width < 10 {
		width = 10
	}

	body, hit := "", false
	if it.ID != "" {
		body, hit = d.cache.get(it.ID, width)
	}
	if !hit {
		body = d.renderBody(it.DisplayRow, width)
		if it.ID != "" {
			d.cache.put(it.ID, width, body, d.selection)
		}
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Cursor.Render("> ")
	}
	line := prefix + body
	if d.faint != nil && *d.faint {
		line = t.Muted.Render(line)
	}
	fmt.Fprint(w, line)
}

func (d rowDelegate) renderBody(r model.DisplayRow, width int) string {
	t := ui.Current()
	right := ""
	if d.selection != nil && r.ID != "" && d.selection.IsSelected(r.ID) {
		right = t.Selected.Render(t.SymSelected + " Selected")
	}

	title := r.Title
	room := width - lipgloss.Width(right) - 1
	if room < 1 {
		room = 1
	}
	if lipgloss.Width(title) > room {
		title = truncate(title, room)
	}
	gap := width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + right
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
