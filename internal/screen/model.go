// Package screen is the interactive movie list: it fetches a payload of the
// chosen size, shows the rows and the timing of each stage.
package screen

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/listbench/internal/fetch"
	"github.com/Makepad-fr/listbench/internal/history"
	"github.com/Makepad-fr/listbench/internal/logging"
	"github.com/Makepad-fr/listbench/internal/model"
	"github.com/Makepad-fr/listbench/internal/rows"
	"github.com/Makepad-fr/listbench/internal/selection"
	"github.com/Makepad-fr/listbench/internal/store/jsonstore"
	"github.com/Makepad-fr/listbench/internal/ui"
)

// Fetcher is what the screen needs from the HTTP client.
type Fetcher interface {
	FetchMovies(ctx context.Context, size model.Size) fetch.Result[[]model.Item]
}

// Features switch optional behaviour of the screen.
type Features struct {
	Selection      bool
	History        bool
	SizeInput      bool
	DiscardOnError bool
}

type Options struct {
	Size         model.Size
	RefetchDelay time.Duration
	// StatsFile receives the history dump on "get stats". Empty skips export.
	StatsFile string
	Features  Features
}

type (
	fetchDoneMsg struct {
		req   Request
		rows  []model.DisplayRow
		stats model.FetchStats
	}
	fetchFailedMsg struct {
		req Request
		err error
	}
	refetchMsg  struct{}
	exportedMsg struct {
		path  string
		count int
		err   error
	}
)

type Model struct {
	ctx       context.Context
	fetcher   Fetcher
	ctrl      *Controller
	selection *selection.Store
	opts      Options
	keys      keyMap

	list    list.Model
	input   textinput.Model
	spinner spinner.Model
	cache   *rowCache
	faint   *bool

	editing        bool
	showStats      bool
	refetchPending bool
	notice         string
	width, height  int
}

// New builds the screen. h may be nil; it is ignored unless the History
// feature is on.
func New(ctx context.Context, f Fetcher, h *history.History, opts Options) Model {
	if !opts.Features.History {
		h = nil
	} else if h == nil {
		h = history.New()
	}
	var sel *selection.Store
	if opts.Features.Selection {
		sel = selection.New()
	}

	m := Model{
		ctx:       ctx,
		fetcher:   f,
		ctrl:      NewController(opts.Size, h, opts.Features.DiscardOnError),
		selection: sel,
		opts:      opts,
		keys:      newKeyMap(opts.Features),
		cache:     newRowCache(),
		faint:     new(bool),
		width:     80,
		height:    24,
	}

	l := list.New(nil, rowDelegate{selection: sel, cache: m.cache, faint: m.faint}, 0, 0)
	l.Title = "Movies"
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("row", "rows")
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Help
	l.Styles.PaginationStyle = ui.Current().Help
	l.AdditionalShortHelpKeys = m.keys.extra
	l.AdditionalFullHelpKeys = m.keys.extra
	m.list = l

	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.Placeholder = "size in MB"
	m.input.CharLimit = 16

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = ui.Current().Pending

	m.resize()
	return m
}

// Controller exposes the state machine, mostly for tests and the caller
// that wants the history after the program exits.
func (m Model) Controller() *Controller { return m.ctrl }

func (m Model) Selection() *selection.Store { return m.selection }

func (m Model) Init() tea.Cmd {
	return m.begin()
}

// begin dispatches a fetch for the current size.
func (m Model) begin() tea.Cmd {
	wasFetching := m.ctrl.State() == Fetching
	req := m.ctrl.Begin()
	*m.faint = true
	logging.Debug("fetch dispatched", "seq", req.Seq, "size", req.Size.String())
	if wasFetching {
		return m.fetchCmd(req)
	}
	return tea.Batch(m.fetchCmd(req), m.spinner.Tick)
}

// fetchCmd runs the request, the decode and the row transform off the UI loop.
func (m Model) fetchCmd(req Request) tea.Cmd {
	return func() tea.Msg {
		res := m.fetcher.FetchMovies(m.ctx, req.Size)
		if res.Err != nil {
			return fetchFailedMsg{req: req, err: res.Err}
		}
		tr := rows.Measure(res.Value)
		return fetchDoneMsg{
			req:  req,
			rows: tr.Value,
			stats: model.FetchStats{
				SizeMB:        float64(req.Size),
				NumberOfRows:  len(tr.Value),
				InflightTime:  res.InflightMillis(),
				JSONParseTime: res.JSONParseMillis(),
				TransformTime: tr.Millis(),
				CompletedAt:   time.Now(),
			},
		}
	}
}

// persistCmd writes a completed fetch to the history sinks off the UI loop.
func (m Model) persistCmd(s model.FetchStats) tea.Cmd {
	h := m.ctrl.History()
	if h == nil || !h.HasSinks() {
		return nil
	}
	return func() tea.Msg {
		h.Persist(s)
		return nil
	}
}

func (m Model) exportCmd(dump []model.FetchStats) tea.Cmd {
	path := m.opts.StatsFile
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		err := jsonstore.Save(path, dump)
		return exportedMsg{path: path, count: len(dump), err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.State() != Fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchDoneMsg:
		m.ctrl.Complete(msg.req, msg.rows, msg.stats)
		if msg.req.Size == m.ctrl.Size() {
			m.setRows()
		}
		m.settleFaint()
		return m, m.persistCmd(msg.stats)

	case fetchFailedMsg:
		m.ctrl.Fail(msg.req, msg.err)
		if msg.req.Size == m.ctrl.Size() {
			m.setRows()
		}
		m.settleFaint()
		return m, nil

	case refetchMsg:
		m.refetchPending = false
		if !m.ctrl.CanRefetch() {
			return m, nil
		}
		return m, m.begin()

	case exportedMsg:
		if msg.err != nil {
			m.notice = "export failed: " + msg.err.Error()
			logging.Error("stats export failed", "path", msg.path, "error", msg.err)
		} else {
			m.notice = fmt.Sprintf("exported %d records to %s", msg.count, msg.path)
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		text := m.input.Value()
		m.editing = false
		m.input.Blur()
		m.input.SetValue("")
		fetchNeeded := m.ctrl.SubmitSizeText(text)
		m.resize()
		if fetchNeeded {
			return m, m.begin()
		}
		return m, nil
	case "esc":
		m.editing = false
		m.input.Blur()
		m.input.SetValue("")
		m.resize()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case m.showStats && (key.Matches(msg, m.keys.Stats) || msg.String() == "esc"):
		m.showStats = false
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if it, ok := m.list.SelectedItem().(rowItem); ok && it.ID != "" && m.selection != nil {
			m.selection.Toggle(it.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.EditSize):
		m.editing = true
		m.input.SetValue(m.ctrl.Size().String())
		m.input.CursorEnd()
		m.resize()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Refetch):
		if !m.ctrl.CanRefetch() || m.refetchPending {
			return m, nil
		}
		m.refetchPending = true
		return m, tea.Tick(m.opts.RefetchDelay, func(time.Time) tea.Msg { return refetchMsg{} })

	case key.Matches(msg, m.keys.Stats):
		h := m.ctrl.History()
		if h == nil {
			return m, nil
		}
		m.showStats = true
		dump := h.Dump()
		logging.Info("Stats", "records", len(dump))
		for i, s := range dump {
			logging.Info("Stats", "n", i+1, "sizeMb", s.SizeMB, "numberOfRows", s.NumberOfRows,
				"inflightTime", s.InflightTime, "jsonParseTime", s.JSONParseTime, "transformTime", s.TransformTime)
		}
		return m, m.exportCmd(dump)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) setRows() {
	m.cache.reset()
	m.list.SetItems(toListItems(m.ctrl.Rows()))
	m.list.ResetSelected()
}

// settleFaint dims rows while fetching and when they are left over from a
// failed fetch.
func (m *Model) settleFaint() {
	*m.faint = m.ctrl.State() == Fetching || m.ctrl.Stale()
}
