package screen

import (
	"github.com/Makepad-fr/listbench/internal/history"
	"github.com/Makepad-fr/listbench/internal/logging"
	"github.com/Makepad-fr/listbench/internal/model"
)

type State int

const (
	Idle State = iota
	Fetching
	Ready
)

func (s State) String() string {
	switch s {
	case Fetching:
		return "fetching"
	case Ready:
		return "ready"
	default:
		return "idle"
	}
}

// Request identifies one dispatched fetch.
type Request struct {
	Seq  uint64
	Size model.Size
}

// Timings are the figures shown in the control panel, in milliseconds.
type Timings struct {
	Inflight, JSONParse, Transform int64
}

// Controller holds the screen state without doing any I/O. Fetches are
// started by the caller after Begin and reported back through Complete or
// Fail, in the order they finish.
type Controller struct {
	size     model.Size
	state    State
	rows     []model.DisplayRow
	stale    bool
	timings  Timings
	lastErr  error
	inputErr error

	seq      uint64
	inFlight int
	// outcome is the state to settle in once nothing is in flight.
	outcome State

	history        *history.History
	discardOnError bool
}

// NewController starts Idle at size. h may be nil to disable stats history.
func NewController(size model.Size, h *history.History, discardOnError bool) *Controller {
	return &Controller{size: size, history: h, discardOnError: discardOnError}
}

func (c *Controller) Size() model.Size          { return c.size }
func (c *Controller) State() State              { return c.state }
func (c *Controller) Rows() []model.DisplayRow  { return c.rows }
func (c *Controller) Timings() Timings          { return c.timings }
func (c *Controller) LastErr() error            { return c.lastErr }
func (c *Controller) InputErr() error           { return c.inputErr }
func (c *Controller) History() *history.History { return c.history }

// Stale reports that the displayed rows survived a failed fetch.
func (c *Controller) Stale() bool { return c.stale }

// SetSize switches to s and reports whether a fetch is needed.
func (c *Controller) SetSize(s model.Size) bool {
	if s == c.size {
		return false
	}
	c.size = s
	return true
}

// SubmitSizeText applies a size typed by the user. Text that is not a
// finite positive number is rejected: the previous size stays and no fetch
// is needed.
func (c *Controller) SubmitSizeText(text string) bool {
	s, err := model.ParseSize(text)
	if err != nil {
		c.inputErr = err
		logging.Warn("rejected size input", "text", text, "error", err)
		return false
	}
	c.inputErr = nil
	return c.SetSize(s)
}

// CanRefetch is false while a fetch is running.
func (c *Controller) CanRefetch() bool { return c.state != Fetching }

// Begin moves to Fetching for the current size.
func (c *Controller) Begin() Request {
	c.seq++
	c.inFlight++
	c.state = Fetching
	return Request{Seq: c.seq, Size: c.size}
}

// Complete appends the stats of a finished fetch to the in-memory history
// and shows its rows if it was for the size currently selected. Results for
// a superseded size are recorded but not displayed. Sinks are not written.
func (c *Controller) Complete(req Request, rows []model.DisplayRow, stats model.FetchStats) {
	c.inFlight--
	defer c.settle()
	if c.history != nil {
		c.history.Append(stats)
	}
	if req.Size != c.size {
		logging.Debug("dropping rows for superseded size", "seq", req.Seq, "size", req.Size.String(), "current", c.size.String())
		return
	}

	c.rows = rows
	c.stale = false
	c.lastErr = nil
	c.timings = Timings{
		Inflight:  stats.InflightTime,
		JSONParse: stats.JSONParseTime,
		Transform: stats.TransformTime,
	}
	c.outcome = Ready
}

// Fail handles a fetch that errored. The error never leaves the screen.
func (c *Controller) Fail(req Request, err error) {
	c.inFlight--
	defer c.settle()
	logging.Error("fetch failed", "seq", req.Seq, "size", req.Size.String(), "error", err)
	if req.Size != c.size {
		return
	}

	c.lastErr = err
	if c.discardOnError {
		c.rows = nil
		c.stale = false
	} else {
		c.stale = len(c.rows) > 0
	}
	c.outcome = Idle
}

func (c *Controller) settle() {
	if c.inFlight < 0 {
		c.inFlight = 0
	}
	if c.inFlight == 0 {
		c.state = c.outcome
	}
}
