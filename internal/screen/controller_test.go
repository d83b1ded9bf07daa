package screen

import (
	"errors"
	"testing"

	"github.com/Makepad-fr/listbench/internal/fetch"
	"github.com/Makepad-fr/listbench/internal/history"
	"github.com/Makepad-fr/listbench/internal/model"
)

var twoRows = []model.DisplayRow{{ID: "1", Title: "A"}, {ID: "3", Title: "C"}}

func TestControllerHappyPath(t *testing.T) {
	h := history.New()
	c := NewController(1, h, false)
	if c.State() != Idle {
		t.Fatalf("initial state = %v, want idle", c.State())
	}

	req := c.Begin()
	if c.State() != Fetching || c.CanRefetch() {
		t.Fatalf("after Begin: state=%v canRefetch=%v", c.State(), c.CanRefetch())
	}

	c.Complete(req, twoRows, model.FetchStats{SizeMB: 1, NumberOfRows: 2, InflightTime: 30, JSONParseTime: 5, TransformTime: 1})
	if c.State() != Ready {
		t.Errorf("state = %v, want ready", c.State())
	}
	if len(c.Rows()) != 2 {
		t.Errorf("rows = %v", c.Rows())
	}
	if got := c.Timings(); got != (Timings{Inflight: 30, JSONParse: 5, Transform: 1}) {
		t.Errorf("timings = %+v", got)
	}
	if h.Len() != 1 {
		t.Errorf("history len = %d, want 1", h.Len())
	}
}

func TestControllerSetSize(t *testing.T) {
	c := NewController(1, nil, false)
	if c.SetSize(1) {
		t.Error("same size should not need a fetch")
	}
	if !c.SetSize(2) || c.Size() != 2 {
		t.Error("new size should need a fetch")
	}
}

func TestControllerRejectsBadSizeText(t *testing.T) {
	c := NewController(1, nil, false)
	for _, text := range []string{"abc", "", "NaN", "-1", "0"} {
		if c.SubmitSizeText(text) {
			t.Errorf("SubmitSizeText(%q) asked for a fetch", text)
		}
		if c.Size() != 1 {
			t.Errorf("SubmitSizeText(%q) changed size to %v", text, c.Size())
		}
		if !errors.Is(c.InputErr(), model.ErrInvalidSize) {
			t.Errorf("SubmitSizeText(%q) InputErr = %v", text, c.InputErr())
		}
	}

	if !c.SubmitSizeText("3") || c.Size() != 3 {
		t.Error("valid size not applied")
	}
	if c.InputErr() != nil {
		t.Errorf("InputErr not cleared: %v", c.InputErr())
	}
}

func TestControllerFailureKeepsStaleRows(t *testing.T) {
	c := NewController(1, history.New(), false)
	c.Complete(c.Begin(), twoRows, model.FetchStats{SizeMB: 1})

	c.Fail(c.Begin(), fetch.ErrNetwork)
	if c.State() != Idle {
		t.Errorf("state = %v, want idle", c.State())
	}
	if len(c.Rows()) != 2 || !c.Stale() {
		t.Errorf("rows=%v stale=%v, want previous rows kept and stale", c.Rows(), c.Stale())
	}
	if !errors.Is(c.LastErr(), fetch.ErrNetwork) {
		t.Errorf("LastErr = %v", c.LastErr())
	}
	if c.History().Len() != 1 {
		t.Errorf("failed fetch recorded in history")
	}

	c.Complete(c.Begin(), twoRows[:1], model.FetchStats{SizeMB: 1})
	if c.Stale() || c.LastErr() != nil {
		t.Error("successful fetch did not clear stale state")
	}
}

func TestControllerFailureDiscardsRows(t *testing.T) {
	c := NewController(1, nil, true)
	c.Complete(c.Begin(), twoRows, model.FetchStats{SizeMB: 1})

	c.Fail(c.Begin(), fetch.ErrNetwork)
	if c.Rows() != nil {
		t.Errorf("rows = %v, want nil", c.Rows())
	}
	if c.Stale() {
		t.Error("discarded rows reported stale")
	}
}

func TestControllerSupersededResult(t *testing.T) {
	h := history.New()
	c := NewController(1, h, false)

	old := c.Begin()
	c.SetSize(2)
	cur := c.Begin()

	newRows := []model.DisplayRow{{ID: "n", Title: "new"}}
	c.Complete(cur, newRows, model.FetchStats{SizeMB: 2})
	if c.State() != Fetching {
		t.Errorf("state = %v, want fetching while old request is out", c.State())
	}

	c.Complete(old, twoRows, model.FetchStats{SizeMB: 1})
	if c.State() != Ready {
		t.Errorf("state = %v, want ready", c.State())
	}
	if len(c.Rows()) != 1 || c.Rows()[0].ID != "n" {
		t.Errorf("old result overwrote rows: %v", c.Rows())
	}

	dump := h.Dump()
	if len(dump) != 2 || dump[0].SizeMB != 2 || dump[1].SizeMB != 1 {
		t.Errorf("history not in completion order: %+v", dump)
	}
}

func TestControllerSupersededFailureIgnored(t *testing.T) {
	c := NewController(1, nil, true)
	old := c.Begin()
	c.SetSize(2)
	cur := c.Begin()
	c.Complete(cur, twoRows, model.FetchStats{SizeMB: 2})
	c.Fail(old, fetch.ErrNetwork)

	if len(c.Rows()) != 2 || c.LastErr() != nil || c.State() != Ready {
		t.Errorf("stale failure affected screen: rows=%v err=%v state=%v", c.Rows(), c.LastErr(), c.State())
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{Idle: "idle", Fetching: "fetching", Ready: "ready"} {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
