package selection

import (
	"reflect"
	"sync"
	"testing"
)

func TestAbsentIsNotSelected(t *testing.T) {
	s := New()
	if s.IsSelected("1") {
		t.Error("fresh store reports id selected")
	}
}

func TestToggleParity(t *testing.T) {
	s := New()
	for n := 1; n <= 5; n++ {
		got := s.Toggle("1")
		want := n%2 == 1
		if got != want || s.IsSelected("1") != want {
			t.Errorf("after %d toggles: Toggle=%v IsSelected=%v, want %v", n, got, s.IsSelected("1"), want)
		}
	}
}

func TestToggleTwiceClears(t *testing.T) {
	s := New()
	s.Toggle("1")
	s.Toggle("1")
	if s.IsSelected("1") {
		t.Error("id still selected after two toggles")
	}
	if s.Count() != 0 {
		t.Errorf("Count = %d, want 0", s.Count())
	}
}

func TestToggleIsolation(t *testing.T) {
	s := New()
	s.Toggle("a")
	s.Toggle("b")
	s.Toggle("b")
	s.Toggle("c")

	if !s.IsSelected("a") {
		t.Error("toggling b and c changed a")
	}
	if s.IsSelected("b") {
		t.Error("b should be unselected")
	}
	if got, want := s.Selected(), []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Selected = %v, want %v", got, want)
	}
}

func TestSubscribeNarrow(t *testing.T) {
	s := New()
	var aCalls, bCalls []bool
	s.Subscribe("a", func(v bool) { aCalls = append(aCalls, v) })
	s.Subscribe("b", func(v bool) { bCalls = append(bCalls, v) })

	s.Toggle("a")
	s.Toggle("a")

	if !reflect.DeepEqual(aCalls, []bool{true, false}) {
		t.Errorf("a notifications = %v", aCalls)
	}
	if len(bCalls) != 0 {
		t.Errorf("b notified on a toggle: %v", bCalls)
	}
}

func TestUnsubscribe(t *testing.T) {
	s := New()
	calls := 0
	unsub := s.Subscribe("a", func(bool) { calls++ })
	s.Toggle("a")
	unsub()
	s.Toggle("a")
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSubscriberMayReadStore(t *testing.T) {
	s := New()
	var seen bool
	s.Subscribe("a", func(bool) { seen = s.IsSelected("a") })
	s.Toggle("a")
	if !seen {
		t.Error("subscriber read stale value")
	}
}

func TestConcurrentToggles(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Toggle("x")
		}()
	}
	wg.Wait()
	if s.IsSelected("x") {
		t.Error("even number of toggles left x selected")
	}
}
