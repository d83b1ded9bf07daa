// Package selection tracks which rows the user has toggled on.
package selection

import (
	"sort"
	"sync"
)

// Store maps item id to selected. An absent id is not selected.
// Subscribers are keyed by id so a toggle only reaches that id's watchers.
type Store struct {
	mu       sync.RWMutex
	selected map[string]bool
	subs     map[string]map[int]func(bool)
	nextSub  int
}

func New() *Store {
	return &Store{
		selected: make(map[string]bool),
		subs:     make(map[string]map[int]func(bool)),
	}
}

// Toggle flips id and returns its new state.
func (s *Store) Toggle(id string) bool {
	s.mu.Lock()
	v := !s.selected[id]
	if v {
		s.selected[id] = true
	} else {
		delete(s.selected, id)
	}
	watchers := make([]func(bool), 0, len(s.subs[id]))
	for _, fn := range s.subs[id] {
		watchers = append(watchers, fn)
	}
	s.mu.Unlock()

	for _, fn := range watchers {
		fn(v)
	}
	return v
}

func (s *Store) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected[id]
}

// Subscribe registers fn for changes to id. The returned func removes it.
func (s *Store) Subscribe(id string, fn func(selected bool)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.nextSub
	s.nextSub++
	if s.subs[id] == nil {
		s.subs[id] = make(map[int]func(bool))
	}
	s.subs[id][key] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[id], key)
		if len(s.subs[id]) == 0 {
			delete(s.subs, id)
		}
	}
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selected)
}

// Selected returns the selected ids in sorted order.
func (s *Store) Selected() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
