// Package slice holds one entity collection together with its request status.
//
// Responses are applied in completion order: when two fetches overlap, whichever
// resolves last overwrites the collection, regardless of which was issued first.
package slice

import (
	"slices"
	"sync"
)

// Entity is anything keyed by an identifier.
type Entity interface {
	EntityID() string
}

// Status is the request state of a slice.
type Status struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Slice is a mutex-guarded collection plus the entity last fetched individually.
type Slice[T Entity] struct {
	mu       sync.RWMutex
	items    []T
	selected *T
	inFlight int
	lastErr  error
}

// New returns an empty slice.
func New[T Entity]() *Slice[T] {
	return &Slice[T]{}
}

// Start marks a request as in flight and clears the previous error.
func (s *Slice[T]) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight++
	s.lastErr = nil
}

// Finish marks a request as done. A non-nil err is recorded; the collection is untouched.
func (s *Slice[T]) Finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight > 0 {
		s.inFlight--
	}
	s.lastErr = err
}

// Status reports whether requests are in flight and the last error.
func (s *Slice[T]) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{Loading: s.inFlight > 0}
	if s.lastErr != nil {
		st.Error = s.lastErr.Error()
	}

	return st
}

// Err returns the last recorded error.
func (s *Slice[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastErr
}

// Replace swaps in a whole new collection.
func (s *Slice[T]) Replace(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = slices.Clone(items)
}

// Upsert replaces the entity with the same id or appends it, and selects it.
func (s *Slice[T]) Upsert(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.EntityID()); i >= 0 {
		s.items[i] = item
	} else {
		s.items = append(s.items, item)
	}
	selected := item
	s.selected = &selected
}

// Append adds item at the end.
func (s *Slice[T]) Append(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, item)
}

// Put replaces the entity with the same id. It reports false when none matched.
func (s *Slice[T]) Put(item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(item.EntityID())
	if i < 0 {
		return false
	}
	s.items[i] = item
	s.refreshSelected(item)

	return true
}

// Mutate applies fn to the entity with id in place.
func (s *Slice[T]) Mutate(id string, fn func(*T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	fn(&s.items[i])
	s.refreshSelected(s.items[i])

	return true
}

// Remove drops every entity with id.
func (s *Slice[T]) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(item T) bool {
		return item.EntityID() == id
	})
	if s.selected != nil && (*s.selected).EntityID() == id {
		s.selected = nil
	}

	return len(s.items) != before
}

// Items returns a copy of the collection.
func (s *Slice[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.items)
}

// Get looks up an entity by id.
func (s *Slice[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}

	var zero T

	return zero, false
}

// Selected returns the entity last fetched individually.
func (s *Slice[T]) Selected() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selected == nil {
		var zero T

		return zero, false
	}

	return *s.selected, true
}

func (s *Slice[T]) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(item T) bool {
		return item.EntityID() == id
	})
}

func (s *Slice[T]) refreshSelected(item T) {
	if s.selected != nil && (*s.selected).EntityID() == item.EntityID() {
		selected := item
		s.selected = &selected
	}
}
