package state

import "sync"

// Slot holds the latest snapshot of one remote resource. A single writer
// replaces the whole value; any number of readers copy it out. A slot that
// has never been stored reports ok == false.
type Slot[T any] struct {
	mu    sync.RWMutex
	value T
	set   bool
	gen   uint64
	clone func(T) T
}

// NewSlot returns an empty slot. clone, when non-nil, is applied on both
// Store and Load so callers never share backing memory with the slot.
func NewSlot[T any](clone func(T) T) *Slot[T] {
	return &Slot[T]{clone: clone}
}

// Load returns a copy of the current value.
func (s *Slot[T]) Load() (T, bool) {
	s.mu.RLock()
	value, set := s.value, s.set
	s.mu.RUnlock()
	if set && s.clone != nil {
		value = s.clone(value)
	}
	return value, set
}

// Store replaces the value and bumps the generation.
func (s *Slot[T]) Store(value T) {
	if s.clone != nil {
		value = s.clone(value)
	}
	s.mu.Lock()
	s.value = value
	s.set = true
	s.gen++
	s.mu.Unlock()
}

// Generation counts stores so far. Readers compare it to skip rebuilding
// derived data when nothing changed.
func (s *Slot[T]) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}
