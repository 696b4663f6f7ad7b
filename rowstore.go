package tableview

import "sync"

// rowEntry wraps a value with the layout generation that last touched it.
type rowEntry[T any] struct {
	value      T
	generation uint64
}

// rowStore holds per-row state (for example a row's horizontal offset)
// keyed by IndexPath. Entries survive across reloads only while their row
// still exists in the committed layout; Sweep drops the rest.
//
// Surfaces may read it from a render goroutine, so access is locked.
type rowStore[T any] struct {
	rows       map[IndexPath]*rowEntry[T]
	generation uint64
	mu         sync.RWMutex
}

func newRowStore[T any]() *rowStore[T] {
	return &rowStore[T]{rows: make(map[IndexPath]*rowEntry[T])}
}

// Get returns the state for row, creating it from def when absent.
// The returned pointer stays valid until the entry is swept.
func (s *rowStore[T]) Get(row IndexPath, def T) *T {
	s.mu.RLock()
	entry, ok := s.rows[row]
	s.mu.RUnlock()
	if ok {
		return &entry.value
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Double-check after acquiring write lock
	if entry, ok = s.rows[row]; ok {
		return &entry.value
	}
	entry = &rowEntry[T]{value: def, generation: s.generation}
	s.rows[row] = entry
	return &entry.value
}

// Lookup returns the state for row without creating it.
func (s *rowStore[T]) Lookup(row IndexPath) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.rows[row]; ok {
		return entry.value, true
	}
	var zero T
	return zero, false
}

// Set creates or replaces the state for row.
func (s *rowStore[T]) Set(row IndexPath, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.rows[row]; ok {
		entry.value = value
		return
	}
	s.rows[row] = &rowEntry[T]{value: value, generation: s.generation}
}

// Delete removes the state for row.
func (s *rowStore[T]) Delete(row IndexPath) {
	s.mu.Lock()
	delete(s.rows, row)
	s.mu.Unlock()
}

// Sweep advances to the given layout generation, keeping only rows for
// which keep returns true. Kept rows are stamped with the new generation.
func (s *rowStore[T]) Sweep(generation uint64, keep func(IndexPath) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation = generation
	for row, entry := range s.rows {
		if !keep(row) {
			delete(s.rows, row)
			continue
		}
		entry.generation = generation
	}
}

// Generation returns the layout generation of the last sweep.
func (s *rowStore[T]) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Len returns the number of stored rows.
func (s *rowStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Clear removes every entry immediately.
func (s *rowStore[T]) Clear() {
	s.mu.Lock()
	s.rows = make(map[IndexPath]*rowEntry[T])
	s.mu.Unlock()
}
