package singleton

import "sync"

// RacyDoubleChecked is double-checked locking done the broken, classical
// way: check the pointer without synchronization, and only lock (and
// re-check) if it looks nil.
//
// The fast path is a plain load. Even when it observes a non-nil pointer,
// nothing orders that load after the field writes init performed — the
// compiler and CPU are free to make the pointer store visible before the
// stores to the object it points at. A reader can therefore dereference a
// half-constructed instance. The plain load racing the plain store is
// also a data race outright under the Go memory model.
//
// This is NOT reliably caught by a quick test: the window is tiny, and on
// strongly-ordered hardware (x86) the reordering half rarely manifests.
// Absence of a crash is not evidence of correctness here.
//
// The bug is kept, deliberately. DoubleChecked is this same structure
// with the one change that makes it correct; diff the two files.
type RacyDoubleChecked[T any] struct {
	init     func() *T
	mu       sync.Mutex
	instance *T // written under mu, but read on the fast path without it
}

// NewRacyDoubleChecked returns the defective accessor.
func NewRacyDoubleChecked[T any](init func() *T) *RacyDoubleChecked[T] {
	return &RacyDoubleChecked[T]{init: init}
}

// Get returns the shared instance. The non-nil fast path takes no lock —
// and no happens-before edge either, which is the defect.
func (s *RacyDoubleChecked[T]) Get() *T {
	if inst := s.instance; inst != nil { // unsynchronized read — DATA RACE
		return inst // may point at a partially initialized object
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.instance == nil { // re-check under the lock
		// Plain store: the pointer can become visible to fast-path
		// readers before the pointee's field writes do.
		s.instance = s.init()
	}
	return s.instance
}
