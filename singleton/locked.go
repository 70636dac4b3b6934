package singleton

import "sync"

// Locked fixes Naive the blunt way: one mutex held across the entire Get.
//
// The lock serializes the check and the construction, so init runs exactly
// once and mutex release/acquire gives every later caller a fully visible
// instance. The cost: every call — including the steady-state case where
// the instance has existed for hours — pays a full lock round trip. That
// overhead is what motivates the double-checked variants.
type Locked[T any] struct {
	init     func() *T
	mu       sync.Mutex
	instance *T // guarded by mu
}

// NewLocked returns an accessor that calls init exactly once, under lock.
func NewLocked[T any](init func() *T) *Locked[T] {
	return &Locked[T]{init: init}
}

// Get returns the shared instance, constructing it on first call.
// Safe for any number of concurrent callers.
func (s *Locked[T]) Get() *T {
	s.mu.Lock()
	defer s.mu.Unlock() // release on every return path

	if s.instance == nil {
		s.instance = s.init()
	}
	return s.instance
}
