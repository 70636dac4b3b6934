package singleton

import "sync"

// Once is the recommended form: sync.Once already implements a correct,
// fast double-checked protocol (atomic fast path, mutex slow path,
// publish-after-f-returns), so the accessor needs no atomic code of its
// own. Contending first callers block until the winner's init returns —
// they never spin and never race — and Once.Do's happens-before guarantee
// rules out partial reads.
//
// Prefer this variant unless you are somewhere sync.Once cannot go; only
// then is DoubleChecked's hand-written protocol the fallback.
type Once[T any] struct {
	init     func() *T
	once     sync.Once
	instance *T // written once, inside once.Do
}

// NewOnce returns an accessor that calls init exactly once.
func NewOnce[T any](init func() *T) *Once[T] {
	return &Once[T]{init: init}
}

// Get returns the shared instance, constructing it on first call.
// Safe for any number of concurrent callers.
func (s *Once[T]) Get() *T {
	s.once.Do(func() {
		s.instance = s.init()
	})
	return s.instance
}

// ── The pattern as actually written ──────────────────────────────────────────
//
// Production code rarely wraps a generic type around this; it writes the
// three lines directly against a package-level variable. Service and
// Default show that shape.

// Service stands in for the kind of process-wide dependency (DB handle,
// config, client pool) that gets the singleton treatment.
type Service struct {
	Name string
}

var (
	defaultOnce    sync.Once
	defaultService *Service
)

// Default returns the process-wide Service, creating it on first use.
// Safe to call from any number of goroutines.
func Default() *Service {
	defaultOnce.Do(func() {
		defaultService = &Service{Name: "default"}
	})
	return defaultService
}
