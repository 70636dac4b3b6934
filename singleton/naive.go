package singleton

// Naive is the textbook lazy singleton with no synchronization at all.
//
// Get checks the stored pointer and constructs if it is nil — which is
// exactly the check-then-act race: under concurrent first access, two
// goroutines can both read nil, both run init, and hand different
// instances to different callers. The plain reads and writes of the
// pointer are also a data race in the Go memory model (run the tests
// with -race to see it reported).
//
// This variant exists only to establish the baseline defect. Do not use
// it as a template for anything.
type Naive[T any] struct {
	init     func() *T
	instance *T // shared pointer, read and written without sync — racy
}

// NewNaive returns an accessor whose first Get (per observing goroutine,
// not per process — that is the bug) calls init.
func NewNaive[T any](init func() *T) *Naive[T] {
	return &Naive[T]{init: init}
}

// Get returns the shared instance, constructing it if the stored pointer
// is currently nil. Safe only when all calls come from one goroutine.
func (s *Naive[T]) Get() *T {
	if s.instance == nil { // CHECK — unsynchronized read
		// ← another goroutine can pass the same check here
		s.instance = s.init() // ACT — second construction leaks the first
	}
	return s.instance
}
