package singleton

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	uberatomic "go.uber.org/atomic"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// widget is the instance type used throughout the tests. The constructor
// sets every field, so a reader that observes the zero value of any of
// them through a non-nil pointer has seen a torn publish.
type widget struct {
	ready bool
	value int
	label string
}

// newWidget returns an init func that counts its invocations.
func newWidget(calls *uberatomic.Int64) func() *widget {
	return func() *widget {
		calls.Inc()
		return &widget{ready: true, value: 42, label: "constructed"}
	}
}

func requireConstructed(t *testing.T, w *widget) {
	t.Helper()
	require.NotNil(t, w)
	require.True(t, w.ready, "observed widget before constructor finished")
	require.Equal(t, 42, w.value)
	require.Equal(t, "constructed", w.label)
}

// accessor is the contract shared by every variant.
type accessor interface {
	Get() *widget
}

// safeVariants are the variants that promise exactly-once construction and
// full visibility under concurrency. Naive and RacyDoubleChecked are
// excluded: their concurrent behavior is exercised in race_off_test.go.
var safeVariants = map[string]func(init func() *widget) accessor{
	"locked":        func(init func() *widget) accessor { return NewLocked(init) },
	"doublechecked": func(init func() *widget) accessor { return NewDoubleChecked(init) },
	"once":          func(init func() *widget) accessor { return NewOnce(init) },
}

var errDistinctInstance = errors.New("Get returned a second identity")

func TestExactlyOnceUnderContention(t *testing.T) {
	t.Parallel()

	for name, newAccessor := range safeVariants {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var calls uberatomic.Int64
			acc := newAccessor(newWidget(&calls))

			const goroutines = 50
			results := make([]*widget, goroutines)
			start := make(chan struct{})

			var g errgroup.Group
			for i := range goroutines {
				g.Go(func() error {
					<-start // line everyone up on the first access
					results[i] = acc.Get()
					return nil
				})
			}
			close(start)
			require.NoError(t, g.Wait())

			require.Equal(t, int64(1), calls.Load(), "init must run exactly once")
			for _, w := range results {
				requireConstructed(t, w)
				require.Same(t, results[0], w, "all callers must share one identity")
			}
		})
	}
}

func TestIdentityStability(t *testing.T) {
	t.Parallel()

	for name, newAccessor := range safeVariants {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var calls uberatomic.Int64
			acc := newAccessor(newWidget(&calls))

			first := acc.Get()
			requireConstructed(t, first)
			for range 100 {
				require.Same(t, first, acc.Get())
			}

			// And from other goroutines, after initialization.
			var g errgroup.Group
			for range 8 {
				g.Go(func() error {
					for range 100 {
						if acc.Get() != first {
							return errDistinctInstance
						}
					}
					return nil
				})
			}
			require.NoError(t, g.Wait())
			require.Equal(t, int64(1), calls.Load())
		})
	}
}

func TestDoubleCheckedSteadyStateTakesNoLock(t *testing.T) {
	t.Parallel()

	var calls uberatomic.Int64
	acc := NewDoubleChecked(newWidget(&calls))

	// Contended first access: some goroutines will take the slow path.
	start := make(chan struct{})
	var g errgroup.Group
	for range 50 {
		g.Go(func() error {
			<-start
			acc.Get()
			return nil
		})
	}
	close(start)
	require.NoError(t, g.Wait())

	require.Equal(t, int64(1), calls.Load())
	warm := acc.SlowPathCount()
	require.GreaterOrEqual(t, warm, int64(1), "someone must have constructed")

	// Steady state: the pointer is non-nil, so the counter must freeze.
	for range 8 {
		g.Go(func() error {
			for range 1000 {
				acc.Get()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, warm, acc.SlowPathCount(),
		"lock acquired on the steady-state path")
}

func TestDefaultService(t *testing.T) {
	t.Parallel()

	results := make([]*Service, 20)
	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			results[i] = Default()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, svc := range results {
		require.NotNil(t, svc)
		require.Equal(t, "default", svc.Name)
		require.Same(t, results[0], svc)
	}
}

// The defective variants still honor their contract when there is no
// concurrency; their concurrent behavior lives in race_off_test.go.

func TestNaiveSingleGoroutine(t *testing.T) {
	t.Parallel()

	var calls uberatomic.Int64
	acc := NewNaive(newWidget(&calls))

	first := acc.Get()
	requireConstructed(t, first)
	require.Same(t, first, acc.Get())
	require.Equal(t, int64(1), calls.Load())
}

func TestRacyDoubleCheckedSingleGoroutine(t *testing.T) {
	t.Parallel()

	var calls uberatomic.Int64
	acc := NewRacyDoubleChecked(newWidget(&calls))

	first := acc.Get()
	requireConstructed(t, first)
	require.Same(t, first, acc.Get())
	require.Equal(t, int64(1), calls.Load())
}
