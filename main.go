// Command go-singleton walks through five variants of a lazily-initialized
// process-wide singleton accessor, from the naive racy form to sync.Once.
package main

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mdamonte/go-singleton/singleton"
)

func main() {
	section("1. naive — lazy, unsynchronized (broken)")
	demoNaive()

	section("2. locked — mutex on every call (correct, slow)")
	demoLocked()

	section("3. double-checked, racy (the classic bug)")
	demoRacy()

	section("4. double-checked, atomic.Pointer (correct)")
	demoDoubleChecked()

	section("5. sync.Once (use this one)")
	demoOnce()
}

func section(title string) {
	fmt.Printf("\n━━━ %s ━━━\n", title)
}

// thing is the demo instance type. The constructor sets every field, so a
// zero field seen through a non-nil pointer would mean a torn publish.
type thing struct {
	ready bool
	id    int
}

// demoNaive calls the racy accessor from a single goroutine — the only
// schedule under which its contract holds.
func demoNaive() {
	constructions := 0
	acc := singleton.NewNaive(func() *thing {
		constructions++
		fmt.Println("  constructing…")
		return &thing{ready: true, id: 1}
	})

	a, b := acc.Get(), acc.Get()
	fmt.Printf("  sequential calls: same identity=%v constructions=%d\n",
		a == b, constructions)
	fmt.Println("  under concurrent first access, two goroutines can BOTH")
	fmt.Println("  see nil and BOTH construct — run the package tests")
	fmt.Println("  without -race to watch it happen.")
}

func demoLocked() {
	constructions := 0
	acc := singleton.NewLocked(func() *thing {
		constructions++
		fmt.Println("  constructing…")
		return &thing{ready: true, id: 1}
	})

	a, b := acc.Get(), acc.Get()
	fmt.Printf("  same identity=%v constructions=%d\n", a == b, constructions)
	fmt.Println("  correct — but every steady-state call still pays for the lock.")
}

// demoRacy prints the hazard instead of racing it: the defect is a memory
// ordering problem that a lucky run would only hide.
func demoRacy() {
	fmt.Println("  the fast path is a plain load with no happens-before edge:")
	fmt.Println(`
  if inst := s.instance; inst != nil { // unsynchronized read — DATA RACE
      return inst                       // fields may not be visible yet
  }
  s.mu.Lock()
  ...`)
	fmt.Println("  the pointer store can become visible before the pointee's")
	fmt.Println("  field stores. doublecheck.go makes the one change that fixes it.")
}

// burst throws 50 goroutines at a cold accessor and reports whether the
// exactly-once and single-identity guarantees held.
func burst(get func() *thing) (identical bool) {
	const callers = 50
	results := make([]*thing, callers)
	start := make(chan struct{})

	var g errgroup.Group
	for i := range callers {
		g.Go(func() error {
			<-start
			results[i] = get()
			return nil
		})
	}
	close(start)
	if err := g.Wait(); err != nil {
		panic(err) // the goroutines never return errors
	}

	identical = true
	for _, r := range results {
		if r != results[0] || !r.ready {
			identical = false
		}
	}
	return identical
}

func demoDoubleChecked() {
	constructed := 0
	acc := singleton.NewDoubleChecked(func() *thing {
		constructed++ // safe: the accessor serializes constructors
		return &thing{ready: true, id: 1}
	})

	identical := burst(acc.Get)
	fmt.Printf("  50 concurrent first calls: constructions=%d single identity=%v\n",
		constructed, identical)
	fmt.Printf("  slow-path lock acquisitions: %d (frozen from now on)\n",
		acc.SlowPathCount())
}

func demoOnce() {
	constructed := 0
	acc := singleton.NewOnce(func() *thing {
		constructed++
		return &thing{ready: true, id: 1}
	})

	identical := burst(acc.Get)
	fmt.Printf("  50 concurrent first calls: constructions=%d single identity=%v\n",
		constructed, identical)

	svc := singleton.Default()
	fmt.Printf("  package-level accessor: Default().Name=%q stable=%v\n",
		svc.Name, svc == singleton.Default())
}
