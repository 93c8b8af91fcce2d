package space

import (
	"sync"
	"testing"
	"time"

	"github.com/onsi/gomega"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/clock"
	"github.com/san-kum/rigidsim/internal/solver"
	"github.com/san-kum/rigidsim/internal/worker"
)

// fakeSolver records advance calls and replays canned contacts.
type fakeSolver struct {
	mu       sync.Mutex
	elapsed  []time.Duration
	substeps []int
	contacts []solver.Contact
	block    chan struct{} // if non-nil, Advance waits on it
}

func (f *fakeSolver) Advance(elapsed time.Duration, substeps int) []solver.Contact {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.elapsed = append(f.elapsed, elapsed)
	f.substeps = append(f.substeps, substeps)
	return f.contacts
}

func (f *fakeSolver) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.elapsed)
}

func always() bool { return true }

// settle drains until the in-flight solve (if any) has completed.
func settle(g *gomega.WithT, s *Space) {
	g.Eventually(func() bool {
		s.Drain()
		return !s.IsStepping()
	}).Should(gomega.BeTrue())
}

func newTestSpace(t *testing.T, cfg Config, solv solver.Solver) *Space {
	t.Helper()
	w := worker.New()
	t.Cleanup(w.Close)
	return New(cfg, w, solv)
}

func TestPresimAdvancesOnceAfterWarmup(t *testing.T) {
	g := gomega.NewWithT(t)
	fake := &fakeSolver{}

	now := time.Unix(0, 0)
	clk := clock.NewWithSource(func() time.Time { return now })

	const maxPresim = 4
	s := newTestSpace(t, Config{MaxPresimSteps: maxPresim, Clock: clk}, fake)
	s.AddBody(body.NewGeneric(body.Vec2{X: 0.5, Y: 0.5}, 1.0))

	for i := 0; i < maxPresim; i++ {
		if !s.IsInPresim() {
			t.Fatalf("expected presim during warm-up call %d", i+1)
		}
		s.Step(always)
		settle(g, s)
		if fake.calls() != 0 {
			t.Fatalf("solver advanced during warm-up call %d", i+1)
		}
	}

	if s.IsInPresim() {
		t.Fatal("presim should be complete after max warm-up steps")
	}

	s.Step(always)
	settle(g, s)
	if fake.calls() != 1 {
		t.Fatalf("expected exactly one advance on call %d, got %d", maxPresim+1, fake.calls())
	}
	if fake.substeps[0] != DefaultSubsteps {
		t.Errorf("expected %d substeps, got %d", DefaultSubsteps, fake.substeps[0])
	}
}

func TestWarmupWallTimeIsDiscarded(t *testing.T) {
	g := gomega.NewWithT(t)
	fake := &fakeSolver{}

	now := time.Unix(0, 0)
	clk := clock.NewWithSource(func() time.Time { return now })

	s := newTestSpace(t, Config{MaxPresimSteps: 2, Clock: clk}, fake)
	s.AddBody(body.NewGeneric(body.Vec2{X: 0.5, Y: 0.5}, 1.0))

	// A long warm-up must not show up as elapsed time in the first live
	// step.
	now = now.Add(time.Minute)
	s.Step(always)
	settle(g, s)
	now = now.Add(time.Minute)
	s.Step(always)
	settle(g, s)

	now = now.Add(50 * time.Millisecond)
	s.Step(always)
	settle(g, s)

	if fake.calls() != 1 {
		t.Fatalf("expected one advance, got %d", fake.calls())
	}
	if fake.elapsed[0] != 50*time.Millisecond {
		t.Fatalf("expected 50ms elapsed, got %v", fake.elapsed[0])
	}
}

func TestStepSkipsWhileSolveInFlight(t *testing.T) {
	g := gomega.NewWithT(t)
	fake := &fakeSolver{block: make(chan struct{})}

	s := newTestSpace(t, Config{MaxPresimSteps: 1}, fake)
	s.AddBody(body.NewGeneric(body.Vec2{X: 0.5, Y: 0.5}, 1.0))

	// Burn the single warm-up step.
	s.Step(always)
	settle(g, s)

	var preSteps int
	s.OnPreStep(func(*Space) { preSteps++ })

	s.Step(always)
	if !s.IsStepping() {
		t.Fatal("expected stepping flag set while solve is in flight")
	}
	if preSteps != 1 {
		t.Fatalf("expected one pre-step notification, got %d", preSteps)
	}

	// Backpressure: ticks arriving mid-solve are skipped, not queued.
	s.Step(always)
	s.Step(always)
	if preSteps != 1 {
		t.Fatalf("steps queued during in-flight solve: %d pre-steps", preSteps)
	}

	close(fake.block)
	settle(g, s)
	if fake.calls() != 1 {
		t.Fatalf("expected one advance, got %d", fake.calls())
	}
}

func TestFrameUpdateRunsOnEveryInvocation(t *testing.T) {
	fake := &fakeSolver{}
	s := newTestSpace(t, Config{}, fake)

	el := body.NewElement(nopElement{}, body.Vec2{X: 0.5, Y: 0.5}, 1.0)
	s.AddBody(el)

	el.SetTransform(body.Transform{Pos: body.Vec2{X: 7, Y: 7}})

	// Predicate false: no step, but bookkeeping still runs.
	s.Step(func() bool { return false })
	if el.Frame().Pos != (body.Vec2{X: 7, Y: 7}) {
		t.Fatalf("frame snapshot not taken on skipped step: %+v", el.Frame())
	}
}

func TestEmptyWorldShortCircuit(t *testing.T) {
	g := gomega.NewWithT(t)
	fake := &fakeSolver{}

	const maxPresim = 10
	s := newTestSpace(t, Config{MaxPresimSteps: maxPresim}, fake)

	// An empty world still runs warm-up ticks while in presim...
	for i := 0; i < maxPresim; i++ {
		if !s.IsInPresim() {
			t.Fatalf("expected presim during call %d", i+1)
		}
		s.Step(always)
		settle(g, s)
	}

	// ...then goes quiet: presim complete plus emptiness means nothing is
	// ever queued again.
	if s.IsInPresim() {
		t.Fatal("presim should be complete")
	}
	if s.CanStep() {
		t.Fatal("empty world past presim should not be steppable")
	}

	s.Step(always)
	settle(g, s)
	if fake.calls() != 0 {
		t.Fatalf("empty world queued %d advances", fake.calls())
	}
}

func TestComponentsApplyInRegistrationOrder(t *testing.T) {
	g := gomega.NewWithT(t)
	fake := &fakeSolver{}
	s := newTestSpace(t, Config{MaxPresimSteps: 1}, fake)
	s.AddBody(body.NewGeneric(body.Vec2{X: 0.5, Y: 0.5}, 1.0))

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		s.AddComponent(ComponentFunc(func(*Space) { order = append(order, i) }))
	}

	s.Step(always)
	settle(g, s)

	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Fatalf("expected registration order, got %v", order)
	}
}

func TestElementHooksRunDuringPrepare(t *testing.T) {
	g := gomega.NewWithT(t)
	fake := &fakeSolver{}
	s := newTestSpace(t, Config{MaxPresimSteps: 1}, fake)

	el := &countingElement{}
	s.AddBody(body.NewElement(el, body.Vec2{X: 0.5, Y: 0.5}, 1.0))
	if el.resets != 1 {
		t.Fatalf("expected one reset on add, got %d", el.resets)
	}

	s.Step(always)
	settle(g, s)
	if el.steps != 1 {
		t.Fatalf("expected one step hook call, got %d", el.steps)
	}

	// Skipped tick: hook must not fire.
	s.Step(func() bool { return false })
	if el.steps != 1 {
		t.Fatalf("step hook fired on skipped tick: %d", el.steps)
	}
}

type countingElement struct {
	resets int
	steps  int
}

func (c *countingElement) Reset() { c.resets++ }
func (c *countingElement) Step()  { c.steps++ }
