package space

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/clock"
	"github.com/san-kum/rigidsim/internal/solver"
	"github.com/san-kum/rigidsim/internal/worker"
)

const (
	DefaultMaxPresimSteps = 10
	DefaultSubsteps       = 5
)

// Config tunes a space. Zero values select defaults.
type Config struct {
	// MaxPresimSteps is the number of warm-up ticks before real elapsed
	// time starts flowing into the solver.
	MaxPresimSteps int

	// Substeps is the solver substep count per live step.
	Substeps int

	// Clock overrides the elapsed-time source. Tests inject a fake here.
	Clock *clock.Clock

	Logger *zap.Logger
}

// StepFunc observes a space about to step.
type StepFunc func(s *Space)

// Space is the step scheduler: it owns the registry, the component
// pipeline, the collision dispatcher, the clock and the solve worker.
// All methods except the observers must be called from the single caller
// context that drives Step.
type Space struct {
	log      *zap.Logger
	registry *Registry
	pipe     pipeline
	disp     dispatcher
	preStep  []StepFunc
	clock    *clock.Clock
	worker   *worker.Worker
	solver   solver.Solver

	maxPresim int
	substeps  int

	// presim is incremented on the worker and read by the caller-side
	// observers.
	presim atomic.Int32

	// stepping gates the whole step pipeline: set before the solve is
	// queued, cleared only by the completion continuation. At most one
	// solve is in flight at any instant.
	stepping atomic.Bool

	completions chan []solver.Contact
}

func New(cfg Config, w *worker.Worker, solv solver.Solver) *Space {
	if cfg.MaxPresimSteps == 0 {
		cfg.MaxPresimSteps = DefaultMaxPresimSteps
	}
	if cfg.Substeps == 0 {
		cfg.Substeps = DefaultSubsteps
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Space{
		log:         cfg.Logger,
		registry:    NewRegistry(),
		clock:       cfg.Clock,
		worker:      w,
		solver:      solv,
		maxPresim:   cfg.MaxPresimSteps,
		substeps:    cfg.Substeps,
		completions: make(chan []solver.Contact, 1),
	}
}

// Registry exposes the body registry for components and queries.
func (s *Space) Registry() *Registry { return s.registry }

// AddBody makes b a member of the space. Adding an existing member is a
// no-op; either way the body is activated for the next advance. An element
// body entering the space has its owner's Reset hook invoked first.
func (s *Space) AddBody(b body.Body) {
	if s.registry.Add(b) {
		if el, ok := b.(*body.Element); ok {
			el.Element().Reset()
		}
	}
	b.Activate()
}

// RemoveBody unmarks membership. Removing a non-member is a no-op.
func (s *Space) RemoveBody(b body.Body) {
	s.registry.Remove(b)
}

// BodiesByKind returns a snapshot of members with the given kind tag.
func (s *Space) BodiesByKind(k body.Kind) []body.Body {
	return s.registry.ByKind(k)
}

// Elements returns a snapshot of the element bodies.
func (s *Space) Elements() []*body.Element {
	return s.registry.Elements()
}

// AddComponent appends c to the world component pipeline. Registration is
// append-only; there is no removal.
func (s *Space) AddComponent(c Component) {
	s.pipe.add(c)
}

// OnPreStep registers fn to fire once per actual step, on the caller
// context, before element hooks and components run. Not safe to call
// concurrently with Step.
func (s *Space) OnPreStep(fn StepFunc) {
	s.preStep = append(s.preStep, fn)
}

// OnElementCollision registers a listener for element-vs-element contacts.
func (s *Space) OnElementCollision(fn ElementCollisionFunc) {
	s.disp.element = append(s.disp.element, fn)
}

// OnBlockCollision registers a listener for element-vs-block contacts.
func (s *Space) OnBlockCollision(fn BlockCollisionFunc) {
	s.disp.block = append(s.disp.block, fn)
}

// IsStepping reports whether a solve is in flight.
func (s *Space) IsStepping() bool { return s.stepping.Load() }

// IsInPresim reports whether the warm-up phase is still running.
func (s *Space) IsInPresim() bool {
	return int(s.presim.Load()) < s.maxPresim
}

// CanStep reports whether a call to Step could queue work right now: no
// solve in flight, and either warm-up is still running or the space has
// bodies. An empty space whose warm-up has finished never queues anything.
func (s *Space) CanStep() bool {
	return !s.IsStepping() && (s.IsInPresim() || !s.registry.IsEmpty())
}

// Step is the single driving entry point, called once per external tick.
//
// Pending completion work is drained first, then every element body takes
// its frame snapshot; both happen on every invocation regardless of the
// guards below. If shouldStep returns true and CanStep holds, the prepare
// phase runs synchronously (pre-step listeners, element hooks, component
// pipeline) and the solve is queued on the worker. Otherwise the call is a
// no-op: ticks arriving while a solve is in flight are skipped, never
// queued.
func (s *Space) Step(shouldStep func() bool) {
	s.Drain()

	for _, el := range s.registry.Elements() {
		el.UpdateFrame()
	}

	if shouldStep != nil && !shouldStep() {
		return
	}
	if !s.CanStep() {
		s.log.Debug("step skipped",
			zap.Bool("stepping", s.IsStepping()),
			zap.Int("bodies", s.registry.Len()))
		return
	}

	s.stepping.Store(true)

	for _, fn := range s.preStep {
		fn(s)
	}
	for _, el := range s.registry.Elements() {
		el.Element().Step()
	}
	s.pipe.applyAll(s)

	s.worker.Submit(s.advance)
}

// advance runs on the worker goroutine: one warm-up tick or one real solve,
// then the completion handoff back to the caller context.
func (s *Space) advance() {
	var contacts []solver.Contact
	if int(s.presim.Load()) >= s.maxPresim {
		contacts = s.solver.Advance(s.clock.Consume(), s.substeps)
	} else if int(s.presim.Add(1)) >= s.maxPresim {
		// Warm-up just finished. Discard the wall time it accumulated so
		// the first live step does not start with a time debt.
		s.clock.Consume()
		s.log.Debug("presimulation complete", zap.Int("steps", s.maxPresim))
	}
	s.completions <- contacts
}

// Drain runs any pending completion continuation on the calling goroutine:
// collision fan-out for the just-finished solve, then clearing of the
// stepping flag. Step drains implicitly; owners may also pump between
// ticks. Must be called from the caller context.
func (s *Space) Drain() {
	select {
	case contacts := <-s.completions:
		for _, c := range contacts {
			s.disp.dispatch(c)
		}
		s.stepping.Store(false)
	default:
	}
}
