// Package planar advances bodies with a 2D rigid-body engine. It is one
// implementation of the solver contract; the scheduler treats it as a
// black box.
package planar

import (
	"time"

	"github.com/ByteArena/box2d"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/solver"
)

const (
	velocityIterations = 8
	positionIterations = 3

	defaultFriction    = 0.6
	defaultRestitution = 0.15
)

// DefaultGravity is the constant acceleration applied to dynamic bodies,
// m/s/s.
var DefaultGravity = body.Vec2{X: 0, Y: -9.807}

type pairKey struct {
	lo, hi uint64
}

func makePairKey(a, b uint64) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Solver mirrors registry membership into a box2d world once per advance,
// steps it, writes poses back, and aggregates the strongest applied impulse
// per touching pair into one contact report.
//
// Advance only ever runs on the scheduler's worker goroutine, so no
// internal locking is needed.
type Solver struct {
	world   box2d.B2World
	bodies  func() []body.Body
	mirrors map[uint64]*box2d.B2Body
	pending map[pairKey]solver.Contact
}

// New constructs a solver over a membership snapshot provider, typically
// Registry.All.
func New(gravity body.Vec2, bodies func() []body.Body) *Solver {
	s := &Solver{
		world:   box2d.MakeB2World(box2d.MakeB2Vec2(gravity.X, gravity.Y)),
		bodies:  bodies,
		mirrors: make(map[uint64]*box2d.B2Body),
	}
	s.world.SetContactListener(s)
	return s
}

func (s *Solver) Advance(elapsed time.Duration, substeps int) []solver.Contact {
	if substeps < 1 {
		substeps = 1
	}
	s.sync()

	dt := elapsed.Seconds() / float64(substeps)
	if dt <= 0 {
		return nil
	}

	s.pending = make(map[pairKey]solver.Contact)
	for i := 0; i < substeps; i++ {
		s.world.Step(dt, velocityIterations, positionIterations)
	}
	s.writeBack()

	out := make([]solver.Contact, 0, len(s.pending))
	for _, c := range s.pending {
		out = append(out, c)
	}
	s.pending = nil
	return out
}

// sync reconciles the box2d world with current membership and pushes each
// body's caller-visible state in. Membership never changes while an advance
// runs, so one snapshot per advance suffices.
func (s *Solver) sync() {
	snapshot := s.bodies()

	seen := make(map[uint64]struct{}, len(snapshot))
	for _, b := range snapshot {
		seen[b.ID()] = struct{}{}
		mb, ok := s.mirrors[b.ID()]
		if !ok {
			mb = s.mirror(b)
			s.mirrors[b.ID()] = mb
		}

		t := b.Transform()
		mb.SetTransform(box2d.MakeB2Vec2(t.Pos.X, t.Pos.Y), t.Angle)
		if b.Kind() != body.KindBlock {
			m := b.Motion()
			mb.SetLinearVelocity(box2d.MakeB2Vec2(m.Linear.X, m.Linear.Y))
			mb.SetAngularVelocity(m.Angular)
		}
		if b.TakeActivation() {
			mb.SetAwake(true)
		}
	}

	for id, mb := range s.mirrors {
		if _, ok := seen[id]; !ok {
			s.world.DestroyBody(mb)
			delete(s.mirrors, id)
		}
	}
}

func (s *Solver) mirror(b body.Body) *box2d.B2Body {
	def := box2d.MakeB2BodyDef()
	if b.Kind() == body.KindBlock {
		def.Type = box2d.B2BodyType.B2_staticBody
	} else {
		def.Type = box2d.B2BodyType.B2_dynamicBody
	}
	t := b.Transform()
	def.Position.Set(t.Pos.X, t.Pos.Y)
	def.Angle = t.Angle

	mb := s.world.CreateBody(&def)
	mb.SetUserData(b)

	half := b.HalfExtents()
	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(half.X, half.Y)

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Friction = defaultFriction
	fd.Restitution = defaultRestitution
	if area := 4 * half.X * half.Y; area > 0 && b.Mass() > 0 {
		fd.Density = b.Mass() / area
	}
	mb.CreateFixtureFromDef(&fd)
	return mb
}

func (s *Solver) writeBack() {
	for _, mb := range s.mirrors {
		b, ok := mb.GetUserData().(body.Body)
		if !ok || b.Kind() == body.KindBlock {
			continue
		}
		pos := mb.GetPosition()
		vel := mb.GetLinearVelocity()
		b.SetTransform(body.Transform{
			Pos:   body.Vec2{X: pos.X, Y: pos.Y},
			Angle: mb.GetAngle(),
		})
		b.SetMotion(body.Motion{
			Linear:  body.Vec2{X: vel.X, Y: vel.Y},
			Angular: mb.GetAngularVelocity(),
		})
	}
}

// BeginContact implements box2d.B2ContactListenerInterface.
func (s *Solver) BeginContact(contact box2d.B2ContactInterface) {}

// EndContact implements box2d.B2ContactListenerInterface.
func (s *Solver) EndContact(contact box2d.B2ContactInterface) {}

// PreSolve implements box2d.B2ContactListenerInterface.
func (s *Solver) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {}

// PostSolve aggregates per-substep impulses so each touching pair surfaces
// once per advance, carrying the strongest impulse seen.
func (s *Solver) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {
	if s.pending == nil {
		return
	}
	a, okA := contact.GetFixtureA().GetBody().GetUserData().(body.Body)
	b, okB := contact.GetFixtureB().GetBody().GetUserData().(body.Body)
	if !okA || !okB {
		return
	}

	var sum float64
	for i := 0; i < impulse.Count && i < len(impulse.NormalImpulses); i++ {
		sum += impulse.NormalImpulses[i]
	}

	key := makePairKey(a.ID(), b.ID())
	if cur, ok := s.pending[key]; !ok || sum > cur.Impulse {
		s.pending[key] = solver.Contact{A: a, B: b, Impulse: sum}
	}
}
