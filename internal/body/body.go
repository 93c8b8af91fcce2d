package body

import (
	"sync/atomic"
)

// Kind tags a body for collision classification and typed queries.
type Kind uint8

const (
	KindGeneric Kind = iota
	KindElement
	KindBlock
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindBlock:
		return "block"
	default:
		return "generic"
	}
}

// Vec2 is a planar vector.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Transform is a body pose: position plus orientation angle in radians.
type Transform struct {
	Pos   Vec2
	Angle float64
}

// Motion is a body's linear and angular velocity.
type Motion struct {
	Linear  Vec2
	Angular float64
}

// Body is the surface the registry and solver work against. All variants
// implement it by embedding [RigidBody].
type Body interface {
	ID() uint64
	Kind() Kind
	HalfExtents() Vec2
	Mass() float64
	Transform() Transform
	SetTransform(Transform)
	Motion() Motion
	SetMotion(Motion)
	Frame() Transform
	UpdateFrame()
	InWorld() bool
	SetInWorld(bool)
	Activate()
	TakeActivation() bool
}

var nextID atomic.Uint64

// RigidBody carries the state shared by every variant.
type RigidBody struct {
	id   uint64
	kind Kind
	half Vec2
	mass float64

	transform atomic.Pointer[Transform]
	motion    atomic.Pointer[Motion]

	// frame is the previous-tick pose snapshot used for render
	// interpolation. Caller context only.
	frame Transform

	inWorld atomic.Bool
	active  atomic.Bool
}

func (b *RigidBody) init(kind Kind, half Vec2, mass float64) {
	b.id = nextID.Add(1)
	b.kind = kind
	b.half = half
	b.mass = mass
	b.transform.Store(&Transform{})
	b.motion.Store(&Motion{})
}

func (b *RigidBody) ID() uint64        { return b.id }
func (b *RigidBody) Kind() Kind        { return b.kind }
func (b *RigidBody) HalfExtents() Vec2 { return b.half }
func (b *RigidBody) Mass() float64     { return b.mass }

func (b *RigidBody) Transform() Transform { return *b.transform.Load() }

func (b *RigidBody) SetTransform(t Transform) { b.transform.Store(&t) }

func (b *RigidBody) Motion() Motion { return *b.motion.Load() }

func (b *RigidBody) SetMotion(m Motion) { b.motion.Store(&m) }

// Frame returns the pose snapshotted by the last UpdateFrame call.
func (b *RigidBody) Frame() Transform { return b.frame }

// UpdateFrame snapshots the current pose for interpolation. It runs once per
// scheduler invocation, on the caller context.
func (b *RigidBody) UpdateFrame() { b.frame = b.Transform() }

// InWorld reports registry membership. The registry owns this flag.
func (b *RigidBody) InWorld() bool { return b.inWorld.Load() }

// SetInWorld marks registry membership. Only the registry should call this.
func (b *RigidBody) SetInWorld(in bool) { b.inWorld.Store(in) }

// Activate requests that the solver wake this body on its next advance.
func (b *RigidBody) Activate() { b.active.Store(true) }

// TakeActivation consumes a pending activation request.
func (b *RigidBody) TakeActivation() bool { return b.active.Swap(false) }
