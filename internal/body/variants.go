package body

// PhysicsElement is the external owner of an [Element] body. The body holds
// it by back-reference only; the registry never manages its lifecycle.
//
// Step is the per-tick hook invoked during the prepare phase, on the caller
// context, before the solve is queued. Implementations needing the space
// capture it at construction.
type PhysicsElement interface {
	// Reset is called when the body (re)enters a space.
	Reset()
	// Step runs once per scheduled step during the prepare phase.
	Step()
}

// Element is a dynamic body owned by exactly one PhysicsElement.
type Element struct {
	RigidBody
	element PhysicsElement
}

func NewElement(el PhysicsElement, half Vec2, mass float64) *Element {
	e := &Element{element: el}
	e.init(KindElement, half, mass)
	return e
}

// Element returns the owning physics element.
func (e *Element) Element() PhysicsElement { return e.element }

// Block is a static terrain proxy.
type Block struct {
	RigidBody
}

func NewBlock(pos Vec2, half Vec2) *Block {
	b := &Block{}
	b.init(KindBlock, half, 0)
	b.SetTransform(Transform{Pos: pos})
	return b
}

// Generic is a dynamic body with no external owner.
type Generic struct {
	RigidBody
}

func NewGeneric(half Vec2, mass float64) *Generic {
	g := &Generic{}
	g.init(KindGeneric, half, mass)
	return g
}
