package space

import (
	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/solver"
)

// ElementCollisionFunc receives element-vs-element collisions.
type ElementCollisionFunc func(a, b body.PhysicsElement, impulse float64)

// BlockCollisionFunc receives element-vs-block collisions, order-normalized:
// the element always comes first regardless of which body the engine
// reported as A.
type BlockCollisionFunc func(el body.PhysicsElement, blk *body.Block, impulse float64)

// dispatcher classifies raw contact pairs into semantic categories and
// notifies listeners, one call per reported contact. Pairs involving no
// recognized kind combination are dropped silently.
type dispatcher struct {
	element []ElementCollisionFunc
	block   []BlockCollisionFunc
}

func (d *dispatcher) dispatch(c solver.Contact) {
	switch a := c.A.(type) {
	case *body.Element:
		switch b := c.B.(type) {
		case *body.Element:
			for _, fn := range d.element {
				fn(a.Element(), b.Element(), c.Impulse)
			}
		case *body.Block:
			d.notifyBlock(a, b, c.Impulse)
		}
	case *body.Block:
		if el, ok := c.B.(*body.Element); ok {
			d.notifyBlock(el, a, c.Impulse)
		}
	}
}

func (d *dispatcher) notifyBlock(el *body.Element, blk *body.Block, impulse float64) {
	for _, fn := range d.block {
		fn(el.Element(), blk, impulse)
	}
}
