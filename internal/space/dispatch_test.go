package space

import (
	"testing"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/solver"
)

type nopElement struct{}

func (nopElement) Reset() {}
func (nopElement) Step()  {}

func TestDispatchElementOnElement(t *testing.T) {
	elA, elB := nopElement{}, nopElement{}
	a := body.NewElement(elA, body.Vec2{X: 0.5, Y: 0.5}, 1.0)
	b := body.NewElement(elB, body.Vec2{X: 0.5, Y: 0.5}, 1.0)

	var calls int
	var gotImpulse float64
	d := &dispatcher{}
	d.element = append(d.element, func(x, y body.PhysicsElement, impulse float64) {
		calls++
		gotImpulse = impulse
	})

	d.dispatch(solver.Contact{A: a, B: b, Impulse: 3.5})

	if calls != 1 {
		t.Fatalf("expected exactly one notification, got %d", calls)
	}
	if gotImpulse != 3.5 {
		t.Errorf("expected impulse 3.5, got %f", gotImpulse)
	}
}

func TestDispatchBlockElementOrderInvariant(t *testing.T) {
	el := body.NewElement(nopElement{}, body.Vec2{X: 0.5, Y: 0.5}, 1.0)
	blk := body.NewBlock(body.Vec2{}, body.Vec2{X: 0.5, Y: 0.5})

	type report struct {
		el      body.PhysicsElement
		blk     *body.Block
		impulse float64
	}
	var got []report
	d := &dispatcher{}
	d.block = append(d.block, func(e body.PhysicsElement, b *body.Block, impulse float64) {
		got = append(got, report{e, b, impulse})
	})

	d.dispatch(solver.Contact{A: el, B: blk, Impulse: 1.25})
	d.dispatch(solver.Contact{A: blk, B: el, Impulse: 1.25})

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[0] != got[1] {
		t.Fatalf("report order leaked through normalization: %+v vs %+v", got[0], got[1])
	}
	if got[0].blk != blk {
		t.Error("block reference mismatch")
	}
}

func TestDispatchDropsUnclassifiedPairs(t *testing.T) {
	gen := body.NewGeneric(body.Vec2{X: 0.5, Y: 0.5}, 1.0)
	blk := body.NewBlock(body.Vec2{}, body.Vec2{X: 0.5, Y: 0.5})
	el := body.NewElement(nopElement{}, body.Vec2{X: 0.5, Y: 0.5}, 1.0)

	var calls int
	d := &dispatcher{}
	d.element = append(d.element, func(a, b body.PhysicsElement, impulse float64) { calls++ })
	d.block = append(d.block, func(e body.PhysicsElement, b *body.Block, impulse float64) { calls++ })

	d.dispatch(solver.Contact{A: gen, B: blk})
	d.dispatch(solver.Contact{A: gen, B: el})
	d.dispatch(solver.Contact{A: blk, B: blk})
	d.dispatch(solver.Contact{A: gen, B: gen})

	if calls != 0 {
		t.Fatalf("unclassified pairs should be dropped, got %d notifications", calls)
	}
}
