// Package scene builds the demo worlds used by the CLI: a strip of ground
// blocks with dynamic crates dropped onto it.
package scene

import (
	"math/rand"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/space"
)

// Crate is a simple physics element: a dynamic box that respawns at its
// drop point when it tumbles off the ground strip.
type Crate struct {
	rb    *body.Element
	spawn body.Transform
}

const killPlaneY = -30.0

func NewCrate(spawn body.Vec2, size float64, mass float64) *Crate {
	c := &Crate{spawn: body.Transform{Pos: spawn}}
	c.rb = body.NewElement(c, body.Vec2{X: size / 2, Y: size / 2}, mass)
	c.rb.SetTransform(c.spawn)
	return c
}

// Body returns the rigid body owned by this crate.
func (c *Crate) Body() *body.Element { return c.rb }

// Reset places the crate back at its drop point with no motion. The space
// calls this when the body enters the world.
func (c *Crate) Reset() {
	c.rb.SetTransform(c.spawn)
	c.rb.SetMotion(body.Motion{})
}

// Step respawns the crate once it has fallen past the kill plane.
func (c *Crate) Step() {
	if c.rb.Transform().Pos.Y < killPlaneY {
		c.Reset()
		c.rb.Activate()
	}
}

// Drag damps every dynamic body's motion once per step, applied during the
// prepare phase like any other world component.
type Drag struct {
	Coefficient float64
}

func (d Drag) Apply(s *space.Space) {
	for _, b := range s.Registry().All() {
		if b.Kind() == body.KindBlock {
			continue
		}
		m := b.Motion()
		k := 1 - d.Coefficient
		b.SetMotion(body.Motion{
			Linear:  m.Linear.Scale(k),
			Angular: m.Angular * k,
		})
	}
}

// Build populates s from the scene config and returns the crates so the
// caller can track them.
func Build(cfg *config.Config, s *space.Space) []*Crate {
	rng := rand.New(rand.NewSource(cfg.Scene.Seed))

	// Ground: a strip of unit blocks centered on the origin.
	n := int(cfg.Scene.GroundWidth)
	for i := 0; i < n; i++ {
		x := float64(i) - cfg.Scene.GroundWidth/2 + 0.5
		s.AddBody(body.NewBlock(body.Vec2{X: x, Y: -0.5}, body.Vec2{X: 0.5, Y: 0.5}))
	}

	crates := make([]*Crate, 0, cfg.Scene.Crates)
	for i := 0; i < cfg.Scene.Crates; i++ {
		spawn := body.Vec2{
			X: (rng.Float64() - 0.5) * cfg.Scene.GroundWidth * 0.8,
			Y: cfg.Scene.DropHeight + rng.Float64()*cfg.Scene.DropHeight/2,
		}
		size := 0.6 + rng.Float64()*0.8
		c := NewCrate(spawn, size, size*size*4)
		s.AddBody(c.Body())
		crates = append(crates, c)
	}

	s.AddComponent(Drag{Coefficient: 0.01})
	return crates
}
