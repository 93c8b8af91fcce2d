package space

// Component is an injectable per-step mutator applied during the prepare
// phase, before the solve is queued. Components run synchronously on the
// caller context, in registration order, exactly once per step; any
// internal concurrency is the component's own business and must not
// outlive Apply.
type Component interface {
	Apply(s *Space)
}

// ComponentFunc adapts a function to the Component interface.
type ComponentFunc func(s *Space)

func (f ComponentFunc) Apply(s *Space) { f(s) }

type pipeline struct {
	components []Component
}

func (p *pipeline) add(c Component) {
	p.components = append(p.components, c)
}

func (p *pipeline) applyAll(s *Space) {
	for _, c := range p.components {
		c.Apply(s)
	}
}
