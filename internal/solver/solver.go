// Package solver defines the contract between the step scheduler and the
// numerical engine that advances body state.
package solver

import (
	"time"

	"github.com/san-kum/rigidsim/internal/body"
)

// Contact reports two touching bodies and the impulse applied between them
// during an advance. The engine reports each touching pair once per advance.
type Contact struct {
	A, B    body.Body
	Impulse float64
}

// Solver advances every body's simulated state by elapsed time, split into
// substeps, and reports the contacts produced along the way.
//
// Advance must be total: it always terminates and never panics. It runs on
// the dedicated worker goroutine and is never invoked re-entrantly; body
// membership does not change while it runs.
type Solver interface {
	Advance(elapsed time.Duration, substeps int) []Contact
}
