// Package space implements the simulation space and its step scheduler.
//
// A [Space] owns the set of rigid bodies, drives a warm-up (presimulation)
// phase, decides once per external tick whether to advance, hands the
// numerical solve to a dedicated worker goroutine, and fans out collision
// notifications exactly once per contact pair per step.
//
// The caller drives the space from a single goroutine, the caller context:
//
//	s := space.New(space.Config{}, w, solv)
//	for range ticker.C {
//	    s.Step(func() bool { return !paused })
//	}
//
// Step never blocks on the solve; it returns right after queuing it. The
// completion continuation (collision fan-out and clearing of the stepping
// flag) runs back on the caller context, either at the top of the next Step
// call or through an explicit [Space.Drain].
package space
