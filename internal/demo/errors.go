// Package demo ships two worked check implementations standing in for
// the "concrete checks" the core planner treats as external
// collaborators: RedundantVersionCheck and UnportedModXCheck. They are
// the only concrete Sink implementations and the only Feeder consumers
// in this module.
package demo

import "errors"

// ErrWrongElement is returned when a pipe delivers an element of a type
// a check does not know how to handle; this signals a wiring mistake in
// the caller's pipeline configuration, not a data problem.
var ErrWrongElement = errors.New("demo: unexpected element type")
