// Package report implements plan.Result/plan.Reporter: the formatting
// and fan-out layer that sits outside THE CORE and consumes whatever
// pipes plan.Plug hands back.
package report

import "errors"

var (
	// ErrReporterInit is returned when a reporter factory cannot open its
	// destination (e.g. a file it is meant to write results to).
	ErrReporterInit = errors.New("report: cannot initialize reporter")

	// ErrTooFewReporters is returned by NewMultiplexReporter when fewer
	// than two children are supplied — multiplexing one reporter has no
	// purpose.
	ErrTooFewReporters = errors.New("report: multiplex reporter needs at least two reporters")
)
