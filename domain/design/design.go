package design

import (
	"fmt"
)

// Direction selects the ordered alternative the trend test is run against.
type Direction string

const (
	// DirectionIncreasing tests H1: outcome values tend to rise with dose.
	DirectionIncreasing Direction = "increasing"
	// DirectionDecreasing tests H1: outcome values tend to fall with dose.
	DirectionDecreasing Direction = "decreasing"
)

// EndpointSpec holds the pilot-study summary statistics for one measured
// biological endpoint (e.g. an organ weight). Immutable once defined.
type EndpointSpec struct {
	Name        string
	ControlMean float64
	ControlSD   float64
}

// Design is the complete, read-only specification of one simulation run.
// It is fully constructed before any simulation work begins and never
// mutated afterwards.
type Design struct {
	Endpoints  []EndpointSpec
	Scenario   Scenario
	GroupSize  int   // animals per dose group, identical for control and treated
	DoseLevels []int // ordered, non-negative, starting at 0
	Iterations int   // independent simulated studies per endpoint
	Seed       int64
	Direction  Direction
	Workers    int // 0 or 1 = sequential reference mode
}

// Validate checks the Design against every construction-time invariant.
// A failed check is fatal for the run: no simulation work may begin and no
// partial results may be produced.
func (d Design) Validate() error {
	if len(d.Endpoints) == 0 {
		return ErrNoEndpoints
	}
	for _, ep := range d.Endpoints {
		if ep.Name == "" {
			return NewInvalidEndpointError("(unnamed)", "empty name")
		}
		if ep.ControlSD <= 0 {
			return NewInvalidEndpointError(ep.Name, fmt.Sprintf("control SD %g is not positive", ep.ControlSD))
		}
	}
	if d.GroupSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrNonPositiveGroupSize, d.GroupSize)
	}
	if d.Iterations <= 0 {
		return fmt.Errorf("%w: got %d", ErrNonPositiveIteration, d.Iterations)
	}
	if len(d.DoseLevels) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewDoseLevels, len(d.DoseLevels))
	}
	if d.DoseLevels[0] != 0 {
		return fmt.Errorf("%w: got %v", ErrMissingControlGroup, d.DoseLevels)
	}
	for i := 1; i < len(d.DoseLevels); i++ {
		if d.DoseLevels[i] <= d.DoseLevels[i-1] {
			return fmt.Errorf("%w: dose levels must be strictly increasing, got %v",
				ErrMissingControlGroup, d.DoseLevels)
		}
	}
	switch d.Direction {
	case DirectionIncreasing, DirectionDecreasing:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDirection, d.Direction)
	}
	return d.Scenario.Validate(d.DoseLevels)
}

// EndpointNames returns endpoint names in declared order. Power Results are
// reported in this order.
func (d Design) EndpointNames() []string {
	names := make([]string, len(d.Endpoints))
	for i, ep := range d.Endpoints {
		names[i] = ep.Name
	}
	return names
}
