// Package power holds the value types produced by a simulation run: synthetic
// observations, per-iteration trial outcomes, and the terminal power results.
package power

import (
	"fmt"
	"time"
)

// Observation is one synthetic measurement for one subject.
type Observation struct {
	Endpoint  string
	Iteration int // 1-based iteration index
	Dose      int
	Subject   int // 1..groupSize within the dose group
	Value     float64
}

// Dataset is every Observation sharing one (endpoint, iteration) pair:
// exactly groupSize observations per dose level. It is the unit consumed by
// one trend test and may be discarded as soon as its TrialOutcome exists.
type Dataset struct {
	Endpoint     string
	Iteration    int
	DoseLevels   []int // increasing order, matching generation order
	Observations []Observation
}

// DoseGroups returns observation values grouped by dose level, ordered by
// increasing dose. This is the shape the ordered-alternative trend test
// consumes.
func (d *Dataset) DoseGroups() [][]float64 {
	index := make(map[int]int, len(d.DoseLevels))
	groups := make([][]float64, len(d.DoseLevels))
	for i, dose := range d.DoseLevels {
		index[dose] = i
	}
	for _, obs := range d.Observations {
		i := index[obs.Dose]
		groups[i] = append(groups[i], obs.Value)
	}
	return groups
}

// TrialOutcome records the trend-test verdict for one Dataset. Never mutated
// after creation.
type TrialOutcome struct {
	Endpoint  string
	Iteration int
	PValue    float64
	Rejected  bool
}

// PowerResult is the terminal output for one endpoint: the proportion of
// simulated studies whose trend test rejected the null.
type PowerResult struct {
	Endpoint   string
	Rejections int
	Iterations int
}

// Estimate returns the rejection proportion in [0, 1].
func (r PowerResult) Estimate() float64 {
	return float64(r.Rejections) / float64(r.Iterations)
}

// FormatPercent renders the estimate with two decimal places and a percent
// suffix, e.g. "82.35%". The precision is part of the output contract.
func (r PowerResult) FormatPercent() string {
	return fmt.Sprintf("%.2f%%", r.Estimate()*100)
}

// Run is the manifest for one full simulation invocation: identity, timing,
// and the ordered per-endpoint results.
type Run struct {
	ID         string
	Scenario   string
	Seed       int64
	Iterations int
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []PowerResult
}
