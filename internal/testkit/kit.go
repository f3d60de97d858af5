// Package testkit provides shared fixtures: canonical designs used across
// the test suites.
package testkit

import (
	"github.com/angelajeffers/simulation-power-analysis/domain/design"
)

// ReferenceEndpoint is the pilot liver-weight endpoint: mean 2.08 g, SD 0.13 g.
func ReferenceEndpoint() design.EndpointSpec {
	return design.EndpointSpec{Name: "liver_weight", ControlMean: 2.08, ControlSD: 0.13}
}

// ReferenceScenario models a 15% depression of the control mean at the top
// dose with linearly interpolated intermediate effects, and SD inflation up
// to 2x at the top dose.
func ReferenceScenario() design.Scenario {
	return design.Scenario{
		Label:               "15pct-depression-2x-variance",
		EffectMultipliers:   map[int]float64{0: 1.0, 1: 0.95, 2: 0.9, 3: 0.85},
		VarianceMultipliers: map[int]float64{0: 1.0, 1: 1.333, 2: 1.667, 3: 2.0},
	}
}

// ReferenceDesign is the canonical regression design: seed 1563, ten animals
// per group, control plus three dose groups, ten thousand iterations.
func ReferenceDesign() design.Design {
	return design.Design{
		Endpoints:  []design.EndpointSpec{ReferenceEndpoint()},
		Scenario:   ReferenceScenario(),
		GroupSize:  10,
		DoseLevels: []int{0, 1, 2, 3},
		Iterations: 10000,
		Seed:       1563,
		Direction:  design.DirectionDecreasing,
	}
}

// SmallDesign is the reference design trimmed to a test-friendly iteration
// count.
func SmallDesign(iterations int) design.Design {
	d := ReferenceDesign()
	d.Iterations = iterations
	return d
}

// NullDesign maps every dose to the identity multipliers, so the true effect
// is zero and rejections occur only at the nominal significance level.
func NullDesign(iterations int) design.Design {
	d := ReferenceDesign()
	d.Iterations = iterations
	d.Scenario = design.Scenario{
		Label:               "null",
		EffectMultipliers:   map[int]float64{0: 1.0, 1: 1.0, 2: 1.0, 3: 1.0},
		VarianceMultipliers: map[int]float64{0: 1.0, 1: 1.0, 2: 1.0, 3: 1.0},
	}
	return d
}

// SingleAnimalDesign exercises the groupSize=1 boundary.
func SingleAnimalDesign(iterations int) design.Design {
	d := ReferenceDesign()
	d.GroupSize = 1
	d.Iterations = iterations
	return d
}
