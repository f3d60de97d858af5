// Package simulation holds the core engine: the synthetic dataset generator
// and the Monte Carlo power estimator.
package simulation

import (
	"math/rand"

	"github.com/angelajeffers/simulation-power-analysis/domain/design"
	"github.com/angelajeffers/simulation-power-analysis/domain/power"
)

// Generator produces synthetic datasets under the heteroscedastic normal
// model: for each dose level, GroupSize independent draws with mean
// ControlMean×effect and standard deviation ControlSD×variance.
type Generator struct{}

// NewGenerator creates a dataset generator.
func NewGenerator() *Generator {
	return &Generator{}
}

type doseParams struct {
	dose int
	mean float64
	sd   float64
}

// Generate draws one Dataset for (endpoint, iteration) from the given
// stream. Doses are generated in increasing order and subjects are numbered
// 1..GroupSize within each dose group, so the draw order is a fixed function
// of the design. An unmapped dose level fails generation before the first
// value is drawn; no partial dataset is ever produced.
func (g *Generator) Generate(stream *rand.Rand, d design.Design, ep design.EndpointSpec, iteration int) (*power.Dataset, error) {
	perDose := make([]doseParams, len(d.DoseLevels))
	for i, dose := range d.DoseLevels {
		effect, variance, err := d.Scenario.MultipliersFor(dose)
		if err != nil {
			return nil, err
		}
		perDose[i] = doseParams{
			dose: dose,
			mean: ep.ControlMean * effect,
			sd:   ep.ControlSD * variance,
		}
	}

	ds := &power.Dataset{
		Endpoint:     ep.Name,
		Iteration:    iteration,
		DoseLevels:   d.DoseLevels,
		Observations: make([]power.Observation, 0, d.GroupSize*len(d.DoseLevels)),
	}
	for _, p := range perDose {
		for subject := 1; subject <= d.GroupSize; subject++ {
			ds.Observations = append(ds.Observations, power.Observation{
				Endpoint:  ep.Name,
				Iteration: iteration,
				Dose:      p.dose,
				Subject:   subject,
				Value:     stream.NormFloat64()*p.sd + p.mean,
			})
		}
	}
	return ds, nil
}
