package simulation

import (
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelajeffers/simulation-power-analysis/adapters/rng"
	"github.com/angelajeffers/simulation-power-analysis/domain/design"
	"github.com/angelajeffers/simulation-power-analysis/internal/testkit"
)

func TestGenerateShape(t *testing.T) {
	d := testkit.ReferenceDesign()
	gen := NewGenerator()
	stream := rng.NewAdapter().SeededStream("run", d.Seed)

	ds, err := gen.Generate(stream, d, d.Endpoints[0], 1)
	require.NoError(t, err)

	assert.Equal(t, "liver_weight", ds.Endpoint)
	assert.Equal(t, 1, ds.Iteration)
	assert.Len(t, ds.Observations, d.GroupSize*len(d.DoseLevels))

	// Doses appear in increasing order with subjects numbered 1..GroupSize.
	idx := 0
	for _, dose := range d.DoseLevels {
		for subject := 1; subject <= d.GroupSize; subject++ {
			obs := ds.Observations[idx]
			assert.Equal(t, dose, obs.Dose)
			assert.Equal(t, subject, obs.Subject)
			assert.Equal(t, 1, obs.Iteration)
			idx++
		}
	}

	groups := ds.DoseGroups()
	require.Len(t, groups, len(d.DoseLevels))
	for i := range groups {
		assert.Len(t, groups[i], d.GroupSize)
	}
}

func TestGenerateSingleAnimalGroups(t *testing.T) {
	d := testkit.SingleAnimalDesign(10)
	gen := NewGenerator()
	stream := rng.NewAdapter().SeededStream("run", d.Seed)

	ds, err := gen.Generate(stream, d, d.Endpoints[0], 1)
	require.NoError(t, err)
	assert.Len(t, ds.Observations, len(d.DoseLevels))
	for _, group := range ds.DoseGroups() {
		assert.Len(t, group, 1)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	d := testkit.ReferenceDesign()
	gen := NewGenerator()
	adapter := rng.NewAdapter()

	first, err := gen.Generate(adapter.SeededStream("run", d.Seed), d, d.Endpoints[0], 1)
	require.NoError(t, err)
	second, err := gen.Generate(adapter.SeededStream("run", d.Seed), d, d.Endpoints[0], 1)
	require.NoError(t, err)

	assert.Equal(t, first.Observations, second.Observations)
}

func TestGenerateMissingMappingFailsBeforeDrawing(t *testing.T) {
	d := testkit.ReferenceDesign()
	d.DoseLevels = []int{0, 1, 2, 3, 4} // dose 4 has no multipliers
	gen := NewGenerator()
	adapter := rng.NewAdapter()

	stream := adapter.SeededStream("run", d.Seed)
	ds, err := gen.Generate(stream, d, d.Endpoints[0], 1)
	require.ErrorIs(t, err, design.ErrMissingDoseMapping)
	assert.Nil(t, ds)

	// No values were drawn: the stream is still at its initial position.
	pristine := adapter.SeededStream("run", d.Seed)
	assert.Equal(t, pristine.NormFloat64(), stream.NormFloat64())
}

func TestGenerateCalibration(t *testing.T) {
	// Pool many iterations and check each dose group's sample moments
	// against the configured multipliers.
	d := testkit.ReferenceDesign()
	gen := NewGenerator()
	stream := rng.NewAdapter().SeededStream("run", d.Seed)

	const iterations = 400
	pooled := make(map[int][]float64)
	for iter := 1; iter <= iterations; iter++ {
		ds, err := gen.Generate(stream, d, d.Endpoints[0], iter)
		require.NoError(t, err)
		for _, obs := range ds.Observations {
			pooled[obs.Dose] = append(pooled[obs.Dose], obs.Value)
		}
	}

	for _, dose := range d.DoseLevels {
		effect, variance, err := d.Scenario.MultipliersFor(dose)
		require.NoError(t, err)

		sample := pooled[dose]
		require.Len(t, sample, iterations*d.GroupSize)

		mean, err := stats.Mean(sample)
		require.NoError(t, err)
		sd, err := stats.StandardDeviation(sample)
		require.NoError(t, err)

		wantMean := d.Endpoints[0].ControlMean * effect
		wantSD := d.Endpoints[0].ControlSD * variance
		assert.InDelta(t, wantMean, mean, 0.02, "dose %d mean", dose)
		assert.InDelta(t, wantSD, sd, 0.02, "dose %d sd", dose)
	}
}
