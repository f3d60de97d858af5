package power

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name       string
		rejections int
		iterations int
		want       string
	}{
		{"reference band", 8235, 10000, "82.35%"},
		{"zero power", 0, 10000, "0.00%"},
		{"full power", 10000, 10000, "100.00%"},
		{"rounds half up", 5, 1000, "0.50%"},
		{"two decimals from thirds", 1, 3, "33.33%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := PowerResult{Endpoint: "liver_weight", Rejections: tt.rejections, Iterations: tt.iterations}
			assert.Equal(t, tt.want, r.FormatPercent())
		})
	}
}

func TestEstimate(t *testing.T) {
	r := PowerResult{Rejections: 42, Iterations: 200}
	assert.InDelta(t, 0.21, r.Estimate(), 1e-12)
}

func TestDoseGroupsOrdering(t *testing.T) {
	ds := Dataset{
		Endpoint:   "liver_weight",
		Iteration:  1,
		DoseLevels: []int{0, 1, 2},
		Observations: []Observation{
			{Dose: 2, Subject: 1, Value: 5.0},
			{Dose: 0, Subject: 1, Value: 1.0},
			{Dose: 1, Subject: 1, Value: 3.0},
			{Dose: 0, Subject: 2, Value: 2.0},
		},
	}
	groups := ds.DoseGroups()
	assert.Equal(t, [][]float64{{1.0, 2.0}, {3.0}, {5.0}}, groups)
}
