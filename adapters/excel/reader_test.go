package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/angelajeffers/simulation-power-analysis/internal/errors"
)

func writeCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pilot.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestReadEndpointsCSV(t *testing.T) {
	path := writeCSV(t, "endpoint,mean,sd\nliver_weight,2.08,0.13\nkidney_weight,0.80,0.05\n")

	endpoints, err := NewPilotReader(path).ReadEndpoints()
	require.NoError(t, err)
	require.Len(t, endpoints, 2)

	assert.Equal(t, "liver_weight", endpoints[0].Name)
	assert.Equal(t, 2.08, endpoints[0].ControlMean)
	assert.Equal(t, 0.13, endpoints[0].ControlSD)
	assert.Equal(t, "kidney_weight", endpoints[1].Name)
}

func TestReadEndpointsExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pilot.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"endpoint", "mean", "sd"},
		{"liver_weight", 2.08, 0.13},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	endpoints, err := NewPilotReader(path).ReadEndpoints()
	require.NoError(t, err)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "liver_weight", endpoints[0].Name)
	assert.Equal(t, 2.08, endpoints[0].ControlMean)
	assert.Equal(t, 0.13, endpoints[0].ControlSD)
}

func TestReadEndpointsErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewPilotReader(filepath.Join(t.TempDir(), "nope.csv")).ReadEndpoints()
		require.Error(t, err)
		assert.Equal(t, errors.CodeInputFileError, errors.GetCode(err))
	})

	t.Run("header only", func(t *testing.T) {
		path := writeCSV(t, "endpoint,mean,sd\n")
		_, err := NewPilotReader(path).ReadEndpoints()
		require.Error(t, err)
		assert.Equal(t, errors.CodeInputFileError, errors.GetCode(err))
	})

	t.Run("non-numeric mean", func(t *testing.T) {
		path := writeCSV(t, "endpoint,mean,sd\nliver_weight,heavy,0.13\n")
		_, err := NewPilotReader(path).ReadEndpoints()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not numeric")
	})

	t.Run("missing sd column", func(t *testing.T) {
		path := writeCSV(t, "endpoint,mean\nliver_weight,2.08\n")
		_, err := NewPilotReader(path).ReadEndpoints()
		require.Error(t, err)
	})
}
