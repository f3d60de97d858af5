// Package excel reads pilot-study summary statistics from Excel or CSV
// files. Each data row supplies one endpoint: name, control mean, control
// standard deviation.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/angelajeffers/simulation-power-analysis/domain/design"
	"github.com/angelajeffers/simulation-power-analysis/internal/errors"
)

// PilotReader handles reading Excel and CSV pilot files
type PilotReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewPilotReader creates a reader that handles both Excel and CSV files
func NewPilotReader(filePath string) *PilotReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &PilotReader{filePath: filePath, fileType: fileType}
}

// ReadEndpoints reads the endpoint rows into EndpointSpec values, preserving
// file order. The first row must be a header.
func (r *PilotReader) ReadEndpoints() ([]design.EndpointSpec, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.InputFileError(r.filePath, err)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, errors.InputFileError(r.filePath, err)
	}
	return parseEndpointRows(rows, r.filePath)
}

func (r *PilotReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	return rows, nil
}

func (r *PilotReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return records, nil
}

func parseEndpointRows(rows [][]string, path string) ([]design.EndpointSpec, error) {
	if len(rows) < 2 {
		return nil, errors.InputFileError(path,
			fmt.Errorf("pilot file must have a header row and at least one endpoint row"))
	}

	endpoints := make([]design.EndpointSpec, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2 // 1-based, after header
		if len(row) == 0 || strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		if len(row) < 3 {
			return nil, errors.InputFileError(path,
				fmt.Errorf("row %d: need endpoint, mean, sd columns, got %d cells", line, len(row)))
		}
		name := strings.TrimSpace(row[0])
		mean, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, errors.InputFileError(path, fmt.Errorf("row %d: mean %q is not numeric", line, row[1]))
		}
		sd, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, errors.InputFileError(path, fmt.Errorf("row %d: sd %q is not numeric", line, row[2]))
		}
		endpoints = append(endpoints, design.EndpointSpec{Name: name, ControlMean: mean, ControlSD: sd})
	}
	if len(endpoints) == 0 {
		return nil, errors.InputFileError(path, fmt.Errorf("no endpoint rows found"))
	}
	return endpoints, nil
}
