// Package report renders the final power table: markdown to stdout or file,
// HTML for sharing, or an Excel workbook for study-design records.
package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/xuri/excelize/v2"

	"github.com/angelajeffers/simulation-power-analysis/domain/power"
	"github.com/angelajeffers/simulation-power-analysis/internal/errors"
)

// Writer renders a completed Run.
type Writer struct{}

// NewWriter creates a report writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Markdown renders the run header and the per-endpoint power table.
func (w *Writer) Markdown(run *power.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Power Analysis Report\n\n")
	fmt.Fprintf(&b, "- Run: %s\n", run.ID)
	fmt.Fprintf(&b, "- Scenario: %s\n", run.Scenario)
	fmt.Fprintf(&b, "- Seed: %d\n", run.Seed)
	fmt.Fprintf(&b, "- Iterations per endpoint: %d\n", run.Iterations)
	if !run.FinishedAt.IsZero() {
		fmt.Fprintf(&b, "- Elapsed: %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	}
	fmt.Fprintf(&b, "\n| Endpoint | Power |\n|---|---|\n")
	for _, r := range run.Results {
		fmt.Fprintf(&b, "| %s | %s |\n", r.Endpoint, r.FormatPercent())
	}
	return b.String()
}

// WriteMarkdown writes the markdown report to path.
func (w *Writer) WriteMarkdown(run *power.Run, path string) error {
	if err := os.WriteFile(path, []byte(w.Markdown(run)), 0o644); err != nil {
		return errors.WithCode(errors.CodeReportError, fmt.Errorf("writing markdown report %s: %w", path, err))
	}
	return nil
}

// WriteHTML renders the markdown report to a standalone HTML file.
func (w *Writer) WriteHTML(run *power.Run, path string) error {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "Power Analysis Report",
		Flags: html.CommonFlags | html.CompletePage,
	})
	out := markdown.ToHTML([]byte(w.Markdown(run)), p, renderer)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.WithCode(errors.CodeReportError, fmt.Errorf("writing HTML report %s: %w", path, err))
	}
	return nil
}

// WriteWorkbook writes the power table to an Excel workbook.
func (w *Writer) WriteWorkbook(run *power.Run, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	cells := [][]interface{}{
		{"Run", run.ID},
		{"Scenario", run.Scenario},
		{"Seed", run.Seed},
		{"Iterations", run.Iterations},
		{},
		{"Endpoint", "Power"},
	}
	for _, r := range run.Results {
		cells = append(cells, []interface{}{r.Endpoint, r.FormatPercent()})
	}
	for i, row := range cells {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return errors.Wrap(err, "building workbook cell reference")
			}
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				return errors.Wrap(err, "writing workbook cell")
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return errors.WithCode(errors.CodeReportError, fmt.Errorf("saving workbook %s: %w", path, err))
	}
	return nil
}
