// Package report turns resolved areas into the acreage table.
package report

import (
	"strconv"

	"github.com/cockroachdb/errors"

	"polygon-acreage/internal/models"
)

// ErrNoPolygons means the document held nothing to report. It is not a failure.
var ErrNoPolygons = errors.New("no polygons found in the KML file")

// Header is the first row of every report.
var Header = []string{"Polygon Name", "Total Acreage", "Total"}

// Assemble totals the results without rounding.
func Assemble(results []models.AreaResult) (*models.Report, error) {
	if len(results) == 0 {
		return nil, ErrNoPolygons
	}
	var total float64
	for _, r := range results {
		total += r.Acres
	}
	return &models.Report{Results: results, TotalAcres: total}, nil
}

// FormatAcres renders an area with two decimals.
func FormatAcres(acres float64) string {
	return strconv.FormatFloat(acres, 'f', 2, 64)
}

// Rows returns the header followed by one row per result. Only the first data
// row carries the total.
func Rows(r *models.Report) [][]string {
	rows := make([][]string, 0, len(r.Results)+1)
	rows = append(rows, Header)
	for i, res := range r.Results {
		row := []string{res.Name, FormatAcres(res.Acres), ""}
		if i == 0 {
			row[2] = FormatAcres(r.TotalAcres)
		}
		rows = append(rows, row)
	}
	return rows
}
