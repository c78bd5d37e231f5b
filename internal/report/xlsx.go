package report

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

const DefaultSheet = "Acreage"

// XLSXWriter writes rows into a single-sheet workbook at path.
type XLSXWriter struct {
	path  string
	sheet string
}

func NewXLSXWriter(path, sheet string) *XLSXWriter {
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &XLSXWriter{path: path, sheet: sheet}
}

// WriteRows stores numeric cells after the first column as numbers so the
// sheet can be summed.
func (x *XLSXWriter) WriteRows(rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(x.sheet)
	if err != nil {
		return errors.Wrapf(err, "new sheet %s", x.sheet)
	}

	// Use Stream Writer for performance
	sw, err := f.NewStreamWriter(x.sheet)
	if err != nil {
		return errors.Wrap(err, "stream writer")
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(r))
		for j, v := range r {
			row[j] = v
			if i == 0 || j == 0 {
				continue
			}
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				row[j] = n
			}
		}
		if err := sw.SetRow(cell, row); err != nil {
			return errors.Wrapf(err, "row %d", i+1)
		}
	}

	if err := sw.Flush(); err != nil {
		return errors.Wrap(err, "flush")
	}

	f.SetActiveSheet(index)
	// Delete default sheet if exists
	if x.sheet != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	return errors.Wrapf(f.SaveAs(x.path), "save %s", x.path)
}
