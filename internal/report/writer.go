package report

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// RowWriter writes an ordered table.
type RowWriter interface {
	WriteRows(rows [][]string) error
}

// CSVWriter writes rows as CSV to an io.Writer.
type CSVWriter struct {
	w io.Writer
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

func (c *CSVWriter) WriteRows(rows [][]string) error {
	cw := csv.NewWriter(c.w)
	if err := cw.WriteAll(rows); err != nil {
		return errors.Wrap(err, "write csv")
	}
	return nil
}

// WriteFile writes rows to path. A .xlsx extension produces a workbook with the
// given sheet name; anything else produces CSV.
func WriteFile(path string, rows [][]string, sheet string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return NewXLSXWriter(path, sheet).WriteRows(rows)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := NewCSVWriter(f).WriteRows(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
