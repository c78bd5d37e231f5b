// Package pipeline runs one document through extraction, area resolution and
// report writing.
package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"

	"polygon-acreage/internal/calculator"
	"polygon-acreage/internal/kml"
	"polygon-acreage/internal/metrics"
	"polygon-acreage/internal/models"
	"polygon-acreage/internal/report"
)

type Options struct {
	Method     calculator.Method
	Workers    int
	OutputPath string
	// Sheet names the worksheet when OutputPath ends in .xlsx.
	Sheet string

	OnProgress calculator.ProgressCallback
	OnLog      calculator.LoggerCallback
}

// Result is a written report.
type Result struct {
	Report     *models.Report
	OutputPath string
}

// Run processes the KML or KMZ file at path.
//
// It returns report.ErrNoPolygons when the document holds no polygons, an
// error satisfying kml.IsInputError when the input cannot be interpreted, and
// any other error when the report cannot be written.
func Run(path string, opts Options, log *slog.Logger) (*Result, error) {
	data, format, err := kml.Load(path)
	if err != nil {
		return nil, err
	}
	return Process(data, format, opts, log.With("input", path))
}

// Process is Run over bytes already in memory.
func Process(data []byte, format kml.Format, opts Options, log *slog.Logger) (res *Result, err error) {
	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeSuccess
		switch {
		case errors.Is(err, report.ErrNoPolygons):
			outcome = metrics.OutcomeEmpty
		case err != nil:
			outcome = metrics.OutcomeError
		}
		metrics.ObserveRun(outcome, time.Since(start))
	}()

	doc, err := kml.Decode(data, format)
	if err != nil {
		if errors.Is(err, kml.ErrContainer) {
			log.Error("failed to extract KML from KMZ", "error", err)
		} else {
			log.Error("failed to parse KML", "error", err)
		}
		return nil, err
	}

	records, err := kml.Extract(doc, log)
	if err != nil {
		log.Error("failed to read polygon coordinates", "error", err)
		return nil, err
	}
	logf(opts.OnLog, "Found %d polygons.", len(records))

	results := calculator.ComputeAreas(records, calculator.Options{
		Method:  opts.Method,
		Workers: opts.Workers,
		Log:     log,
	}, opts.OnProgress, opts.OnLog)
	metrics.ObserveResults(results)

	rep, err := report.Assemble(results)
	if err != nil {
		log.Info("no polygons found")
		return nil, err
	}

	if err := report.WriteFile(opts.OutputPath, report.Rows(rep), opts.Sheet); err != nil {
		log.Error("failed to write report", "path", opts.OutputPath, "error", err)
		return nil, err
	}
	log.Info("report written", "path", opts.OutputPath, "polygons", len(rep.Results), "total_acres", rep.TotalAcres)
	logf(opts.OnLog, "Report written: %s", opts.OutputPath)

	return &Result{Report: rep, OutputPath: opts.OutputPath}, nil
}

func logf(logger calculator.LoggerCallback, format string, args ...interface{}) {
	if logger != nil {
		logger(fmt.Sprintf(format, args...))
	}
}
