// Package calculator resolves the acreage of polygon records.
package calculator

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"polygon-acreage/internal/logging"
	"polygon-acreage/internal/models"
)

type ProgressCallback func(current, total int, msg string)
type LoggerCallback func(msg string)

// Options controls ComputeAreas. Workers <= 1 processes records one by one;
// Workers < 0 uses one worker per CPU. A nil Log drops per-record warnings.
type Options struct {
	Method  Method
	Workers int
	Log     *slog.Logger
}

// ComputeAreas resolves every record. Results keep the order of records
// whatever the number of workers.
func ComputeAreas(records []models.PolygonRecord, opts Options, onProgress ProgressCallback, logger LoggerCallback) []models.AreaResult {
	total := len(records)
	results := make([]models.AreaResult, total)
	if total == 0 {
		return results
	}

	method := opts.Method
	if !method.Valid() {
		method = MethodMercator
	}
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}

	workers := opts.Workers
	if workers < 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}
	chunkSize := (total + workers - 1) / workers

	var wg sync.WaitGroup
	var processedCount int64 = 0

	if logger != nil {
		logger(fmt.Sprintf("Computing areas for %d polygons (method: %s, workers: %d)", total, method, workers))
	}

	for i := 0; i < workers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if start >= total {
			break
		}
		if end > total {
			end = total
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()

			for idx := s; idx < e; idx++ {
				results[idx] = Resolve(records[idx], method, log)

				count := atomic.AddInt64(&processedCount, 1)
				if count%100 == 0 && onProgress != nil {
					onProgress(int(count), total, "")
				}
			}
		}(start, end)
	}

	wg.Wait()

	if onProgress != nil {
		onProgress(total, total, "")
	}
	if logger != nil {
		logger("Area calculation completed.")
	}
	return results
}
