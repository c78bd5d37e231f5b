package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"polygon-acreage/internal/models"
)

var (
	PolygonsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acreage",
		Subsystem: "pipeline",
		Name:      "polygons_total",
		Help:      "Polygons resolved, by where the area came from",
	}, []string{"source"})

	UnitFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "acreage",
		Subsystem: "pipeline",
		Name:      "unit_fallbacks_total",
		Help:      "Annotated areas whose unit was not recognised",
	})

	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acreage",
		Subsystem: "pipeline",
		Name:      "runs_total",
		Help:      "Pipeline runs by outcome",
	}, []string{"outcome"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "acreage",
		Subsystem: "pipeline",
		Name:      "run_duration_seconds",
		Help:      "Duration of a pipeline run",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	JobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acreage",
		Subsystem: "server",
		Name:      "jobs_total",
		Help:      "Uploaded jobs by final status",
	}, []string{"status"})
)

// Run outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
)

func ObserveResults(results []models.AreaResult) {
	for _, r := range results {
		PolygonsTotal.WithLabelValues(string(r.Source)).Inc()
		if r.Fallback() {
			UnitFallbacksTotal.Inc()
		}
	}
}

func ObserveRun(outcome string, elapsed time.Duration) {
	RunsTotal.WithLabelValues(outcome).Inc()
	RunDuration.Observe(elapsed.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
