package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"polygon-acreage/internal/models"
)

func TestObserveResults(t *testing.T) {
	annotated := testutil.ToFloat64(PolygonsTotal.WithLabelValues(string(models.SourceAnnotation)))
	computed := testutil.ToFloat64(PolygonsTotal.WithLabelValues(string(models.SourceGeometry)))
	fallbacks := testutil.ToFloat64(UnitFallbacksTotal)

	ObserveResults([]models.AreaResult{
		{Name: "a", Source: models.SourceAnnotation, Unit: "acres"},
		{Name: "b", Source: models.SourceGeometry, Unit: "furlongs"},
		{Name: "c", Source: models.SourceGeometry},
	})

	assert.Equal(t, annotated+1, testutil.ToFloat64(PolygonsTotal.WithLabelValues(string(models.SourceAnnotation))))
	assert.Equal(t, computed+2, testutil.ToFloat64(PolygonsTotal.WithLabelValues(string(models.SourceGeometry))))
	assert.Equal(t, fallbacks+1, testutil.ToFloat64(UnitFallbacksTotal))
}

func TestHandler(t *testing.T) {
	ObserveRun(OutcomeEmpty, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `acreage_pipeline_runs_total{outcome="empty"}`))
	assert.Contains(t, body, "acreage_pipeline_run_duration_seconds")
}
