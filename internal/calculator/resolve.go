package calculator

import (
	"log/slog"

	"polygon-acreage/internal/models"
)

// Resolve determines the acreage of one record. An "Area:" annotation in the
// description wins when its unit is known; an unknown unit is logged and the
// area is computed from the geometry instead, as it is when there is no
// annotation at all.
func Resolve(rec models.PolygonRecord, method Method, log *slog.Logger) models.AreaResult {
	res := models.AreaResult{Name: rec.Name}

	if ann, ok := ParseAnnotation(rec.Description); ok {
		res.Unit = ann.Unit
		acres, err := ToAcres(ann.Value, ann.Unit)
		if err == nil {
			res.Acres = acres
			res.Source = models.SourceAnnotation
			return res
		}
		log.Warn("unknown unit, calculating area instead", "unit", ann.Unit, "polygon", rec.Name)
	}

	res.Acres = GeometricAcres(rec.Geometry, method)
	res.Source = models.SourceGeometry
	return res
}
