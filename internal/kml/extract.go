package kml

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"polygon-acreage/internal/models"
)

// Extract returns one record per placemark that carries a polygon, in document
// order. Placemarks without a usable exterior ring are logged and skipped; a
// malformed coordinate fails the whole extraction.
//
// Only the first polygon of a placemark is read, so the parts of a
// MultiGeometry after the first are ignored.
func Extract(doc *Document, log *slog.Logger) ([]models.PolygonRecord, error) {
	var records []models.PolygonRecord
	for _, pm := range doc.Placemarks() {
		poly, ok := pm.Polygon()
		if !ok {
			continue
		}

		name, ok := pm.Name()
		if !ok {
			name = models.UnnamedPolygon
		}

		outer, ok := poly.OuterCoordinates()
		if !ok {
			log.Warn("polygon has no exterior ring, skipping", "polygon", name)
			continue
		}
		exterior, err := ParseCoordinates(outer)
		if err != nil {
			return nil, errors.Wrapf(err, "polygon %q exterior ring", name)
		}
		if len(exterior) == 0 {
			log.Warn("polygon has no coordinates, skipping", "polygon", name)
			continue
		}
		if exterior.Degenerate() {
			log.Warn("polygon exterior has fewer than 3 points", "polygon", name, "points", len(exterior))
		}

		var interiors []models.Ring
		for i, text := range poly.InnerCoordinates() {
			if text == "" {
				continue
			}
			hole, err := ParseCoordinates(text)
			if err != nil {
				return nil, errors.Wrapf(err, "polygon %q interior ring %d", name, i)
			}
			if hole.Degenerate() {
				log.Warn("dropping degenerate interior ring", "polygon", name, "ring", i, "points", len(hole))
				continue
			}
			interiors = append(interiors, hole)
		}

		records = append(records, models.PolygonRecord{
			Name:        name,
			Description: pm.Description(),
			Geometry: models.PolygonGeometry{
				Exterior:  exterior,
				Interiors: interiors,
			},
		})
	}
	return records, nil
}
