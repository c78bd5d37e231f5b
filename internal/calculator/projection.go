package calculator

import (
	"math"

	"polygon-acreage/internal/models"
)

// webMercatorRadius is the sphere radius of EPSG:3857, in metres.
const webMercatorRadius = 6378137.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// ProjectWebMercator maps a lon/lat point in degrees (EPSG:4326) to
// EPSG:3857 metres, keeping x = longitude, y = latitude.
func ProjectWebMercator(p models.Point) models.Point {
	return models.Point{
		X: webMercatorRadius * toRadians(p.X),
		Y: webMercatorRadius * math.Log(math.Tan(math.Pi/4+toRadians(p.Y)/2)),
	}
}
