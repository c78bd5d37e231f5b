package calculator

import (
	"github.com/golang/geo/s2"

	"polygon-acreage/internal/models"
)

// meanEarthRadius is the IUGG mean radius in metres.
const meanEarthRadius = 6371008.8

func geodesicAcres(g models.PolygonGeometry) float64 {
	area := loopArea(g.Exterior)
	for _, hole := range g.Interiors {
		area -= loopArea(hole)
	}
	return area * meanEarthRadius * meanEarthRadius / SquareMetresPerAcre
}

// loopArea returns the area of r on the unit sphere in steradians, whichever
// way the ring is wound.
func loopArea(r models.Ring) float64 {
	pts := make([]s2.Point, 0, len(r))
	for _, p := range r {
		pt := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Y, p.X))
		if n := len(pts); n > 0 && pts[n-1] == pt {
			continue
		}
		pts = append(pts, pt)
	}
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	if len(pts) < models.MinRingPoints {
		return 0
	}
	loop := s2.LoopFromPoints(pts)
	loop.Normalize()
	return loop.Area()
}
