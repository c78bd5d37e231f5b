package calculator

import (
	"github.com/twpayne/go-geom"

	"polygon-acreage/internal/models"
)

// Method selects how an area is computed from geometry.
type Method string

const (
	// MethodMercator projects to EPSG:3857 and uses the planar shoelace area.
	MethodMercator Method = "mercator"
	// MethodGeodesic measures the polygon on a spherical earth.
	MethodGeodesic Method = "geodesic"
)

func (m Method) Valid() bool {
	return m == MethodMercator || m == MethodGeodesic
}

// GeometricAcres computes the area of g, given in lon/lat degrees, in acres.
// An exterior with fewer than 3 points encloses nothing.
func GeometricAcres(g models.PolygonGeometry, method Method) float64 {
	if g.Exterior.Degenerate() {
		return 0
	}
	if method == MethodGeodesic {
		return geodesicAcres(g)
	}
	return MercatorAcres(g)
}

// MercatorAcres projects every ring to Web Mercator and returns the exterior
// area minus the hole areas, in acres. Self-intersecting rings are not repaired.
func MercatorAcres(g models.PolygonGeometry) float64 {
	coords := make([][]geom.Coord, 0, 1+len(g.Interiors))
	coords = append(coords, projectRing(g.Exterior))
	for _, hole := range g.Interiors {
		coords = append(coords, projectRing(hole))
	}
	poly := geom.NewPolygon(geom.XY).MustSetCoords(coords)
	return poly.Area() / SquareMetresPerAcre
}

// projectRing projects r and closes it, since go-geom only sums the edges it is given.
func projectRing(r models.Ring) []geom.Coord {
	out := make([]geom.Coord, 0, len(r)+1)
	for _, p := range r {
		q := ProjectWebMercator(p)
		out = append(out, geom.Coord{q.X, q.Y})
	}
	if len(r) > 0 && r[0] != r[len(r)-1] {
		out = append(out, geom.Coord{out[0][0], out[0][1]})
	}
	return out
}
