package models

// UnnamedPolygon is used when a placemark has no usable name.
const UnnamedPolygon = "Unnamed"

// Point is a lon/lat pair in degrees, or x/y in metres once projected.
type Point struct {
	X float64
	Y float64
}

// Ring is a closed boundary. Closure is implicit, the last point need not repeat the first.
type Ring []Point

// MinRingPoints is the smallest number of points a non-degenerate ring can have.
const MinRingPoints = 3

func (r Ring) Degenerate() bool {
	return len(r) < MinRingPoints
}

type PolygonGeometry struct {
	Exterior  Ring
	Interiors []Ring
}

type PolygonRecord struct {
	Name        string
	Description string
	Geometry    PolygonGeometry
}

// AreaAnnotation is an area stated in a placemark description, e.g. "Area: 5.2 sq mi".
type AreaAnnotation struct {
	Value float64
	Unit  string
}

type AreaSource string

const (
	SourceAnnotation AreaSource = "annotation"
	SourceGeometry   AreaSource = "geometry"
)

type AreaResult struct {
	Name   string
	Acres  float64
	Source AreaSource
	// Unit is the annotated unit, if the description carried one.
	Unit string
}

// Fallback reports whether an annotation was present but its unit was not understood.
func (r AreaResult) Fallback() bool {
	return r.Unit != "" && r.Source == SourceGeometry
}

type Report struct {
	Results    []AreaResult
	TotalAcres float64
}
