package delaunay

import (
	"math"

	"geokernel/pkg/geom"
)

const deg2rad = math.Pi / 180.0

// containingTetrahedron builds a regular tetrahedron circumscribing the
// sphere (center, radius), appends its four corners to pts, and returns a
// tetrahedron referencing them. The construction follows the standard
// regular-tetrahedron-from-circumsphere trig (L = radius * sqrt(24)),
// plus a small margin so the corners comfortably enclose the sphere
// rather than touching it.
func containingTetrahedron(center geom.Point, radius float64, pts *[]geom.Point) Tetrahedron {
	sqRoot := math.Sqrt(24.0)
	l := radius * sqRoot

	h1 := math.Tan(deg2rad*30.0) * l / 2
	h2 := math.Sin(deg2rad*60.0)*l - h1

	margin := l * 0.005

	p1 := geom.NewPoint(center.X()-l/2-margin, center.Y()+radius+margin, center.Z()-h1-margin)
	p2 := geom.NewPoint(center.X()+l/2+margin, center.Y()+radius+margin, center.Z()-h1-margin)
	p3 := geom.NewPoint(center.X(), center.Y()+radius+margin, center.Z()+h2+margin)
	p4 := geom.NewPoint(center.X(), center.Y()+radius-h1-h2+margin, center.Z())

	t := newInvalidTetrahedron()
	t.v[0] = appendPoint(pts, p1)
	t.v[1] = appendPoint(pts, p2)
	t.v[2] = appendPoint(pts, p3)
	t.v[3] = appendPoint(pts, p4)
	return t
}

func appendPoint(pts *[]geom.Point, p geom.Point) int {
	*pts = append(*pts, p)
	return len(*pts) - 1
}
