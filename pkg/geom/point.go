// Package geom provides the vector algebra, bounding-box, and
// segment-triangle intersection primitives shared by the delaunay and
// kdtree packages. Point and vector algebra is not reimplemented here;
// it rides on mathgl's float64 vector type.
package geom

import "github.com/go-gl/mathgl/mgl64"

// Point is an immutable triple of double-precision coordinates.
type Point struct {
	v mgl64.Vec3
}

// NewPoint builds a Point from three coordinates.
func NewPoint(x, y, z float64) Point {
	return Point{v: mgl64.Vec3{x, y, z}}
}

// Vec returns the underlying mgl64.Vec3, for callers that need direct
// access to the algebra library's API.
func (p Point) Vec() mgl64.Vec3 { return p.v }

func (p Point) X() float64 { return p.v[0] }
func (p Point) Y() float64 { return p.v[1] }
func (p Point) Z() float64 { return p.v[2] }

func (p Point) Sub(q Point) mgl64.Vec3 { return p.v.Sub(q.v) }
func (p Point) Add(d mgl64.Vec3) Point { return Point{v: p.v.Add(d)} }

// LengthSquared returns the squared distance from the origin.
func (p Point) LengthSquared() float64 { return p.v.Dot(p.v) }

// DistanceTo returns the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 { return p.v.Sub(q.v).Len() }

// Cross is vector cross product, exposed for callers building face normals.
func Cross(a, b mgl64.Vec3) mgl64.Vec3 { return a.Cross(b) }

// Dot is vector dot product.
func Dot(a, b mgl64.Vec3) float64 { return a.Dot(b) }

// Normalize returns v scaled to unit length; the zero vector is returned
// unchanged.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}
