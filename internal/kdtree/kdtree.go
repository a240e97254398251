// Package kdtree builds a Surface-Area-Heuristic kd-tree over a triangle
// soup and answers closest-hit segment queries against it with a
// stack-based traversal, following the same arena-over-pointers shape the
// delaunay package uses for its tetrahedron mesh: nodes live in a bump
// allocator owned by the tree, addressed by index, never individually
// freed.
package kdtree

import "geokernel/pkg/geom"

// Config is injected per tree rather than held as package-level state, so
// that two trees (e.g. a coarse LOD and a detailed one) can run different
// cost models side by side.
type Config struct {
	CostTraverse             float64
	CostIntersect            float64
	EmptyBonus               float64
	MaxDepth                 int
	MinTrisPerLeaf           int
	HeuristicSwitchThreshold int
}

// DefaultConfig matches the cost constants used throughout the build
// derivation: a traversal step is cheap, a ray-triangle test is not, and
// a single empty-sided split is worth a 20% discount.
func DefaultConfig() Config {
	return Config{
		CostTraverse:             1,
		CostIntersect:            80,
		EmptyBonus:               0.2,
		MaxDepth:                 32,
		MinTrisPerLeaf:           2,
		HeuristicSwitchThreshold: 64,
	}
}

// TriangleSoup is the read-only triangle source a tree is built over. The
// tree never copies vertex data; it keeps triangle indices and derived
// AABBs only.
type TriangleSoup interface {
	NumTriangles() int
	Vertex(tri, corner int) geom.Point
	NumVertices() int
}

func triangleBounds(soup TriangleSoup, tri int) geom.BoundingBox {
	b := geom.NewEmptyBoundingBox()
	b.Expand(soup.Vertex(tri, 0))
	b.Expand(soup.Vertex(tri, 1))
	b.Expand(soup.Vertex(tri, 2))
	return b
}

func triangleCentroid(soup TriangleSoup, tri int) geom.Point {
	a := soup.Vertex(tri, 0)
	b := soup.Vertex(tri, 1)
	c := soup.Vertex(tri, 2)
	return geom.NewPoint(
		(a.X()+b.X()+c.X())/3,
		(a.Y()+b.Y()+c.Y())/3,
		(a.Z()+b.Z()+c.Z())/3,
	)
}
