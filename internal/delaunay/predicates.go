package delaunay

import "geokernel/pkg/geom"

// orient, inSphere, coplanar and inside are thin index-based wrappers
// around pkg/geom's point predicates — the Delaunay code only ever deals
// in point-set indices, never raw points.

func orient(pts []geom.Point, a, b, c, p int) float64 {
	return geom.Orient(pts[a], pts[b], pts[c], pts[p])
}

func inSphere(pts []geom.Point, a, b, c, d, p int) float64 {
	return geom.InSphere(pts[a], pts[b], pts[c], pts[d], pts[p])
}

func coplanar(pts []geom.Point, a, b, c, d int) bool {
	return geom.Coplanar(pts[a], pts[b], pts[c], pts[d])
}

func inside(pts []geom.Point, p int, t Tetrahedron) bool {
	if isFlat(t, pts) {
		return false
	}
	var faces [4]geom.Face
	for i := 0; i < 4; i++ {
		a, b, c := t.GetFaceVertices(i)
		faces[i] = geom.Face{A: pts[a], B: pts[b], C: pts[c]}
	}
	return geom.Inside(pts[p], faces, false)
}

func segmentTriangleIntersectsDoubleSided(pts []geom.Point, p, d, a, b, c int) bool {
	_, _, _, hit := geom.SegmentTriangleIntersectDoubleSidedPQ(pts[p], pts[d], pts[a], pts[b], pts[c], geom.DefaultDoubleSidedEpsilon)
	return hit
}
