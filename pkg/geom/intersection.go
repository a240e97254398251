package geom

import "github.com/go-gl/mathgl/mgl64"

// SegmentTriangleIntersectSingleSided tests the segment p->q against the
// triangle (a,b,c), visible only from the side its vertices wind
// clockwise toward (Möller's single-sided variant: a back-facing
// triangle never reports a hit). On hit, t is the fraction along p->q and
// (v, w) are the triangle's barycentric coordinates of the hit point.
func SegmentTriangleIntersectSingleSided(p, q, a, b, c Point) (t, v, w float64, hit bool) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	qp := p.Sub(q)
	n := Cross(ab, ac)

	d := Dot(qp, n)
	if d <= 0 {
		return 0, 0, 0, false
	}

	ap := p.Sub(a)
	t = Dot(ap, n)
	if t < 0 || t > d {
		return 0, 0, 0, false
	}

	e := Cross(qp, ap)
	v = Dot(ac, e)
	if v < 0 || v > d {
		return 0, 0, 0, false
	}

	w = -Dot(ab, e)
	if w < 0 || v+w > d {
		return 0, 0, 0, false
	}

	ood := 1.0 / d
	return t * ood, v * ood, w * ood, true
}

// SegmentTriangleIntersectDoubleSided tests a ray (origin p, direction dir,
// parameter range [minT, maxT]) against triangle (a,b,c) from either side.
// On hit, t is the ray parameter and (v, w) are barycentric coordinates.
func SegmentTriangleIntersectDoubleSided(p Point, dir mgl64.Vec3, minT, maxT float64, a, b, c Point, epsilon float64) (t, v, w float64, hit bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)

	pvec := Cross(dir, edge2)
	det := Dot(edge1, pvec)
	if det > -epsilon && det < epsilon {
		return 0, 0, 0, false
	}
	invDet := 1.0 / det
	tvec := p.Sub(a)

	v = Dot(tvec, pvec) * invDet
	if v < 0 || v > 1 {
		return 0, 0, 0, false
	}

	qvec := Cross(tvec, edge1)
	w = Dot(dir, qvec) * invDet
	if w < 0 || v+w > 1 {
		return 0, 0, 0, false
	}

	t = Dot(edge2, qvec) * invDet
	return t, v, w, t >= minT && t <= maxT
}

// SegmentTriangleIntersectDoubleSidedPQ is the p/q-segment convenience
// wrapper: it derives direction and parameter range from the two segment
// endpoints, padding both ends by lengthEpsilon to tolerate a hit that
// lands exactly on an endpoint.
func SegmentTriangleIntersectDoubleSidedPQ(p, q, a, b, c Point, epsilon float64) (t, v, w float64, hit bool) {
	dirVec := q.Sub(p)
	length := dirVec.Len()
	if length == 0 {
		return 0, 0, 0, false
	}
	dir := dirVec.Mul(1 / length)
	const lengthEpsilon = 1e-4
	return SegmentTriangleIntersectDoubleSided(p, dir, -lengthEpsilon, length+lengthEpsilon, a, b, c, epsilon)
}

// DefaultDoubleSidedEpsilon is the epsilon used when callers don't have a
// domain-specific tolerance in mind.
const DefaultDoubleSidedEpsilon = 1e-5
