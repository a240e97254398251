package geom

import "gonum.org/v1/gonum/mat"

// Tolerance bands, carried over from the source's empirically-tuned
// constants rather than re-derived.
const (
	orientEpsilon  = 1e-3
	inSphereEpsilon = 1e-4
	insideEpsilon   = 1e-4
)

// Orient returns the sign of the determinant of the 4x4 matrix whose rows
// are (p.x, p.y, p.z, 1) for a, b, c, p in that order. It follows the
// left-hand rule: positive means p lies above the oriented plane (a,b,c).
// Results within [-orientEpsilon, orientEpsilon] are clamped to zero.
func Orient(a, b, c, p Point) float64 {
	m := mat.NewDense(4, 4, []float64{
		a.X(), a.Y(), a.Z(), 1,
		b.X(), b.Y(), b.Z(), 1,
		c.X(), c.Y(), c.Z(), 1,
		p.X(), p.Y(), p.Z(), 1,
	})
	det := mat.Det(m)
	if det < -orientEpsilon || det > orientEpsilon {
		return det
	}
	return 0
}

// InSphere returns the sign of the determinant of the 5x5 matrix with rows
// (p.x, p.y, p.z, |p|^2, 1). Callers must ensure Orient(a,b,c,d) >= 0
// before calling. Results within [-inSphereEpsilon, inSphereEpsilon] are
// clamped to zero.
func InSphere(a, b, c, d, p Point) float64 {
	row := func(q Point) [5]float64 {
		return [5]float64{q.X(), q.Y(), q.Z(), q.LengthSquared(), 1}
	}
	ra, rb, rc, rd, rp := row(a), row(b), row(c), row(d), row(p)
	m := mat.NewDense(5, 5, []float64{
		ra[0], ra[1], ra[2], ra[3], ra[4],
		rb[0], rb[1], rb[2], rb[3], rb[4],
		rc[0], rc[1], rc[2], rc[3], rc[4],
		rd[0], rd[1], rd[2], rd[3], rd[4],
		rp[0], rp[1], rp[2], rp[3], rp[4],
	})
	det := mat.Det(m)
	if det < -inSphereEpsilon || det > inSphereEpsilon {
		return det
	}
	return 0
}

// Coplanar reports whether four points lie on a common plane.
func Coplanar(a, b, c, d Point) bool {
	return Orient(a, b, c, d) == 0
}

// Face is a triangle, as an ordered vertex triplet, whose outward normal
// follows the right-hand rule over (c-a) x (b-a) — matching the winding
// convention the tetrahedron face table produces.
type Face struct {
	A, B, C Point
}

// Inside reports whether p lies inside the tetrahedron whose four faces
// are given in outward-facing order, i.e. on or behind every face plane
// within insideEpsilon. A flat tetrahedron (faces degenerate to a single
// plane) never contains any point.
func Inside(p Point, faces [4]Face, flat bool) bool {
	if flat {
		return false
	}
	for _, f := range faces {
		n := Normalize(Cross(f.C.Sub(f.A), f.B.Sub(f.A)))
		d := Dot(n, f.A.Vec())
		distToPlane := Dot(n, p.Vec()) - d
		if distToPlane > insideEpsilon {
			return false
		}
	}
	return true
}

// IsFlat reports whether four points are coplanar (zero-volume tetrahedron).
func IsFlat(a, b, c, d Point) bool {
	return Coplanar(a, b, c, d)
}
