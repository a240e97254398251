// Package delaunay builds an incremental 3D Delaunay tetrahedralization
// over a point set using bistellar flips, following the same
// index-addressed-arena representation the teacher uses for its voxel
// world and physics code: no pointers between tetrahedra, just int
// indices into a dense slice, with -1 as the universal "absent" sentinel.
package delaunay

import "geokernel/pkg/geom"

// canonicalFace is the face->local-vertex-index table assigned to every
// freshly created tetrahedron. fixFaceOrientations may reverse individual
// entries in place afterward.
var canonicalFace = [4][3]int{
	{0, 1, 2},
	{0, 3, 1},
	{1, 3, 2},
	{2, 3, 0},
}

// Tetrahedron is a 4-vertex simplex: four vertex indices into the owning
// Mesh's point set, four neighbor indices into the owning Mesh's
// tetrahedron slice (-1 = hull boundary or invalid), and the face table
// mapping face index to the three vertex-array positions it spans.
type Tetrahedron struct {
	v         [4]int
	neighbors [4]int
	face      [4][3]int
}

func newInvalidTetrahedron() Tetrahedron {
	t := Tetrahedron{}
	markInvalid(&t)
	return t
}

// IsValid reports whether all four vertex slots hold a real point index.
func (t Tetrahedron) IsValid() bool {
	for _, vi := range t.v {
		if vi < 0 {
			return false
		}
	}
	return true
}

// ContainsVertex reports whether v is one of the tetrahedron's four vertices.
func (t Tetrahedron) ContainsVertex(v int) bool {
	return t.v[0] == v || t.v[1] == v || t.v[2] == v || t.v[3] == v
}

// GetFaceVertices returns the three point-set indices making up face f, in
// outward-CCW order.
func (t Tetrahedron) GetFaceVertices(f int) (a, b, c int) {
	return t.v[t.face[f][0]], t.v[t.face[f][1]], t.v[t.face[f][2]]
}

// Neighbor returns the tetrahedron index sharing face f, or -1.
func (t Tetrahedron) Neighbor(f int) int { return t.neighbors[f] }

// Vertices returns the four vertex indices, in face-table slot order.
func (t Tetrahedron) Vertices() [4]int { return t.v }

func markInvalid(t *Tetrahedron) {
	for i := 0; i < 4; i++ {
		t.v[i] = -1
		t.neighbors[i] = -1
	}
	t.face = canonicalFace
}

// getFaceFromVertices returns the unique face of t whose (unordered)
// vertex set equals {a, b, c}, or -1.
func getFaceFromVertices(t Tetrahedron, a, b, c int) int {
	for i := 0; i < 4; i++ {
		check := 0
		for j := 0; j < 3; j++ {
			vj := t.v[t.face[i][j]]
			if vj == a || vj == b || vj == c {
				check |= 1 << uint(j)
			}
		}
		if check == 7 {
			return i
		}
	}
	return -1
}

// getVertexOutsideFace returns the one vertex of t not incident to face f.
func getVertexOutsideFace(t Tetrahedron, f int) int {
	check := 0
	for i := 0; i < 3; i++ {
		check |= 1 << uint(t.face[f][i])
	}
	switch check {
	case 14: // 1110
		return t.v[0]
	case 13: // 1101
		return t.v[1]
	case 11: // 1011
		return t.v[2]
	case 7: // 0111
		return t.v[3]
	default:
		return -1
	}
}

// sameWinding reports whether v2 is a cyclic rotation of v1 (not a
// reflection) — used to tell whether two faces that share a vertex set
// are co-oriented.
func sameWinding(v1, v2 [3]int) bool {
	offset2 := -1
	for i := 0; i < 3; i++ {
		if v2[i] == v1[0] {
			offset2 = i
			break
		}
	}
	if offset2 < 0 {
		return false
	}
	for offset1 := 1; offset1 < 3; offset1++ {
		offset2 = (offset2 + 1) % 3
		if v1[offset1] != v2[offset2] {
			return false
		}
	}
	return true
}

// sharedFace finds a face of t whose vertex set equals a face of other.
// When reversed is true (the normal case: t and other are conventional
// neighbors across an interface), the matching face is required to have
// opposite winding. When false (overlapping transients mid-flip, e.g.
// flip44), matching winding is required.
func sharedFace(t, other Tetrahedron, reversed bool) int {
	for i := 0; i < 4; i++ {
		ov0, ov1, ov2 := other.GetFaceVertices(i)
		face := getFaceFromVertices(t, ov0, ov2, ov1) // reversed order: faces confront each other
		if face < 0 {
			continue
		}
		tv0, tv1, tv2 := t.GetFaceVertices(face)
		same := sameWinding([3]int{ov0, ov1, ov2}, [3]int{tv0, tv1, tv2})
		if reversed && same {
			continue
		}
		if !reversed && !same {
			continue
		}
		return face
	}
	return -1
}

func adjacentTo(t, other Tetrahedron) bool {
	return sharedFace(t, other, true) >= 0
}

func reverseFace(t *Tetrahedron, f int) {
	t.face[f][0], t.face[f][2] = t.face[f][2], t.face[f][0]
}

func sameOrientation(t Tetrahedron, face int, other Tetrahedron, otherFace int, pts []geom.Point) bool {
	a0, a1, a2 := t.GetFaceVertices(face)
	b0, b1, b2 := other.GetFaceVertices(otherFace)
	n1 := geom.Cross(pts[a1].Sub(pts[a0]), pts[a2].Sub(pts[a0]))
	n2 := geom.Cross(pts[b1].Sub(pts[b0]), pts[b2].Sub(pts[b0]))
	return geom.Dot(n1, n2) > 0
}

func isFlat(t Tetrahedron, pts []geom.Point) bool {
	return geom.IsFlat(pts[t.v[0]], pts[t.v[1]], pts[t.v[2]], pts[t.v[3]])
}

func faceArea(t Tetrahedron, f int, pts []geom.Point) float64 {
	a, b, c := t.GetFaceVertices(f)
	return triangleArea(pts[a], pts[b], pts[c])
}

func triangleArea(a, b, c geom.Point) float64 {
	return 0.5 * geom.Cross(b.Sub(a), c.Sub(a)).Len()
}

// fixFaceOrientations computes the incenter (face-area-weighted interior
// point, preferred over the centroid because it behaves on thin
// tetrahedra) and reverses any face the incenter lies in front of, so
// that every face normal ends up pointing away from the tetrahedron's
// interior. A flat tetrahedron has no meaningful interior and is left
// untouched.
func fixFaceOrientations(t *Tetrahedron, pts []geom.Point) {
	if isFlat(*t, pts) {
		return
	}
	vo, va, vb, vc := pts[t.v[0]], pts[t.v[1]], pts[t.v[2]], pts[t.v[3]]

	areaA := faceArea(*t, 2, pts)
	areaB := faceArea(*t, 3, pts)
	areaC := faceArea(*t, 1, pts)
	areaD := faceArea(*t, 0, pts)
	total := areaA + areaB + areaC + areaD

	cx := vo.X()*(areaA/total) + va.X()*(areaB/total) + vb.X()*(areaC/total) + vc.X()*(areaD/total)
	cy := vo.Y()*(areaA/total) + va.Y()*(areaB/total) + vb.Y()*(areaC/total) + vc.Y()*(areaD/total)
	cz := vo.Z()*(areaA/total) + va.Z()*(areaB/total) + vb.Z()*(areaC/total) + vc.Z()*(areaD/total)
	center := geom.NewPoint(cx, cy, cz)

	const epsilon = 1e-1
	for i := 0; i < 4; i++ {
		a, b, c := t.GetFaceVertices(i)
		pa, pb, pc := pts[a], pts[b], pts[c]
		n := geom.Normalize(geom.Cross(pc.Sub(pa), pb.Sub(pa)))
		d := geom.Dot(n, pa.Vec())
		distToPlane := geom.Dot(n, center.Vec()) - d
		if distToPlane > epsilon {
			reverseFace(t, i)
		}
	}
}

// destroy unlinks t from every live neighbor's back-pointer, then marks
// the slot invalid. The slot stays in the mesh so surviving neighbors'
// indices remain stable.
func destroy(tets []Tetrahedron, i int) {
	t := &tets[i]
	for f := 0; f < 4; f++ {
		if t.neighbors[f] < 0 {
			continue
		}
		n := &tets[t.neighbors[f]]
		if !n.IsValid() {
			continue
		}
		sf := sharedFace(*n, *t, true)
		if sf >= 0 {
			n.neighbors[sf] = -1
		}
	}
	markInvalid(t)
}

// adjustNeighborVicinity ensures the tetrahedron across face f of tets[iT]
// points its own back-reference at iT.
func adjustNeighborVicinity(tets []Tetrahedron, iT, f int) {
	t := tets[iT]
	if t.neighbors[f] < 0 {
		return
	}
	n := &tets[t.neighbors[f]]
	if !n.IsValid() {
		return
	}
	v0, v1, v2 := t.GetFaceVertices(f)
	sf := getFaceFromVertices(*n, v0, v2, v1) // reversed: we're looking from the other side
	if sf >= 0 {
		n.neighbors[sf] = iT
	}
}
