package delaunay

import "geokernel/internal/profiling"

// insertOnePoint locates the tetrahedron containing points[pointIndex],
// splits it with flip14, then repeatedly tests every resulting
// tetrahedron's opposite neighbor for the empty-circumsphere property,
// applying whatever flip restores it until the repair stack runs dry.
// Returns false if pointIndex could not be located inside the mesh.
func insertOnePoint(m *Mesh, pointIndex int) bool {
	defer profiling.Track("delaunay.insertOnePoint")()

	t, ok := walk(m, pointIndex, 0)
	if !ok {
		return false
	}

	result := flip14(m, pointIndex, t)
	stack := append([]int(nil), result[:]...)

	for len(stack) > 0 {
		iT := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		tet := m.tets[iT]
		if !tet.IsValid() {
			continue
		}

		face := -1
		for f := 0; f < 4; f++ {
			if getVertexOutsideFace(tet, f) == pointIndex {
				face = f
				break
			}
		}
		if face < 0 {
			continue
		}

		iTa := tet.neighbors[face]
		if iTa < 0 {
			continue
		}
		ta := m.tets[iTa]

		a, b, c := tet.GetFaceVertices(face)
		sf := getFaceFromVertices(ta, a, c, b)
		opposedVertex := getVertexOutsideFace(ta, sf)

		pts := m.points
		t0, t1, t2, t3 := tet.v[0], tet.v[2], tet.v[1], tet.v[3]

		doFlip := isFlat(tet, pts) ||
			(orient(pts, t0, t1, t2, t3) >= 0 && inSphere(pts, t0, t1, t2, t3, opposedVertex) > 0) ||
			(orient(pts, t0, t2, t1, t3) >= 0 && inSphere(pts, t0, t2, t1, t3, opposedVertex) > 0)

		if doFlip {
			flip(m, iT, iTa, pointIndex, &stack)
		}
	}

	return true
}
