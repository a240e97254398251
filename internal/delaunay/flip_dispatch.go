package delaunay

import "geokernel/internal/profiling"

// flip classifies the non-Delaunay pair (T=tets[iT], Ta=tets[iTa]) sharing
// a face, with p the vertex of T opposite that face, and performs
// whichever bistellar flip resolves it, pushing every resulting
// tetrahedron back onto stack for re-testing.
//
// The classification follows Shewchuk-style incremental flipping: T and
// Ta's shared face is (a,b,c); d is Ta's vertex outside that face. If
// a,b,c,p are coplanar, T itself is degenerate (case 4). Otherwise, if
// p,d and exactly two of a,b,c are coplanar, the pair sits on a
// config44 plane (cases 31/32/33). Otherwise the segment p-d either
// crosses face abc (case 1, flip23 applies) or doesn't (case 2, a flip32
// applies only if a third tetrahedron closes the edge).
func flip(m *Mesh, iT, iTa, p int, stack *[]int) {
	defer profiling.Track("delaunay.flip")()

	t := m.tets[iT]
	ta := m.tets[iTa]

	tSharedFace := sharedFace(t, ta, true)
	if tSharedFace < 0 {
		return
	}
	a, b, c := t.GetFaceVertices(tSharedFace)

	taSharedFace := sharedFace(ta, t, true)
	d := getVertexOutsideFace(ta, taSharedFace)
	if d < 0 {
		return
	}

	pts := m.points
	sharedVertices := [3]int{a, b, c}

	var caseNum int
	switch {
	case coplanar(pts, a, b, c, p):
		caseNum = 4
	case coplanar(pts, a, b, d, p):
		caseNum = 31
	case coplanar(pts, a, c, d, p):
		caseNum = 32
	case coplanar(pts, b, c, d, p):
		caseNum = 33
	default:
		if segmentTriangleIntersectsDoubleSided(pts, p, d, a, b, c) {
			caseNum = 1
		} else {
			caseNum = 2
		}
	}

	switch caseNum {
	case 1:
		if result, ok := flip23(m, iT, iTa); ok {
			for _, r := range result {
				*stack = append(*stack, r)
			}
		}

	case 4:
		fixed := flipEdgeClosure(m, iT, iTa, t, ta, sharedVertices, p, d, stack)
		if !fixed {
			if result, ok := flip23(m, iT, iTa); ok {
				for _, r := range result {
					*stack = append(*stack, r)
				}
			}
		}

	case 2:
		flipEdgeClosure(m, iT, iTa, t, ta, sharedVertices, p, d, stack)

	case 31, 32, 33:
		var ssA, ssB int
		switch caseNum {
		case 31:
			ssA, ssB = sharedVertices[0], sharedVertices[1]
		case 32:
			ssA, ssB = sharedVertices[0], sharedVertices[2]
		default:
			ssA, ssB = sharedVertices[1], sharedVertices[2]
		}

		faceT := getFaceFromVertices(t, ssA, ssB, p)
		faceTa := getFaceFromVertices(ta, ssB, ssA, d)
		if faceT < 0 || faceTa < 0 {
			return
		}

		iNeighborT := t.neighbors[faceT]
		iNeighborTa := ta.neighbors[faceTa]
		if iNeighborT < 0 || iNeighborTa < 0 {
			return
		}

		tb := m.tets[iNeighborT]
		tc := m.tets[iNeighborTa]
		if !tb.IsValid() || !tc.IsValid() || !adjacentTo(tb, tc) {
			return
		}

		sharedFaceTTb := getFaceFromVertices(tb, ssA, ssB, p)
		if sharedFaceTTb < 0 {
			return
		}
		cornerC := getVertexOutsideFace(t, faceT)
		cornerD := getVertexOutsideFace(tb, sharedFaceTTb)

		switch {
		case coplanar(pts, ssA, ssB, cornerC, cornerD):
			result := flip44(m, iT, iTa, iNeighborT, iNeighborTa)
			for _, r := range result {
				*stack = append(*stack, r)
			}
		case coplanar(pts, ssA, ssB, d, p):
			result := flip44(m, iT, iNeighborT, iTa, iNeighborTa)
			for _, r := range result {
				*stack = append(*stack, r)
			}
		}
	}
}

// flipEdgeClosure handles the shared logic of cases 2 and 4: search the
// three edges of shared face abc for a third tetrahedron Tb that also
// contains that edge along with d, and if found, resolve with flip32.
// Reports whether a flip was performed.
func flipEdgeClosure(m *Mesh, iT, iTa int, t, ta Tetrahedron, sharedVertices [3]int, p, d int, stack *[]int) bool {
	for s := 0; s < 3; s++ {
		a := sharedVertices[s]
		b := sharedVertices[(s+1)%3]
		abp := getFaceFromVertices(t, a, b, p)
		bap := getFaceFromVertices(ta, b, a, d)
		if abp < 0 || bap < 0 {
			continue
		}
		iTb1 := t.neighbors[abp]
		iTb2 := ta.neighbors[bap]
		if iTb1 < 0 || iTb1 != iTb2 {
			continue
		}

		result := flip32(m, iT, iTa, iTb1)
		*stack = append(*stack, result[0], result[1])
		return true
	}
	return false
}
