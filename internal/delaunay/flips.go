package delaunay

import (
	"geokernel/internal/profiling"
	"geokernel/pkg/geom"
)

// flip14 inserts point pointIndex inside tetrahedron tetraIdx, producing
// four new tetrahedra (one per face of the original) fanning out to the
// new point. Preconditions (p inside T, p not already a vertex of T) are
// the caller's responsibility; this mirrors the source, which asserts
// rather than checks them at runtime.
func flip14(m *Mesh, pointIndex, tetraIdx int) [4]int {
	defer profiling.Track("delaunay.flip14")()

	srcT := m.tets[tetraIdx]

	iResT1 := tetraIdx
	destroy(m.tets, iResT1)
	iResT2 := m.append()
	iResT3 := m.append()
	iResT4 := m.append()

	result := [4]int{iResT1, iResT2, iResT3, iResT4}

	for i, idx := range result {
		a, b, c := srcT.GetFaceVertices(i)
		m.tets[idx].v = [4]int{a, b, c, pointIndex}
		fixFaceOrientations(&m.tets[idx], m.points)
	}

	t1, t2, t3, t4 := &m.tets[iResT1], &m.tets[iResT2], &m.tets[iResT3], &m.tets[iResT4]

	t1.neighbors[0] = srcT.neighbors[0]
	t1.neighbors[sharedFace(*t1, *t2, true)] = iResT2
	t1.neighbors[sharedFace(*t1, *t3, true)] = iResT3
	t1.neighbors[sharedFace(*t1, *t4, true)] = iResT4

	t2.neighbors[0] = srcT.neighbors[1]
	t2.neighbors[sharedFace(*t2, *t4, true)] = iResT4
	t2.neighbors[sharedFace(*t2, *t3, true)] = iResT3
	t2.neighbors[sharedFace(*t2, *t1, true)] = iResT1

	t3.neighbors[0] = srcT.neighbors[2]
	t3.neighbors[sharedFace(*t3, *t2, true)] = iResT2
	t3.neighbors[sharedFace(*t3, *t4, true)] = iResT4
	t3.neighbors[sharedFace(*t3, *t1, true)] = iResT1

	t4.neighbors[0] = srcT.neighbors[3]
	t4.neighbors[sharedFace(*t4, *t3, true)] = iResT3
	t4.neighbors[sharedFace(*t4, *t2, true)] = iResT2
	t4.neighbors[sharedFace(*t4, *t1, true)] = iResT1

	for _, idx := range result {
		adjustNeighborVicinity(m.tets, idx, 0)
	}

	return result
}

// flip23 replaces two tetrahedra T=(a,b,c,d) and U sharing face (b,c,d)
// (U's apex e) with three tetrahedra sharing edge a<->e. Returns false if
// T and U turn out not to share a face (the precondition — the union
// being convex — is checked by the caller before this is reached).
func flip23(m *Mesh, tetra1, tetra2 int) ([3]int, bool) {
	defer profiling.Track("delaunay.flip23")()

	srcT1 := m.tets[tetra1]
	srcT2 := m.tets[tetra2]

	sharedFaceT1 := sharedFace(srcT1, srcT2, true)
	sharedFaceT2 := sharedFace(srcT2, srcT1, true)
	if sharedFaceT1 < 0 || sharedFaceT2 < 0 {
		return [3]int{}, false
	}

	a := getVertexOutsideFace(srcT1, sharedFaceT1)
	e := getVertexOutsideFace(srcT2, sharedFaceT2)
	b, c, d := srcT1.GetFaceVertices(sharedFaceT1)

	iResT1 := tetra1
	destroy(m.tets, iResT1)
	iResT2 := tetra2
	destroy(m.tets, iResT2)
	iResT3 := m.append()

	result := [3]int{iResT1, iResT2, iResT3}

	// Result 1: b, d, a, e
	m.tets[iResT1].v = [4]int{b, d, a, e}
	fixFaceOrientations(&m.tets[iResT1], m.points)
	wireFlip23Boundary(m, iResT1, srcT1, srcT2, a, b, d, b, e, d)

	// Result 2: d, c, a, e
	m.tets[iResT2].v = [4]int{d, c, a, e}
	fixFaceOrientations(&m.tets[iResT2], m.points)
	wireFlip23Boundary(m, iResT2, srcT1, srcT2, c, a, d, d, e, c)

	// Result 3: c, b, a, e
	m.tets[iResT3].v = [4]int{c, b, a, e}
	fixFaceOrientations(&m.tets[iResT3], m.points)
	wireFlip23Boundary(m, iResT3, srcT1, srcT2, b, a, c, c, e, b)

	t1, t2, t3 := &m.tets[iResT1], &m.tets[iResT2], &m.tets[iResT3]
	t1.neighbors[sharedFace(*t1, *t2, true)] = iResT2
	t1.neighbors[sharedFace(*t1, *t3, true)] = iResT3
	t2.neighbors[sharedFace(*t2, *t1, true)] = iResT1
	t2.neighbors[sharedFace(*t2, *t3, true)] = iResT3
	t3.neighbors[sharedFace(*t3, *t1, true)] = iResT1
	t3.neighbors[sharedFace(*t3, *t2, true)] = iResT2

	return result, true
}

// wireFlip23Boundary copies the two external-face neighbor links for one
// of flip23's three results, given the vertex triplets identifying that
// face in srcT1's and srcT2's original face tables.
func wireFlip23Boundary(m *Mesh, resIdx int, srcT1, srcT2 Tetrahedron, face1a, face1b, face1c, face2a, face2b, face2c int) {
	res := m.tets[resIdx]
	bFace1 := getFaceFromVertices(res, face1a, face1b, face1c)
	bFace2 := getFaceFromVertices(res, face2a, face2b, face2c)
	bFace1Src := getFaceFromVertices(srcT1, face1a, face1b, face1c)
	bFace2Src := getFaceFromVertices(srcT2, face2a, face2b, face2c)

	if bFace1 >= 0 && bFace1Src >= 0 {
		m.tets[resIdx].neighbors[bFace1] = srcT1.neighbors[bFace1Src]
		adjustNeighborVicinity(m.tets, resIdx, bFace1)
	}
	if bFace2 >= 0 && bFace2Src >= 0 {
		m.tets[resIdx].neighbors[bFace2] = srcT2.neighbors[bFace2Src]
		adjustNeighborVicinity(m.tets, resIdx, bFace2)
	}
}

// flip32 replaces three tetrahedra sharing a common edge d<->p with two
// sharing a face abc. The three pairwise shared faces between tetra1,
// tetra2 and tetra3 must total exactly five distinct vertices: two
// appearing in all three shared faces (the edge endpoints d, p) and three
// appearing in exactly one (the outer triangle a, b, c).
func flip32(m *Mesh, tetra1, tetra2, tetra3 int) [2]int {
	defer profiling.Track("delaunay.flip32")()

	srcT1 := m.tets[tetra1]
	srcT2 := m.tets[tetra2]
	srcT3 := m.tets[tetra3]

	sharedFace12 := sharedFace(srcT1, srcT2, true)
	sharedFace13 := sharedFace(srcT1, srcT3, true)
	sharedFace23 := sharedFace(srcT2, srcT3, true)

	var sharedVerts [9]int
	sharedVerts[0], sharedVerts[1], sharedVerts[2] = srcT1.GetFaceVertices(sharedFace12)
	sharedVerts[3], sharedVerts[4], sharedVerts[5] = srcT1.GetFaceVertices(sharedFace13)
	sharedVerts[6], sharedVerts[7], sharedVerts[8] = srcT2.GetFaceVertices(sharedFace23)

	occurrence := map[int]int{}
	order := make([]int, 0, 5)
	for _, v := range sharedVerts {
		if _, ok := occurrence[v]; !ok {
			order = append(order, v)
		}
		occurrence[v]++
	}

	var dp [2]int
	var abc [3]int
	iDp, iAbc := 0, 0
	for _, v := range order {
		switch occurrence[v] {
		case 3:
			dp[iDp] = v
			iDp++
		case 1:
			abc[iAbc] = v
			iAbc++
		}
	}

	a, b, c := abc[0], abc[1], abc[2]
	pa, pb, pc := m.points[a], m.points[b], m.points[c]
	facePlaneNormal := geom.Normalize(geom.Cross(pc.Sub(pa), pb.Sub(pa)))
	facePlaneDist := geom.Dot(facePlaneNormal, pa.Vec())

	var d, p int
	if geom.Dot(facePlaneNormal, m.points[dp[0]].Vec())-facePlaneDist > -1e-4 {
		d, p = dp[0], dp[1]
	} else {
		d, p = dp[1], dp[0]
	}

	destroy(m.tets, tetra3)

	iResT1 := tetra1
	destroy(m.tets, iResT1)
	iResT2 := tetra2
	destroy(m.tets, iResT2)

	result := [2]int{iResT1, iResT2}

	m.tets[iResT1].v = [4]int{a, c, b, d}
	fixFaceOrientations(&m.tets[iResT1], m.points)
	wireFlip32Result(m, iResT1, srcT1, srcT2, srcT3)

	m.tets[iResT2].v = [4]int{a, b, c, p}
	fixFaceOrientations(&m.tets[iResT2], m.points)
	wireFlip32Result(m, iResT2, srcT1, srcT2, srcT3)

	sf4a := getFaceFromVertices(m.tets[iResT1], a, c, b)
	m.tets[iResT1].neighbors[sf4a] = iResT2
	sf4b := getFaceFromVertices(m.tets[iResT2], a, b, c)
	m.tets[iResT2].neighbors[sf4b] = iResT1

	return result
}

func wireFlip32Result(m *Mesh, resIdx int, srcT1, srcT2, srcT3 Tetrahedron) {
	res := m.tets[resIdx]
	sf1 := sharedFace(srcT1, res, false)
	sf2 := sharedFace(srcT2, res, false)
	sf3 := sharedFace(srcT3, res, false)

	if sf1 >= 0 {
		v0, v1, v2 := srcT1.GetFaceVertices(sf1)
		rf := getFaceFromVertices(m.tets[resIdx], v0, v1, v2)
		m.tets[resIdx].neighbors[rf] = srcT1.neighbors[sf1]
		adjustNeighborVicinity(m.tets, resIdx, rf)
	}
	if sf2 >= 0 {
		v0, v1, v2 := srcT2.GetFaceVertices(sf2)
		rf := getFaceFromVertices(m.tets[resIdx], v0, v1, v2)
		m.tets[resIdx].neighbors[rf] = srcT2.neighbors[sf2]
		adjustNeighborVicinity(m.tets, resIdx, rf)
	}
	if sf3 >= 0 {
		v0, v1, v2 := srcT3.GetFaceVertices(sf3)
		rf := getFaceFromVertices(m.tets[resIdx], v0, v1, v2)
		m.tets[resIdx].neighbors[rf] = srcT3.neighbors[sf3]
		adjustNeighborVicinity(m.tets, resIdx, rf)
	}
}

// flip44 replaces four tetrahedra [abcd][acde][bcdf][cdef] sharing edge
// c<->d, arranged as a coplanar fan, with four sharing a new edge b<->e
// perpendicular to it in the same plane.
func flip44(m *Mesh, tetra1, tetra2, tetra3, tetra4 int) [4]int {
	defer profiling.Track("delaunay.flip44")()

	srcT1 := m.tets[tetra1]
	srcT2 := m.tets[tetra2]
	srcT3 := m.tets[tetra3]
	srcT4 := m.tets[tetra4]

	iResT1, iResT2, iResT3, iResT4 := tetra1, tetra2, tetra3, tetra4
	destroy(m.tets, iResT1)
	destroy(m.tets, iResT2)
	destroy(m.tets, iResT3)
	destroy(m.tets, iResT4)

	result := [4]int{iResT1, iResT2, iResT3, iResT4}

	sf := sharedFace(srcT1, srcT2, true)
	a := getVertexOutsideFace(srcT1, sf)
	sf = sharedFace(srcT2, srcT1, true)
	f := getVertexOutsideFace(srcT2, sf)
	sf = sharedFace(srcT1, srcT3, true)
	b := getVertexOutsideFace(srcT1, sf)
	sf = sharedFace(srcT3, srcT1, true)
	e := getVertexOutsideFace(srcT3, sf)

	var c, d int
	for i := 0; i < 4 && c == 0 && d == 0; i++ {
		if getVertexOutsideFace(srcT1, i) != b {
			continue
		}
		v0, v1, v2 := srcT1.GetFaceVertices(i)
		vs := [3]int{v0, v1, v2}
		for j := 0; j < 3; j++ {
			if vs[j] == a {
				c = vs[(j+1)%3]
				d = vs[(j+2)%3]
				break
			}
		}
	}

	m.tets[iResT1].v = srcT1.v
	m.tets[iResT2].v = srcT2.v
	m.tets[iResT3].v = srcT3.v
	m.tets[iResT4].v = srcT4.v
	for i := 0; i < 4; i++ {
		if m.tets[iResT1].v[i] == d {
			m.tets[iResT1].v[i] = e
		}
		if m.tets[iResT2].v[i] == d {
			m.tets[iResT2].v[i] = e
		}
		if m.tets[iResT3].v[i] == c {
			m.tets[iResT3].v[i] = b
		}
		if m.tets[iResT4].v[i] == c {
			m.tets[iResT4].v[i] = b
		}
	}

	wireFlip44Pair(m, iResT1, srcT1, a, b, c, srcT3, a, c, e)
	wireFlip44Pair(m, iResT2, srcT2, b, c, f, srcT4, c, e, f)
	wireFlip44Pair(m, iResT3, srcT1, a, b, d, srcT3, a, d, e)
	wireFlip44Pair(m, iResT4, srcT2, b, d, f, srcT4, d, e, f)

	t1, t2, t3, t4 := &m.tets[iResT1], &m.tets[iResT2], &m.tets[iResT3], &m.tets[iResT4]
	t1.neighbors[getFaceFromVertices(*t1, b, c, e)] = iResT2
	t1.neighbors[getFaceFromVertices(*t1, a, b, e)] = iResT3
	t2.neighbors[getFaceFromVertices(*t2, b, c, e)] = iResT1
	t2.neighbors[getFaceFromVertices(*t2, b, e, f)] = iResT4
	t3.neighbors[getFaceFromVertices(*t3, a, b, e)] = iResT1
	t3.neighbors[getFaceFromVertices(*t3, b, d, e)] = iResT4
	t4.neighbors[getFaceFromVertices(*t4, b, d, e)] = iResT3
	t4.neighbors[getFaceFromVertices(*t4, b, e, f)] = iResT2

	fixFaceOrientations(t1, m.points)
	fixFaceOrientations(t2, m.points)
	fixFaceOrientations(t3, m.points)
	fixFaceOrientations(t4, m.points)

	return result
}

func wireFlip44Pair(m *Mesh, resIdx int, srcA Tetrahedron, a1, b1, c1 int, srcB Tetrahedron, a2, b2, c2 int) {
	sfA := getFaceFromVertices(srcA, a1, b1, c1)
	sfB := getFaceFromVertices(srcB, a2, b2, c2)
	rfA := getFaceFromVertices(m.tets[resIdx], a1, b1, c1)
	rfB := getFaceFromVertices(m.tets[resIdx], a2, b2, c2)
	if sfA >= 0 && rfA >= 0 {
		m.tets[resIdx].neighbors[rfA] = srcA.neighbors[sfA]
		adjustNeighborVicinity(m.tets, resIdx, rfA)
	}
	if sfB >= 0 && rfB >= 0 {
		m.tets[resIdx].neighbors[rfB] = srcB.neighbors[sfB]
		adjustNeighborVicinity(m.tets, resIdx, rfB)
	}
}

