package delaunay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geokernel/pkg/geom"
)

func TestSameWindingCyclicRotation(t *testing.T) {
	assert.True(t, sameWinding([3]int{1, 2, 3}, [3]int{2, 3, 1}))
	assert.True(t, sameWinding([3]int{1, 2, 3}, [3]int{3, 1, 2}))
	assert.False(t, sameWinding([3]int{1, 2, 3}, [3]int{1, 3, 2}), "a reflection is not a rotation")
	assert.False(t, sameWinding([3]int{1, 2, 3}, [3]int{4, 5, 6}))
}

func TestGetFaceFromVerticesUnorderedMatch(t *testing.T) {
	tet := newInvalidTetrahedron()
	tet.v = [4]int{10, 20, 30, 40}

	f := getFaceFromVertices(tet, 30, 10, 20) // face 0 is (0,1,2) -> (10,20,30), order shouldn't matter
	assert.Equal(t, 0, f)

	assert.Equal(t, -1, getFaceFromVertices(tet, 10, 20, 40+1))
}

func TestGetVertexOutsideFace(t *testing.T) {
	tet := newInvalidTetrahedron()
	tet.v = [4]int{10, 20, 30, 40}

	assert.Equal(t, 40, getVertexOutsideFace(tet, 0)) // face 0 = (0,1,2)
	assert.Equal(t, 30, getVertexOutsideFace(tet, 1)) // face 1 = (0,3,1)
	assert.Equal(t, 10, getVertexOutsideFace(tet, 2)) // face 2 = (1,3,2)
	assert.Equal(t, 20, getVertexOutsideFace(tet, 3)) // face 3 = (2,3,0)
}

func TestMarkInvalidResetsFaceTable(t *testing.T) {
	tet := newInvalidTetrahedron()
	tet.v = [4]int{1, 2, 3, 4}
	tet.neighbors = [4]int{5, 6, 7, 8}
	reverseFace(&tet, 0)

	markInvalid(&tet)

	assert.False(t, tet.IsValid())
	for _, n := range tet.neighbors {
		assert.Equal(t, -1, n)
	}
	assert.Equal(t, canonicalFace, tet.face)
}

func TestFixFaceOrientationsIsIdempotent(t *testing.T) {
	pts := []geom.Point{
		geom.NewPoint(0, 0, 0),
		geom.NewPoint(1, 0, 0),
		geom.NewPoint(0, 1, 0),
		geom.NewPoint(0, 0, 1),
	}
	tet := newInvalidTetrahedron()
	tet.v = [4]int{0, 1, 2, 3}

	fixFaceOrientations(&tet, pts)
	first := tet.face

	fixFaceOrientations(&tet, pts)
	assert.Equal(t, first, tet.face, "a second call must make no further changes")
}

func TestFixFaceOrientationsSkipsFlatTetrahedron(t *testing.T) {
	pts := []geom.Point{
		geom.NewPoint(0, 0, 0),
		geom.NewPoint(1, 0, 0),
		geom.NewPoint(0, 1, 0),
		geom.NewPoint(1, 1, 0), // coplanar with the other three
	}
	tet := newInvalidTetrahedron()
	tet.v = [4]int{0, 1, 2, 3}

	fixFaceOrientations(&tet, pts)
	assert.Equal(t, canonicalFace, tet.face)
}

func TestWalkLocatesContainingTetrahedron(t *testing.T) {
	m := &Mesh{
		points: []geom.Point{
			geom.NewPoint(0, 0, 0),
			geom.NewPoint(1, 0, 0),
			geom.NewPoint(0, 1, 0),
			geom.NewPoint(0, 0, 1),
		},
		tets: []Tetrahedron{newInvalidTetrahedron()},
	}
	m.tets[0].v = [4]int{0, 1, 2, 3}
	fixFaceOrientations(&m.tets[0], m.points)

	m.points = append(m.points, geom.NewPoint(0.1, 0.1, 0.1))
	idx, ok := walk(m, 4, 0)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestWalkFailsOnEmptyMesh(t *testing.T) {
	m := &Mesh{points: []geom.Point{geom.NewPoint(0, 0, 0)}}
	_, ok := walk(m, 0, 0)
	assert.False(t, ok)
}

func TestDestroyClearsNeighborBackPointer(t *testing.T) {
	pts := []geom.Point{
		geom.NewPoint(0, 0, 0),
		geom.NewPoint(1, 0, 0),
		geom.NewPoint(0, 1, 0),
		geom.NewPoint(0, 0, 1),
		geom.NewPoint(1, 1, 1),
	}
	m := &Mesh{points: pts, tets: []Tetrahedron{newInvalidTetrahedron(), newInvalidTetrahedron()}}

	m.tets[0].v = [4]int{0, 1, 2, 3}
	fixFaceOrientations(&m.tets[0], pts)
	m.tets[1].v = [4]int{1, 2, 3, 4}
	fixFaceOrientations(&m.tets[1], pts)

	sf := sharedFace(m.tets[0], m.tets[1], true)
	require.GreaterOrEqual(t, sf, 0)
	m.tets[0].neighbors[sf] = 1
	adjustNeighborVicinity(m.tets, 0, sf)

	require.Equal(t, 0, m.tets[1].neighbors[sharedFace(m.tets[1], m.tets[0], true)])

	destroy(m.tets, 0)
	assert.False(t, m.tets[0].IsValid())
	for _, n := range m.tets[1].neighbors {
		assert.NotEqual(t, 0, n)
	}
}
