package kdtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geokernel/internal/kdtree"
	"geokernel/pkg/geom"
)

// flatTriangleSoup is a minimal kdtree.TriangleSoup over a flat vertex
// slice plus per-triangle corner indices.
type flatTriangleSoup struct {
	verts []geom.Point
	tris  [][3]int
}

func (s *flatTriangleSoup) NumTriangles() int { return len(s.tris) }

func (s *flatTriangleSoup) Vertex(tri, corner int) geom.Point {
	return s.verts[s.tris[tri][corner]]
}

func (s *flatTriangleSoup) NumVertices() int { return len(s.verts) }

func singleTriangleSoup() *flatTriangleSoup {
	return &flatTriangleSoup{
		verts: []geom.Point{
			geom.NewPoint(0, 0, 0),
			geom.NewPoint(1, 0, 0),
			geom.NewPoint(0, 1, 0),
		},
		tris: [][3]int{{0, 1, 2}},
	}
}

func TestBuildFailsOnEmptySoup(t *testing.T) {
	soup := &flatTriangleSoup{}
	tree, ok := kdtree.Build(soup, kdtree.DefaultConfig())
	assert.False(t, ok)
	require.NotNil(t, tree)
	assert.Equal(t, geom.NewEmptyBoundingBox(), tree.Bounds())
}

// Scenario 5: a single triangle hit from directly above must report t=0.5
// along a segment of length 2, and the right triangle index.
func TestTraceClosestSingleTriangleHit(t *testing.T) {
	soup := singleTriangleSoup()
	tree, ok := kdtree.Build(soup, kdtree.DefaultConfig())
	require.True(t, ok)
	defer tree.Release()

	origin := geom.NewPoint(0.25, 0.25, 1)
	target := geom.NewPoint(0.25, 0.25, -1)
	result := tree.TraceClosest(kdtree.TraceDesc{
		Origin:      origin,
		Dir:         target.Sub(origin),
		MinT:        0,
		MaxT:        1,
		DoubleSided: false,
	})

	require.True(t, result.Hit)
	assert.InDelta(t, 0.5, result.T, 1e-6)
	assert.Equal(t, 0, result.TriangleIndex)
}

// Scenario 6: a ray that misses the triangle entirely must report no hit.
func TestTraceClosestMissedRay(t *testing.T) {
	soup := singleTriangleSoup()
	tree, ok := kdtree.Build(soup, kdtree.DefaultConfig())
	require.True(t, ok)
	defer tree.Release()

	origin := geom.NewPoint(2, 2, 1)
	target := geom.NewPoint(2, 2, -1)
	result := tree.TraceClosest(kdtree.TraceDesc{
		Origin:      origin,
		Dir:         target.Sub(origin),
		MinT:        0,
		MaxT:        1,
		DoubleSided: false,
	})

	assert.False(t, result.Hit)
}

func TestTraceClosestDoubleSidedHitsFromEitherSide(t *testing.T) {
	soup := singleTriangleSoup()
	tree, ok := kdtree.Build(soup, kdtree.DefaultConfig())
	require.True(t, ok)
	defer tree.Release()

	origin := geom.NewPoint(0.25, 0.25, -1)
	result := tree.TraceClosest(kdtree.TraceDesc{
		Origin:      origin,
		Dir:         geom.NewPoint(0, 0, 1).Sub(geom.NewPoint(0, 0, 0)),
		MinT:        0,
		MaxT:        2,
		DoubleSided: true,
	})
	require.True(t, result.Hit)
	assert.InDelta(t, 1.0, result.T, 1e-6)

	origin = geom.NewPoint(0.25, 0.25, 1)
	result = tree.TraceClosest(kdtree.TraceDesc{
		Origin:      origin,
		Dir:         geom.NewPoint(0, 0, -1).Sub(geom.NewPoint(0, 0, 0)),
		MinT:        0,
		MaxT:        2,
		DoubleSided: true,
	})
	require.True(t, result.Hit)
	assert.InDelta(t, 1.0, result.T, 1e-6)
}

// Triangle containment property: every triangle whose AABB overlaps the
// root box must be reachable from a trace that sweeps the whole box.
func TestBuildCoversEveryTriangleBoundingBox(t *testing.T) {
	soup := &flatTriangleSoup{}
	for i := 0; i < 50; i++ {
		base := float64(i)
		soup.verts = append(soup.verts,
			geom.NewPoint(base, 0, 0),
			geom.NewPoint(base+1, 0, 0),
			geom.NewPoint(base, 1, 0),
		)
		soup.tris = append(soup.tris, [3]int{3 * i, 3*i + 1, 3*i + 2})
	}

	tree, ok := kdtree.Build(soup, kdtree.DefaultConfig())
	require.True(t, ok)
	defer tree.Release()

	bounds := tree.Bounds()
	assert.Equal(t, 0.0, bounds.AxisMin(0))
	assert.Equal(t, 50.0, bounds.AxisMax(0))

	for i := 0; i < 50; i++ {
		centroidX := float64(i) + 1.0/3.0
		result := tree.TraceClosest(kdtree.TraceDesc{
			Origin:      geom.NewPoint(centroidX, 0.2, 1),
			Dir:         geom.NewPoint(0, 0, -1).Sub(geom.NewPoint(0, 0, 0)),
			MinT:        0,
			MaxT:        2,
			DoubleSided: true,
		})
		assert.True(t, result.Hit, "triangle %d not reachable from directly above its centroid", i)
	}
}

func TestBuildRejectsDegenerateSingleSidedSplits(t *testing.T) {
	// All triangles share the same location, forcing every candidate
	// split to land every triangle on one side; Build must still return
	// a usable (leaf) tree rather than recursing forever.
	soup := &flatTriangleSoup{
		verts: []geom.Point{
			geom.NewPoint(0, 0, 0),
			geom.NewPoint(1, 0, 0),
			geom.NewPoint(0, 1, 0),
		},
	}
	for i := 0; i < 10; i++ {
		soup.tris = append(soup.tris, [3]int{0, 1, 2})
	}

	cfg := kdtree.DefaultConfig()
	cfg.MinTrisPerLeaf = 1
	tree, ok := kdtree.Build(soup, cfg)
	require.True(t, ok)
	defer tree.Release()

	result := tree.TraceClosest(kdtree.TraceDesc{
		Origin:      geom.NewPoint(0.25, 0.25, 1),
		Dir:         geom.NewPoint(0, 0, -1).Sub(geom.NewPoint(0, 0, 0)),
		MinT:        0,
		MaxT:        2,
		DoubleSided: true,
	})
	assert.True(t, result.Hit)
}
