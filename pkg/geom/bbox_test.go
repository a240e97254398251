package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"geokernel/pkg/geom"
)

func TestBoundingBoxExpandAndAxes(t *testing.T) {
	b := geom.NewEmptyBoundingBox()
	assert.True(t, b.Empty())

	b.Expand(geom.NewPoint(1, -1, 2))
	b.Expand(geom.NewPoint(-3, 4, 0))

	assert.False(t, b.Empty())
	assert.Equal(t, -3.0, b.AxisMin(0))
	assert.Equal(t, 1.0, b.AxisMax(0))
	assert.Equal(t, -1.0, b.AxisMin(1))
	assert.Equal(t, 4.0, b.AxisMax(1))
	assert.Equal(t, 1, b.LongestAxis()) // y extent (5) is the largest
}

func TestBoundingBoxUnion(t *testing.T) {
	a := geom.NewEmptyBoundingBox()
	a.Expand(geom.NewPoint(0, 0, 0))
	a.Expand(geom.NewPoint(1, 1, 1))

	b := geom.NewEmptyBoundingBox()
	b.Expand(geom.NewPoint(2, 2, 2))
	b.Expand(geom.NewPoint(3, 3, 3))

	u := a.Union(b)
	assert.Equal(t, 0.0, u.AxisMin(0))
	assert.Equal(t, 3.0, u.AxisMax(0))
}

func TestBoundingBoxSurfaceAreaAndSphere(t *testing.T) {
	b := geom.NewEmptyBoundingBox()
	b.Expand(geom.NewPoint(0, 0, 0))
	b.Expand(geom.NewPoint(2, 2, 2))

	assert.InDelta(t, 24.0, b.SurfaceArea(), 1e-9) // 6 faces of a 2x2 square each

	center, radius := b.BoundingSphere()
	assert.InDelta(t, 1.0, center.X(), 1e-9)
	assert.InDelta(t, 1.0, center.Y(), 1e-9)
	assert.InDelta(t, 1.0, center.Z(), 1e-9)
	assert.Greater(t, radius, 1.5) // half-diagonal of the cube, > half-edge
}

func TestBoundingBoxOverlaps1D(t *testing.T) {
	b := geom.NewEmptyBoundingBox()
	b.Expand(geom.NewPoint(0, 0, 0))
	b.Expand(geom.NewPoint(1, 1, 1))

	assert.True(t, b.Overlaps1D(0, 0.5, 2.0))
	assert.False(t, b.Overlaps1D(0, 1.5, 2.0))
}

func TestBoundingBoxContains(t *testing.T) {
	b := geom.NewEmptyBoundingBox()
	b.Expand(geom.NewPoint(0, 0, 0))
	b.Expand(geom.NewPoint(1, 1, 1))

	assert.True(t, b.Contains(geom.NewPoint(0.5, 0.5, 0.5), 0))
	assert.False(t, b.Contains(geom.NewPoint(2, 0.5, 0.5), 0))
	assert.True(t, b.Contains(geom.NewPoint(1.005, 0.5, 0.5), 0.01))
}
