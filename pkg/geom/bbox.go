package geom

import "github.com/go-gl/mathgl/mgl64"

// BoundingBox is an axis-aligned box, tracked as a min/max corner pair.
// The teacher repo never wrapped this in a type (internal/physics/collision.go
// and internal/graphics/renderables/blocks/frustum.go both inline raw
// min/max mgl32.Vec3 comparisons); here the kd-tree builder and the
// Delaunay containing-tetrahedron step both need the same box repeatedly,
// so it earns a type.
type BoundingBox struct {
	min, max mgl64.Vec3
	empty    bool
}

func NewEmptyBoundingBox() BoundingBox {
	return BoundingBox{empty: true}
}

// Expand grows the box to include p.
func (b *BoundingBox) Expand(p Point) {
	if b.empty {
		b.min = p.v
		b.max = p.v
		b.empty = false
		return
	}
	for i := 0; i < 3; i++ {
		if p.v[i] < b.min[i] {
			b.min[i] = p.v[i]
		}
		if p.v[i] > b.max[i] {
			b.max[i] = p.v[i]
		}
	}
}

// Union returns a box enclosing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if b.empty {
		return o
	}
	if o.empty {
		return b
	}
	out := b
	out.Expand(Point{v: o.min})
	out.Expand(Point{v: o.max})
	return out
}

func (b BoundingBox) Empty() bool { return b.empty }

// Min and Max return the box corners.
func (b BoundingBox) Min() Point { return Point{v: b.min} }
func (b BoundingBox) Max() Point { return Point{v: b.max} }

// AxisMin and AxisMax return the box bound along a single axis (0=x,1=y,2=z).
func (b BoundingBox) AxisMin(axis int) float64 { return b.min[axis] }
func (b BoundingBox) AxisMax(axis int) float64 { return b.max[axis] }

// SetAxisMin and SetAxisMax clamp one axis of the box in place, used to
// carve a child box out of a parent box at a split plane.
func (b *BoundingBox) SetAxisMin(axis int, v float64) { b.min[axis] = v }
func (b *BoundingBox) SetAxisMax(axis int, v float64) { b.max[axis] = v }

// LongestAxis returns the axis (0,1,2) with the largest extent.
func (b BoundingBox) LongestAxis() int {
	ext := b.max.Sub(b.min)
	axis := 0
	longest := ext[0]
	for i := 1; i < 3; i++ {
		if ext[i] > longest {
			longest = ext[i]
			axis = i
		}
	}
	return axis
}

// SurfaceArea returns the total surface area of the box, used as the
// traversal-probability proxy in the SAH cost model.
func (b BoundingBox) SurfaceArea() float64 {
	if b.empty {
		return 0
	}
	ext := b.max.Sub(b.min)
	return 2 * (ext[0]*ext[1] + ext[1]*ext[2] + ext[2]*ext[0])
}

// BoundingSphere returns a sphere (center, radius) enclosing the box.
func (b BoundingBox) BoundingSphere() (Point, float64) {
	if b.empty {
		return Point{}, 0
	}
	center := b.min.Add(b.max).Mul(0.5)
	radius := center.Sub(b.max).Len()
	return Point{v: center}, radius
}

// Overlaps1D reports whether the box's extent along axis overlaps the
// closed interval [lo, hi].
func (b BoundingBox) Overlaps1D(axis int, lo, hi float64) bool {
	return b.min[axis] <= hi && b.max[axis] >= lo
}

// Contains reports whether p lies within the box, inclusive of the
// boundary, within the given tolerance.
func (b BoundingBox) Contains(p Point, eps float64) bool {
	for i := 0; i < 3; i++ {
		if p.v[i] < b.min[i]-eps || p.v[i] > b.max[i]+eps {
			return false
		}
	}
	return true
}
