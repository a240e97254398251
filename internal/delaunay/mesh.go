package delaunay

import (
	"geokernel/internal/profiling"
	"geokernel/pkg/geom"
)

// Mesh is the exclusively-owned, monotonically growing tetrahedron array
// plus the point set it references. Indices are stable for the mesh's
// lifetime: destroyed slots stay in place (v[0] == -1) rather than being
// compacted, so that surviving neighbors never need renumbering.
type Mesh struct {
	points []geom.Point
	tets   []Tetrahedron
}

// Points returns the full point set, including any bounding-tetrahedron
// corners appended during construction.
func (m *Mesh) Points() []geom.Point { return m.points }

// Tetrahedra returns the dense tetrahedron array, including invalid
// slots; callers filter on Tetrahedron.IsValid.
func (m *Mesh) Tetrahedra() []Tetrahedron { return m.tets }

func (m *Mesh) append() int {
	m.tets = append(m.tets, newInvalidTetrahedron())
	return len(m.tets) - 1
}

// Options configures Tetrahedralize.
type Options struct {
	// KeepBoundingTetrahedron retains the four auxiliary corner points
	// and every tetrahedron referencing them in the output, instead of
	// destroying them once all user points are inserted.
	KeepBoundingTetrahedron bool
}

// Tetrahedralize builds an incremental Delaunay tetrahedralization of
// points. It succeeds iff at least one point is supplied and walk never
// dead-ends with no unvisited tetrahedron left to restart from.
func Tetrahedralize(points []geom.Point, opts Options) (*Mesh, bool) {
	defer profiling.Track("delaunay.Tetrahedralize")()

	if len(points) == 0 {
		return nil, false
	}

	bounds := geom.NewEmptyBoundingBox()
	for _, p := range points {
		bounds.Expand(p)
	}
	center, radius := bounds.BoundingSphere()
	radius *= 2 // avoid a too-tight bound: the containing tetrahedron's faces must wrap every point
	if len(points) < 2 {
		radius = 1.0
	}

	m := &Mesh{
		points: append([]geom.Point(nil), points...),
	}
	numSrcPoints := len(points)

	bigTIdx := m.append()
	bigT := containingTetrahedron(center, radius, &m.points)
	m.tets[bigTIdx] = bigT
	fixFaceOrientations(&m.tets[bigTIdx], m.points)

	ok := true
	for i := 0; i < numSrcPoints; i++ {
		if !insertOnePoint(m, i) {
			ok = false
			break
		}
	}

	if ok && !opts.KeepBoundingTetrahedron {
		for i := range m.tets {
			t := &m.tets[i]
			if !t.IsValid() {
				continue
			}
			for _, vi := range t.v {
				if vi >= numSrcPoints {
					destroy(m.tets, i)
					break
				}
			}
		}
	}

	return m, ok
}
