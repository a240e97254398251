package delaunay

import "geokernel/internal/profiling"

// walk locates the tetrahedron containing point p, starting the search at
// sourceT. At each step it either finds p inside the current tetrahedron,
// or steps across whichever face p lies on the positive side of. If every
// neighbor of the current tetrahedron has already been visited (a dead
// end), the search restarts from any unvisited tetrahedron. Returns false
// if sourceT is out of range, or if every tetrahedron has been visited
// without locating p, which should not happen for a point inside the hull.
func walk(m *Mesh, p int, sourceT int) (int, bool) {
	defer profiling.Track("delaunay.walk")()

	if sourceT < 0 || sourceT >= len(m.tets) {
		return -1, false
	}

	visited := make([]bool, len(m.tets))
	t := sourceT

	for {
		tet := m.tets[t]
		visited[t] = true

		if tet.IsValid() {
			if inside(m.points, p, tet) {
				return t, true
			}

			step := false
			for i := 0; i < 4; i++ {
				n := tet.neighbors[i]
				if n < 0 || visited[n] {
					continue
				}
				a, b, c := tet.GetFaceVertices(i)
				if orient(m.points, a, b, c, p) > 0 {
					t = n
					step = true
					break
				}
			}
			if step {
				continue
			}
		}

		found := false
		for i, v := range visited {
			if !v {
				t = i
				found = true
				break
			}
		}
		if !found {
			return -1, false
		}
	}
}
