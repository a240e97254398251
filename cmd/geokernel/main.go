// Command geokernel is a smoke-test / demo harness: it builds a Delaunay
// tetrahedralization over a small point cloud, builds a kd-tree over one
// triangle, fires a closest-hit query, and prints a
// profiling summary. It exists to exercise both subsystems end to end,
// the way the teacher's cmd/triangle did for its own rendering pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/xlab/closer"

	"geokernel/internal/delaunay"
	"geokernel/internal/kdtree"
	"geokernel/internal/profiling"
	"geokernel/pkg/geom"
)

// triangleSoup is a minimal kdtree.TriangleSoup backed by a flat vertex
// slice and per-triangle corner indices, standing in for the mesh
// accessor the real engine would supply.
type triangleSoup struct {
	verts []geom.Point
	tris  [][3]int
}

func (s *triangleSoup) NumTriangles() int { return len(s.tris) }

func (s *triangleSoup) Vertex(tri, corner int) geom.Point {
	return s.verts[s.tris[tri][corner]]
}

func (s *triangleSoup) NumVertices() int { return len(s.verts) }

func run() error {
	defer profiling.Track("cmd.run")()

	points := []geom.Point{
		geom.NewPoint(0, 0, 0),
		geom.NewPoint(1, 0, 0),
		geom.NewPoint(0, 1, 0),
		geom.NewPoint(0, 0, 1),
		geom.NewPoint(0.25, 0.25, 0.25),
	}

	mesh, ok := delaunay.Tetrahedralize(points, delaunay.Options{})
	if !ok {
		return fmt.Errorf("geokernel: tetrahedralize failed over %d points", len(points))
	}

	live := 0
	for _, t := range mesh.Tetrahedra() {
		if t.IsValid() {
			live++
		}
	}
	fmt.Printf("delaunay: %d live tetrahedra over %d points\n", live, len(points))

	soup := &triangleSoup{
		verts: []geom.Point{
			geom.NewPoint(0, 0, 0),
			geom.NewPoint(1, 0, 0),
			geom.NewPoint(0, 1, 0),
		},
		tris: [][3]int{{0, 1, 2}},
	}

	tree, ok := kdtree.Build(soup, kdtree.DefaultConfig())
	if !ok {
		return fmt.Errorf("geokernel: kdtree build failed over %d triangles", soup.NumTriangles())
	}
	defer tree.Release()

	hit := tree.TraceClosest(kdtree.TraceDesc{
		Origin:      geom.NewPoint(0.25, 0.25, 1),
		Dir:         geom.NewPoint(0, 0, -1).Sub(geom.NewPoint(0, 0, 0)),
		MinT:        0,
		MaxT:        2,
		DoubleSided: true,
	})
	fmt.Printf("kdtree: hit=%v t=%.4f triangle=%d\n", hit.Hit, hit.T, hit.TriangleIndex)

	fmt.Println("profiling:", profiling.TopN(5))
	return nil
}

func main() {
	defer closer.Close()
	closer.Bind(func() {
		fmt.Fprintln(os.Stderr, "geokernel: shutting down")
	})

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
