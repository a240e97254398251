package kdtree

import (
	"geokernel/internal/profiling"
	"geokernel/pkg/geom"

	"github.com/go-gl/mathgl/mgl64"
)

// traversalMaxDepth bounds the explicit traversal stack. 50 comfortably
// covers any tree built with Config.MaxDepth below 30; the general bound
// is tree depth + 1.
const traversalMaxDepth = 50

// axisEpsilon below this, a ray is treated as parallel to the splitting
// plane rather than dividing by a near-zero direction component.
const axisEpsilon = 1e-9

// TraceDesc describes a closest-hit query: a segment from Origin in
// direction Dir, valid over parametric range [MinT, MaxT]. DoubleSided
// controls which segment-triangle routine is used at the leaves.
type TraceDesc struct {
	Origin       geom.Point
	Dir          mgl64.Vec3
	MinT, MaxT   float64
	DoubleSided  bool
	Epsilon      float64
}

// TraceIsectDesc reports the closest intersection found, if any.
type TraceIsectDesc struct {
	Hit            bool
	T, V, W        float64
	TriangleIndex  int
}

type stackElem struct {
	node       int
	tMin, tMax float64
}

// TraceClosest finds the closest triangle the segment in desc hits,
// within [desc.MinT, desc.MaxT]. Safe to call concurrently from many
// goroutines over the same tree: the traversal stack is local to the
// call.
func (t *Tree) TraceClosest(desc TraceDesc) TraceIsectDesc {
	defer profiling.Track("kdtree.TraceClosest")()

	var result TraceIsectDesc

	tMin, tMax, ok := clipToBounds(t.bounds, desc)
	if !ok {
		return result
	}

	var stack [traversalMaxDepth]stackElem
	sp := 0
	stack[sp] = stackElem{node: t.root, tMin: tMin, tMax: tMax}
	sp++

	for sp > 0 {
		sp--
		elem := stack[sp]
		if elem.tMin > result.T && result.Hit {
			continue
		}

		n := t.pool.at(elem.node)
		if n.isLeaf() {
			t.intersectLeaf(n, desc, elem.tMin, elem.tMax, &result)
			continue
		}

		dirAxis := axisComponent(desc.Dir, n.axis)
		originAxis := axisComponent(desc.Origin.Vec(), n.axis)

		if absf(dirAxis) < axisEpsilon {
			// parallel to the splitting plane: descend whichever side
			// contains the ray origin.
			if originAxis <= n.split {
				sp = pushStack(stack[:], sp, n.left, elem.tMin, elem.tMax)
			} else {
				sp = pushStack(stack[:], sp, n.left+1, elem.tMin, elem.tMax)
			}
			continue
		}

		tSplit := (n.split - originAxis) / dirAxis

		near, far := n.left, n.left+1
		if dirAxis < 0 {
			near, far = far, near
		}

		if tSplit >= elem.tMax || tSplit < 0 {
			sp = pushStack(stack[:], sp, near, elem.tMin, elem.tMax)
		} else if tSplit <= elem.tMin {
			sp = pushStack(stack[:], sp, far, elem.tMin, elem.tMax)
		} else {
			sp = pushStack(stack[:], sp, far, tSplit, elem.tMax)
			sp = pushStack(stack[:], sp, near, elem.tMin, tSplit)
		}
	}

	return result
}

func pushStack(stack []stackElem, sp int, node int, tMin, tMax float64) int {
	if sp >= len(stack) {
		return sp // traversal stack exhausted; drop the far branch rather than overrun
	}
	stack[sp] = stackElem{node: node, tMin: tMin, tMax: tMax}
	return sp + 1
}

func (t *Tree) intersectLeaf(n *node, desc TraceDesc, tMin, tMax float64, result *TraceIsectDesc) {
	eps := desc.Epsilon
	if eps == 0 {
		eps = geom.DefaultDoubleSidedEpsilon
	}
	for _, tri := range n.tris {
		a := t.soup.Vertex(int(tri), 0)
		b := t.soup.Vertex(int(tri), 1)
		c := t.soup.Vertex(int(tri), 2)

		var hit bool
		var tt, v, w float64
		if desc.DoubleSided {
			tt, v, w, hit = geom.SegmentTriangleIntersectDoubleSided(desc.Origin, desc.Dir, desc.MinT, desc.MaxT, a, b, c, eps)
		} else {
			tt, v, w, hit = geom.SegmentTriangleIntersectSingleSided(desc.Origin, desc.Origin.Add(desc.Dir), a, b, c)
		}
		if !hit || tt < tMin || tt > tMax {
			continue
		}
		if !result.Hit || tt < result.T {
			*result = TraceIsectDesc{Hit: true, T: tt, V: v, W: w, TriangleIndex: int(tri)}
		}
	}
}

func clipToBounds(bounds geom.BoundingBox, desc TraceDesc) (float64, float64, bool) {
	tMin, tMax := desc.MinT, desc.MaxT
	origin := desc.Origin.Vec()
	dir := desc.Dir
	for axis := 0; axis < 3; axis++ {
		d := axisComponent(dir, axis)
		o := axisComponent(origin, axis)
		lo, hi := bounds.AxisMin(axis), bounds.AxisMax(axis)
		if absf(d) < axisEpsilon {
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}
		t0 := (lo - o) / d
		t1 := (hi - o) / d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}

func axisComponent(v mgl64.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X()
	case 1:
		return v.Y()
	default:
		return v.Z()
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
