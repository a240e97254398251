package kdtree

import (
	"sort"

	"geokernel/internal/profiling"
	"geokernel/pkg/geom"
)

// Tree is an immutable SAH kd-tree over a TriangleSoup. Build owns its
// node pool; call Release when the tree is no longer needed to reclaim
// the arena in one shot.
type Tree struct {
	cfg    Config
	pool   *pool
	soup   TriangleSoup
	bounds geom.BoundingBox
	root   int

	triBounds []geom.BoundingBox
}

// Bounds returns the root AABB, enclosing every triangle's own AABB.
func (t *Tree) Bounds() geom.BoundingBox { return t.bounds }

// Release frees the tree's node arena. The Tree must not be used
// afterward.
func (t *Tree) Release() { t.pool.releaseAll() }

// Build constructs a kd-tree over every triangle in soup. Returns false
// with an empty tree if soup has zero triangles.
func Build(soup TriangleSoup, cfg Config) (*Tree, bool) {
	defer profiling.Track("kdtree.Build")()

	n := soup.NumTriangles()
	if n == 0 {
		return &Tree{cfg: cfg, pool: newPool(256), soup: soup, bounds: geom.NewEmptyBoundingBox()}, false
	}

	triBounds := make([]geom.BoundingBox, n)
	rootBounds := geom.NewEmptyBoundingBox()
	for i := 0; i < n; i++ {
		triBounds[i] = triangleBounds(soup, i)
		rootBounds = rootBounds.Union(triBounds[i])
	}

	t := &Tree{
		cfg:       cfg,
		pool:      newPool(256),
		soup:      soup,
		bounds:    rootBounds,
		triBounds: triBounds,
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	t.root = t.pool.allocOne()
	t.buildRecursive(t.root, indices, 0, rootBounds)

	return t, true
}

func (t *Tree) buildRecursive(nodeIdx int, indices []int, depth int, bounds geom.BoundingBox) {
	n := t.pool.at(nodeIdx)

	if depth >= t.cfg.MaxDepth || len(indices) <= t.cfg.MinTrisPerLeaf {
		t.makeLeaf(n, indices)
		return
	}

	axis := bounds.LongestAxis()

	var splitPos float64
	var ok bool
	if len(indices) < t.cfg.HeuristicSwitchThreshold {
		splitPos, ok = t.findSplitterSAH(indices, axis, bounds)
	} else {
		splitPos, ok = t.findSplitterMedian(indices, axis)
	}
	if !ok {
		t.makeLeaf(n, indices)
		return
	}

	var left, right []int
	for _, tri := range indices {
		b := t.triBounds[tri]
		if b.AxisMin(axis) <= splitPos {
			left = append(left, tri)
		}
		if b.AxisMax(axis) >= splitPos {
			right = append(right, tri)
		}
	}

	// a degenerate split (everything landed on one side) cannot reduce
	// the problem; fall back to a leaf rather than recursing forever.
	if len(left) == len(indices) || len(right) == len(indices) {
		t.makeLeaf(n, indices)
		return
	}

	leftBox, rightBox := splitBounds(bounds, axis, splitPos)
	cost := sahCost(t.cfg, bounds, leftBox, rightBox, len(left), len(right))
	if cost >= float64(len(indices))*t.cfg.CostIntersect {
		t.makeLeaf(n, indices)
		return
	}

	pairIdx := t.pool.allocPair()
	n = t.pool.at(nodeIdx) // re-fetch: allocPair may have grown the chunk slice
	n.axis = axis
	n.split = splitPos
	n.left = pairIdx

	t.buildRecursive(pairIdx, left, depth+1, leftBox)
	t.buildRecursive(pairIdx+1, right, depth+1, rightBox)
}

func (t *Tree) makeLeaf(n *node, indices []int) {
	n.left = -1
	if len(indices) == 0 {
		n.tris = nil
		return
	}
	n.tris = make([]int32, len(indices))
	for i, idx := range indices {
		n.tris[i] = int32(idx)
	}
}

// sahCost evaluates the surface-area-heuristic cost of a candidate split,
// applying the empty-side discount multiplicatively when one side has no
// triangles.
func sahCost(cfg Config, parent, left, right geom.BoundingBox, nLeft, nRight int) float64 {
	parentArea := parent.SurfaceArea()
	if parentArea <= 0 {
		return 0
	}
	pLeft := left.SurfaceArea() / parentArea
	pRight := right.SurfaceArea() / parentArea
	cost := cfg.CostTraverse + (pLeft*float64(nLeft)+pRight*float64(nRight))*cfg.CostIntersect
	if nLeft == 0 || nRight == 0 {
		cost *= 1 - cfg.EmptyBonus
	}
	return cost
}

// splitBounds returns the two half-boxes of bounds cut at position along
// axis.
func splitBounds(bounds geom.BoundingBox, axis int, position float64) (geom.BoundingBox, geom.BoundingBox) {
	left := bounds
	right := bounds
	left.SetAxisMax(axis, position)
	right.SetAxisMin(axis, position)
	return left, right
}

// findSplitterSAH evaluates every unique triangle-AABB boundary plane
// along axis and returns the one with the lowest SAH cost.
func (t *Tree) findSplitterSAH(indices []int, axis int, bounds geom.BoundingBox) (float64, bool) {
	candidates := make([]float64, 0, 2*len(indices))
	for _, tri := range indices {
		b := t.triBounds[tri]
		candidates = append(candidates, b.AxisMin(axis), b.AxisMax(axis))
	}
	sort.Float64s(candidates)
	candidates = dedupSorted(candidates)

	bestCost := -1.0
	bestPos := 0.0
	found := false

	for _, pos := range candidates {
		if pos <= bounds.AxisMin(axis) || pos >= bounds.AxisMax(axis) {
			continue
		}
		var nLeft, nRight int
		for _, tri := range indices {
			b := t.triBounds[tri]
			if b.AxisMin(axis) <= pos {
				nLeft++
			}
			if b.AxisMax(axis) >= pos {
				nRight++
			}
		}
		leftBox, rightBox := splitBounds(bounds, axis, pos)
		cost := sahCost(t.cfg, bounds, leftBox, rightBox, nLeft, nRight)
		if !found || cost < bestCost {
			bestCost = cost
			bestPos = pos
			found = true
		}
	}

	return bestPos, found
}

// findSplitterMedian returns the median of the triangles' centroid
// projections on axis, used above the heuristic-switch threshold where
// evaluating every SAH candidate would be too costly.
func (t *Tree) findSplitterMedian(indices []int, axis int) (float64, bool) {
	if len(indices) == 0 {
		return 0, false
	}
	positions := make([]float64, len(indices))
	for i, tri := range indices {
		c := triangleCentroid(t.soup, tri)
		positions[i] = axisValue(c, axis)
	}
	sort.Float64s(positions)
	return positions[len(positions)/2], true
}

func dedupSorted(vs []float64) []float64 {
	if len(vs) == 0 {
		return vs
	}
	out := vs[:1]
	for _, v := range vs[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func axisValue(p geom.Point, axis int) float64 {
	switch axis {
	case 0:
		return p.X()
	case 1:
		return p.Y()
	default:
		return p.Z()
	}
}
