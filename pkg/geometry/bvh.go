package geometry

import (
	"fmt"
	"sort"

	"github.com/df07/go-batch-pathtracer/pkg/core"
	"github.com/df07/go-batch-pathtracer/pkg/material"
)

// BVHNode is a node in a binary Bounding Volume Hierarchy. Children are either
// further nodes or the scene's primitives themselves. Right is nil only when the
// node wraps exactly one primitive.
//
// A built tree is never modified and can be shared by any number of goroutines.
type BVHNode struct {
	Left  Primitive
	Right Primitive
	Box   core.AABB
}

// bvhItem caches a primitive's bounding box for the duration of a build
type bvhItem struct {
	primitive Primitive
	box       core.AABB
}

// NewBVH builds a hierarchy over primitives using a surface-area-heuristic
// split along the longest axis of each node's bounds. The input slice is not
// modified.
func NewBVH(primitives []Primitive) (*BVHNode, error) {
	if len(primitives) == 0 {
		return nil, fmt.Errorf("building BVH from zero primitives: %w", core.ErrInvalidInput)
	}

	items := make([]bvhItem, len(primitives))
	for i, primitive := range primitives {
		if primitive == nil {
			return nil, fmt.Errorf("building BVH: primitive %d is nil: %w", i, core.ErrInvalidInput)
		}
		items[i] = bvhItem{primitive: primitive, box: primitive.BoundingBox()}
	}

	return buildBVH(items), nil
}

// buildBVH recursively partitions items. It sorts items in place; sibling
// calls receive disjoint subslices.
func buildBVH(items []bvhItem) *BVHNode {
	if len(items) == 1 {
		return &BVHNode{Left: items[0].primitive, Box: items[0].box}
	}

	bounds := items[0].box
	for _, item := range items[1:] {
		bounds = core.Surrounding(bounds, item.box)
	}

	axis := bounds.LongestAxis()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].box.Min.Axis(axis) < items[j].box.Min.Axis(axis)
	})

	if len(items) == 2 {
		return &BVHNode{
			Left:  items[0].primitive,
			Right: items[1].primitive,
			Box:   bounds,
		}
	}

	split := findSAHSplit(items)
	left := buildBVH(items[:split+1])
	right := buildBVH(items[split+1:])

	return &BVHNode{
		Left:  left,
		Right: right,
		Box:   core.Surrounding(left.Box, right.Box),
	}
}

// findSAHSplit returns the index i such that items[:i+1] and items[i+1:] form
// the cheapest partition of the sorted items, scoring each candidate as
//
//	i * area(items[0..i]) + (n-1-i) * area(items[i+1..n-1])
//
// Prefix and suffix areas come from one forward and one backward pass. The
// first minimum wins.
func findSAHSplit(items []bvhItem) int {
	n := len(items)

	prefixArea := make([]float64, n)
	box := items[0].box
	prefixArea[0] = box.SurfaceArea()
	for i := 1; i < n; i++ {
		box = core.Surrounding(box, items[i].box)
		prefixArea[i] = box.SurfaceArea()
	}

	suffixArea := make([]float64, n)
	box = items[n-1].box
	suffixArea[n-1] = box.SurfaceArea()
	for i := n - 2; i >= 0; i-- {
		box = core.Surrounding(box, items[i].box)
		suffixArea[i] = box.SurfaceArea()
	}

	bestIndex := 0
	bestCost := 0.0
	for i := 0; i < n-1; i++ {
		cost := float64(i)*prefixArea[i] + float64(n-1-i)*suffixArea[i+1]
		if i == 0 || cost < bestCost {
			bestIndex = i
			bestCost = cost
		}
	}

	return bestIndex
}

// Hit returns the nearest intersection below this node. Both children are
// visited once the node's box is hit; the right child is only asked for hits
// closer than the left child's.
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax)
	if hitLeft {
		tMax = leftHit.T
	}

	if n.Right != nil {
		if rightHit, hitRight := n.Right.Hit(ray, tMin, tMax); hitRight {
			return rightHit, true
		}
	}

	return leftHit, hitLeft
}

// BoundingBox returns the union of the children's boxes
func (n *BVHNode) BoundingBox() core.AABB {
	return n.Box
}

// Leaves returns the wrapped primitives in left-to-right tree order
func (n *BVHNode) Leaves() []Primitive {
	var leaves []Primitive
	n.collectLeaves(&leaves)
	return leaves
}

func (n *BVHNode) collectLeaves(leaves *[]Primitive) {
	for _, child := range []Primitive{n.Left, n.Right} {
		switch c := child.(type) {
		case nil:
		case *BVHNode:
			c.collectLeaves(leaves)
		default:
			*leaves = append(*leaves, c)
		}
	}
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int // Number of BVHNodes, including the root
	LeafNodes  int // BVHNodes with no BVHNode children
	Primitives int // Number of leaf primitives
	MaxDepth   int // Depth of the deepest BVHNode; the root has depth 0
}

// Stats walks the tree and collects statistics
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)
	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	leaf := true
	for _, child := range []Primitive{n.Left, n.Right} {
		switch c := child.(type) {
		case nil:
		case *BVHNode:
			leaf = false
			c.collectStats(depth+1, stats)
		default:
			stats.Primitives++
		}
	}
	if leaf {
		stats.LeafNodes++
	}
}
