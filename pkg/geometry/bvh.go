package geometry

import (
	"github.com/jmseaton/pathtracer/pkg/core"
)

// bvhNode is a node in the bounding volume hierarchy. Leaves reference a
// contiguous range of the shape array; interior nodes reference two children
// by index. All nodes live in a single arena slice for cache locality.
type bvhNode struct {
	bounds core.AABB
	left   int32 // index of left child, -1 for leaves
	right  int32 // index of right child, -1 for leaves
	start  int32 // first shape index for leaves
	count  int32 // number of shapes for leaves, 0 for interior nodes
}

// BVH is a bounding volume hierarchy for fast ray-shape intersection.
// It is built once before rendering and is read-only afterwards, so any
// number of workers may traverse it concurrently.
type BVH struct {
	nodes  []bvhNode
	shapes []core.Shape // permuted into tree order during build
	Center core.Vec3    // Finite scene center, used by infinite lights
	Radius float64      // Finite scene radius, used by infinite lights
}

// Leaf threshold: ranges with this many or fewer shapes become leaf nodes
const leafThreshold = 4

// NewBVH constructs a BVH from a slice of shapes. The input slice is not
// modified; the build permutes its own copy.
func NewBVH(shapes []core.Shape) *BVH {
	bvh := &BVH{
		shapes: make([]core.Shape, len(shapes)),
		Center: core.Vec3{},
		Radius: 100.0, // empty scene fallback
	}
	copy(bvh.shapes, shapes)

	if len(shapes) == 0 {
		return bvh
	}

	// Reserve a reasonable arena up front; a median-split tree has at most
	// 2n-1 nodes.
	bvh.nodes = make([]bvhNode, 0, 2*len(shapes))
	bvh.build(0, int32(len(bvh.shapes)))

	rootBounds := bvh.nodes[0].bounds
	bvh.Center = rootBounds.Center()
	bvh.Radius = rootBounds.Max.Subtract(bvh.Center).Length()

	return bvh
}

// build creates the node for the shape range [start, end) and returns its
// arena index.
func (b *BVH) build(start, end int32) int32 {
	bounds := b.shapes[start].BoundingBox()
	for i := start + 1; i < end; i++ {
		bounds = bounds.Union(b.shapes[i].BoundingBox())
	}

	nodeIndex := int32(len(b.nodes))
	count := end - start

	if count <= leafThreshold {
		b.nodes = append(b.nodes, bvhNode{
			bounds: bounds,
			left:   -1,
			right:  -1,
			start:  start,
			count:  count,
		})
		return nodeIndex
	}

	// Median split along the longest axis of the combined bounds
	axis := bounds.LongestAxis()
	splitPos := axisValue(bounds.Center(), axis)
	mid := b.partition(start, end, axis, splitPos)

	// Lopsided split (all centers on one side): fall back to an equal split
	// so depth stays logarithmic
	if mid == start || mid == end {
		mid = start + count/2
	}

	// Reserve our slot before recursing so children land after us
	b.nodes = append(b.nodes, bvhNode{bounds: bounds, left: -1, right: -1})
	left := b.build(start, mid)
	right := b.build(mid, end)
	b.nodes[nodeIndex].left = left
	b.nodes[nodeIndex].right = right

	return nodeIndex
}

// partition reorders shapes in [start, end) so those with bounding box
// centers below splitPos on the given axis come first; returns the boundary.
func (b *BVH) partition(start, end int32, axis int, splitPos float64) int32 {
	mid := start
	for i := start; i < end; i++ {
		if axisValue(b.shapes[i].BoundingBox().Center(), axis) < splitPos {
			b.shapes[i], b.shapes[mid] = b.shapes[mid], b.shapes[i]
			mid++
		}
	}
	return mid
}

func axisValue(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// stackEntry is a deferred subtree visit during traversal
type stackEntry struct {
	node  int32
	entry float64 // ray's entry distance into the node's bounds
}

// Hit returns the nearest intersection in [tMin, tMax), or false if the ray
// hits nothing. An empty BVH always misses.
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if len(b.nodes) == 0 {
		return nil, false
	}

	var closest *core.HitRecord
	closestT := tMax

	// Iterative traversal, visiting the nearer child first. A subtree is
	// pruned when its entry distance is beyond the closest hit found so far;
	// the visit order makes that pruning correct, not just faster.
	stack := make([]stackEntry, 0, 64)

	rootHit, rootEntry := b.nodes[0].bounds.HitWithEntry(ray, tMin, closestT)
	if !rootHit {
		return nil, false
	}
	stack = append(stack, stackEntry{node: 0, entry: rootEntry})

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.entry >= closestT {
			continue
		}

		node := &b.nodes[top.node]
		if node.count > 0 {
			for i := node.start; i < node.start+node.count; i++ {
				if hit, ok := b.shapes[i].Hit(ray, tMin, closestT); ok {
					closest = hit
					closestT = hit.T
				}
			}
			continue
		}

		leftHit, leftEntry := b.nodes[node.left].bounds.HitWithEntry(ray, tMin, closestT)
		rightHit, rightEntry := b.nodes[node.right].bounds.HitWithEntry(ray, tMin, closestT)

		switch {
		case leftHit && rightHit:
			// Push the farther child first so the nearer one pops first
			if leftEntry <= rightEntry {
				stack = append(stack, stackEntry{node: node.right, entry: rightEntry})
				stack = append(stack, stackEntry{node: node.left, entry: leftEntry})
			} else {
				stack = append(stack, stackEntry{node: node.left, entry: leftEntry})
				stack = append(stack, stackEntry{node: node.right, entry: rightEntry})
			}
		case leftHit:
			stack = append(stack, stackEntry{node: node.left, entry: leftEntry})
		case rightHit:
			stack = append(stack, stackEntry{node: node.right, entry: rightEntry})
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the overall bounding box of the BVH
func (b *BVH) BoundingBox() core.AABB {
	if len(b.nodes) == 0 {
		return core.AABB{}
	}
	return b.nodes[0].bounds
}

// bvhStats describes the tree structure, used by tests
type bvhStats struct {
	totalNodes int
	leafNodes  int
}

func (b *BVH) getStats() bvhStats {
	stats := bvhStats{totalNodes: len(b.nodes)}
	for i := range b.nodes {
		if b.nodes[i].count > 0 {
			stats.leafNodes++
		}
	}
	return stats
}
