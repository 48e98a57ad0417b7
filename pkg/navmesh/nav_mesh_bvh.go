package navmesh

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// bvhNode is one node of the bounding volume hierarchy over triangle indices.
// Internal nodes have two children, leaves carry up to maxTrianglesPerLeaf
// triangles.
type bvhNode struct {
	// XZ bounds of the triangle vertices, padded by bvhContainPad. Used to
	// prune containment queries.
	xzMin, xzMax [2]float32

	// bounds of the triangle centroids. Used as the lower bound of nearest
	// queries, which measure distance to centroids.
	cMin, cMax mgl32.Vec3

	left, right *bvhNode
	tris        []int32
}

const (
	maxTrianglesPerLeaf = 4
	bvhContainPad       = 1e-3
)

func buildBVH(m *NavMesh) *bvhNode {
	if len(m.triangles) == 0 {
		return nil
	}
	tris := make([]int32, len(m.triangles))
	for i := range tris {
		tris[i] = int32(i)
	}
	return buildBVHNode(m, tris)
}

func buildBVHNode(m *NavMesh, tris []int32) *bvhNode {
	node := &bvhNode{}
	inf := float32(math.Inf(1))
	node.xzMin = [2]float32{inf, inf}
	node.xzMax = [2]float32{-inf, -inf}
	node.cMin = mgl32.Vec3{inf, inf, inf}
	node.cMax = mgl32.Vec3{-inf, -inf, -inf}
	for _, tri := range tris {
		t := &m.triangles[tri]
		for _, vi := range t.Verts {
			v := m.vertices[vi]
			node.xzMin[0] = min(node.xzMin[0], v[0])
			node.xzMin[1] = min(node.xzMin[1], v[2])
			node.xzMax[0] = max(node.xzMax[0], v[0])
			node.xzMax[1] = max(node.xzMax[1], v[2])
		}
		node.cMin = vmin(node.cMin, t.Center)
		node.cMax = vmax(node.cMax, t.Center)
	}
	node.xzMin[0] -= bvhContainPad
	node.xzMin[1] -= bvhContainPad
	node.xzMax[0] += bvhContainPad
	node.xzMax[1] += bvhContainPad

	if len(tris) <= maxTrianglesPerLeaf {
		node.tris = tris
		return node
	}

	// split at the median centroid along the longest centroid axis
	extent := node.cMax.Sub(node.cMin)
	axis := 0
	if extent[1] > extent[0] && extent[1] > extent[2] {
		axis = 1
	} else if extent[2] > extent[0] && extent[2] > extent[1] {
		axis = 2
	}
	sort.Slice(tris, func(i, j int) bool {
		ci := m.triangles[tris[i]].Center[axis]
		cj := m.triangles[tris[j]].Center[axis]
		if ci != cj {
			return ci < cj
		}
		return tris[i] < tris[j]
	})
	mid := len(tris) / 2
	node.left = buildBVHNode(m, tris[:mid])
	node.right = buildBVHNode(m, tris[mid:])
	return node
}

func (n *bvhNode) containsXZ(p mgl32.Vec3) bool {
	return p[0] >= n.xzMin[0] && p[0] <= n.xzMax[0] &&
		p[2] >= n.xzMin[1] && p[2] <= n.xzMax[1]
}

// centroidBoundDistance is never larger than the distance from p to any
// centroid inside the node.
func (n *bvhNode) centroidBoundDistance(p mgl32.Vec3) float32 {
	var d mgl32.Vec3
	for i := 0; i < 3; i++ {
		if p[i] < n.cMin[i] {
			d[i] = n.cMin[i] - p[i]
		} else if p[i] > n.cMax[i] {
			d[i] = p[i] - n.cMax[i]
		}
	}
	return d.Len()
}

func (m *NavMesh) bvhFindContaining(n *bvhNode, p mgl32.Vec3, best int32) int32 {
	if n == nil || !n.containsXZ(p) {
		return best
	}
	if n.tris != nil {
		for _, tri := range n.tris {
			if (best == NoNeighbor || tri < best) && m.IsPointInTriangle(p, tri) {
				best = tri
			}
		}
		return best
	}
	best = m.bvhFindContaining(n.left, p, best)
	return m.bvhFindContaining(n.right, p, best)
}

func (m *NavMesh) bvhFindNearest(n *bvhNode, p mgl32.Vec3, best int32, bestDist float32) (int32, float32) {
	if n == nil {
		return best, bestDist
	}
	// equal bounds are still visited so ties resolve to the lowest index
	if best != NoNeighbor && n.centroidBoundDistance(p) > bestDist {
		return best, bestDist
	}
	if n.tris != nil {
		for _, tri := range n.tris {
			d := m.DistanceToTriangle(p, tri)
			if best == NoNeighbor || d < bestDist || (d == bestDist && tri < best) {
				best, bestDist = tri, d
			}
		}
		return best, bestDist
	}
	first, second := n.left, n.right
	if second.centroidBoundDistance(p) < first.centroidBoundDistance(p) {
		first, second = second, first
	}
	best, bestDist = m.bvhFindNearest(first, p, best, bestDist)
	return m.bvhFindNearest(second, p, best, bestDist)
}
