package navmesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Triangle is one walkable face of the mesh.
//
// Edges follow the opposite-vertex convention: edge k joins the two vertices
// other than Verts[k], so edge 0 is v1-v2, edge 1 is v2-v0 and edge 2 is v0-v1.
// Neighbors[k] is the triangle across edge k, or NoNeighbor.
type Triangle struct {
	Verts     [3]uint32
	Neighbors [3]int32
	Cost      float32
	Flags     uint32

	// Derived by ComputeDerivedData.
	Center mgl32.Vec3
	Area   float32
}

func newTriangle(verts [3]uint32) Triangle {
	return Triangle{
		Verts:     verts,
		Neighbors: [3]int32{NoNeighbor, NoNeighbor, NoNeighbor},
		Cost:      kDefaultTriangleCost,
	}
}

// EdgeVerts returns the two vertex indices of edge k.
func (t *Triangle) EdgeVerts(edge int) (uint32, uint32) {
	return t.Verts[(edge+1)%3], t.Verts[(edge+2)%3]
}

func (t *Triangle) HasVertex(v uint32) bool {
	return t.Verts[0] == v || t.Verts[1] == v || t.Verts[2] == v
}

// HasEdge reports whether any edge joins a and b, in either order.
func (t *Triangle) HasEdge(a, b uint32) bool {
	return t.EdgeForVertices(a, b) >= 0
}

// EdgeForVertices returns the edge index joining a and b, or -1.
func (t *Triangle) EdgeForVertices(a, b uint32) int {
	for edge := 0; edge < 3; edge++ {
		v0, v1 := t.EdgeVerts(edge)
		if (v0 == a && v1 == b) || (v0 == b && v1 == a) {
			return edge
		}
	}
	return -1
}

// NeighborEdge returns the edge of t whose neighbor is tri, or -1.
func (t *Triangle) NeighborEdge(tri int32) int {
	for edge, n := range t.Neighbors {
		if n == tri {
			return edge
		}
	}
	return -1
}
