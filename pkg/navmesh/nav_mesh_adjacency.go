package navmesh

import (
	"fmt"
)

type edgeKey struct {
	a, b uint32
}

func makeEdgeKey(a, b uint32) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// ComputeAdjacency fills Neighbors of every triangle from shared edges.
//
// Two triangles are neighbors across an edge when both contain its two vertex
// indices, in either order. When more than two triangles share an edge the
// lowest-index other triangle wins, matching ComputeAdjacencyBruteForce.
func ComputeAdjacency(triangles []Triangle) {
	edges := make(map[edgeKey][]int32, len(triangles)*3/2+1)
	for i := range triangles {
		t := &triangles[i]
		for edge := 0; edge < 3; edge++ {
			key := makeEdgeKey(t.EdgeVerts(edge))
			owners := edges[key]
			// a triangle naming the same edge twice is degenerate, count it once
			if len(owners) != 0 && owners[len(owners)-1] == int32(i) {
				continue
			}
			edges[key] = append(owners, int32(i))
		}
	}
	for i := range triangles {
		t := &triangles[i]
		for edge := 0; edge < 3; edge++ {
			t.Neighbors[edge] = NoNeighbor
			// owners are ascending, so the first other index is the lowest
			for _, other := range edges[makeEdgeKey(t.EdgeVerts(edge))] {
				if other != int32(i) {
					t.Neighbors[edge] = other
					break
				}
			}
		}
	}
}

// ComputeAdjacencyBruteForce is the quadratic reference scan. It produces the
// same output as ComputeAdjacency and is kept for tests and tiny meshes.
func ComputeAdjacencyBruteForce(triangles []Triangle) {
	for i := range triangles {
		t := &triangles[i]
		for edge := 0; edge < 3; edge++ {
			t.Neighbors[edge] = NoNeighbor
			a, b := t.EdgeVerts(edge)
			for j := range triangles {
				if j == i {
					continue
				}
				if triangles[j].HasEdge(a, b) {
					t.Neighbors[edge] = int32(j)
					break
				}
			}
		}
	}
}

// CheckManifold returns ErrNonManifold when an edge is shared by more than two
// triangles.
func CheckManifold(triangles []Triangle) error {
	count := make(map[edgeKey]int32, len(triangles)*3/2+1)
	last := make(map[edgeKey]int32, len(triangles)*3/2+1)
	for i := range triangles {
		t := &triangles[i]
		for edge := 0; edge < 3; edge++ {
			a, b := t.EdgeVerts(edge)
			key := makeEdgeKey(a, b)
			if prev, ok := last[key]; ok && prev == int32(i) {
				continue
			}
			last[key] = int32(i)
			count[key]++
			if count[key] > 2 {
				return fmt.Errorf("%w: edge %d-%d, third owner triangle %d", ErrNonManifold, a, b, i)
			}
		}
	}
	return nil
}
