package navmesh

import (
	"math/rand"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	kWireframeLift float32 = 0.05
	kPathLift      float32 = 0.1
)

type LineSegment struct {
	From mgl32.Vec3 `json:"from"`
	To   mgl32.Vec3 `json:"to"`
}

// WireframeLines returns three segments per triangle, lifted slightly above
// the surface so a renderer does not z-fight with the level geometry.
func (m *NavMesh) WireframeLines() []LineSegment {
	lift := mgl32.Vec3{0, kWireframeLift, 0}
	lines := make([]LineSegment, 0, len(m.triangles)*3)
	for i := range m.triangles {
		t := &m.triangles[i]
		for edge := 0; edge < 3; edge++ {
			a, b := t.EdgeVerts(edge)
			lines = append(lines, LineSegment{
				From: m.vertices[a].Add(lift),
				To:   m.vertices[b].Add(lift),
			})
		}
	}
	return lines
}

// PathLines joins consecutive waypoints.
func PathLines(path []mgl32.Vec3) []LineSegment {
	if len(path) < 2 {
		return nil
	}
	lift := mgl32.Vec3{0, kPathLift, 0}
	lines := make([]LineSegment, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		lines = append(lines, LineSegment{
			From: path[i-1].Add(lift),
			To:   path[i].Add(lift),
		})
	}
	return lines
}

// RandomCorner picks a vertex on the mesh boundary. Patrolling agents use it
// as a fallback destination.
func (m *NavMesh) RandomCorner(rng *rand.Rand) (mgl32.Vec3, bool) {
	if len(m.corners) == 0 {
		return mgl32.Vec3{}, false
	}
	var i int
	if rng == nil {
		i = rand.Intn(len(m.corners))
	} else {
		i = rng.Intn(len(m.corners))
	}
	return m.vertices[m.corners[i]], true
}

// Corners returns the boundary vertex indices, ascending.
func (m *NavMesh) Corners() []uint32 {
	return slices.Clone(m.corners)
}
