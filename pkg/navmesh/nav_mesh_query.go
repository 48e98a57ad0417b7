package navmesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// kDegenerateEps scales the barycentric denominator test. Triangles whose XZ
// projection has (relatively) no area never contain a point.
const kDegenerateEps = 1e-12

// IsPointInTriangle reports whether p lies inside triangle tri when both are
// projected onto the XZ plane. Points on an edge or a vertex count as inside.
// The Y coordinate is ignored.
func (m *NavMesh) IsPointInTriangle(p mgl32.Vec3, tri int32) bool {
	if !m.IsValidTriangle(tri) {
		return false
	}
	t := &m.triangles[tri]
	a := m.vertices[t.Verts[0]]
	b := m.vertices[t.Verts[1]]
	c := m.vertices[t.Verts[2]]

	v0x, v0z := float64(c[0])-float64(a[0]), float64(c[2])-float64(a[2])
	v1x, v1z := float64(b[0])-float64(a[0]), float64(b[2])-float64(a[2])
	v2x, v2z := float64(p[0])-float64(a[0]), float64(p[2])-float64(a[2])

	dot00 := v0x*v0x + v0z*v0z
	dot01 := v0x*v1x + v0z*v1z
	dot02 := v0x*v2x + v0z*v2z
	dot11 := v1x*v1x + v1z*v1z
	dot12 := v1x*v2x + v1z*v2z

	denom := dot00*dot11 - dot01*dot01
	if denom <= kDegenerateEps*dot00*dot11 {
		return false
	}
	u := (dot11*dot02 - dot01*dot12) / denom
	v := (dot00*dot12 - dot01*dot02) / denom
	return u >= 0 && v >= 0 && u+v <= 1
}

// FindTriangleContainingPoint returns the lowest index of a triangle containing
// p in the XZ projection, or -1.
func (m *NavMesh) FindTriangleContainingPoint(p mgl32.Vec3) int32 {
	if !isFinitePoint(p) {
		return NoNeighbor
	}
	if m.bvh != nil {
		return m.bvhFindContaining(m.bvh, p, NoNeighbor)
	}
	return m.FindTriangleContainingPointBruteForce(p)
}

func (m *NavMesh) FindTriangleContainingPointBruteForce(p mgl32.Vec3) int32 {
	if !isFinitePoint(p) {
		return NoNeighbor
	}
	for i := range m.triangles {
		if m.IsPointInTriangle(p, int32(i)) {
			return int32(i)
		}
	}
	return NoNeighbor
}

// FindNearestTriangle returns the triangle whose centroid is closest to p in
// 3D, lowest index on ties. It returns -1 for an empty mesh or a point with a
// NaN or infinite coordinate.
func (m *NavMesh) FindNearestTriangle(p mgl32.Vec3) int32 {
	if !isFinitePoint(p) {
		return NoNeighbor
	}
	if m.bvh != nil {
		best, _ := m.bvhFindNearest(m.bvh, p, NoNeighbor, float32(math.Inf(1)))
		return best
	}
	return m.FindNearestTriangleBruteForce(p)
}

func (m *NavMesh) FindNearestTriangleBruteForce(p mgl32.Vec3) int32 {
	if !isFinitePoint(p) {
		return NoNeighbor
	}
	best := NoNeighbor
	bestDist := float32(math.Inf(1))
	for i := range m.triangles {
		d := m.DistanceToTriangle(p, int32(i))
		if best == NoNeighbor || d < bestDist {
			best, bestDist = int32(i), d
		}
	}
	return best
}

// DistanceToTriangle is the 3D distance from p to the centroid of tri, or +Inf
// for an invalid index.
func (m *NavMesh) DistanceToTriangle(p mgl32.Vec3, tri int32) float32 {
	if !m.IsValidTriangle(tri) {
		return float32(math.Inf(1))
	}
	return p.Sub(m.triangles[tri].Center).Len()
}

// Localize maps p onto the mesh: the containing triangle when there is one,
// the nearest triangle otherwise. ok is false for an empty mesh or a
// non-finite point.
func (m *NavMesh) Localize(p mgl32.Vec3) (tri int32, contained bool, ok bool) {
	tri = m.FindTriangleContainingPoint(p)
	if tri != NoNeighbor {
		return tri, true, true
	}
	tri = m.FindNearestTriangle(p)
	return tri, false, tri != NoNeighbor
}

func isFinitePoint(p mgl32.Vec3) bool {
	for _, c := range p {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}
