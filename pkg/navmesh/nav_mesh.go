package navmesh

import (
	"fmt"
	"math"
	"sort"

	"navsvr/pkg/navmesh/format"

	"github.com/go-gl/mathgl/mgl32"
)

// A NavMesh is an immutable triangulated walkable surface.
//
// It is built once when a level loads and only read afterwards, so any number
// of goroutines may query it at the same time. Search state lives in
// NavMeshQuery, never here.
type NavMesh struct {
	name      string
	version   float32
	transform mgl32.Mat4

	vertices  []mgl32.Vec3
	triangles []Triangle

	// vertices lying on at least one boundary edge, ascending
	corners []uint32

	// smallest triangle cost, never above 1
	minCost float32

	bvh *bvhNode
}

// NavMeshCreateParams carries the raw geometry handed over by an asset loader.
type NavMeshCreateParams struct {
	Name      string
	Version   float32
	Transform mgl32.Mat4

	Vertices []mgl32.Vec3
	Indices  [][3]uint32

	// Neighbors, when non-nil, must have one entry per triangle. When nil the
	// adjacency is derived from shared edges.
	Neighbors [][3]int32

	// Optional per-triangle overrides, indexed like Indices. Missing entries
	// keep the defaults (cost 1, no flags). Costs must be finite and positive.
	Costs []float32
	Flags []uint32

	Settings NavMeshBuildSettings
}

// NewNavMesh validates params, fills adjacency when it is absent, computes the
// derived centroid and area data and builds the spatial index.
func NewNavMesh(params *NavMeshCreateParams) (*NavMesh, error) {
	if params == nil {
		return nil, ErrInvalidParam
	}
	m := &NavMesh{
		name:      params.Name,
		version:   params.Version,
		transform: params.Transform,
		vertices:  make([]mgl32.Vec3, len(params.Vertices)),
		triangles: make([]Triangle, len(params.Indices)),
		minCost:   kDefaultTriangleCost,
	}
	copy(m.vertices, params.Vertices)

	for i, idx := range params.Indices {
		for k, v := range idx {
			if int(v) >= len(m.vertices) {
				return nil, fmt.Errorf("%w: triangle %d vertex %d references vertex %d of %d: %w",
					ErrInvalidMesh, i, k, v, len(m.vertices), ErrInvalidIndex)
			}
		}
		m.triangles[i] = newTriangle(idx)
		if i < len(params.Costs) {
			cost := params.Costs[i]
			if !(cost > 0) || math.IsInf(float64(cost), 1) {
				return nil, fmt.Errorf("%w: triangle %d cost %v", ErrInvalidMesh, i, cost)
			}
			m.triangles[i].Cost = cost
			m.minCost = min(m.minCost, cost)
		}
		if i < len(params.Flags) {
			m.triangles[i].Flags = params.Flags[i]
		}
	}

	if params.Settings.RejectNonManifold {
		if err := CheckManifold(m.triangles); err != nil {
			return nil, err
		}
	}

	if params.Neighbors == nil {
		ComputeAdjacency(m.triangles)
	} else {
		if len(params.Neighbors) != len(m.triangles) {
			return nil, fmt.Errorf("%w: %d adjacency rows for %d triangles",
				ErrInvalidMesh, len(params.Neighbors), len(m.triangles))
		}
		for i, nei := range params.Neighbors {
			for k, n := range nei {
				if n != NoNeighbor && (n < 0 || int(n) >= len(m.triangles)) {
					return nil, fmt.Errorf("%w: triangle %d edge %d neighbor %d of %d: %w",
						ErrInvalidMesh, i, k, n, len(m.triangles), ErrInvalidIndex)
				}
			}
			m.triangles[i].Neighbors = nei
		}
	}

	m.ComputeDerivedData()
	m.corners = boundaryVertices(m.triangles)
	if params.Settings.SpatialIndex {
		m.bvh = buildBVH(m)
	}
	return m, nil
}

// NewNavMeshFromFormat builds a mesh from loader output.
func NewNavMeshFromFormat(data *format.NavMeshData, settings NavMeshBuildSettings) (*NavMesh, error) {
	if data == nil {
		return nil, ErrInvalidParam
	}
	params := &NavMeshCreateParams{
		Name:      data.Name,
		Version:   data.Version,
		Transform: data.Transform,
		Vertices:  data.Vertices,
		Indices:   data.Triangles,
		Neighbors: data.Neighbors,
		Settings:  settings,
	}
	if len(data.Metadata) != 0 {
		params.Costs = make([]float32, len(data.Triangles))
		params.Flags = make([]uint32, len(data.Triangles))
		for i := range params.Costs {
			params.Costs[i] = kDefaultTriangleCost
		}
		for _, meta := range data.Metadata {
			if meta.Index < 0 || int(meta.Index) >= len(data.Triangles) {
				return nil, fmt.Errorf("%w: metadata for triangle %d of %d: %w",
					ErrInvalidMesh, meta.Index, len(data.Triangles), ErrInvalidIndex)
			}
			params.Costs[meta.Index] = meta.Cost
			params.Flags[meta.Index] = meta.Flags
		}
	}
	return NewNavMesh(params)
}

// ToFormat exports the mesh, including its adjacency, for writing back to an
// asset or a bake store.
func (m *NavMesh) ToFormat() *format.NavMeshData {
	data := &format.NavMeshData{
		Name:         m.name,
		Version:      m.version,
		Transform:    m.transform,
		HasTransform: m.transform != mgl32.Ident4(),
		Vertices:     make([]mgl32.Vec3, len(m.vertices)),
		Triangles:    make([][3]uint32, len(m.triangles)),
		Neighbors:    make([][3]int32, len(m.triangles)),
	}
	copy(data.Vertices, m.vertices)
	for i := range m.triangles {
		t := &m.triangles[i]
		data.Triangles[i] = t.Verts
		data.Neighbors[i] = t.Neighbors
		if t.Cost != kDefaultTriangleCost || t.Flags != 0 {
			data.Metadata = append(data.Metadata, format.TriangleMetadata{
				Index: int32(i),
				Cost:  t.Cost,
				Flags: t.Flags,
			})
		}
	}
	return data
}

// ComputeDerivedData sets the centroid and area of every triangle from its
// vertices. NewNavMesh calls it; calling it again yields the same values.
func (m *NavMesh) ComputeDerivedData() {
	for i := range m.triangles {
		t := &m.triangles[i]
		v0 := m.vertices[t.Verts[0]]
		v1 := m.vertices[t.Verts[1]]
		v2 := m.vertices[t.Verts[2]]
		t.Center = v0.Add(v1).Add(v2).Mul(1.0 / 3.0)
		t.Area = v1.Sub(v0).Cross(v2.Sub(v0)).Len() * 0.5
	}
}

func (m *NavMesh) Name() string {
	return m.name
}

func (m *NavMesh) Version() float32 {
	return m.version
}

// Transform returns the asset transform. It is informational only.
func (m *NavMesh) Transform() mgl32.Mat4 {
	return m.transform
}

func (m *NavMesh) VertexCount() int {
	return len(m.vertices)
}

func (m *NavMesh) TriangleCount() int {
	return len(m.triangles)
}

// MinTraversalCost returns the smallest triangle cost, or 1 when every
// triangle costs at least 1.
func (m *NavMesh) MinTraversalCost() float32 {
	return m.minCost
}

func (m *NavMesh) HasSpatialIndex() bool {
	return m.bvh != nil
}

func (m *NavMesh) IsValidTriangle(tri int32) bool {
	return tri >= 0 && int(tri) < len(m.triangles)
}

func (m *NavMesh) Vertex(index int32) (mgl32.Vec3, error) {
	if index < 0 || int(index) >= len(m.vertices) {
		return mgl32.Vec3{}, fmt.Errorf("%w: vertex %d of %d", ErrInvalidIndex, index, len(m.vertices))
	}
	return m.vertices[index], nil
}

// Triangle returns a copy of triangle tri.
func (m *NavMesh) Triangle(tri int32) (Triangle, error) {
	if !m.IsValidTriangle(tri) {
		return Triangle{}, fmt.Errorf("%w: triangle %d of %d", ErrInvalidIndex, tri, len(m.triangles))
	}
	return m.triangles[tri], nil
}

func (m *NavMesh) TriangleVertices(tri int32) ([3]mgl32.Vec3, error) {
	if !m.IsValidTriangle(tri) {
		return [3]mgl32.Vec3{}, fmt.Errorf("%w: triangle %d of %d", ErrInvalidIndex, tri, len(m.triangles))
	}
	t := &m.triangles[tri]
	return [3]mgl32.Vec3{m.vertices[t.Verts[0]], m.vertices[t.Verts[1]], m.vertices[t.Verts[2]]}, nil
}

// Bounds returns the axis aligned box around all vertices.
func (m *NavMesh) Bounds() (bmin, bmax mgl32.Vec3) {
	if len(m.vertices) == 0 {
		return
	}
	inf := float32(math.Inf(1))
	bmin = mgl32.Vec3{inf, inf, inf}
	bmax = mgl32.Vec3{-inf, -inf, -inf}
	for _, v := range m.vertices {
		bmin, bmax = vmin(bmin, v), vmax(bmax, v)
	}
	return bmin, bmax
}

// CheckAdjacency verifies that every neighbor link is mirrored on the shared
// edge of the neighbor. Supplied adjacency is not required to pass; callers
// decide whether a failure is worth more than a warning.
func (m *NavMesh) CheckAdjacency() error {
	for i := range m.triangles {
		t := &m.triangles[i]
		for edge, n := range t.Neighbors {
			if n == NoNeighbor {
				continue
			}
			other := &m.triangles[n]
			a, b := t.EdgeVerts(edge)
			otherEdge := other.EdgeForVertices(a, b)
			if otherEdge < 0 {
				return fmt.Errorf("%w: triangle %d edge %d names neighbor %d which lacks edge %d-%d",
					ErrInvalidMesh, i, edge, n, a, b)
			}
			if other.Neighbors[otherEdge] != int32(i) {
				return fmt.Errorf("%w: triangle %d edge %d names neighbor %d whose matching edge %d points to %d",
					ErrInvalidMesh, i, edge, n, otherEdge, other.Neighbors[otherEdge])
			}
		}
	}
	return nil
}

func boundaryVertices(triangles []Triangle) []uint32 {
	seen := make(map[uint32]struct{})
	for i := range triangles {
		t := &triangles[i]
		for edge, n := range t.Neighbors {
			if n != NoNeighbor {
				continue
			}
			a, b := t.EdgeVerts(edge)
			seen[a] = struct{}{}
			seen[b] = struct{}{}
		}
	}
	ret := make([]uint32, 0, len(seen))
	for v := range seen {
		ret = append(ret, v)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

func vmin(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])}
}

func vmax(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])}
}
