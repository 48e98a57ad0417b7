package navmesh

const (
	// NoNeighbor marks a boundary edge.
	NoNeighbor int32 = -1

	kDefaultTriangleCost  float32 = 1.0
	kDefaultMaxExpansions int32   = 10000
)

// Triangle flag bits. Assets may define more; the search only looks at the
// bits excluded by its QueryFilter.
const (
	TriFlagWater uint32 = 1 << iota
	TriFlagStairs
	TriFlagDisabled
)

type NavMeshBuildSettings struct {
	// SpatialIndex builds a BVH and routes containment and nearest queries
	// through it. The brute-force scans stay available either way.
	SpatialIndex bool

	// RejectNonManifold fails the build when an edge is shared by more than
	// two triangles. Otherwise the lowest-index match wins.
	RejectNonManifold bool
}

func DefaultBuildSettings() NavMeshBuildSettings {
	return NavMeshBuildSettings{
		SpatialIndex: true,
	}
}
