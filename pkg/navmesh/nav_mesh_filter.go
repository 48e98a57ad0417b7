package navmesh

// QueryFilter decides which triangles a search may enter and what crossing
// between two adjacent triangles costs. Cost must not be below the distance
// between the two centroids unless the filter also implements
// HeuristicScaler.
type QueryFilter interface {
	PassFilter(tri *Triangle) bool
	Cost(from, to *Triangle) float32
}

// HeuristicScaler lets a filter whose steps can be cheaper than centroid
// distance shrink the search heuristic so it never overestimates.
type HeuristicScaler interface {
	HeuristicScale(m *NavMesh) float32
}

// StandardQueryFilter excludes triangles by flag bits and prices a step by the
// distance between centroids, optionally scaled by the destination's cost.
// NewStandardQueryFilter includes everything and uses plain centroid distance.
type StandardQueryFilter struct {
	includeFlags     uint32
	excludeFlags     uint32
	useTraversalCost bool
}

func NewStandardQueryFilter() *StandardQueryFilter {
	return &StandardQueryFilter{
		includeFlags: 0xffffffff,
	}
}

func (f *StandardQueryFilter) PassFilter(tri *Triangle) bool {
	// untagged triangles are always walkable unless explicitly excluded
	if tri.Flags != 0 && tri.Flags&f.includeFlags == 0 {
		return false
	}
	return tri.Flags&f.excludeFlags == 0
}

func (f *StandardQueryFilter) Cost(from, to *Triangle) float32 {
	d := from.Center.Sub(to.Center).Len()
	if f.useTraversalCost {
		d *= to.Cost
	}
	return d
}

func (f *StandardQueryFilter) IncludeFlags() uint32 {
	return f.includeFlags
}

func (f *StandardQueryFilter) SetIncludeFlags(flags uint32) {
	f.includeFlags = flags
}

func (f *StandardQueryFilter) ExcludeFlags() uint32 {
	return f.excludeFlags
}

func (f *StandardQueryFilter) SetExcludeFlags(flags uint32) {
	f.excludeFlags = flags
}

// SetUseTraversalCost scales every step by the Cost of the triangle entered.
func (f *StandardQueryFilter) SetUseTraversalCost(use bool) {
	f.useTraversalCost = use
}

func (f *StandardQueryFilter) UseTraversalCost() bool {
	return f.useTraversalCost
}

// HeuristicScale is the mesh's cheapest cost when steps are weighted, 1
// otherwise.
func (f *StandardQueryFilter) HeuristicScale(m *NavMesh) float32 {
	if !f.useTraversalCost {
		return 1
	}
	return m.MinTraversalCost()
}
