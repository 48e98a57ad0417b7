package navmesh

import (
	"container/heap"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// NavMeshQuery runs searches against one NavMesh. It owns the search scratch
// (node arena, open heap, closed flags) and reuses it between calls, so a
// query must not be used by more than one goroutine at a time. Create one per
// agent or per worker.
type NavMeshQuery struct {
	nav           *NavMesh
	filter        QueryFilter
	maxExpansions int32

	nodes  []searchNode
	open   nodeQueue
	closed []bool
	nodeOf []int32

	lastExpansions int32
}

// NewNavMeshQuery returns a query bound to nav. maxExpansions <= 0 selects the
// default cap of 10000.
func NewNavMeshQuery(nav *NavMesh, maxExpansions int32) (*NavMeshQuery, error) {
	if nav == nil {
		return nil, ErrInvalidParam
	}
	if maxExpansions <= 0 {
		maxExpansions = kDefaultMaxExpansions
	}
	q := &NavMeshQuery{
		nav:           nav,
		filter:        NewStandardQueryFilter(),
		maxExpansions: maxExpansions,
		closed:        make([]bool, nav.TriangleCount()),
		nodeOf:        make([]int32, nav.TriangleCount()),
	}
	q.open.nodes = &q.nodes
	return q, nil
}

func (q *NavMeshQuery) NavMesh() *NavMesh {
	return q.nav
}

// SetFilter replaces the filter used by later searches. nil restores the
// standard filter.
func (q *NavMeshQuery) SetFilter(filter QueryFilter) {
	if filter == nil {
		filter = NewStandardQueryFilter()
	}
	q.filter = filter
}

func (q *NavMeshQuery) Filter() QueryFilter {
	return q.filter
}

func (q *NavMeshQuery) MaxExpansions() int32 {
	return q.maxExpansions
}

// Expansions returns how many triangles the last search expanded.
func (q *NavMeshQuery) Expansions() int32 {
	return q.lastExpansions
}

func (q *NavMeshQuery) reset() {
	q.nodes = q.nodes[:0]
	q.open.reset()
	clear(q.closed)
	for i := range q.nodeOf {
		q.nodeOf[i] = -1
	}
	q.lastExpansions = 0
}

func (q *NavMeshQuery) addNode(tri, parent int32, g, h float32) int32 {
	idx := int32(len(q.nodes))
	q.nodes = append(q.nodes, searchNode{
		tri:     tri,
		parent:  parent,
		g:       g,
		h:       h,
		f:       g + h,
		heapIdx: -1,
	})
	q.nodeOf[tri] = idx
	heap.Push(&q.open, idx)
	return idx
}

// FindTrianglePath runs A* over the adjacency graph from triangle start to
// triangle goal and returns the visited triangles in order, both ends
// included.
//
// Step cost and admission come from the query filter. The search stops with
// ErrExpansionLimit once the expansion cap is used up, and with ErrNoPath when
// the open set runs dry.
func (q *NavMeshQuery) FindTrianglePath(start, goal int32) ([]int32, error) {
	m := q.nav
	if !m.IsValidTriangle(start) || !m.IsValidTriangle(goal) {
		return nil, fmt.Errorf("%w: start %d goal %d of %d triangles",
			ErrInvalidIndex, start, goal, m.TriangleCount())
	}
	q.reset()
	if start == goal {
		return []int32{start}, nil
	}

	hScale := float32(1)
	if scaler, ok := q.filter.(HeuristicScaler); ok {
		hScale = scaler.HeuristicScale(m)
	}
	goalCenter := m.triangles[goal].Center
	q.addNode(start, -1, 0, m.triangles[start].Center.Sub(goalCenter).Len()*hScale)

	for q.open.Len() > 0 {
		if q.lastExpansions >= q.maxExpansions {
			return nil, fmt.Errorf("%w: %d expansions from %d to %d", ErrExpansionLimit, q.lastExpansions, start, goal)
		}
		curIdx := heap.Pop(&q.open).(int32)
		cur := q.nodes[curIdx]
		q.closed[cur.tri] = true
		q.lastExpansions++
		if cur.tri == goal {
			return q.reconstruct(curIdx), nil
		}

		curTri := &m.triangles[cur.tri]
		for _, nei := range curTri.Neighbors {
			if nei == NoNeighbor || q.closed[nei] {
				continue
			}
			neiTri := &m.triangles[nei]
			if !q.filter.PassFilter(neiTri) {
				continue
			}
			g := cur.g + q.filter.Cost(curTri, neiTri)
			if idx := q.nodeOf[nei]; idx >= 0 {
				node := &q.nodes[idx]
				if g >= node.g {
					continue
				}
				node.g = g
				node.f = g + node.h
				node.parent = curIdx
				heap.Fix(&q.open, node.heapIdx)
				continue
			}
			q.addNode(nei, curIdx, g, neiTri.Center.Sub(goalCenter).Len()*hScale)
		}
	}
	return nil, fmt.Errorf("%w: open set exhausted from %d to %d", ErrNoPath, start, goal)
}

func (q *NavMeshQuery) reconstruct(idx int32) []int32 {
	var path []int32
	for idx != -1 {
		path = append(path, q.nodes[idx].tri)
		idx = q.nodes[idx].parent
	}
	slices.Reverse(path)
	return path
}

// FindPath localizes start and goal on the mesh, searches between their
// triangles and converts the result into waypoints. The first waypoint is
// always start and the last is always goal.
func (q *NavMeshQuery) FindPath(start, goal mgl32.Vec3) ([]mgl32.Vec3, error) {
	startTri, _, ok := q.nav.Localize(start)
	if !ok {
		return nil, fmt.Errorf("%w: cannot localize start %v", ErrNoPath, start)
	}
	goalTri, _, ok := q.nav.Localize(goal)
	if !ok {
		return nil, fmt.Errorf("%w: cannot localize goal %v", ErrNoPath, goal)
	}
	path, err := q.FindTrianglePath(startTri, goalTri)
	if err != nil {
		return nil, err
	}
	if len(path) == 1 && start != goal {
		// a one-triangle path collapses to the goal, keep the start as well
		return []mgl32.Vec3{start, goal}, nil
	}
	return TrianglePathToWaypoints(q.nav, path, start, goal)
}
