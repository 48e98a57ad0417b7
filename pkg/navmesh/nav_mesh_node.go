package navmesh

// searchNode is one triangle reached by the search. Nodes live in an
// append-only arena; parent is an arena index, -1 for the start node.
type searchNode struct {
	tri     int32
	parent  int32
	g, h, f float32
	heapIdx int
}

// nodeQueue is a binary min-heap of arena indices ordered by f, then h, then
// triangle index.
type nodeQueue struct {
	nodes *[]searchNode
	items []int32
}

func (q *nodeQueue) Len() int {
	return len(q.items)
}

func (q *nodeQueue) Less(i, j int) bool {
	a := &(*q.nodes)[q.items[i]]
	b := &(*q.nodes)[q.items[j]]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.tri < b.tri
}

func (q *nodeQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	(*q.nodes)[q.items[i]].heapIdx = i
	(*q.nodes)[q.items[j]].heapIdx = j
}

func (q *nodeQueue) Push(x any) {
	idx := x.(int32)
	(*q.nodes)[idx].heapIdx = len(q.items)
	q.items = append(q.items, idx)
}

func (q *nodeQueue) Pop() any {
	n := len(q.items)
	idx := q.items[n-1]
	q.items = q.items[:n-1]
	(*q.nodes)[idx].heapIdx = -1
	return idx
}

func (q *nodeQueue) reset() {
	q.items = q.items[:0]
}
