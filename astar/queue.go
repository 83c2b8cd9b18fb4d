package astar

import "github.com/katalvlaran/gridstar/gridgraph"

// queueItem is one frontier entry: a cell, its priority key and the insertion
// sequence number that breaks ties between equal keys.
type queueItem struct {
	cell *gridgraph.Cell
	key  float64
	seq  uint64
}

// cellPQ is a min-heap of *queueItem ordered by (key, seq). Cells themselves
// are never compared, so the order is total and stable: among equal keys the
// earliest inserted entry leaves first.
type cellPQ []*queueItem

// Len returns the number of items in the heap.
func (pq cellPQ) Len() int { return len(pq) }

// Less orders by key, then by insertion sequence.
func (pq cellPQ) Less(i, j int) bool {
	if pq[i].key != pq[j].key {
		return pq[i].key < pq[j].key
	}

	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements.
func (pq cellPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x, which must be a *queueItem. Called by heap.Push.
func (pq *cellPQ) Push(x interface{}) {
	*pq = append(*pq, x.(*queueItem))
}

// Pop removes and returns the last element. Called by heap.Pop.
func (pq *cellPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
