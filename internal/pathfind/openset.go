package pathfind

import "container/heap"

// openSet is a binary heap of discovered, not yet closed cells.
// Ordering: lowest fCost, then lowest hCost, then earliest insertion.
// Costs within costEpsilon of each other count as equal.
type openSet struct {
	items []*Cell
	seq   uint64
}

func (o *openSet) Len() int { return len(o.items) }

func (o *openSet) Less(i, j int) bool {
	a, b := o.items[i], o.items[j]
	if fa, fb := a.FCost(), b.FCost(); !costEqual(fa, fb) {
		return fa < fb
	}
	if !costEqual(a.hCost, b.hCost) {
		return a.hCost < b.hCost
	}
	return a.inserted < b.inserted
}

func (o *openSet) Swap(i, j int) {
	o.items[i], o.items[j] = o.items[j], o.items[i]
	o.items[i].heapIdx = i
	o.items[j].heapIdx = j
}

func (o *openSet) Push(x any) {
	c := x.(*Cell)
	c.heapIdx = len(o.items)
	o.items = append(o.items, c)
}

func (o *openSet) Pop() any {
	old := o.items
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	c.heapIdx = -1
	o.items = old[:n-1]
	return c
}

// insert queues a newly discovered cell and stamps its insertion order.
func (o *openSet) insert(c *Cell) {
	o.seq++
	c.inserted = o.seq
	c.opened = true
	heap.Push(o, c)
}

// popBest removes and returns the highest-priority cell.
func (o *openSet) popBest() *Cell {
	return heap.Pop(o).(*Cell)
}

// improved restores heap order after a cell's gCost decreased.
func (o *openSet) improved(c *Cell) {
	heap.Fix(o, c.heapIdx)
}
