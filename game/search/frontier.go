package search

import (
	"container/heap"

	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
)

type frontierNode struct {
	position engine.Position
	priority int
	cost     int
	index    int
}

// pathQueue is a min-heap ordered by priority, then cost, then position, so equal
// priorities always pop in the same order.
type pathQueue []*frontierNode

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	return a.position.Less(b.position)
}

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pathQueue) Push(x any) {
	n := len(*pq)
	item := x.(*frontierNode)
	item.index = n
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

func newPathQueue(start engine.Position, priority int) *pathQueue {
	open := &pathQueue{}
	heap.Init(open)
	heap.Push(open, &frontierNode{position: start, priority: priority})
	return open
}

func (pq *pathQueue) push(p engine.Position, priority, cost int) {
	heap.Push(pq, &frontierNode{position: p, priority: priority, cost: cost})
}

func (pq *pathQueue) pop() *frontierNode {
	return heap.Pop(pq).(*frontierNode)
}
