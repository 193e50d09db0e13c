package router

import (
	"time"

	"karlsruhe.dev/transit/model"
)

// queueItem is one entry of the search priority queue: the cost used
// for ordering (priorityKey) is kept separate from the actual clock
// time at the stop (currentTime), since the former also folds in the
// transfer penalty.
type queueItem struct {
	priorityKey time.Duration
	transfers   int
	seq         int
	stopID      string
	currentTime time.Duration
	lastRouteID string
	path        []model.Connection
}

// priorityQueue orders ascending by (priorityKey, transfers, seq), the
// last field breaking ties in FIFO push order.
type priorityQueue []*queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].priorityKey != pq[j].priorityKey {
		return pq[i].priorityKey < pq[j].priorityKey
	}
	if pq[i].transfers != pq[j].transfers {
		return pq[i].transfers < pq[j].transfers
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*queueItem))
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
