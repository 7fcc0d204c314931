package desim

import "container/heap"

// Priority is the scheduling tier of a queued event. Lower values fire
// first when two events share the same virtual time.
type Priority int

const (
	// PriorityHigh is used for process bootstrap (Initialize) and
	// interrupt delivery: these must preempt ordinary events scheduled
	// at the same instant.
	PriorityHigh Priority = 0
	// PriorityDefault is used for plain events (succeed/fail/trigger).
	PriorityDefault Priority = 1
	// PriorityLow is used for timeouts, so that simultaneous plain
	// events and interrupts/inits fire before equally-timed timeouts.
	PriorityLow Priority = 2
)

// scheduledItem is one entry in the Environment's priority queue: a
// (time, priority, sequence) key plus the event it carries.
type scheduledItem struct {
	time     float64
	priority Priority
	sequence uint64
	event    *Event
}

// eventHeap is a min-heap over scheduledItem, ordered lexicographically by
// (time, priority, sequence). The sequence field is load-bearing: without
// it, events sharing a (time, priority) pair would have no deterministic
// relative order.
type eventHeap []scheduledItem

var _ heap.Interface = (*eventHeap)(nil)

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.time != b.time {
		return a.time < b.time
	}
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.sequence < b.sequence
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(scheduledItem))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = scheduledItem{}
	*h = old[:n-1]
	return item
}
