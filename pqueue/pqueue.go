package pqueue

import "cmp"

// PriorityQueue is a binary min-heap of (element, priority) pairs.
// The zero value is an empty, ready-to-use queue.
//
// A PriorityQueue is not safe for concurrent use; each search owns its own.
type PriorityQueue[E any, P cmp.Ordered] struct {
	heap []Item[E, P]
}

// New returns an empty queue.
func New[E any, P cmp.Ordered]() *PriorityQueue[E, P] {
	return &PriorityQueue[E, P]{}
}

// NewWithCapacity returns an empty queue whose backing slice is pre-sized to n slots.
// Negative n is treated as zero.
func NewWithCapacity[E any, P cmp.Ordered](n int) *PriorityQueue[E, P] {
	if n < 0 {
		n = 0
	}

	return &PriorityQueue[E, P]{heap: make([]Item[E, P], 0, n)}
}

// Count returns the number of pending entries, duplicates included.
// Complexity: O(1).
func (q *PriorityQueue[E, P]) Count() int { return len(q.heap) }

// Enqueue appends (element, priority) and restores the heap property by
// sifting the new slot upward.
// Complexity: O(log n).
func (q *PriorityQueue[E, P]) Enqueue(element E, priority P) {
	q.heap = append(q.heap, Item[E, P]{Element: element, Priority: priority})
	q.siftUp(len(q.heap) - 1)
}

// Dequeue removes and returns the element with the minimum priority.
// Returns ErrEmptyQueue if nothing is pending.
// Complexity: O(log n).
func (q *PriorityQueue[E, P]) Dequeue() (E, error) {
	it, err := q.DequeueItem()

	return it.Element, err
}

// DequeueItem is Dequeue that also reports the priority the element was stored with.
// Searches use it to recognise stale duplicate entries.
func (q *PriorityQueue[E, P]) DequeueItem() (Item[E, P], error) {
	n := len(q.heap)
	if n == 0 {
		return Item[E, P]{}, ErrEmptyQueue
	}

	root := q.heap[0]
	last := n - 1
	q.heap[0] = q.heap[last]
	q.heap[last] = Item[E, P]{} // drop references held by the vacated slot
	q.heap = q.heap[:last]
	if last > 0 {
		q.siftDown(0)
	}

	return root, nil
}

// Peek returns the minimum entry without removing it.
// Returns ErrEmptyQueue if nothing is pending.
func (q *PriorityQueue[E, P]) Peek() (Item[E, P], error) {
	if len(q.heap) == 0 {
		return Item[E, P]{}, ErrEmptyQueue
	}

	return q.heap[0], nil
}

// Reset empties the queue, keeping the allocated capacity.
func (q *PriorityQueue[E, P]) Reset() {
	clear(q.heap)
	q.heap = q.heap[:0]
}

// siftUp swaps slot i with its parent while the parent's priority is strictly greater.
func (q *PriorityQueue[E, P]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if q.heap[parent].Priority <= q.heap[i].Priority {
			return
		}
		q.heap[i], q.heap[parent] = q.heap[parent], q.heap[i]
		i = parent
	}
}

// siftDown swaps slot i with its smaller child while that child's priority is
// strictly smaller, stopping at a leaf.
func (q *PriorityQueue[E, P]) siftDown(i int) {
	n := len(q.heap)
	for {
		smallest := i
		left, right := 2*i+1, 2*i+2
		if left < n && q.heap[left].Priority < q.heap[smallest].Priority {
			smallest = left
		}
		if right < n && q.heap[right].Priority < q.heap[smallest].Priority {
			smallest = right
		}
		if smallest == i {
			return
		}
		q.heap[i], q.heap[smallest] = q.heap[smallest], q.heap[i]
		i = smallest
	}
}
