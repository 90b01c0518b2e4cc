package pqueue

import "errors"

// ErrEmptyQueue is returned by Dequeue, DequeueItem and Peek when the queue holds no entries.
var ErrEmptyQueue = errors.New("pqueue: queue is empty")

// Item is a single (element, priority) slot of the heap.
type Item[E any, P any] struct {
	Element  E
	Priority P
}
