package pqueue_test

import (
	"fmt"

	"github.com/katalvlaran/tilepath/pqueue"
)

// ExamplePriorityQueue shows that entries come out cheapest first and that
// dequeuing an empty queue reports ErrEmptyQueue instead of panicking.
func ExamplePriorityQueue() {
	q := pqueue.New[string, float64]()
	q.Enqueue("swamp", 5)
	q.Enqueue("grass", 1)
	q.Enqueue("hills", 2)

	for q.Count() > 0 {
		tile, _ := q.Dequeue()
		fmt.Println(tile)
	}
	_, err := q.Dequeue()
	fmt.Println(err)

	// Output:
	// grass
	// hills
	// swamp
	// pqueue: queue is empty
}
