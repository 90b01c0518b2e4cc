// Package pqueue provides a minimum-priority queue implemented as a binary heap.
//
// What:
//
//   - PriorityQueue[E, P] stores (element, priority) pairs in a slice laid out
//     as an implicit binary tree (children of slot i live at 2i+1 and 2i+2).
//   - The min-heap property holds at all times: every parent's priority is
//     ≤ the priorities of both of its children.
//   - Elements and priorities may repeat; every Enqueue adds a new slot.
//
// Why:
//
//   - Best-first searches (A*, Dijkstra) need "give me the cheapest pending
//     entry" in O(log n).
//   - Unlike container/heap, the element type is generic and there is no
//     interface boxing on every Push/Pop.
//
// Complexity:
//
//   - Enqueue: O(log n) (sift up).
//   - Dequeue: O(log n) (sift down).
//   - Peek, Count: O(1).
//
// What it does NOT do:
//
//   - There is no remove-by-value and no decrease-priority operation. Callers
//     that discover a better priority for an element either enqueue it again
//     and ignore the stale entry later ("lazy decrease-key"), or live with the
//     old priority.
//
// Errors:
//
//   - ErrEmptyQueue: Dequeue or Peek on a queue with no entries.
//
// Ties between equal priorities are broken by heap structure only; no
// insertion-order guarantee is made.
package pqueue
