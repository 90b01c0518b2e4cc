package pqueue_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilepath/pqueue"
)

func TestDequeue_Empty(t *testing.T) {
	q := pqueue.New[string, float64]()
	_, err := q.Dequeue()
	assert.ErrorIs(t, err, pqueue.ErrEmptyQueue)

	_, err = q.Peek()
	assert.ErrorIs(t, err, pqueue.ErrEmptyQueue)
	assert.Equal(t, 0, q.Count())
}

func TestZeroValueIsUsable(t *testing.T) {
	var q pqueue.PriorityQueue[int, int]
	q.Enqueue(7, 3)
	q.Enqueue(8, 1)

	got, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 8, got)
}

func TestDequeue_Order(t *testing.T) {
	cases := []struct {
		name       string
		priorities []float64
	}{
		{"Single", []float64{4}},
		{"Ascending", []float64{1, 2, 3, 4, 5}},
		{"Descending", []float64{5, 4, 3, 2, 1}},
		{"Duplicates", []float64{2, 2, 1, 1, 3, 3, 2}},
		{"Mixed", []float64{0.5, 9, -1, 3.25, 3.25, 0, 7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := pqueue.New[int, float64]()
			for i, p := range tc.priorities {
				q.Enqueue(i, p)
			}
			require.Equal(t, len(tc.priorities), q.Count())

			want := append([]float64(nil), tc.priorities...)
			sort.Float64s(want)
			for i := range want {
				it, err := q.DequeueItem()
				require.NoError(t, err)
				assert.Equal(t, want[i], it.Priority)
				assert.Equal(t, tc.priorities[it.Element], it.Priority, "element must travel with its priority")
				assert.Equal(t, len(want)-i-1, q.Count())
			}
			_, err := q.Dequeue()
			assert.ErrorIs(t, err, pqueue.ErrEmptyQueue)
		})
	}
}

func TestDuplicateElementsOccupySeparateSlots(t *testing.T) {
	q := pqueue.New[string, int]()
	q.Enqueue("a", 5)
	q.Enqueue("a", 1)
	q.Enqueue("a", 3)
	assert.Equal(t, 3, q.Count())

	var got []int
	for q.Count() > 0 {
		it, err := q.DequeueItem()
		require.NoError(t, err)
		assert.Equal(t, "a", it.Element)
		got = append(got, it.Priority)
	}
	assert.Equal(t, []int{1, 3, 5}, got)
}

func TestPeekDoesNotRemove(t *testing.T) {
	q := pqueue.NewWithCapacity[string, int](4)
	q.Enqueue("x", 2)
	q.Enqueue("y", 1)

	it, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, "y", it.Element)
	assert.Equal(t, 2, q.Count())
}

func TestReset(t *testing.T) {
	q := pqueue.NewWithCapacity[int, int](-3)
	for i := 0; i < 10; i++ {
		q.Enqueue(i, i)
	}
	q.Reset()
	assert.Equal(t, 0, q.Count())

	q.Enqueue(42, 0)
	got, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

// TestInterleaved mixes enqueues and dequeues and checks every dequeue
// against a sorted reference multiset.
func TestInterleaved(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	q := pqueue.New[int, int]()
	var ref []int

	for step := 0; step < 5000; step++ {
		if len(ref) == 0 || rng.Intn(3) > 0 {
			p := rng.Intn(100)
			q.Enqueue(p, p)
			ref = append(ref, p)
			continue
		}
		sort.Ints(ref)
		got, err := q.Dequeue()
		require.NoError(t, err)
		require.Equal(t, ref[0], got, "step %d", step)
		ref = ref[1:]
		require.Equal(t, len(ref), q.Count())
	}
}
