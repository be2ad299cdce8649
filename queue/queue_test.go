package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startWaiters launches n Dequeue calls one at a time, waiting for each to
// register before starting the next so that their wait order is known.
func startWaiters(t *testing.T, ctx context.Context, q *Queue[int], n int) []chan result {
	t.Helper()
	out := make([]chan result, n)
	base := q.Waiting()
	for i := 0; i < n; i++ {
		ch := make(chan result, 1)
		out[i] = ch
		go func() {
			v, err := q.Dequeue(ctx)
			ch <- result{v, err}
		}()
		want := base + i + 1
		require.Eventually(t, func() bool { return q.Waiting() == want },
			time.Second, time.Millisecond, "waiter %d never registered", i)
	}
	return out
}

type result struct {
	v   int
	err error
}

func recv(t *testing.T, ch chan result) result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for dequeue")
		return result{}
	}
}

func assertInvariant(t *testing.T, q *Queue[int]) {
	t.Helper()
	assert.False(t, q.Len() > 0 && q.Waiting() > 0,
		"buffered=%d waiters=%d both non-empty", q.Len(), q.Waiting())
}

func TestQueue_OrderPreservation(t *testing.T) {
	q := New[int]()
	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)
	require.Equal(t, 3, q.Len())

	ctx := context.Background()
	for _, want := range []int{1, 2, 3} {
		got, err := q.Dequeue(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueue_FIFOFairness(t *testing.T) {
	const n = 5
	q := New[int]()
	ctx := context.Background()
	waiters := startWaiters(t, ctx, q, n)
	assertInvariant(t, q)

	for i := 0; i < n; i++ {
		q.Enqueue(100 + i)
		assertInvariant(t, q)
	}
	for i, ch := range waiters {
		r := recv(t, ch)
		require.NoError(t, r.err)
		assert.Equal(t, 100+i, r.v, "waiter %d", i)
	}
	assert.Equal(t, 0, q.Len(), "items handed to waiters must not be buffered")
	assert.Equal(t, 0, q.Waiting())
}

func TestQueue_EnqueueResolvesAtMostOneWaiter(t *testing.T) {
	q := New[int]()
	waiters := startWaiters(t, context.Background(), q, 2)

	q.Enqueue(7)
	r := recv(t, waiters[0])
	assert.Equal(t, 7, r.v)
	assert.Equal(t, 1, q.Waiting())
	assert.Equal(t, 0, q.Len())

	q.Enqueue(8)
	assert.Equal(t, 8, recv(t, waiters[1]).v)
}

func TestQueue_InvariantUnderMixedOperations(t *testing.T) {
	q := New[int]()
	ctx := context.Background()

	ops := []struct {
		name    string
		enqueue bool
	}{
		{"enqueue", true},
		{"dequeue", false},
		{"dequeue-waits", false},
		{"enqueue-resolves", true},
		{"enqueue", true},
		{"enqueue", true},
		{"dequeue", false},
	}
	var pending []chan result
	next := 0
	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			if op.enqueue {
				q.Enqueue(next)
				next++
			} else {
				ch := make(chan result, 1)
				waiting := q.Waiting()
				buffered := q.Len()
				go func() {
					v, err := q.Dequeue(ctx)
					ch <- result{v, err}
				}()
				if buffered == 0 {
					require.Eventually(t, func() bool { return q.Waiting() == waiting+1 },
						time.Second, time.Millisecond)
				} else {
					require.Eventually(t, func() bool { return q.Len() == buffered-1 },
						time.Second, time.Millisecond)
				}
				pending = append(pending, ch)
			}
			assertInvariant(t, q)
		})
	}

	var got []int
	for _, ch := range pending {
		got = append(got, recv(t, ch).v)
	}
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, 1, q.Len())
}

func TestQueue_CancelPreservesOrderOfRemainingWaiters(t *testing.T) {
	q := New[int]()
	ctx, cancel := context.WithCancel(context.Background())
	first := startWaiters(t, context.Background(), q, 1)
	middle := startWaiters(t, ctx, q, 1)
	require.Equal(t, 2, q.Waiting())

	// third waiter, registered after the cancellable one
	third := make(chan result, 1)
	go func() {
		v, err := q.Dequeue(context.Background())
		third <- result{v, err}
	}()
	require.Eventually(t, func() bool { return q.Waiting() == 3 }, time.Second, time.Millisecond)

	cancel()
	r := recv(t, middle[0])
	assert.ErrorIs(t, r.err, context.Canceled)
	require.Eventually(t, func() bool { return q.Waiting() == 2 }, time.Second, time.Millisecond)

	q.Enqueue(1)
	q.Enqueue(2)
	assert.Equal(t, 1, recv(t, first[0]).v)
	assert.Equal(t, 2, recv(t, third).v)
}

func TestQueue_DequeueBufferedIgnoresCancelledContext(t *testing.T) {
	q := New[int]()
	q.Enqueue(42)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = q.Dequeue(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, q.Waiting())
}

func TestQueue_CloseWakesWaiters(t *testing.T) {
	q := New[int]()
	waiters := startWaiters(t, context.Background(), q, 3)

	q.Close()
	for _, ch := range waiters {
		r := recv(t, ch)
		assert.True(t, errors.Is(r.err, ErrClosed))
	}
	assert.True(t, q.Closed())

	q.Enqueue(1)
	assert.Equal(t, 0, q.Len(), "enqueue after close is dropped")
	q.Close()
}

func TestQueue_CloseDrainsBufferedFirst(t *testing.T) {
	q := New[string]()
	q.Enqueue("a")
	q.Enqueue("b")
	q.Close()

	ctx := context.Background()
	v, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", v)
	v, err = q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	_, err = q.Dequeue(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestQueue_TryDequeue(t *testing.T) {
	q := New[int]()
	_, ok := q.TryDequeue()
	assert.False(t, ok)

	q.Enqueue(5)
	v, ok := q.TryDequeue()
	assert.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestQueue_ConcurrentProducersDeliverEverything(t *testing.T) {
	const producers, perProducer = 8, 200
	q := New[int]()
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(base*perProducer + i)
			}
		}(p)
	}

	seen := make(map[int]bool)
	lastPerProducer := make(map[int]int)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for len(seen) < producers*perProducer {
		v, err := q.Dequeue(ctx)
		require.NoError(t, err)
		require.False(t, seen[v], "duplicate %d", v)
		seen[v] = true

		// per-producer order is preserved
		p := v / perProducer
		if last, ok := lastPerProducer[p]; ok {
			require.Greater(t, v, last)
		}
		lastPerProducer[p] = v
	}
	wg.Wait()
	assert.Equal(t, 0, q.Len())
}
