package memo

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amakane-hakari/scorecache/internal/store"
)

// fakeClock は呼ばれるたびに step だけ進む時計。
type fakeClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(c.step)
	return c.t
}

func TestMemo_ComputesOnceAndCaches(t *testing.T) {
	st := store.New[string, int]()
	clk := &fakeClock{t: time.Unix(0, 0), step: 2 * time.Second}
	m := New(st, WithClock(clk.now))
	ctx := context.Background()

	var calls int
	fn := func(context.Context) (int, error) {
		calls++
		return 42, nil
	}

	v, err := m.Do(ctx, "answer", fn)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = m.Do(ctx, "answer", fn)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)

	scr, ok := st.Score("answer")
	require.True(t, ok)
	assert.InDelta(t, store.Score(2, store.DefaultSize(42), 1, store.DefaultBase), scr, 1e-12)
}

func TestMemo_ErrorIsNotCached(t *testing.T) {
	st := store.New[string, int]()
	m := New(st)
	boom := errors.New("boom")

	_, err := m.Do(context.Background(), "k", func(context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, st.Contains("k"))
}

func TestMemo_PutErrorIsReturned(t *testing.T) {
	st := store.New[string, int](store.WithSizer(func(any) int64 { return 0 }))
	m := New(st)

	_, err := m.Do(context.Background(), "k", func(context.Context) (int, error) {
		return 1, nil
	})
	assert.ErrorIs(t, err, store.ErrInvalidSize)
}

func TestMemo_SuppressesDuplicates(t *testing.T) {
	st := store.New[int, string]()
	m := New(st, WithCostFunc(func(time.Duration) float64 { return 1 }))

	var calls atomic.Int32
	release := make(chan struct{})
	fn := func(context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "v", nil
	}

	const n = 8
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := m.Do(context.Background(), 7, fn)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, "v", r)
	}
	assert.True(t, st.Contains(7))
}

// pair は fmt.Sprint で表すと別の値と区別できなくなるキー。
type pair struct{ A, B string }

func TestMemo_KeysWithSamePrintedFormAreDistinct(t *testing.T) {
	st := store.New[pair, string]()
	m := New(st)
	first, second := pair{"a b", ""}, pair{"a", "b "}

	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := m.Do(context.Background(), first, func(context.Context) (string, error) {
			close(started)
			<-release
			return "first", nil
		})
		assert.NoError(t, err)
		assert.Equal(t, "first", v)
	}()
	<-started

	v, err := m.Do(context.Background(), second, func(context.Context) (string, error) {
		return "second", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "second", v)
	close(release)
	wg.Wait()

	got, ok := st.Get(first)
	require.True(t, ok)
	assert.Equal(t, "first", got)
	got, ok = st.Get(second)
	require.True(t, ok)
	assert.Equal(t, "second", got)
}

func TestMemo_MissIsCountedOnce(t *testing.T) {
	st := store.New[string, string](store.WithMissTracking(), store.WithBase(1))
	m := New(st, WithCostFunc(func(time.Duration) float64 { return 1 }))

	_, err := m.Do(context.Background(), "k", func(context.Context) (string, error) {
		return "v", nil
	})
	require.NoError(t, err)

	scr, ok := st.Score("k")
	require.True(t, ok)
	want := 2 * store.Score(1, store.DefaultSize("v"), 1, 1)
	assert.InDelta(t, want, scr, 1e-12, "one lookup miss plus the put itself")
}

func TestMemo_ReleasesFlightNames(t *testing.T) {
	st := store.New[string, int]()
	m := New(st)
	for _, k := range []string{"a", "b", "c"} {
		_, err := m.Do(context.Background(), k, func(context.Context) (int, error) { return 1, nil })
		require.NoError(t, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Empty(t, m.flights)
}

func TestMemo_ContextCanceled(t *testing.T) {
	st := store.New[string, int]()
	m := New(st)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Do(ctx, "k", func(context.Context) (int, error) {
		t.Fatal("fn must not run for a canceled context")
		return 0, nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel2()
	done := make(chan struct{})
	_, err = m.Do(ctx2, "slow", func(context.Context) (int, error) {
		<-done
		return 1, nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(done)
	assert.Eventually(t, func() bool { return st.Contains("slow") }, time.Second, time.Millisecond)
}

func TestSecondsCost(t *testing.T) {
	assert.Equal(t, 1.5, SecondsCost(1500*time.Millisecond))
	assert.Equal(t, minCost, SecondsCost(0))
}
