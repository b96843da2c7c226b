package querycache

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache(t *testing.T, opts Options) (*Cache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	opts.Now = clock.Now
	if opts.RetryDelay == 0 {
		opts.RetryDelay = -1
	}
	return New(opts), clock
}

func countingFetcher(calls *int32, payload any) Fetcher {
	return func(context.Context) (any, error) {
		atomic.AddInt32(calls, 1)
		return payload, nil
	}
}

func TestQuery_FreshEntryServedWithoutNetwork(t *testing.T) {
	c, _ := newTestCache(t, Options{})
	ctx := context.Background()
	key := NewKey(ResourceBoxes)

	var calls int32
	v, err := c.Query(ctx, key, countingFetcher(&calls, "boxes-v1"))
	require.NoError(t, err)
	require.Equal(t, "boxes-v1", v)

	v, err = c.Query(ctx, key, countingFetcher(&calls, "boxes-v2"))
	require.NoError(t, err)
	require.Equal(t, "boxes-v1", v)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestQuery_StaleAfterStaleTime(t *testing.T) {
	c, clock := newTestCache(t, Options{StaleTime: time.Minute})
	ctx := context.Background()
	key := NewKey(ResourceOrders, "all")

	var calls int32
	_, err := c.Query(ctx, key, countingFetcher(&calls, 1))
	require.NoError(t, err)

	clock.Advance(59 * time.Second)
	_, _ = c.Query(ctx, key, countingFetcher(&calls, 2))
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))

	clock.Advance(time.Second)
	v, err := c.Query(ctx, key, countingFetcher(&calls, 3))
	require.NoError(t, err)
	require.Equal(t, 3, v)
	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestQuery_DeduplicatesConcurrentReads(t *testing.T) {
	c, _ := newTestCache(t, Options{})
	key := NewKey(ResourceSlots, "2030-01-01", "2030-01-07")

	var calls int32
	release := make(chan struct{})
	started := make(chan struct{})
	fetch := func(context.Context) (any, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return "slots", nil
	}

	const readers = 2
	results := make([]any, readers)
	var wg sync.WaitGroup
	wg.Add(readers)

	go func() {
		defer wg.Done()
		results[0], _ = c.Query(context.Background(), key, fetch)
	}()
	<-started
	go func() {
		defer wg.Done()
		results[1], _ = c.Query(context.Background(), key, fetch)
	}()

	require.Eventually(t, func() bool {
		snap, ok := c.Snapshot(key)
		return ok && snap.Fetching
	}, time.Second, time.Millisecond)
	// второй читатель должен успеть встать в ожидание
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
	require.Equal(t, "slots", results[0])
	require.Equal(t, results[0], results[1])
}

func TestQuery_RetryBound(t *testing.T) {
	c, _ := newTestCache(t, Options{Retries: 1})
	key := NewKey(ResourceUser, "me")

	var failed []Event
	cancel := c.Subscribe(key, func(ev Event) {
		if ev.Type == EventFailed {
			failed = append(failed, ev)
		}
	})
	defer cancel()

	var calls int32
	boom := errors.New("connection reset")
	_, err := c.Query(context.Background(), key, func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, boom
	})

	require.ErrorIs(t, err, boom)
	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
	require.Len(t, failed, 1)
	require.ErrorIs(t, failed[0].Err, boom)

	snap, ok := c.Snapshot(key)
	require.True(t, ok)
	require.Equal(t, 1, snap.Retries)
	require.False(t, snap.Fetching)
}

func TestQuery_ClientErrorsAreNotRetried(t *testing.T) {
	c, _ := newTestCache(t, Options{Retries: 1})

	var calls int32
	_, err := c.Query(context.Background(), NewKey(ResourceBoxes, "missing"), func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, domain.NewUpstreamError(http.StatusNotFound, "box not found")
	})

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestQuery_StaleWhileError(t *testing.T) {
	c, _ := newTestCache(t, Options{})
	ctx := context.Background()
	key := NewKey(ResourceOrders, "all")

	_, err := c.Query(ctx, key, func(context.Context) (any, error) { return "orders-v1", nil })
	require.NoError(t, err)
	require.Equal(t, 1, c.Invalidate(AnyOf(ResourceOrders)))

	v, err := c.Query(ctx, key, func(context.Context) (any, error) {
		return nil, domain.NewUpstreamError(http.StatusBadGateway, "")
	})
	require.Error(t, err)
	require.Equal(t, "orders-v1", v)

	payload, lastErr := c.Peek(key)
	require.Equal(t, "orders-v1", payload)
	require.Error(t, lastErr)
}

func TestInvalidate_IsKeyScoped(t *testing.T) {
	c, _ := newTestCache(t, Options{})
	ctx := context.Background()

	keys := []Key{
		NewKey(ResourceOrders, "all"),
		NewKey(ResourceOrders, "o-1"),
		NewKey(ResourceBoxes),
		NewKey(ResourceBoxes, "b-1"),
		NewKey(ResourceUser, "me"),
	}
	for _, k := range keys {
		_, err := c.Query(ctx, k, func(context.Context) (any, error) { return k.String(), nil })
		require.NoError(t, err)
	}

	require.Equal(t, 2, c.Invalidate(AnyOf(ResourceBoxes)))

	for _, k := range keys {
		snap, ok := c.Snapshot(k)
		require.True(t, ok)
		require.Equal(t, k.Resource == ResourceBoxes, snap.Stale, k.String())
	}

	// точный ключ затрагивает только себя
	require.Equal(t, 1, c.Invalidate(NewKey(ResourceOrders, "o-1")))
	snap, _ := c.Snapshot(NewKey(ResourceOrders, "all"))
	require.False(t, snap.Stale)

	// повторная инвалидация уже устаревших записей ничего не считает
	require.Zero(t, c.Invalidate(AnyOf(ResourceBoxes)))
}

func TestInvalidate_DuringFetchKeepsEntryStale(t *testing.T) {
	c, _ := newTestCache(t, Options{})
	key := NewKey(ResourceOrders, "all")

	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Query(context.Background(), key, func(context.Context) (any, error) {
			<-release
			return "read-before-mutation", nil
		})
	}()

	require.Eventually(t, func() bool {
		snap, ok := c.Snapshot(key)
		return ok && snap.Fetching
	}, time.Second, time.Millisecond)

	c.Invalidate(AnyOf(ResourceOrders))
	close(release)
	<-done

	snap, ok := c.Snapshot(key)
	require.True(t, ok)
	require.True(t, snap.HasData)
	require.True(t, snap.Stale)
}

func TestSubscribe_ReceivesRefreshAndInvalidation(t *testing.T) {
	c, _ := newTestCache(t, Options{})
	ctx := context.Background()

	var mu sync.Mutex
	var got []EventType
	cancel := c.Subscribe(AnyOf(ResourceBoxes), func(ev Event) {
		mu.Lock()
		got = append(got, ev.Type)
		mu.Unlock()
	})

	_, _ = c.Query(ctx, NewKey(ResourceBoxes), func(context.Context) (any, error) { return 1, nil })
	_, _ = c.Query(ctx, NewKey(ResourceOrders), func(context.Context) (any, error) { return 2, nil })
	c.Invalidate(AnyOf(ResourceBoxes))

	cancel()
	c.Invalidate(AnyOf(ResourceBoxes))
	_, _ = c.Query(ctx, NewKey(ResourceBoxes), func(context.Context) (any, error) { return 3, nil })

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []EventType{EventRefreshed, EventInvalidated}, got)
}

func TestClear_RemovesEverything(t *testing.T) {
	c, _ := newTestCache(t, Options{})
	ctx := context.Background()

	var cleared int32
	c.Subscribe(AnyOf(ResourceUser), func(ev Event) {
		if ev.Type == EventCleared {
			atomic.AddInt32(&cleared, 1)
		}
	})

	_, _ = c.Query(ctx, NewKey(ResourceUser, "me"), func(context.Context) (any, error) { return "me", nil })
	_, _ = c.Query(ctx, NewKey(ResourceBoxes), func(context.Context) (any, error) { return "boxes", nil })
	require.Equal(t, 2, c.Len())

	c.Clear()
	require.Zero(t, c.Len())
	require.EqualValues(t, 1, atomic.LoadInt32(&cleared))

	v, err := c.Peek(NewKey(ResourceUser, "me"))
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestClear_DropsResultOfFetchInFlight(t *testing.T) {
	c, _ := newTestCache(t, Options{})
	key := NewKey(ResourceUser, "me")

	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Query(context.Background(), key, func(context.Context) (any, error) {
			<-release
			return "previous user", nil
		})
	}()
	require.Eventually(t, func() bool {
		snap, ok := c.Snapshot(key)
		return ok && snap.Fetching
	}, time.Second, time.Millisecond)

	c.Clear()
	close(release)
	<-done

	_, ok := c.Snapshot(key)
	require.False(t, ok)
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestCache(t, Options{Capacity: 2})
	ctx := context.Background()

	a, b, d := NewKey(ResourceBoxes, "a"), NewKey(ResourceBoxes, "b"), NewKey(ResourceBoxes, "d")
	for _, k := range []Key{a, b} {
		_, _ = c.Query(ctx, k, func(context.Context) (any, error) { return k.Params, nil })
	}
	// a становится самым свежим
	_, _ = c.Query(ctx, a, func(context.Context) (any, error) { return "unused", nil })
	_, _ = c.Query(ctx, d, func(context.Context) (any, error) { return "d", nil })

	require.Equal(t, 2, c.Len())
	_, okA := c.Snapshot(a)
	_, okB := c.Snapshot(b)
	require.True(t, okA)
	require.False(t, okB)
}

func TestQuery_CallerCancellationDoesNotAbortFetch(t *testing.T) {
	c, _ := newTestCache(t, Options{})
	key := NewKey(ResourcePhotos, "session", "s-1")

	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	fetchCtxErr := make(chan error, 1)

	errCh := make(chan error, 1)
	go func() {
		_, err := c.Query(ctx, key, func(fctx context.Context) (any, error) {
			<-release
			fetchCtxErr <- fctx.Err()
			return "photos", nil
		})
		errCh <- err
	}()

	require.Eventually(t, func() bool {
		snap, ok := c.Snapshot(key)
		return ok && snap.Fetching
	}, time.Second, time.Millisecond)
	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)

	close(release)
	require.NoError(t, <-fetchCtxErr)
	require.Eventually(t, func() bool {
		v, _ := c.Peek(key)
		return v == "photos"
	}, time.Second, time.Millisecond)
}

func TestFetch_Typed(t *testing.T) {
	c, _ := newTestCache(t, Options{})
	ctx := context.Background()

	box, err := Fetch(ctx, c, NewKey(ResourceBoxes, "b-1"), func(context.Context) (*domain.Box, error) {
		return &domain.Box{ID: "b-1"}, nil
	})
	require.NoError(t, err)
	require.Equal(t, "b-1", box.ID)

	_, err = Fetch(ctx, c, NewKey(ResourceBoxes, "b-1"), func(context.Context) (*domain.Order, error) {
		return nil, nil
	})
	require.ErrorContains(t, err, "want")
}

func TestQuery_RejectsSelector(t *testing.T) {
	c, _ := newTestCache(t, Options{})
	_, err := c.Query(context.Background(), AnyOf(ResourceBoxes), countingFetcher(new(int32), 1))
	require.Error(t, err)
}
