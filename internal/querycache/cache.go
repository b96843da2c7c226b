package querycache

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/Gunvolt24/storage_portal/internal/ports"
	"github.com/Gunvolt24/storage_portal/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultCapacity     = 256
	DefaultStaleTime    = 30 * time.Second
	DefaultRetries      = 1
	DefaultRetryDelay   = 250 * time.Millisecond
	DefaultFetchTimeout = 10 * time.Second
)

// Fetcher — загрузка ресурса из бэкенда.
type Fetcher func(ctx context.Context) (any, error)

// Options — настройки кэша. Нулевые значения заменяются значениями по умолчанию,
// кроме Retries: отрицательное значение отключает повторы.
type Options struct {
	Capacity     int
	StaleTime    time.Duration
	Retries      int
	RetryDelay   time.Duration
	FetchTimeout time.Duration
	Now          func() time.Time
	Logger       ports.Logger
}

// Cache — кэш снимков ресурсов одной сессии.
// Пишется только завершением Query и успешной Mutation.
type Cache struct {
	opts Options
	log  ports.Logger

	mu    sync.Mutex
	ll    *list.List
	index map[Key]*list.Element
	gen   uint64 // растёт на каждом Clear: результаты старых загрузок не сохраняются

	subs    map[uint64]subscriber
	nextSub uint64

	group singleflight.Group
}

type entry struct {
	key       Key
	payload   any
	hasData   bool
	fetchedAt time.Time
	stale     bool
	inflight  bool
	version   uint64 // растёт на каждом Invalidate
	retries   int
	err       error
}

// Snapshot — метаданные записи.
type Snapshot struct {
	Key       Key
	HasData   bool
	FetchedAt time.Time
	Stale     bool
	Fetching  bool
	Retries   int
	Err       error
}

func New(opts Options) *Cache {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.StaleTime == 0 {
		opts.StaleTime = DefaultStaleTime
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	} else if opts.Retries == 0 {
		opts.Retries = DefaultRetries
	}
	if opts.RetryDelay < 0 {
		opts.RetryDelay = 0
	} else if opts.RetryDelay == 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Cache{
		opts:  opts,
		log:   opts.Logger,
		ll:    list.New(),
		index: make(map[Key]*list.Element),
		subs:  make(map[uint64]subscriber),
	}
}

// Query — свежая запись возвращается без сети; иначе ровно одна загрузка на ключ,
// параллельные вызовы ждут её результат. При ошибке вместе с ней возвращается
// последнее успешно загруженное значение (если было).
func (c *Cache) Query(ctx context.Context, key Key, fetch Fetcher) (any, error) {
	if key.IsSelector() {
		return nil, fmt.Errorf("query: selector %s is not a key", key)
	}

	c.mu.Lock()
	if payload, ok := c.freshLocked(key); ok {
		c.mu.Unlock()
		metrics.CacheOps.WithLabelValues("hit").Inc()
		return payload, nil
	}
	if elem, ok := c.index[key]; ok && elem.Value.(*entry).hasData {
		metrics.CacheOps.WithLabelValues("stale").Inc()
	} else {
		metrics.CacheOps.WithLabelValues("miss").Inc()
	}
	c.mu.Unlock()

	ch := c.group.DoChan(key.String(), func() (any, error) {
		return c.load(ctx, key, fetch)
	})

	select {
	case res := <-ch:
		if res.Shared {
			metrics.CacheOps.WithLabelValues("dedup").Inc()
		}
		return res.Val, res.Err
	case <-ctx.Done():
		// загрузка продолжается и сохранит результат для следующих читателей
		payload, _ := c.Peek(key)
		return payload, ctx.Err()
	}
}

// Fetch — типизированная обёртка над Query.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Query(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if v == nil {
		if err == nil {
			err = fmt.Errorf("query %s: empty payload", key)
		}
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("query %s: cached %T, want %T", key, v, zero)
	}
	return typed, err
}

// Peek — текущее значение записи без загрузки; ошибка — последняя ошибка загрузки.
func (c *Cache) Peek(key Key) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		return nil, nil
	}
	ent := elem.Value.(*entry)
	return ent.payload, ent.err
}

// Snapshot — метаданные записи.
func (c *Cache) Snapshot(key Key) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		return Snapshot{Key: key}, false
	}
	ent := elem.Value.(*entry)
	return Snapshot{
		Key:       ent.key,
		HasData:   ent.hasData,
		FetchedAt: ent.fetchedAt,
		Stale:     ent.stale || c.expiredLocked(ent),
		Fetching:  ent.inflight,
		Retries:   ent.retries,
		Err:       ent.err,
	}, true
}

// Invalidate — помечает устаревшими записи, попадающие под селекторы.
// Возвращает число записей, ставших устаревшими.
func (c *Cache) Invalidate(selectors ...Key) int {
	if len(selectors) == 0 {
		return 0
	}

	c.mu.Lock()
	var touched []Key
	for elem := c.ll.Front(); elem != nil; elem = elem.Next() {
		ent := elem.Value.(*entry)
		if !matchesAny(ent.key, selectors) {
			continue
		}
		ent.version++
		if !ent.stale {
			ent.stale = true
			touched = append(touched, ent.key)
		}
	}
	events := c.eventsLocked(EventInvalidated, nil, touched...)
	c.mu.Unlock()

	if n := len(touched); n > 0 {
		metrics.CacheOps.WithLabelValues("invalidated").Add(float64(n))
	}
	dispatch(events)
	return len(touched)
}

// Clear — удаляет все записи (выход из сессии).
func (c *Cache) Clear() {
	c.mu.Lock()
	keys := make([]Key, 0, len(c.index))
	for k, elem := range c.index {
		keys = append(keys, k)
		if elem.Value.(*entry).inflight {
			c.group.Forget(k.String())
		}
	}
	c.gen++
	c.ll.Init()
	c.index = make(map[Key]*list.Element)
	events := c.eventsLocked(EventCleared, nil, keys...)
	c.mu.Unlock()

	metrics.CacheEntries.Sub(float64(len(keys)))
	metrics.CacheOps.WithLabelValues("cleared").Inc()
	dispatch(events)
}

// Subscribe — колбэк на события записей, попадающих под ключ или селектор.
// Колбэк вызывается вне блокировки кэша.
func (c *Cache) Subscribe(sel Key, fn func(Event)) (cancel func()) {
	c.mu.Lock()
	c.nextSub++
	id := c.nextSub
	c.subs[id] = subscriber{sel: sel, fn: fn}
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Len — число записей.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// ------вспомогательные функции------

func (c *Cache) load(ctx context.Context, key Key, fetch Fetcher) (any, error) {
	c.mu.Lock()
	// пока ждали singleflight, запись могла обновиться
	if payload, ok := c.freshLocked(key); ok {
		c.mu.Unlock()
		return payload, nil
	}
	gen := c.gen
	ent := c.upsertLocked(key)
	ent.inflight = true
	version := ent.version
	c.mu.Unlock()

	// загрузка не зависит от отмены первого вызывающего
	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opts.FetchTimeout)
	defer cancel()

	payload, attempts, err := c.fetchWithRetry(fetchCtx, key, fetch)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return payload, err
	}
	ent = c.upsertLocked(key)
	ent.inflight = false

	var events []delivery
	if err != nil {
		ent.err = err
		ent.retries = attempts - 1
		events = c.eventsLocked(EventFailed, err, key)
		prev, hasPrev := ent.payload, ent.hasData
		c.mu.Unlock()

		metrics.CacheOps.WithLabelValues("failed").Inc()
		dispatch(events)
		if hasPrev {
			return prev, err
		}
		return nil, err
	}

	ent.payload = payload
	ent.hasData = true
	ent.fetchedAt = c.opts.Now()
	ent.err = nil
	ent.retries = 0
	// инвалидация во время загрузки: данные могли быть прочитаны до мутации
	ent.stale = ent.version != version
	events = c.eventsLocked(EventRefreshed, nil, key)
	c.mu.Unlock()

	dispatch(events)
	return payload, nil
}

func (c *Cache) fetchWithRetry(ctx context.Context, key Key, fetch Fetcher) (any, int, error) {
	attempts := 0
	for {
		attempts++
		payload, err := safeFetch(ctx, fetch)
		if err == nil {
			return payload, attempts, nil
		}
		if attempts > c.opts.Retries || !retryable(err) {
			return nil, attempts, err
		}

		metrics.CacheOps.WithLabelValues("retry").Inc()
		if c.log != nil {
			c.log.Debugf(ctx, "query %s: attempt %d failed, retrying: %v", key, attempts, err)
		}
		timer := time.NewTimer(c.opts.RetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, attempts, err
		case <-timer.C:
		}
	}
}

func safeFetch(ctx context.Context, fetch Fetcher) (payload any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch panicked: %v", r)
		}
	}()
	return fetch(ctx)
}

// retryable — отказ авторизации и 4xx от бэкенда не повторяем.
func retryable(err error) bool {
	if errors.Is(err, domain.ErrUnauthorized) {
		return false
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable || apiErr.Status >= http.StatusInternalServerError
	}
	return true
}

func (c *Cache) freshLocked(key Key) (any, bool) {
	elem, ok := c.index[key]
	if !ok {
		return nil, false
	}
	ent := elem.Value.(*entry)
	if !ent.hasData || ent.stale || c.expiredLocked(ent) {
		return nil, false
	}
	c.ll.MoveToFront(elem)
	return ent.payload, true
}

func (c *Cache) expiredLocked(ent *entry) bool {
	if !ent.hasData || c.opts.StaleTime < 0 {
		return false
	}
	return c.opts.Now().Sub(ent.fetchedAt) >= c.opts.StaleTime
}

func (c *Cache) upsertLocked(key Key) *entry {
	if elem, ok := c.index[key]; ok {
		c.ll.MoveToFront(elem)
		return elem.Value.(*entry)
	}
	ent := &entry{key: key}
	c.index[key] = c.ll.PushFront(ent)
	metrics.CacheEntries.Inc()
	if c.ll.Len() > c.opts.Capacity {
		c.evictLRULocked()
	}
	return ent
}

// evictLRULocked — удаляет наименее используемую запись, не трогая идущие загрузки.
func (c *Cache) evictLRULocked() {
	for elem := c.ll.Back(); elem != nil && elem != c.ll.Front(); elem = elem.Prev() {
		ent := elem.Value.(*entry)
		if ent.inflight {
			continue
		}
		delete(c.index, ent.key)
		c.ll.Remove(elem)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
		metrics.CacheEntries.Dec()
		return
	}
}

func (c *Cache) eventsLocked(typ EventType, err error, keys ...Key) []delivery {
	if len(keys) == 0 || len(c.subs) == 0 {
		return nil
	}
	var out []delivery
	for _, k := range keys {
		for _, s := range c.subs {
			if k.Matches(s.sel) {
				out = append(out, delivery{fn: s.fn, ev: Event{Type: typ, Key: k, Err: err}})
			}
		}
	}
	return out
}

func matchesAny(k Key, selectors []Key) bool {
	for _, sel := range selectors {
		if k.Matches(sel) {
			return true
		}
	}
	return false
}
