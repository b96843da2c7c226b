package querycache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/Gunvolt24/storage_portal/internal/domain"
)

// ErrMutationInFlight — предыдущий вызов этой мутации ещё не завершён.
var ErrMutationInFlight = errors.New("mutation already in flight")

// MutationSpec — описание мутации: сетевой вызов, затрагиваемые ключи и колбэки.
type MutationSpec[In, Out any] struct {
	Call func(ctx context.Context, in In) (Out, error)
	// Affects — ключи и селекторы, которые станут устаревшими после успеха.
	Affects   func(in In, out Out) []Key
	OnSuccess func(in In, out Out)
	OnError   func(in In, err *domain.APIError)
}

// Mutation — запись через бэкенд: один сетевой вызов, без оптимистичных изменений кэша.
type Mutation[In, Out any] struct {
	cache   *Cache
	spec    MutationSpec[In, Out]
	pending atomic.Bool
}

func NewMutation[In, Out any](c *Cache, spec MutationSpec[In, Out]) *Mutation[In, Out] {
	return &Mutation[In, Out]{cache: c, spec: spec}
}

// Invalidates — статический набор затрагиваемых ключей.
func Invalidates[In, Out any](keys ...Key) func(In, Out) []Key {
	return func(In, Out) []Key { return keys }
}

// Pending — идёт ли сейчас вызов (для блокировки повторной отправки).
func (m *Mutation[In, Out]) Pending() bool { return m.pending.Load() }

// Mutate — выполняет вызов. При успехе инвалидирует объявленные ключи,
// при ошибке кэш не трогает и возвращает *domain.APIError. Паника вызова
// превращается в ошибку.
func (m *Mutation[In, Out]) Mutate(ctx context.Context, in In) (out Out, err error) {
	if !m.pending.CompareAndSwap(false, true) {
		return out, ErrMutationInFlight
	}
	defer m.pending.Store(false)

	out, err = m.call(ctx, in)
	if err != nil {
		var zero Out
		apiErr := domain.NormalizeError(err)
		if m.spec.OnError != nil {
			m.spec.OnError(in, apiErr)
		}
		return zero, apiErr
	}

	if m.spec.Affects != nil {
		m.cache.Invalidate(m.spec.Affects(in, out)...)
	}
	if m.spec.OnSuccess != nil {
		m.spec.OnSuccess(in, out)
	}
	return out, nil
}

func (m *Mutation[In, Out]) call(ctx context.Context, in In) (out Out, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mutation panicked: %v", r)
		}
	}()
	return m.spec.Call(ctx, in)
}
