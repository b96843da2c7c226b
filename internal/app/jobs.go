package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/storage_portal/internal/ports"
	"github.com/robfig/cron/v3"
)

// jobTimeout — предел одного запуска задачи.
const jobTimeout = time.Minute

// Job — периодическая задача.
type Job func(ctx context.Context) error

// Scheduler — периодические задачи процесса поверх cron.
type Scheduler struct {
	cron *cron.Cron
	log  ports.Logger

	mu   sync.RWMutex
	base context.Context
}

func NewScheduler(log ports.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:  log,
		base: context.Background(),
	}
}

// Add — регистрирует задачу; spec в формате cron или "@every 10m".
func (s *Scheduler) Add(name, spec string, job Job) error {
	if _, err := s.cron.AddFunc(spec, func() { s.run(name, job) }); err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	return nil
}

// Len — число зарегистрированных задач.
func (s *Scheduler) Len() int { return len(s.cron.Entries()) }

// Start — запускает расписание; задачи получают ctx (без отмены по нему самому).
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.base = context.WithoutCancel(ctx)
	s.mu.Unlock()
	s.cron.Start()
}

// Stop — останавливает расписание и ждёт текущие запуски, но не дольше ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warnf(ctx, "scheduler stop: running jobs not finished: %v", ctx.Err())
	}
}

func (s *Scheduler) run(name string, job Job) {
	s.mu.RLock()
	base := s.base
	s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(base, jobTimeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		s.log.Warnf(ctx, "job %s failed after %s: %v", name, time.Since(start), err)
		return
	}
	s.log.Debugf(ctx, "job %s done in %s", name, time.Since(start))
}
