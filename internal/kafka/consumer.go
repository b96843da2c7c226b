package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/storage_portal/internal/ports"
	"github.com/Gunvolt24/storage_portal/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var _ ports.EventConsumer = (*Consumer)(nil)

// reader — то, что нужно от kafka.Reader (подменяется моком в тестах).
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// changeApplier — применяет уведомление об изменении ресурса к кэшам сессий.
// Невалидное сообщение возвращается как validate.ErrInvalidEvent.
type changeApplier interface {
	ApplyRemoteChange(ctx context.Context, raw []byte) error
}

// Consumer — читает уведомления бэкенда и инвалидирует затронутые записи кэшей.
type Consumer struct {
	reader         reader
	applier        changeApplier
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

func NewConsumer(cfg *ConsumerConfig, applier changeApplier, log ports.Logger) *Consumer {
	return newConsumer(kafka.NewReader(cfg.ReaderConfig()), cfg, applier, log)
}

func newConsumer(r reader, cfg *ConsumerConfig, applier changeApplier, log ports.Logger) *Consumer {
	pt := cfg.ProcessTimeout
	if pt <= 0 {
		pt = 5 * time.Second
	}
	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = time.Second
	}
	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 30 * time.Second
	}
	if rMax < rInit {
		rMax = rInit
	}

	return &Consumer{
		reader:         r,
		applier:        applier,
		log:            log,
		processTimeout: pt,
		retryInitial:   rInit,
		retryMax:       rMax,
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run — цикл до отмены контекста; каждое полученное сообщение коммитится.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	retry := c.retryInitial
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			sleep := c.withJitterEqual(retry)
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", err, sleep)
			if !c.sleep(ctx, sleep) {
				return ctx.Err()
			}
			retry = c.nextBackoff(retry)
			continue
		}

		retry = c.retryInitial
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		c.handleMessage(ctx, rc.Topic, &msg)
		c.commit(ctx, &msg)
	}
}

func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
