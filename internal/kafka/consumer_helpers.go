package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/storage_portal/pkg/metrics"
	"github.com/Gunvolt24/storage_portal/pkg/validate"
	"github.com/segmentio/kafka-go"
)

// handleMessage — применяет событие; ошибка только логируется,
// оффсет коммитится в любом случае.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) {
	ctxTimeout, cancel := context.WithTimeout(ctx, c.processTimeout)
	err := c.applier.ApplyRemoteChange(ctxTimeout, msg.Value)
	cancel()

	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
	case errors.Is(err, validate.ErrInvalidEvent):
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "invalid event partition=%d offset=%d: %v (skipped)", msg.Partition, msg.Offset, err)
	default:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "apply failed partition=%d offset=%d: %v (skipped)", msg.Partition, msg.Offset, err)
	}
}

func (c *Consumer) commit(ctx context.Context, msg *kafka.Message) {
	if err := c.reader.CommitMessages(ctx, *msg); err != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, err)
	}
}

// sleep — false, если контекст отменён раньше.
func (c *Consumer) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	return min(current*2, c.retryMax)
}

// withJitterEqual — половина задержки фиксирована, половина случайна.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(c.jitterRand.Int63n(int64(d-half)+1))
}
