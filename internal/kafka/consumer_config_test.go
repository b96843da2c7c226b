package kafka_test

import (
	"slices"
	"testing"
	"time"

	mykafka "github.com/Gunvolt24/storage_portal/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func validConfig() mykafka.ConsumerConfig {
	return mykafka.ConsumerConfig{
		Brokers: []string{"k1:9092", "k2:9092"},
		Topic:   "storage.events",
		GroupID: "storage-portal",
	}
}

func TestConsumerConfig_StartOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		startOffset string
		wantOffset  int64
	}{
		{"first", kafkago.FirstOffset},
		{" FiRsT \n", kafkago.FirstOffset},
		{"", kafkago.LastOffset},
		{"LAST", kafkago.LastOffset},
		{"earliest", kafkago.LastOffset},
	}

	for _, tt := range tests {
		cfg := validConfig()
		cfg.StartOffset = tt.startOffset
		require.Equal(t, tt.wantOffset, cfg.ReaderConfig().StartOffset, "start_offset=%q", tt.startOffset)
	}
}

func TestConsumerConfig_ReaderConfig(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	rc := cfg.ReaderConfig()

	require.True(t, slices.Equal(rc.Brokers, cfg.Brokers))
	require.Equal(t, cfg.Topic, rc.Topic)
	require.Equal(t, cfg.GroupID, rc.GroupID)
	require.Zero(t, rc.CommitInterval, "ручной коммит")
	require.Equal(t, 500*time.Millisecond, rc.MaxWait)
	require.Equal(t, 1, rc.MinBytes)

	cfg.MaxWait = 2 * time.Second
	require.Equal(t, 2*time.Second, cfg.ReaderConfig().MaxWait)
}

func TestConsumerConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	cfg.Brokers = nil
	cfg.Topic = "  "
	err := cfg.Validate()
	require.ErrorContains(t, err, "no brokers")
	require.ErrorContains(t, err, "empty topic")
	require.NotContains(t, err.Error(), "group id")
}
