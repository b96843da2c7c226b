package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of backend change events fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of backend change events applied successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of backend change events failed to apply",
		},
		[]string{"topic"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_cache_operations_total",
			Help: "Query cache operations",
		},
		[]string{"op"}, // hit|miss|stale|dedup|retry|failed|invalidated|evicted|cleared
	)
	// CacheEntries — суммарно по всем сессионным кэшам процесса.
	CacheEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "query_cache_entries",
			Help: "Number of entries currently held by all session caches",
		},
	)
)

var (
	BackendRequests = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Latency of calls to the storage backend",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action", "status"},
	)
	WizardTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_transitions_total",
			Help: "Wizard step transitions by operation and outcome",
		},
		[]string{"op", "result"}, // op: open|advance|retreat|close; result: ok|blocked
	)
	WizardSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_submissions_total",
			Help: "Order submissions issued by the wizard",
		},
		[]string{"result"}, // ok|failed|rejected
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "portal_active_sessions",
			Help: "Sessions with a live workspace in this process",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в default registry; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
			CacheOps, CacheEntries,
			BackendRequests, WizardTransitions, WizardSubmissions, ActiveSessions,
		)
	})
}
