package metrics_test

import (
	"testing"

	"github.com/Gunvolt24/storage_portal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMustRegister_IsIdempotent(t *testing.T) {
	// Должно выполняться без паники даже при повторном вызове.
	metrics.MustRegister()
	metrics.MustRegister()
}

func TestKafkaCounters_Inc(t *testing.T) {
	metrics.MustRegister()

	beforeConsumed := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("storage-events"))
	beforeFailed := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues("storage-events"))

	metrics.KafkaMessagesConsumed.WithLabelValues("storage-events").Inc()
	metrics.KafkaMessagesFailed.WithLabelValues("storage-events").Inc()

	if got := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("storage-events")); got != beforeConsumed+1 {
		t.Fatalf("KafkaMessagesConsumed: got=%v want=%v", got, beforeConsumed+1)
	}
	if got := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues("storage-events")); got != beforeFailed+1 {
		t.Fatalf("KafkaMessagesFailed: got=%v want=%v", got, beforeFailed+1)
	}
}

func TestCacheOps_CountersByLabel(t *testing.T) {
	metrics.MustRegister()

	hitBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit"))
	dedupBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("dedup"))

	metrics.CacheOps.WithLabelValues("hit").Inc()
	metrics.CacheOps.WithLabelValues("hit").Inc()

	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit")); got != hitBefore+2 {
		t.Fatalf("CacheOps(hit): got=%v want=%v", got, hitBefore+2)
	}
	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("dedup")); got != dedupBefore {
		t.Fatalf("CacheOps(dedup): got=%v want=%v", got, dedupBefore)
	}
}

func TestWizardSubmissions_ByResult(t *testing.T) {
	metrics.MustRegister()

	okBefore := testutil.ToFloat64(metrics.WizardSubmissions.WithLabelValues("ok"))
	metrics.WizardSubmissions.WithLabelValues("ok").Inc()

	if got := testutil.ToFloat64(metrics.WizardSubmissions.WithLabelValues("ok")); got != okBefore+1 {
		t.Fatalf("WizardSubmissions(ok): got=%v want=%v", got, okBefore+1)
	}
}
