//go:build !otel

package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/storage_portal/pkg/ctxmeta"
)

func TestTraceFromContext_WithoutOtelTag(t *testing.T) {
	if tr, ok := ctxmeta.TraceFromContext(context.Background()); ok || tr != (ctxmeta.Trace{}) {
		t.Fatalf("TraceFromContext => %+v,%v; want zero, false", tr, ok)
	}
}
