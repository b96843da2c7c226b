//go:build !otel || gopls

package ctxmeta

import "context"

// TraceFromContext — без тега otel трейс в логи не попадает.
func TraceFromContext(context.Context) (Trace, bool) { return Trace{}, false }
