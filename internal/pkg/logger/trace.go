package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey 定义 Context 中的 Key，每次批次运行持有独立 trace_id
const TraceIDKey = "trace_id"

// ContextHandler 包装器，把 ctx 中的 trace_id 附加到每条日志
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
			r.AddAttrs(log.String(TraceIDKey, traceID))
		}
	}
	return h.Handler.Handle(ctx, r)
}
