package logger

import (
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// SetupResty 为抓取客户端挂载请求日志：记录目标地址、状态码与耗时，
// 慢请求与错误分级告警
func SetupResty(client *resty.Client) {
	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		fields := []any{
			log.String("method", resp.Request.Method),
			log.String("url", resp.Request.URL),
			log.Int("status", resp.StatusCode()),
			log.Duration("latency", resp.Time()),
		}

		if resp.IsError() {
			log.ErrorContext(resp.Request.Context(), "PAGE_FETCH_ERROR", fields...)
		} else if resp.Time() > 5*time.Second {
			log.WarnContext(resp.Request.Context(), "PAGE_FETCH_SLOW", fields...)
		} else {
			log.InfoContext(resp.Request.Context(), "PAGE_FETCH", fields...)
		}
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		log.ErrorContext(req.Context(), "PAGE_FETCH_FAILED",
			log.String("method", req.Method),
			log.String("url", req.URL),
			log.Any("err", err),
		)
	})
}
