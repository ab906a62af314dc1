package parser

import (
	"strconv"
	"strings"
	"time"
)

// 消息模式约定的字段键。id 取自 data-post 形式的 "handle/123" 属性值。
const (
	keyID             = "id"
	keyText           = "text"
	keyViews          = "views"
	keyPublishedAt    = "publishedAt"
	keyLinks          = "links"
	keyImages         = "images"
	keyVideoDurations = "videoDurations"
	keyVoiceDurations = "voiceDurations"
	keyForwardedName  = "forwardedName"
	keyForwardedURL   = "forwardedUrl"
)

// buildMessage 把按规则提取的字段组装为消息记录。
// 无法取得消息 id 的元素（服务通知、占位卡片）整体丢弃。
func buildMessage(fields map[string][]string) (Message, bool) {
	first := func(key string) string {
		if vals := fields[key]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}

	id := parseMessageID(first(keyID))
	if id == 0 {
		return Message{}, false
	}

	msg := Message{
		TgMessageID:    id,
		Text:           first(keyText),
		Views:          first(keyViews),
		Links:          fields[keyLinks],
		VideoDurations: fields[keyVideoDurations],
		VoiceDurations: fields[keyVoiceDurations],
		ForwardedName:  first(keyForwardedName),
		ForwardedURL:   first(keyForwardedURL),
	}

	if raw := first(keyPublishedAt); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			msg.PublishedAt = t
		}
	}
	if raw := first(keyImages); raw != "" {
		msg.ImagesCount, _ = strconv.Atoi(raw)
	}

	return msg, true
}

// parseMessageID 从 "handle/123" 取末段数字
func parseMessageID(raw string) int64 {
	if raw == "" {
		return 0
	}
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		raw = raw[i+1:]
	}
	id, _ := strconv.ParseInt(raw, 10, 64)
	return id
}
