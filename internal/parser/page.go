package parser

import (
	"context"
	"time"
)

// Context 迭代上下文变量：目标频道标识与翻页下界。
// UntilPublishedAt 非零时，一旦某页最旧消息早于该时刻即不再翻页。
type Context struct {
	TgChannelID      string
	UntilPublishedAt time.Time
}

// Message 列表页中的一条消息记录
type Message struct {
	TgMessageID    int64
	Text           string
	Views          string
	PublishedAt    time.Time
	Links          []string
	ImagesCount    int
	VideoDurations []string
	VoiceDurations []string
	ForwardedName  string
	ForwardedURL   string
}

// Page 单次迭代的产出。StartTime 为整个迭代序列的起始时刻，
// 消费方以 now-StartTime 对照运行时长上限。
type Page struct {
	Iteration       int
	StartTime       time.Time
	Fields          map[string][]string
	Messages        []Message
	Before          int64
	LastPublishedAt time.Time
}

// Field 返回页面级字段的首个取值
func (p *Page) Field(key string) string {
	if vals := p.Fields[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// PageIterator 按需产出页面；序列耗尽时返回 (nil, nil)。
// 消费方提前停止时只需不再调用 Next，无须显式取消。
type PageIterator interface {
	Next(ctx context.Context) (*Page, error)
}

// Source 页面解析协作方的接口边界
type Source interface {
	Iterate(cfg *Config, pctx Context) PageIterator
}
