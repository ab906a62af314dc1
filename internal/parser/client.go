package parser

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"Tgspace/internal/config"
	"Tgspace/internal/pkg/logger"
)

// Client 基于 resty 的页面抓取客户端，实现 Source
type Client struct {
	http *resty.Client
}

func NewClient(cfg *config.ParserConfig) *Client {
	client := resty.New().
		SetTimeout(time.Duration(cfg.TimeoutMs) * time.Millisecond).
		SetHeader("User-Agent", cfg.UserAgent).
		SetRedirectPolicy(resty.NoRedirectPolicy())
	logger.SetupResty(client)

	return &Client{http: client}
}

func (c *Client) Iterate(cfg *Config, pctx Context) PageIterator {
	return &iterator{client: c.http, cfg: cfg, pctx: pctx}
}

// iterator 按需翻页。频道页重定向或请求失败视为本序列终止并上报错误。
type iterator struct {
	client    *resty.Client
	cfg       *Config
	pctx      Context
	iteration int
	startTime time.Time
	before    int64
	done      bool
}

func (it *iterator) Next(ctx context.Context) (*Page, error) {
	if it.done {
		return nil, nil
	}
	if it.startTime.IsZero() {
		it.startTime = time.Now()
	}

	target := strings.ReplaceAll(it.cfg.Target, "{tgChannelId}", it.pctx.TgChannelID)

	req := it.client.R().SetContext(ctx)
	if it.before > 0 {
		req.SetQueryParam("before", strconv.FormatInt(it.before, 10))
	}

	resp, err := req.Get(target)
	if err != nil {
		it.done = true
		return nil, errors.Wrapf(err, "fetch %s", target)
	}
	if resp.IsError() {
		it.done = true
		return nil, errors.Errorf("fetch %s: status %d", target, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		it.done = true
		return nil, errors.Wrapf(err, "parse %s", target)
	}

	page := &Page{
		Iteration: it.iteration,
		StartTime: it.startTime,
		Fields:    make(map[string][]string),
	}
	it.iteration++

	for _, rule := range it.cfg.Parse {
		page.Fields[rule.Key] = evalPick(doc.Selection, rule.Pick)
	}

	if it.cfg.List == nil {
		// 单页模式：一次迭代即耗尽
		it.done = true
		return page, nil
	}

	doc.Find(it.cfg.List.Selector).Each(func(_ int, sel *goquery.Selection) {
		fields := make(map[string][]string, len(it.cfg.List.Parse))
		for _, rule := range it.cfg.List.Parse {
			fields[rule.Key] = evalPick(sel, rule.Pick)
		}
		if msg, ok := buildMessage(fields); ok {
			page.Messages = append(page.Messages, msg)
		}
	})

	if len(page.Messages) == 0 {
		it.done = true
		return page, nil
	}

	for _, m := range page.Messages {
		if page.Before == 0 || m.TgMessageID < page.Before {
			page.Before = m.TgMessageID
		}
		if !m.PublishedAt.IsZero() &&
			(page.LastPublishedAt.IsZero() || m.PublishedAt.Before(page.LastPublishedAt)) {
			page.LastPublishedAt = m.PublishedAt
		}
	}

	switch {
	case it.before != 0 && page.Before >= it.before:
		// 游标未推进，避免死循环
		it.done = true
	case !it.pctx.UntilPublishedAt.IsZero() && !page.LastPublishedAt.IsZero() &&
		page.LastPublishedAt.Before(it.pctx.UntilPublishedAt):
		it.done = true
	default:
		it.before = page.Before
	}

	return page, nil
}
