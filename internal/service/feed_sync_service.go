package service

import (
	"context"
	log "log/slog"
	"time"

	"Tgspace/internal/config"
	"Tgspace/internal/model"
	"Tgspace/internal/parser"
	"Tgspace/internal/pkg/util"
	"Tgspace/internal/repository"
)

// itemResult 单条消息的处理结果，计数后写入同步日志
type itemResult int

const (
	itemInserted itemResult = iota
	itemReconciled
	itemSkipped
)

type FeedSyncService interface {
	// SyncChannelFeed 增量同步频道消息流，返回本次运行时长。
	// 翻页在窗口下界或运行时长超限时停止，已提交的条目不回滚。
	SyncChannelFeed(ctx context.Context, channel *model.Channel) (time.Duration, error)
}

type feedSyncServiceImpl struct {
	source      parser.Source
	schema      *parser.Config
	postRepo    repository.PostRepo
	linkRepo    repository.ChannelLinkRepo
	metricSvc   MetricService
	relationSvc RelationService
	cfg         *config.SyncConfig
}

func NewFeedSyncService(
	source parser.Source,
	schema *parser.Config,
	postRepo repository.PostRepo,
	linkRepo repository.ChannelLinkRepo,
	metricSvc MetricService,
	relationSvc RelationService,
	cfg *config.SyncConfig,
) FeedSyncService {
	return &feedSyncServiceImpl{
		source:      source,
		schema:      schema,
		postRepo:    postRepo,
		linkRepo:    linkRepo,
		metricSvc:   metricSvc,
		relationSvc: relationSvc,
		cfg:         cfg,
	}
}

func (s *feedSyncServiceImpl) SyncChannelFeed(ctx context.Context, channel *model.Channel) (time.Duration, error) {
	if channel.TgID == "" {
		return 0, ErrMissingTgID
	}
	if s.schema == nil {
		return 0, ErrSchemaNotLoaded
	}

	// 窗口默认按频道取最近发布时刻，global 模式保留跨频道下界的旧行为
	var scopeID *uint64
	if s.cfg.WindowScope != "global" {
		scopeID = &channel.ID
	}
	lastPublished, err := s.postRepo.GetMaxPublishedAt(ctx, scopeID)
	if err != nil {
		return 0, err
	}

	window := newFeedWindow(lastPublished, s.cfg.LookbackDays)
	clock := runClock{limit: time.Duration(s.cfg.ChannelRunTimeLimitMs) * time.Millisecond}

	it := s.source.Iterate(s.schema, parser.Context{
		TgChannelID:      channel.TgID,
		UntilPublishedAt: window.Until(),
	})

	var runTime time.Duration
	var inserted, reconciled, skipped int

	for {
		page, err := it.Next(ctx)
		if err != nil {
			return runTime, err
		}
		if page == nil {
			break
		}

		elapsed, over := clock.exceeded(page.StartTime)
		runTime = elapsed
		log.InfoContext(ctx, "channel feed page",
			"channel_id", channel.ID, "iteration", page.Iteration,
			"messages", len(page.Messages), "run_time", elapsed)
		if over {
			log.InfoContext(ctx, "feed sync stopped by run time limit",
				"channel_id", channel.ID, "run_time", elapsed)
			break
		}

		tgMessageIDs := make([]int64, 0, len(page.Messages))
		for _, msg := range page.Messages {
			tgMessageIDs = append(tgMessageIDs, msg.TgMessageID)
		}

		// 存量查询失败时放弃本轮 feed 同步，宁可推迟也不冒重复写入的风险
		existing, err := s.postRepo.FindByTgMessageIDs(ctx, channel.ID, tgMessageIDs)
		if err != nil {
			return runTime, err
		}

		for i := range page.Messages {
			result, err := s.processMessage(ctx, channel, &page.Messages[i], window, existing)
			if err != nil {
				return runTime, err
			}
			switch result {
			case itemInserted:
				inserted++
			case itemReconciled:
				reconciled++
			case itemSkipped:
				skipped++
			}
		}
	}

	log.InfoContext(ctx, "channel feed sync done",
		"channel_id", channel.ID, "inserted", inserted,
		"reconciled", reconciled, "skipped", skipped, "run_time", runTime)

	return runTime, nil
}

func (s *feedSyncServiceImpl) processMessage(
	ctx context.Context,
	channel *model.Channel,
	msg *parser.Message,
	window feedWindow,
	existing map[int64]uint64,
) (itemResult, error) {
	if !window.Includes(msg.PublishedAt) {
		return itemSkipped, nil
	}

	if postID, ok := existing[msg.TgMessageID]; ok {
		return itemReconciled, s.metricSvc.ReconcileViews(ctx, postID, util.ToFullNumber(msg.Views))
	}

	return itemInserted, s.insertPost(ctx, channel, msg)
}

func (s *feedSyncServiceImpl) insertPost(ctx context.Context, channel *model.Channel, msg *parser.Message) error {
	var forwardedChannelID *uint64
	if msg.ForwardedURL != "" {
		id, err := s.relationSvc.ResolveChannelRef(ctx, msg.ForwardedURL)
		if err != nil {
			return err
		}
		forwardedChannelID = id
	}

	duration := 0
	for _, d := range msg.VideoDurations {
		duration += util.TimeToSeconds(d)
	}
	for _, d := range msg.VoiceDurations {
		duration += util.TimeToSeconds(d)
	}

	post := &model.Post{
		ChannelID:          channel.ID,
		TgMessageID:        msg.TgMessageID,
		WordsCount:         util.WordsCount(msg.Text),
		ImagesCount:        msg.ImagesCount,
		VideosCount:        len(msg.VideoDurations),
		VoicesCount:        len(msg.VoiceDurations),
		Duration:           duration,
		Lang:               util.DetectLang(msg.Text),
		Forwarded:          msg.ForwardedName != "",
		ForwardedChannelID: forwardedChannelID,
		PublishedAt:        msg.PublishedAt,
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return err
	}

	// 指标在帖子落库后写入，避免悬挂引用
	if err := s.metricSvc.RecordViews(ctx, post.ID, util.ToFullNumber(msg.Views)); err != nil {
		return err
	}

	return s.saveLinks(ctx, channel.ID, msg.Links)
}

func (s *feedSyncServiceImpl) saveLinks(ctx context.Context, channelID uint64, links []string) error {
	valid := make([]string, 0, len(links))
	for _, raw := range links {
		if util.IsValidHTTPURL(raw) {
			valid = append(valid, raw)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	found, err := s.linkRepo.FindByURLs(ctx, channelID, valid)
	if err != nil {
		return err
	}

	for _, raw := range valid {
		if _, ok := found[raw]; !ok {
			link := &model.ChannelLink{
				ChannelID: channelID,
				URL:       raw,
				Host:      util.HostOf(raw),
			}
			if err := s.linkRepo.UpsertLink(ctx, link); err != nil {
				return err
			}
		}

		// 指向 t.me 的外链顺带补全频道占位记录
		if util.IsTgLink(raw) {
			if _, err := s.relationSvc.ResolveChannelRef(ctx, raw); err != nil {
				return err
			}
		}
	}
	return nil
}
