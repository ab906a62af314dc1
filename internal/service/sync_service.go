package service

import (
	"context"
	log "log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"Tgspace/internal/config"
	"Tgspace/internal/model"
	"Tgspace/internal/pkg/util"
	"Tgspace/internal/repository"
)

// BatchReport 一轮批量同步的汇总结果
type BatchReport struct {
	Selected  int           // 本轮选中的频道数
	Processed int           // 实际同步的频道数
	Skipped   int           // 因机器人后缀跳过的频道数
	Deferred  int           // 总预算耗尽后推迟的频道数
	Elapsed   time.Duration // 各频道运行时长之和
}

type SyncService interface {
	// RunBatch 按轮换顺序取一批频道并逐一同步，单个频道失败不影响其余频道
	RunBatch(ctx context.Context) (*BatchReport, error)
}

type syncServiceImpl struct {
	channelRepo repository.ChannelRepo
	infoSvc     InfoSyncService
	feedSvc     FeedSyncService
	cfg         *config.SyncConfig
}

func NewSyncService(
	channelRepo repository.ChannelRepo,
	infoSvc InfoSyncService,
	feedSvc FeedSyncService,
	cfg *config.SyncConfig,
) SyncService {
	return &syncServiceImpl{
		channelRepo: channelRepo,
		infoSvc:     infoSvc,
		feedSvc:     feedSvc,
		cfg:         cfg,
	}
}

func (s *syncServiceImpl) RunBatch(ctx context.Context) (*BatchReport, error) {
	channels, err := s.channelRepo.SelectForSync(ctx, s.cfg.BatchSize)
	if err != nil {
		return nil, err
	}

	report := &BatchReport{Selected: len(channels)}
	if len(channels) == 0 {
		return report, nil
	}

	// 选中即触达，失败的频道同样排到轮换队尾，避免坏频道堵住队列
	ids := make([]uint64, 0, len(channels))
	for _, channel := range channels {
		ids = append(ids, channel.ID)
	}
	if err := s.channelRepo.TouchChannels(ctx, ids); err != nil {
		return nil, err
	}

	overall := time.Duration(s.cfg.OverallRunTimeLimitMs) * time.Millisecond

	for i, channel := range channels {
		if report.Elapsed > overall {
			report.Deferred = len(channels) - i
			log.InfoContext(ctx, "batch budget exhausted",
				"elapsed", report.Elapsed, "deferred", report.Deferred)
			break
		}

		if util.IsBotHandle(channel.TgID) {
			report.Skipped++
			continue
		}

		report.Elapsed += s.syncChannel(ctx, channel)
		report.Processed++
	}

	return report, nil
}

// syncChannel 资料页与消息流并行同步，错误各自记日志不上抛
func (s *syncServiceImpl) syncChannel(ctx context.Context, channel *model.Channel) time.Duration {
	var infoTime, feedTime time.Duration

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		t, err := s.infoSvc.SyncChannelInfo(egCtx, channel)
		infoTime = t
		if err != nil {
			log.ErrorContext(ctx, "channel info sync failed",
				"channel_id", channel.ID, "tg_id", channel.TgID, "err", err)
		}
		return nil
	})
	eg.Go(func() error {
		t, err := s.feedSvc.SyncChannelFeed(egCtx, channel)
		feedTime = t
		if err != nil {
			log.ErrorContext(ctx, "channel feed sync failed",
				"channel_id", channel.ID, "tg_id", channel.TgID, "err", err)
		}
		return nil
	})
	_ = eg.Wait()

	return infoTime + feedTime
}
