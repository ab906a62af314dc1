package service

import (
	"context"
	log "log/slog"
	"time"

	"Tgspace/internal/model"
	"Tgspace/internal/parser"
	"Tgspace/internal/pkg/util"
	"Tgspace/internal/repository"
)

type InfoSyncService interface {
	// SyncChannelInfo 同步频道元数据并记录订阅数快照，返回本次运行时长
	SyncChannelInfo(ctx context.Context, channel *model.Channel) (time.Duration, error)
}

type infoSyncServiceImpl struct {
	source      parser.Source
	schema      *parser.Config
	channelRepo repository.ChannelRepo
	metricSvc   MetricService
}

func NewInfoSyncService(
	source parser.Source,
	schema *parser.Config,
	channelRepo repository.ChannelRepo,
	metricSvc MetricService,
) InfoSyncService {
	return &infoSyncServiceImpl{
		source:      source,
		schema:      schema,
		channelRepo: channelRepo,
		metricSvc:   metricSvc,
	}
}

func (s *infoSyncServiceImpl) SyncChannelInfo(ctx context.Context, channel *model.Channel) (time.Duration, error) {
	if channel.TgID == "" {
		return 0, ErrMissingTgID
	}
	if s.schema == nil {
		return 0, ErrSchemaNotLoaded
	}

	it := s.source.Iterate(s.schema, parser.Context{TgChannelID: channel.TgID})

	var runTime time.Duration
	for {
		page, err := it.Next(ctx)
		if err != nil {
			return runTime, err
		}
		if page == nil {
			break
		}
		runTime = time.Since(page.StartTime)

		log.InfoContext(ctx, "channel info page",
			"channel_id", channel.ID, "iteration", page.Iteration, "run_time", runTime)

		subscribers := util.ToFullNumber(page.Field("subscribers"))
		if err := s.metricSvc.RecordSubscribers(ctx, channel.ID, subscribers); err != nil {
			return runTime, err
		}

		name := page.Field("title")
		if name == "" {
			name = "@" + channel.TgID
		}
		verified := page.Field("verified") != "" && page.Field("verified") != "0"

		if err := s.channelRepo.UpdateInfo(ctx, channel.ID, name, page.Field("description"), verified); err != nil {
			return runTime, err
		}
	}

	return runTime, nil
}
