package wire

import (
	"gorm.io/gorm"

	"Tgspace/internal/config"
	"Tgspace/internal/job"
	"Tgspace/internal/parser"
	"Tgspace/internal/pkg/cron"
	"Tgspace/internal/pkg/redis"
	"Tgspace/internal/repository"
	"Tgspace/internal/service"
)

// ApplicationContainer 持有应用运行期的全部组件
type ApplicationContainer struct {
	DB      *gorm.DB
	Redis   *redis.Client
	SyncJob *job.ChannelSyncJob
	CronMgr *cron.Manager // schedule 为空时为 nil，此时只跑单次批量
}

// BuildApplication 手工装配依赖
func BuildApplication(db *gorm.DB, rdb *redis.Client, cfg *config.Config) (*ApplicationContainer, error) {
	infoSchema, err := parser.ParseConfig(cfg.Parser.InfoSchema)
	if err != nil {
		return nil, err
	}
	feedSchema, err := parser.ParseConfig(cfg.Parser.FeedSchema)
	if err != nil {
		return nil, err
	}
	source := parser.NewClient(&cfg.Parser)

	channelRepo := repository.NewChannelRepository(db)
	postRepo := repository.NewPostRepository(db)
	metricRepo := repository.NewMetricRepository(db)
	linkRepo := repository.NewChannelLinkRepository(db)

	metricSvc := service.NewMetricService(metricRepo)
	relationSvc := service.NewRelationService(channelRepo)
	infoSvc := service.NewInfoSyncService(source, infoSchema, channelRepo, metricSvc)
	feedSvc := service.NewFeedSyncService(source, feedSchema, postRepo, linkRepo, metricSvc, relationSvc, &cfg.Sync)
	syncSvc := service.NewSyncService(channelRepo, infoSvc, feedSvc, &cfg.Sync)

	syncJob := job.NewChannelSyncJob(syncSvc, rdb, &cfg.Sync)

	var cronMgr *cron.Manager
	if cfg.Sync.Schedule != "" {
		cronMgr = cron.NewCronManager(syncJob, cfg.Sync.Schedule)
	}

	return &ApplicationContainer{
		DB:      db,
		Redis:   rdb,
		SyncJob: syncJob,
		CronMgr: cronMgr,
	}, nil
}
