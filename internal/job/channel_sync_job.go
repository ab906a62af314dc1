package job

import (
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"

	"Tgspace/internal/config"
	"Tgspace/internal/pkg/consts"
	"Tgspace/internal/pkg/logger"
	"Tgspace/internal/pkg/redis"
	"Tgspace/internal/service"
)

// ChannelSyncJob 定时批量同步任务，通过 Redis 互斥锁避免批次重叠
type ChannelSyncJob struct {
	syncSvc service.SyncService
	rdb     *redis.Client
	cfg     *config.SyncConfig
}

func NewChannelSyncJob(syncSvc service.SyncService, rdb *redis.Client, cfg *config.SyncConfig) *ChannelSyncJob {
	return &ChannelSyncJob{
		syncSvc: syncSvc,
		rdb:     rdb,
		cfg:     cfg,
	}
}

func (j *ChannelSyncJob) Run() {
	traceID := "job-sync-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// 锁期取总预算的两倍，批次异常退出后由过期时间兜底
	ttl := time.Duration(j.cfg.OverallRunTimeLimitMs) * time.Millisecond * 2
	ok, err := j.rdb.TryLock(ctx, consts.SyncBatchLockKey, traceID, ttl, 0)
	if err != nil {
		log.ErrorContext(ctx, "acquire sync lock failed", "err", err)
		return
	}
	if !ok {
		log.InfoContext(ctx, "previous batch still running, skip this round")
		return
	}
	defer j.rdb.UnLock(ctx, consts.SyncBatchLockKey, traceID)

	report, err := j.syncSvc.RunBatch(ctx)
	if err != nil {
		log.ErrorContext(ctx, "batch sync failed", "err", err)
		return
	}

	log.InfoContext(ctx, "batch sync success",
		"selected", report.Selected,
		"processed", report.Processed,
		"skipped", report.Skipped,
		"deferred", report.Deferred,
		"elapsed", report.Elapsed)
}
