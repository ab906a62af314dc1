package service

import (
	"context"
	"time"

	"Tgspace/internal/model"
	"Tgspace/internal/pkg/consts"
	"Tgspace/internal/pkg/util"
	"Tgspace/internal/repository"
)

type MetricService interface {
	// RecordSubscribers 记录订阅数快照，每频道每自然日至多一行
	RecordSubscribers(ctx context.Context, channelID uint64, value int64) error
	// RecordViews 新帖插入后写入首条浏览数
	RecordViews(ctx context.Context, postID uint64, value int64) error
	// ReconcileViews 对账既有帖子的浏览数，数值不变时不产生写入
	ReconcileViews(ctx context.Context, postID uint64, value int64) error
}

type metricServiceImpl struct {
	metricRepo repository.MetricRepo
}

func NewMetricService(metricRepo repository.MetricRepo) MetricService {
	return &metricServiceImpl{metricRepo: metricRepo}
}

func (s *metricServiceImpl) RecordSubscribers(ctx context.Context, channelID uint64, value int64) error {
	dayStart, dayEnd := util.DayWindow(time.Now())

	metric, err := s.metricRepo.GetInWindow(ctx,
		consts.EntityTypeChannel, channelID, consts.MetricTypeSubscribers, dayStart, dayEnd)
	if err != nil {
		return err
	}

	if metric != nil {
		if metric.Value == value {
			return nil
		}
		return s.metricRepo.UpdateValue(ctx, metric.ID, value)
	}

	return s.metricRepo.CreateMetric(ctx, &model.Metric{
		EntityType: consts.EntityTypeChannel,
		EntityID:   channelID,
		Type:       consts.MetricTypeSubscribers,
		Value:      value,
	})
}

func (s *metricServiceImpl) RecordViews(ctx context.Context, postID uint64, value int64) error {
	return s.metricRepo.CreateMetric(ctx, &model.Metric{
		EntityType: consts.EntityTypePost,
		EntityID:   postID,
		Type:       consts.MetricTypeViews,
		Value:      value,
	})
}

func (s *metricServiceImpl) ReconcileViews(ctx context.Context, postID uint64, value int64) error {
	metric, err := s.metricRepo.GetLatest(ctx,
		consts.EntityTypePost, postID, consts.MetricTypeViews)
	if err != nil {
		return err
	}

	// 既有帖子缺失浏览数行时补建，保持单行最新值
	if metric == nil {
		return s.RecordViews(ctx, postID, value)
	}
	if metric.Value == value {
		return nil
	}
	return s.metricRepo.UpdateValue(ctx, metric.ID, value)
}
