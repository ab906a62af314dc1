package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"Tgspace/internal/model"
)

type MetricRepo interface {
	// GetInWindow 查询窗口期内的指标行（自然日快照去重用）
	GetInWindow(ctx context.Context, entityType string, entityID uint64, metricType string, start, end time.Time) (*model.Metric, error)
	// GetLatest 查询实体当前的指标行（最新值策略用）
	GetLatest(ctx context.Context, entityType string, entityID uint64, metricType string) (*model.Metric, error)
	CreateMetric(ctx context.Context, metric *model.Metric) error
	UpdateValue(ctx context.Context, id uint64, value int64) error
}

type MetricRepoImpl struct {
	db *gorm.DB
}

func NewMetricRepository(db *gorm.DB) MetricRepo {
	return &MetricRepoImpl{db: db}
}

func (s MetricRepoImpl) GetInWindow(ctx context.Context, entityType string, entityID uint64, metricType string, start, end time.Time) (*model.Metric, error) {
	var metric model.Metric
	err := s.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ? AND type = ?", entityType, entityID, metricType).
		Where("created_at BETWEEN ? AND ?", start, end).
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}

func (s MetricRepoImpl) GetLatest(ctx context.Context, entityType string, entityID uint64, metricType string) (*model.Metric, error) {
	var metric model.Metric
	err := s.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ? AND type = ?", entityType, entityID, metricType).
		Order("id DESC").
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}

func (s MetricRepoImpl) CreateMetric(ctx context.Context, metric *model.Metric) error {
	return s.db.WithContext(ctx).Create(metric).Error
}

func (s MetricRepoImpl) UpdateValue(ctx context.Context, id uint64, value int64) error {
	return s.db.WithContext(ctx).Model(&model.Metric{}).
		Where("id = ?", id).
		Update("value", value).Error
}
