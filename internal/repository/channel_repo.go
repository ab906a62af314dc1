package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Tgspace/internal/model"
)

type ChannelRepo interface {
	GetChannel(ctx context.Context, id uint64) (*model.Channel, error)
	GetChannelByTgID(ctx context.Context, tgID string) (*model.Channel, error)
	// CreateStub 创建占位频道，并发重复创建时返回既有记录
	CreateStub(ctx context.Context, tgID string, name string) (*model.Channel, error)
	// SelectForSync 取最久未同步的一批频道（updated_at 升序）
	SelectForSync(ctx context.Context, limit int) ([]*model.Channel, error)
	// TouchChannels 将选中频道的 updated_at 置为当前时刻（至少一次的认领语义）
	TouchChannels(ctx context.Context, ids []uint64) error
	UpdateInfo(ctx context.Context, id uint64, name string, description string, verified bool) error
}

type ChannelRepoImpl struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepo {
	return &ChannelRepoImpl{db: db}
}

func (s ChannelRepoImpl) GetChannel(ctx context.Context, id uint64) (*model.Channel, error) {
	var channel model.Channel
	err := s.db.WithContext(ctx).First(&channel, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &channel, nil
}

func (s ChannelRepoImpl) GetChannelByTgID(ctx context.Context, tgID string) (*model.Channel, error) {
	var channel model.Channel
	err := s.db.WithContext(ctx).Where("tg_id = ?", tgID).First(&channel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &channel, nil
}

func (s ChannelRepoImpl) CreateStub(ctx context.Context, tgID string, name string) (*model.Channel, error) {
	stub := &model.Channel{TgID: tgID, Name: name}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tg_id"}},
		DoNothing: true,
	}).Create(stub).Error
	if err != nil {
		return nil, err
	}
	if stub.ID != 0 {
		return stub, nil
	}
	// 冲突未插入，读取既有记录
	return s.GetChannelByTgID(ctx, tgID)
}

func (s ChannelRepoImpl) SelectForSync(ctx context.Context, limit int) ([]*model.Channel, error) {
	var channels []*model.Channel
	err := s.db.WithContext(ctx).
		Order("updated_at ASC").
		Limit(limit).
		Find(&channels).Error
	if err != nil {
		return nil, err
	}
	return channels, nil
}

func (s ChannelRepoImpl) TouchChannels(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(&model.Channel{}).
		Where("id IN ?", ids).
		Update("updated_at", time.Now()).Error
}

func (s ChannelRepoImpl) UpdateInfo(ctx context.Context, id uint64, name string, description string, verified bool) error {
	return s.db.WithContext(ctx).Model(&model.Channel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":        name,
			"description": description,
			"verified":    verified,
			"updated_at":  time.Now(),
		}).Error
}
