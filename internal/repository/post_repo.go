package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"Tgspace/internal/model"
)

type PostRepo interface {
	// FindByTgMessageIDs 批量查询频道内已存在的消息，返回 tg_message_id -> 内部 id
	FindByTgMessageIDs(ctx context.Context, channelID uint64, tgMessageIDs []int64) (map[int64]uint64, error)
	CreatePost(ctx context.Context, post *model.Post) error
	// GetMaxPublishedAt 查询最近发布时刻；channelID 为 nil 时跨全部频道统计
	GetMaxPublishedAt(ctx context.Context, channelID *uint64) (time.Time, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s PostRepoImpl) FindByTgMessageIDs(ctx context.Context, channelID uint64, tgMessageIDs []int64) (map[int64]uint64, error) {
	result := make(map[int64]uint64, len(tgMessageIDs))
	if len(tgMessageIDs) == 0 {
		return result, nil
	}

	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Select("id", "tg_message_id").
		Where("channel_id = ? AND tg_message_id IN ?", channelID, tgMessageIDs).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		result[p.TgMessageID] = p.ID
	}
	return result, nil
}

func (s PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s PostRepoImpl) GetMaxPublishedAt(ctx context.Context, channelID *uint64) (time.Time, error) {
	query := s.db.WithContext(ctx).Model(&model.Post{})
	if channelID != nil {
		query = query.Where("channel_id = ?", *channelID)
	}

	var maxPublishedAt *time.Time
	err := query.Select("MAX(published_at)").Scan(&maxPublishedAt).Error
	if err != nil {
		return time.Time{}, err
	}
	if maxPublishedAt == nil {
		return time.Time{}, nil
	}
	return *maxPublishedAt, nil
}
