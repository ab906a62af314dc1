package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Tgspace/internal/model"
)

type ChannelLinkRepo interface {
	// FindByURLs 批量查询频道内已收录的链接
	FindByURLs(ctx context.Context, channelID uint64, urls []string) (map[string]struct{}, error)
	// UpsertLink 采用 Upsert 逻辑，(channel_id, url) 冲突时静默跳过
	UpsertLink(ctx context.Context, link *model.ChannelLink) error
}

type ChannelLinkRepoImpl struct {
	db *gorm.DB
}

func NewChannelLinkRepository(db *gorm.DB) ChannelLinkRepo {
	return &ChannelLinkRepoImpl{db: db}
}

func (s ChannelLinkRepoImpl) FindByURLs(ctx context.Context, channelID uint64, urls []string) (map[string]struct{}, error) {
	result := make(map[string]struct{}, len(urls))
	if len(urls) == 0 {
		return result, nil
	}

	var links []*model.ChannelLink
	err := s.db.WithContext(ctx).
		Select("url").
		Where("channel_id = ? AND url IN ?", channelID, urls).
		Find(&links).Error
	if err != nil {
		return nil, err
	}

	for _, l := range links {
		result[l.URL] = struct{}{}
	}
	return result, nil
}

func (s ChannelLinkRepoImpl) UpsertLink(ctx context.Context, link *model.ChannelLink) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "channel_id"}, {Name: "url"}},
		DoNothing: true,
	}).Create(link).Error
}
