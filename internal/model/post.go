package model

import (
	"time"
)

// Post 频道消息的本地记录。不保存正文，只保存派生特征；
// 插入后除指标外不再变更。
type Post struct {
	ID          uint64 `gorm:"primaryKey"`
	ChannelID   uint64 `gorm:"not null;uniqueIndex:idx_channel_msg" json:"channel_id"`
	TgMessageID int64  `gorm:"not null;uniqueIndex:idx_channel_msg;column:tg_message_id" json:"tg_message_id"`

	WordsCount  int    `gorm:"not null;default:0" json:"words_count"`
	ImagesCount int    `gorm:"not null;default:0" json:"images_count"`
	VideosCount int    `gorm:"not null;default:0" json:"videos_count"`
	VoicesCount int    `gorm:"not null;default:0" json:"voices_count"`
	Duration    int    `gorm:"not null;default:0" json:"duration"`
	Lang        string `gorm:"type:varchar(8)" json:"lang"`

	Forwarded          bool      `gorm:"type:tinyint(1);not null;default:0" json:"forwarded"`
	ForwardedChannelID *uint64   `json:"forwarded_channel_id"`
	PublishedAt        time.Time `gorm:"not null;index:idx_published_at" json:"published_at"`
	CreatedAt          time.Time `json:"created_at"`
}

func (Post) TableName() string {
	return "posts"
}
