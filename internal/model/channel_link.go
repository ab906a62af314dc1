package model

import (
	"time"
)

// ChannelLink 频道内容中出现的外链，(channel_id, url) 唯一
type ChannelLink struct {
	ID        uint64    `gorm:"primaryKey"`
	ChannelID uint64    `gorm:"not null;uniqueIndex:idx_channel_url" json:"channel_id"`
	URL       string    `gorm:"type:varchar(512);not null;uniqueIndex:idx_channel_url" json:"url"`
	Host      string    `gorm:"type:varchar(255);index:idx_host" json:"host"`
	CreatedAt time.Time `json:"created_at"`
}

func (ChannelLink) TableName() string {
	return "channel_links"
}
