package model

import (
	"time"
)

// Channel 被跟踪的外部频道。仅携带 name 的占位记录由关系发现按需创建，
// 待后续信息同步补全其余字段。
type Channel struct {
	ID          uint64    `gorm:"primaryKey"`
	TgID        string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_tg_id;column:tg_id" json:"tg_id"`
	Name        string    `gorm:"type:varchar(255)" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Verified    bool      `gorm:"type:tinyint(1);not null;default:0" json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
	// UpdatedAt 同时作为批次轮换的排序依据
	UpdatedAt time.Time `gorm:"index:idx_updated_at" json:"updated_at"`
}

func (Channel) TableName() string {
	return "channels"
}
