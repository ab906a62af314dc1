package model

import (
	"time"
)

// Metric 时间戳标量观测，按 (entity_type, entity_id, type) 归属。
// subscribers 按自然日快照，views 保持单行最新值。
type Metric struct {
	ID         uint64    `gorm:"primaryKey"`
	EntityType string    `gorm:"type:varchar(16);not null;index:idx_entity" json:"entity_type"`
	EntityID   uint64    `gorm:"not null;index:idx_entity" json:"entity_id"`
	Type       string    `gorm:"type:varchar(32);not null;index:idx_entity" json:"type"`
	Value      int64     `gorm:"not null;default:0" json:"value"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Metric) TableName() string {
	return "metrics"
}
