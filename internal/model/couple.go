package model

import (
	"time"
)

// Couple 新人资料（每个 couple 账号一条）
type Couple struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	UserID       int64      `gorm:"not null;uniqueIndex" json:"user_id"`
	Partner1Name string     `gorm:"size:100;not null" json:"partner1_name"`
	Partner2Name string     `gorm:"size:100" json:"partner2_name"`
	Location     string     `gorm:"size:200" json:"location"`
	WeddingDate  *time.Time `json:"wedding_date,omitempty"`
	Budget       *float64   `gorm:"type:decimal(12,2)" json:"budget,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Couple) TableName() string {
	return "couples"
}
