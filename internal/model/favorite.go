package model

import (
	"time"
)

// Favorite 新人收藏的商家
type Favorite struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	CoupleID  int64     `gorm:"not null;index:idx_favorite_pair,unique" json:"couple_id"` // couple 的 user id
	ListingID int64     `gorm:"not null;index:idx_favorite_pair,unique" json:"listing_id"`
	Note      string    `gorm:"size:500" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
