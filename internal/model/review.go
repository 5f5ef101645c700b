package model

import (
	"time"
)

type Review struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	ListingID    int64      `gorm:"not null;index:idx_review_pair,unique" json:"listing_id"`
	CoupleID     int64      `gorm:"not null;index:idx_review_pair,unique" json:"couple_id"` // couple 的 user id
	Rating       int        `gorm:"not null" json:"rating"`                                 // 1-5
	Content      string     `gorm:"type:text" json:"content"`
	Response     *string    `gorm:"type:text" json:"response,omitempty"` // 商家回复，只能写一次
	ResponseDate *time.Time `json:"response_date,omitempty"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// 关联
	Couple *Couple `gorm:"foreignKey:CoupleID;references:UserID" json:"couple,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
