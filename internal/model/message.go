package model

import (
	"time"
)

type Message struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	ThreadID   int64     `gorm:"not null;index" json:"thread_id"`
	SenderID   int64     `gorm:"not null;index" json:"sender_id"`
	ReceiverID int64     `gorm:"not null;index" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Automated  bool      `gorm:"default:false" json:"automated"` // 状态变更时系统追加的通知消息
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
