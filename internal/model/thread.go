package model

import (
	"time"
)

// 线索（会话）状态
const (
	ThreadPending  = "pending"
	ThreadAccepted = "accepted"
	ThreadDeclined = "declined"
	ThreadClosed   = "closed"
)

// Thread 商家与新人之间的会话。状态存在会话级，
// 不再冗余到每条消息上，状态变更只写一行。
type Thread struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	VendorID      int64     `gorm:"not null;index:idx_thread_pair,unique" json:"vendor_id"` // vendor 的 user id
	CoupleID      int64     `gorm:"not null;index:idx_thread_pair,unique" json:"couple_id"` // couple 的 user id
	Status        string    `gorm:"size:20;not null;default:pending" json:"status"`
	LastMessageAt time.Time `gorm:"index" json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Thread) TableName() string {
	return "threads"
}

// CanSend 会话关闭后双方都不能再发消息
func (t *Thread) CanSend() bool {
	return t.Status != ThreadClosed
}
