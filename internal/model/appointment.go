package model

import (
	"time"
)

// 预约状态
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
)

// Appointment 新人和商家之间的预约，商家确认或取消
type Appointment struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	VendorID    int64     `gorm:"not null;index" json:"vendor_id"`
	CoupleID    int64     `gorm:"not null;index" json:"couple_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	StartTime   time.Time `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	Status      string    `gorm:"size:20;not null;default:pending" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}
