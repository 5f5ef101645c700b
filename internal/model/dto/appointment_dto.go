package dto

import "time"

// CreateAppointmentRequest 新人发起预约
type CreateAppointmentRequest struct {
	VendorID    int64     `json:"vendor_id" binding:"required"`
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description" binding:"max=2000"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
}

// UpdateAppointmentStatusRequest 商家处理预约
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed cancelled"`
}

// AppointmentItem 预约列表项，商家侧带新人资料
type AppointmentItem struct {
	ID           int64  `json:"id"`
	VendorID     int64  `json:"vendor_id"`
	CoupleID     int64  `json:"couple_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Status       string `json:"status"`
	Partner1Name string `json:"partner1_name,omitempty"`
	Partner2Name string `json:"partner2_name,omitempty"`
	Location     string `json:"location,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
}
