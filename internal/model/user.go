package model

import (
	"time"
)

// 用户角色。admin 账号不开放注册，由运营侧直接建库
const (
	RoleVendor = "vendor"
	RoleCouple = "couple"
	RoleAdmin  = "admin"
)

type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;index" json:"role"` // vendor, couple
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
