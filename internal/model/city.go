package model

import (
	"time"
)

// City 服务城市字典表
type City struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (City) TableName() string {
	return "cities"
}

// ServiceArea 商家服务范围（listing 与 city 多对多），只用于搜索过滤
type ServiceArea struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ListingID int64     `gorm:"not null;index:idx_area_pair,unique" json:"listing_id"`
	CityID    int64     `gorm:"not null;index:idx_area_pair,unique" json:"city_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ServiceArea) TableName() string {
	return "service_areas"
}
