package model

import (
	"time"
)

// 订阅档位
const (
	PlanEssential = "essential"
	PlanFeatured  = "featured"
	PlanElite     = "elite"
)

// Listing 商家展示信息（每个 vendor 账号一条）
type Listing struct {
	ID                  int64      `gorm:"primaryKey" json:"id"`
	UserID              int64      `gorm:"not null;uniqueIndex" json:"user_id"`
	BusinessName        string     `gorm:"size:200;not null" json:"business_name"`
	Category            string     `gorm:"size:50;not null;index" json:"category"`
	Description         string     `gorm:"type:text" json:"description"`
	Location            string     `gorm:"size:200;index" json:"location"`
	PriceRange          string     `gorm:"size:10" json:"price_range"` // $ .. $$$$
	Rating              float64    `gorm:"default:0" json:"rating"`    // 评价均分，评价变更时重算
	Images              string     `gorm:"type:text" json:"-"`         // JSON 数组，见 ImageURLs
	SubscriptionPlan    string     `gorm:"size:20;index" json:"subscription_plan"` // essential, featured, elite，空串=无订阅
	SubscriptionEndDate *time.Time `json:"subscription_end_date,omitempty"`
	BillingEventAt      *time.Time `json:"-"` // 最近一次已应用的 Stripe 事件时间，防止乱序回写
	WebsiteURL          string     `gorm:"size:500" json:"website_url,omitempty"`
	FacebookURL         string     `gorm:"size:500" json:"facebook_url,omitempty"`
	InstagramURL        string     `gorm:"size:500" json:"instagram_url,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (Listing) TableName() string {
	return "listings"
}

// PlanPriority 订阅档位的搜索权重
func PlanPriority(plan string) int {
	switch plan {
	case PlanElite:
		return 3
	case PlanFeatured:
		return 2
	case PlanEssential:
		return 1
	default:
		return 0
	}
}

// EffectivePlan 读取时校验到期时间，过期订阅按无订阅处理
func (l *Listing) EffectivePlan(now time.Time) string {
	if l.SubscriptionPlan == "" {
		return ""
	}
	if l.SubscriptionEndDate == nil || l.SubscriptionEndDate.Before(now) {
		return ""
	}
	return l.SubscriptionPlan
}
