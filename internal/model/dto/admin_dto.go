package dto

// PlatformStats 平台运营统计
type PlatformStats struct {
	TotalVendors        int64 `json:"total_vendors"`
	TotalCouples        int64 `json:"total_couples"`
	TotalLeads          int64 `json:"total_leads"`
	TotalReviews        int64 `json:"total_reviews"`
	ActiveSubscriptions int64 `json:"active_subscriptions"`
}

// RecentMemberItem 最近注册的账号，商家显示商家名，新人显示双方姓名
type RecentMemberItem struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Name      string `json:"name,omitempty"`
	CreatedAt string `json:"created_at"`
}

// AdminVendorsRequest 管理后台商家列表查询
type AdminVendorsRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Plan     string `form:"plan"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// AdminVendorItem 管理后台商家列表项，带账号邮箱和原始订阅字段
type AdminVendorItem struct {
	ID                  int64   `json:"id"`
	UserID              int64   `json:"user_id"`
	Email               string  `json:"email"`
	BusinessName        string  `json:"business_name"`
	Category            string  `json:"category"`
	Location            string  `json:"location"`
	Rating              float64 `json:"rating"`
	SubscriptionPlan    string  `json:"subscription_plan"`
	SubscriptionEndDate string  `json:"subscription_end_date,omitempty"`
}
