package dto

// SearchListingsRequest 商家搜索过滤条件
type SearchListingsRequest struct {
	Category   string  `form:"category"`
	Location   string  `form:"location"`
	PriceRange string  `form:"price_range"`
	MinRating  float64 `form:"min_rating"`
	CityID     int64   `form:"city_id"`
	Page       int     `form:"page"`
	PageSize   int     `form:"page_size"`
}

// UpdateListingRequest 商家更新自己的展示信息
type UpdateListingRequest struct {
	BusinessName *string `json:"business_name" binding:"omitempty,min=1,max=200"`
	Category     *string `json:"category"`
	Description  *string `json:"description"`
	Location     *string `json:"location"`
	PriceRange   *string `json:"price_range" binding:"omitempty,oneof=$ $$ $$$ $$$$"`
	WebsiteURL   *string `json:"website_url" binding:"omitempty,max=500"`
	FacebookURL  *string `json:"facebook_url" binding:"omitempty,max=500"`
	InstagramURL *string `json:"instagram_url" binding:"omitempty,max=500"`
	CityIDs      []int64 `json:"city_ids"` // 服务城市，传了就整体替换
}

// ListingItem 搜索结果项
type ListingItem struct {
	ID               int64    `json:"id"`
	UserID           int64    `json:"user_id"`
	BusinessName     string   `json:"business_name"`
	Category         string   `json:"category"`
	Description      string   `json:"description"`
	Location         string   `json:"location"`
	PriceRange       string   `json:"price_range"`
	Rating           float64  `json:"rating"`
	Images           []string `json:"images"`
	SubscriptionPlan string   `json:"subscription_plan"` // 已做到期校验后的生效档位
	CreatedAt        string   `json:"created_at"`
}

// ListingDetail 商家详情
type ListingDetail struct {
	ListingItem
	WebsiteURL   string     `json:"website_url,omitempty"`
	FacebookURL  string     `json:"facebook_url,omitempty"`
	InstagramURL string     `json:"instagram_url,omitempty"`
	Cities       []CityItem `json:"cities"`
	ReviewCount  int64      `json:"review_count"`
}

// CityItem 城市项
type CityItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UploadImageResponse 图片上传响应
type UploadImageResponse struct {
	URL    string   `json:"url"`
	Images []string `json:"images"`
}
