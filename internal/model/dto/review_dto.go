package dto

// CreateReviewRequest 发表评价请求
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Content string `json:"content" binding:"max=2000"`
}

// UpdateReviewRequest 修改评价请求
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Content string `json:"content" binding:"max=2000"`
}

// RespondReviewRequest 商家回复评价请求
type RespondReviewRequest struct {
	Response string `json:"response" binding:"required,min=1,max=2000"`
}

// ReviewItem 评价项
type ReviewItem struct {
	ID           int64         `json:"id"`
	ListingID    int64         `json:"listing_id"`
	Rating       int           `json:"rating"`
	Content      string        `json:"content"`
	Couple       *ReviewCouple `json:"couple,omitempty"`
	Response     *string       `json:"response,omitempty"`
	ResponseDate string        `json:"response_date,omitempty"`
	CreatedAt    string        `json:"created_at"`
}

// ReviewCouple 评价作者信息
type ReviewCouple struct {
	Partner1Name string `json:"partner1_name"`
	Partner2Name string `json:"partner2_name"`
}
