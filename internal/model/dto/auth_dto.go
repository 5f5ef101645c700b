package dto

// RegisterVendorRequest 商家注册请求
type RegisterVendorRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8,max=72"`
	BusinessName string `json:"business_name" binding:"required,min=1,max=200"`
	Category     string `json:"category" binding:"required"`
	Location     string `json:"location" binding:"required"`
	Description  string `json:"description"`
	PriceRange   string `json:"price_range" binding:"omitempty,oneof=$ $$ $$$ $$$$"`
}

// RegisterCoupleRequest 新人注册请求
type RegisterCoupleRequest struct {
	Email        string   `json:"email" binding:"required,email"`
	Password     string   `json:"password" binding:"required,min=8,max=72"`
	Partner1Name string   `json:"partner1_name" binding:"required,min=1,max=100"`
	Partner2Name string   `json:"partner2_name" binding:"max=100"`
	Location     string   `json:"location"`
	WeddingDate  string   `json:"wedding_date"` // RFC3339，可空
	Budget       *float64 `json:"budget"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
}

// UserInfo 用户信息
type UserInfo struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
