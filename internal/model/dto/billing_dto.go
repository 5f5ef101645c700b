package dto

// CreateCheckoutSessionRequest 创建支付会话请求。
// 三个字段都必填，缺哪个在 details 里标出来。
type CreateCheckoutSessionRequest struct {
	PriceID string `json:"priceId"`
	UserID  string `json:"userId"`
	Email   string `json:"email"`
}

// CreateCheckoutSessionResponse 创建支付会话响应
type CreateCheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// BillingError Stripe 桥接端点的错误响应（与前端约定的裸格式，不走统一 envelope）
type BillingError struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}
