package dto

// SendMessageRequest 发送消息请求。新人首次给商家发消息会自动建立会话。
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// TransitionRequest 会话状态流转请求
type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted declined closed"`
}

// ThreadItem 会话列表项，每个对端一条
type ThreadItem struct {
	ThreadID        int64  `json:"thread_id"`
	CounterpartID   int64  `json:"counterpart_id"`
	CounterpartName string `json:"counterpart_name"`
	LastMessage     string `json:"last_message"`
	LastMessageAt   string `json:"last_message_at"`
	Status          string `json:"status"`
}

// MessageItem 消息项
type MessageItem struct {
	ID         int64  `json:"id"`
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	Content    string `json:"content"`
	Automated  bool   `json:"automated"`
	Status     string `json:"status"` // 所属会话当前状态
	CreatedAt  string `json:"created_at"`
}

// LeadItem 商家线索列表项
type LeadItem struct {
	ThreadID     int64  `json:"thread_id"`
	CoupleID     int64  `json:"couple_id"`
	Partner1Name string `json:"partner1_name"`
	Partner2Name string `json:"partner2_name"`
	Location     string `json:"location"`
	WeddingDate  string `json:"wedding_date,omitempty"`
	LastMessage  string `json:"last_message"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}
