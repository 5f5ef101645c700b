package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/vowlink/wedding_go_server/config"
	"github.com/vowlink/wedding_go_server/internal/model/dto"
	"github.com/vowlink/wedding_go_server/internal/service"
)

// BillingHandler Stripe 桥接端点。响应格式是和前端约定好的裸 JSON，
// 用原生 HTTP 状态码，不走统一 envelope。
type BillingHandler struct {
	billingService *service.BillingService
	cfg            *config.StripeConfig
}

func NewBillingHandler(billingService *service.BillingService, cfg *config.StripeConfig) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		cfg:            cfg,
	}
}

func setBillingCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
}

// CreateCheckoutSession 创建支付会话
// POST /create-checkout-session
func (h *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	setBillingCORS(c)

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusOK)
		return
	}
	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusMethodNotAllowed, dto.BillingError{Error: "Method not allowed"})
		return
	}

	var req dto.CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BillingError{Error: "Invalid request body"})
		return
	}

	// 三个字段都必填，缺哪个在 details 里逐项标出来
	details := map[string]string{}
	if req.PriceID == "" {
		details["priceId"] = "priceId is required"
	}
	if req.UserID == "" {
		details["userId"] = "userId is required"
	}
	if req.Email == "" {
		details["email"] = "email is required"
	}
	if len(details) > 0 {
		c.JSON(http.StatusBadRequest, dto.BillingError{Error: "Missing required fields", Details: details})
		return
	}

	resp, err := h.billingService.CreateCheckoutSession(&req)
	if err != nil {
		if err == service.ErrInvalidUserID {
			c.JSON(http.StatusBadRequest, dto.BillingError{
				Error:   "Missing required fields",
				Details: map[string]string{"userId": "userId must be a numeric id"},
			})
			return
		}
		log.Printf("Failed to create checkout session: %v", err)
		c.JSON(http.StatusBadRequest, dto.BillingError{
			Error:   "Failed to create checkout session",
			Details: map[string]string{"message": err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Webhook Stripe webhook 入口，先验签再处理
// POST /webhook
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BillingError{Error: "Failed to read request body"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.cfg.WebhookSecret)
	if err != nil {
		// 验签失败对这次投递是终态，400 交给 Stripe 自己的重试策略
		c.JSON(http.StatusBadRequest, dto.BillingError{
			Error:   "Invalid signature",
			Details: map[string]string{"message": err.Error()},
		})
		return
	}

	if err := h.billingService.HandleEvent(c.Request.Context(), &event); err != nil {
		log.Printf("Failed to handle Stripe event %s: %v", event.ID, err)
		c.JSON(http.StatusBadRequest, dto.BillingError{
			Error:   "Webhook error",
			Details: map[string]string{"message": err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
