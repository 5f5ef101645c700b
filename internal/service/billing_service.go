package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/customer"
	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/config"
	"github.com/vowlink/wedding_go_server/internal/model"
	"github.com/vowlink/wedding_go_server/internal/model/dto"
	"github.com/vowlink/wedding_go_server/internal/repository"
)

var ErrInvalidUserID = errors.New("userId 不是合法的用户 ID")

// 事件去重 key 保留 3 天，Stripe 重试窗口之内足够
const eventDedupTTL = 72 * time.Hour

type BillingService struct {
	listingRepo *repository.ListingRepository
	redisClient *redis.Client
	cfg         *config.Config
}

func NewBillingService(listingRepo *repository.ListingRepository, redisClient *redis.Client, cfg *config.Config) *BillingService {
	stripe.Key = cfg.Stripe.SecretKey
	return &BillingService{
		listingRepo: listingRepo,
		redisClient: redisClient,
		cfg:         cfg,
	}
}

// CreateCheckoutSession 创建 Stripe 订阅支付会话。
// 按邮箱查找已有 customer，没有则新建，userId 写进 metadata 供 webhook 回查。
func (s *BillingService) CreateCheckoutSession(req *dto.CreateCheckoutSessionRequest) (*dto.CreateCheckoutSessionResponse, error) {
	if _, err := strconv.ParseInt(req.UserID, 10, 64); err != nil {
		return nil, ErrInvalidUserID
	}

	customerID, err := s.findOrCreateCustomer(req.Email, req.UserID)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Customer:          stripe.String(customerID),
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		ClientReferenceID: stripe.String(req.UserID),
		SuccessURL:        stripe.String(s.cfg.Stripe.SuccessURL),
		CancelURL:         stripe.String(s.cfg.Stripe.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{"userId": req.UserID},
		},
	}
	params.AddMetadata("userId", req.UserID)

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &dto.CreateCheckoutSessionResponse{
		SessionID: sess.ID,
		URL:       sess.URL,
	}, nil
}

func (s *BillingService) findOrCreateCustomer(email, userID string) (string, error) {
	listParams := &stripe.CustomerListParams{Email: stripe.String(email)}
	listParams.Limit = stripe.Int64(1)
	iter := customer.List(listParams)
	for iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("failed to list customers: %w", err)
	}

	createParams := &stripe.CustomerParams{Email: stripe.String(email)}
	createParams.AddMetadata("userId", userID)
	c, err := customer.New(createParams)
	if err != nil {
		return "", fmt.Errorf("failed to create customer: %w", err)
	}
	return c.ID, nil
}

// HandleEvent 处理 Stripe webhook 事件。
// 同一事件重复投递用 Redis SETNX 去重；乱序投递靠事件时间做 last-write-wins。
func (s *BillingService) HandleEvent(ctx context.Context, event *stripe.Event) error {
	fresh, err := s.markEventProcessed(ctx, event.ID)
	if err != nil {
		return err
	}
	if !fresh {
		log.Printf("Skipping duplicate Stripe event %s", event.ID)
		return nil
	}

	eventAt := time.Unix(event.Created, 0)

	switch event.Type {
	case "customer.subscription.created", "customer.subscription.updated":
		return s.handleSubscriptionChange(event, eventAt)
	case "customer.subscription.deleted":
		return s.handleSubscriptionDeleted(event, eventAt)
	case "subscription_schedule.created":
		return s.handleScheduleCreated(event, eventAt)
	case "checkout.session.completed":
		// 订阅状态以 subscription 事件为准，这里只记日志
		log.Printf("Checkout session completed: %s", event.ID)
		return nil
	default:
		log.Printf("Ignoring Stripe event type %s", event.Type)
		return nil
	}
}

func (s *BillingService) handleSubscriptionChange(event *stripe.Event, eventAt time.Time) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("failed to parse subscription: %w", err)
	}

	userID, err := userIDFromMetadata(sub.Metadata)
	if err != nil {
		log.Printf("Subscription %s has no usable userId metadata: %v", sub.ID, err)
		return nil
	}

	priceID := ""
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		priceID = sub.Items.Data[0].Price.ID
	}
	plan := PlanFromPriceID(priceID)

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
	return s.applySubscription(userID, plan, &periodEnd, eventAt)
}

func (s *BillingService) handleSubscriptionDeleted(event *stripe.Event, eventAt time.Time) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("failed to parse subscription: %w", err)
	}

	userID, err := userIDFromMetadata(sub.Metadata)
	if err != nil {
		log.Printf("Subscription %s has no usable userId metadata: %v", sub.ID, err)
		return nil
	}

	return s.applySubscription(userID, "", nil, eventAt)
}

func (s *BillingService) handleScheduleCreated(event *stripe.Event, eventAt time.Time) error {
	var sched stripe.SubscriptionSchedule
	if err := json.Unmarshal(event.Data.Raw, &sched); err != nil {
		return fmt.Errorf("failed to parse subscription schedule: %w", err)
	}

	userID, err := userIDFromMetadata(sched.Metadata)
	if err != nil {
		log.Printf("Schedule %s has no usable userId metadata: %v", sched.ID, err)
		return nil
	}

	if len(sched.Phases) == 0 {
		return nil
	}
	phase := sched.Phases[0]

	priceID := ""
	if len(phase.Items) > 0 && phase.Items[0].Price != nil {
		priceID = phase.Items[0].Price.ID
	}
	plan := PlanFromPriceID(priceID)

	var periodEnd *time.Time
	if phase.EndDate > 0 {
		end := time.Unix(phase.EndDate, 0)
		periodEnd = &end
	}

	return s.applySubscription(userID, plan, periodEnd, eventAt)
}

// applySubscription 回写订阅状态。只有事件时间不早于已应用事件时才写，
// 防止乱序到达的旧事件覆盖新状态。
func (s *BillingService) applySubscription(userID int64, plan string, periodEnd *time.Time, eventAt time.Time) error {
	listing, err := s.listingRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("No listing for user %d, dropping billing event", userID)
			return nil
		}
		return err
	}

	if listing.BillingEventAt != nil && eventAt.Before(*listing.BillingEventAt) {
		log.Printf("Stale billing event for user %d (event %s < applied %s), skipping",
			userID, eventAt.Format(time.RFC3339), listing.BillingEventAt.Format(time.RFC3339))
		return nil
	}

	return s.listingRepo.UpdateSubscription(userID, plan, periodEnd, &eventAt)
}

// markEventProcessed 返回 true 表示首次见到该事件
func (s *BillingService) markEventProcessed(ctx context.Context, eventID string) (bool, error) {
	return s.redisClient.SetNX(ctx, "stripe:event:"+eventID, 1, eventDedupTTL).Result()
}

// PlanFromPriceID price ID 到订阅档位的映射。
// price ID 按约定带档位名，不带的按 essential 处理。
func PlanFromPriceID(priceID string) string {
	switch {
	case strings.Contains(priceID, model.PlanFeatured):
		return model.PlanFeatured
	case strings.Contains(priceID, model.PlanElite):
		return model.PlanElite
	default:
		return model.PlanEssential
	}
}

func userIDFromMetadata(metadata map[string]string) (int64, error) {
	raw, ok := metadata["userId"]
	if !ok || raw == "" {
		return 0, errors.New("missing userId")
	}
	return strconv.ParseInt(raw, 10, 64)
}
