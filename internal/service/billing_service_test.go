package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/config"
	"github.com/vowlink/wedding_go_server/internal/model"
	"github.com/vowlink/wedding_go_server/internal/repository"
	"github.com/vowlink/wedding_go_server/internal/testutil"
)

func setupBillingService(t *testing.T) (*BillingService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		Stripe: config.StripeConfig{
			SecretKey:     "sk_test_fake",
			WebhookSecret: "whsec_fake",
		},
	}

	service := NewBillingService(repository.NewListingRepository(db), rdb, cfg)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func subscriptionEvent(eventID, eventType string, userID int64, priceID string, periodEnd, created time.Time) *stripe.Event {
	raw := fmt.Sprintf(
		`{"id":"sub_test","metadata":{"userId":"%d"},"items":{"data":[{"price":{"id":"%s"}}]},"current_period_end":%d}`,
		userID, priceID, periodEnd.Unix(),
	)
	return &stripe.Event{
		ID:      eventID,
		Type:    stripe.EventType(eventType),
		Created: created.Unix(),
		Data:    &stripe.EventData{Raw: json.RawMessage(raw)},
	}
}

func TestPlanFromPriceID(t *testing.T) {
	assert.Equal(t, model.PlanFeatured, PlanFromPriceID("price_featured_monthly"))
	assert.Equal(t, model.PlanElite, PlanFromPriceID("price_elite_monthly"))
	assert.Equal(t, model.PlanEssential, PlanFromPriceID("price_basic_monthly"))
	assert.Equal(t, model.PlanEssential, PlanFromPriceID(""))
}

func TestBillingService_SubscriptionCreated(t *testing.T) {
	service, db, cleanup := setupBillingService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID)

	now := time.Now()
	periodEnd := now.Add(30 * 24 * time.Hour)
	event := subscriptionEvent("evt_1", "customer.subscription.created", vendor.ID, "price_elite_monthly", periodEnd, now)

	require.NoError(t, service.HandleEvent(context.Background(), event))

	var got model.Listing
	require.NoError(t, db.First(&got, listing.ID).Error)
	assert.Equal(t, model.PlanElite, got.SubscriptionPlan)
	require.NotNil(t, got.SubscriptionEndDate)
	assert.Equal(t, periodEnd.Unix(), got.SubscriptionEndDate.Unix())
}

func TestBillingService_DuplicateEventSkipped(t *testing.T) {
	service, db, cleanup := setupBillingService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID)

	now := time.Now()
	periodEnd := now.Add(30 * 24 * time.Hour)
	event := subscriptionEvent("evt_dup", "customer.subscription.created", vendor.ID, "price_featured_monthly", periodEnd, now)
	require.NoError(t, service.HandleEvent(context.Background(), event))

	// Same event id redelivered with different content must be a no-op
	redelivered := subscriptionEvent("evt_dup", "customer.subscription.updated", vendor.ID, "price_elite_monthly", periodEnd, now.Add(time.Minute))
	require.NoError(t, service.HandleEvent(context.Background(), redelivered))

	var got model.Listing
	require.NoError(t, db.First(&got, listing.ID).Error)
	assert.Equal(t, model.PlanFeatured, got.SubscriptionPlan)
}

func TestBillingService_StaleEventIgnored(t *testing.T) {
	service, db, cleanup := setupBillingService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID)

	now := time.Now()
	periodEnd := now.Add(30 * 24 * time.Hour)

	// Newer event arrives first
	newer := subscriptionEvent("evt_new", "customer.subscription.updated", vendor.ID, "price_elite_monthly", periodEnd, now)
	require.NoError(t, service.HandleEvent(context.Background(), newer))

	// Out-of-order older event must not overwrite it
	older := subscriptionEvent("evt_old", "customer.subscription.created", vendor.ID, "price_basic_monthly", periodEnd, now.Add(-time.Hour))
	require.NoError(t, service.HandleEvent(context.Background(), older))

	var got model.Listing
	require.NoError(t, db.First(&got, listing.ID).Error)
	assert.Equal(t, model.PlanElite, got.SubscriptionPlan)
}

func TestBillingService_SubscriptionDeletedClearsPlan(t *testing.T) {
	service, db, cleanup := setupBillingService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID, testutil.WithPlan(model.PlanFeatured, time.Now().Add(24*time.Hour)))

	now := time.Now()
	event := subscriptionEvent("evt_del", "customer.subscription.deleted", vendor.ID, "price_featured_monthly", now, now)
	require.NoError(t, service.HandleEvent(context.Background(), event))

	var got model.Listing
	require.NoError(t, db.First(&got, listing.ID).Error)
	assert.Equal(t, "", got.SubscriptionPlan)
	assert.Nil(t, got.SubscriptionEndDate)
}

func TestBillingService_ScheduleCreated(t *testing.T) {
	service, db, cleanup := setupBillingService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID)

	now := time.Now()
	phaseEnd := now.Add(30 * 24 * time.Hour)
	raw := fmt.Sprintf(
		`{"id":"sub_sched_test","metadata":{"userId":"%d"},"phases":[{"items":[{"price":{"id":"price_featured_monthly"}}],"end_date":%d}]}`,
		vendor.ID, phaseEnd.Unix(),
	)
	event := &stripe.Event{
		ID:      "evt_sched",
		Type:    "subscription_schedule.created",
		Created: now.Unix(),
		Data:    &stripe.EventData{Raw: json.RawMessage(raw)},
	}

	require.NoError(t, service.HandleEvent(context.Background(), event))

	var got model.Listing
	require.NoError(t, db.First(&got, listing.ID).Error)
	assert.Equal(t, model.PlanFeatured, got.SubscriptionPlan)
	require.NotNil(t, got.SubscriptionEndDate)
	assert.Equal(t, phaseEnd.Unix(), got.SubscriptionEndDate.Unix())
}

func TestBillingService_UnknownUserDropped(t *testing.T) {
	service, _, cleanup := setupBillingService(t)
	defer cleanup()

	now := time.Now()
	event := subscriptionEvent("evt_nouser", "customer.subscription.created", 99999, "price_elite_monthly", now.Add(time.Hour), now)

	// No listing for the user; event is logged and dropped without error
	assert.NoError(t, service.HandleEvent(context.Background(), event))
}

func TestBillingService_CheckoutCompletedIgnored(t *testing.T) {
	service, _, cleanup := setupBillingService(t)
	defer cleanup()

	event := &stripe.Event{
		ID:      "evt_checkout",
		Type:    "checkout.session.completed",
		Created: time.Now().Unix(),
		Data:    &stripe.EventData{Raw: json.RawMessage(`{}`)},
	}
	assert.NoError(t, service.HandleEvent(context.Background(), event))
}
