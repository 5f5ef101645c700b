package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/internal/model"
	"github.com/vowlink/wedding_go_server/internal/repository"
	"github.com/vowlink/wedding_go_server/internal/testutil"
)

func setupCronService(t *testing.T) (*Service, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	listingRepo := repository.NewListingRepository(db)
	cronService := NewService(listingRepo)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return cronService, db, cleanup
}

func TestNewService(t *testing.T) {
	// Test with nil listingRepo
	svc := NewService(nil)
	assert.NotNil(t, svc)
	assert.Nil(t, svc.listingRepo)
	assert.NotNil(t, svc.stopChan)
}

func TestService_StartAndStop(t *testing.T) {
	svc, _, cleanup := setupCronService(t)
	defer cleanup()

	// Start should not panic
	svc.Start()

	// Give it a moment to start
	time.Sleep(10 * time.Millisecond)

	// Stop should not panic
	svc.Stop()

	// Give it a moment to stop
	time.Sleep(10 * time.Millisecond)
}

func TestService_RunNow(t *testing.T) {
	svc, db, cleanup := setupCronService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db, testutil.WithRole(model.RoleVendor))
	listing := testutil.TestListing(t, db, vendor.ID,
		testutil.WithPlan(model.PlanFeatured, time.Now().Add(-time.Hour)))

	err := svc.RunNow()
	assert.NoError(t, err)

	// Verify the expired subscription was cleared
	var updated model.Listing
	err = db.First(&updated, listing.ID).Error
	require.NoError(t, err)
	assert.Empty(t, updated.SubscriptionPlan)
	assert.Nil(t, updated.SubscriptionEndDate)
	assert.Empty(t, updated.EffectivePlan(time.Now()))
}

func TestService_RunNow_MultipleListings(t *testing.T) {
	svc, db, cleanup := setupCronService(t)
	defer cleanup()

	// Two expired, one still active
	v1 := testutil.TestUser(t, db, testutil.WithRole(model.RoleVendor))
	v2 := testutil.TestUser(t, db, testutil.WithRole(model.RoleVendor))
	v3 := testutil.TestUser(t, db, testutil.WithRole(model.RoleVendor))
	testutil.TestListing(t, db, v1.ID, testutil.WithPlan(model.PlanFeatured, time.Now().Add(-time.Hour)))
	testutil.TestListing(t, db, v2.ID, testutil.WithPlan(model.PlanElite, time.Now().Add(-24*time.Hour)))
	active := testutil.TestListing(t, db, v3.ID, testutil.WithPlan(model.PlanElite, time.Now().Add(time.Hour)))

	err := svc.RunNow()
	assert.NoError(t, err)

	var remaining []model.Listing
	err = db.Where("subscription_plan <> ''").Find(&remaining).Error
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, active.ID, remaining[0].ID)
}

func TestService_RunNow_NoListings(t *testing.T) {
	svc, _, cleanup := setupCronService(t)
	defer cleanup()

	// Run with no listings - should not error
	err := svc.RunNow()
	assert.NoError(t, err)
}

func TestService_StopBeforeStart(t *testing.T) {
	svc, _, cleanup := setupCronService(t)
	defer cleanup()

	// Stop before start should not panic
	// (channel close on unstarted goroutine is fine)
	svc.Stop()
}

func TestService_Structure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	listingRepo := repository.NewListingRepository(db)
	svc := NewService(listingRepo)

	assert.Equal(t, listingRepo, svc.listingRepo)
	assert.NotNil(t, svc.stopChan)
}
