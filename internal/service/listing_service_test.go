package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/config"
	"github.com/vowlink/wedding_go_server/internal/model"
	"github.com/vowlink/wedding_go_server/internal/model/dto"
	"github.com/vowlink/wedding_go_server/internal/repository"
	"github.com/vowlink/wedding_go_server/internal/testutil"
)

func setupListingService(t *testing.T) (*ListingService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := &config.Config{
		Upload: config.UploadConfig{
			MaxSize:   5 * 1024 * 1024,
			MaxImages: 10,
		},
	}

	service := NewListingService(
		repository.NewListingRepository(db),
		repository.NewReviewRepository(db),
		repository.NewCityRepository(db),
		nil,
		cfg,
	)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func TestListingService_Search_RankedBySubscription(t *testing.T) {
	service, db, cleanup := setupListingService(t)
	defer cleanup()

	future := time.Now().Add(24 * time.Hour)

	// Created in this order; ranking must reorder by tier
	u1 := testutil.TestUser(t, db)
	testutil.TestListing(t, db, u1.ID, testutil.WithBusinessName("NoPlan"))
	u2 := testutil.TestUser(t, db)
	testutil.TestListing(t, db, u2.ID, testutil.WithBusinessName("Elite"), testutil.WithPlan(model.PlanElite, future))
	u3 := testutil.TestUser(t, db)
	testutil.TestListing(t, db, u3.ID, testutil.WithBusinessName("Featured"), testutil.WithPlan(model.PlanFeatured, future))

	items, total, err := service.Search(&dto.SearchListingsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 3)
	assert.Equal(t, "Elite", items[0].BusinessName)
	assert.Equal(t, "Featured", items[1].BusinessName)
	assert.Equal(t, "NoPlan", items[2].BusinessName)

	// Effective plan surfaced on the items
	assert.Equal(t, model.PlanElite, items[0].SubscriptionPlan)
	assert.Equal(t, "", items[2].SubscriptionPlan)
}

func TestListingService_Search_FilterByCategory(t *testing.T) {
	service, db, cleanup := setupListingService(t)
	defer cleanup()

	u1 := testutil.TestUser(t, db)
	testutil.TestListing(t, db, u1.ID, testutil.WithCategory("photography"))
	u2 := testutil.TestUser(t, db)
	testutil.TestListing(t, db, u2.ID, testutil.WithCategory("florist"))

	items, total, err := service.Search(&dto.SearchListingsRequest{Category: "florist"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "florist", items[0].Category)
}

func TestListingService_Search_FilterByMinRating(t *testing.T) {
	service, db, cleanup := setupListingService(t)
	defer cleanup()

	u1 := testutil.TestUser(t, db)
	testutil.TestListing(t, db, u1.ID, testutil.WithRating(4.5))
	u2 := testutil.TestUser(t, db)
	testutil.TestListing(t, db, u2.ID, testutil.WithRating(2.0))

	items, total, err := service.Search(&dto.SearchListingsRequest{MinRating: 4.0})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, 4.5, items[0].Rating)
}

func TestListingService_Search_FilterByCity(t *testing.T) {
	service, db, cleanup := setupListingService(t)
	defer cleanup()

	city := testutil.TestCity(t, db, "Hangzhou")
	u1 := testutil.TestUser(t, db)
	l1 := testutil.TestListing(t, db, u1.ID)
	u2 := testutil.TestUser(t, db)
	testutil.TestListing(t, db, u2.ID)

	require.NoError(t, db.Create(&model.ServiceArea{ListingID: l1.ID, CityID: city.ID}).Error)

	items, total, err := service.Search(&dto.SearchListingsRequest{CityID: city.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, l1.ID, items[0].ID)
}

func TestListingService_Search_Pagination(t *testing.T) {
	service, db, cleanup := setupListingService(t)
	defer cleanup()

	for i := 0; i < 5; i++ {
		u := testutil.TestUser(t, db)
		testutil.TestListing(t, db, u.ID)
	}

	items, total, err := service.Search(&dto.SearchListingsRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, items, 2)

	items, _, err = service.Search(&dto.SearchListingsRequest{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// Page beyond the result set is empty, not an error
	items, _, err = service.Search(&dto.SearchListingsRequest{Page: 10, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListingService_GetDetail(t *testing.T) {
	service, db, cleanup := setupListingService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID, testutil.WithBusinessName("Garden Venue"))
	city := testutil.TestCity(t, db, "Suzhou")
	require.NoError(t, db.Create(&model.ServiceArea{ListingID: listing.ID, CityID: city.ID}).Error)

	coupleUser := testutil.TestUser(t, db, testutil.WithRole(model.RoleCouple))
	testutil.TestReview(t, db, listing.ID, coupleUser.ID, 5)

	detail, err := service.GetDetail(listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Garden Venue", detail.BusinessName)
	require.Len(t, detail.Cities, 1)
	assert.Equal(t, "Suzhou", detail.Cities[0].Name)
	assert.Equal(t, int64(1), detail.ReviewCount)
}

func TestListingService_GetDetail_NotFound(t *testing.T) {
	service, _, cleanup := setupListingService(t)
	defer cleanup()

	_, err := service.GetDetail(99999)
	assert.Equal(t, ErrListingNotFound, err)
}

func TestListingService_Update_PartialFields(t *testing.T) {
	service, db, cleanup := setupListingService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	testutil.TestListing(t, db, vendor.ID,
		testutil.WithBusinessName("Old Name"),
		testutil.WithCategory("photography"),
	)

	newName := "New Name"
	detail, err := service.Update(vendor.ID, &dto.UpdateListingRequest{BusinessName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "New Name", detail.BusinessName)
	// Untouched field keeps its value
	assert.Equal(t, "photography", detail.Category)
}

func TestListingService_Update_ReplacesServiceAreas(t *testing.T) {
	service, db, cleanup := setupListingService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID)
	c1 := testutil.TestCity(t, db, "Nanjing")
	c2 := testutil.TestCity(t, db, "Wuxi")
	require.NoError(t, db.Create(&model.ServiceArea{ListingID: listing.ID, CityID: c1.ID}).Error)

	detail, err := service.Update(vendor.ID, &dto.UpdateListingRequest{CityIDs: []int64{c2.ID}})
	require.NoError(t, err)
	require.Len(t, detail.Cities, 1)
	assert.Equal(t, "Wuxi", detail.Cities[0].Name)
}

func TestListingService_Update_UnknownCity(t *testing.T) {
	service, db, cleanup := setupListingService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	testutil.TestListing(t, db, vendor.ID)

	_, err := service.Update(vendor.ID, &dto.UpdateListingRequest{CityIDs: []int64{99999}})
	assert.Equal(t, ErrCityNotFound, err)
}

func TestListingService_UploadImage_StorageUnavailable(t *testing.T) {
	// setupListingService wires a nil OSS client, same as the server
	// does when OSS is not configured
	service, db, cleanup := setupListingService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	testutil.TestListing(t, db, vendor.ID)

	assert.NotPanics(t, func() {
		_, err := service.UploadImage(vendor.ID, "photo.jpg", []byte("fake image data"))
		assert.Equal(t, ErrStorageUnavailable, err)
	})
}

func TestListingService_DeleteImage_StorageUnavailable(t *testing.T) {
	service, db, cleanup := setupListingService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID)
	url := "https://cdn.example.com/listings/1/a.jpg"
	require.NoError(t, db.Model(&model.Listing{}).Where("id = ?", listing.ID).
		Update("images", `["`+url+`"]`).Error)

	// Without OSS the DB record is still cleaned up, no panic
	var kept []string
	assert.NotPanics(t, func() {
		var err error
		kept, err = service.DeleteImage(vendor.ID, url)
		require.NoError(t, err)
	})
	assert.Empty(t, kept)
}

func TestListingService_ListCities_SortedByName(t *testing.T) {
	service, db, cleanup := setupListingService(t)
	defer cleanup()

	testutil.TestCity(t, db, "Wuhan")
	testutil.TestCity(t, db, "Chengdu")

	items, err := service.ListCities()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Chengdu", items[0].Name)
	assert.Equal(t, "Wuhan", items[1].Name)
}
