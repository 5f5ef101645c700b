package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/internal/model"
	"github.com/vowlink/wedding_go_server/internal/model/dto"
	"github.com/vowlink/wedding_go_server/internal/repository"
	"github.com/vowlink/wedding_go_server/internal/testutil"
)

func setupReviewService(t *testing.T) (*ReviewService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	service := NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewListingRepository(db),
	)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func TestReviewService_Create_Success(t *testing.T) {
	service, db, cleanup := setupReviewService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID)
	coupleUser := testutil.TestUser(t, db, testutil.WithRole(model.RoleCouple))
	testutil.TestCouple(t, db, coupleUser.ID)

	item, err := service.Create(coupleUser.ID, listing.ID, &dto.CreateReviewRequest{
		Rating:  5,
		Content: "Wonderful photos",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, item.Rating)

	// Listing average updated
	var got model.Listing
	require.NoError(t, db.First(&got, listing.ID).Error)
	assert.Equal(t, 5.0, got.Rating)
}

func TestReviewService_Create_InvalidRating(t *testing.T) {
	service, db, cleanup := setupReviewService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID)
	coupleUser := testutil.TestUser(t, db, testutil.WithRole(model.RoleCouple))

	for _, rating := range []int{0, 6, -1} {
		_, err := service.Create(coupleUser.ID, listing.ID, &dto.CreateReviewRequest{Rating: rating})
		assert.Equal(t, ErrInvalidRating, err, "rating %d", rating)
	}
}

func TestReviewService_Create_Duplicate(t *testing.T) {
	service, db, cleanup := setupReviewService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID)
	coupleUser := testutil.TestUser(t, db, testutil.WithRole(model.RoleCouple))

	_, err := service.Create(coupleUser.ID, listing.ID, &dto.CreateReviewRequest{Rating: 4})
	require.NoError(t, err)

	_, err = service.Create(coupleUser.ID, listing.ID, &dto.CreateReviewRequest{Rating: 5})
	assert.Equal(t, ErrDuplicateReview, err)
}

func TestReviewService_Create_ListingNotFound(t *testing.T) {
	service, db, cleanup := setupReviewService(t)
	defer cleanup()

	coupleUser := testutil.TestUser(t, db, testutil.WithRole(model.RoleCouple))

	_, err := service.Create(coupleUser.ID, 99999, &dto.CreateReviewRequest{Rating: 4})
	assert.Equal(t, ErrListingNotFound, err)
}

func TestReviewService_AverageAcrossReviews(t *testing.T) {
	service, db, cleanup := setupReviewService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID)

	c1 := testutil.TestUser(t, db, testutil.WithRole(model.RoleCouple))
	c2 := testutil.TestUser(t, db, testutil.WithRole(model.RoleCouple))

	_, err := service.Create(c1.ID, listing.ID, &dto.CreateReviewRequest{Rating: 5})
	require.NoError(t, err)
	_, err = service.Create(c2.ID, listing.ID, &dto.CreateReviewRequest{Rating: 2})
	require.NoError(t, err)

	var got model.Listing
	require.NoError(t, db.First(&got, listing.ID).Error)
	assert.InDelta(t, 3.5, got.Rating, 0.001)
}

func TestReviewService_Delete_ResetsAverageToZero(t *testing.T) {
	service, db, cleanup := setupReviewService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID)
	coupleUser := testutil.TestUser(t, db, testutil.WithRole(model.RoleCouple))

	item, err := service.Create(coupleUser.ID, listing.ID, &dto.CreateReviewRequest{Rating: 4})
	require.NoError(t, err)

	require.NoError(t, service.Delete(coupleUser.ID, item.ID))

	// No reviews left, average falls back to zero
	var got model.Listing
	require.NoError(t, db.First(&got, listing.ID).Error)
	assert.Equal(t, 0.0, got.Rating)
}

func TestReviewService_Update_AuthorOnly(t *testing.T) {
	service, db, cleanup := setupReviewService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID)
	author := testutil.TestUser(t, db, testutil.WithRole(model.RoleCouple))
	other := testutil.TestUser(t, db, testutil.WithRole(model.RoleCouple))

	item, err := service.Create(author.ID, listing.ID, &dto.CreateReviewRequest{Rating: 3})
	require.NoError(t, err)

	_, err = service.Update(other.ID, item.ID, &dto.UpdateReviewRequest{Rating: 1})
	assert.Equal(t, ErrNotReviewAuthor, err)

	updated, err := service.Update(author.ID, item.ID, &dto.UpdateReviewRequest{Rating: 5, Content: "Changed my mind"})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)

	var got model.Listing
	require.NoError(t, db.First(&got, listing.ID).Error)
	assert.Equal(t, 5.0, got.Rating)
}

func TestReviewService_Delete_AuthorOnly(t *testing.T) {
	service, db, cleanup := setupReviewService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID)
	author := testutil.TestUser(t, db, testutil.WithRole(model.RoleCouple))
	other := testutil.TestUser(t, db, testutil.WithRole(model.RoleCouple))

	item, err := service.Create(author.ID, listing.ID, &dto.CreateReviewRequest{Rating: 3})
	require.NoError(t, err)

	err = service.Delete(other.ID, item.ID)
	assert.Equal(t, ErrNotReviewAuthor, err)
}

func TestReviewService_Respond_WriteOnce(t *testing.T) {
	service, db, cleanup := setupReviewService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID)
	coupleUser := testutil.TestUser(t, db, testutil.WithRole(model.RoleCouple))
	review := testutil.TestReview(t, db, listing.ID, coupleUser.ID, 4)

	item, err := service.Respond(vendor.ID, review.ID, &dto.RespondReviewRequest{Response: "Thank you!"})
	require.NoError(t, err)
	require.NotNil(t, item.Response)
	assert.Equal(t, "Thank you!", *item.Response)
	assert.NotEmpty(t, item.ResponseDate)

	_, err = service.Respond(vendor.ID, review.ID, &dto.RespondReviewRequest{Response: "Again"})
	assert.Equal(t, ErrAlreadyResponded, err)
}

func TestReviewService_Respond_WrongVendor(t *testing.T) {
	service, db, cleanup := setupReviewService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID)
	otherVendor := testutil.TestUser(t, db)
	testutil.TestListing(t, db, otherVendor.ID)
	coupleUser := testutil.TestUser(t, db, testutil.WithRole(model.RoleCouple))
	review := testutil.TestReview(t, db, listing.ID, coupleUser.ID, 4)

	_, err := service.Respond(otherVendor.ID, review.ID, &dto.RespondReviewRequest{Response: "Not mine"})
	assert.Equal(t, ErrNotReviewVendor, err)
}

func TestReviewService_List_WithAuthorProfile(t *testing.T) {
	service, db, cleanup := setupReviewService(t)
	defer cleanup()

	vendor := testutil.TestUser(t, db)
	listing := testutil.TestListing(t, db, vendor.ID)
	coupleUser := testutil.TestUser(t, db, testutil.WithRole(model.RoleCouple))
	testutil.TestCouple(t, db, coupleUser.ID, testutil.WithPartners("Eve", "Frank"))
	testutil.TestReview(t, db, listing.ID, coupleUser.ID, 5)

	items, total, err := service.List(listing.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Couple)
	assert.Equal(t, "Eve", items[0].Couple.Partner1Name)
}
