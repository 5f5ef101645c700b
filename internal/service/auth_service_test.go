package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/config"
	"github.com/vowlink/wedding_go_server/internal/model"
	"github.com/vowlink/wedding_go_server/internal/model/dto"
	"github.com/vowlink/wedding_go_server/internal/pkg/jwt"
	"github.com/vowlink/wedding_go_server/internal/repository"
	"github.com/vowlink/wedding_go_server/internal/testutil"
)

func setupAuthService(t *testing.T) (*AuthService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret-key-for-testing",
			ExpireHours: 24,
		},
	}

	service := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewListingRepository(db),
		repository.NewCoupleRepository(db),
		nil,
		cfg,
	)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func TestAuthService_RegisterVendor_Success(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	req := &dto.RegisterVendorRequest{
		Email:        "studio@example.com",
		Password:     "password123",
		BusinessName: "Rosewood Studio",
		Category:     "photography",
		Location:     "Shanghai",
		PriceRange:   "$$",
	}

	resp, err := service.RegisterVendor(req)
	require.NoError(t, err)
	assert.NotZero(t, resp.UserID)
	assert.NotEmpty(t, resp.Token)

	// Listing created in the same transaction
	var listing model.Listing
	require.NoError(t, db.Where("user_id = ?", resp.UserID).First(&listing).Error)
	assert.Equal(t, "Rosewood Studio", listing.BusinessName)
	assert.Equal(t, "", listing.SubscriptionPlan)

	// Token carries the vendor role
	claims, err := jwt.ParseToken(resp.Token, "test-secret-key-for-testing")
	require.NoError(t, err)
	assert.Equal(t, model.RoleVendor, claims.Role)
}

func TestAuthService_RegisterCouple_Success(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	req := &dto.RegisterCoupleRequest{
		Email:        "couple@example.com",
		Password:     "password123",
		Partner1Name: "Alice",
		Partner2Name: "Bob",
		WeddingDate:  "2026-10-01",
	}

	resp, err := service.RegisterCouple(req)
	require.NoError(t, err)
	assert.NotZero(t, resp.UserID)

	var couple model.Couple
	require.NoError(t, db.Where("user_id = ?", resp.UserID).First(&couple).Error)
	assert.Equal(t, "Alice", couple.Partner1Name)
	require.NotNil(t, couple.WeddingDate)
	assert.Equal(t, "2026-10-01", couple.WeddingDate.Format("2006-01-02"))

	claims, err := jwt.ParseToken(resp.Token, "test-secret-key-for-testing")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCouple, claims.Role)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	vendorReq := &dto.RegisterVendorRequest{
		Email:        "taken@example.com",
		Password:     "password123",
		BusinessName: "Studio One",
		Category:     "photography",
		Location:     "Shanghai",
	}
	_, err := service.RegisterVendor(vendorReq)
	require.NoError(t, err)

	// Same email for a couple account is also rejected
	coupleReq := &dto.RegisterCoupleRequest{
		Email:        "taken@example.com",
		Password:     "password123",
		Partner1Name: "Alice",
	}
	_, err = service.RegisterCouple(coupleReq)
	assert.Equal(t, ErrEmailTaken, err)
}

func TestAuthService_RegisterCouple_BadWeddingDate(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	req := &dto.RegisterCoupleRequest{
		Email:        "couple2@example.com",
		Password:     "password123",
		Partner1Name: "Alice",
		WeddingDate:  "next summer",
	}

	_, err := service.RegisterCouple(req)
	assert.Equal(t, ErrInvalidWeddingDate, err)
}

func TestAuthService_Login_Success(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	req := &dto.RegisterVendorRequest{
		Email:        "login@example.com",
		Password:     "password123",
		BusinessName: "Studio Two",
		Category:     "florist",
		Location:     "Beijing",
	}
	_, err := service.RegisterVendor(req)
	require.NoError(t, err)

	resp, err := service.Login(&dto.LoginRequest{
		Email:    "login@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.RoleVendor, resp.User.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	req := &dto.RegisterVendorRequest{
		Email:        "login2@example.com",
		Password:     "password123",
		BusinessName: "Studio Three",
		Category:     "venue",
		Location:     "Beijing",
	}
	_, err := service.RegisterVendor(req)
	require.NoError(t, err)

	_, err = service.Login(&dto.LoginRequest{
		Email:    "login2@example.com",
		Password: "wrongpassword",
	})
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.Login(&dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.Equal(t, ErrInvalidCredentials, err)
}
