package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/internal/model"
)

var seq int64

func nextSeq() int64 {
	return atomic.AddInt64(&seq, 1)
}

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	n := nextSeq()
	user := &model.User{
		Email:        fmt.Sprintf("test_%d_%d@example.com", time.Now().UnixNano(), n),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		Role:         model.RoleVendor,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithRole 设置角色
func WithRole(role string) func(*model.User) {
	return func(u *model.User) {
		u.Role = role
	}
}

// WithPasswordHash 设置密码哈希
func WithPasswordHash(hash string) func(*model.User) {
	return func(u *model.User) {
		u.PasswordHash = hash
	}
}

// TestListing 创建测试商家
func TestListing(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Listing)) *model.Listing {
	t.Helper()

	listing := &model.Listing{
		UserID:       userID,
		BusinessName: fmt.Sprintf("Test Vendor %d", nextSeq()),
		Category:     "photography",
		Location:     "Shanghai",
		PriceRange:   "$$",
		Images:       "[]",
	}

	for _, opt := range opts {
		opt(listing)
	}

	if err := db.Create(listing).Error; err != nil {
		t.Fatalf("Failed to create test listing: %v", err)
	}

	return listing
}

// WithBusinessName 设置商家名
func WithBusinessName(name string) func(*model.Listing) {
	return func(l *model.Listing) {
		l.BusinessName = name
	}
}

// WithCategory 设置类目
func WithCategory(category string) func(*model.Listing) {
	return func(l *model.Listing) {
		l.Category = category
	}
}

// WithLocation 设置地区
func WithLocation(location string) func(*model.Listing) {
	return func(l *model.Listing) {
		l.Location = location
	}
}

// WithPlan 设置订阅档位和到期时间
func WithPlan(plan string, endDate time.Time) func(*model.Listing) {
	return func(l *model.Listing) {
		l.SubscriptionPlan = plan
		l.SubscriptionEndDate = &endDate
	}
}

// WithRating 设置均分
func WithRating(rating float64) func(*model.Listing) {
	return func(l *model.Listing) {
		l.Rating = rating
	}
}

// TestCouple 创建测试新人资料
func TestCouple(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Couple)) *model.Couple {
	t.Helper()

	couple := &model.Couple{
		UserID:       userID,
		Partner1Name: "Alice",
		Partner2Name: "Bob",
		Location:     "Shanghai",
	}

	for _, opt := range opts {
		opt(couple)
	}

	if err := db.Create(couple).Error; err != nil {
		t.Fatalf("Failed to create test couple: %v", err)
	}

	return couple
}

// WithPartners 设置新人姓名
func WithPartners(p1, p2 string) func(*model.Couple) {
	return func(c *model.Couple) {
		c.Partner1Name = p1
		c.Partner2Name = p2
	}
}

// TestThread 创建测试会话
func TestThread(t *testing.T, db *gorm.DB, vendorID, coupleID int64, opts ...func(*model.Thread)) *model.Thread {
	t.Helper()

	thread := &model.Thread{
		VendorID:      vendorID,
		CoupleID:      coupleID,
		Status:        model.ThreadPending,
		LastMessageAt: time.Now(),
	}

	for _, opt := range opts {
		opt(thread)
	}

	if err := db.Create(thread).Error; err != nil {
		t.Fatalf("Failed to create test thread: %v", err)
	}

	return thread
}

// WithThreadStatus 设置会话状态
func WithThreadStatus(status string) func(*model.Thread) {
	return func(th *model.Thread) {
		th.Status = status
	}
}

// TestMessage 创建测试消息
func TestMessage(t *testing.T, db *gorm.DB, threadID, senderID, receiverID int64, content string) *model.Message {
	t.Helper()

	message := &model.Message{
		ThreadID:   threadID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}

	if err := db.Create(message).Error; err != nil {
		t.Fatalf("Failed to create test message: %v", err)
	}

	return message
}

// TestReview 创建测试评价
func TestReview(t *testing.T, db *gorm.DB, listingID, coupleID int64, rating int, opts ...func(*model.Review)) *model.Review {
	t.Helper()

	review := &model.Review{
		ListingID: listingID,
		CoupleID:  coupleID,
		Rating:    rating,
		Content:   "Great service",
	}

	for _, opt := range opts {
		opt(review)
	}

	if err := db.Create(review).Error; err != nil {
		t.Fatalf("Failed to create test review: %v", err)
	}

	return review
}

// WithReviewContent 设置评价内容
func WithReviewContent(content string) func(*model.Review) {
	return func(r *model.Review) {
		r.Content = content
	}
}

// TestFavorite 创建测试收藏
func TestFavorite(t *testing.T, db *gorm.DB, coupleID, listingID int64) *model.Favorite {
	t.Helper()

	favorite := &model.Favorite{
		CoupleID:  coupleID,
		ListingID: listingID,
	}

	if err := db.Create(favorite).Error; err != nil {
		t.Fatalf("Failed to create test favorite: %v", err)
	}

	return favorite
}

// TestAppointment 创建测试预约
func TestAppointment(t *testing.T, db *gorm.DB, vendorID, coupleID int64, opts ...func(*model.Appointment)) *model.Appointment {
	t.Helper()

	start := time.Now().Add(24 * time.Hour)
	appointment := &model.Appointment{
		VendorID:  vendorID,
		CoupleID:  coupleID,
		Title:     "Venue tour",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    model.AppointmentPending,
	}

	for _, opt := range opts {
		opt(appointment)
	}

	if err := db.Create(appointment).Error; err != nil {
		t.Fatalf("Failed to create test appointment: %v", err)
	}

	return appointment
}

// WithAppointmentStatus 设置预约状态
func WithAppointmentStatus(status string) func(*model.Appointment) {
	return func(a *model.Appointment) {
		a.Status = status
	}
}

// WithAppointmentTimes 设置预约时间段
func WithAppointmentTimes(start, end time.Time) func(*model.Appointment) {
	return func(a *model.Appointment) {
		a.StartTime = start
		a.EndTime = end
	}
}

// TestCity 创建测试城市
func TestCity(t *testing.T, db *gorm.DB, name string) *model.City {
	t.Helper()

	city := &model.City{Name: name}
	if err := db.Create(city).Error; err != nil {
		t.Fatalf("Failed to create test city: %v", err)
	}

	return city
}
