package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/internal/model"
)

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(listing *model.Listing) error {
	return r.db.Create(listing).Error
}

func (r *ListingRepository) CreateWithTx(tx *gorm.DB, listing *model.Listing) error {
	return tx.Create(listing).Error
}

func (r *ListingRepository) GetByID(id int64) (*model.Listing, error) {
	var listing model.Listing
	err := r.db.Where("id = ?", id).First(&listing).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepository) GetByUserID(userID int64) (*model.Listing, error) {
	var listing model.Listing
	err := r.db.Where("user_id = ?", userID).First(&listing).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepository) Update(listing *model.Listing) error {
	return r.db.Save(listing).Error
}

func (r *ListingRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Listing{}).Where("id = ?", id).Updates(fields).Error
}

// ListingFilter 搜索过滤条件，过滤在库内做，排序在 service 层做
type ListingFilter struct {
	Category   string
	Location   string
	PriceRange string
	MinRating  float64
	CityID     int64
}

// Search 过滤商家列表。固定按创建时间升序返回，
// 保证同档位商家在多次搜索之间顺序稳定。
func (r *ListingRepository) Search(filter ListingFilter) ([]*model.Listing, error) {
	query := r.db.Model(&model.Listing{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Location != "" {
		query = query.Where("location LIKE ?", "%"+filter.Location+"%")
	}
	if filter.PriceRange != "" {
		query = query.Where("price_range = ?", filter.PriceRange)
	}
	if filter.MinRating > 0 {
		query = query.Where("rating >= ?", filter.MinRating)
	}
	if filter.CityID > 0 {
		query = query.Joins("JOIN service_areas ON service_areas.listing_id = listings.id").
			Where("service_areas.city_id = ?", filter.CityID)
	}

	var listings []*model.Listing
	err := query.Order("listings.created_at ASC").Find(&listings).Error
	return listings, err
}

// UpdateSubscription 回写订阅状态（Stripe webhook / 到期清理）
func (r *ListingRepository) UpdateSubscription(userID int64, plan string, endDate *time.Time, eventAt *time.Time) error {
	return r.db.Model(&model.Listing{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"subscription_plan":     plan,
		"subscription_end_date": endDate,
		"billing_event_at":      eventAt,
	}).Error
}

// UpdateRating 回写评价均分
func (r *ListingRepository) UpdateRating(id int64, rating float64) error {
	return r.db.Model(&model.Listing{}).Where("id = ?", id).Update("rating", rating).Error
}

// ListExpiredSubscriptions 找出订阅已过期但档位字段还没清掉的商家
func (r *ListingRepository) ListExpiredSubscriptions(now time.Time) ([]*model.Listing, error) {
	var listings []*model.Listing
	err := r.db.Where("subscription_plan != '' AND subscription_end_date IS NOT NULL AND subscription_end_date < ?", now).
		Find(&listings).Error
	return listings, err
}

// ClearSubscription 清掉过期订阅（不动 billing_event_at，webhook 仍以事件时间为准）
func (r *ListingRepository) ClearSubscription(id int64) error {
	return r.db.Model(&model.Listing{}).Where("id = ?", id).Updates(map[string]interface{}{
		"subscription_plan":     "",
		"subscription_end_date": nil,
	}).Error
}

// CountActiveSubscriptions 当前生效的订阅数（平台统计用）
func (r *ListingRepository) CountActiveSubscriptions(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Listing{}).
		Where("subscription_plan != '' AND subscription_end_date IS NOT NULL AND subscription_end_date >= ?", now).
		Count(&count).Error
	return count, err
}

// AdminListingFilter 管理后台商家列表过滤条件
type AdminListingFilter struct {
	Search   string // 商家名模糊匹配
	Category string
	Plan     string
}

// AdminList 管理后台商家列表，按商家名排序
func (r *ListingRepository) AdminList(filter AdminListingFilter, page, pageSize int) ([]*model.Listing, int64, error) {
	query := r.db.Model(&model.Listing{})

	if filter.Search != "" {
		query = query.Where("business_name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Plan != "" {
		query = query.Where("subscription_plan = ?", filter.Plan)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []*model.Listing
	offset := (page - 1) * pageSize
	err := query.Order("business_name ASC").Offset(offset).Limit(pageSize).Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}

	return listings, total, nil
}
