package repository

import (
	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/internal/model"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(review *model.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepository) GetByID(id int64) (*model.Review, error) {
	var review model.Review
	err := r.db.Where("id = ?", id).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) Update(review *model.Review) error {
	return r.db.Save(review).Error
}

func (r *ReviewRepository) Delete(id int64) error {
	return r.db.Delete(&model.Review{}, id).Error
}

// ListByListing 某商家的评价列表，带作者资料，最新在前
func (r *ReviewRepository) ListByListing(listingID int64, page, pageSize int) ([]*model.Review, int64, error) {
	var reviews []*model.Review
	var total int64

	query := r.db.Model(&model.Review{}).Preload("Couple").Where("listing_id = ?", listingID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// Exists 同一新人对同一商家是否已有评价
func (r *ReviewRepository) Exists(listingID, coupleID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Review{}).
		Where("listing_id = ? AND couple_id = ?", listingID, coupleID).
		Count(&count).Error
	return count > 0, err
}

// AverageRating 评价均分，没有评价时返回 0
func (r *ReviewRepository) AverageRating(listingID int64) (float64, error) {
	var avg *float64
	err := r.db.Model(&model.Review{}).
		Where("listing_id = ?", listingID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (r *ReviewRepository) CountByListing(listingID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Review{}).Where("listing_id = ?", listingID).Count(&count).Error
	return count, err
}

// Count 全平台评价总数（平台统计用）
func (r *ReviewRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Review{}).Count(&count).Error
	return count, err
}
