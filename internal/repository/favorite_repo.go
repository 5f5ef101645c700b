package repository

import (
	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/internal/model"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Create(favorite *model.Favorite) error {
	return r.db.Create(favorite).Error
}

func (r *FavoriteRepository) Delete(coupleID, listingID int64) error {
	return r.db.Where("couple_id = ? AND listing_id = ?", coupleID, listingID).
		Delete(&model.Favorite{}).Error
}

func (r *FavoriteRepository) Exists(coupleID, listingID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("couple_id = ? AND listing_id = ?", coupleID, listingID).
		Count(&count).Error
	return count > 0, err
}

// ListByCouple 新人的收藏列表，最近收藏在前
func (r *FavoriteRepository) ListByCouple(coupleID int64, page, pageSize int) ([]*model.Favorite, int64, error) {
	var favorites []*model.Favorite
	var total int64

	query := r.db.Model(&model.Favorite{}).Where("couple_id = ?", coupleID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&favorites).Error
	if err != nil {
		return nil, 0, err
	}

	return favorites, total, nil
}
