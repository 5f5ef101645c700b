package repository

import (
	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/internal/model"
)

type CoupleRepository struct {
	db *gorm.DB
}

func NewCoupleRepository(db *gorm.DB) *CoupleRepository {
	return &CoupleRepository{db: db}
}

func (r *CoupleRepository) Create(couple *model.Couple) error {
	return r.db.Create(couple).Error
}

func (r *CoupleRepository) CreateWithTx(tx *gorm.DB, couple *model.Couple) error {
	return tx.Create(couple).Error
}

func (r *CoupleRepository) GetByUserID(userID int64) (*model.Couple, error) {
	var couple model.Couple
	err := r.db.Where("user_id = ?", userID).First(&couple).Error
	if err != nil {
		return nil, err
	}
	return &couple, nil
}

// GetByUserIDs 批量查新人资料（线索列表用）
func (r *CoupleRepository) GetByUserIDs(userIDs []int64) ([]*model.Couple, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var couples []*model.Couple
	err := r.db.Where("user_id IN ?", userIDs).Find(&couples).Error
	return couples, err
}

func (r *CoupleRepository) Update(couple *model.Couple) error {
	return r.db.Save(couple).Error
}
