package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/internal/model"
)

type ThreadRepository struct {
	db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) *ThreadRepository {
	return &ThreadRepository{db: db}
}

func (r *ThreadRepository) Create(thread *model.Thread) error {
	return r.db.Create(thread).Error
}

func (r *ThreadRepository) GetByID(id int64) (*model.Thread, error) {
	var thread model.Thread
	err := r.db.Where("id = ?", id).First(&thread).Error
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

// GetByPair 会话由 (vendor, couple) 对唯一确定
func (r *ThreadRepository) GetByPair(vendorID, coupleID int64) (*model.Thread, error) {
	var thread model.Thread
	err := r.db.Where("vendor_id = ? AND couple_id = ?", vendorID, coupleID).First(&thread).Error
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

// UpdateStatus 状态只存在会话行上，状态变更就是一次单行写
func (r *ThreadRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&model.Thread{}).Where("id = ?", id).Update("status", status).Error
}

func (r *ThreadRepository) TouchLastMessage(id int64, at time.Time) error {
	return r.db.Model(&model.Thread{}).Where("id = ?", id).Update("last_message_at", at).Error
}

// ListByVendor 商家侧会话列表，最近消息在前
func (r *ThreadRepository) ListByVendor(vendorID int64) ([]*model.Thread, error) {
	var threads []*model.Thread
	err := r.db.Where("vendor_id = ?", vendorID).Order("last_message_at DESC").Find(&threads).Error
	return threads, err
}

// ListByCouple 新人侧会话列表，最近消息在前
func (r *ThreadRepository) ListByCouple(coupleID int64) ([]*model.Thread, error) {
	var threads []*model.Thread
	err := r.db.Where("couple_id = ?", coupleID).Order("last_message_at DESC").Find(&threads).Error
	return threads, err
}

// Count 全平台会话总数（平台统计用）
func (r *ThreadRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Thread{}).Count(&count).Error
	return count, err
}
