package repository

import (
	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/internal/model"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *model.Message) error {
	return r.db.Create(message).Error
}

// ListByThread 会话内消息按时间升序
func (r *MessageRepository) ListByThread(threadID int64) ([]*model.Message, error) {
	var messages []*model.Message
	err := r.db.Where("thread_id = ?", threadID).Order("created_at ASC, id ASC").Find(&messages).Error
	return messages, err
}

// GetLastByThread 会话最后一条消息（列表摘要用）
func (r *MessageRepository) GetLastByThread(threadID int64) (*model.Message, error) {
	var message model.Message
	err := r.db.Where("thread_id = ?", threadID).Order("created_at DESC, id DESC").First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// GetFirstByThread 会话第一条消息（线索创建时间用）
func (r *MessageRepository) GetFirstByThread(threadID int64) (*model.Message, error) {
	var message model.Message
	err := r.db.Where("thread_id = ?", threadID).Order("created_at ASC, id ASC").First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) CountByThread(threadID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Message{}).Where("thread_id = ?", threadID).Count(&count).Error
	return count, err
}
