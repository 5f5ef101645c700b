package repository

import (
	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/internal/model"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(appointment *model.Appointment) error {
	return r.db.Create(appointment).Error
}

func (r *AppointmentRepository) GetByID(id int64) (*model.Appointment, error) {
	var appointment model.Appointment
	err := r.db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// ListByVendor 商家的预约，按开始时间升序（日程视图用）
func (r *AppointmentRepository) ListByVendor(vendorID int64) ([]*model.Appointment, error) {
	var appointments []*model.Appointment
	err := r.db.Where("vendor_id = ?", vendorID).Order("start_time ASC").Find(&appointments).Error
	return appointments, err
}

// ListByCouple 新人发起的预约，按开始时间升序
func (r *AppointmentRepository) ListByCouple(coupleID int64) ([]*model.Appointment, error) {
	var appointments []*model.Appointment
	err := r.db.Where("couple_id = ?", coupleID).Order("start_time ASC").Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&model.Appointment{}).Where("id = ?", id).Update("status", status).Error
}
