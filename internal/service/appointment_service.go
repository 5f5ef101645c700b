package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/internal/model"
	"github.com/vowlink/wedding_go_server/internal/model/dto"
	"github.com/vowlink/wedding_go_server/internal/repository"
)

var (
	ErrAppointmentNotFound  = errors.New("预约不存在")
	ErrInvalidTimeRange     = errors.New("结束时间必须晚于开始时间")
	ErrNotAppointmentVendor = errors.New("只能处理自己的预约")
	ErrAppointmentFinalized = errors.New("预约已处理，不能再变更")
)

// AppointmentService 预约。新人向商家发起，商家确认或取消，
// pending 是唯一可流转的状态。
type AppointmentService struct {
	appointmentRepo *repository.AppointmentRepository
	listingRepo     *repository.ListingRepository
	coupleRepo      *repository.CoupleRepository
}

func NewAppointmentService(
	appointmentRepo *repository.AppointmentRepository,
	listingRepo *repository.ListingRepository,
	coupleRepo *repository.CoupleRepository,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		listingRepo:     listingRepo,
		coupleRepo:      coupleRepo,
	}
}

// Create 新人发起预约，初始状态 pending
func (s *AppointmentService) Create(coupleID int64, req *dto.CreateAppointmentRequest) (*dto.AppointmentItem, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}

	// 目标商家必须存在
	if _, err := s.listingRepo.GetByUserID(req.VendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	appointment := &model.Appointment{
		VendorID:    req.VendorID,
		CoupleID:    coupleID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      model.AppointmentPending,
	}
	if err := s.appointmentRepo.Create(appointment); err != nil {
		return nil, err
	}

	return buildAppointmentItem(appointment), nil
}

// UpdateStatus 商家处理预约，只允许 pending -> confirmed/cancelled
func (s *AppointmentService) UpdateStatus(vendorID, appointmentID int64, status string) error {
	if status != model.AppointmentConfirmed && status != model.AppointmentCancelled {
		return ErrAppointmentFinalized
	}

	appointment, err := s.appointmentRepo.GetByID(appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}

	if appointment.VendorID != vendorID {
		return ErrNotAppointmentVendor
	}
	if appointment.Status != model.AppointmentPending {
		return ErrAppointmentFinalized
	}

	return s.appointmentRepo.UpdateStatus(appointmentID, status)
}

// ListForVendor 商家的预约日程，带新人资料
func (s *AppointmentService) ListForVendor(vendorID int64) ([]*dto.AppointmentItem, error) {
	appointments, err := s.appointmentRepo.ListByVendor(vendorID)
	if err != nil {
		return nil, err
	}

	if len(appointments) == 0 {
		return []*dto.AppointmentItem{}, nil
	}

	coupleIDs := make([]int64, len(appointments))
	for i, appointment := range appointments {
		coupleIDs[i] = appointment.CoupleID
	}
	couples, err := s.coupleRepo.GetByUserIDs(coupleIDs)
	if err != nil {
		return nil, err
	}
	coupleMap := make(map[int64]*model.Couple, len(couples))
	for _, couple := range couples {
		coupleMap[couple.UserID] = couple
	}

	items := make([]*dto.AppointmentItem, 0, len(appointments))
	for _, appointment := range appointments {
		item := buildAppointmentItem(appointment)
		if couple, ok := coupleMap[appointment.CoupleID]; ok {
			item.Partner1Name = couple.Partner1Name
			item.Partner2Name = couple.Partner2Name
			item.Location = couple.Location
		}
		items = append(items, item)
	}

	return items, nil
}

// ListForCouple 新人发起的预约，带商家名
func (s *AppointmentService) ListForCouple(coupleID int64) ([]*dto.AppointmentItem, error) {
	appointments, err := s.appointmentRepo.ListByCouple(coupleID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.AppointmentItem, 0, len(appointments))
	for _, appointment := range appointments {
		item := buildAppointmentItem(appointment)
		if listing, err := s.listingRepo.GetByUserID(appointment.VendorID); err == nil {
			item.BusinessName = listing.BusinessName
		}
		items = append(items, item)
	}

	return items, nil
}

func buildAppointmentItem(appointment *model.Appointment) *dto.AppointmentItem {
	return &dto.AppointmentItem{
		ID:          appointment.ID,
		VendorID:    appointment.VendorID,
		CoupleID:    appointment.CoupleID,
		Title:       appointment.Title,
		Description: appointment.Description,
		StartTime:   appointment.StartTime.Format(time.RFC3339),
		EndTime:     appointment.EndTime.Format(time.RFC3339),
		Status:      appointment.Status,
	}
}
