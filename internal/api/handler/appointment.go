package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vowlink/wedding_go_server/internal/api/middleware"
	"github.com/vowlink/wedding_go_server/internal/model/dto"
	"github.com/vowlink/wedding_go_server/internal/pkg/response"
	"github.com/vowlink/wedding_go_server/internal/service"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

// Create 新人发起预约
// POST /api/v1/appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	coupleID, _ := middleware.GetUserID(c)

	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.appointmentService.Create(coupleID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTimeRange):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrListingNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "预约已提交", item)
}

// ListMine 新人查看自己发起的预约
// GET /api/v1/appointments
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	coupleID, _ := middleware.GetUserID(c)

	items, err := h.appointmentService.ListForCouple(coupleID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// ListForVendor 商家预约日程
// GET /api/v1/vendor/appointments
func (h *AppointmentHandler) ListForVendor(c *gin.Context) {
	vendorID, _ := middleware.GetUserID(c)

	items, err := h.appointmentService.ListForVendor(vendorID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// UpdateStatus 商家确认或取消预约
// POST /api/v1/vendor/appointments/:id/status
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	vendorID, _ := middleware.GetUserID(c)

	appointmentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的预约 ID")
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	err = h.appointmentService.UpdateStatus(vendorID, appointmentID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAppointmentNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrNotAppointmentVendor):
			response.PermissionError(c, err.Error())
		case errors.Is(err, service.ErrAppointmentFinalized):
			response.InvalidTransitionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "操作成功", nil)
}
