package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vowlink/wedding_go_server/internal/model/dto"
	"github.com/vowlink/wedding_go_server/internal/pkg/response"
	"github.com/vowlink/wedding_go_server/internal/service"
)

// AdminHandler 管理后台只读端点，挂在 admin 角色后面
type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// Stats 平台统计
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, stats)
}

// RecentMembers 最近注册的账号
// GET /api/v1/admin/members
func (h *AdminHandler) RecentMembers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	items, total, err := h.adminService.RecentMembers(page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Vendors 商家名录
// GET /api/v1/admin/vendors
func (h *AdminHandler) Vendors(c *gin.Context) {
	var req dto.AdminVendorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	items, total, err := h.adminService.Vendors(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	response.SuccessPage(c, total, page, pageSize, items)
}
