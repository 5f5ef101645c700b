package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vowlink/wedding_go_server/internal/api/middleware"
	"github.com/vowlink/wedding_go_server/internal/model/dto"
	"github.com/vowlink/wedding_go_server/internal/pkg/response"
	"github.com/vowlink/wedding_go_server/internal/service"
)

type ListingHandler struct {
	listingService *service.ListingService
}

func NewListingHandler(listingService *service.ListingService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
	}
}

// Search 搜索商家，结果按订阅档位排序
// GET /api/v1/listings
func (h *ListingHandler) Search(c *gin.Context) {
	var req dto.SearchListingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	items, total, err := h.listingService.Search(&req)
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

// GetDetail 商家详情
// GET /api/v1/listings/:id
func (h *ListingHandler) GetDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的商家 ID")
		return
	}

	detail, err := h.listingService.GetDetail(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// GetMine 商家查看自己的展示信息
// GET /api/v1/vendor/listing
func (h *ListingHandler) GetMine(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	detail, err := h.listingService.GetMine(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// Update 商家更新自己的展示信息
// PUT /api/v1/vendor/listing
func (h *ListingHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	detail, err := h.listingService.Update(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrCityNotFound):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "更新成功", detail)
}

// ListCities 城市列表
// GET /api/v1/cities
func (h *ListingHandler) ListCities(c *gin.Context) {
	items, err := h.listingService.ListCities()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, items)
}

// UploadImage 上传展示图片
// POST /api/v1/vendor/listing/images
func (h *ListingHandler) UploadImage(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.ParamError(c, "请上传文件")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.ServerError(c, "文件读取失败")
		return
	}

	resp, err := h.listingService.UploadImage(userID, header.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrInvalidImageType),
			errors.Is(err, service.ErrImageTooLarge),
			errors.Is(err, service.ErrImageLimit):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrStorageUnavailable):
			response.ServerError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "上传成功", resp)
}

// DeleteImage 删除展示图片
// DELETE /api/v1/vendor/listing/images
func (h *ListingHandler) DeleteImage(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	images, err := h.listingService.DeleteImage(userID, req.URL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound),
			errors.Is(err, service.ErrImageNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", gin.H{"images": images})
}
