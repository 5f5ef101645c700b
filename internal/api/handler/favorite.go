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

type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

// Save 收藏商家（幂等）
// POST /api/v1/favorites/:listingID
func (h *FavoriteHandler) Save(c *gin.Context) {
	coupleID, _ := middleware.GetUserID(c)

	listingID, err := strconv.ParseInt(c.Param("listingID"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的商家 ID")
		return
	}

	var req dto.SaveFavoriteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ParamError(c, err.Error())
			return
		}
	}

	if err := h.favoriteService.Save(coupleID, listingID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "收藏成功", nil)
}

// Unsave 取消收藏（幂等）
// DELETE /api/v1/favorites/:listingID
func (h *FavoriteHandler) Unsave(c *gin.Context) {
	coupleID, _ := middleware.GetUserID(c)

	listingID, err := strconv.ParseInt(c.Param("listingID"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的商家 ID")
		return
	}

	if err := h.favoriteService.Unsave(coupleID, listingID); err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "已取消收藏", nil)
}

// List 收藏列表
// GET /api/v1/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	coupleID, _ := middleware.GetUserID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	items, total, err := h.favoriteService.List(coupleID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}
