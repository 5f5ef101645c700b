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

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// Create 新人发表评价
// POST /api/v1/listings/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	coupleID, _ := middleware.GetUserID(c)

	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的商家 ID")
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.reviewService.Create(coupleID, listingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrInvalidRating):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrDuplicateReview):
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "评价成功", item)
}

// Update 新人修改自己的评价
// PUT /api/v1/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	coupleID, _ := middleware.GetUserID(c)

	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的评价 ID")
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.reviewService.Update(coupleID, reviewID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrInvalidRating):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrNotReviewAuthor):
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "修改成功", item)
}

// Delete 新人删除自己的评价
// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	coupleID, _ := middleware.GetUserID(c)

	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的评价 ID")
		return
	}

	err = h.reviewService.Delete(coupleID, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrNotReviewAuthor):
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// Respond 商家回复评价
// POST /api/v1/reviews/:id/response
func (h *ReviewHandler) Respond(c *gin.Context) {
	vendorID, _ := middleware.GetUserID(c)

	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的评价 ID")
		return
	}

	var req dto.RespondReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.reviewService.Respond(vendorID, reviewID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrNotReviewVendor):
			response.PermissionError(c, err.Error())
		case errors.Is(err, service.ErrAlreadyResponded):
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "回复成功", item)
}

// List 商家评价列表
// GET /api/v1/listings/:id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的商家 ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	items, total, err := h.reviewService.List(listingID, page, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}
