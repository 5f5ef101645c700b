package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vowlink/wedding_go_server/internal/model/dto"
	"github.com/vowlink/wedding_go_server/internal/pkg/response"
	"github.com/vowlink/wedding_go_server/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterVendor 商家注册
// POST /api/v1/auth/register/vendor
func (h *AuthHandler) RegisterVendor(c *gin.Context) {
	var req dto.RegisterVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.RegisterVendor(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "注册成功", resp)
}

// RegisterCouple 新人注册
// POST /api/v1/auth/register/couple
func (h *AuthHandler) RegisterCouple(c *gin.Context) {
	var req dto.RegisterCoupleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.RegisterCouple(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrInvalidWeddingDate):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "注册成功", resp)
}

// Login 登录，商家和新人共用
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.AuthError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "登录成功", resp)
}
