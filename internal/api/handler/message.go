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

type MessageHandler struct {
	threadService *service.ThreadService
}

func NewMessageHandler(threadService *service.ThreadService) *MessageHandler {
	return &MessageHandler{
		threadService: threadService,
	}
}

// Send 向对端发送消息。新人首次给商家发消息会自动建立会话。
// POST /api/v1/messages/:userID
func (h *MessageHandler) Send(c *gin.Context) {
	senderID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetRole(c)

	counterpartID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的用户 ID")
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.threadService.Send(senderID, role, counterpartID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrThreadClosed):
			response.ThreadClosedError(c, err.Error())
		case errors.Is(err, service.ErrCounterpartNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrVendorOnlyReceive):
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "发送成功", item)
}

// Transition 会话状态流转（商家接受/婉拒，新人关闭）
// POST /api/v1/threads/:id/transition
func (h *MessageHandler) Transition(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetRole(c)

	threadID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的会话 ID")
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	err = h.threadService.Transition(actorID, role, threadID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrThreadNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrNotParticipant):
			response.PermissionError(c, err.Error())
		case errors.Is(err, service.ErrInvalidTransition):
			response.InvalidTransitionError(c, err.Error())
		case errors.Is(err, service.ErrTransitionForbidden):
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "操作成功", nil)
}

// ListThreads 会话列表
// GET /api/v1/threads
func (h *MessageHandler) ListThreads(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetRole(c)

	items, err := h.threadService.ListThreads(userID, role)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// ListLeads 商家线索列表
// GET /api/v1/vendor/leads
func (h *MessageHandler) ListLeads(c *gin.Context) {
	vendorID, _ := middleware.GetUserID(c)

	items, err := h.threadService.ListLeads(vendorID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// ListMessages 会话内消息
// GET /api/v1/threads/:id/messages
func (h *MessageHandler) ListMessages(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	threadID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的会话 ID")
		return
	}

	items, err := h.threadService.ListMessages(userID, threadID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrThreadNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrNotParticipant):
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, items)
}
