package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ice-club/storefront/internal/http/response"
	"github.com/ice-club/storefront/internal/repository"
	"github.com/ice-club/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminListMessages 管理端留言列表
func (h *Handler) AdminListMessages(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ContactMessageListFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Page:     page,
		PageSize: pageSize,
	}

	messages, total, err := h.ContactService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, response.CodeInternal, "message fetch failed", err)
		return
	}

	response.SuccessWithPage(c, messages, response.NewPagination(page, pageSize, total))
}

// AdminGetMessage 管理端留言详情
func (h *Handler) AdminGetMessage(c *gin.Context) {
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	message, err := h.ContactService.GetByID(c.Request.Context(), messageID)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			respondError(c, response.CodeNotFound, "message not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "message fetch failed", err)
		return
	}
	response.Success(c, message)
}
