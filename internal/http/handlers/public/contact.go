package public

import (
	"github.com/ice-club/storefront/internal/http/response"
	"github.com/ice-club/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitContact 提交联系表单
func (h *Handler) SubmitContact(c *gin.Context) {
	var req service.ContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	message, err := h.ContactService.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, response.CodeInternal, "message submit failed", err)
		return
	}

	response.SuccessWithMsg(c, "message received", gin.H{"id": message.ID})
}
