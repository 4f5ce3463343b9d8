package admin

import (
	"github.com/ice-club/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AdminGetDashboard 后台仪表盘总览
func (h *Handler) AdminGetDashboard(c *gin.Context) {
	overview, err := h.DashboardService.GetOverview(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "dashboard fetch failed", err)
		return
	}
	response.Success(c, overview)
}
