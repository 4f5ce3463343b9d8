package public

import (
	"errors"
	"strconv"

	"github.com/ice-club/storefront/internal/http/response"
	"github.com/ice-club/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	Governorate string `json:"governorate" binding:"required"`
	Address     string `json:"address" binding:"required"`
}

// Checkout 结算购物车并创建订单
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	order, err := h.OrderService.Checkout(c.Request.Context(), service.CheckoutInput{
		UserID:      uid,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Governorate: req.Governorate,
		Address:     req.Address,
	})
	if err != nil {
		var shortfall *service.StockShortfallError
		switch {
		case errors.As(err, &shortfall):
			// 缺货提示直接展示给用户
			respondError(c, response.CodeBadRequest, shortfall.Error(), nil)
		case errors.Is(err, service.ErrCartEmpty):
			respondError(c, response.CodeBadRequest, "cart is empty", nil)
		default:
			respondError(c, response.CodeInternal, "checkout failed", err)
		}
		return
	}

	response.Success(c, order)
}

// ListMyOrders 获取当前用户订单列表
func (h *Handler) ListMyOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orders, err := h.OrderService.ListByUser(c.Request.Context(), uid)
	if err != nil {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	response.Success(c, gin.H{"orders": orders})
}

// GetMyOrder 获取当前用户订单详情
func (h *Handler) GetMyOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	order, err := h.OrderService.GetByID(c.Request.Context(), uint(orderID))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	if order.UserID != uid {
		respondError(c, response.CodeNotFound, "order not found", nil)
		return
	}
	response.Success(c, order)
}
