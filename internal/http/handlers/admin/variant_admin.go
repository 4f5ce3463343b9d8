package admin

import (
	"errors"

	"github.com/ice-club/storefront/internal/http/response"
	"github.com/ice-club/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

func respondVariantError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	case errors.Is(err, service.ErrVariantNotFound):
		respondError(c, response.CodeNotFound, "variant not found", nil)
	case errors.Is(err, service.ErrSizeNotFound):
		respondError(c, response.CodeNotFound, "size not found", nil)
	default:
		respondError(c, response.CodeInternal, "variant operation failed", err)
	}
}

// AdminCreateVariant 为商品新增颜色变体
func (h *Handler) AdminCreateVariant(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req service.VariantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	variant, err := h.ProductService.CreateVariant(c.Request.Context(), productID, req)
	if err != nil {
		respondVariantError(c, err)
		return
	}
	response.Success(c, variant)
}

// AdminUpdateVariant 更新颜色变体
func (h *Handler) AdminUpdateVariant(c *gin.Context) {
	variantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req service.VariantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	variant, err := h.ProductService.UpdateVariant(c.Request.Context(), variantID, req)
	if err != nil {
		respondVariantError(c, err)
		return
	}
	response.Success(c, variant)
}

// AdminDeleteVariant 删除颜色变体及其尺码
func (h *Handler) AdminDeleteVariant(c *gin.Context) {
	variantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.DeleteVariant(c.Request.Context(), variantID); err != nil {
		respondVariantError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// AdminCreateSize 为变体新增尺码
func (h *Handler) AdminCreateSize(c *gin.Context) {
	variantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req service.SizeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	size, err := h.ProductService.CreateSize(c.Request.Context(), variantID, req)
	if err != nil {
		respondVariantError(c, err)
		return
	}
	response.Success(c, size)
}

// AdminUpdateSize 更新尺码库存
func (h *Handler) AdminUpdateSize(c *gin.Context) {
	sizeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req service.SizeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	size, err := h.ProductService.UpdateSize(c.Request.Context(), sizeID, req)
	if err != nil {
		respondVariantError(c, err)
		return
	}
	response.Success(c, size)
}

// AdminDeleteSize 删除尺码
func (h *Handler) AdminDeleteSize(c *gin.Context) {
	sizeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.DeleteSize(c.Request.Context(), sizeID); err != nil {
		respondVariantError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
