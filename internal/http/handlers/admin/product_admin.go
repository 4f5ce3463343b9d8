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

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "category not found", nil)
	case errors.Is(err, service.ErrSKUExists):
		respondError(c, response.CodeConflict, "sku already exists", nil)
	default:
		respondError(c, response.CodeInternal, "product operation failed", err)
	}
}

// AdminListProducts 管理端商品列表
func (h *Handler) AdminListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		CategorySlug: strings.TrimSpace(c.Query("category")),
		Search:       strings.TrimSpace(c.Query("search")),
		WithVariants: true,
		Page:         page,
		PageSize:     pageSize,
	}

	products, total, err := h.ProductService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}

	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// AdminGetProduct 管理端商品详情
func (h *Handler) AdminGetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(c.Request.Context(), productID)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// AdminCreateProduct 创建商品，可携带嵌套变体与尺码
func (h *Handler) AdminCreateProduct(c *gin.Context) {
	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.ProductService.Create(c.Request.Context(), req)
	if err != nil {
		respondProductError(c, err)
		return
	}
	requestLog(c).Infow("admin_product_created", "product_id", product.ID, "sku", product.SKU)
	response.Success(c, product)
}

// AdminUpdateProduct 更新商品基础信息
func (h *Handler) AdminUpdateProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.ProductService.Update(c.Request.Context(), productID, req)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// AdminDeleteProduct 删除商品
func (h *Handler) AdminDeleteProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(c.Request.Context(), productID); err != nil {
		respondProductError(c, err)
		return
	}
	requestLog(c).Infow("admin_product_deleted", "product_id", productID)
	response.Success(c, gin.H{"deleted": true})
}
