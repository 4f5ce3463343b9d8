package service

import (
	"context"
	"strings"

	"github.com/ice-club/storefront/internal/logger"
	"github.com/ice-club/storefront/internal/models"
	"github.com/ice-club/storefront/internal/repository"
)

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	variantRepo  repository.VariantRepository
	sizeRepo     repository.SizeRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	sizeRepo repository.SizeRepository,
	categoryRepo repository.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		sizeRepo:     sizeRepo,
		categoryRepo: categoryRepo,
	}
}

// SizeInput 尺码输入
type SizeInput struct {
	SizeName string `json:"size_name" binding:"required"`
	Stock    int    `json:"stock"`
}

// VariantInput 变体输入
type VariantInput struct {
	ColorName string      `json:"color_name" binding:"required"`
	ColorCode string      `json:"color_code"`
	Image     string      `json:"image"`
	Sizes     []SizeInput `json:"sizes"`
}

// ProductInput 商品创建/更新输入
type ProductInput struct {
	Name          string         `json:"name" binding:"required"`
	SKU           string         `json:"sku"`
	CategoryID    *uint          `json:"category_id"`
	Description   string         `json:"description"`
	Price         models.Money   `json:"price"`
	DiscountPrice *models.Money  `json:"discount_price"`
	Variants      []VariantInput `json:"variants"`
}

// List 商品列表
func (s *ProductService) List(ctx context.Context, filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetByID 商品详情（含变体与尺码）
func (s *ProductService) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品，可携带嵌套变体与尺码
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(*input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
	}
	if sku := strings.TrimSpace(input.SKU); sku != "" {
		count, err := s.productRepo.CountBySKU(sku, nil)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSKUExists
		}
	}

	product := &models.Product{
		Name:          strings.TrimSpace(input.Name),
		SKU:           strings.TrimSpace(input.SKU),
		CategoryID:    input.CategoryID,
		Description:   input.Description,
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
	}
	for _, variantInput := range input.Variants {
		variant := models.ProductVariant{
			ColorName: strings.TrimSpace(variantInput.ColorName),
			ColorCode: strings.TrimSpace(variantInput.ColorCode),
			Image:     variantInput.Image,
		}
		for _, sizeInput := range variantInput.Sizes {
			variant.Sizes = append(variant.Sizes, models.ProductSize{
				SizeName: strings.TrimSpace(sizeInput.SizeName),
				Stock:    sizeInput.Stock,
			})
		}
		product.Variants = append(product.Variants, variant)
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	if len(product.Variants) > 0 {
		if _, err := s.productRepo.RecomputeStock(product.ID); err != nil {
			logger.Warnw("product_stock_recompute_failed", "product_id", product.ID, "error", err)
		}
	}
	return s.GetByID(ctx, product.ID)
}

// Update 更新商品基础信息（变体与尺码走独立接口）
func (s *ProductService) Update(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(*input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
	}
	if sku := strings.TrimSpace(input.SKU); sku != "" && sku != product.SKU {
		count, err := s.productRepo.CountBySKU(sku, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSKUExists
		}
		product.SKU = sku
	}

	product.Name = strings.TrimSpace(input.Name)
	product.CategoryID = input.CategoryID
	product.Description = input.Description
	product.Price = input.Price
	product.DiscountPrice = input.DiscountPrice
	product.Variants = nil

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete 删除商品
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

// CreateVariant 为商品新增变体（含尺码），完成后重算库存缓存
func (s *ProductService) CreateVariant(ctx context.Context, productID uint, input VariantInput) (*models.ProductVariant, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	variant := &models.ProductVariant{
		ProductID: productID,
		ColorName: strings.TrimSpace(input.ColorName),
		ColorCode: strings.TrimSpace(input.ColorCode),
		Image:     input.Image,
	}
	for _, sizeInput := range input.Sizes {
		variant.Sizes = append(variant.Sizes, models.ProductSize{
			SizeName: strings.TrimSpace(sizeInput.SizeName),
			Stock:    sizeInput.Stock,
		})
	}
	if err := s.variantRepo.Create(variant); err != nil {
		return nil, err
	}
	s.recomputeStock(productID)
	return variant, nil
}

// UpdateVariant 更新变体基础信息
func (s *ProductService) UpdateVariant(ctx context.Context, variantID uint, input VariantInput) (*models.ProductVariant, error) {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	variant.ColorName = strings.TrimSpace(input.ColorName)
	variant.ColorCode = strings.TrimSpace(input.ColorCode)
	variant.Image = input.Image
	variant.Sizes = nil
	if err := s.variantRepo.Update(variant); err != nil {
		return nil, err
	}
	return s.variantRepo.GetByID(variantID)
}

// DeleteVariant 删除变体及其尺码，完成后重算库存缓存
func (s *ProductService) DeleteVariant(ctx context.Context, variantID uint) error {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return err
	}
	if variant == nil {
		return ErrVariantNotFound
	}
	if err := s.variantRepo.Delete(variantID); err != nil {
		return err
	}
	s.recomputeStock(variant.ProductID)
	return nil
}

// CreateSize 为变体新增尺码，完成后重算库存缓存
func (s *ProductService) CreateSize(ctx context.Context, variantID uint, input SizeInput) (*models.ProductSize, error) {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	size := &models.ProductSize{
		VariantID: variantID,
		SizeName:  strings.TrimSpace(input.SizeName),
		Stock:     input.Stock,
	}
	if err := s.sizeRepo.Create(size); err != nil {
		return nil, err
	}
	s.recomputeStock(variant.ProductID)
	return size, nil
}

// UpdateSize 更新尺码库存，完成后重算库存缓存
func (s *ProductService) UpdateSize(ctx context.Context, sizeID uint, input SizeInput) (*models.ProductSize, error) {
	size, err := s.sizeRepo.GetByID(sizeID)
	if err != nil {
		return nil, err
	}
	if size == nil {
		return nil, ErrSizeNotFound
	}
	variant, err := s.variantRepo.GetByID(size.VariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	size.SizeName = strings.TrimSpace(input.SizeName)
	size.Stock = input.Stock
	if err := s.sizeRepo.Update(size); err != nil {
		return nil, err
	}
	s.recomputeStock(variant.ProductID)
	return size, nil
}

// DeleteSize 删除尺码，完成后重算库存缓存
func (s *ProductService) DeleteSize(ctx context.Context, sizeID uint) error {
	size, err := s.sizeRepo.GetByID(sizeID)
	if err != nil {
		return err
	}
	if size == nil {
		return ErrSizeNotFound
	}
	variant, err := s.variantRepo.GetByID(size.VariantID)
	if err != nil {
		return err
	}
	if err := s.sizeRepo.Delete(sizeID); err != nil {
		return err
	}
	if variant != nil {
		s.recomputeStock(variant.ProductID)
	}
	return nil
}

func (s *ProductService) recomputeStock(productID uint) {
	if _, err := s.productRepo.RecomputeStock(productID); err != nil {
		logger.Warnw("product_stock_recompute_failed", "product_id", productID, "error", err)
	}
}
