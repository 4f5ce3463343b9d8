package repository

import (
	"errors"

	"github.com/ice-club/storefront/internal/models"

	"gorm.io/gorm"
)

// VariantRepository 商品变体数据访问接口
type VariantRepository interface {
	GetByID(id uint) (*models.ProductVariant, error)
	ListByProduct(productID uint) ([]models.ProductVariant, error)
	Create(variant *models.ProductVariant) error
	Update(variant *models.ProductVariant) error
	Delete(id uint) error
}

// GormVariantRepository GORM 实现
type GormVariantRepository struct {
	db *gorm.DB
}

// NewVariantRepository 创建变体仓库
func NewVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// GetByID 根据 ID 获取变体（含尺码）
func (r *GormVariantRepository) GetByID(id uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.Preload("Sizes", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// ListByProduct 获取商品全部变体
func (r *GormVariantRepository) ListByProduct(productID uint) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := r.db.Preload("Sizes", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("product_id = ?", productID).Order("id ASC").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// Create 创建变体
func (r *GormVariantRepository) Create(variant *models.ProductVariant) error {
	return r.db.Create(variant).Error
}

// Update 更新变体
func (r *GormVariantRepository) Update(variant *models.ProductVariant) error {
	return r.db.Save(variant).Error
}

// Delete 删除变体及其尺码
func (r *GormVariantRepository) Delete(id uint) error {
	if err := r.db.Where("variant_id = ?", id).Delete(&models.ProductSize{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.ProductVariant{}, id).Error
}
