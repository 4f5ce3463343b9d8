package repository

import (
	"errors"

	"github.com/ice-club/storefront/internal/models"

	"gorm.io/gorm"
)

// SizeRepository 商品尺码数据访问接口
type SizeRepository interface {
	GetByID(id uint) (*models.ProductSize, error)
	FindForPurchase(productID uint, color, size string) (*models.ProductSize, error)
	Create(size *models.ProductSize) error
	Update(size *models.ProductSize) error
	Delete(id uint) error
	DecrementStock(sizeID uint, quantity int) (int64, error)
}

// GormSizeRepository GORM 实现
type GormSizeRepository struct {
	db *gorm.DB
}

// NewSizeRepository 创建尺码仓库
func NewSizeRepository(db *gorm.DB) *GormSizeRepository {
	return &GormSizeRepository{db: db}
}

// GetByID 根据 ID 获取尺码
func (r *GormSizeRepository) GetByID(id uint) (*models.ProductSize, error) {
	var size models.ProductSize
	if err := r.db.First(&size, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &size, nil
}

// FindForPurchase 按商品、颜色、尺码定位库存行
func (r *GormSizeRepository) FindForPurchase(productID uint, color, size string) (*models.ProductSize, error) {
	var row models.ProductSize
	err := r.db.Joins("JOIN product_variants ON product_variants.id = product_sizes.variant_id").
		Where("product_variants.product_id = ? AND product_variants.color_name = ? AND product_sizes.size_name = ?",
			productID, color, size).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Create 创建尺码
func (r *GormSizeRepository) Create(size *models.ProductSize) error {
	return r.db.Create(size).Error
}

// Update 更新尺码
func (r *GormSizeRepository) Update(size *models.ProductSize) error {
	return r.db.Save(size).Error
}

// Delete 删除尺码
func (r *GormSizeRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductSize{}, id).Error
}

// DecrementStock 条件扣减尺码库存，库存不足时不生效
func (r *GormSizeRepository) DecrementStock(sizeID uint, quantity int) (int64, error) {
	if sizeID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.db.Model(&models.ProductSize{}).
		Where("id = ? AND stock >= ?", sizeID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
