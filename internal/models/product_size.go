package models

// ProductSize 商品尺码库存表
type ProductSize struct {
	ID        uint   `gorm:"primarykey" json:"id"`                        // 主键
	VariantID uint   `gorm:"not null;index" json:"variant_id"`            // 变体ID
	SizeName  string `gorm:"type:varchar(50);not null" json:"size_name"`  // 尺码名称（S/M/L/XL…）
	Stock     int    `gorm:"not null;default:0" json:"stock"`             // 该尺码库存
}

// TableName 指定表名
func (ProductSize) TableName() string {
	return "product_sizes"
}
