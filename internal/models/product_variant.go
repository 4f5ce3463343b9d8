package models

import "time"

// ProductVariant 商品颜色变体表
type ProductVariant struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                  // 主键
	ProductID uint      `gorm:"not null;index" json:"product_id"`                      // 商品ID
	ColorName string    `gorm:"type:varchar(100);not null" json:"color_name"`          // 颜色名称
	ColorCode string    `gorm:"type:varchar(20)" json:"color_code"`                    // 颜色色值（#RRGGBB）
	Image     string    `gorm:"type:varchar(500)" json:"image"`                        // 变体图片路径
	CreatedAt time.Time `json:"created_at"`                                            // 创建时间

	// 关联
	Sizes []ProductSize `gorm:"foreignKey:VariantID" json:"sizes,omitempty"` // 尺码列表
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}

// TotalStock 变体全部尺码库存之和
func (v *ProductVariant) TotalStock() int {
	total := 0
	for _, s := range v.Sizes {
		total += s.Stock
	}
	return total
}
