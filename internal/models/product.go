package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                   // 主键
	CategoryID    *uint          `gorm:"index" json:"category_id,omitempty"`                     // 分类ID（可空）
	Name          string         `gorm:"not null;index" json:"name"`                             // 商品名称
	SKU           string         `gorm:"uniqueIndex;not null" json:"sku"`                        // 商品编码（缺省时自动生成）
	Description   string         `gorm:"type:text" json:"description"`                           // 商品描述
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`    // 售价
	DiscountPrice *Money         `gorm:"type:decimal(20,2)" json:"discount_price,omitempty"`    // 折后价（可空）
	Stock         int            `gorm:"not null;default:0" json:"stock"`                        // 库存缓存（全部尺码库存之和）
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                             // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                         // 软删除时间

	// 关联
	Category *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`  // 颜色变体列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// BeforeCreate 创建前补齐 SKU
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(p.SKU) == "" {
		p.SKU = GenerateSKU(p.Name)
	}
	return nil
}

// IsOutOfStock 是否售罄
func (p *Product) IsOutOfStock() bool {
	return p.Stock <= 0
}

// UnitPrice 有折后价时按折后价计价
func (p *Product) UnitPrice() Money {
	if p.DiscountPrice != nil && p.DiscountPrice.GreaterThan(decimal.Zero) {
		return *p.DiscountPrice
	}
	return p.Price
}

// DiscountPercentage 折扣百分比（无折扣返回 0）
func (p *Product) DiscountPercentage() int {
	if p.DiscountPrice == nil || !p.DiscountPrice.GreaterThan(decimal.Zero) {
		return 0
	}
	if !p.Price.GreaterThan(decimal.Zero) {
		return 0
	}
	diff := p.Price.Sub(p.DiscountPrice.Decimal)
	pct := diff.Div(p.Price.Decimal).Mul(decimal.NewFromInt(100))
	return int(pct.IntPart())
}

// MainImage 首个变体的图片作为主图
func (p *Product) MainImage() string {
	for _, v := range p.Variants {
		if v.Image != "" {
			return v.Image
		}
	}
	return ""
}

// GenerateSKU 根据商品名生成编码：名称前缀（最多 3 个大写字母）+ 6 位大写十六进制
func GenerateSKU(name string) string {
	prefix := make([]rune, 0, 3)
	for _, r := range strings.ToUpper(name) {
		if r >= 'A' && r <= 'Z' {
			prefix = append(prefix, r)
			if len(prefix) == 3 {
				break
			}
		}
	}
	if len(prefix) == 0 {
		prefix = []rune{'P', 'R', 'D'}
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("%s-%s", string(prefix), suffix)
}
