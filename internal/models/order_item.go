package models

import "github.com/shopspring/decimal"

// OrderItem 订单项表（下单时的商品快照）
type OrderItem struct {
	ID              uint   `gorm:"primarykey" json:"id"`                                           // 主键
	OrderID         uint   `gorm:"not null;index" json:"order_id"`                                 // 订单ID
	ProductID       *uint  `gorm:"index" json:"product_id,omitempty"`                              // 商品ID（商品删除后置空）
	ProductName     string `gorm:"type:varchar(200);not null" json:"product_name"`                 // 商品名称快照
	Color           string `gorm:"type:varchar(100)" json:"color"`                                 // 颜色
	Size            string `gorm:"type:varchar(50)" json:"size"`                                   // 尺码
	Quantity        int    `gorm:"not null" json:"quantity"`                                       // 数量
	PriceAtPurchase Money  `gorm:"type:decimal(20,2);not null;default:0" json:"price_at_purchase"` // 下单时单价

	// 关联
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"product,omitempty"` // 商品信息
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal 行小计 = 单价 x 数量
func (i *OrderItem) Subtotal() Money {
	return NewMoneyFromDecimal(i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity))))
}
