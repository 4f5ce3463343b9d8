package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	UserID      uint           `gorm:"index" json:"user_id,omitempty"`                            // 下单用户ID
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`                    // 收件人姓名
	Email       string         `gorm:"type:varchar(254);not null;index" json:"email"`             // 收件人邮箱
	Phone       string         `gorm:"type:varchar(30);not null" json:"phone"`                    // 收件人电话
	Governorate string         `gorm:"type:varchar(100);not null" json:"governorate"`             // 省份
	Address     string         `gorm:"type:text;not null" json:"address"`                         // 详细地址
	TotalPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 订单总金额
	Status      string         `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"` // 订单状态
	IsCompleted bool           `gorm:"not null;default:false" json:"is_completed"`                // 是否已完成（签收后置位）
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
