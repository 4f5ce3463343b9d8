package models

import "time"

// ContactMessage 联系表单留言表
type ContactMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`                        // 主键
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`      // 姓名
	Email     string    `gorm:"type:varchar(254);not null" json:"email"`     // 邮箱
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`               // 电话
	Subject   string    `gorm:"type:varchar(300)" json:"subject"`            // 主题
	Message   string    `gorm:"type:text;not null" json:"message"`           // 留言内容
	CreatedAt time.Time `gorm:"index" json:"created_at"`                     // 创建时间
}

// TableName 指定表名
func (ContactMessage) TableName() string {
	return "contact_messages"
}
