package queue

import (
	"encoding/json"

	"github.com/ice-club/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmationEmail 下单确认邮件任务
	TaskOrderConfirmationEmail = constants.TaskOrderConfirmationEmail
	// TaskOrderStatusEmail 订单状态邮件通知任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskContactNotifyEmail 联系表单通知任务
	TaskContactNotifyEmail = constants.TaskContactNotifyEmail
)

// OrderEmailPayload 订单邮件任务载荷
type OrderEmailPayload struct {
	OrderID uint `json:"order_id"`
}

// ContactNotifyPayload 联系表单通知任务载荷
type ContactNotifyPayload struct {
	MessageID uint `json:"message_id"`
}

// NewOrderConfirmationEmailTask 创建下单确认邮件任务
func NewOrderConfirmationEmailTask(payload OrderEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmationEmail, body), nil
}

// NewOrderStatusEmailTask 创建订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewContactNotifyEmailTask 创建联系表单通知任务
func NewContactNotifyEmailTask(payload ContactNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskContactNotifyEmail, body), nil
}
