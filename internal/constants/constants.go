package constants

// 订单状态常量
const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCanceled  = "Canceled"
)

// OrderStatuses 全部合法订单状态
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCanceled,
}

// IsValidOrderStatus 判断订单状态是否合法
func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// 购物车数量调整动作常量
const (
	CartActionIncrease = "increase"
	CartActionDecrease = "decrease"
)

// 购物车项默认值（兼容未选颜色/尺码的旧链接）
const (
	CartDefaultColor = "Default"
	CartDefaultSize  = "N/A"
)

// 队列任务类型常量
const (
	TaskOrderConfirmationEmail = "email:order_confirmation"
	TaskOrderStatusEmail       = "email:order_status"
	TaskContactNotifyEmail     = "email:contact_notify"
)

// 队列名称常量
const (
	QueueDefault = "default"
)
