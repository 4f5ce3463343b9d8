package repository

import (
	"github.com/ice-club/storefront/internal/constants"
	"github.com/ice-club/storefront/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview() (DashboardOverviewRow, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	OrdersTotal      int64
	PendingOrders    int64
	ShippedOrders    int64
	DeliveredOrders  int64
	CanceledOrders   int64
	ProductsTotal    int64
	MessagesTotal    int64
	RevenueDelivered float64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 获取总览统计
func (r *GormDashboardRepository) GetOverview() (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	orderBase := func() *gorm.DB {
		return r.db.Model(&models.Order{})
	}

	if err := orderBase().Count(&result.OrdersTotal).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusPending).Count(&result.PendingOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusShipped).Count(&result.ShippedOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusDelivered).Count(&result.DeliveredOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusCanceled).Count(&result.CanceledOrders).Error; err != nil {
		return result, err
	}

	// 营收仅统计已签收订单
	if err := orderBase().
		Where("status = ?", constants.OrderStatusDelivered).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&result.RevenueDelivered).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Product{}).Count(&result.ProductsTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.ContactMessage{}).Count(&result.MessagesTotal).Error; err != nil {
		return result, err
	}

	return result, nil
}
