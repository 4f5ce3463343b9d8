package service

import (
	"context"

	"github.com/ice-club/storefront/internal/models"
	"github.com/ice-club/storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// DashboardService 仪表盘服务
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// DashboardOverview 仪表盘总览
type DashboardOverview struct {
	OrdersTotal     int64        `json:"orders_total"`
	PendingOrders   int64        `json:"pending_orders"`
	ShippedOrders   int64        `json:"shipped_orders"`
	DeliveredOrders int64        `json:"delivered_orders"`
	CanceledOrders  int64        `json:"canceled_orders"`
	ProductsTotal   int64        `json:"products_total"`
	MessagesTotal   int64        `json:"messages_total"`
	TotalRevenue    models.Money `json:"total_revenue"`
}

// GetOverview 获取总览：各状态订单数、商品数、留言数与已签收营收
func (s *DashboardService) GetOverview(ctx context.Context) (*DashboardOverview, error) {
	row, err := s.dashboardRepo.GetOverview()
	if err != nil {
		return nil, err
	}
	return &DashboardOverview{
		OrdersTotal:     row.OrdersTotal,
		PendingOrders:   row.PendingOrders,
		ShippedOrders:   row.ShippedOrders,
		DeliveredOrders: row.DeliveredOrders,
		CanceledOrders:  row.CanceledOrders,
		ProductsTotal:   row.ProductsTotal,
		MessagesTotal:   row.MessagesTotal,
		TotalRevenue:    models.NewMoneyFromDecimal(decimal.NewFromFloat(row.RevenueDelivered)),
	}, nil
}
