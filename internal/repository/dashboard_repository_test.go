package repository

import (
	"testing"

	"github.com/ice-club/storefront/internal/constants"
	"github.com/ice-club/storefront/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupDashboardRepositoryTest(t *testing.T) (*GormDashboardRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.Product{}, &models.ContactMessage{}); err != nil {
		t.Fatalf("migrate dashboard tables failed: %v", err)
	}
	return NewDashboardRepository(db), db
}

func createDashboardOrder(t *testing.T, db *gorm.DB, status string, total int64) {
	t.Helper()
	order := &models.Order{
		Name:        "Customer",
		Email:       "customer@example.com",
		Phone:       "0100000000",
		Governorate: "Cairo",
		Address:     "1 Nile St",
		Status:      status,
		TotalPrice:  models.NewMoneyFromDecimal(decimal.NewFromInt(total)),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
}

func TestDashboardOverviewCountsAndRevenue(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)

	createDashboardOrder(t, db, constants.OrderStatusPending, 100)
	createDashboardOrder(t, db, constants.OrderStatusShipped, 200)
	createDashboardOrder(t, db, constants.OrderStatusDelivered, 300)
	createDashboardOrder(t, db, constants.OrderStatusDelivered, 150)
	createDashboardOrder(t, db, constants.OrderStatusCanceled, 400)

	if err := db.Create(&models.Product{Name: "Tee", SKU: "TEE-000001"}).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if err := db.Create(&models.ContactMessage{Name: "A", Email: "a@example.com", Message: "hi"}).Error; err != nil {
		t.Fatalf("create message failed: %v", err)
	}

	overview, err := repo.GetOverview()
	if err != nil {
		t.Fatalf("get overview failed: %v", err)
	}
	if overview.OrdersTotal != 5 {
		t.Fatalf("orders total want 5 got %d", overview.OrdersTotal)
	}
	if overview.PendingOrders != 1 || overview.ShippedOrders != 1 || overview.DeliveredOrders != 2 || overview.CanceledOrders != 1 {
		t.Fatalf("status counts wrong: %+v", overview)
	}
	// 营收只计已签收订单
	if overview.RevenueDelivered != 450 {
		t.Fatalf("revenue want 450 got %v", overview.RevenueDelivered)
	}
	if overview.ProductsTotal != 1 {
		t.Fatalf("products total want 1 got %d", overview.ProductsTotal)
	}
	if overview.MessagesTotal != 1 {
		t.Fatalf("messages total want 1 got %d", overview.MessagesTotal)
	}
}
