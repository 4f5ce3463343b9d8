package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ice-club/storefront/internal/cache"
	"github.com/ice-club/storefront/internal/constants"
	"github.com/ice-club/storefront/internal/models"
	"github.com/ice-club/storefront/internal/queue"
	"github.com/ice-club/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeMailer struct {
	confirmations int
	statusEmails  int
	lastStatus    string
}

func (m *fakeMailer) SendOrderConfirmation(order *models.Order) error {
	m.confirmations++
	return nil
}

func (m *fakeMailer) SendOrderStatusEmail(order *models.Order) error {
	m.statusEmails++
	m.lastStatus = order.Status
	return nil
}

type orderServiceFixture struct {
	svc    *OrderService
	store  *cache.MemoryCartStore
	mailer *fakeMailer
	db     *gorm.DB
}

func setupOrderServiceTest(t *testing.T) *orderServiceFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{}, &models.Product{}, &models.ProductVariant{}, &models.ProductSize{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate tables failed: %v", err)
	}

	store := cache.NewMemoryCartStore()
	mailer := &fakeMailer{}
	queueClient, err := queue.NewClient(nil) // 队列关闭，走内联发送路径
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewSizeRepository(db),
		store,
		queueClient,
		mailer,
	)
	return &orderServiceFixture{svc: svc, store: store, mailer: mailer, db: db}
}

func createOrderTestProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:  name,
		Price: models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		Stock: stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createOrderTestSize(t *testing.T, db *gorm.DB, productID uint, color, sizeName string, stock int) *models.ProductSize {
	t.Helper()
	variant := &models.ProductVariant{ProductID: productID, ColorName: color}
	if err := db.Create(variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	size := &models.ProductSize{VariantID: variant.ID, SizeName: sizeName, Stock: stock}
	if err := db.Create(size).Error; err != nil {
		t.Fatalf("create size failed: %v", err)
	}
	return size
}

func checkoutInput(userID uint) CheckoutInput {
	return CheckoutInput{
		UserID:      userID,
		Name:        "Nour",
		Email:       "nour@example.com",
		Phone:       "0100000000",
		Governorate: "Cairo",
		Address:     "1 Nile St",
	}
}

func TestCheckoutDecrementsSizeStockAndClearsCart(t *testing.T) {
	f := setupOrderServiceTest(t)
	ctx := context.Background()

	product := createOrderTestProduct(t, f.db, "Basic Tee", 100, 0)
	size := createOrderTestSize(t, f.db, product.ID, "Black", "M", 3)

	cart := models.Cart{
		models.CartItemKey(product.ID, "Black", "M"): {ProductID: product.ID, Quantity: 2, Color: "Black", Size: "M"},
	}
	if err := f.store.Save(ctx, 7, cart); err != nil {
		t.Fatalf("save cart failed: %v", err)
	}

	order, err := f.svc.Checkout(ctx, checkoutInput(7))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status want Pending got %s", order.Status)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected order items: %+v", order.Items)
	}
	if order.TotalPrice.String() != "200.00" {
		t.Fatalf("total want 200.00 got %s", order.TotalPrice.String())
	}

	var gotSize models.ProductSize
	if err := f.db.First(&gotSize, size.ID).Error; err != nil {
		t.Fatalf("reload size failed: %v", err)
	}
	if gotSize.Stock != 1 {
		t.Fatalf("size stock want 1 got %d", gotSize.Stock)
	}

	// 库存缓存应已重算
	var gotProduct models.Product
	if err := f.db.First(&gotProduct, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if gotProduct.Stock != 1 {
		t.Fatalf("product stock cache want 1 got %d", gotProduct.Stock)
	}

	stored, _ := f.store.Get(ctx, 7)
	if len(stored) != 0 {
		t.Fatalf("cart should be empty after checkout, got %d entries", len(stored))
	}
	if f.mailer.confirmations != 1 {
		t.Fatalf("confirmation emails want 1 got %d", f.mailer.confirmations)
	}
}

func TestCheckoutShortfallAbortsWholeOrder(t *testing.T) {
	f := setupOrderServiceTest(t)
	ctx := context.Background()

	inStock := createOrderTestProduct(t, f.db, "Basic Tee", 100, 0)
	inStockSize := createOrderTestSize(t, f.db, inStock.ID, "Black", "M", 10)
	short := createOrderTestProduct(t, f.db, "Limited Hoodie", 200, 0)
	createOrderTestSize(t, f.db, short.ID, "White", "L", 1)

	cart := models.Cart{
		models.CartItemKey(inStock.ID, "Black", "M"): {ProductID: inStock.ID, Quantity: 2, Color: "Black", Size: "M"},
		models.CartItemKey(short.ID, "White", "L"):   {ProductID: short.ID, Quantity: 3, Color: "White", Size: "L"},
	}
	if err := f.store.Save(ctx, 7, cart); err != nil {
		t.Fatalf("save cart failed: %v", err)
	}

	_, err := f.svc.Checkout(ctx, checkoutInput(7))
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock got %v", err)
	}

	var shortfall *StockShortfallError
	if !errors.As(err, &shortfall) {
		t.Fatalf("want StockShortfallError got %T", err)
	}
	if shortfall.Available != 1 || shortfall.Requested != 3 {
		t.Fatalf("unexpected shortfall: %+v", shortfall)
	}

	var orderCount int64
	if err := f.db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("no order should be created, got %d", orderCount)
	}

	// 充足的那行也不能扣减
	var gotSize models.ProductSize
	if err := f.db.First(&gotSize, inStockSize.ID).Error; err != nil {
		t.Fatalf("reload size failed: %v", err)
	}
	if gotSize.Stock != 10 {
		t.Fatalf("in-stock size should be untouched, got %d", gotSize.Stock)
	}

	stored, _ := f.store.Get(ctx, 7)
	if len(stored) != 2 {
		t.Fatalf("cart should be preserved on failure, got %d entries", len(stored))
	}
	if f.mailer.confirmations != 0 {
		t.Fatalf("no confirmation email expected, got %d", f.mailer.confirmations)
	}
}

func TestCheckoutFallsBackToProductStock(t *testing.T) {
	f := setupOrderServiceTest(t)
	ctx := context.Background()

	product := createOrderTestProduct(t, f.db, "One Size Cap", 60, 5)

	cart := models.Cart{
		models.CartItemKey(product.ID, constants.CartDefaultColor, constants.CartDefaultSize): {
			ProductID: product.ID, Quantity: 2,
			Color: constants.CartDefaultColor, Size: constants.CartDefaultSize,
		},
	}
	if err := f.store.Save(ctx, 3, cart); err != nil {
		t.Fatalf("save cart failed: %v", err)
	}

	if _, err := f.svc.Checkout(ctx, checkoutInput(3)); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	var got models.Product
	if err := f.db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 3 {
		t.Fatalf("fallback stock want 3 got %d", got.Stock)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := setupOrderServiceTest(t)
	if _, err := f.svc.Checkout(context.Background(), checkoutInput(1)); err != ErrCartEmpty {
		t.Fatalf("want ErrCartEmpty got %v", err)
	}
}

func TestUpdateStatusNotifiesOnceOnChange(t *testing.T) {
	f := setupOrderServiceTest(t)
	ctx := context.Background()

	order := &models.Order{
		Name:        "Nour",
		Email:       "nour@example.com",
		Phone:       "0100000000",
		Governorate: "Cairo",
		Address:     "1 Nile St",
		Status:      constants.OrderStatusPending,
		TotalPrice:  models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
	}
	if err := f.db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	updated, err := f.svc.UpdateStatus(ctx, order.ID, constants.OrderStatusShipped)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusShipped {
		t.Fatalf("status want Shipped got %s", updated.Status)
	}
	if f.mailer.statusEmails != 1 || f.mailer.lastStatus != constants.OrderStatusShipped {
		t.Fatalf("want one Shipped notification got count=%d status=%s", f.mailer.statusEmails, f.mailer.lastStatus)
	}

	// 写入相同状态不应重复通知
	if _, err := f.svc.UpdateStatus(ctx, order.ID, constants.OrderStatusShipped); err != nil {
		t.Fatalf("same status update failed: %v", err)
	}
	if f.mailer.statusEmails != 1 {
		t.Fatalf("same status should not notify, got %d", f.mailer.statusEmails)
	}

	updated, err = f.svc.UpdateStatus(ctx, order.ID, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if !updated.IsCompleted {
		t.Fatalf("delivered order should be completed")
	}
	if f.mailer.statusEmails != 2 {
		t.Fatalf("status emails want 2 got %d", f.mailer.statusEmails)
	}

	var got models.Order
	if err := f.db.First(&got, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if got.Status != constants.OrderStatusDelivered || !got.IsCompleted {
		t.Fatalf("persisted order wrong: status=%s completed=%v", got.Status, got.IsCompleted)
	}
}

func TestUpdateStatusRejectsUnknownLabel(t *testing.T) {
	f := setupOrderServiceTest(t)
	if _, err := f.svc.UpdateStatus(context.Background(), 1, "Refunded"); err != ErrInvalidStatus {
		t.Fatalf("want ErrInvalidStatus got %v", err)
	}
	if _, err := f.svc.UpdateStatus(context.Background(), 999, constants.OrderStatusShipped); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}
}
