package service

import (
	"context"
	"testing"

	"github.com/ice-club/storefront/internal/cache"
	"github.com/ice-club/storefront/internal/constants"
	"github.com/ice-club/storefront/internal/models"
	"github.com/ice-club/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *cache.MemoryCartStore, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.ProductVariant{}, &models.ProductSize{}); err != nil {
		t.Fatalf("migrate tables failed: %v", err)
	}
	store := cache.NewMemoryCartStore()
	svc := NewCartService(store, repository.NewProductRepository(db))
	return svc, store, db
}

func createCartTestProduct(t *testing.T, db *gorm.DB, name string, price int64) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:  name,
		Price: models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestAddSameItemTwiceIncrementsQuantity(t *testing.T) {
	svc, store, db := setupCartServiceTest(t)
	ctx := context.Background()
	product := createCartTestProduct(t, db, "Basic Tee", 50)

	if err := svc.Add(ctx, 1, product.ID, "Black", "M"); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := svc.Add(ctx, 1, product.ID, "Black", "M"); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	cart, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart) != 1 {
		t.Fatalf("cart entries want 1 got %d", len(cart))
	}
	key := models.CartItemKey(product.ID, "Black", "M")
	if cart[key].Quantity != 2 {
		t.Fatalf("quantity want 2 got %d", cart[key].Quantity)
	}
}

func TestAddDifferentSizeCreatesSeparateEntry(t *testing.T) {
	svc, store, db := setupCartServiceTest(t)
	ctx := context.Background()
	product := createCartTestProduct(t, db, "Basic Tee", 50)

	if err := svc.Add(ctx, 1, product.ID, "Black", "M"); err != nil {
		t.Fatalf("add M failed: %v", err)
	}
	if err := svc.Add(ctx, 1, product.ID, "Black", "L"); err != nil {
		t.Fatalf("add L failed: %v", err)
	}

	cart, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart) != 2 {
		t.Fatalf("cart entries want 2 got %d", len(cart))
	}
}

func TestAddUnknownProductFails(t *testing.T) {
	svc, _, _ := setupCartServiceTest(t)
	if err := svc.Add(context.Background(), 1, 9999, "Black", "M"); err != ErrProductNotFound {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}

func TestUpdateDecreaseRemovesAtZero(t *testing.T) {
	svc, store, db := setupCartServiceTest(t)
	ctx := context.Background()
	product := createCartTestProduct(t, db, "Basic Tee", 50)
	key := models.CartItemKey(product.ID, "Black", "M")

	if err := svc.Add(ctx, 1, product.ID, "Black", "M"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Update(ctx, 1, key, constants.CartActionIncrease); err != nil {
		t.Fatalf("increase failed: %v", err)
	}
	if err := svc.Update(ctx, 1, key, constants.CartActionDecrease); err != nil {
		t.Fatalf("decrease failed: %v", err)
	}

	cart, _ := store.Get(ctx, 1)
	if cart[key].Quantity != 1 {
		t.Fatalf("quantity want 1 got %d", cart[key].Quantity)
	}

	if err := svc.Update(ctx, 1, key, constants.CartActionDecrease); err != nil {
		t.Fatalf("decrease to zero failed: %v", err)
	}
	cart, _ = store.Get(ctx, 1)
	if _, ok := cart[key]; ok {
		t.Fatalf("entry should be removed at zero quantity")
	}

	if err := svc.Update(ctx, 1, key, constants.CartActionIncrease); err != ErrCartItemNotFound {
		t.Fatalf("want ErrCartItemNotFound got %v", err)
	}
	if err := svc.Update(ctx, 1, "whatever", "reset"); err != ErrCartItemNotFound {
		t.Fatalf("want ErrCartItemNotFound for missing key got %v", err)
	}
}

func TestViewSkipsVanishedProductsAndPrunes(t *testing.T) {
	svc, store, db := setupCartServiceTest(t)
	ctx := context.Background()
	product := createCartTestProduct(t, db, "Basic Tee", 50)

	cart := models.Cart{
		models.CartItemKey(product.ID, "Black", "M"): {ProductID: product.ID, Quantity: 2, Color: "Black", Size: "M"},
		"9999_Red_S": {ProductID: 9999, Quantity: 1, Color: "Red", Size: "S"},
	}
	if err := store.Save(ctx, 1, cart); err != nil {
		t.Fatalf("save cart failed: %v", err)
	}

	view, err := svc.View(ctx, 1)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("view items want 1 got %d", len(view.Items))
	}
	if view.Items[0].ProductID != product.ID || view.Items[0].Quantity != 2 {
		t.Fatalf("unexpected view item: %+v", view.Items[0])
	}
	if view.Total.String() != "100.00" {
		t.Fatalf("total want 100.00 got %s", view.Total.String())
	}

	// 失效条目应在回写时被丢弃
	stored, _ := store.Get(ctx, 1)
	if _, ok := stored["9999_Red_S"]; ok {
		t.Fatalf("vanished product entry should be pruned")
	}
}

func TestViewPrefersDiscountPrice(t *testing.T) {
	svc, _, db := setupCartServiceTest(t)
	ctx := context.Background()

	discount := models.NewMoneyFromDecimal(decimal.NewFromInt(30))
	product := &models.Product{
		Name:          "Sale Tee",
		Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		DiscountPrice: &discount,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := svc.Add(ctx, 1, product.ID, "", ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	view, err := svc.View(ctx, 1)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if view.Items[0].UnitPrice.String() != "30.00" {
		t.Fatalf("unit price want 30.00 got %s", view.Items[0].UnitPrice.String())
	}
	if view.Items[0].Color != constants.CartDefaultColor || view.Items[0].Size != constants.CartDefaultSize {
		t.Fatalf("defaults not applied: %+v", view.Items[0])
	}
}

func TestCountIgnoresMalformedEntries(t *testing.T) {
	svc, store, db := setupCartServiceTest(t)
	ctx := context.Background()
	product := createCartTestProduct(t, db, "Basic Tee", 50)

	cart := models.Cart{
		models.CartItemKey(product.ID, "Black", "M"): {ProductID: product.ID, Quantity: 3, Color: "Black", Size: "M"},
		"bad_entry": {ProductID: 0, Quantity: 5},
	}
	if err := store.Save(ctx, 1, cart); err != nil {
		t.Fatalf("save cart failed: %v", err)
	}

	count, err := svc.Count(ctx, 1)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("count want 3 got %d", count)
	}
}
