package repository

import (
	"testing"

	"github.com/ice-club/storefront/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.ProductVariant{}, &models.ProductSize{}); err != nil {
		t.Fatalf("migrate product tables failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createTestProduct(t *testing.T, repo *GormProductRepository, name string, price int64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:  name,
		Price: models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		Stock: stock,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createTestVariant(t *testing.T, db *gorm.DB, productID uint, color string, sizes map[string]int) *models.ProductVariant {
	t.Helper()
	variant := &models.ProductVariant{
		ProductID: productID,
		ColorName: color,
	}
	if err := db.Create(variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	for sizeName, stock := range sizes {
		size := &models.ProductSize{
			VariantID: variant.ID,
			SizeName:  sizeName,
			Stock:     stock,
		}
		if err := db.Create(size).Error; err != nil {
			t.Fatalf("create size failed: %v", err)
		}
	}
	return variant
}

func TestProductSKUGeneratedOnCreate(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "Winter Hoodie", 100, 0)
	if product.SKU == "" {
		t.Fatalf("expected generated sku, got empty")
	}
	if got := product.SKU[:4]; got != "WIN-" {
		t.Fatalf("sku prefix want WIN- got %s", got)
	}
	if len(product.SKU) != 10 {
		t.Fatalf("sku length want 10 got %d (%s)", len(product.SKU), product.SKU)
	}
}

func TestRecomputeStockSumsAllSizes(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "Basic Tee", 50, 0)
	createTestVariant(t, db, product.ID, "Black", map[string]int{"S": 2, "M": 3})
	createTestVariant(t, db, product.ID, "White", map[string]int{"L": 4})

	total, err := repo.RecomputeStock(product.ID)
	if err != nil {
		t.Fatalf("recompute stock failed: %v", err)
	}
	if total != 9 {
		t.Fatalf("recomputed total want 9 got %d", total)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 9 {
		t.Fatalf("stock want 9 got %d", got.Stock)
	}
}

func TestDecrementStockRequiresSufficientStock(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "Cap", 25, 5)

	affected, err := repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement stock failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement affected want 1 got %d", affected)
	}

	affected, err = repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement over stock failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("decrement over stock affected want 0 got %d", affected)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 2 {
		t.Fatalf("stock want 2 got %d", got.Stock)
	}
}

func TestListFiltersDiscountedAndCategory(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)

	category := &models.Category{Name: "Hoodies", Slug: "hoodies"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	discount := models.NewMoneyFromDecimal(decimal.NewFromInt(80))
	inCategory := &models.Product{
		Name:          "Zip Hoodie",
		CategoryID:    &category.ID,
		Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(120)),
		DiscountPrice: &discount,
	}
	if err := repo.Create(inCategory); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	createTestProduct(t, repo, "Plain Tee", 40, 0)

	products, total, err := repo.List(ProductListFilter{CategorySlug: "hoodies", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 1 || len(products) != 1 || products[0].ID != inCategory.ID {
		t.Fatalf("category filter want only product %d got total=%d len=%d", inCategory.ID, total, len(products))
	}

	products, total, err = repo.List(ProductListFilter{OnlyDiscounted: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list discounted failed: %v", err)
	}
	if total != 1 || len(products) != 1 || products[0].ID != inCategory.ID {
		t.Fatalf("discount filter want only product %d got total=%d len=%d", inCategory.ID, total, len(products))
	}

	products, _, err = repo.List(ProductListFilter{Search: "plain", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by search failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Plain Tee" {
		t.Fatalf("search filter want Plain Tee got %+v", products)
	}
}
