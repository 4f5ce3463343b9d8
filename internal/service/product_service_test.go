package service

import (
	"context"
	"testing"

	"github.com/ice-club/storefront/internal/models"
	"github.com/ice-club/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.ProductVariant{}, &models.ProductSize{}); err != nil {
		t.Fatalf("migrate tables failed: %v", err)
	}
	svc := NewProductService(
		repository.NewProductRepository(db),
		repository.NewVariantRepository(db),
		repository.NewSizeRepository(db),
		repository.NewCategoryRepository(db),
	)
	return svc, db
}

func productStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	return product.Stock
}

func TestCreateWithNestedVariantsComputesStock(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	ctx := context.Background()

	product, err := svc.Create(ctx, ProductInput{
		Name:  "Zip Hoodie",
		Price: models.NewMoneyFromDecimal(decimal.NewFromInt(120)),
		Variants: []VariantInput{
			{ColorName: "Black", Sizes: []SizeInput{{SizeName: "S", Stock: 2}, {SizeName: "M", Stock: 3}}},
			{ColorName: "White", Sizes: []SizeInput{{SizeName: "L", Stock: 4}}},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if got := productStock(t, db, product.ID); got != 9 {
		t.Fatalf("stock want 9 got %d", got)
	}
	if len(product.Variants) != 2 {
		t.Fatalf("variants want 2 got %d", len(product.Variants))
	}
}

func TestSizeEditsKeepStockCacheInSync(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	ctx := context.Background()

	product, err := svc.Create(ctx, ProductInput{
		Name:  "Basic Tee",
		Price: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		Variants: []VariantInput{
			{ColorName: "Black", Sizes: []SizeInput{{SizeName: "M", Stock: 3}}},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	variantID := product.Variants[0].ID

	size, err := svc.CreateSize(ctx, variantID, SizeInput{SizeName: "L", Stock: 5})
	if err != nil {
		t.Fatalf("create size failed: %v", err)
	}
	if got := productStock(t, db, product.ID); got != 8 {
		t.Fatalf("after create stock want 8 got %d", got)
	}

	if _, err := svc.UpdateSize(ctx, size.ID, SizeInput{SizeName: "L", Stock: 1}); err != nil {
		t.Fatalf("update size failed: %v", err)
	}
	if got := productStock(t, db, product.ID); got != 4 {
		t.Fatalf("after update stock want 4 got %d", got)
	}

	if err := svc.DeleteSize(ctx, size.ID); err != nil {
		t.Fatalf("delete size failed: %v", err)
	}
	if got := productStock(t, db, product.ID); got != 3 {
		t.Fatalf("after delete stock want 3 got %d", got)
	}

	if err := svc.DeleteVariant(ctx, variantID); err != nil {
		t.Fatalf("delete variant failed: %v", err)
	}
	if got := productStock(t, db, product.ID); got != 0 {
		t.Fatalf("after variant delete stock want 0 got %d", got)
	}
}

func TestDeleteCategoryInUseRefused(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	ctx := context.Background()

	categorySvc := NewCategoryService(repository.NewCategoryRepository(db))
	category, err := categorySvc.Create(ctx, CategoryInput{Name: "Hoodies", Slug: "hoodies"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	if _, err := svc.Create(ctx, ProductInput{
		Name:       "Zip Hoodie",
		CategoryID: &category.ID,
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(120)),
	}); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := categorySvc.Delete(ctx, category.ID); err != ErrCategoryInUse {
		t.Fatalf("want ErrCategoryInUse got %v", err)
	}
}
