package repository

import (
	"testing"

	"github.com/ice-club/storefront/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupSizeRepositoryTest(t *testing.T) (*GormSizeRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductVariant{}, &models.ProductSize{}); err != nil {
		t.Fatalf("migrate size tables failed: %v", err)
	}
	return NewSizeRepository(db), db
}

func TestFindForPurchaseMatchesColorAndSize(t *testing.T) {
	repo, db := setupSizeRepositoryTest(t)

	product := &models.Product{Name: "Oversized Tee", SKU: "OVT-000001"}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	black := &models.ProductVariant{ProductID: product.ID, ColorName: "Black"}
	white := &models.ProductVariant{ProductID: product.ID, ColorName: "White"}
	if err := db.Create(black).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	if err := db.Create(white).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	blackM := &models.ProductSize{VariantID: black.ID, SizeName: "M", Stock: 3}
	whiteM := &models.ProductSize{VariantID: white.ID, SizeName: "M", Stock: 7}
	if err := db.Create(blackM).Error; err != nil {
		t.Fatalf("create size failed: %v", err)
	}
	if err := db.Create(whiteM).Error; err != nil {
		t.Fatalf("create size failed: %v", err)
	}

	got, err := repo.FindForPurchase(product.ID, "Black", "M")
	if err != nil {
		t.Fatalf("find for purchase failed: %v", err)
	}
	if got == nil || got.ID != blackM.ID {
		t.Fatalf("want size %d got %+v", blackM.ID, got)
	}

	missing, err := repo.FindForPurchase(product.ID, "Red", "M")
	if err != nil {
		t.Fatalf("find missing color failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("want nil for missing color got %+v", missing)
	}
}

func TestSizeDecrementStockStopsAtZero(t *testing.T) {
	repo, db := setupSizeRepositoryTest(t)

	variant := &models.ProductVariant{ProductID: 1, ColorName: "Black"}
	if err := db.Create(variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	size := &models.ProductSize{VariantID: variant.ID, SizeName: "L", Stock: 2}
	if err := db.Create(size).Error; err != nil {
		t.Fatalf("create size failed: %v", err)
	}

	affected, err := repo.DecrementStock(size.ID, 2)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement affected want 1 got %d", affected)
	}

	affected, err = repo.DecrementStock(size.ID, 1)
	if err != nil {
		t.Fatalf("decrement empty failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("decrement empty affected want 0 got %d", affected)
	}

	var got models.ProductSize
	if err := db.First(&got, size.ID).Error; err != nil {
		t.Fatalf("reload size failed: %v", err)
	}
	if got.Stock != 0 {
		t.Fatalf("stock want 0 got %d", got.Stock)
	}
}
