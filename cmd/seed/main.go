package main

import (
	"fmt"

	"github.com/ice-club/storefront/internal/config"
	"github.com/ice-club/storefront/internal/logger"
	"github.com/ice-club/storefront/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Name: "T-Shirts", Slug: "t-shirts"},
		{Name: "Hoodies", Slug: "hoodies"},
		{Name: "Pants", Slug: "pants"},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"t-shirts", "hoodies", "pants"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}
	tshirtID := categoryIDs["t-shirts"]
	hoodieID := categoryIDs["hoodies"]
	pantsID := categoryIDs["pants"]

	discount := func(v float64) *models.Money {
		m := models.NewMoneyFromDecimal(decimal.NewFromFloat(v))
		return &m
	}

	// 添加商品，每个商品带颜色变体与尺码库存
	products := []models.Product{
		{
			Name:        "Classic Cotton Tee",
			SKU:         "CCT-SEED01",
			Description: "Everyday cotton t-shirt with a relaxed fit.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(19.99)),
			CategoryID:  &tshirtID,
			Variants: []models.ProductVariant{
				{
					ColorName: "Black",
					ColorCode: "#000000",
					Image:     "/uploads/products/classic-tee-black.jpg",
					Sizes: []models.ProductSize{
						{SizeName: "S", Stock: 10},
						{SizeName: "M", Stock: 15},
						{SizeName: "L", Stock: 12},
						{SizeName: "XL", Stock: 8},
					},
				},
				{
					ColorName: "White",
					ColorCode: "#FFFFFF",
					Image:     "/uploads/products/classic-tee-white.jpg",
					Sizes: []models.ProductSize{
						{SizeName: "S", Stock: 6},
						{SizeName: "M", Stock: 9},
						{SizeName: "L", Stock: 4},
					},
				},
			},
		},
		{
			Name:          "Oversized Graphic Tee",
			SKU:           "OGT-SEED02",
			Description:   "Oversized fit with printed front graphic.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(29.99)),
			DiscountPrice: discount(21.99),
			CategoryID:    &tshirtID,
			Variants: []models.ProductVariant{
				{
					ColorName: "Navy",
					ColorCode: "#1F2A44",
					Image:     "/uploads/products/graphic-tee-navy.jpg",
					Sizes: []models.ProductSize{
						{SizeName: "M", Stock: 7},
						{SizeName: "L", Stock: 5},
						{SizeName: "XL", Stock: 3},
					},
				},
			},
		},
		{
			Name:          "Fleece Zip Hoodie",
			SKU:           "FZH-SEED03",
			Description:   "Heavyweight fleece hoodie with full zip.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(49.99)),
			DiscountPrice: discount(39.99),
			CategoryID:    &hoodieID,
			Variants: []models.ProductVariant{
				{
					ColorName: "Gray",
					ColorCode: "#808080",
					Image:     "/uploads/products/zip-hoodie-gray.jpg",
					Sizes: []models.ProductSize{
						{SizeName: "S", Stock: 4},
						{SizeName: "M", Stock: 6},
						{SizeName: "L", Stock: 6},
						{SizeName: "XL", Stock: 2},
					},
				},
				{
					ColorName: "Olive",
					ColorCode: "#556B2F",
					Image:     "/uploads/products/zip-hoodie-olive.jpg",
					Sizes: []models.ProductSize{
						{SizeName: "M", Stock: 3},
						{SizeName: "L", Stock: 2},
					},
				},
			},
		},
		{
			Name:        "Relaxed Chino Pants",
			SKU:         "RCP-SEED04",
			Description: "Relaxed-fit chinos with stretch fabric.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(44.99)),
			CategoryID:  &pantsID,
			Variants: []models.ProductVariant{
				{
					ColorName: "Khaki",
					ColorCode: "#C3B091",
					Image:     "/uploads/products/chino-khaki.jpg",
					Sizes: []models.ProductSize{
						{SizeName: "30", Stock: 5},
						{SizeName: "32", Stock: 8},
						{SizeName: "34", Stock: 6},
						{SizeName: "36", Stock: 0},
					},
				},
			},
		},
		{
			Name:        "Sold Out Crewneck",
			SKU:         "SOC-SEED05",
			Description: "Demo item for the sold-out badge on the storefront.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(34.99)),
			CategoryID:  &hoodieID,
			Variants: []models.ProductVariant{
				{
					ColorName: "Red",
					ColorCode: "#B22222",
					Image:     "/uploads/products/crewneck-red.jpg",
					Sizes: []models.ProductSize{
						{SizeName: "M", Stock: 0},
						{SizeName: "L", Stock: 0},
					},
				},
			},
		},
	}

	for _, prod := range products {
		var existing models.Product
		if err := models.DB.Where("sku = ?", prod.SKU).First(&existing).Error; err != nil {
			total := 0
			for _, variant := range prod.Variants {
				total += variant.TotalStock()
			}
			prod.Stock = total
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.SKU, err)
			} else {
				stdLog.Printf("Created product: %s", prod.SKU)
			}
		} else {
			stdLog.Printf("Product already exists: %s", prod.SKU)
		}
	}

	fmt.Println("\nSeed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Categories")
	fmt.Println("- 5 Products with color variants and size stock")
}
