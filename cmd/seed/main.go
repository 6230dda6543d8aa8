package main

import (
	"os"

	"github.com/giftgalore/api/internal/authz"
	"github.com/giftgalore/api/internal/config"
	"github.com/giftgalore/api/internal/logger"
	"github.com/giftgalore/api/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	if err := models.InitDefaultAdmin(
		os.Getenv("GG_DEFAULT_ADMIN_USERNAME"),
		os.Getenv("GG_DEFAULT_ADMIN_EMAIL"),
		os.Getenv("GG_DEFAULT_ADMIN_PASSWORD"),
	); err != nil {
		stdLog.Printf("failed to provision default admin: %v", err)
	}

	authzService, err := authz.NewService(models.DB)
	if err != nil {
		stdLog.Fatalf("failed to init authorization service: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		stdLog.Fatalf("failed to bootstrap built-in roles: %v", err)
	}

	seedCategories(stdLog)
	seedProducts(stdLog)

	stdLog.Printf("seed completed")
}

type stdLogger interface {
	Printf(format string, v ...interface{})
}

func seedCategories(stdLog stdLogger) {
	categories := []models.Category{
		{
			Name:        "Birthday Gifts",
			Slug:        "birthday-gifts",
			Description: "Cakes, balloons and keepsakes for birthdays",
			SortOrder:   1,
		},
		{
			Name:        "Anniversary Gifts",
			Slug:        "anniversary-gifts",
			Description: "Personalized frames and couple hampers",
			SortOrder:   2,
		},
		{
			Name:        "Home Decor",
			Slug:        "home-decor",
			Description: "Lamps, planters and wall art",
			SortOrder:   3,
		},
		{
			Name:        "Chocolates & Hampers",
			Slug:        "chocolates-hampers",
			Description: "Assorted chocolate boxes and gourmet hampers",
			SortOrder:   4,
		},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("category already exists: %s", cat.Slug)
		}
	}
}

func seedProducts(stdLog stdLogger) {
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Printf("failed to load categories: %v", err)
		return
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	price := func(v float64) models.Money {
		return models.NewMoneyFromDecimal(decimal.NewFromFloat(v))
	}
	pricePtr := func(v float64) *models.Money {
		m := price(v)
		return &m
	}

	type seedProduct struct {
		product       models.Product
		categorySlugs []string
	}

	products := []seedProduct{
		{
			product: models.Product{
				Name:             "Personalized Photo Mug",
				Slug:             "personalized-photo-mug",
				Description:      "Ceramic mug printed with your photo and message. Dishwasher safe.",
				Price:            price(399),
				OriginalPrice:    pricePtr(499),
				Stock:            120,
				MinOrderQuantity: 1,
				Images: models.StringArray([]string{
					"/uploads/products/photo-mug.jpg",
				}),
				Tags:       models.StringArray([]string{"personalized", "mug", "photo"}),
				IsFeatured: true,
				IsActive:   true,
			},
			categorySlugs: []string{"birthday-gifts", "anniversary-gifts"},
		},
		{
			product: models.Product{
				Name:             "Scented Candle Trio",
				Slug:             "scented-candle-trio",
				Description:      "Set of three soy wax candles in lavender, vanilla and sandalwood.",
				Price:            price(749),
				Stock:            80,
				MinOrderQuantity: 1,
				Images: models.StringArray([]string{
					"/uploads/products/candle-trio.jpg",
				}),
				Tags:              models.StringArray([]string{"candles", "home", "fragrance"}),
				IsActive:          true,
				HasDeliveryCharge: true,
				DeliveryCharge:    price(49),
			},
			categorySlugs: []string{"home-decor"},
		},
		{
			product: models.Product{
				Name:             "Assorted Chocolate Box",
				Slug:             "assorted-chocolate-box",
				Description:      "24-piece box of handmade dark and milk chocolates.",
				Price:            price(999),
				OriginalPrice:    pricePtr(1199),
				Stock:            60,
				MinOrderQuantity: 1,
				Images: models.StringArray([]string{
					"/uploads/products/chocolate-box.jpg",
				}),
				Tags:       models.StringArray([]string{"chocolate", "hamper", "sweet"}),
				IsFeatured: true,
				IsActive:   true,
			},
			categorySlugs: []string{"chocolates-hampers", "birthday-gifts"},
		},
		{
			product: models.Product{
				Name:             "Engraved Wooden Photo Frame",
				Slug:             "engraved-wooden-photo-frame",
				Description:      "Sheesham wood frame engraved with names and a date of your choice.",
				Price:            price(1299),
				Stock:            40,
				MinOrderQuantity: 1,
				Images: models.StringArray([]string{
					"/uploads/products/wooden-frame.jpg",
				}),
				Tags:              models.StringArray([]string{"personalized", "frame", "wood"}),
				IsActive:          true,
				HasDeliveryCharge: true,
				DeliveryCharge:    price(99),
			},
			categorySlugs: []string{"anniversary-gifts", "home-decor"},
		},
		{
			product: models.Product{
				Name:             "Mini Succulent Planter Set",
				Slug:             "mini-succulent-planter-set",
				Description:      "Four ceramic planters with live succulents, ready to gift.",
				Price:            price(649),
				Stock:            0,
				MinOrderQuantity: 2,
				Images: models.StringArray([]string{
					"/uploads/products/succulent-set.jpg",
				}),
				Tags:     models.StringArray([]string{"plants", "planter", "green"}),
				IsActive: true,
			},
			categorySlugs: []string{"home-decor"},
		},
	}

	for _, sp := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", sp.product.Slug).First(&existing).Error; err == nil {
			stdLog.Printf("product already exists: %s", sp.product.Slug)
			continue
		}
		for _, slug := range sp.categorySlugs {
			id, ok := categoryIDs[slug]
			if !ok {
				continue
			}
			sp.product.Categories = append(sp.product.Categories, models.Category{ID: id})
		}
		if err := models.DB.Create(&sp.product).Error; err != nil {
			stdLog.Printf("failed to create product %s: %v", sp.product.Slug, err)
		} else {
			stdLog.Printf("created product: %s", sp.product.Slug)
		}
	}
}
