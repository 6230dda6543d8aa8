package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/giftgalore/api/internal/models"
	"github.com/giftgalore/api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, uint) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	category := &models.Category{Name: "Gifts", Slug: "gifts"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	return NewProductService(productRepo, categoryRepo), category.ID
}

func validProductInput(categoryID uint) ProductInput {
	return ProductInput{
		Name:             "Photo Mug",
		Description:      "Ceramic mug with a custom print",
		Price:            models.NewMoneyFromDecimal(decimal.NewFromInt(399)),
		Stock:            50,
		MinOrderQuantity: 1,
		Images:           []string{"/uploads/products/mug.jpg"},
		CategoryIDs:      []uint{categoryID},
		IsActive:         true,
	}
}

func TestProductCreateInvariants(t *testing.T) {
	productService, categoryID := setupProductServiceTest(t)

	cases := []struct {
		name    string
		mutate  func(*ProductInput)
		wantErr error
	}{
		{"blank name", func(in *ProductInput) { in.Name = "  " }, ErrProductNameRequired},
		{"zero price", func(in *ProductInput) { in.Price = models.Money{} }, ErrProductPriceInvalid},
		{"negative stock", func(in *ProductInput) { in.Stock = -1 }, ErrProductStockInvalid},
		{"zero min qty", func(in *ProductInput) { in.MinOrderQuantity = 0 }, ErrMinOrderQtyInvalid},
		{"no image", func(in *ProductInput) { in.Images = nil }, ErrProductNeedsImage},
		{"no category", func(in *ProductInput) { in.CategoryIDs = nil }, ErrProductNeedsCategory},
		{"unknown category", func(in *ProductInput) { in.CategoryIDs = []uint{9999} }, ErrProductNeedsCategory},
	}
	for _, c := range cases {
		input := validProductInput(categoryID)
		c.mutate(&input)
		if _, err := productService.Create(input); !errors.Is(err, c.wantErr) {
			t.Fatalf("%s: expected %v, got %v", c.name, c.wantErr, err)
		}
	}

	product, err := productService.Create(validProductInput(categoryID))
	if err != nil {
		t.Fatalf("valid create failed: %v", err)
	}
	if product.Slug != "photo-mug" {
		t.Fatalf("expected derived slug, got %q", product.Slug)
	}
	if len(product.Categories) != 1 {
		t.Fatalf("expected one category link, got %d", len(product.Categories))
	}
}

func TestProductSlugCollisionGetsSuffix(t *testing.T) {
	productService, categoryID := setupProductServiceTest(t)

	if _, err := productService.Create(validProductInput(categoryID)); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	input := validProductInput(categoryID)
	input.Name = "Photo  Mug!"
	second, err := productService.Create(input)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if second.Slug != "photo-mug-2" {
		t.Fatalf("expected suffixed slug, got %q", second.Slug)
	}
}

func TestProductUpdateSlugFollowsRename(t *testing.T) {
	productService, categoryID := setupProductServiceTest(t)
	product, err := productService.Create(validProductInput(categoryID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	input := validProductInput(categoryID)
	input.Name = "Magic Photo Mug"
	updated, err := productService.Update(product.ID, input)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Slug != "magic-photo-mug" {
		t.Fatalf("expected slug to follow rename, got %q", updated.Slug)
	}

	if _, err := productService.Update(9999, input); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProductStorefrontHidesInactive(t *testing.T) {
	productService, categoryID := setupProductServiceTest(t)
	input := validProductInput(categoryID)
	input.IsActive = false
	product, err := productService.Create(input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := productService.GetByID(product.ID, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected storefront lookup to miss inactive product, got %v", err)
	}
	if _, err := productService.GetByID(product.ID, false); err != nil {
		t.Fatalf("expected back-office lookup to succeed, got %v", err)
	}
	if _, err := productService.GetBySlug(product.Slug, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected storefront slug lookup to miss, got %v", err)
	}

	listed, total, err := productService.List(repository.ProductListFilter{OnlyActive: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 || len(listed) != 0 {
		t.Fatalf("expected empty storefront list, got %d", total)
	}
}

func TestProductDeleteKeepsSnapshots(t *testing.T) {
	productService, categoryID := setupProductServiceTest(t)
	product, err := productService.Create(validProductInput(categoryID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := productService.Delete(product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := productService.Delete(product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
