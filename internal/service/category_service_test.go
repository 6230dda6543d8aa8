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

func setupCategoryServiceTest(t *testing.T) (*CategoryService, *ProductService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	return NewCategoryService(categoryRepo, productRepo),
		NewProductService(productRepo, categoryRepo),
		db
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Birthday Gifts", "birthday-gifts"},
		{"  Chocolates & Hampers ", "chocolates-hampers"},
		{"Home--Decor!!", "home-decor"},
		{"Gifts (under 500)", "gifts-under-500"},
		{"---", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.input); got != c.want {
			t.Fatalf("Slugify(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestCategoryCreateDerivesSlug(t *testing.T) {
	categoryService, _, _ := setupCategoryServiceTest(t)

	category, err := categoryService.Create(CategoryInput{Name: "Anniversary Gifts"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if category.Slug != "anniversary-gifts" {
		t.Fatalf("expected derived slug, got %q", category.Slug)
	}

	// A colliding name gets a numeric suffix instead of failing.
	second, err := categoryService.Create(CategoryInput{Name: "Anniversary  Gifts"})
	if err != nil {
		t.Fatalf("create collision failed: %v", err)
	}
	if second.Slug != "anniversary-gifts-2" {
		t.Fatalf("expected suffixed slug, got %q", second.Slug)
	}

	if _, err := categoryService.Create(CategoryInput{Name: "   "}); !errors.Is(err, ErrCategoryNameRequired) {
		t.Fatalf("expected ErrCategoryNameRequired, got %v", err)
	}
}

func TestCategoryUpdateRederivesSlugOnRename(t *testing.T) {
	categoryService, _, _ := setupCategoryServiceTest(t)
	category, err := categoryService.Create(CategoryInput{Name: "Home Decor"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := categoryService.Update(category.ID, CategoryInput{Name: "Home & Living", SortOrder: 5})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Slug != "home-living" {
		t.Fatalf("expected re-derived slug, got %q", updated.Slug)
	}
	if updated.SortOrder != 5 {
		t.Fatalf("expected sort order 5, got %d", updated.SortOrder)
	}

	// Same name keeps the slug stable.
	unchanged, err := categoryService.Update(category.ID, CategoryInput{Name: "Home & Living"})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if unchanged.Slug != "home-living" {
		t.Fatalf("expected stable slug, got %q", unchanged.Slug)
	}
}

func TestCategoryGetByIDOrSlug(t *testing.T) {
	categoryService, _, _ := setupCategoryServiceTest(t)
	category, err := categoryService.Create(CategoryInput{Name: "Birthday Gifts"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	byID, err := categoryService.Get(fmt.Sprintf("%d", category.ID))
	if err != nil || byID.ID != category.ID {
		t.Fatalf("get by id failed: %v %+v", err, byID)
	}
	bySlug, err := categoryService.Get("birthday-gifts")
	if err != nil || bySlug.ID != category.ID {
		t.Fatalf("get by slug failed: %v %+v", err, bySlug)
	}
	if _, err := categoryService.Get("no-such-category"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCategoryDeleteBlockedWhenInUse(t *testing.T) {
	categoryService, productService, _ := setupCategoryServiceTest(t)
	category, err := categoryService.Create(CategoryInput{Name: "Hampers"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	_, err = productService.Create(ProductInput{
		Name:             "Festive Hamper",
		Price:            models.NewMoneyFromDecimal(decimal.NewFromInt(999)),
		Stock:            10,
		MinOrderQuantity: 1,
		Images:           []string{"/uploads/products/hamper.jpg"},
		CategoryIDs:      []uint{category.ID},
		IsActive:         true,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := categoryService.Delete(category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	empty, err := categoryService.Create(CategoryInput{Name: "Empty Shelf"})
	if err != nil {
		t.Fatalf("create empty category failed: %v", err)
	}
	if err := categoryService.Delete(empty.ID); err != nil {
		t.Fatalf("delete empty category failed: %v", err)
	}
}
