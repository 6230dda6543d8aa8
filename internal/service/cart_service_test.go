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

func setupCartServiceTest(t *testing.T) (*CartService, *WishlistService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.CartItem{}, &models.WishlistItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	return NewCartService(cartRepo, productRepo),
		NewWishlistService(wishlistRepo, cartRepo, productRepo),
		db
}

func cartTestProduct(t *testing.T, db *gorm.DB, name string, stock, minQty int, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:             name,
		Slug:             Slugify(name),
		Price:            models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		Stock:            stock,
		MinOrderQuantity: minQty,
		Images:           models.StringArray([]string{"/uploads/products/x.jpg"}),
		IsActive:         active,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestValidateQuantity(t *testing.T) {
	product := &models.Product{Stock: 5, MinOrderQuantity: 2}
	if err := ValidateQuantity(product, 1); !errors.Is(err, ErrQuantityBelowMinimum) {
		t.Fatalf("expected ErrQuantityBelowMinimum, got %v", err)
	}
	if err := ValidateQuantity(product, 6); !errors.Is(err, ErrQuantityExceedsStock) {
		t.Fatalf("expected ErrQuantityExceedsStock, got %v", err)
	}
	if err := ValidateQuantity(product, 5); err != nil {
		t.Fatalf("expected quantity at stock limit to pass, got %v", err)
	}
	if err := ValidateQuantity(nil, 1); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got %v", err)
	}
}

func TestAddItemSumsQuantities(t *testing.T) {
	cartService, _, db := setupCartServiceTest(t)
	product := cartTestProduct(t, db, "Photo Mug", 10, 1, true)

	if _, err := cartService.AddItem(1, product.ID, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	item, err := cartService.AddItem(1, product.ID, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("expected summed quantity 5, got %d", item.Quantity)
	}

	// The sum must still respect stock.
	if _, err := cartService.AddItem(1, product.ID, 6); !errors.Is(err, ErrQuantityExceedsStock) {
		t.Fatalf("expected ErrQuantityExceedsStock on summed add, got %v", err)
	}

	lines, err := cartService.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if lines[0].Product == nil || lines[0].Product.Name != "Photo Mug" {
		t.Fatalf("expected product preloaded, got %+v", lines[0].Product)
	}
}

func TestCartRejectsInactiveProduct(t *testing.T) {
	cartService, _, db := setupCartServiceTest(t)
	product := cartTestProduct(t, db, "Hidden Gift", 10, 1, false)
	if _, err := cartService.AddItem(1, product.ID, 1); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got %v", err)
	}
}

func TestSetQuantityAndRemove(t *testing.T) {
	cartService, _, db := setupCartServiceTest(t)
	product := cartTestProduct(t, db, "Candle Trio", 10, 2, true)

	if _, err := cartService.SetQuantity(1, product.ID, 1); !errors.Is(err, ErrQuantityBelowMinimum) {
		t.Fatalf("expected ErrQuantityBelowMinimum, got %v", err)
	}
	item, err := cartService.SetQuantity(1, product.ID, 4)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if item.Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", item.Quantity)
	}

	if err := cartService.Remove(1, product.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	// Removing an absent line stays a no-op.
	if err := cartService.Remove(1, product.ID); err != nil {
		t.Fatalf("second remove failed: %v", err)
	}
	lines, err := cartService.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	_, wishlistService, db := setupCartServiceTest(t)
	product := cartTestProduct(t, db, "Wooden Frame", 10, 1, true)

	if _, err := wishlistService.Add(1, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := wishlistService.Add(1, product.ID); err != nil {
		t.Fatalf("duplicate add failed: %v", err)
	}
	items, err := wishlistService.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one wishlist item, got %d", len(items))
	}
}

func TestMoveToCartUsesMinimumQuantity(t *testing.T) {
	cartService, wishlistService, db := setupCartServiceTest(t)
	product := cartTestProduct(t, db, "Succulent Set", 10, 2, true)

	if _, err := wishlistService.Add(3, product.ID); err != nil {
		t.Fatalf("wishlist add failed: %v", err)
	}
	item, err := wishlistService.MoveToCart(cartService, 3, product.ID)
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if item.Quantity != 2 {
		t.Fatalf("expected minimum order quantity 2, got %d", item.Quantity)
	}

	wished, err := wishlistService.List(3)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(wished) != 0 {
		t.Fatalf("expected wishlist emptied, got %d items", len(wished))
	}
}

func TestMoveToCartOutOfStockKeepsWishlist(t *testing.T) {
	cartService, wishlistService, db := setupCartServiceTest(t)
	product := cartTestProduct(t, db, "Rare Gift", 1, 1, true)

	if _, err := wishlistService.Add(3, product.ID); err != nil {
		t.Fatalf("wishlist add failed: %v", err)
	}
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("stock", 0).Error; err != nil {
		t.Fatalf("update stock failed: %v", err)
	}

	if _, err := wishlistService.MoveToCart(cartService, 3, product.ID); !errors.Is(err, ErrQuantityExceedsStock) {
		t.Fatalf("expected ErrQuantityExceedsStock, got %v", err)
	}
	wished, err := wishlistService.List(3)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(wished) != 1 {
		t.Fatalf("expected wishlist untouched on failure, got %d items", len(wished))
	}
}
