package service

import (
	"github.com/giftgalore/api/internal/models"
	"github.com/giftgalore/api/internal/repository"
)

// CartService manages per-user cart lines.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService builds a cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// ValidateQuantity checks a requested quantity against a product's minimum
// order quantity and current stock.
func ValidateQuantity(product *models.Product, quantity int) error {
	if product == nil {
		return ErrProductNotAvailable
	}
	min := product.MinOrderQuantity
	if min < 1 {
		min = 1
	}
	if quantity < min {
		return ErrQuantityBelowMinimum
	}
	if quantity > product.Stock {
		return ErrQuantityExceedsStock
	}
	return nil
}

// List returns the user's cart lines with product data preloaded.
func (s *CartService) List(userID uint) ([]models.CartItem, error) {
	if userID == 0 {
		return nil, ErrCartItemInvalid
	}
	return s.cartRepo.ListByUser(userID)
}

// AddItem puts a product into the cart. Adding a product already in the
// cart sums the quantities and re-validates the total.
func (s *CartService) AddItem(userID, productID uint, quantity int) (*models.CartItem, error) {
	if userID == 0 || productID == 0 || quantity <= 0 {
		return nil, ErrCartItemInvalid
	}
	existing, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	target := quantity
	if existing != nil {
		target += existing.Quantity
	}
	return s.setQuantity(userID, productID, target)
}

// SetQuantity replaces a cart line's quantity. The quantity must sit in
// [minOrderQuantity, stock].
func (s *CartService) SetQuantity(userID, productID uint, quantity int) (*models.CartItem, error) {
	if userID == 0 || productID == 0 || quantity <= 0 {
		return nil, ErrCartItemInvalid
	}
	return s.setQuantity(userID, productID, quantity)
}

func (s *CartService) setQuantity(userID, productID uint, quantity int) (*models.CartItem, error) {
	product, err := s.productRepo.GetByID(productID, true)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	if err := ValidateQuantity(product, quantity); err != nil {
		return nil, err
	}
	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Upsert(item); err != nil {
		return nil, err
	}
	item.Product = product
	return item, nil
}

// Remove drops one product from the cart. Removing an absent line is a no-op.
func (s *CartService) Remove(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrCartItemInvalid
	}
	return s.cartRepo.DeleteByUserAndProduct(userID, productID)
}

// Clear empties the cart.
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrCartItemInvalid
	}
	return s.cartRepo.ClearByUser(userID)
}
