package service

import (
	"github.com/giftgalore/api/internal/models"
	"github.com/giftgalore/api/internal/repository"
)

// WishlistService manages per-user saved products.
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService builds a wishlist service.
func NewWishlistService(wishlistRepo repository.WishlistRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, cartRepo: cartRepo, productRepo: productRepo}
}

// List returns the user's wishlist with product data preloaded.
func (s *WishlistService) List(userID uint) ([]models.WishlistItem, error) {
	if userID == 0 {
		return nil, ErrCartItemInvalid
	}
	return s.wishlistRepo.ListByUser(userID)
}

// Add saves a product. Adding a product already on the list is a no-op.
func (s *WishlistService) Add(userID, productID uint) (*models.WishlistItem, error) {
	if userID == 0 || productID == 0 {
		return nil, ErrCartItemInvalid
	}
	product, err := s.productRepo.GetByID(productID, true)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	existing, err := s.wishlistRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Product = product
		return existing, nil
	}
	item := &models.WishlistItem{UserID: userID, ProductID: productID}
	if err := s.wishlistRepo.Create(item); err != nil {
		return nil, err
	}
	item.Product = product
	return item, nil
}

// Remove drops a product from the wishlist.
func (s *WishlistService) Remove(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrCartItemInvalid
	}
	return s.wishlistRepo.DeleteByUserAndProduct(userID, productID)
}

// MoveToCart puts a wished product into the cart at its minimum order
// quantity and removes it from the wishlist.
func (s *WishlistService) MoveToCart(cartService *CartService, userID, productID uint) (*models.CartItem, error) {
	product, err := s.productRepo.GetByID(productID, true)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	quantity := product.MinOrderQuantity
	if quantity < 1 {
		quantity = 1
	}
	item, err := cartService.SetQuantity(userID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.wishlistRepo.DeleteByUserAndProduct(userID, productID); err != nil {
		return nil, err
	}
	return item, nil
}
