package public

import (
	"errors"
	"strconv"

	"github.com/giftgalore/api/internal/http/response"
	"github.com/giftgalore/api/internal/service"

	"github.com/gin-gonic/gin"
)

// WishlistItemRequest is the add-to-wishlist payload.
type WishlistItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist lists the current user's wishlist.
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	items, err := h.WishlistService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch wishlist", err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

// AddWishlistItem saves a product to the wishlist. Adding a product that is
// already saved is a no-op.
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req WishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	item, err := h.WishlistService.Add(uid, req.ProductID)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "failed to update wishlist")
		return
	}
	response.Success(c, item)
}

// DeleteWishlistItem removes a product from the wishlist.
func (h *Handler) DeleteWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	if err := h.WishlistService.Remove(uid, uint(productID)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "wishlist item not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to update wishlist", err)
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// MoveWishlistItemToCart moves a saved product into the cart at its minimum
// order quantity, then removes it from the wishlist.
func (h *Handler) MoveWishlistItemToCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	item, err := h.WishlistService.MoveToCart(h.CartService, uid, uint(productID))
	if err != nil {
		respondWithMappedError(c, err, concatMappedHandlerErrors(wishlistErrorRules, cartCommonErrorRules), response.CodeInternal, "failed to move item to cart")
		return
	}
	response.Success(c, item)
}
