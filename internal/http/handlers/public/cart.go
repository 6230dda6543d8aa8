package public

import (
	"strconv"

	"github.com/giftgalore/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CartItemRequest is the add-to-cart payload.
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CartQuantityRequest is the set-quantity payload.
type CartQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart lists the current user's cart.
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	items, err := h.CartService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch cart", err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

// AddCartItem adds a product to the cart, merging with an existing line.
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	item, err := h.CartService.AddItem(uid, req.ProductID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateCartItem replaces the quantity of one cart line.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	item, err := h.CartService.SetQuantity(uid, uint(productID), req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteCartItem removes one cart line.
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	if err := h.CartService.Remove(uid, uint(productID)); err != nil {
		respondError(c, response.CodeInternal, "failed to update cart", err)
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// ClearCart removes every cart line of the current user.
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid); err != nil {
		respondError(c, response.CodeInternal, "failed to clear cart", err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
