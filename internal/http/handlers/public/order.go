package public

import (
	"strconv"
	"strings"

	"github.com/giftgalore/api/internal/http/response"
	"github.com/giftgalore/api/internal/models"
	"github.com/giftgalore/api/internal/repository"
	"github.com/giftgalore/api/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest is the place-order payload.
type CheckoutRequest struct {
	ShippingAddress models.ShippingAddress `json:"shipping_address" binding:"required"`
}

// Checkout places an order from the current cart.
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	order, err := h.OrderService.Checkout(service.CheckoutInput{
		UserID:          uid,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, order)
}

// QuoteDelivery prices the current cart without placing an order.
func (h *Handler) QuoteDelivery(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	quote, err := h.OrderService.QuoteDelivery(uid)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, quote)
}

// GetMyOrders lists the current user's orders.
func (h *Handler) GetMyOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListOrdersByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch orders", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"items": orders}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetMyOrder fetches one of the current user's orders.
func (h *Handler) GetMyOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	order, err := h.OrderService.GetOrderByUser(uint(orderID), uid)
	if err != nil {
		respondWithMappedError(c, err, trackingErrorRules, response.CodeInternal, "failed to fetch order")
		return
	}
	response.Success(c, order)
}
