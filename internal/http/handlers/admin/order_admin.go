package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/giftgalore/api/internal/http/response"
	"github.com/giftgalore/api/internal/repository"
	"github.com/giftgalore/api/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderStatusRequest is the status update payload.
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// AdditionalInfoRequest is the one-slot order message payload.
type AdditionalInfoRequest struct {
	Message string `json:"message" binding:"required"`
}

func parseOrderDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

// GetAdminOrders lists orders for the back office.
func (h *Handler) GetAdminOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListOrdersForAdmin(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      strings.TrimSpace(c.Query("status")),
		OrderNo:     strings.TrimSpace(c.Query("order_no")),
		CreatedFrom: parseOrderDate(c.Query("created_from")),
		CreatedTo:   parseOrderDate(c.Query("created_to")),
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

// GetAdminOrder fetches one order with its line items.
func (h *Handler) GetAdminOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	order, err := h.OrderService.GetOrderForAdmin(uint(orderID))
	if err != nil {
		respondWithMappedError(c, err, orderStatusErrorRules, response.CodeInternal, "failed to fetch order")
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus moves an order along the status ladder and appends a
// tracking entry naming the acting administrator.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(uint(orderID), req.Status, h.actorName(adminID), req.Notes)
	if err != nil {
		respondWithMappedError(c, err, orderStatusErrorRules, response.CodeInternal, "failed to update order status")
		return
	}
	response.Success(c, order)
}

// SetOrderAdditionalInfo overwrites the order's customer-facing message.
func (h *Handler) SetOrderAdditionalInfo(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	var req AdditionalInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	order, err := h.OrderService.SetAdditionalInfo(uint(orderID), req.Message, h.actorName(adminID))
	if err != nil {
		if errors.Is(err, service.ErrAdditionalInfoEmpty) {
			respondError(c, response.CodeBadRequest, "message must not be empty", nil)
			return
		}
		respondWithMappedError(c, err, orderStatusErrorRules, response.CodeInternal, "failed to update order message")
		return
	}
	response.Success(c, order)
}

// ClearOrderAdditionalInfo empties the order's customer-facing message slot.
func (h *Handler) ClearOrderAdditionalInfo(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	order, err := h.OrderService.ClearAdditionalInfo(uint(orderID), h.actorName(adminID))
	if err != nil {
		respondWithMappedError(c, err, orderStatusErrorRules, response.CodeInternal, "failed to clear order message")
		return
	}
	response.Success(c, order)
}

// GetOrderTracking returns the full tracking log of an order.
func (h *Handler) GetOrderTracking(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	history, err := h.OrderService.GetTrackingHistory(uint(orderID))
	if err != nil {
		respondWithMappedError(c, err, orderStatusErrorRules, response.CodeInternal, "failed to fetch tracking history")
		return
	}
	response.Success(c, history)
}

// ClearAllOrders wipes every order. Destructive; super admin only.
func (h *Handler) ClearAllOrders(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	if err := h.OrderService.ClearAllOrders(); err != nil {
		respondError(c, response.CodeInternal, "failed to clear orders", err)
		return
	}
	requestLog(c).Warnw("orders_cleared", "admin_id", adminID)
	response.Success(c, gin.H{"cleared": true})
}
