package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/giftgalore/api/internal/http/response"
	"github.com/giftgalore/api/internal/repository"
	"github.com/giftgalore/api/internal/service"

	"github.com/gin-gonic/gin"
)

// CustomerStatusRequest is the enable/disable payload.
type CustomerStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetAdminCustomers lists customers with their order counts and spend.
func (h *Handler) GetAdminCustomers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	customers, total, err := h.CustomerService.List(repository.CustomerListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("search")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch customers", err)
		return
	}

	response.SuccessWithPage(c, gin.H{"items": customers}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// SetCustomerStatus enables or disables a customer account.
func (h *Handler) SetCustomerStatus(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || userID == 0 {
		respondError(c, response.CodeBadRequest, "invalid customer id", nil)
		return
	}
	var req CustomerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	user, err := h.CustomerService.SetStatus(uint(userID), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "customer not found", nil)
		case errors.Is(err, service.ErrStatusInvalid):
			respondError(c, response.CodeBadRequest, "invalid status", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update customer", err)
		}
		return
	}
	response.Success(c, user)
}
