package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/giftgalore/api/internal/http/response"
	"github.com/giftgalore/api/internal/models"
	"github.com/giftgalore/api/internal/repository"
	"github.com/giftgalore/api/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest is the create/update payload for a catalog product.
type ProductRequest struct {
	Name              string        `json:"name" binding:"required"`
	Description       string        `json:"description"`
	Price             models.Money  `json:"price"`
	OriginalPrice     *models.Money `json:"original_price"`
	Stock             int           `json:"stock"`
	MinOrderQuantity  int           `json:"min_order_quantity"`
	Images            []string      `json:"images"`
	Tags              []string      `json:"tags"`
	CategoryIDs       []uint        `json:"category_ids"`
	IsFeatured        bool          `json:"is_featured"`
	IsActive          bool          `json:"is_active"`
	HasDeliveryCharge bool          `json:"has_delivery_charge"`
	DeliveryCharge    models.Money  `json:"delivery_charge"`
	SortOrder         int           `json:"sort_order"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:              r.Name,
		Description:       r.Description,
		Price:             r.Price,
		OriginalPrice:     r.OriginalPrice,
		Stock:             r.Stock,
		MinOrderQuantity:  r.MinOrderQuantity,
		Images:            r.Images,
		Tags:              r.Tags,
		CategoryIDs:       r.CategoryIDs,
		IsFeatured:        r.IsFeatured,
		IsActive:          r.IsActive,
		HasDeliveryCharge: r.HasDeliveryCharge,
		DeliveryCharge:    r.DeliveryCharge,
		SortOrder:         r.SortOrder,
	}
}

// GetAdminProducts lists products for the back office, inactive included.
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:           page,
		PageSize:       pageSize,
		CategoryID:     strings.TrimSpace(c.Query("category_id")),
		Search:         strings.TrimSpace(c.Query("search")),
		WithCategories: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch products", err)
		return
	}

	response.SuccessWithPage(c, gin.H{"items": products}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetAdminProduct fetches one product, inactive included.
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	product, err := h.ProductService.GetByID(uint(id), false)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to fetch product", err)
		return
	}
	response.Success(c, product)
}

// CreateProduct adds a catalog product.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "failed to create product")
		return
	}
	response.Success(c, product)
}

// UpdateProduct rewrites a catalog product.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	product, err := h.ProductService.Update(uint(id), req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "failed to update product")
		return
	}
	response.Success(c, product)
}

// DeleteProduct soft-deletes a catalog product.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	if err := h.ProductService.Delete(uint(id)); err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "failed to delete product")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
