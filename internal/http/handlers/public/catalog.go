package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/giftgalore/api/internal/http/response"
	"github.com/giftgalore/api/internal/repository"
	"github.com/giftgalore/api/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts lists active products with optional category, search and
// featured filters.
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID := strings.TrimSpace(c.Query("category_id"))
	if slug := strings.TrimSpace(c.Query("category")); slug != "" && categoryID == "" {
		category, err := h.CategoryService.GetBySlug(slug)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				respondError(c, response.CodeNotFound, "category not found", nil)
				return
			}
			respondError(c, response.CodeInternal, "failed to fetch products", err)
			return
		}
		categoryID = strconv.FormatUint(uint64(category.ID), 10)
	}

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:           page,
		PageSize:       pageSize,
		CategoryID:     categoryID,
		Search:         strings.TrimSpace(c.Query("search")),
		FeaturedOnly:   c.Query("featured") == "true",
		OnlyActive:     true,
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

// GetProduct fetches one active product by id.
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	product, err := h.ProductService.GetByID(uint(id), true)
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

// GetProductBySlug fetches one active product by slug.
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "invalid product slug", nil)
		return
	}
	product, err := h.ProductService.GetBySlug(slug, true)
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

// GetCategories lists all categories ordered by sort weight.
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch categories", err)
		return
	}
	response.Success(c, gin.H{"items": categories})
}

// GetCategory fetches one category by numeric id or slug.
func (h *Handler) GetCategory(c *gin.Context) {
	key := strings.TrimSpace(c.Param("id"))
	if key == "" {
		respondError(c, response.CodeBadRequest, "invalid category", nil)
		return
	}
	category, err := h.CategoryService.Get(key)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "category not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to fetch category", err)
		return
	}
	response.Success(c, category)
}
