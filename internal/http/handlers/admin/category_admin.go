package admin

import (
	"strconv"

	"github.com/giftgalore/api/internal/http/response"
	"github.com/giftgalore/api/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest is the create/update payload for a category.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	SortOrder   int    `json:"sort_order"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		SortOrder:   r.SortOrder,
	}
}

// GetAdminCategories lists all categories.
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch categories", err)
		return
	}
	response.Success(c, gin.H{"items": categories})
}

// CreateCategory adds a category. The slug derives from the name.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, categoryWriteErrorRules, response.CodeInternal, "failed to create category")
		return
	}
	response.Success(c, category)
}

// UpdateCategory rewrites a category. Renaming re-derives the slug.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid category id", nil)
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	category, err := h.CategoryService.Update(uint(id), req.toInput())
	if err != nil {
		respondWithMappedError(c, err, categoryWriteErrorRules, response.CodeInternal, "failed to update category")
		return
	}
	response.Success(c, category)
}

// DeleteCategory removes a category that has no products attached.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid category id", nil)
		return
	}
	if err := h.CategoryService.Delete(uint(id)); err != nil {
		respondWithMappedError(c, err, categoryWriteErrorRules, response.CodeInternal, "failed to delete category")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
