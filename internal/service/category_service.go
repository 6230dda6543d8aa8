package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/giftgalore/api/internal/models"
	"github.com/giftgalore/api/internal/repository"
)

// CategoryService manages the category tree shown on the storefront.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService builds a category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, productRepo: productRepo}
}

// Slugify lowercases the name and collapses every run of non-alphanumeric
// characters into a single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// CategoryInput carries category create/update fields.
type CategoryInput struct {
	Name        string
	Description string
	ImageURL    string
	SortOrder   int
}

// List returns all categories ordered for display.
func (s *CategoryService) List() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// Get fetches one category by numeric id or slug.
func (s *CategoryService) Get(key string) (*models.Category, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrNotFound
	}
	if isAllDigits(key) {
		id, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return nil, ErrNotFound
		}
		category, err := s.categoryRepo.GetByID(uint(id))
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrNotFound
		}
		return category, nil
	}
	return s.GetBySlug(key)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// GetBySlug fetches one category by its slug.
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create derives the slug from the name and inserts the category. A slug
// collision gets a numeric suffix.
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	slug, err := s.uniqueSlug(name, 0)
	if err != nil {
		return nil, err
	}
	category := &models.Category{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		SortOrder:   input.SortOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update renames a category, re-deriving the slug when the name changed.
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	if name != category.Name {
		slug, err := s.uniqueSlug(name, category.ID)
		if err != nil {
			return nil, err
		}
		category.Slug = slug
	}
	category.Name = name
	category.Description = strings.TrimSpace(input.Description)
	category.ImageURL = strings.TrimSpace(input.ImageURL)
	category.SortOrder = input.SortOrder
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category. Categories still referenced by products are
// kept so no product ever loses its last category.
func (s *CategoryService) Delete(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	inUse, err := s.productRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrCategoryInUse
	}
	return s.categoryRepo.Delete(id)
}

func (s *CategoryService) uniqueSlug(name string, excludeID uint) (string, error) {
	base := Slugify(name)
	if base == "" {
		return "", ErrCategoryNameRequired
	}
	slug := base
	for i := 2; ; i++ {
		count, err := s.categoryRepo.CountBySlug(slug, excludeID)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
