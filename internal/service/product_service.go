package service

import (
	"fmt"
	"strings"

	"github.com/giftgalore/api/internal/models"
	"github.com/giftgalore/api/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService manages the product catalog.
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService builds a product service.
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{productRepo: productRepo, categoryRepo: categoryRepo}
}

// ProductInput carries product create/update fields.
type ProductInput struct {
	Name              string
	Description       string
	Price             models.Money
	OriginalPrice     *models.Money
	Stock             int
	MinOrderQuantity  int
	Images            []string
	Tags              []string
	CategoryIDs       []uint
	IsFeatured        bool
	IsActive          bool
	HasDeliveryCharge bool
	DeliveryCharge    models.Money
	SortOrder         int
}

// List returns a catalog page.
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetByID fetches one product; onlyActive hides disabled products from the
// storefront while the back office still sees them.
func (s *ProductService) GetByID(id uint, onlyActive bool) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id, onlyActive)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// GetBySlug fetches one product by slug.
func (s *ProductService) GetBySlug(slug string, onlyActive bool) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(slug, onlyActive)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create validates the catalog invariants and inserts the product with its
// category links.
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	categories, err := s.validateInput(&input)
	if err != nil {
		return nil, err
	}
	slug, err := s.uniqueSlug(input.Name, 0)
	if err != nil {
		return nil, err
	}
	product := &models.Product{
		Name:              strings.TrimSpace(input.Name),
		Slug:              slug,
		Description:       input.Description,
		Price:             input.Price,
		OriginalPrice:     input.OriginalPrice,
		Stock:             input.Stock,
		MinOrderQuantity:  input.MinOrderQuantity,
		Images:            input.Images,
		Tags:              input.Tags,
		IsFeatured:        input.IsFeatured,
		IsActive:          input.IsActive,
		HasDeliveryCharge: input.HasDeliveryCharge,
		DeliveryCharge:    input.DeliveryCharge,
		SortOrder:         input.SortOrder,
	}
	if err := s.productRepo.Create(product, categories); err != nil {
		return nil, err
	}
	product.Categories = categories
	return product, nil
}

// Update applies the same invariants as Create and replaces the category
// links. The slug follows a name change.
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	categories, err := s.validateInput(&input)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name != product.Name {
		slug, err := s.uniqueSlug(name, product.ID)
		if err != nil {
			return nil, err
		}
		product.Slug = slug
	}
	product.Name = name
	product.Description = input.Description
	product.Price = input.Price
	product.OriginalPrice = input.OriginalPrice
	product.Stock = input.Stock
	product.MinOrderQuantity = input.MinOrderQuantity
	product.Images = input.Images
	product.Tags = input.Tags
	product.IsFeatured = input.IsFeatured
	product.IsActive = input.IsActive
	product.HasDeliveryCharge = input.HasDeliveryCharge
	product.DeliveryCharge = input.DeliveryCharge
	product.SortOrder = input.SortOrder
	if err := s.productRepo.Update(product, categories); err != nil {
		return nil, err
	}
	product.Categories = categories
	return product, nil
}

// Delete soft-deletes a product. Existing order items keep their snapshots.
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id, false)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.productRepo.Delete(id)
}

func (s *ProductService) validateInput(input *ProductInput) ([]models.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrProductNameRequired
	}
	if input.Price.Decimal.LessThanOrEqual(decimal.Zero) {
		return nil, ErrProductPriceInvalid
	}
	if input.Stock < 0 {
		return nil, ErrProductStockInvalid
	}
	if input.MinOrderQuantity < 1 {
		return nil, ErrMinOrderQtyInvalid
	}
	if len(input.Images) == 0 {
		return nil, ErrProductNeedsImage
	}
	if len(input.CategoryIDs) == 0 {
		return nil, ErrProductNeedsCategory
	}
	categories, err := s.categoryRepo.ListByIDs(input.CategoryIDs)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(dedupeIDs(input.CategoryIDs)) {
		return nil, ErrProductNeedsCategory
	}
	return categories, nil
}

func (s *ProductService) uniqueSlug(name string, excludeID uint) (string, error) {
	base := Slugify(name)
	if base == "" {
		return "", ErrProductNameRequired
	}
	slug := base
	for i := 2; ; i++ {
		count, err := s.productRepo.CountBySlug(slug, excludeID)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
