package repository

import "time"

// ProductListFilter filters the product list query.
type ProductListFilter struct {
	Page           int
	PageSize       int
	CategoryID     string
	Search         string
	FeaturedOnly   bool
	OnlyActive     bool
	WithCategories bool
}

// OrderListFilter filters the order list query.
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// CustomerListFilter filters the admin customer list query.
type CustomerListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
