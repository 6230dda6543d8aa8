package repository

import (
	"time"

	"github.com/giftgalore/api/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository runs the aggregate queries behind the admin dashboard.
// Aggregation only; business rules live in the service.
type DashboardRepository interface {
	GetOverview() (DashboardOverviewRow, error)
	GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error)
}

// DashboardOverviewRow is the raw overview aggregate.
type DashboardOverviewRow struct {
	ProductsTotal    int64
	CategoriesTotal  int64
	CustomersTotal   int64
	OrdersTotal      int64
	DeliveredRevenue float64
}

// DashboardOrderTrendRow is one day of order volume.
type DashboardOrderTrendRow struct {
	Day    string
	Orders int64
}

// GormDashboardRepository is the GORM implementation.
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository builds a dashboard repository.
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview collects the headline counters in one pass per table.
func (r *GormDashboardRepository) GetOverview() (DashboardOverviewRow, error) {
	var row DashboardOverviewRow

	if err := r.db.Model(&models.Product{}).Count(&row.ProductsTotal).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.Category{}).Count(&row.CategoriesTotal).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.User{}).Count(&row.CustomersTotal).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.Order{}).Count(&row.OrdersTotal).Error; err != nil {
		return row, err
	}

	var revenue struct {
		Total float64
	}
	if err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) as total").
		Where("status = ?", "delivered").
		Scan(&revenue).Error; err != nil {
		return row, err
	}
	row.DeliveredRevenue = revenue.Total
	return row, nil
}

// GetOrderTrends groups order volume by day over the window.
func (r *GormDashboardRepository) GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error) {
	dayExpr := "strftime('%Y-%m-%d', created_at)"
	if name := dbDialectName(r.db); name == "postgres" || name == "postgresql" {
		dayExpr = "to_char(created_at, 'YYYY-MM-DD')"
	}

	var rows []DashboardOrderTrendRow
	if err := r.db.Model(&models.Order{}).
		Select(dayExpr+" as day, COUNT(*) as orders").
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
