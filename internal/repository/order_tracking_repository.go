package repository

import (
	"github.com/giftgalore/api/internal/models"

	"gorm.io/gorm"
)

// OrderTrackingRepository is the append-only tracking log access interface.
// It deliberately exposes no update or single-entry delete.
type OrderTrackingRepository interface {
	Append(entry *models.OrderTracking) error
	ListByOrder(orderID uint) ([]models.OrderTracking, error)
	CountByOrder(orderID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormOrderTrackingRepository
}

// GormOrderTrackingRepository is the GORM implementation.
type GormOrderTrackingRepository struct {
	db *gorm.DB
}

// NewOrderTrackingRepository builds a tracking log repository.
func NewOrderTrackingRepository(db *gorm.DB) *GormOrderTrackingRepository {
	return &GormOrderTrackingRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormOrderTrackingRepository) WithTx(tx *gorm.DB) *GormOrderTrackingRepository {
	if tx == nil {
		return r
	}
	return &GormOrderTrackingRepository{db: tx}
}

// Append inserts a tracking entry.
func (r *GormOrderTrackingRepository) Append(entry *models.OrderTracking) error {
	return r.db.Create(entry).Error
}

// ListByOrder returns an order's tracking log, oldest first.
func (r *GormOrderTrackingRepository) ListByOrder(orderID uint) ([]models.OrderTracking, error) {
	var entries []models.OrderTracking
	if err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CountByOrder counts an order's tracking entries.
func (r *GormOrderTrackingRepository) CountByOrder(orderID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.OrderTracking{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
