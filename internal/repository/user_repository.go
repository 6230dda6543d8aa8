package repository

import (
	"errors"
	"time"

	"github.com/giftgalore/api/internal/models"

	"gorm.io/gorm"
)

// UserRepository is the customer data access interface.
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	TouchLastLogin(id uint, at time.Time) error
	List(filter CustomerListFilter) ([]models.User, int64, error)
	Count() (int64, error)
	OrderStats(userIDs []uint) (map[uint]CustomerOrderStats, error)
}

// CustomerOrderStats aggregates a customer's order history for the back
// office list.
type CustomerOrderStats struct {
	OrderCount int64
	TotalSpent float64
}

// GormUserRepository is the GORM implementation.
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a user repository.
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByEmail fetches a user by email.
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID fetches a user by id.
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a user.
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update saves a user.
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// TouchLastLogin records a successful login time.
func (r *GormUserRepository) TouchLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("last_login_at", at).Error
}

// List queries customers for the back office.
func (r *GormUserRepository) List(filter CustomerListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		condition, argCount := buildSearchCondition(r.db, []string{"email", "name", "phone"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var users []models.User
	if err := query.Order("id DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Count counts all live customers.
func (r *GormUserRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// OrderStats aggregates per-customer order count and lifetime spend.
func (r *GormUserRepository) OrderStats(userIDs []uint) (map[uint]CustomerOrderStats, error) {
	stats := make(map[uint]CustomerOrderStats, len(userIDs))
	if len(userIDs) == 0 {
		return stats, nil
	}
	var rows []struct {
		UserID     uint
		OrderCount int64
		TotalSpent float64
	}
	if err := r.db.Model(&models.Order{}).
		Select("user_id, COUNT(*) as order_count, COALESCE(SUM(total_amount), 0) as total_spent").
		Where("user_id IN ?", userIDs).
		Group("user_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats[row.UserID] = CustomerOrderStats{
			OrderCount: row.OrderCount,
			TotalSpent: row.TotalSpent,
		}
	}
	return stats, nil
}
