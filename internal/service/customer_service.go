package service

import (
	"fmt"
	"time"

	"github.com/giftgalore/api/internal/constants"
	"github.com/giftgalore/api/internal/models"
	"github.com/giftgalore/api/internal/repository"
)

// CustomerService serves the back-office customer directory.
type CustomerService struct {
	userRepo repository.UserRepository
}

// NewCustomerService builds a customer service.
func NewCustomerService(userRepo repository.UserRepository) *CustomerService {
	return &CustomerService{userRepo: userRepo}
}

// CustomerRow is one directory entry with its order aggregates.
type CustomerRow struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Status      string     `json:"status"`
	OrderCount  int64      `json:"order_count"`
	TotalSpent  string     `json:"total_spent"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// List returns a customer page, each row joined with order count and
// lifetime spend.
func (s *CustomerService) List(filter repository.CustomerListFilter) ([]CustomerRow, int64, error) {
	users, total, err := s.userRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}
	stats, err := s.userRepo.OrderStats(ids)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]CustomerRow, 0, len(users))
	for _, user := range users {
		stat := stats[user.ID]
		rows = append(rows, CustomerRow{
			ID:          user.ID,
			Email:       user.Email,
			Name:        user.Name,
			Phone:       user.Phone,
			Status:      user.Status,
			OrderCount:  stat.OrderCount,
			TotalSpent:  fmt.Sprintf("%.2f", stat.TotalSpent),
			LastLoginAt: user.LastLoginAt,
			CreatedAt:   user.CreatedAt,
		})
	}
	return rows, total, nil
}

// SetStatus enables or disables a customer account.
func (s *CustomerService) SetStatus(userID uint, status string) (*models.User, error) {
	if status != constants.AccountStatusActive && status != constants.AccountStatusDisabled {
		return nil, ErrStatusInvalid
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	user.Status = status
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
