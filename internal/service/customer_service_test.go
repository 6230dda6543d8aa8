package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/giftgalore/api/internal/constants"
	"github.com/giftgalore/api/internal/models"
	"github.com/giftgalore/api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCustomerServiceTest(t *testing.T) (*CustomerService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Order{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewCustomerService(repository.NewUserRepository(db)), db
}

func createTestCustomer(t *testing.T, db *gorm.DB, email, name string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "x",
		Name:         name,
		Status:       constants.AccountStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestCustomerListJoinsOrderStats(t *testing.T) {
	service, db := setupCustomerServiceTest(t)
	asha := createTestCustomer(t, db, "asha@example.com", "Asha")
	createTestCustomer(t, db, "ravi@example.com", "Ravi")

	for i, total := range []int64{500, 300} {
		order := &models.Order{
			OrderNo:     fmt.Sprintf("GG%d", i),
			UserID:      asha.ID,
			Status:      constants.OrderStatusDelivered,
			Currency:    "INR",
			TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(total)),
		}
		if err := db.Create(order).Error; err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	rows, total, err := service.List(repository.CustomerListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("expected 2 customers, got %d", total)
	}

	byEmail := make(map[string]CustomerRow, len(rows))
	for _, row := range rows {
		byEmail[row.Email] = row
	}
	if got := byEmail["asha@example.com"]; got.OrderCount != 2 || got.TotalSpent != "800.00" {
		t.Fatalf("unexpected stats for asha: %+v", got)
	}
	if got := byEmail["ravi@example.com"]; got.OrderCount != 0 || got.TotalSpent != "0.00" {
		t.Fatalf("unexpected stats for ravi: %+v", got)
	}
}

func TestCustomerListKeywordFilter(t *testing.T) {
	service, db := setupCustomerServiceTest(t)
	createTestCustomer(t, db, "asha@example.com", "Asha")
	createTestCustomer(t, db, "ravi@example.com", "Ravi")

	rows, total, err := service.List(repository.CustomerListFilter{Page: 1, PageSize: 10, Keyword: "asha"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].Email != "asha@example.com" {
		t.Fatalf("unexpected keyword result: %+v", rows)
	}
}

func TestCustomerSetStatus(t *testing.T) {
	service, db := setupCustomerServiceTest(t)
	user := createTestCustomer(t, db, "asha@example.com", "Asha")

	updated, err := service.SetStatus(user.ID, constants.AccountStatusDisabled)
	if err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if updated.Status != constants.AccountStatusDisabled {
		t.Fatalf("expected disabled, got %s", updated.Status)
	}

	if _, err := service.SetStatus(user.ID, "banned"); !errors.Is(err, ErrStatusInvalid) {
		t.Fatalf("expected ErrStatusInvalid, got %v", err)
	}
	if _, err := service.SetStatus(9999, constants.AccountStatusActive); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
