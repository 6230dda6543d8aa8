package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/giftgalore/api/internal/constants"
	"github.com/giftgalore/api/internal/models"
	"github.com/giftgalore/api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupDashboardServiceTest(t *testing.T) (*DashboardService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	service := NewDashboardService(
		repository.NewDashboardRepository(db),
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		3,
	)
	return service, db
}

func seedDashboardOrder(t *testing.T, db *gorm.DB, orderNo, status string, total int64, createdAt time.Time) {
	t.Helper()
	order := &models.Order{
		OrderNo:     orderNo,
		UserID:      1,
		Status:      status,
		Currency:    "INR",
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(total)),
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
}

func TestDashboardOverview(t *testing.T) {
	service, db := setupDashboardServiceTest(t)
	now := time.Now()

	if err := db.Create(&models.Category{Name: "Gifts", Slug: "gifts"}).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	products := []models.Product{
		{Name: "Mug", Slug: "mug", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(399)), Stock: 1, MinOrderQuantity: 1, IsActive: true},
		{Name: "Frame", Slug: "frame", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(1299)), Stock: 20, MinOrderQuantity: 1, IsActive: true},
	}
	if err := db.Create(&products).Error; err != nil {
		t.Fatalf("create products failed: %v", err)
	}
	if err := db.Create(&models.User{Email: "asha@example.com", Status: constants.AccountStatusActive}).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	seedDashboardOrder(t, db, "GG1", constants.OrderStatusDelivered, 500, now.Add(-time.Hour))
	seedDashboardOrder(t, db, "GG2", "200", 300, now.Add(-2*time.Hour))
	seedDashboardOrder(t, db, "GG3", constants.OrderStatusPending, 200, now.Add(-3*time.Hour))

	overview, err := service.GetOverview(context.Background(), true)
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if overview.ProductsTotal != 2 || overview.CategoriesTotal != 1 || overview.CustomersTotal != 1 || overview.OrdersTotal != 3 {
		t.Fatalf("unexpected totals: %+v", overview)
	}
	if overview.DeliveredRevenue != "500.00" {
		t.Fatalf("expected delivered revenue 500.00, got %s", overview.DeliveredRevenue)
	}
	// The legacy "200" row counts under confirmed, never as a raw bucket.
	if overview.OrdersByStatus[constants.OrderStatusConfirmed] != 1 {
		t.Fatalf("expected legacy status folded into confirmed: %+v", overview.OrdersByStatus)
	}
	if _, ok := overview.OrdersByStatus["200"]; ok {
		t.Fatalf("raw legacy bucket leaked: %+v", overview.OrdersByStatus)
	}
	if len(overview.LowStock) != 1 || overview.LowStock[0].Name != "Mug" {
		t.Fatalf("unexpected low stock: %+v", overview.LowStock)
	}
	if len(overview.RecentOrders) != 3 || overview.RecentOrders[0].OrderNo != "GG1" {
		t.Fatalf("unexpected recent orders: %+v", overview.RecentOrders)
	}
	if overview.RecentOrders[1].StatusDisplay != "Confirmed" {
		t.Fatalf("expected legacy status displayed as Confirmed, got %s", overview.RecentOrders[1].StatusDisplay)
	}
}

func TestDashboardTrendsFillsEmptyDays(t *testing.T) {
	service, db := setupDashboardServiceTest(t)
	now := time.Now()

	seedDashboardOrder(t, db, "GG1", constants.OrderStatusPending, 100, now)
	seedDashboardOrder(t, db, "GG2", constants.OrderStatusPending, 100, now)
	seedDashboardOrder(t, db, "GG3", constants.OrderStatusPending, 100, now.AddDate(0, 0, -2))

	trends, err := service.GetTrends(context.Background(), DashboardQueryInput{Range: "7d", ForceRefresh: true})
	if err != nil {
		t.Fatalf("trends failed: %v", err)
	}
	if len(trends.Points) != 7 {
		t.Fatalf("expected 7 points, got %d", len(trends.Points))
	}
	today := now.Format("2006-01-02")
	var todayOrders, zeroDays int64
	for _, point := range trends.Points {
		if point.Date == today {
			todayOrders = point.Orders
		}
		if point.Orders == 0 {
			zeroDays++
		}
	}
	if todayOrders != 2 {
		t.Fatalf("expected 2 orders today, got %d", todayOrders)
	}
	if zeroDays != 5 {
		t.Fatalf("expected 5 zero-filled days, got %d", zeroDays)
	}
}

func TestResolveDashboardWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)

	window, err := resolveDashboardWindow(DashboardQueryInput{}, now)
	if err != nil {
		t.Fatalf("default window failed: %v", err)
	}
	if window.rangeKey != "7d" || window.endAt.Sub(window.startAt) != 7*24*time.Hour {
		t.Fatalf("unexpected default window: %+v", window)
	}

	if _, err := resolveDashboardWindow(DashboardQueryInput{Range: "yearly"}, now); !errors.Is(err, ErrDashboardRangeInvalid) {
		t.Fatalf("expected ErrDashboardRangeInvalid, got %v", err)
	}

	from := now.AddDate(0, 0, -10)
	to := now
	if _, err := resolveDashboardWindow(DashboardQueryInput{Range: "custom", From: &from, To: &to}, now); err != nil {
		t.Fatalf("custom window failed: %v", err)
	}
	if _, err := resolveDashboardWindow(DashboardQueryInput{Range: "custom", From: &to, To: &from}, now); !errors.Is(err, ErrDashboardRangeInvalid) {
		t.Fatalf("expected inverted custom window rejected, got %v", err)
	}
	wide := now.AddDate(0, 0, -120)
	if _, err := resolveDashboardWindow(DashboardQueryInput{Range: "custom", From: &wide, To: &to}, now); !errors.Is(err, ErrDashboardRangeInvalid) {
		t.Fatalf("expected over-wide custom window rejected, got %v", err)
	}
	if _, err := resolveDashboardWindow(DashboardQueryInput{Range: "custom"}, now); !errors.Is(err, ErrDashboardRangeInvalid) {
		t.Fatalf("expected custom without bounds rejected, got %v", err)
	}
}
