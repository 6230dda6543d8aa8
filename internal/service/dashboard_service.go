package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/giftgalore/api/internal/cache"
	"github.com/giftgalore/api/internal/repository"
)

const (
	dashboardCacheTTL      = 45 * time.Second
	dashboardCustomMaxDays = 90
	dashboardRecentOrders  = 10
	dashboardLowStockLimit = 10
)

// DashboardService aggregates the back-office landing page numbers.
type DashboardService struct {
	repo              repository.DashboardRepository
	orderRepo         repository.OrderRepository
	productRepo       repository.ProductRepository
	lowStockThreshold int
}

// NewDashboardService builds a dashboard service.
func NewDashboardService(repo repository.DashboardRepository, orderRepo repository.OrderRepository, productRepo repository.ProductRepository, lowStockThreshold int) *DashboardService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 5
	}
	return &DashboardService{
		repo:              repo,
		orderRepo:         orderRepo,
		productRepo:       productRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// DashboardOverviewResponse is the admin landing page payload.
type DashboardOverviewResponse struct {
	ProductsTotal    int64                 `json:"products_total"`
	CategoriesTotal  int64                 `json:"categories_total"`
	CustomersTotal   int64                 `json:"customers_total"`
	OrdersTotal      int64                 `json:"orders_total"`
	DeliveredRevenue string                `json:"delivered_revenue"`
	OrdersByStatus   map[string]int64      `json:"orders_by_status"`
	LowStock         []DashboardStockItem  `json:"low_stock"`
	RecentOrders     []DashboardOrderEntry `json:"recent_orders"`
}

// DashboardStockItem flags a product running low.
type DashboardStockItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
}

// DashboardOrderEntry is one row of the recent-orders widget.
type DashboardOrderEntry struct {
	OrderID       uint      `json:"order_id"`
	OrderNo       string    `json:"order_no"`
	Status        string    `json:"status"`
	StatusDisplay string    `json:"status_display"`
	TotalAmount   string    `json:"total_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// DashboardTrendResponse is the order-volume chart payload.
type DashboardTrendResponse struct {
	Range  string                `json:"range"`
	From   string                `json:"from"`
	To     string                `json:"to"`
	Points []DashboardTrendPoint `json:"points"`
}

// DashboardTrendPoint is one day of order volume.
type DashboardTrendPoint struct {
	Date   string `json:"date"`
	Orders int64  `json:"orders"`
}

// DashboardQueryInput selects the trend window.
type DashboardQueryInput struct {
	Range        string
	From         *time.Time
	To           *time.Time
	ForceRefresh bool
}

type dashboardWindow struct {
	rangeKey string
	startAt  time.Time
	endAt    time.Time
}

// GetOverview returns the cached headline numbers plus the low-stock and
// recent-order widgets.
func (s *DashboardService) GetOverview(ctx context.Context, forceRefresh bool) (*DashboardOverviewResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:overview:%d", s.lowStockThreshold)
	if !forceRefresh {
		var cached DashboardOverviewResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	overview, err := s.repo.GetOverview()
	if err != nil {
		return nil, err
	}
	byStatus, err := s.orderRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.ListLowStock(s.lowStockThreshold, dashboardLowStockLimit)
	if err != nil {
		return nil, err
	}
	recent, err := s.orderRepo.ListRecent(dashboardRecentOrders)
	if err != nil {
		return nil, err
	}

	response := &DashboardOverviewResponse{
		ProductsTotal:    overview.ProductsTotal,
		CategoriesTotal:  overview.CategoriesTotal,
		CustomersTotal:   overview.CustomersTotal,
		OrdersTotal:      overview.OrdersTotal,
		DeliveredRevenue: fmt.Sprintf("%.2f", overview.DeliveredRevenue),
		OrdersByStatus:   normalizeStatusCounts(byStatus),
		LowStock:         make([]DashboardStockItem, 0, len(lowStock)),
		RecentOrders:     make([]DashboardOrderEntry, 0, len(recent)),
	}
	for _, product := range lowStock {
		response.LowStock = append(response.LowStock, DashboardStockItem{
			ProductID: product.ID,
			Name:      product.Name,
			Stock:     product.Stock,
		})
	}
	for _, order := range recent {
		response.RecentOrders = append(response.RecentOrders, DashboardOrderEntry{
			OrderID:       order.ID,
			OrderNo:       order.OrderNo,
			Status:        NormalizeStoredStatus(order.Status),
			StatusDisplay: DisplayStatus(order.Status),
			TotalAmount:   order.TotalAmount.String(),
			CreatedAt:     order.CreatedAt,
		})
	}

	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

// GetTrends returns the daily order counts for the chosen window. Days
// without orders still get a zero point so charts draw a continuous line.
func (s *DashboardService) GetTrends(ctx context.Context, input DashboardQueryInput) (*DashboardTrendResponse, error) {
	window, err := resolveDashboardWindow(input, time.Now())
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("dashboard:trends:%s:%d:%d", window.rangeKey, window.startAt.Unix(), window.endAt.Unix())
	if !input.ForceRefresh {
		var cached DashboardTrendResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	rows, err := s.repo.GetOrderTrends(window.startAt, window.endAt)
	if err != nil {
		return nil, err
	}
	rowMap := make(map[string]int64, len(rows))
	for _, row := range rows {
		rowMap[row.Day] = row.Orders
	}

	points := make([]DashboardTrendPoint, 0)
	for cursor := window.startAt; cursor.Before(window.endAt); cursor = cursor.AddDate(0, 0, 1) {
		day := cursor.Format("2006-01-02")
		points = append(points, DashboardTrendPoint{Date: day, Orders: rowMap[day]})
	}

	response := &DashboardTrendResponse{
		Range:  window.rangeKey,
		From:   window.startAt.Format(time.RFC3339),
		To:     window.endAt.Add(-time.Second).Format(time.RFC3339),
		Points: points,
	}

	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

// normalizeStatusCounts folds legacy stored statuses into their canonical
// buckets so the widget never shows a raw "200".
func normalizeStatusCounts(raw map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(raw))
	for status, count := range raw {
		out[NormalizeStoredStatus(status)] += count
	}
	return out
}

func resolveDashboardWindow(input DashboardQueryInput, now time.Time) (dashboardWindow, error) {
	rangeKey := strings.ToLower(strings.TrimSpace(input.Range))
	if rangeKey == "" {
		rangeKey = "7d"
	}

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	window := dashboardWindow{rangeKey: rangeKey}

	switch rangeKey {
	case "today":
		window.startAt = todayStart
		window.endAt = todayStart.AddDate(0, 0, 1)
	case "7d":
		window.startAt = todayStart.AddDate(0, 0, -6)
		window.endAt = todayStart.AddDate(0, 0, 1)
	case "30d":
		window.startAt = todayStart.AddDate(0, 0, -29)
		window.endAt = todayStart.AddDate(0, 0, 1)
	case "custom":
		if input.From == nil || input.To == nil {
			return dashboardWindow{}, ErrDashboardRangeInvalid
		}
		startAt := *input.From
		endAt := *input.To
		if endAt.Before(startAt) {
			return dashboardWindow{}, ErrDashboardRangeInvalid
		}
		if endAt.Sub(startAt) > time.Hour*24*dashboardCustomMaxDays {
			return dashboardWindow{}, ErrDashboardRangeInvalid
		}
		window.startAt = startAt
		window.endAt = endAt.Add(time.Second)
	default:
		return dashboardWindow{}, ErrDashboardRangeInvalid
	}

	if !window.endAt.After(window.startAt) {
		return dashboardWindow{}, ErrDashboardRangeInvalid
	}
	return window, nil
}
