package service

import (
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

func setupOrderServiceTest(t *testing.T) (*OrderService, *CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderTracking{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	orderRepo := repository.NewOrderRepository(db)
	trackingRepo := repository.NewOrderTrackingRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)

	orderService := NewOrderService(orderRepo, trackingRepo, productRepo, cartRepo, nil, NewTransitionTable(nil), "INR")
	cartService := NewCartService(cartRepo, productRepo)
	return orderService, cartService, db
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int, hasCharge bool, charge float64) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:              name,
		Slug:              Slugify(name),
		Price:             models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		Stock:             stock,
		MinOrderQuantity:  1,
		Images:            models.StringArray([]string{"/uploads/products/" + Slugify(name) + ".jpg"}),
		IsActive:          true,
		HasDeliveryCharge: hasCharge,
		DeliveryCharge:    models.NewMoneyFromDecimal(decimal.NewFromFloat(charge)),
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func testShippingAddress() models.ShippingAddress {
	return models.ShippingAddress{
		Name:    "Asha Verma",
		Phone:   "9876543210",
		Email:   "asha@example.com",
		Line1:   "14 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560001",
	}
}

func TestCheckoutFlatDeliveryChargePerProduct(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)

	hamper := createTestProduct(t, db, "Chocolate Hamper", 100, 10, true, 49)
	mug := createTestProduct(t, db, "Photo Mug", 50, 10, false, 0)

	if _, err := cartService.AddItem(1, hamper.ID, 3); err != nil {
		t.Fatalf("add hamper failed: %v", err)
	}
	if _, err := cartService.AddItem(1, mug.ID, 2); err != nil {
		t.Fatalf("add mug failed: %v", err)
	}

	order, err := orderService.Checkout(CheckoutInput{UserID: 1, ShippingAddress: testShippingAddress()})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// Delivery is charged once per distinct product, not per unit.
	if !order.Subtotal.Decimal.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected subtotal 400, got %s", order.Subtotal.Decimal.String())
	}
	if !order.ShippingFee.Decimal.Equal(decimal.NewFromInt(49)) {
		t.Fatalf("expected shipping fee 49, got %s", order.ShippingFee.Decimal.String())
	}
	if !order.TotalAmount.Decimal.Equal(decimal.NewFromInt(449)) {
		t.Fatalf("expected total 449, got %s", order.TotalAmount.Decimal.String())
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if !strings.HasPrefix(order.OrderNo, "GG") {
		t.Fatalf("unexpected order number: %s", order.OrderNo)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}

	var stocked models.Product
	if err := db.First(&stocked, hamper.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stocked.Stock != 7 {
		t.Fatalf("expected stock 7 after checkout, got %d", stocked.Stock)
	}

	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("expected cart cleared, got %d lines", cartCount)
	}

	var entries []models.OrderTracking
	if err := db.Where("order_id = ?", order.ID).Find(&entries).Error; err != nil {
		t.Fatalf("load tracking failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Status != constants.OrderStatusPending {
		t.Fatalf("expected one pending tracking entry, got %+v", entries)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	orderService, _, _ := setupOrderServiceTest(t)
	_, err := orderService.Checkout(CheckoutInput{UserID: 1, ShippingAddress: testShippingAddress()})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutIncompleteAddress(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	product := createTestProduct(t, db, "Candle Set", 200, 5, false, 0)
	if _, err := cartService.AddItem(1, product.ID, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	addr := testShippingAddress()
	addr.Pincode = " "
	_, err := orderService.Checkout(CheckoutInput{UserID: 1, ShippingAddress: addr})
	if !errors.Is(err, ErrShippingAddressBad) {
		t.Fatalf("expected ErrShippingAddressBad, got %v", err)
	}
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	product := createTestProduct(t, db, "Succulent Set", 150, 5, false, 0)
	if _, err := cartService.AddItem(1, product.ID, 4); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	// Stock drops between carting and checkout.
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("stock", 2).Error; err != nil {
		t.Fatalf("update stock failed: %v", err)
	}

	_, err := orderService.Checkout(CheckoutInput{UserID: 1, ShippingAddress: testShippingAddress()})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no orders, got %d", orderCount)
	}
	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 1 {
		t.Fatalf("expected cart kept on failure, got %d lines", cartCount)
	}
}

func TestQuoteDelivery(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	frame := createTestProduct(t, db, "Wooden Frame", 1299, 10, true, 99)
	mug := createTestProduct(t, db, "Plain Mug", 249, 10, false, 0)
	if _, err := cartService.AddItem(7, frame.ID, 2); err != nil {
		t.Fatalf("add frame failed: %v", err)
	}
	if _, err := cartService.AddItem(7, mug.ID, 1); err != nil {
		t.Fatalf("add mug failed: %v", err)
	}

	quote, err := orderService.QuoteDelivery(7)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if !quote.Subtotal.Decimal.Equal(decimal.NewFromInt(2847)) {
		t.Fatalf("expected subtotal 2847, got %s", quote.Subtotal.Decimal.String())
	}
	if !quote.ShippingFee.Decimal.Equal(decimal.NewFromInt(99)) {
		t.Fatalf("expected shipping 99, got %s", quote.ShippingFee.Decimal.String())
	}
	if len(quote.ChargedFor) != 1 || quote.ChargedFor[0] != frame.ID {
		t.Fatalf("expected charge for frame only, got %v", quote.ChargedFor)
	}
	if quote.Currency != "INR" {
		t.Fatalf("expected INR, got %s", quote.Currency)
	}

	// Quoting must not create an order or touch the cart.
	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no orders after quote, got %d", orderCount)
	}
}

func placeTestOrder(t *testing.T, orderService *OrderService, cartService *CartService, db *gorm.DB, userID uint) *models.Order {
	t.Helper()
	product := createTestProduct(t, db, fmt.Sprintf("Gift Box %d", userID), 500, 20, false, 0)
	if _, err := cartService.AddItem(userID, product.ID, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	order, err := orderService.Checkout(CheckoutInput{UserID: userID, ShippingAddress: testShippingAddress()})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	return order
}

func TestUpdateStatusAppendsTracking(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	order := placeTestOrder(t, orderService, cartService, db, 1)

	updated, err := orderService.UpdateStatus(order.ID, "Confirmed", "ops-admin", "verified payment")
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", updated.Status)
	}

	var entries []models.OrderTracking
	if err := db.Where("order_id = ?", order.ID).Order("id asc").Find(&entries).Error; err != nil {
		t.Fatalf("load tracking failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 tracking entries, got %d", len(entries))
	}
	last := entries[1]
	if last.Status != constants.OrderStatusConfirmed || last.PreviousStatus != constants.OrderStatusPending {
		t.Fatalf("unexpected tracking entry: %+v", last)
	}
	if last.UpdatedByName != "ops-admin" || last.Notes != "verified payment" {
		t.Fatalf("unexpected actor or notes: %+v", last)
	}
}

func TestUpdateStatusRejectsSameAndInvalid(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	order := placeTestOrder(t, orderService, cartService, db, 1)

	if _, err := orderService.UpdateStatus(order.ID, "pending", "ops", ""); !errors.Is(err, ErrSameOrderStatus) {
		t.Fatalf("expected ErrSameOrderStatus, got %v", err)
	}
	if _, err := orderService.UpdateStatus(order.ID, "200", "ops", ""); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}
}

func TestUpdateStatusTerminalOrders(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	order := placeTestOrder(t, orderService, cartService, db, 1)

	if _, err := orderService.UpdateStatus(order.ID, constants.OrderStatusDelivered, "ops", ""); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if _, err := orderService.UpdateStatus(order.ID, constants.OrderStatusPending, "ops", ""); !errors.Is(err, ErrTransitionNotAllowed) {
		t.Fatalf("expected ErrTransitionNotAllowed out of delivered, got %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.DeliveredAt == nil {
		t.Fatal("expected delivered_at to be set")
	}
}

func TestAdditionalInfoSetAndClear(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	order := placeTestOrder(t, orderService, cartService, db, 1)

	if _, err := orderService.SetAdditionalInfo(order.ID, "  ", "ops"); !errors.Is(err, ErrAdditionalInfoEmpty) {
		t.Fatalf("expected ErrAdditionalInfoEmpty, got %v", err)
	}

	updated, err := orderService.SetAdditionalInfo(order.ID, "courier delayed by rain", "ops")
	if err != nil {
		t.Fatalf("set additional info failed: %v", err)
	}
	if updated.AdditionalInfo == nil || updated.AdditionalInfo.Message != "courier delayed by rain" {
		t.Fatalf("unexpected additional info: %+v", updated.AdditionalInfo)
	}

	// The slot holds one message; a second write overwrites it.
	updated, err = orderService.SetAdditionalInfo(order.ID, "out for delivery", "ops")
	if err != nil {
		t.Fatalf("overwrite additional info failed: %v", err)
	}
	if updated.AdditionalInfo.Message != "out for delivery" {
		t.Fatalf("expected overwrite, got %q", updated.AdditionalInfo.Message)
	}

	cleared, err := orderService.ClearAdditionalInfo(order.ID, "ops")
	if err != nil {
		t.Fatalf("clear additional info failed: %v", err)
	}
	if cleared.AdditionalInfo != nil {
		t.Fatalf("expected cleared slot, got %+v", cleared.AdditionalInfo)
	}

	var entryCount int64
	if err := db.Model(&models.OrderTracking{}).Where("order_id = ?", order.ID).Count(&entryCount).Error; err != nil {
		t.Fatalf("count tracking failed: %v", err)
	}
	// placement + two sets + clear
	if entryCount != 4 {
		t.Fatalf("expected 4 tracking entries, got %d", entryCount)
	}
}

func TestTrackByOrderNumberTimeline(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	order := placeTestOrder(t, orderService, cartService, db, 1)

	for _, status := range []string{constants.OrderStatusConfirmed, constants.OrderStatusShipped} {
		if _, err := orderService.UpdateStatus(order.ID, status, "ops", ""); err != nil {
			t.Fatalf("update to %s failed: %v", status, err)
		}
	}

	view, err := orderService.TrackByOrderNumber(order.OrderNo)
	if err != nil {
		t.Fatalf("track failed: %v", err)
	}
	if view.Status != constants.OrderStatusShipped || view.StatusDisplay != "Shipped" {
		t.Fatalf("unexpected status: %s / %s", view.Status, view.StatusDisplay)
	}
	if len(view.Timeline) != 5 {
		t.Fatalf("expected 5 timeline stages, got %d", len(view.Timeline))
	}
	for i, stage := range view.Timeline {
		wantReached := i <= 3
		if stage.Reached != wantReached {
			t.Fatalf("stage %d reached=%v, want %v", i, stage.Reached, wantReached)
		}
	}
	if !view.Timeline[3].Current {
		t.Fatal("expected shipped stage to be current")
	}
	if view.Timeline[4].ReachedAt != nil {
		t.Fatal("expected no timestamp on unreached stage")
	}
	if view.Destination.City != "Bengaluru" || view.Destination.Pincode != "560001" {
		t.Fatalf("unexpected destination: %+v", view.Destination)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 tracked item, got %d", len(view.Items))
	}
}

func TestTrackByOrderNumberCancelled(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	order := placeTestOrder(t, orderService, cartService, db, 1)

	if _, err := orderService.UpdateStatus(order.ID, constants.OrderStatusConfirmed, "ops", ""); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := orderService.UpdateStatus(order.ID, constants.OrderStatusCancelled, "ops", "customer request"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	view, err := orderService.TrackByOrderNumber(order.OrderNo)
	if err != nil {
		t.Fatalf("track failed: %v", err)
	}
	if !view.Cancelled || view.CancelledAt == nil {
		t.Fatalf("expected cancelled view, got %+v", view)
	}
	if len(view.Timeline) != 6 {
		t.Fatalf("expected 5 stages plus cancelled marker, got %d", len(view.Timeline))
	}
	// Stages past confirmation are never fabricated for a cancelled order.
	if view.Timeline[2].Reached || view.Timeline[3].Reached || view.Timeline[4].Reached {
		t.Fatalf("expected later stages unreached: %+v", view.Timeline)
	}
	last := view.Timeline[5]
	if last.Status != constants.OrderStatusCancelled || !last.Current || !last.Reached {
		t.Fatalf("unexpected terminal marker: %+v", last)
	}
}

func TestTrackByOrderNumberUnknown(t *testing.T) {
	orderService, _, _ := setupOrderServiceTest(t)
	if _, err := orderService.TrackByOrderNumber("GG00000000000000000000"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if _, err := orderService.TrackByOrderNumber("  "); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for blank input, got %v", err)
	}
}

func TestTrackingHistoryPartialForLegacyOrder(t *testing.T) {
	orderService, _, db := setupOrderServiceTest(t)

	placed := time.Now().Add(-48 * time.Hour)
	legacy := &models.Order{
		OrderNo:         "GG00000000000001",
		UserID:          1,
		Status:          "200",
		Currency:        "INR",
		ShippingAddress: testShippingAddress(),
		CreatedAt:       placed,
		UpdatedAt:       placed.Add(2 * time.Hour),
	}
	if err := db.Create(legacy).Error; err != nil {
		t.Fatalf("create legacy order failed: %v", err)
	}

	history, err := orderService.GetTrackingHistory(legacy.ID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !history.Partial {
		t.Fatal("expected partial history for order without tracking rows")
	}
	if len(history.Entries) != 2 {
		t.Fatalf("expected 2 synthesized entries, got %d", len(history.Entries))
	}
	if history.Entries[1].Status != constants.OrderStatusConfirmed {
		t.Fatalf("expected legacy 200 normalized to confirmed, got %s", history.Entries[1].Status)
	}
}
