package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/giftgalore/api/internal/constants"
	"github.com/giftgalore/api/internal/logger"
	"github.com/giftgalore/api/internal/models"
	"github.com/giftgalore/api/internal/queue"
	"github.com/giftgalore/api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SystemActorName labels tracking entries written without a human actor.
const SystemActorName = "system"

// OrderService owns checkout, the order lifecycle and the tracking log.
type OrderService struct {
	orderRepo    repository.OrderRepository
	trackingRepo repository.OrderTrackingRepository
	productRepo  repository.ProductRepository
	cartRepo     repository.CartRepository
	queueClient  *queue.Client
	transitions  TransitionTable
	currency     string
}

// NewOrderService builds an order service.
func NewOrderService(orderRepo repository.OrderRepository, trackingRepo repository.OrderTrackingRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, queueClient *queue.Client, transitions TransitionTable, currency string) *OrderService {
	if currency == "" {
		currency = constants.SiteCurrencyDefault
	}
	return &OrderService{
		orderRepo:    orderRepo,
		trackingRepo: trackingRepo,
		productRepo:  productRepo,
		cartRepo:     cartRepo,
		queueClient:  queueClient,
		transitions:  transitions,
		currency:     currency,
	}
}

// CheckoutInput is the checkout request.
type CheckoutInput struct {
	UserID          uint
	ShippingAddress models.ShippingAddress
}

// DeliveryQuote is the priced cart summary shown before checkout.
type DeliveryQuote struct {
	Subtotal    models.Money `json:"subtotal"`
	ShippingFee models.Money `json:"shipping_fee"`
	TotalAmount models.Money `json:"total_amount"`
	Currency    string       `json:"currency"`
	ChargedFor  []uint       `json:"charged_product_ids"`
}

type orderTotals struct {
	subtotal    decimal.Decimal
	shippingFee decimal.Decimal
	chargedFor  []uint
	items       []models.OrderItem
}

// Checkout turns the user's cart into an order. Every line is re-validated
// against current stock and minimum order quantity, product fields are
// snapshotted, stock decremented, the cart cleared and the first tracking
// entry written, all in one transaction.
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrCartItemInvalid
	}
	if err := validateShippingAddress(input.ShippingAddress); err != nil {
		return nil, err
	}

	lines, err := s.cartRepo.ListByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	totals, err := s.buildOrderTotals(lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:         generateOrderNo(),
		UserID:          input.UserID,
		Status:          constants.OrderStatusPending,
		Currency:        s.currency,
		Subtotal:        models.NewMoneyFromDecimal(totals.subtotal),
		ShippingFee:     models.NewMoneyFromDecimal(totals.shippingFee),
		TotalAmount:     models.NewMoneyFromDecimal(totals.subtotal.Add(totals.shippingFee)),
		ShippingAddress: input.ShippingAddress,
		PaymentStatus:   constants.PaymentStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		trackingRepo := s.trackingRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		for _, item := range totals.items {
			affected, err := productRepo.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrInsufficientStock
			}
		}

		if err := orderRepo.Create(order, totals.items); err != nil {
			return err
		}
		if err := trackingRepo.Append(&models.OrderTracking{
			OrderID:       order.ID,
			Status:        constants.OrderStatusPending,
			UpdatedByName: SystemActorName,
			Notes:         "order placed",
			CreatedAt:     now,
		}); err != nil {
			return err
		}
		return cartRepo.ClearByUser(input.UserID)
	})
	if err != nil {
		if err == ErrInsufficientStock {
			return nil, err
		}
		logger.Errorw("order_checkout_failed", "user_id", input.UserID, "error", err)
		return nil, ErrOrderCreateFailed
	}

	order.Items = totals.items
	s.enqueueStatusEmail(order.ID, constants.OrderStatusPending, constants.TaskOrderPlacedEmail)
	return order, nil
}

// QuoteDelivery prices the current cart without creating an order.
func (s *OrderService) QuoteDelivery(userID uint) (*DeliveryQuote, error) {
	if userID == 0 {
		return nil, ErrCartItemInvalid
	}
	lines, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}
	totals, err := s.buildOrderTotals(lines)
	if err != nil {
		return nil, err
	}
	return &DeliveryQuote{
		Subtotal:    models.NewMoneyFromDecimal(totals.subtotal),
		ShippingFee: models.NewMoneyFromDecimal(totals.shippingFee),
		TotalAmount: models.NewMoneyFromDecimal(totals.subtotal.Add(totals.shippingFee)),
		Currency:    s.currency,
		ChargedFor:  totals.chargedFor,
	}, nil
}

// buildOrderTotals validates cart lines and prices the order. The delivery
// charge is flat per distinct product: a charged product contributes its fee
// once no matter the quantity.
func (s *OrderService) buildOrderTotals(lines []models.CartItem) (*orderTotals, error) {
	totals := &orderTotals{
		subtotal:    decimal.Zero,
		shippingFee: decimal.Zero,
	}
	for _, line := range lines {
		product := line.Product
		if product == nil || product.ID == 0 || !product.IsActive {
			return nil, ErrProductNotAvailable
		}
		if err := ValidateQuantity(product, line.Quantity); err != nil {
			return nil, err
		}

		lineTotal := product.Price.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity)))
		totals.subtotal = totals.subtotal.Add(lineTotal)

		charge := decimal.Zero
		if product.HasDeliveryCharge {
			charge = product.DeliveryCharge.Decimal
			totals.shippingFee = totals.shippingFee.Add(charge)
			totals.chargedFor = append(totals.chargedFor, product.ID)
		}

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		totals.items = append(totals.items, models.OrderItem{
			ProductID:      product.ID,
			Name:           product.Name,
			Image:          image,
			UnitPrice:      product.Price,
			Quantity:       line.Quantity,
			DeliveryCharge: models.NewMoneyFromDecimal(charge),
			LineTotal:      models.NewMoneyFromDecimal(lineTotal),
		})
	}
	return totals, nil
}

// UpdateStatus moves an order to a new status, consulting the transition
// allow-list, and appends a tracking entry carrying the previous status and
// the current additional-info snapshot.
func (s *OrderService) UpdateStatus(orderID uint, targetStatus, actorName, notes string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	target := normalizeStatus(targetStatus)
	if !IsValidOrderStatus(target) {
		return nil, ErrInvalidOrderStatus
	}
	current := NormalizeStoredStatus(order.Status)
	if current == target {
		return nil, ErrSameOrderStatus
	}
	if !s.transitions.Allows(current, target) {
		return nil, ErrTransitionNotAllowed
	}

	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	switch target {
	case constants.OrderStatusCancelled:
		updates["cancelled_at"] = now
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = now
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		trackingRepo := s.trackingRepo.WithTx(tx)

		if err := orderRepo.UpdateStatus(order.ID, target, updates); err != nil {
			return err
		}
		return trackingRepo.Append(&models.OrderTracking{
			OrderID:        order.ID,
			Status:         target,
			PreviousStatus: order.Status,
			UpdatedByName:  resolveActorName(actorName),
			Notes:          strings.TrimSpace(notes),
			AdditionalInfo: order.AdditionalInfo,
			CreatedAt:      now,
		})
	})
	if err != nil {
		logger.Errorw("order_status_update_failed",
			"order_id", order.ID,
			"target_status", target,
			"error", err,
		)
		return nil, ErrOrderUpdateFailed
	}

	order.Status = target
	order.UpdatedAt = now
	if target == constants.OrderStatusCancelled {
		order.CancelledAt = &now
	}
	if target == constants.OrderStatusDelivered {
		order.DeliveredAt = &now
	}

	s.enqueueStatusEmail(order.ID, target, constants.TaskOrderStatusEmail)
	return order, nil
}

// SetAdditionalInfo overwrites the order's one-slot message and logs the
// write in the tracking history without changing status.
func (s *OrderService) SetAdditionalInfo(orderID uint, message, actorName string) (*models.Order, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrAdditionalInfoEmpty
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	now := time.Now()
	info := &models.AdditionalInfo{
		Message:   message,
		UpdatedAt: now,
		UpdatedBy: resolveActorName(actorName),
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		trackingRepo := s.trackingRepo.WithTx(tx)

		if err := orderRepo.UpdateAdditionalInfo(order.ID, info); err != nil {
			return err
		}
		return trackingRepo.Append(&models.OrderTracking{
			OrderID:        order.ID,
			Status:         order.Status,
			PreviousStatus: order.Status,
			UpdatedByName:  resolveActorName(actorName),
			Notes:          "additional info updated",
			AdditionalInfo: info,
			CreatedAt:      now,
		})
	})
	if err != nil {
		logger.Errorw("order_additional_info_set_failed", "order_id", order.ID, "error", err)
		return nil, ErrOrderUpdateFailed
	}

	order.AdditionalInfo = info
	return order, nil
}

// ClearAdditionalInfo empties the message slot and logs the clear.
func (s *OrderService) ClearAdditionalInfo(orderID uint, actorName string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	now := time.Now()
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		trackingRepo := s.trackingRepo.WithTx(tx)

		if err := orderRepo.UpdateAdditionalInfo(order.ID, nil); err != nil {
			return err
		}
		return trackingRepo.Append(&models.OrderTracking{
			OrderID:        order.ID,
			Status:         order.Status,
			PreviousStatus: order.Status,
			UpdatedByName:  resolveActorName(actorName),
			Notes:          "additional info cleared",
			CreatedAt:      now,
		})
	})
	if err != nil {
		logger.Errorw("order_additional_info_clear_failed", "order_id", order.ID, "error", err)
		return nil, ErrOrderUpdateFailed
	}

	order.AdditionalInfo = nil
	return order, nil
}

// TrackingHistory is the full tracking log for an order. Partial marks a
// synthesized approximation for orders predating the tracking table.
type TrackingHistory struct {
	Entries []models.OrderTracking `json:"entries"`
	Partial bool                   `json:"partial"`
}

// GetTrackingHistory returns the tracking log oldest first. Orders without
// entries get a synthesized two-entry history (placement and current status)
// tagged Partial so clients can label it.
func (s *OrderService) GetTrackingHistory(orderID uint) (*TrackingHistory, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	entries, err := s.trackingRepo.ListByOrder(orderID)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		return &TrackingHistory{Entries: entries}, nil
	}

	// Legacy order: approximate from order timestamps.
	history := &TrackingHistory{Partial: true}
	history.Entries = append(history.Entries, models.OrderTracking{
		OrderID:       order.ID,
		Status:        constants.OrderStatusPending,
		UpdatedByName: SystemActorName,
		Notes:         "order placed",
		CreatedAt:     order.CreatedAt,
	})
	if NormalizeStoredStatus(order.Status) != constants.OrderStatusPending {
		history.Entries = append(history.Entries, models.OrderTracking{
			OrderID:        order.ID,
			Status:         NormalizeStoredStatus(order.Status),
			PreviousStatus: constants.OrderStatusPending,
			UpdatedByName:  SystemActorName,
			AdditionalInfo: order.AdditionalInfo,
			CreatedAt:      order.UpdatedAt,
		})
	}
	return history, nil
}

// TimelineStage is one rung of the public tracking ladder.
type TimelineStage struct {
	Status        string     `json:"status"`
	StatusDisplay string     `json:"status_display"`
	Reached       bool       `json:"reached"`
	Current       bool       `json:"current"`
	ReachedAt     *time.Time `json:"reached_at,omitempty"`
}

// TrackedItem is the public snapshot of one order line.
type TrackedItem struct {
	Name      string       `json:"name"`
	Image     string       `json:"image"`
	UnitPrice models.Money `json:"unit_price"`
	Quantity  int          `json:"quantity"`
}

// TrackingDestination exposes only the coarse shipping location publicly.
type TrackingDestination struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// PublicTracking is the unauthenticated track-by-order-number view.
type PublicTracking struct {
	OrderNo        string                 `json:"order_no"`
	Status         string                 `json:"status"`
	StatusDisplay  string                 `json:"status_display"`
	PlacedAt       time.Time              `json:"placed_at"`
	Items          []TrackedItem          `json:"items"`
	Subtotal       models.Money           `json:"subtotal"`
	ShippingFee    models.Money           `json:"shipping_fee"`
	TotalAmount    models.Money           `json:"total_amount"`
	Destination    TrackingDestination    `json:"destination"`
	Timeline       []TimelineStage        `json:"timeline"`
	Cancelled      bool                   `json:"cancelled"`
	CancelledAt    *time.Time             `json:"cancelled_at,omitempty"`
	AdditionalInfo *models.AdditionalInfo `json:"additional_info,omitempty"`
}

// TrackByOrderNumber builds the public tracking view: the order summary
// subset plus the five-stage timeline. Cancelled orders keep the stages they
// actually reached and carry a terminal cancelled marker; later stages are
// never fabricated.
func (s *OrderService) TrackByOrderNumber(orderNo string) (*PublicTracking, error) {
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	entries, err := s.trackingRepo.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}

	view := &PublicTracking{
		OrderNo:       order.OrderNo,
		Status:        NormalizeStoredStatus(order.Status),
		StatusDisplay: DisplayStatus(order.Status),
		PlacedAt:      order.CreatedAt,
		Subtotal:      order.Subtotal,
		ShippingFee:   order.ShippingFee,
		TotalAmount:   order.TotalAmount,
		Destination: TrackingDestination{
			City:    order.ShippingAddress.City,
			State:   order.ShippingAddress.State,
			Pincode: order.ShippingAddress.Pincode,
		},
		AdditionalInfo: order.AdditionalInfo,
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, TrackedItem{
			Name:      item.Name,
			Image:     item.Image,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	cancelled := NormalizeStoredStatus(order.Status) == constants.OrderStatusCancelled
	view.Cancelled = cancelled
	if cancelled {
		view.CancelledAt = order.CancelledAt
	}

	view.Timeline = buildTimeline(order, entries, cancelled)
	return view, nil
}

// buildTimeline walks the fixed ladder. The reached index comes from the
// last non-cancelled status the order actually held; stage timestamps come
// from the first tracking entry at or past each stage.
func buildTimeline(order *models.Order, entries []models.OrderTracking, cancelled bool) []TimelineStage {
	reachedIndex := stageIndex(order.Status)
	if cancelled {
		reachedIndex = -1
		for _, entry := range entries {
			if idx := stageIndex(entry.Status); idx > reachedIndex {
				reachedIndex = idx
			}
		}
		if reachedIndex < 0 {
			reachedIndex = 0
		}
	}

	stageTimes := make([]*time.Time, len(trackingStages))
	for i := range entries {
		idx := stageIndex(entries[i].Status)
		if idx < 0 || idx >= len(stageTimes) {
			continue
		}
		if stageTimes[idx] == nil {
			at := entries[i].CreatedAt
			stageTimes[idx] = &at
		}
	}
	if stageTimes[0] == nil {
		at := order.CreatedAt
		stageTimes[0] = &at
	}

	timeline := make([]TimelineStage, 0, len(trackingStages)+1)
	for i, status := range trackingStages {
		stage := TimelineStage{
			Status:        status,
			StatusDisplay: DisplayStatus(status),
			Reached:       i <= reachedIndex,
			Current:       !cancelled && i == reachedIndex,
		}
		if stage.Reached {
			stage.ReachedAt = stageTimes[i]
		}
		timeline = append(timeline, stage)
	}
	if cancelled {
		stage := TimelineStage{
			Status:        constants.OrderStatusCancelled,
			StatusDisplay: DisplayStatus(constants.OrderStatusCancelled),
			Reached:       true,
			Current:       true,
			ReachedAt:     order.CancelledAt,
		}
		timeline = append(timeline, stage)
	}
	return timeline
}

// GetOrderByUser fetches an order scoped to its owner.
func (s *OrderService) GetOrderByUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser lists a user's orders.
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}

// ListOrdersForAdmin lists orders for the back office.
func (s *OrderService) ListOrdersForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetOrderForAdmin fetches an order with its full tracking log.
func (s *OrderService) GetOrderForAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ClearAllOrders removes every order, item and tracking entry. Destructive;
// exposed only to the back office.
func (s *OrderService) ClearAllOrders() error {
	return s.orderRepo.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.DeleteAll(tx)
	})
}

func (s *OrderService) enqueueStatusEmail(orderID uint, status, taskType string) {
	if s.queueClient == nil {
		return
	}
	if _, err := enqueueOrderStatusEmailTaskIfEligible(s.orderRepo, s.queueClient, orderID, status, taskType); err != nil {
		logger.Warnw("order_enqueue_status_email_failed",
			"order_id", orderID,
			"status", status,
			"task", taskType,
			"error", err,
		)
	}
}

func validateShippingAddress(addr models.ShippingAddress) error {
	if strings.TrimSpace(addr.Name) == "" ||
		strings.TrimSpace(addr.Phone) == "" ||
		strings.TrimSpace(addr.Line1) == "" ||
		strings.TrimSpace(addr.City) == "" ||
		strings.TrimSpace(addr.State) == "" ||
		strings.TrimSpace(addr.Pincode) == "" {
		return ErrShippingAddressBad
	}
	return nil
}

func resolveActorName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return SystemActorName
	}
	return name
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("GG%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		fmt.Fprintf(&b, "%d", n.Int64())
	}
	return b.String()
}
