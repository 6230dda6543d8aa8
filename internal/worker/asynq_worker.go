package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/giftgalore/api/internal/logger"
	"github.com/giftgalore/api/internal/models"
	"github.com/giftgalore/api/internal/provider"
	"github.com/giftgalore/api/internal/queue"
	"github.com/giftgalore/api/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles queued tasks against the shared container.
type Consumer struct {
	*provider.Container
}

// NewConsumer builds a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register wires task handlers onto the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskOrderPlacedEmail, c.handleOrderPlacedEmail)
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	order, receiverEmail, err := c.resolveOrderAndReceiver(payload.OrderID)
	if err != nil || order == nil || receiverEmail == "" {
		return err
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_status_email_skip_email_service_nil", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	var message string
	if order.AdditionalInfo != nil {
		message = strings.TrimSpace(order.AdditionalInfo.Message)
	}
	input := service.OrderStatusEmailInput{
		OrderNo:       order.OrderNo,
		Status:        status,
		StatusDisplay: service.DisplayStatus(status),
		Amount:        order.TotalAmount,
		Currency:      order.Currency,
		CustomerName:  order.ShippingAddress.Name,
		Message:       message,
	}
	if err := c.EmailService.SendOrderStatusEmail(receiverEmail, input); err != nil {
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiverEmail,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderPlacedEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_placed_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPlacedEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_placed_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_placed_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	order, receiverEmail, err := c.resolveOrderAndReceiver(payload.OrderID)
	if err != nil || order == nil || receiverEmail == "" {
		return err
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_placed_email_skip_email_service_nil", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	input := service.OrderStatusEmailInput{
		OrderNo:      order.OrderNo,
		Status:       order.Status,
		Amount:       order.TotalAmount,
		Currency:     order.Currency,
		CustomerName: order.ShippingAddress.Name,
	}
	if err := c.EmailService.SendOrderPlacedEmail(receiverEmail, input); err != nil {
		logger.Warnw("worker_order_placed_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiverEmail,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) resolveOrderAndReceiver(orderID uint) (*models.Order, string, error) {
	order, err := c.OrderRepo.GetByID(orderID)
	if err != nil {
		logger.Warnw("worker_order_email_fetch_order_failed", "order_id", orderID, "error", err)
		return nil, "", err
	}
	if order == nil {
		logger.Debugw("worker_order_email_skip_order_not_found", "order_id", orderID)
		return nil, "", nil
	}

	var receiverEmail string
	if order.UserID != 0 {
		user, err := c.UserRepo.GetByID(order.UserID)
		if err != nil {
			logger.Warnw("worker_order_email_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
			return nil, "", err
		}
		if user != nil {
			receiverEmail = strings.TrimSpace(user.Email)
		}
	}
	if receiverEmail == "" {
		receiverEmail = strings.TrimSpace(order.ShippingAddress.Email)
	}
	if receiverEmail == "" {
		logger.Debugw("worker_order_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
	}
	return order, receiverEmail, nil
}
