package queue

import (
	"encoding/json"

	"github.com/giftgalore/api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEmail notifies the customer about a status change.
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskOrderPlacedEmail confirms a freshly placed order.
	TaskOrderPlacedEmail = constants.TaskOrderPlacedEmail
)

// OrderStatusEmailPayload carries a status-change email task.
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// OrderPlacedEmailPayload carries an order-confirmation email task.
type OrderPlacedEmailPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderStatusEmailTask builds a status-change email task.
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewOrderPlacedEmailTask builds an order-confirmation email task.
func NewOrderPlacedEmailTask(payload OrderPlacedEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlacedEmail, body), nil
}
