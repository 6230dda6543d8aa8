package service

import (
	"strings"

	"github.com/giftgalore/api/internal/constants"
	"github.com/giftgalore/api/internal/queue"
	"github.com/giftgalore/api/internal/repository"
)

// enqueueOrderStatusEmailTaskIfEligible pushes an order email task when a
// receiver address can be resolved. Returns whether a task was enqueued.
func enqueueOrderStatusEmailTaskIfEligible(orderRepo repository.OrderRepository, client *queue.Client, orderID uint, status, taskType string) (bool, error) {
	if client == nil || !client.Enabled() {
		return false, nil
	}
	email, err := orderRepo.ResolveReceiverEmailByOrderID(orderID)
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(email) == "" {
		return false, nil
	}
	if taskType == constants.TaskOrderPlacedEmail {
		err = client.EnqueueOrderPlacedEmail(queue.OrderPlacedEmailPayload{OrderID: orderID})
	} else {
		err = client.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{OrderID: orderID, Status: status})
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
