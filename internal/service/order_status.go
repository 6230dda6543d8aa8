package service

import (
	"strings"

	"github.com/giftgalore/api/internal/constants"
)

// canonicalStatuses is the closed set of values an order may carry at rest.
var canonicalStatuses = []string{
	constants.OrderStatusPending,
	constants.OrderStatusOrderPlaced,
	constants.OrderStatusConfirmed,
	constants.OrderStatusProcessing,
	constants.OrderStatusShipped,
	constants.OrderStatusDelivered,
	constants.OrderStatusCancelled,
}

var canonicalStatusSet = func() map[string]bool {
	set := make(map[string]bool, len(canonicalStatuses))
	for _, status := range canonicalStatuses {
		set[status] = true
	}
	return set
}()

// statusDisplayNames maps stored statuses to customer-facing labels.
var statusDisplayNames = map[string]string{
	constants.OrderStatusPending:     "Pending",
	constants.OrderStatusOrderPlaced: "Order Placed",
	constants.OrderStatusConfirmed:   "Confirmed",
	constants.OrderStatusProcessing:  "Processing",
	constants.OrderStatusShipped:     "Shipped",
	constants.OrderStatusDelivered:   "Delivered",
	constants.OrderStatusCancelled:   "Cancelled",
}

// trackingStages is the fixed public timeline ladder. Cancellation is not a
// stage; cancelled orders get a terminal marker instead.
var trackingStages = []string{
	constants.OrderStatusPending,
	constants.OrderStatusConfirmed,
	constants.OrderStatusProcessing,
	constants.OrderStatusShipped,
	constants.OrderStatusDelivered,
}

// IsValidOrderStatus reports whether a value may be persisted as a status.
// The historical "200" corruption fails this check like any other junk.
func IsValidOrderStatus(status string) bool {
	return canonicalStatusSet[normalizeStatus(status)]
}

// DisplayStatus renders a stored status for customers. A legacy "200" is
// shown as Confirmed; other unknown values get a title-cased fallback so the
// raw value never leaks.
func DisplayStatus(status string) string {
	normalized := normalizeStatus(status)
	if normalized == constants.LegacyStatusConfirmed {
		return statusDisplayNames[constants.OrderStatusConfirmed]
	}
	if display, ok := statusDisplayNames[normalized]; ok {
		return display
	}
	return titleCaseStatus(normalized)
}

// NormalizeStoredStatus maps a stored status onto the canonical enum for
// read-side logic. Writes still reject non-canonical values; this only keeps
// legacy rows usable.
func NormalizeStoredStatus(status string) string {
	normalized := normalizeStatus(status)
	if normalized == constants.LegacyStatusConfirmed {
		return constants.OrderStatusConfirmed
	}
	return normalized
}

// stageIndex places a status on the timeline ladder. order_placed has not
// reached confirmation yet, so it sits with pending. Cancelled and unknown
// values return -1.
func stageIndex(status string) int {
	switch NormalizeStoredStatus(status) {
	case constants.OrderStatusPending, constants.OrderStatusOrderPlaced:
		return 0
	case constants.OrderStatusConfirmed:
		return 1
	case constants.OrderStatusProcessing:
		return 2
	case constants.OrderStatusShipped:
		return 3
	case constants.OrderStatusDelivered:
		return 4
	default:
		return -1
	}
}

// TransitionTable is the configured status transition allow-list.
type TransitionTable map[string]map[string]bool

// NewTransitionTable builds the allow-list from config. An empty config
// yields the permissive default: any move between canonical statuses except
// out of the terminal delivered and cancelled.
func NewTransitionTable(configured map[string][]string) TransitionTable {
	table := make(TransitionTable)
	if len(configured) == 0 {
		for _, from := range canonicalStatuses {
			if from == constants.OrderStatusDelivered || from == constants.OrderStatusCancelled {
				continue
			}
			nexts := make(map[string]bool)
			for _, to := range canonicalStatuses {
				if to != from {
					nexts[to] = true
				}
			}
			table[from] = nexts
		}
		return table
	}
	for from, targets := range configured {
		normalizedFrom := normalizeStatus(from)
		nexts := make(map[string]bool, len(targets))
		for _, to := range targets {
			nexts[normalizeStatus(to)] = true
		}
		table[normalizedFrom] = nexts
	}
	return table
}

// Allows reports whether current may transition to target. A status missing
// from a configured table is terminal.
func (t TransitionTable) Allows(current, target string) bool {
	nexts, ok := t[normalizeStatus(current)]
	if !ok {
		return false
	}
	return nexts[normalizeStatus(target)]
}

func normalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

func titleCaseStatus(status string) string {
	words := strings.FieldsFunc(status, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	if len(words) == 0 {
		return status
	}
	return strings.Join(words, " ")
}
