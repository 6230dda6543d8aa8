package service

import (
	"testing"

	"github.com/giftgalore/api/internal/constants"
)

func TestIsValidOrderStatus(t *testing.T) {
	valid := []string{"pending", "order_placed", "confirmed", "processing", "shipped", "delivered", "cancelled", " Shipped "}
	for _, status := range valid {
		if !IsValidOrderStatus(status) {
			t.Fatalf("expected %q to be valid", status)
		}
	}
	invalid := []string{"", "200", "paid", "in transit"}
	for _, status := range invalid {
		if IsValidOrderStatus(status) {
			t.Fatalf("expected %q to be invalid", status)
		}
	}
}

func TestDisplayStatusLegacyConfirmed(t *testing.T) {
	if got := DisplayStatus("200"); got != "Confirmed" {
		t.Fatalf("expected legacy 200 to display as Confirmed, got %q", got)
	}
}

func TestDisplayStatusUnknownFallback(t *testing.T) {
	if got := DisplayStatus("on_hold"); got != "On Hold" {
		t.Fatalf("expected title-cased fallback, got %q", got)
	}
}

func TestNormalizeStoredStatus(t *testing.T) {
	if got := NormalizeStoredStatus(" 200 "); got != constants.OrderStatusConfirmed {
		t.Fatalf("expected legacy 200 to normalize to confirmed, got %q", got)
	}
	if got := NormalizeStoredStatus("Shipped"); got != constants.OrderStatusShipped {
		t.Fatalf("expected shipped, got %q", got)
	}
}

func TestStageIndex(t *testing.T) {
	cases := map[string]int{
		constants.OrderStatusPending:     0,
		constants.OrderStatusOrderPlaced: 0,
		"200":                            1,
		constants.OrderStatusProcessing:  2,
		constants.OrderStatusShipped:     3,
		constants.OrderStatusDelivered:   4,
		constants.OrderStatusCancelled:   -1,
		"garbage":                        -1,
	}
	for status, want := range cases {
		if got := stageIndex(status); got != want {
			t.Fatalf("stageIndex(%q) = %d, want %d", status, got, want)
		}
	}
}

func TestDefaultTransitionTableTerminalStatuses(t *testing.T) {
	table := NewTransitionTable(nil)
	if !table.Allows(constants.OrderStatusPending, constants.OrderStatusConfirmed) {
		t.Fatal("expected pending -> confirmed to be allowed")
	}
	if !table.Allows(constants.OrderStatusShipped, constants.OrderStatusCancelled) {
		t.Fatal("expected shipped -> cancelled to be allowed")
	}
	if table.Allows(constants.OrderStatusDelivered, constants.OrderStatusPending) {
		t.Fatal("expected delivered to be terminal")
	}
	if table.Allows(constants.OrderStatusCancelled, constants.OrderStatusConfirmed) {
		t.Fatal("expected cancelled to be terminal")
	}
}

func TestConfiguredTransitionTable(t *testing.T) {
	table := NewTransitionTable(map[string][]string{
		"pending": {"confirmed", "cancelled"},
	})
	if !table.Allows("Pending", "Confirmed") {
		t.Fatal("expected configured transition to be case-insensitive")
	}
	if table.Allows("pending", "shipped") {
		t.Fatal("expected unlisted target to be rejected")
	}
	if table.Allows("confirmed", "processing") {
		t.Fatal("expected status missing from table to be terminal")
	}
}
