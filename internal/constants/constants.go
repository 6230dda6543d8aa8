package constants

// Order status constants. These seven values are the only statuses that may
// ever be persisted on an order.
const (
	OrderStatusPending     = "pending"
	OrderStatusOrderPlaced = "order_placed"
	OrderStatusConfirmed   = "confirmed"
	OrderStatusProcessing  = "processing"
	OrderStatusShipped     = "shipped"
	OrderStatusDelivered   = "delivered"
	OrderStatusCancelled   = "cancelled"
)

// LegacyStatusConfirmed is a corrupt value observed in historical data where
// an HTTP status code was written into the order status column. It is never
// accepted on write; the display layer renders it as Confirmed.
const LegacyStatusConfirmed = "200"

// Payment status constants. Payments are handled by an external collaborator;
// orders only mirror the outcome.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Admin role constants used by the back-office RBAC policy.
const (
	AdminRoleSuper      = "super"
	AdminRoleOperations = "operations"
	AdminRoleSupport    = "support"
)

// Admin and user account status constants.
const (
	AccountStatusActive   = "active"
	AccountStatusDisabled = "disabled"
)

// Captcha provider constants for the admin login gate.
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// Queue constants.
const (
	QueueDefault         = "default"
	TaskOrderStatusEmail = "order:status_email"
	TaskOrderPlacedEmail = "order:placed_email"
)

// Cache constants.
const (
	RedisPrefixDefault = "gg"
)

// Currency constants. Prices are stored and rendered in the site currency.
const (
	SiteCurrencyDefault = "INR"
)

// Upload constants.
const (
	UploadScopeProduct  = "products"
	UploadScopeCategory = "categories"
)
