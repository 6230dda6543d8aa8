package service

import "errors"

// Sentinel errors. Handlers map these onto the response envelope.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrStatusInvalid      = errors.New("invalid account status")

	ErrSlugExists           = errors.New("slug already exists")
	ErrProductNotAvailable  = errors.New("product not available")
	ErrProductNameRequired  = errors.New("product name required")
	ErrProductPriceInvalid  = errors.New("product price invalid")
	ErrProductNeedsCategory = errors.New("product needs at least one category")
	ErrProductNeedsImage    = errors.New("product needs at least one image")
	ErrProductStockInvalid  = errors.New("product stock cannot be negative")
	ErrMinOrderQtyInvalid   = errors.New("minimum order quantity must be at least 1")
	ErrCategoryInUse        = errors.New("category has products attached")
	ErrCategoryNameRequired = errors.New("category name required")

	ErrQuantityBelowMinimum = errors.New("quantity below minimum order quantity")
	ErrQuantityExceedsStock = errors.New("quantity exceeds available stock")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrCartItemInvalid      = errors.New("cart item invalid")

	ErrWishlistDuplicate = errors.New("product already wishlisted")

	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderFetchFailed     = errors.New("order fetch failed")
	ErrOrderCreateFailed    = errors.New("order create failed")
	ErrOrderUpdateFailed    = errors.New("order update failed")
	ErrInvalidOrderStatus   = errors.New("invalid order status")
	ErrSameOrderStatus      = errors.New("order already in target status")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	ErrShippingAddressBad   = errors.New("shipping address incomplete")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrAdditionalInfoEmpty  = errors.New("additional info message empty")

	ErrPincodeFormat   = errors.New("pincode must be six digits")
	ErrPincodeNotFound = errors.New("pincode not found")
	ErrStateUnknown    = errors.New("state not in dataset")

	ErrDashboardRangeInvalid = errors.New("dashboard range invalid")

	ErrUploadInvalid   = errors.New("upload invalid")
	ErrCaptchaRequired = errors.New("captcha required")
	ErrCaptchaInvalid  = errors.New("captcha invalid")

	ErrEmailServiceDisabled      = errors.New("email sending disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
)
