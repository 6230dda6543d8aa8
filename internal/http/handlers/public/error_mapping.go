package public

import (
	"errors"

	handlershared "github.com/giftgalore/api/internal/http/handlers/shared"
	"github.com/giftgalore/api/internal/http/response"
	"github.com/giftgalore/api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// mappedHandlerError maps a business error to an API error response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var cartCommonErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product is not available"},
	{target: service.ErrQuantityBelowMinimum, code: response.CodeBadRequest, msg: "quantity is below the minimum order quantity"},
	{target: service.ErrQuantityExceedsStock, code: response.CodeBadRequest, msg: "quantity exceeds available stock"},
	{target: service.ErrCartItemInvalid, code: response.CodeBadRequest, msg: "invalid cart item"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "product not found"},
}

var checkoutExtraErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "insufficient stock for one or more items"},
	{target: service.ErrShippingAddressBad, code: response.CodeBadRequest, msg: "shipping address is incomplete"},
}

var wishlistErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product is not available"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "product not found"},
}

var trackingErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
}

var addressErrorRules = []mappedHandlerError{
	{target: service.ErrPincodeFormat, code: response.CodeBadRequest, msg: "pincode must be six digits"},
	{target: service.ErrPincodeNotFound, code: response.CodeNotFound, msg: "pincode not found"},
}

var userAuthErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "email address is invalid"},
	{target: service.ErrEmailTaken, code: response.CodeBadRequest, msg: "email address is already registered"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, msg: "password does not meet the policy"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "invalid email or password"},
	{target: service.ErrAccountDisabled, code: response.CodeForbidden, msg: "account is disabled"},
}

var captchaErrorRules = []mappedHandlerError{
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, msg: "captcha is required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, msg: "captcha verification failed"},
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(cartCommonErrorRules, checkoutExtraErrorRules), response.CodeInternal, "failed to place order")
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "failed to update cart")
}

func respondLoginError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(userAuthErrorRules, captchaErrorRules), response.CodeInternal, "login failed")
}
