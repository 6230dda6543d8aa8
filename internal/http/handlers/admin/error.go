package admin

import (
	"errors"

	handlershared "github.com/giftgalore/api/internal/http/handlers/shared"
	"github.com/giftgalore/api/internal/http/response"
	"github.com/giftgalore/api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

// mappedHandlerError maps a business error to an API error response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
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

var productWriteErrorRules = []mappedHandlerError{
	{target: service.ErrProductNameRequired, code: response.CodeBadRequest, msg: "product name is required"},
	{target: service.ErrProductPriceInvalid, code: response.CodeBadRequest, msg: "price must be greater than zero"},
	{target: service.ErrProductStockInvalid, code: response.CodeBadRequest, msg: "stock must not be negative"},
	{target: service.ErrMinOrderQtyInvalid, code: response.CodeBadRequest, msg: "minimum order quantity must be at least one"},
	{target: service.ErrProductNeedsImage, code: response.CodeBadRequest, msg: "product needs at least one image"},
	{target: service.ErrProductNeedsCategory, code: response.CodeBadRequest, msg: "product needs at least one category"},
	{target: service.ErrSlugExists, code: response.CodeBadRequest, msg: "slug is already in use"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "product not found"},
}

var categoryWriteErrorRules = []mappedHandlerError{
	{target: service.ErrCategoryNameRequired, code: response.CodeBadRequest, msg: "category name is required"},
	{target: service.ErrSlugExists, code: response.CodeBadRequest, msg: "slug is already in use"},
	{target: service.ErrCategoryInUse, code: response.CodeBadRequest, msg: "category still has products"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "category not found"},
}

var orderStatusErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrInvalidOrderStatus, code: response.CodeBadRequest, msg: "unknown order status"},
	{target: service.ErrSameOrderStatus, code: response.CodeBadRequest, msg: "order already has that status"},
	{target: service.ErrTransitionNotAllowed, code: response.CodeBadRequest, msg: "status transition is not allowed"},
}
