package public

import (
	"strings"

	"github.com/giftgalore/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// TrackOrder resolves an order number to its public tracking view. No
// authentication is required; the order number is the lookup key.
func (h *Handler) TrackOrder(c *gin.Context) {
	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "order number is required", nil)
		return
	}
	tracking, err := h.OrderService.TrackByOrderNumber(orderNo)
	if err != nil {
		respondWithMappedError(c, err, trackingErrorRules, response.CodeInternal, "failed to track order")
		return
	}
	response.Success(c, tracking)
}
