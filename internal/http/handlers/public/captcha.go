package public

import (
	"github.com/giftgalore/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptcha issues a fresh image captcha challenge. When the captcha is
// disabled the storefront gets an empty challenge and skips the widget.
func (h *Handler) GetCaptcha(c *gin.Context) {
	if h.CaptchaService == nil || !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to generate captcha", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":   true,
		"challenge": challenge,
	})
}
