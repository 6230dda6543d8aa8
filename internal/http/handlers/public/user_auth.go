package public

import (
	"strings"

	"github.com/giftgalore/api/internal/http/response"
	"github.com/giftgalore/api/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the customer sign-up payload.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// LoginRequest is the customer login payload.
type LoginRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// UpdateProfileRequest is the profile update payload.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Register creates a customer account and signs the caller in.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	user, token, expiresAt, err := h.UserAuthService.Register(req.Email, req.Password, req.Name, req.Phone)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "registration failed")
		return
	}
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       user,
	})
}

// Login signs a customer in. When the image captcha is enabled the payload
// must carry a valid challenge answer.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if h.CaptchaService != nil && h.CaptchaService.Enabled() {
		if err := h.CaptchaService.Verify(service.CaptchaVerifyPayload{
			CaptchaID:   req.CaptchaID,
			CaptchaCode: req.CaptchaCode,
		}); err != nil {
			respondLoginError(c, err)
			return
		}
	}
	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondLoginError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       user,
	})
}

// Logout drops the cached auth state of the current user.
func (h *Handler) Logout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.UserAuthService.Logout(uid); err != nil {
		respondError(c, response.CodeInternal, "logout failed", err)
		return
	}
	response.Success(c, gin.H{"logged_out": true})
}

// CheckAdmin reports whether an email belongs to an active back-office
// account, so the storefront can route the login form.
func (h *Handler) CheckAdmin(c *gin.Context) {
	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		email = strings.TrimSpace(c.Query("email"))
	}
	if email == "" {
		respondError(c, response.CodeBadRequest, "email is required", nil)
		return
	}
	isAdmin, err := h.UserAuthService.CheckAdmin(email)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to check account", err)
		return
	}
	response.Success(c, gin.H{"is_admin": isAdmin})
}

// GetProfile returns the current user's profile.
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetProfile(uid)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "failed to fetch profile")
		return
	}
	response.Success(c, user)
}

// UpdateProfile updates the current user's display name and phone.
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	user, err := h.UserAuthService.UpdateProfile(uid, req.Name, req.Phone)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "failed to update profile")
		return
	}
	response.Success(c, user)
}
