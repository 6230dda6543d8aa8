package admin

import (
	"errors"

	"github.com/giftgalore/api/internal/http/response"
	"github.com/giftgalore/api/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadFile stores an image under the requested scope and returns its URL.
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "file is required", err)
		return
	}
	url, err := h.UploadService.SaveFile(file, c.PostForm("scope"))
	if err != nil {
		if errors.Is(err, service.ErrUploadInvalid) {
			respondError(c, response.CodeBadRequest, "file type or size not allowed", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to store file", err)
		return
	}
	response.Success(c, gin.H{"url": url})
}
