package admin

import (
	handlershared "github.com/giftgalore/api/internal/http/handlers/shared"
	"github.com/giftgalore/api/internal/service"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "admin_id")
}

// actorName resolves the acting admin's username for tracking entries.
// Falls back to the system actor when the account cannot be loaded.
func (h *Handler) actorName(adminID uint) string {
	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil || admin == nil {
		return service.SystemActorName
	}
	return admin.Username
}
