package admin

import (
	"strconv"

	"github.com/giftgalore/api/internal/authz"
	"github.com/giftgalore/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RolePolicyRequest grants one permission to a role.
type RolePolicyRequest struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// AdminRolesRequest replaces an administrator's role set.
type AdminRolesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}

// GetRoles lists the known back-office roles.
func (h *Handler) GetRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch roles", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}

// GrantRolePolicy adds one object/action permission to a role.
func (h *Handler) GrantRolePolicy(c *gin.Context) {
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	role, err := authz.NormalizeRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid role name", nil)
		return
	}
	if err := h.AuthzService.GrantRolePolicy(role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeInternal, "failed to grant permission", err)
		return
	}
	response.Success(c, gin.H{"granted": true})
}

// SetAdminRoles replaces the role set of one administrator.
func (h *Handler) SetAdminRoles(c *gin.Context) {
	adminID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || adminID == 0 {
		respondError(c, response.CodeBadRequest, "invalid admin id", nil)
		return
	}
	var req AdminRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.AuthzService.SetAdminRoles(uint(adminID), req.Roles); err != nil {
		respondError(c, response.CodeInternal, "failed to update roles", err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// GetAdminRoles lists the roles of one administrator.
func (h *Handler) GetAdminRoles(c *gin.Context) {
	adminID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || adminID == 0 {
		respondError(c, response.CodeBadRequest, "invalid admin id", nil)
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(uint(adminID))
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch roles", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}
