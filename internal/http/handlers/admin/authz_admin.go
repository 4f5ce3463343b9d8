package admin

import (
	"github.com/ice-club/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

type authzRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyRequest struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type authzSetUserRolesRequest struct {
	Roles []string `json:"roles"`
}

// AdminListAuthzRoles 获取员工角色列表
func (h *Handler) AdminListAuthzRoles(c *gin.Context) {
	if h.AuthzService == nil {
		respondError(c, response.CodeInternal, "authz unavailable", nil)
		return
	}
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "authz fetch failed", err)
		return
	}
	response.Success(c, roles)
}

// AdminCreateAuthzRole 创建员工角色
func (h *Handler) AdminCreateAuthzRole(c *gin.Context) {
	if h.AuthzService == nil {
		respondError(c, response.CodeInternal, "authz unavailable", nil)
		return
	}
	var req authzRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	requestLog(c).Infow("admin_authz_role_created", "role", role)
	response.Success(c, gin.H{"role": role})
}

// AdminGetRolePolicies 查询角色策略
func (h *Handler) AdminGetRolePolicies(c *gin.Context) {
	if h.AuthzService == nil {
		respondError(c, response.CodeInternal, "authz unavailable", nil)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(c.Param("role"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	response.Success(c, policies)
}

// AdminGrantRolePolicy 为角色授予策略
func (h *Handler) AdminGrantRolePolicy(c *gin.Context) {
	if h.AuthzService == nil {
		respondError(c, response.CodeInternal, "authz unavailable", nil)
		return
	}
	var req authzPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	requestLog(c).Infow("admin_authz_policy_granted", "role", req.Role, "object", req.Object, "action", req.Action)
	response.Success(c, gin.H{"granted": true})
}

// AdminRevokeRolePolicy 撤销角色策略
func (h *Handler) AdminRevokeRolePolicy(c *gin.Context) {
	if h.AuthzService == nil {
		respondError(c, response.CodeInternal, "authz unavailable", nil)
		return
	}
	var req authzPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	requestLog(c).Infow("admin_authz_policy_revoked", "role", req.Role, "object", req.Object, "action", req.Action)
	response.Success(c, gin.H{"revoked": true})
}

// AdminGetUserRoles 查询员工角色
func (h *Handler) AdminGetUserRoles(c *gin.Context) {
	if h.AuthzService == nil {
		respondError(c, response.CodeInternal, "authz unavailable", nil)
		return
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetUserRoles(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "authz fetch failed", err)
		return
	}
	response.Success(c, gin.H{"user_id": userID, "roles": roles})
}

// AdminSetUserRoles 覆盖设置员工角色
func (h *Handler) AdminSetUserRoles(c *gin.Context) {
	if h.AuthzService == nil {
		respondError(c, response.CodeInternal, "authz unavailable", nil)
		return
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req authzSetUserRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.AuthzService.SetUserRoles(userID, req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	requestLog(c).Infow("admin_authz_user_roles_set", "user_id", userID, "roles", req.Roles)
	response.Success(c, gin.H{"user_id": userID, "roles": req.Roles})
}
