package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"leadbook/internal/dto"
	"leadbook/internal/middleware"
	"leadbook/internal/policy"
	"leadbook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// statsCacheTTL keeps the dashboard cheap under refresh-happy admins. Counts
// are eventually consistent by contract, so a short stale window is fine.
const statsCacheTTL = 30 * time.Second

const statsCacheKey = "stats:dashboard"

type AdminHandler struct {
	svc service.AdminService
	rdb *redis.Client
}

func NewAdminHandler(svc service.AdminService, rdb *redis.Client) *AdminHandler {
	return &AdminHandler{svc: svc, rdb: rdb}
}

// ListUsers godoc
// @Summary List all accounts with per-account lead counts
// @Tags admin
// @Produce json
// @Success 200 {array} dto.UserWithCount
// @Failure 403 {object} apierror.APIError
// @Router /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	resp, err := h.svc.ListUsersWithCounts(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateUser(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteUser(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// Stats godoc
// @Summary Dashboard totals (leads, non-admin accounts)
// @Tags admin
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Failure 403 {object} apierror.APIError
// @Router /v1/admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	p := middleware.GetPrincipal(c)

	// The admin gate must hold before cached numbers are served.
	if err := policy.CanManageAccounts(p); err != nil {
		writeError(c, err)
		return
	}

	if cached, err := h.rdb.Get(ctx, statsCacheKey).Bytes(); err == nil {
		var resp dto.StatsResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	resp, err := h.svc.Stats(ctx, p)
	if err != nil {
		writeError(c, err)
		return
	}

	// Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), statsCacheKey, b, statsCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
