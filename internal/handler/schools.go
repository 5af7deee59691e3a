package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"leadbook/internal/dto"
	"leadbook/internal/middleware"
	"leadbook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const schoolsCacheTTL = 5 * time.Minute

const schoolsCacheKey = "schools:options"

// SchoolsHandler serves the school dropdown: distinct school names collected
// from existing leads. Cached in Redis since the set changes slowly.
type SchoolsHandler struct {
	svc service.LeadService
	rdb *redis.Client
}

func NewSchoolsHandler(svc service.LeadService, rdb *redis.Client) *SchoolsHandler {
	return &SchoolsHandler{svc: svc, rdb: rdb}
}

// List godoc
// @Summary Distinct school names for the entry form dropdown
// @Tags schools
// @Produce json
// @Success 200 {array} dto.SchoolOption
// @Router /v1/schools [get]
func (h *SchoolsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := h.rdb.Get(ctx, schoolsCacheKey).Bytes(); err == nil {
		var options []dto.SchoolOption
		if jsonErr := json.Unmarshal(cached, &options); jsonErr == nil {
			c.JSON(http.StatusOK, options)
			return
		}
	}

	options, err := h.svc.Schools(ctx, middleware.GetPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}

	// Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(options); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), schoolsCacheKey, b, schoolsCacheTTL).Err()
	}

	c.JSON(http.StatusOK, options)
}
