package handler

import (
	"net/http"

	"leadbook/internal/apierror"
	"leadbook/internal/dto"
	"leadbook/internal/middleware"
	"leadbook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LeadsHandler struct {
	svc  service.LeadService
	bulk service.BulkService
}

func NewLeadsHandler(svc service.LeadService, bulk service.BulkService) *LeadsHandler {
	return &LeadsHandler{svc: svc, bulk: bulk}
}

// Create godoc
// @Summary Register a new student lead
// @Tags leads
// @Accept json
// @Produce json
// @Param body body dto.CreateLeadRequest true "Lead"
// @Success 201 {object} dto.LeadResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/leads [post]
func (h *LeadsHandler) Create(c *gin.Context) {
	var req dto.CreateLeadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListMine returns the caller's own leads with a count.
func (h *LeadsHandler) ListMine(c *gin.Context) {
	resp, err := h.svc.ListMine(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAll returns every lead. Admin only.
func (h *LeadsHandler) ListAll(c *gin.Context) {
	resp, err := h.svc.ListAll(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Edit a lead (own entries; admin can edit any)
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead id"
// @Param body body dto.UpdateLeadRequest true "Fields to change"
// @Success 200 {object} dto.LeadResponse
// @Failure 403 {object} apierror.APIError
// @Router /v1/leads/{id} [put]
func (h *LeadsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateLeadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), middleware.GetPrincipal(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LeadsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "lead deleted"})
}

// BulkIngest godoc
// @Summary Batch-create leads with per-row failure tolerance
// @Tags leads
// @Accept json
// @Produce json
// @Param body body dto.BulkIngestRequest true "Batch"
// @Success 200 {object} dto.BulkIngestResponse
// @Failure 403 {object} apierror.APIError
// @Router /v1/leads/bulk [post]
func (h *LeadsHandler) BulkIngest(c *gin.Context) {
	var req dto.BulkIngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return
	}
	// Deliberately no request-level validation here: the capability check and
	// the empty-batch check belong to the service, in that order.
	resp, err := h.bulk.Ingest(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}
