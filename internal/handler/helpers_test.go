package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadbook/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		kind   domain.Kind
		status int
	}{
		{domain.KindUnauthenticated, http.StatusUnauthorized},
		{domain.KindForbiddenRole, http.StatusForbidden},
		{domain.KindForbiddenOwnership, http.StatusForbidden},
		{domain.KindRestrictedOperation, http.StatusForbidden},
		{domain.KindProtectedAdmin, http.StatusBadRequest},
		{domain.KindNotFound, http.StatusNotFound},
		{domain.KindValidation, http.StatusBadRequest},
		{domain.KindConflict, http.StatusConflict},
		{domain.KindStoreUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			writeError(c, domain.E(tt.kind, "boom"))
			assert.Equal(t, tt.status, w.Code)
			// The machine-checkable reason rides along in the body.
			assert.Contains(t, w.Body.String(), string(tt.kind))
		})
	}
}

func TestWriteErrorUnclassified(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	writeError(c, errors.New("plain"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Internal details never leak.
	assert.NotContains(t, w.Body.String(), "plain")
}
