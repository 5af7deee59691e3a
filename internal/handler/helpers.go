package handler

import (
	"errors"
	"net/http"

	"leadbook/internal/apierror"
	"leadbook/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeError maps the domain error taxonomy onto HTTP statuses. Anything
// without a kind is an internal fault: logged in full, surfaced generically.
func writeError(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unclassified error")
		c.JSON(http.StatusInternalServerError, apierror.New("internal server error"))
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case domain.KindUnauthenticated:
		status = http.StatusUnauthorized
	case domain.KindForbiddenRole, domain.KindForbiddenOwnership, domain.KindRestrictedOperation:
		status = http.StatusForbidden
	case domain.KindProtectedAdmin:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindConflict:
		status = http.StatusConflict
	case domain.KindStoreUnavailable:
		log.Error().Err(de.Err).Str("path", c.FullPath()).Msg("store unavailable")
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, apierror.NewWithReason(de.Message, string(de.Kind)))
}
