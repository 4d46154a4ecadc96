package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/serenelabs/serene/internal/models"
	"github.com/serenelabs/serene/internal/store"
)

// Machine-readable error codes carried alongside the HTTP status.
const (
	codeInvalidRequest   = "invalid_request"
	codeValidationFailed = "validation_failed"
	codeUnauthorized     = "unauthorized"
	codeNotFound         = "not_found"
	codeInternal         = "internal_error"
)

// errorBody is the uniform error response. CorrelationID appears in logs so a
// report can be matched to a request.
type errorBody struct {
	Error         string    `json:"error"`
	Code          string    `json:"code"`
	CorrelationID string    `json:"correlation_id"`
	Timestamp     time.Time `json:"timestamp"`
}

func respondError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, errorBody{
		Error:         msg,
		Code:          code,
		CorrelationID: uuid.NewString(),
		Timestamp:     time.Now().UTC(),
	})
}

// respondFailure maps domain errors onto the status taxonomy. Validation
// failures are 422, missing records 404, everything else 500.
func respondFailure(c *gin.Context, err error) {
	switch {
	case models.IsValidation(err):
		respondError(c, http.StatusUnprocessableEntity, codeValidationFailed, err.Error())
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, codeNotFound, "record not found")
	default:
		respondError(c, http.StatusInternalServerError, codeInternal, "something went wrong")
	}
}
