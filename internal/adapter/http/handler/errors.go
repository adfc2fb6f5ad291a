package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
)

// ErrorResponse represents a mapped error response
type ErrorResponse struct {
	StatusCode int
	Message    string
}

// MapUsecaseError maps pipeline errors to HTTP error responses.
// Errors outside the taxonomy are reported as a generic 500.
func MapUsecaseError(err error) ErrorResponse {
	switch {
	case errors.Is(err, service.ErrValidation):
		return ErrorResponse{StatusCode: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, service.ErrAuthentication):
		return ErrorResponse{StatusCode: http.StatusUnauthorized, Message: err.Error()}
	case errors.Is(err, service.ErrNotFound):
		return ErrorResponse{StatusCode: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, service.ErrUpstream):
		return ErrorResponse{StatusCode: http.StatusBadGateway, Message: err.Error()}
	case errors.Is(err, service.ErrConfiguration), errors.Is(err, service.ErrPersistence):
		return ErrorResponse{StatusCode: http.StatusInternalServerError, Message: err.Error()}
	default:
		return ErrorResponse{StatusCode: http.StatusInternalServerError, Message: "internal server error"}
	}
}

// HandleUsecaseError maps the error and sends the JSON error envelope.
func HandleUsecaseError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	respondError(c, errResp.StatusCode, errResp.Message)
}

// HandleInvalidUUID handles an invalid UUID parameter error.
func HandleInvalidUUID(c *gin.Context, paramName string) {
	respondError(c, http.StatusBadRequest, "invalid "+paramName)
}

// HandleInvalidRequest handles a generic invalid request error.
func HandleInvalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, message)
}
