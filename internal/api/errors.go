package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/core"
	"github.com/cse-connect/connect-backend/internal/models"
)

// mapErrorToStatus answers err with the status matching its sentinel.
// Unknown errors are logged and hidden behind a generic 500.
func mapErrorToStatus(c *gin.Context, logger *zap.Logger, err error) {
	var statusCode int
	var errResponse models.ErrorResponse

	switch {
	case errors.Is(err, core.ErrNotFound):
		statusCode = http.StatusNotFound
		errResponse = models.ErrorResponse{Error: "not found", Details: err.Error()}
	case errors.Is(err, core.ErrForbidden):
		statusCode = http.StatusForbidden
		errResponse = models.ErrorResponse{Error: core.ErrForbidden.Error()}
	case errors.Is(err, core.ErrPermissionDenied):
		statusCode = http.StatusForbidden
		errResponse = models.ErrorResponse{Error: core.ErrPermissionDenied.Error()}
	case errors.Is(err, core.ErrUnauthenticated):
		statusCode = http.StatusUnauthorized
		errResponse = models.ErrorResponse{Error: core.ErrUnauthenticated.Error()}
	case errors.Is(err, core.ErrInvalidArgument):
		statusCode = http.StatusBadRequest
		errResponse = models.ErrorResponse{Error: "invalid request", Details: err.Error()}
	case errors.Is(err, core.ErrRateLimited):
		statusCode = http.StatusTooManyRequests
		errResponse = models.ErrorResponse{Error: core.ErrRateLimited.Error(), Details: err.Error()}
	default:
		logger.Error("Internal Server Error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		statusCode = http.StatusInternalServerError
		errResponse = models.ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// Callable-protocol status names.
const (
	statusUnauthenticated   = "UNAUTHENTICATED"
	statusPermissionDenied  = "PERMISSION_DENIED"
	statusInvalidArgument   = "INVALID_ARGUMENT"
	statusNotFound          = "NOT_FOUND"
	statusResourceExhausted = "RESOURCE_EXHAUSTED"
	statusInternal          = "INTERNAL"
)

// callableStatus maps err onto the HTTP status and protocol status name a
// Firebase callable client expects.
func callableStatus(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrUnauthenticated):
		return http.StatusUnauthorized, statusUnauthenticated
	case errors.Is(err, core.ErrPermissionDenied):
		return http.StatusForbidden, statusPermissionDenied
	case errors.Is(err, core.ErrInvalidArgument):
		return http.StatusBadRequest, statusInvalidArgument
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, statusNotFound
	case errors.Is(err, core.ErrRateLimited):
		return http.StatusTooManyRequests, statusResourceExhausted
	default:
		return http.StatusInternalServerError, statusInternal
	}
}
