package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbill/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: message, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Message: message, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, message string, errs ...string) {
	c.JSON(status, APIResponse{Success: false, Message: message, Errors: errs})
}

// MapDomainError translates domain errors to an HTTP status, a message, and
// the per-field violation list when present.
func MapDomainError(err error) (status int, message string, errs []string) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, "Validation failed", vErr.Violations
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Resource not found", nil
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password.", nil
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "Token has expired, please log in again.", nil
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized", nil
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "An account with this email already exists.", nil
	case errors.Is(err, domain.ErrDuplicateInvoiceNumber):
		return http.StatusConflict, "Invoice numbering conflict, please retry.", nil
	case errors.Is(err, domain.ErrSocialAuthTokenInvalid):
		return http.StatusUnauthorized, "Invalid or expired identity provider token.", nil
	case errors.Is(err, domain.ErrSocialAuthNotConfigured):
		return http.StatusServiceUnavailable, "Social login is not configured.", nil
	case errors.Is(err, domain.ErrDatabaseNotReady):
		return http.StatusServiceUnavailable, "Database not connected yet, please retry in a moment.", nil
	default:
		return http.StatusInternalServerError, "An internal error occurred", nil
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, message, errs := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, message, errs...)
}
