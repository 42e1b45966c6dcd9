package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buffmasterbran/pirani-connector/internal/domain/mapping"
	"github.com/buffmasterbran/pirani-connector/internal/domain/order"
	"github.com/buffmasterbran/pirani-connector/internal/domain/payout"
	"github.com/buffmasterbran/pirani-connector/internal/domain/storefront"
	"github.com/buffmasterbran/pirani-connector/internal/interfaces/http/dto"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "X-Request-ID"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	if id := c.GetHeader(RequestIDKey); id != "" {
		return id
	}
	return ""
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	requestID := getRequestID(c)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Conflict sends a 409 conflict response
func (h *BaseHandler) Conflict(c *gin.Context, message string) {
	h.Error(c, http.StatusConflict, dto.ErrCodeConflict, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	requestID := getRequestID(c)
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		requestID,
		details,
	))
}

// errorCodeFor maps domain sentinel errors to API error codes. Wrapped
// errors are matched with errors.Is, so infrastructure adapters can add
// context without losing the classification.
func errorCodeFor(err error) string {
	switch {
	case errors.Is(err, mapping.ErrEntryNotFound),
		errors.Is(err, mapping.ErrDefaultNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, payout.ErrPayoutNotFound),
		errors.Is(err, payout.ErrSettingNotFound),
		errors.Is(err, storefront.ErrOrderNotFound):
		return dto.ErrCodeNotFound
	case errors.Is(err, mapping.ErrDuplicateSourceCode):
		return dto.ErrCodeAlreadyExists
	case errors.Is(err, mapping.ErrInvalidCategory),
		errors.Is(err, mapping.ErrInvalidKind),
		errors.Is(err, mapping.ErrEmptySourceCode),
		errors.Is(err, mapping.ErrEmptyTargetID),
		errors.Is(err, mapping.ErrNoSource),
		errors.Is(err, mapping.ErrMissingCustomField),
		errors.Is(err, order.ErrEmptyDepositNumber),
		errors.Is(err, payout.ErrInvalidSetting):
		return dto.ErrCodeInvalidInput
	case errors.Is(err, storefront.ErrInvalidSignature):
		return dto.ErrCodeInvalidSignature
	case errors.Is(err, storefront.ErrRateLimited):
		return dto.ErrCodeUpstreamRateLimited
	case errors.Is(err, storefront.ErrRequestFailed),
		errors.Is(err, storefront.ErrInvalidResponse),
		errors.Is(err, storefront.ErrNotConfigured):
		return dto.ErrCodeUpstreamFailed
	default:
		return dto.ErrCodeInternal
	}
}

// HandleError converts domain errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	code := errorCodeFor(err)
	message := err.Error()
	if code == dto.ErrCodeInternal {
		// Do not leak unclassified error details to clients
		message = "An unexpected error occurred"
	}
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}
