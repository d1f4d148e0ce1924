package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"edge-header-policy/internal/models"
)

// ValidationError represents a validation error with field details
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error            string            `json:"error"`
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validation_errors,omitempty"`
	RequestID        string            `json:"request_id,omitempty"`
	Timestamp        string            `json:"timestamp"`
}

func newErrorResponse(c *gin.Context, errorText, message string) ErrorResponse {
	return ErrorResponse{
		Error:     errorText,
		Message:   message,
		RequestID: c.GetString(RequestIDKey),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// EnhancedErrorHandler renders errors attached to the context by handlers
func EnhancedErrorHandler(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last()
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"error":      err.Error(),
			"error_type": fmt.Sprintf("%d", err.Type),
		}).Error("Request error")

		var maxBytesErr *http.MaxBytesError
		if errors.As(err.Err, &maxBytesErr) {
			c.JSON(http.StatusRequestEntityTooLarge, newErrorResponse(c,
				"Request too large",
				fmt.Sprintf("Request body exceeds maximum allowed size (%d bytes)", maxBytesErr.Limit),
			))
			return
		}

		switch err.Type {
		case gin.ErrorTypeBind:
			response := newErrorResponse(c, "Invalid request format", err.Error())

			var modelErrs models.ValidationErrors
			var fieldErrs validator.ValidationErrors
			switch {
			case errors.As(err.Err, &modelErrs):
				response.Error = "Validation failed"
				response.Message = "Event validation failed"
				response.ValidationErrors = formatModelErrors(modelErrs)
			case errors.As(err.Err, &fieldErrs):
				response.Error = "Validation failed"
				response.Message = "Request validation failed"
				response.ValidationErrors = formatValidationErrors(fieldErrs)
			}
			c.JSON(http.StatusBadRequest, response)

		case gin.ErrorTypePublic:
			c.JSON(http.StatusBadRequest, newErrorResponse(c, "Request failed", err.Error()))

		default:
			c.JSON(http.StatusInternalServerError, newErrorResponse(c, "Internal server error", "An internal error occurred"))
		}
	}
}

// RateLimiter implements rate limiting middleware
func RateLimiter(logger logrus.FieldLogger, requestsPerSecond float64, burstSize int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString(RequestIDKey),
				"client_ip": c.ClientIP(),
				"path":      c.Request.URL.Path,
			}).Warn("Rate limit exceeded")

			c.AbortWithStatusJSON(http.StatusTooManyRequests, newErrorResponse(c,
				"Rate limit exceeded",
				fmt.Sprintf("Too many requests. Limit: %.1f requests per second", requestsPerSecond),
			))
			return
		}
		c.Next()
	}
}

// ContentTypeValidation validates request content types
func ContentTypeValidation(allowedTypes ...string) gin.HandlerFunc {
	if len(allowedTypes) == 0 {
		allowedTypes = []string{"application/json"}
	}

	return func(c *gin.Context) {
		// Only bodies are checked
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		contentType := c.GetHeader("Content-Type")
		if contentType == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, newErrorResponse(c,
				"Missing Content-Type header",
				"Content-Type header is required",
			))
			return
		}

		// Extract main content type (ignore charset, boundary, etc.)
		mainType := strings.TrimSpace(strings.Split(contentType, ";")[0])

		for _, allowedType := range allowedTypes {
			if mainType == allowedType {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, newErrorResponse(c,
			"Unsupported Content-Type",
			fmt.Sprintf("Content-Type '%s' is not supported. Allowed types: %v", mainType, allowedTypes),
		))
	}
}

// RequestSizeLimit limits the size of request bodies
func RequestSizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, newErrorResponse(c,
				"Request too large",
				fmt.Sprintf("Request body size (%d bytes) exceeds maximum allowed size (%d bytes)", c.Request.ContentLength, maxSize),
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

func formatModelErrors(modelErrs models.ValidationErrors) []ValidationError {
	out := make([]ValidationError, 0, len(modelErrs))
	for _, e := range modelErrs {
		out = append(out, ValidationError{
			Field:   e.Field,
			Tag:     e.Tag,
			Value:   fmt.Sprintf("%v", e.Value),
			Message: e.Message,
		})
	}
	return out
}

func formatValidationErrors(validationErrors validator.ValidationErrors) []ValidationError {
	var errs []ValidationError

	for _, err := range validationErrors {
		var message string

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "numeric":
			message = fmt.Sprintf("%s must be numeric", err.Field())
		case "len":
			message = fmt.Sprintf("%s must be exactly %s characters", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("%s is invalid", err.Field())
		}

		errs = append(errs, ValidationError{
			Field:   err.Field(),
			Tag:     err.Tag(),
			Value:   fmt.Sprintf("%v", err.Value()),
			Message: message,
		})
	}

	return errs
}
