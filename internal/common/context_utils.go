package common

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	TenantIDKey contextKey = "tenant_id"
	BranchIDKey contextKey = "branch_id"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendUnauthorizedError sends an unauthorized error response
func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", "Unauthorized access", nil))
}

// SendDomainError maps a service error onto the matching HTTP response:
// validation to 400, missing references to 404, conflicts to 409, everything
// else to 500 with a generic message.
func SendDomainError(c echo.Context, err error) error {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return SendValidationError(c, validationErr.Field, validationErr.Reason)
	}
	var notFoundErr *ReferenceNotFoundError
	if errors.As(err, &notFoundErr) {
		return SendNotFoundError(c, fmt.Sprintf("%s %q", notFoundErr.EntityType, notFoundErr.Name))
	}
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		return c.JSON(http.StatusConflict, CreateErrorResponse("CONFLICT", conflictErr.Error(), nil))
	}
	return SendServerError(c, "operation could not be completed")
}

// ValidateUUID validates UUID format with comprehensive checks
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	if strings.TrimSpace(idStr) == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}

	idStr = strings.TrimSpace(idStr)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID: %v", fieldName, err)
	}
	return id, nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetTenantIDFromContext extracts the tenant ID from the request context
func GetTenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return tenantID, ok
}

// GetBranchIDFromContext extracts the branch ID from the request context
func GetBranchIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	branchID, ok := ctx.Value(BranchIDKey).(uuid.UUID)
	return branchID, ok
}

// SanitizeHTMLElement escapes HTML characters to prevent XSS attacks
func SanitizeHTMLElement(input string) string {
	return html.EscapeString(input)
}

// ValidatePaginationParams validates pagination parameters
func ValidatePaginationParams(limit, offset int) (int, int, error) {
	if limit <= 0 {
		limit = 50 // Default
	}
	if limit > 1000 {
		limit = 1000 // Maximum
	}

	if offset < 0 {
		offset = 0
	}
	if offset > 1000000 {
		return 0, 0, fmt.Errorf("offset cannot exceed 1,000,000")
	}

	return limit, offset, nil
}

// ValidateDateRange validates date ranges to prevent abuse
func ValidateDateRange(startDate, endDate time.Time) error {
	if endDate.Before(startDate) {
		return fmt.Errorf("end date cannot be before start date")
	}
	return nil
}
