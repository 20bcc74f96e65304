package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Business rule violations (e.g. closed admissions)
	ErrBusinessRule = errors.New("business rule violation")

	// External dependency failures
	ErrExternalService = errors.New("external service unavailable")
)

// User errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyExists  = errors.New("email already registered")
	ErrUsernameTaken       = errors.New("username already taken")
)

// School errors
var (
	ErrSchoolNotFound = errors.New("school not found")
)

// Application errors
var (
	ErrApplicationNotFound   = errors.New("application not found")
	ErrDuplicateApplication  = errors.New("an active application already exists for this school")
	ErrAdmissionsClosed      = errors.New("applications are closed for this school")
	ErrNoAvailableSpots      = errors.New("no available spots in this school")
	ErrAlreadyApproved       = errors.New("application is already approved")
	ErrPaymentCompleted      = errors.New("payment already completed")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrInvalidPhoneNumber    = errors.New("invalid phone number format")
)

// Enrollment errors
var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

// NewNotFoundError creates a resource-not-found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewValidationError creates a validation error with a message and the
// offending fields.
func NewValidationError(message string, fields map[string]string) error {
	e := &CustomError{Err: ErrValidationFailed, Message: message}
	if len(fields) > 0 {
		details := make(map[string]interface{}, len(fields))
		for k, v := range fields {
			details[k] = v
		}
		e.Details = details
	}
	return e
}

// NewBusinessRuleError creates a business-rule error with a message
func NewBusinessRuleError(message string) error {
	return &CustomError{Err: ErrBusinessRule, Message: message}
}

// CustomError carries a sentinel error plus request-scoped context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes the sentinel for errors.Is
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails attaches context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
