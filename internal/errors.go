package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation        ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound          ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized      ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden         ErrorType = "FORBIDDEN"
	ErrorTypeConflict          ErrorType = "CONFLICT"
	ErrorTypeInvalidTransition ErrorType = "INVALID_TRANSITION"
	ErrorTypeInvalidState      ErrorType = "INVALID_STATE"
	ErrorTypeInternal          ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed      ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidSubject        ErrorCode = "INVALID_SUBJECT"
	ErrCodeInvalidRequestType    ErrorCode = "INVALID_REQUEST_TYPE"
	ErrCodeInvalidPriority       ErrorCode = "INVALID_PRIORITY"
	ErrCodeInvalidDate           ErrorCode = "INVALID_DATE"
	ErrCodeScheduledDateRequired ErrorCode = "SCHEDULED_DATE_REQUIRED"
	ErrCodeInvalidHoursSpent     ErrorCode = "INVALID_HOURS_SPENT"
	ErrCodeInvalidCategory       ErrorCode = "INVALID_CATEGORY"
	ErrCodeInvalidSpecialization ErrorCode = "INVALID_SPECIALIZATION"

	ErrCodeRequestNotFound   ErrorCode = "REQUEST_NOT_FOUND"
	ErrCodeEquipmentNotFound ErrorCode = "EQUIPMENT_NOT_FOUND"
	ErrCodeTeamNotFound      ErrorCode = "TEAM_NOT_FOUND"
	ErrCodeUserNotFound      ErrorCode = "USER_NOT_FOUND"

	ErrCodeRequestAccessDenied ErrorCode = "REQUEST_ACCESS_DENIED"
	ErrCodeInsufficientRole    ErrorCode = "INSUFFICIENT_ROLE"
	ErrCodeInvalidTransition   ErrorCode = "INVALID_STATUS_TRANSITION"
	ErrCodeEquipmentScrapped   ErrorCode = "EQUIPMENT_SCRAPPED"
	ErrCodeTechnicianNotInTeam ErrorCode = "TECHNICIAN_NOT_IN_TEAM"
	ErrCodeNotATechnician      ErrorCode = "NOT_A_TECHNICIAN"
	ErrCodeDuplicateSerial     ErrorCode = "DUPLICATE_SERIAL_NUMBER"
	ErrCodeDuplicateTeamName   ErrorCode = "DUPLICATE_TEAM_NAME"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewInvalidTransitionError names both endpoints of the rejected edge.
func NewInvalidTransitionError(from, to string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidTransition,
		Code:       ErrCodeInvalidTransition,
		Message:    fmt.Sprintf("Invalid status transition from %s to %s", from, to),
		StatusCode: http.StatusBadRequest,
		Details: map[string]string{
			"from": from,
			"to":   to,
		},
	}
}

func NewInvalidStateError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidState,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrRequestNotFound   = NewNotFoundError("Request not found", ErrCodeRequestNotFound)
	ErrEquipmentNotFound = NewNotFoundError("Equipment not found", ErrCodeEquipmentNotFound)
	ErrTeamNotFound      = NewNotFoundError("Team not found", ErrCodeTeamNotFound)
	ErrUserNotFound      = NewNotFoundError("User not found", ErrCodeUserNotFound)

	ErrRequestAccessDenied = NewForbiddenError("Access denied to this request", ErrCodeRequestAccessDenied)
	ErrInsufficientRole    = NewForbiddenError("Insufficient role for this operation", ErrCodeInsufficientRole)

	ErrEquipmentScrapped   = NewInvalidStateError("Cannot create request for scrapped equipment", ErrCodeEquipmentScrapped)
	ErrTechnicianNotInTeam = NewInvalidStateError("Technician must belong to the assigned maintenance team", ErrCodeTechnicianNotInTeam)
	ErrNotATechnician      = NewInvalidStateError("User does not hold the technician role", ErrCodeNotATechnician)

	ErrScheduledDateRequired = NewValidationError("Scheduled date is required for preventive maintenance", ErrCodeScheduledDateRequired)

	ErrInvalidCredentials = NewUnauthorizedError("Invalid email or password", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewForbiddenError("User account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
