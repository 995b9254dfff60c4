package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound        ErrorType = "NOT_FOUND"
	ErrorTypeUnauthenticated ErrorType = "UNAUTHENTICATED"
	ErrorTypeForbidden       ErrorType = "FORBIDDEN"
	ErrorTypeConflict        ErrorType = "CONFLICT"
	ErrorTypeIneligible      ErrorType = "INELIGIBLE"
	ErrorTypeUpload          ErrorType = "UPLOAD_REJECTED"
	ErrorTypeStorage         ErrorType = "STORAGE_UNAVAILABLE"
	ErrorTypeInternal        ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodePositionKeys     ErrorCode = "POSITION_KEYS_MISMATCH"

	ErrCodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	ErrCodeCourseNotFound       ErrorCode = "COURSE_NOT_FOUND"
	ErrCodeProjectNotFound      ErrorCode = "PROJECT_NOT_FOUND"
	ErrCodeRequestNotFound      ErrorCode = "REQUEST_NOT_FOUND"
	ErrCodeCertificateNotFound  ErrorCode = "CERTIFICATE_NOT_FOUND"
	ErrCodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"

	ErrCodeDuplicateRequest ErrorCode = "DUPLICATE_REQUEST"
	ErrCodeRequestTerminal  ErrorCode = "REQUEST_ALREADY_TERMINAL"

	ErrCodeMissingCompetencies ErrorCode = "MISSING_COMPETENCIES"
	ErrCodeNoOpenPosition      ErrorCode = "NO_OPEN_POSITION"

	ErrCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	ErrCodeUnsupportedFileType ErrorCode = "UNSUPPORTED_FILE_TYPE"
	ErrCodeFileTooLarge        ErrorCode = "FILE_TOO_LARGE"
	ErrCodeFileMissing         ErrorCode = "FILE_MISSING"

	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
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
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// EligibilityDetails carries the actionable rejection reason so clients can
// render what is actually missing.
type EligibilityDetails struct {
	Position            string   `json:"position,omitempty"`
	MissingCompetencies []string `json:"missing_competencies,omitempty"`
	NoOpenPosition      bool     `json:"no_open_position,omitempty"`
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			messages := make([]string, len(validationErrors.Errors))
			for i, err := range validationErrors.Errors {
				messages[i] = err.Message
			}
			if len(messages) > 0 {
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
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

func NewUnauthenticatedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthenticated,
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

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewIneligibleError(message string, code ErrorCode, details EligibilityDetails) *AppError {
	return &AppError{
		Type:       ErrorTypeIneligible,
		Code:       code,
		Message:    message,
		Details:    details,
		StatusCode: http.StatusBadRequest,
	}
}

func NewUploadError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUpload,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewStorageError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeStorage,
		Code:       ErrCodeStorageUnavailable,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
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
	ErrUserNotFound         = NewNotFoundError("user not found", ErrCodeUserNotFound)
	ErrCourseNotFound       = NewNotFoundError("course not found", ErrCodeCourseNotFound)
	ErrProjectNotFound      = NewNotFoundError("project not found", ErrCodeProjectNotFound)
	ErrRequestNotFound      = NewNotFoundError("request not found", ErrCodeRequestNotFound)
	ErrCertificateNotFound  = NewNotFoundError("certificate not found", ErrCodeCertificateNotFound)
	ErrNotificationNotFound = NewNotFoundError("notification not found", ErrCodeNotificationNotFound)

	ErrDuplicateRequest = NewConflictError("request already exists for this target", ErrCodeDuplicateRequest)
	ErrRequestTerminal  = NewConflictError("request is no longer pending", ErrCodeRequestTerminal)

	ErrForbidden = NewForbiddenError("access denied", ErrCodeForbidden)

	ErrInvalidCredentials = NewUnauthenticatedError("invalid email or password", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthenticatedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthenticatedError("token has expired", ErrCodeTokenExpired)
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
