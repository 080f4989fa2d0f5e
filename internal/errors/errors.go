package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"

	// Service errors
	ErrCodeInternalError = "INTERNAL_ERROR"

	// Client-side decoding errors
	ErrCodeMalformedResponse = "MALFORMED_RESPONSE"

	// Form validation errors surfaced by the web UI
	ErrCodeValidation = "VALIDATION_FAILED"

	// The modal is in a state that does not allow the request
	ErrCodeConflict = "CONFLICT"
)

// APIError represents a standardized error, both on the wire and inside the client
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`

	// Status is the HTTP status the error was derived from, if any
	Status int `json:"-"`
	cause  error
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying transport or decoding error
func (e *APIError) Unwrap() error {
	return e.cause
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// InvalidInput builds an INVALID_INPUT error
func InvalidInput(message string) *APIError {
	return &APIError{Code: ErrCodeInvalidInput, Message: message, Status: http.StatusBadRequest}
}

// NotFoundError builds a NOT_FOUND error
func NotFoundError(message string) *APIError {
	return &APIError{Code: ErrCodeNotFound, Message: message, Status: http.StatusNotFound}
}

// ServerError builds an INTERNAL_ERROR error wrapping cause
func ServerError(message string, cause error) *APIError {
	return &APIError{Code: ErrCodeInternalError, Message: message, Status: http.StatusInternalServerError, cause: cause}
}

// Malformed builds a MALFORMED_RESPONSE error wrapping cause
func Malformed(message string, cause error) *APIError {
	return &APIError{Code: ErrCodeMalformedResponse, Message: message, cause: cause}
}

// FromStatus maps an HTTP status to the error taxonomy. Only 400 and 404 are
// distinguished; everything else is a server error.
func FromStatus(status int, invalid, notFound, server string) *APIError {
	switch status {
	case http.StatusBadRequest:
		return InvalidInput(invalid)
	case http.StatusNotFound:
		return NotFoundError(notFound)
	default:
		e := ServerError(server, nil)
		e.Status = status
		return e
	}
}

// CodeOf returns the APIError code of err, or "" if err carries none
func CodeOf(err error) string {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

func IsInvalidInput(err error) bool { return CodeOf(err) == ErrCodeInvalidInput }
func IsNotFound(err error) bool     { return CodeOf(err) == ErrCodeNotFound }
func IsServerError(err error) bool  { return CodeOf(err) == ErrCodeInternalError }
func IsMalformed(err error) bool    { return CodeOf(err) == ErrCodeMalformedResponse }

// Predefined errors
var (
	ErrNotFound      = NewAPIError(ErrCodeNotFound, "Resource not found")
	ErrInvalidInput  = NewAPIError(ErrCodeInvalidInput, "Invalid request body")
	ErrInternalError = NewAPIError(ErrCodeInternalError, "Internal server error")
)

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Helper functions for common error responses

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// BadRequestWithDetails sends a 400 response with details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, message, details))
}

// UnprocessableEntity sends a 422 response for input the UI rejected
func UnprocessableEntity(c *gin.Context, message string) {
	RespondWithError(c, http.StatusUnprocessableEntity, NewAPIError(ErrCodeValidation, message))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeConflict, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// Respond writes err using the status its code maps to. Errors without a
// code become 500.
func Respond(c *gin.Context, err error) {
	var apiErr *APIError
	if !stderrors.As(err, &apiErr) {
		InternalError(c, err.Error())
		return
	}
	switch apiErr.Code {
	case ErrCodeInvalidInput:
		BadRequest(c, apiErr.Message)
	case ErrCodeNotFound:
		NotFound(c, apiErr.Message)
	case ErrCodeValidation:
		UnprocessableEntity(c, apiErr.Message)
	case ErrCodeConflict:
		Conflict(c, apiErr.Message)
	case ErrCodeMalformedResponse:
		RespondWithError(c, http.StatusBadGateway, NewAPIError(apiErr.Code, apiErr.Message))
	default:
		InternalError(c, apiErr.Message)
	}
}

// HTTPStatus returns the status Respond would use for err
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeValidation:
		return http.StatusUnprocessableEntity
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
