package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the application error carried from the service layer to the
// HTTP boundary. Handlers map it to {success:false, message} with HTTPCode.
type AppError struct {
	Code         ErrorCode `json:"code"`
	Message      string    `json:"message"`
	RetryAfterMs int64     `json:"retryAfterMs,omitempty"`
	Err          error     `json:"-"`
	HTTPCode     int       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New is the base constructor.
func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{Code: code, Message: message, HTTPCode: httpCode}
}

// Validation flags bad input shape or range.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

// StateConflict flags a transition attempted from a state that does not
// satisfy its precondition. No entity state is mutated.
func StateConflict(message string) *AppError {
	return New(CodeStateConflict, message, http.StatusConflict)
}

// Cooldown flags an offer attempted before the cooldown window elapsed. The
// remaining wait is carried so the caller can resume its own countdown.
func Cooldown(message string, retryAfterMs int64) *AppError {
	e := New(CodeCooldown, message, http.StatusTooManyRequests)
	e.RetryAfterMs = retryAfterMs
	return e
}

// NotFound flags an unknown entity ID.
func NotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

// Gateway flags an external payment-gateway failure. Entity state is left
// unchanged.
func Gateway(message string, err error) *AppError {
	e := New(CodeGateway, message, http.StatusBadGateway)
	e.Err = err
	return e
}

// Unauthorized flags a missing or invalid credential.
func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

// Forbidden flags an authenticated caller acting outside its role or
// ownership.
func Forbidden(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

// Internal wraps an unexpected system error.
func Internal(err error) *AppError {
	e := New(CodeInternal, "internal server error", http.StatusInternalServerError)
	e.Err = err
	return e
}

// As unwraps err into an *AppError if possible.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
