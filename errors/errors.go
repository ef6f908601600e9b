// Package errors provides unified error handling for appkit.
// It implements structured error types with machine-readable codes and
// retryable detection, so callers can distinguish "provider missing" from
// "provider misconfigured" and timeouts from generic failures.
package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// CapabilityUnavailable creates an AppError for an absent optional provider.
func CapabilityUnavailable(capability, reason string) *AppError {
	return &AppError{
		Code: ErrCodeCapabilityUnavailable, Message: fmt.Sprintf("The %s capability is not available on this device.", capability),
		Retryable: false,
		Details:   map[string]any{"capability": capability, "reason": reason},
	}
}

// NotInitialized creates an AppError for a capability accessed before setup.
func NotInitialized(capability string) *AppError {
	return &AppError{
		Code: ErrCodeNotInitialized, Message: fmt.Sprintf("The %s capability has not been initialized.", capability),
		Retryable: false,
		Details:   map[string]any{"capability": capability},
	}
}

// RequestTimeout creates an AppError for a network operation that exceeded
// its deadline. Distinct from generic failures so callers can retry.
func RequestTimeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeRequestTimeout, Message: "The request took too long. Please try again.",
		Retryable: true,
		Details:   map[string]any{"operation": operation},
	}
}

// ConnectionFailed creates an AppError for a failed connection.
func ConnectionFailed(host string) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: fmt.Sprintf("Unable to connect to %s.", host),
		Retryable: true,
		Details:   map[string]any{"host": host},
	}
}

// StepFailed creates an AppError for a failed startup step, carrying the
// step identity so the failure is attributable.
func StepFailed(step string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeStepFailed, Message: fmt.Sprintf("Startup step %q failed.", step),
		Retryable: false,
		Details:   map[string]any{"step": step},
		Cause:     cause,
	}
}

// ConfigInvalid creates an AppError for a present-but-misconfigured provider.
func ConfigInvalid(capability, reason string) *AppError {
	return &AppError{
		Code: ErrCodeConfigInvalid, Message: fmt.Sprintf("The %s capability is misconfigured: %s", capability, reason),
		Retryable: false,
		Details:   map[string]any{"capability": capability},
	}
}

// TokenExpired creates an AppError for an expired authentication token.
func TokenExpired() *AppError {
	return &AppError{
		Code: ErrCodeTokenExpired, Message: "The authentication token has expired.",
		Retryable: false,
	}
}

// Validation creates an AppError for invalid input.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		Retryable: false,
	}
}

// Internal creates an AppError for an unexpected internal failure.
func Internal(message string) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: message,
		Retryable: false,
	}
}

// --- Inspection helpers ---

// GetCode extracts the ErrorCode from an error chain, or ErrCodeInternal.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether the error chain contains an AppError with the code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsRetryable reports whether the error chain contains a retryable AppError.
func IsRetryable(err error) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Retryable
	}
	return false
}
