package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Capability/lifecycle errors
const (
	// ErrCodeCapabilityUnavailable indicates an optional native provider is
	// absent. Non-fatal: callers degrade instead of aborting.
	ErrCodeCapabilityUnavailable ErrorCode = "CAPABILITY_UNAVAILABLE"
	// ErrCodeNotInitialized indicates a capability requiring explicit
	// initialization was accessed before setup.
	ErrCodeNotInitialized ErrorCode = "NOT_INITIALIZED"
	// ErrCodeStepFailed indicates a startup step failed.
	ErrCodeStepFailed ErrorCode = "STEP_FAILED"
	// ErrCodeConfigInvalid indicates a provider is present but its
	// configuration was rejected (e.g., a malformed API key).
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
)

// Network errors
const (
	// ErrCodeRequestTimeout indicates a network operation exceeded its deadline.
	ErrCodeRequestTimeout ErrorCode = "REQUEST_TIMEOUT"
	// ErrCodeConnectionFailed indicates a failed connection to a remote host.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeRequestFailed indicates a generic, non-timeout request failure.
	ErrCodeRequestFailed ErrorCode = "REQUEST_FAILED"
)

// Auth errors
const (
	// ErrCodeTokenExpired indicates the authentication token has expired.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeInvalidToken indicates the authentication token is invalid.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
)

// Validation and internal errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeRequestTimeout:   true,
	ErrCodeConnectionFailed: true,
	ErrCodeRequestFailed:    false,
	ErrCodeInternal:         false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
