// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Data errors
	ErrDatasetNotFound = &Error{Code: "DATASET_NOT_FOUND", Message: "dataset not found"}
	ErrNoData          = &Error{Code: "NO_DATA", Message: "no data available"}

	// Sweep errors
	ErrInvalidRange  = &Error{Code: "INVALID_RANGE", Message: "invalid parameter range"}
	ErrUnknownMetric = &Error{Code: "UNKNOWN_METRIC", Message: "metric not present in results"}
	ErrSweepFailed   = &Error{Code: "SWEEP_FAILED", Message: "sweep processing failed"}

	// Export errors
	ErrExportFailed = &Error{Code: "EXPORT_FAILED", Message: "export failed"}

	// API errors
	ErrInvalidRequest = &Error{Code: "INVALID_REQUEST", Message: "invalid request"}
	ErrJobNotFound    = &Error{Code: "JOB_NOT_FOUND", Message: "job not found"}
	ErrUnauthorized   = &Error{Code: "UNAUTHORIZED", Message: "invalid or missing API key"}

	// Insight errors
	ErrInsightDisabled = &Error{Code: "INSIGHT_DISABLED", Message: "insight provider not configured"}
	ErrInsightFailed   = &Error{Code: "INSIGHT_FAILED", Message: "insight request failed"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)
