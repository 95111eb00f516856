// Package domain defines the core error taxonomy for ScanCore.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a runtime error with a structured error code.
//
// Codes have the form SC-<CLASS>-<NNNN>. Two DomainErrors compare equal
// under errors.Is when their codes match, so callers can test against the
// sentinel values below regardless of details or cause.
type DomainError struct {
	Code    string // Error code (e.g., "SC-ARGS-4000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithDetailsf is WithDetails with fmt.Sprintf formatting.
func (e *DomainError) WithDetailsf(format string, args ...any) *DomainError {
	return e.WithDetails(fmt.Sprintf(format, args...))
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Argument Errors (ARGS)
// ============================================================================

var (
	// ErrInvalidArgument indicates an unknown configuration key, a nil
	// source or destination, or a value of the wrong type.
	ErrInvalidArgument = NewDomainError("SC-ARGS-4000", "invalid argument")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternalFatal indicates a condition the runtime cannot continue from.
	ErrInternalFatal = NewDomainError("SC-SYS-5000", "internal fatal error")

	// ErrNotInitialized indicates finalize was called more times than initialize.
	ErrNotInitialized = NewDomainError("SC-SYS-5001", "runtime not initialized")

	// ErrInsufficientMemory indicates a resource allocation failed.
	ErrInsufficientMemory = NewDomainError("SC-SYS-5070", "insufficient memory")
)

// ============================================================================
// Subsystem Errors (SUBS)
// ============================================================================

var (
	// ErrSubsystemInit wraps a failure returned by an external subsystem's
	// initialize hook.
	ErrSubsystemInit = NewDomainError("SC-SUBS-5020", "subsystem initialization failed")

	// ErrSubsystemFinalize wraps a failure returned by an external
	// subsystem's finalize hook.
	ErrSubsystemFinalize = NewDomainError("SC-SUBS-5021", "subsystem finalization failed")
)
