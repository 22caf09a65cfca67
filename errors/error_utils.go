// Package errors provides the coded error type used across go-txcore,
// plus helpers for categorizing errors in logs and metrics.
package errors

import (
	"context"
	"errors"
)

// IsContextError determines if an error is related to context cancellation or deadline.
//
// Parameters:
//   - err: Error to check
//
// Returns:
//   - bool: true if error is context-related
func IsContextError(err error) bool {
	if err == nil {
		return false
	}

	// Check standard context errors
	if err == context.Canceled || err == context.DeadlineExceeded {
		return true
	}

	// Check for wrapped context errors
	var tErr *Error
	if As(err, &tErr) {
		if tErr.Code() == ERR_CONTEXT_CANCELED || tErr.Code() == ERR_CONTEXT {
			return true
		}
	}

	// Check if the wrapped error is a context error
	if Is(err, context.Canceled) || Is(err, context.DeadlineExceeded) {
		return true
	}

	return false
}

// GetErrorCategory returns a string representing the category of the error.
// This is useful for logging and metrics.
//
// Parameters:
//   - err: Error to categorize
//
// Returns:
//   - string: Error category (e.g., "context", "transaction", "utxo", "unknown")
func GetErrorCategory(err error) string {
	if err == nil {
		return "none"
	}

	if IsContextError(err) {
		return "context"
	}

	var tErr *Error
	if As(err, &tErr) {
		// Group by error code ranges
		code := tErr.Code()
		switch {
		case code >= 30 && code <= 49:
			return "transaction"
		case code >= 60 && code <= 69:
			return "storage"
		case code >= 70 && code <= 79:
			return "utxo"
		case code == ERR_INVALID_ARGUMENT || code == ERR_CONFIGURATION:
			return "argument"
		case code == ERR_NOT_FOUND:
			return "not_found"
		case code == ERR_PROCESSING:
			return "processing"
		}
	}

	return "unknown"
}

// unwrapAll walks to the innermost cause of an error chain.
func unwrapAll(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}

		err = unwrapped
	}
}

// RootCause returns the innermost error in a wrap chain, or nil for nil.
func RootCause(err error) error {
	if err == nil {
		return nil
	}

	return unwrapAll(err)
}
