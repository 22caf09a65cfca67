package errors

import (
	"errors"
	"fmt"
	reflect "reflect"
	"strings"
)

// ERR identifies a class of failure. Codes are grouped in ranges so that
// callers can reason about a whole family at once: 0-9 generic,
// 30-49 transaction, 60-69 storage, 70-79 utxo.
type ERR int32

const (
	ERR_UNKNOWN          ERR = 0
	ERR_INVALID_ARGUMENT ERR = 1
	ERR_NOT_FOUND        ERR = 2
	ERR_PROCESSING       ERR = 3
	ERR_CONFIGURATION    ERR = 4
	ERR_CONTEXT          ERR = 5
	ERR_CONTEXT_CANCELED ERR = 6
	ERR_ERROR            ERR = 9

	ERR_TX_NOT_FOUND      ERR = 30
	ERR_TX_INVALID        ERR = 31
	ERR_TX_ALREADY_EXISTS ERR = 32
	ERR_TX_ERROR          ERR = 39

	ERR_STORAGE_ERROR ERR = 60

	ERR_SPENT          ERR = 70
	ERR_UTXO_NOT_FOUND ERR = 71
	ERR_LOCKTIME       ERR = 72
)

// ERR_name maps each code to its declared name.
var ERR_name = map[int32]string{
	0:  "ERR_UNKNOWN",
	1:  "ERR_INVALID_ARGUMENT",
	2:  "ERR_NOT_FOUND",
	3:  "ERR_PROCESSING",
	4:  "ERR_CONFIGURATION",
	5:  "ERR_CONTEXT",
	6:  "ERR_CONTEXT_CANCELED",
	9:  "ERR_ERROR",
	30: "ERR_TX_NOT_FOUND",
	31: "ERR_TX_INVALID",
	32: "ERR_TX_ALREADY_EXISTS",
	39: "ERR_TX_ERROR",
	60: "ERR_STORAGE_ERROR",
	70: "ERR_SPENT",
	71: "ERR_UTXO_NOT_FOUND",
	72: "ERR_LOCKTIME",
}

// ERR_value is the inverse of ERR_name.
var ERR_value = map[string]int32{
	"ERR_UNKNOWN":           0,
	"ERR_INVALID_ARGUMENT":  1,
	"ERR_NOT_FOUND":         2,
	"ERR_PROCESSING":        3,
	"ERR_CONFIGURATION":     4,
	"ERR_CONTEXT":           5,
	"ERR_CONTEXT_CANCELED":  6,
	"ERR_ERROR":             9,
	"ERR_TX_NOT_FOUND":      30,
	"ERR_TX_INVALID":        31,
	"ERR_TX_ALREADY_EXISTS": 32,
	"ERR_TX_ERROR":          39,
	"ERR_STORAGE_ERROR":     60,
	"ERR_SPENT":             70,
	"ERR_UTXO_NOT_FOUND":    71,
	"ERR_LOCKTIME":          72,
}

// Enum returns the declared name of the code, or ERR(n) for a code that
// was never declared.
func (e ERR) Enum() string {
	if name, ok := ERR_name[int32(e)]; ok {
		return name
	}

	return fmt.Sprintf("ERR(%d)", int32(e))
}

func (e ERR) String() string {
	return e.Enum()
}

type Error struct {
	code       ERR
	message    string
	wrappedErr error
}

type Interface interface {
	Error() string
	Is(target error) bool
	As(target interface{}) bool
	Unwrap() error

	Code() ERR
	Message() string
	WrappedErr() error
}

func (e *Error) Error() string {
	// Error() can be called on wrapped errors, which can be nil, for example predefined errors
	if e == nil {
		return "<nil>"
	}

	if e.WrappedErr() == nil {
		return fmt.Sprintf("Error: %s (error code: %d), Message: %v", e.code.Enum(), e.code, e.message)
	}

	return fmt.Sprintf("Error: %s (error code: %d), Message: %v, Wrapped err: %v", e.code.Enum(), e.code, e.message, e.wrappedErr)
}

// Is reports whether error codes match.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}

	targetError, ok := target.(*Error)
	if !ok {
		return strings.Contains(e.Error(), target.Error())
	}

	if e.code == targetError.code {
		return true
	}

	if e.wrappedErr == nil {
		return false
	}

	// Unwrap the current error and recursively call Is on the unwrapped error
	if unwrapped := errors.Unwrap(e); unwrapped != nil {
		if ue, ok := unwrapped.(*Error); ok {
			return ue.Is(target)
		}
	}

	return false
}

func (e *Error) As(target interface{}) bool {
	if e == nil {
		return false
	}

	// Try to assign this error to the target if the types are compatible
	if targetErr, ok := target.(**Error); ok {
		*targetErr = e
		return true
	}

	// Recursively check the wrapped error if there is one
	if e.wrappedErr != nil {
		// use reflect to see if the value is a typed nil. If it is, stop here
		if v := reflect.ValueOf(e.wrappedErr); v.Kind() == reflect.Ptr && v.IsNil() {
			return false
		}

		return errors.As(e.wrappedErr, target)
	}

	return false
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.wrappedErr
}

func (e *Error) Code() ERR {
	if e == nil {
		return ERR_UNKNOWN
	}

	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}

	return e.message
}

func (e *Error) WrappedErr() error {
	if e == nil {
		return nil
	}

	return e.wrappedErr
}

// New builds an *Error with the given code. The message is treated as a
// fmt format string for the remaining params, except that a trailing error
// param becomes the wrapped cause instead of a format argument.
func New(code ERR, message string, params ...interface{}) *Error {
	var wErr *Error

	// Extract the wrapped error, if present
	if len(params) > 0 {
		lastParam := params[len(params)-1]

		switch err := lastParam.(type) {
		case *Error:
			wErr = err
			params = params[:len(params)-1]
		case error:
			wErr = &Error{message: err.Error()}
			params = params[:len(params)-1]
		}
	}

	// Format the message with the remaining parameters
	if len(params) > 0 {
		//nolint:forbidigo
		err := fmt.Errorf(message, params...)
		message = err.Error()
	}

	// Check the code is one of the declared constants
	if _, ok := ERR_name[int32(code)]; !ok {
		returnErr := &Error{
			code:    code,
			message: "invalid error code",
		}
		if wErr != nil {
			returnErr.wrappedErr = wErr
		}

		return returnErr
	}

	returnErr := &Error{
		code:    code,
		message: message,
	}
	if wErr != nil {
		returnErr.wrappedErr = wErr
	}

	return returnErr
}

func Join(errs ...error) error {
	var messages []string

	for _, err := range errs {
		if err != nil {
			messages = append(messages, err.Error())
		}
	}

	if len(messages) == 0 {
		return nil
	}

	return errors.New(strings.Join(messages, ", "))
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	// cycle through the wrapped errors and check if any of them match the target
	if castedErr, ok := err.(*Error); ok {
		if castedErr.As(target) {
			return true
		}

		if castedErr.wrappedErr != nil {
			return errors.As(castedErr.wrappedErr, target)
		}
	}

	return errors.As(err, target)
}
