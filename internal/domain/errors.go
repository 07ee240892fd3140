package domain

import (
	"errors"
	"fmt"
)

// Code classifies an expected failure.
type Code int

const (
	CodeUnknown Code = iota
	CodeNetwork
	CodeAPIKey
	CodeCityNotFound
	CodeServer
	CodeInvalidInput
	CodeTimeout
)

func (c Code) String() string {
	switch c {
	case CodeNetwork:
		return "network"
	case CodeAPIKey:
		return "api_key"
	case CodeCityNotFound:
		return "city_not_found"
	case CodeServer:
		return "server"
	case CodeInvalidInput:
		return "invalid_input"
	case CodeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is a classified failure from the data layer.
type Error struct {
	Code    Code
	Message string // internal message for logs
	// Status is the HTTP status for CodeServer and CodeUnknown responses.
	Status int
	// Suggestion is a known city name close to a query that was not found.
	Suggestion string
	Cause      error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code.String()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

var (
	ErrUnknown      = &Error{Code: CodeUnknown}
	ErrNetwork      = &Error{Code: CodeNetwork}
	ErrAPIKey       = &Error{Code: CodeAPIKey}
	ErrCityNotFound = &Error{Code: CodeCityNotFound}
	ErrServer       = &Error{Code: CodeServer}
	ErrInvalidInput = &Error{Code: CodeInvalidInput}
	ErrTimeout      = &Error{Code: CodeTimeout}
)

// New returns an error with code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap returns an error with code and message that wraps cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// ServerError reports a 5xx response.
func ServerError(status int) *Error {
	return &Error{Code: CodeServer, Message: "Server error occurred", Status: status}
}

// AsError extracts the classified error from err, classifying anything
// else as CodeUnknown.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(CodeUnknown, "unexpected error", err)
}
