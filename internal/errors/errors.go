// Package errors defines the stable error code system for ytgit.
package errors

import (
	"errors"
	"fmt"
	"io"
)

// Code is a stable error code string.
type Code string

// Error codes. Stable public contract: scripts may match on these.
const (
	EUsage    Code = "E_USAGE"
	EInternal Code = "E_INTERNAL"

	// Configuration
	EInvalidUserConfig Code = "E_INVALID_USER_CONFIG"
	EHostNotConfigured Code = "E_HOST_NOT_CONFIGURED" // an action needs the tracker host but none is set

	// Ticket ingestion
	ETicketReadFailed Code = "E_TICKET_READ_FAILED" // ticket file missing or unreadable
	EInvalidTicket    Code = "E_INVALID_TICKET"     // ticket document is malformed or lacks an id

	// Branch derivation
	EMissingField Code = "E_MISSING_FIELD" // required custom field (App, Type) absent or null

	// Git
	EGitNotInstalled     Code = "E_GIT_NOT_INSTALLED"
	ENoRepo              Code = "E_NO_REPO"
	EInvalidBranchName   Code = "E_INVALID_BRANCH_NAME"   // git check-ref-format rejected the derived name
	EBranchCreateFailed  Code = "E_BRANCH_CREATE_FAILED"  // git checkout -b exited non-zero
	EOpenerNotConfigured Code = "E_OPENER_NOT_CONFIGURED" // no usable opener executable
	EOpenFailed          Code = "E_OPEN_FAILED"           // opener exited non-zero

	// Actions
	EUnknownAction  Code = "E_UNKNOWN_ACTION"  // message command is not a known action kind
	EInvalidMessage Code = "E_INVALID_MESSAGE" // message payload does not match its command
	ERender         Code = "E_RENDER_FAILED"
)

// Error is the standard error type for ytgit errors.
type Error struct {
	Code    Code
	Msg     string
	Cause   error
	Details map[string]string // optional structured context
}

// Error returns the stable error format: "CODE: message".
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCodeError wraps an error with an explicit process exit code.
type ExitCodeError struct {
	Err  error
	Code int
}

func (e *ExitCodeError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

func (e *ExitCodeError) ExitCode() int {
	return e.Code
}

// WithExitCode wraps err with a specific process exit code.
func WithExitCode(err error, code int) error {
	return &ExitCodeError{Err: err, Code: code}
}

// New creates a new Error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Msg: msg}
}

// NewWithDetails creates a new Error with code, message, and details.
// The details map is copied (nil if empty).
func NewWithDetails(code Code, msg string, details map[string]string) error {
	return &Error{Code: code, Msg: msg, Details: copyDetails(details)}
}

// Wrap creates a new Error wrapping an underlying error.
func Wrap(code Code, msg string, err error) error {
	return &Error{Code: code, Msg: msg, Cause: err}
}

// WrapWithDetails creates a new Error wrapping an underlying error with details.
// The details map is copied (nil if empty).
func WrapWithDetails(code Code, msg string, err error, details map[string]string) error {
	return &Error{Code: code, Msg: msg, Cause: err, Details: copyDetails(details)}
}

// GetCode extracts the error code from an error, or empty string if not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// AsError returns (*Error, true) if err is or wraps an *Error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func copyDetails(details map[string]string) map[string]string {
	if len(details) == 0 {
		return nil
	}
	cp := make(map[string]string, len(details))
	for k, v := range details {
		cp[k] = v
	}
	return cp
}

// ExitCode returns the appropriate exit code for an error.
// Returns 0 if err is nil, 2 for E_USAGE, 1 for all other errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec interface{ ExitCode() int }
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	if GetCode(err) == EUsage {
		return 2
	}
	return 1
}

// Print writes the error to w in the stable stderr format:
//
//	error_code: <CODE>
//	<message>
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}
	if e, ok := AsError(err); ok {
		_, _ = fmt.Fprintf(w, "error_code: %s\n", e.Code)
		_, _ = fmt.Fprintln(w, e.Msg)
		return
	}
	_, _ = fmt.Fprintln(w, err.Error())
}
