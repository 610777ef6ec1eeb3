package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// SumgenError defines the base interface for all generator errors
type SumgenError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode represents the type of error that occurred
type ErrorCode int

const (
	// Schema error types
	UnknownErrorCode ErrorCode = iota
	SyntaxErrorCode
	MalformedInterfaceCode
	MalformedVariantCode
	InheritanceDepthCode
	UnresolvedReceiverCode
	DuplicateInterfaceCode

	// Tooling error types
	ConfigErrorCode
	FileSystemErrorCode
	TemplateErrorCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case SyntaxErrorCode:
		return "SyntaxError"
	case MalformedInterfaceCode:
		return "MalformedInterface"
	case MalformedVariantCode:
		return "MalformedVariant"
	case InheritanceDepthCode:
		return "UnsupportedInheritanceDepth"
	case UnresolvedReceiverCode:
		return "UnresolvedReceiver"
	case DuplicateInterfaceCode:
		return "DuplicateInterface"
	case ConfigErrorCode:
		return "ConfigError"
	case FileSystemErrorCode:
		return "FileSystemError"
	case TemplateErrorCode:
		return "TemplateError"
	default:
		return "UnknownError"
	}
}

// SourceLocation represents where an error occurred in a declaration file
type SourceLocation struct {
	File   string // file path where the error occurred
	Line   int    // line number (1-based)
	Column int    // column number (1-based)
}

// String returns a formatted string representation of the location
func (s SourceLocation) String() string {
	if s.File == "" {
		return "unknown location"
	}
	if s.Line == 0 {
		return s.File
	}
	if s.Column == 0 {
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// IsEmpty returns true if the location has no useful information
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError provides a common implementation of the SumgenError interface
type BaseError struct {
	Code        ErrorCode              // type of error
	Message     string                 // error message
	Loc         SourceLocation         // where the error occurred
	Cause       error                  // underlying error cause
	ContextData map[string]interface{} // additional context information
	Hints       []string               // helpful suggestions for fixing the declaration
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Loc.IsEmpty() {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Loc.String(), e.Message)
}

// ErrorCode returns the error code
func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

// Location returns the source location where the error occurred
func (e *BaseError) Location() SourceLocation {
	return e.Loc
}

// Context returns the error context data
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return make(map[string]interface{})
	}
	return e.ContextData
}

// Suggestions returns helpful suggestions for fixing the error
func (e *BaseError) Suggestions() []string {
	return e.Hints
}

// Unwrap returns the underlying error cause for error chain inspection
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// WithLocation adds location information to the error
func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

// WithCause adds an underlying error cause
func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

// WithContext adds context data to the error
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion adds a helpful suggestion for fixing the error
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// WithSuggestions adds multiple helpful suggestions
func (e *BaseError) WithSuggestions(suggestions ...string) *BaseError {
	e.Hints = append(e.Hints, suggestions...)
	return e
}

// New creates a new BaseError with the specified code and message
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Hints:   make([]string, 0),
	}
}

// Newf creates a new BaseError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new error that wraps another error
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Hints:   make([]string, 0),
	}
}

// Wrapf creates a new error that wraps another error with formatted message
func Wrapf(code ErrorCode, cause error, format string, args ...interface{}) *BaseError {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// As finds the first SumgenError in an error chain
func As(err error) (SumgenError, bool) {
	var genErr SumgenError
	if stderrors.As(err, &genErr) {
		return genErr, true
	}
	return nil, false
}

// CodeOf returns the classification of an error chain, or UnknownErrorCode
func CodeOf(err error) ErrorCode {
	if genErr, ok := As(err); ok {
		return genErr.ErrorCode()
	}
	return UnknownErrorCode
}

// ErrorList collects independent failures from one run so every file's
// diagnostics surface before the run aborts
type ErrorList struct {
	Errors []error
}

// Add appends an error to the collection; nil is ignored
func (l *ErrorList) Add(err error) {
	if err != nil {
		l.Errors = append(l.Errors, err)
	}
}

// IsEmpty returns true if there are no errors
func (l *ErrorList) IsEmpty() bool {
	return len(l.Errors) == 0
}

// Count returns the number of errors
func (l *ErrorList) Count() int {
	return len(l.Errors)
}

// HasCode returns true if any collected error carries the specified code
func (l *ErrorList) HasCode(code ErrorCode) bool {
	for _, err := range l.Errors {
		if CodeOf(err) == code {
			return true
		}
	}
	return false
}

// Err returns nil when the list is empty, the sole error when one was
// collected, and the list itself otherwise
func (l *ErrorList) Err() error {
	switch len(l.Errors) {
	case 0:
		return nil
	case 1:
		return l.Errors[0]
	default:
		return l
	}
}

// Error implements the error interface
func (l *ErrorList) Error() string {
	if len(l.Errors) == 0 {
		return "no errors"
	}

	if len(l.Errors) == 1 {
		return l.Errors[0].Error()
	}

	var messages []string
	for i, err := range l.Errors {
		messages = append(messages, fmt.Sprintf("  %d. %s", i+1, err.Error()))
	}

	return fmt.Sprintf("multiple errors (%d total):\n%s", len(l.Errors), strings.Join(messages, "\n"))
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (l *ErrorList) Unwrap() []error {
	return l.Errors
}
