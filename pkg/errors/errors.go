// Package errors provides the coded errors explaintext returns at its
// boundaries: decoding explanation JSON, loading config, reading CLI input
// and serving HTTP.
//
// # Error Codes
//
// Codes group by prefix:
//   - INVALID_*: the caller supplied bad input (HTTP 400, exit status 2)
//   - *NOT_FOUND: a file or a part of the explanation is missing
//   - NETWORK_ERROR: a remote cache backend could not be reached
//   - INTERNAL_ERROR: anything else
//
// # Paths
//
// Errors about one value inside an explanation carry the JSON path of that
// value, e.g. "targets[0].feature_weights.pos[2]". Decoders build it from
// the inside out with [At]:
//
//	if err := ValidateSign(sign); err != nil {
//	    return errors.At(err, "feature[%d]", i)
//	}
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidGlyphs, "unknown glyph set: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidGlyphs) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidGlyphs  Code = "INVALID_GLYPHS"
	ErrCodeInvalidFeature Code = "INVALID_FEATURE"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Missing resources
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Cache backends
	ErrCodeNetwork Code = "NETWORK_ERROR"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Path    string // JSON path of the offending value, if any
	Cause   error  // Underlying error (optional)
}

// Error formats e as "CODE: path: message: cause", leaving out empty parts.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	if e.Path != "" {
		b.WriteString(": ")
		b.WriteString(e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// At prefixes the path of err with the formatted segment. An *Error is
// copied with the joined path; any other error is wrapped as
// "segment: err". At returns nil for a nil err.
//
// Segments join with "." unless the inner path starts with an index:
// At(At(err, "[2]"), "pos") has path "pos[2]".
func At(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	segment := fmt.Sprintf(format, args...)
	e, ok := err.(*Error)
	if !ok {
		return fmt.Errorf("%s: %w", segment, err)
	}
	out := *e
	out.Path = joinPath(segment, e.Path)
	return &out
}

func joinPath(parent, child string) string {
	switch {
	case child == "":
		return parent
	case parent == "", strings.HasPrefix(child, "["):
		return parent + child
	}
	return parent + "." + child
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// PathOf returns the JSON path carried by err, or "".
func PathOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Path
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, led by the
// path when there is one. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Path != "" {
			return e.Path + ": " + e.Message
		}
		return e.Message
	}
	return err.Error()
}

// IsInvalid reports whether err carries one of the INVALID_* codes.
// Callers use it to tell bad input apart from internal failures.
func IsInvalid(err error) bool {
	return strings.HasPrefix(string(GetCode(err)), "INVALID_")
}
