package sqldata

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched with errors.Is.
var (
	// ErrUnsupported is returned when a value domain is not available
	// on the target dialect.
	ErrUnsupported = errors.New("sqldata: type not supported on dialect")

	// ErrParse is returned when a database value cannot be decoded
	// into its Go representation.
	ErrParse = errors.New("sqldata: cannot parse value")
)

// is reports whether any error in err's tree has concrete type E.
func is[E error](err error) bool {
	var e E
	return errors.As(err, &e)
}

// UnsupportedTypeError reports that a value domain has no representation
// on the given dialect.
type UnsupportedTypeError struct {
	Type    Type
	Dialect string
}

// Error returns the error string.
func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("sqldata: type %s not supported on dialect %q", e.Type, e.Dialect)
}

// Is makes errors.Is(err, ErrUnsupported) match wrapped
// *UnsupportedTypeError values.
func (e *UnsupportedTypeError) Is(err error) bool {
	return err == ErrUnsupported
}

// NewUnsupportedTypeError returns an UnsupportedTypeError for the type
// and dialect pair.
func NewUnsupportedTypeError(t Type, dialect string) *UnsupportedTypeError {
	return &UnsupportedTypeError{Type: t, Dialect: dialect}
}

// IsUnsupported reports whether err marks a value domain unavailable
// on the target dialect.
func IsUnsupported(err error) bool {
	return is[*UnsupportedTypeError](err) || errors.Is(err, ErrUnsupported)
}

// ParseError reports a database value that could not be decoded.
type ParseError struct {
	Type  Type   // Value domain being decoded
	Input string // Offending input (may be truncated)
	Err   error  // Underlying cause
}

// Error returns the error string.
func (e *ParseError) Error() string {
	return fmt.Sprintf("sqldata: parse %s %q: %v", e.Type, e.Input, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) match wrapped *ParseError values.
func (e *ParseError) Is(err error) bool {
	return err == ErrParse
}

// newParseError returns a new ParseError with the input truncated to a
// reasonable length for error messages.
func newParseError(t Type, input string, err error) *ParseError {
	if len(input) > 64 {
		input = input[:64] + "..."
	}
	return &ParseError{Type: t, Input: input, Err: err}
}

// IsParse reports whether err marks a database value that failed to
// decode.
func IsParse(err error) bool {
	return is[*ParseError](err) || errors.Is(err, ErrParse)
}

// ValidationError represents a validation error for a named value.
type ValidationError struct {
	Name string // Value or column name
	Err  error  // Underlying cause
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("sqldata: validator failed for %q: %s", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError wraps err as a validation failure of the named
// value or column.
func NewValidationError(name string, err error) *ValidationError {
	return &ValidationError{Name: name, Err: err}
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	return is[*ValidationError](err)
}

// ConversionError reports a Go value that cannot be converted to the
// driver representation of its value domain.
type ConversionError struct {
	Type Type
	Err  error
}

// Error returns the error string.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("sqldata: convert %s: %v", e.Type, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// IsConversionError reports whether err carries a *ConversionError.
func IsConversionError(err error) bool {
	return is[*ConversionError](err)
}

// expectedError formats the "got X, want Y" message shared by Scan
// implementations in this package.
func expectedError(got any, want ...string) error {
	return fmt.Errorf("unexpected type %T, expected %s", got, strings.Join(want, " or "))
}
