package sqldata

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// JSON wraps a Go value that is stored as a JSON document. The wrapped
// value is marshaled on write and unmarshaled on read.
//
// Whether the column holds json or jsonb is a schema decision; the
// wire encoding is the same. On dialects with a single JSON type both
// map to it, and on MSSQL the document is stored as a JSON string in
// an nvarchar column.
type JSON[T any] struct {
	V T
}

// NewJSON returns a JSON wrapper around v.
func NewJSON[T any](v T) JSON[T] {
	return JSON[T]{V: v}
}

// Value implements the driver.Valuer interface.
func (j JSON[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.V)
	if err != nil {
		return nil, &ConversionError{Type: TypeJSON, Err: err}
	}
	return b, nil
}

// Scan implements the sql.Scanner interface.
func (j *JSON[T]) Scan(src any) error {
	var b []byte
	switch src := src.(type) {
	case nil:
		var zero T
		j.V = zero
		return nil
	case []byte:
		b = src
	case string:
		b = []byte(src)
	default:
		return newParseError(TypeJSON, fmt.Sprint(src), expectedError(src, "[]byte", "string"))
	}
	if err := json.Unmarshal(b, &j.V); err != nil {
		return newParseError(TypeJSON, string(b), err)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (j JSON[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.V)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (j *JSON[T]) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &j.V)
}

// RawJSON is a pre-encoded JSON document. It is written and read
// without re-encoding, only validity is enforced.
type RawJSON []byte

// String returns the document text.
func (r RawJSON) String() string { return string(r) }

// Value implements the driver.Valuer interface.
func (r RawJSON) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	if !json.Valid(r) {
		return nil, &ConversionError{Type: TypeJSON, Err: errors.New("invalid JSON document")}
	}
	return []byte(r), nil
}

// Scan implements the sql.Scanner interface.
func (r *RawJSON) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		*r = nil
		return nil
	case []byte:
		*r = append((*r)[:0], src...)
		return nil
	case string:
		*r = append((*r)[:0], src...)
		return nil
	default:
		return newParseError(TypeJSON, fmt.Sprint(src), expectedError(src, "[]byte", "string"))
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (r RawJSON) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (r *RawJSON) UnmarshalJSON(b []byte) error {
	*r = append((*r)[:0], b...)
	return nil
}
