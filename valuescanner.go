package sqldata

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"fmt"
	"reflect"

	"github.com/vmihailenco/msgpack/v5"
)

// ValueScanner is the interface that groups the Value and the Scan
// methods.
type ValueScanner interface {
	driver.Valuer
	sql.Scanner
}

// TypeValueScanner is an external codec for values of type T. It
// separates the database representation of a type from its Go
// representation without requiring methods on T itself.
type TypeValueScanner[T any] interface {
	// Value returns the driver value of a T.
	Value(T) (driver.Value, error)
	// ScanValue returns a new scan destination for one database value.
	ScanValue() ValueScanner
	// FromValue converts the populated scan destination into a T.
	FromValue(driver.Value) (T, error)
}

// ValueScannerFunc implements TypeValueScanner with explicit encode
// and decode functions. S is the intermediate scan destination, e.g.
// *sql.NullString.
type ValueScannerFunc[T any, S ValueScanner] struct {
	V func(T) (driver.Value, error)
	S func(S) (T, error)
}

// Value implements the TypeValueScanner.Value method.
func (f ValueScannerFunc[T, S]) Value(v T) (driver.Value, error) {
	return f.V(v)
}

// ScanValue implements the TypeValueScanner.ScanValue method.
func (f ValueScannerFunc[T, S]) ScanValue() ValueScanner {
	return newPointer[S]()
}

// FromValue implements the TypeValueScanner.FromValue method.
func (f ValueScannerFunc[T, S]) FromValue(v driver.Value) (t T, err error) {
	s, ok := v.(S)
	if !ok {
		return t, fmt.Errorf("sqldata: unexpected input for FromValue: %T", v)
	}
	return f.S(s)
}

// TextValueScanner stores T using its text form. T must implement
// both encoding.TextMarshaler and encoding.TextUnmarshaler.
type TextValueScanner[T interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
}] struct{}

// Value implements the TypeValueScanner.Value method.
func (TextValueScanner[T]) Value(v T) (driver.Value, error) {
	return v.MarshalText()
}

// ScanValue implements the TypeValueScanner.ScanValue method.
func (TextValueScanner[T]) ScanValue() ValueScanner {
	return &sql.NullString{}
}

// FromValue implements the TypeValueScanner.FromValue method.
func (TextValueScanner[T]) FromValue(v driver.Value) (t T, err error) {
	s, ok := v.(*sql.NullString)
	if !ok {
		return t, fmt.Errorf("sqldata: unexpected input for FromValue: %T", v)
	}
	t = newPointer[T]()
	if s.Valid {
		err = t.UnmarshalText([]byte(s.String))
	}
	return t, err
}

// BinaryValueScanner stores T using its binary form. T must implement
// both encoding.BinaryMarshaler and encoding.BinaryUnmarshaler.
type BinaryValueScanner[T interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}] struct{}

// Value implements the TypeValueScanner.Value method.
func (BinaryValueScanner[T]) Value(v T) (driver.Value, error) {
	return v.MarshalBinary()
}

// ScanValue implements the TypeValueScanner.ScanValue method.
func (BinaryValueScanner[T]) ScanValue() ValueScanner {
	return &sql.NullString{}
}

// FromValue implements the TypeValueScanner.FromValue method.
func (BinaryValueScanner[T]) FromValue(v driver.Value) (t T, err error) {
	s, ok := v.(*sql.NullString)
	if !ok {
		return t, fmt.Errorf("sqldata: unexpected input for FromValue: %T", v)
	}
	t = newPointer[T]()
	if s.Valid {
		err = t.UnmarshalBinary([]byte(s.String))
	}
	return t, err
}

// MsgpackValueScanner stores any T in a binary column using the
// MessagePack encoding. It suits structured values that should stay
// compact and do not need to be queried in place.
type MsgpackValueScanner[T any] struct{}

// Value implements the TypeValueScanner.Value method.
func (MsgpackValueScanner[T]) Value(v T) (driver.Value, error) {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return nil, &ConversionError{Type: TypeBytes, Err: err}
	}
	return b, nil
}

// ScanValue implements the TypeValueScanner.ScanValue method.
func (MsgpackValueScanner[T]) ScanValue() ValueScanner {
	return &NullBytes{}
}

// FromValue implements the TypeValueScanner.FromValue method.
func (MsgpackValueScanner[T]) FromValue(v driver.Value) (t T, err error) {
	b, ok := v.(*NullBytes)
	if !ok {
		return t, fmt.Errorf("sqldata: unexpected input for FromValue: %T", v)
	}
	if !b.Valid {
		return t, nil
	}
	if err := msgpack.Unmarshal(b.Bytes, &t); err != nil {
		return t, newParseError(TypeBytes, fmt.Sprintf("% x", b.Bytes), err)
	}
	return t, nil
}

// NullBytes is a nullable byte buffer that satisfies ValueScanner.
type NullBytes struct {
	Bytes []byte
	Valid bool // Valid is true if Bytes is not NULL.
}

// Scan implements the sql.Scanner interface.
func (n *NullBytes) Scan(src any) error {
	n.Bytes, n.Valid = nil, false
	switch src := src.(type) {
	case nil:
		return nil
	case []byte:
		n.Bytes = append(n.Bytes, src...)
	case string:
		n.Bytes = []byte(src)
	default:
		return expectedError(src, "[]byte", "string")
	}
	n.Valid = true
	return nil
}

// Value implements the driver.Valuer interface.
func (n NullBytes) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Bytes, nil
}

// newPointer returns the zero T, allocated if T is a pointer type so
// that unmarshal methods have a target.
func newPointer[T any]() (t T) {
	if rt := reflect.TypeOf(t); rt != nil && rt.Kind() == reflect.Pointer {
		t = reflect.New(rt.Elem()).Interface().(T)
	}
	return t
}
