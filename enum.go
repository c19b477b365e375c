package sqldata

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

// enumLabelMaxLen is the longest label the server accepts.
const enumLabelMaxLen = 63

// An EnumType describes a closed set of string values. Values created
// through it are restricted to that set on both write and read.
type EnumType struct {
	name   string
	values []string
	index  map[string]int
}

// NewEnumType returns an enum descriptor with the given name and
// allowed values. The name becomes the SQL type name on dialects with
// native enums. Empty, duplicate or overlong values are rejected.
func NewEnumType(name string, values ...string) (*EnumType, error) {
	if name == "" {
		return nil, errors.New("sqldata: enum type name cannot be empty")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("sqldata: enum %q has no values", name)
	}
	index := make(map[string]int, len(values))
	for i, v := range values {
		switch {
		case v == "":
			return nil, fmt.Errorf("sqldata: enum %q has an empty value", name)
		case len(v) > enumLabelMaxLen:
			return nil, fmt.Errorf("sqldata: enum %q value %q exceeds %d bytes", name, v, enumLabelMaxLen)
		}
		if _, ok := index[v]; ok {
			return nil, fmt.Errorf("sqldata: enum %q has duplicate value %q", name, v)
		}
		index[v] = i
	}
	return &EnumType{name: name, values: append([]string(nil), values...), index: index}, nil
}

// MustEnumType is like NewEnumType but panics on error. It simplifies
// package-level enum declarations.
func MustEnumType(name string, values ...string) *EnumType {
	t, err := NewEnumType(name, values...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the enum type name.
func (t *EnumType) Name() string { return t.name }

// Values returns the allowed values in declaration order.
func (t *EnumType) Values() []string {
	return append([]string(nil), t.values...)
}

// Contains reports whether s is one of the allowed values.
func (t *EnumType) Contains(s string) bool {
	_, ok := t.index[s]
	return ok
}

// Value returns an Enum holding s, or a ValidationError if s is not an
// allowed value.
func (t *EnumType) Value(s string) (Enum, error) {
	if !t.Contains(s) {
		return Enum{}, t.invalid(s)
	}
	return Enum{v: s, typ: t}, nil
}

// MustValue is like Value but panics on error.
func (t *EnumType) MustValue(s string) Enum {
	e, err := t.Value(s)
	if err != nil {
		panic(err)
	}
	return e
}

// New returns an empty Enum bound to the type, intended as a scan
// destination:
//
//	status := statusType.New()
//	err := rows.Scan(&status)
func (t *EnumType) New() *Enum {
	return &Enum{typ: t}
}

func (t *EnumType) invalid(s string) error {
	return NewValidationError(t.name, fmt.Errorf("value %q is not one of [%s]", s, strings.Join(t.values, ", ")))
}

// An Enum is a single enum value. The zero value is unbound and
// unusable; obtain values through an EnumType.
type Enum struct {
	v   string
	typ *EnumType
}

// String returns the enum value.
func (e Enum) String() string { return e.v }

// IsZero reports if the enum holds no value.
func (e Enum) IsZero() bool { return e.v == "" }

// Type returns the enum descriptor, or nil for an unbound value.
func (e Enum) Type() *EnumType { return e.typ }

// Value implements the driver.Valuer interface. Writing a value that
// is not part of the enum set fails.
func (e Enum) Value() (driver.Value, error) {
	if e.typ == nil {
		return nil, errors.New("sqldata: enum value is not bound to an enum type")
	}
	if !e.typ.Contains(e.v) {
		return nil, e.typ.invalid(e.v)
	}
	return e.v, nil
}

// Scan implements the sql.Scanner interface. Values outside the enum
// set are rejected.
func (e *Enum) Scan(src any) error {
	if e.typ == nil {
		return errors.New("sqldata: enum scan target is not bound to an enum type")
	}
	var s string
	switch src := src.(type) {
	case nil:
		e.v = ""
		return nil
	case string:
		s = src
	case []byte:
		s = string(src)
	default:
		return newParseError(TypeEnum, fmt.Sprint(src), expectedError(src, "string", "[]byte"))
	}
	if !e.typ.Contains(s) {
		return e.typ.invalid(s)
	}
	e.v = s
	return nil
}

// MarshalText implements the encoding.TextMarshaler interface.
func (e Enum) MarshalText() ([]byte, error) {
	return []byte(e.v), nil
}
