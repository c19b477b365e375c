package sqldata

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
)

// NewUUID returns a random (version 4) UUID. It is the default value
// function for UUID columns.
func NewUUID() uuid.UUID {
	return uuid.New()
}

// NewSortableUUID returns a time-ordered (version 7) UUID. Sortable
// identifiers keep b-tree indexes append-mostly.
func NewSortableUUID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// BinaryUUID stores a UUID in its 16-byte binary form instead of the
// 36-character text form. On dialects without a native uuid type this
// halves the column size.
type BinaryUUID uuid.UUID

// ParseBinaryUUID parses the textual UUID form.
func ParseBinaryUUID(s string) (BinaryUUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return BinaryUUID{}, newParseError(TypeUUID, s, err)
	}
	return BinaryUUID(u), nil
}

// UUID returns the value as a uuid.UUID.
func (b BinaryUUID) UUID() uuid.UUID { return uuid.UUID(b) }

// String returns the canonical textual form.
func (b BinaryUUID) String() string { return uuid.UUID(b).String() }

// IsZero reports if the value is the nil UUID.
func (b BinaryUUID) IsZero() bool { return b == BinaryUUID{} }

// Value implements the driver.Valuer interface.
func (b BinaryUUID) Value() (driver.Value, error) {
	if b.IsZero() {
		return nil, nil
	}
	return uuid.UUID(b).MarshalBinary()
}

// Scan implements the sql.Scanner interface. Both binary and textual
// sources are accepted.
func (b *BinaryUUID) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		*b = BinaryUUID{}
		return nil
	case []byte:
		if len(src) == 16 {
			u, err := uuid.FromBytes(src)
			if err != nil {
				return newParseError(TypeUUID, fmt.Sprintf("% x", src), err)
			}
			*b = BinaryUUID(u)
			return nil
		}
		u, err := uuid.ParseBytes(src)
		if err != nil {
			return newParseError(TypeUUID, string(src), err)
		}
		*b = BinaryUUID(u)
		return nil
	case string:
		u, err := uuid.Parse(src)
		if err != nil {
			return newParseError(TypeUUID, src, err)
		}
		*b = BinaryUUID(u)
		return nil
	default:
		return newParseError(TypeUUID, fmt.Sprint(src), expectedError(src, "[]byte", "string"))
	}
}

// MarshalText implements the encoding.TextMarshaler interface.
func (b BinaryUUID) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (b *BinaryUUID) UnmarshalText(text []byte) error {
	u, err := uuid.ParseBytes(text)
	if err != nil {
		return newParseError(TypeUUID, string(text), err)
	}
	*b = BinaryUUID(u)
	return nil
}
