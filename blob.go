package sqldata

import (
	"database/sql/driver"
	"fmt"
)

// Blob is a byte buffer stored in a binary column. Scanning copies the
// driver buffer and coerces string results to bytes, so values read
// from the database always arrive as a buffer regardless of how they
// were written or which driver returned them.
type Blob []byte

// Value implements the driver.Valuer interface.
func (b Blob) Value() (driver.Value, error) {
	if b == nil {
		return nil, nil
	}
	return []byte(b), nil
}

// Scan implements the sql.Scanner interface.
func (b *Blob) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		*b = nil
		return nil
	case []byte:
		// Drivers reuse the row buffer between scans.
		*b = append((*b)[:0], src...)
		return nil
	case string:
		*b = append((*b)[:0], src...)
		return nil
	default:
		return newParseError(TypeBytes, fmt.Sprint(src), expectedError(src, "[]byte", "string"))
	}
}

// Bytes returns the buffer as a plain byte slice.
func (b Blob) Bytes() []byte { return []byte(b) }

// Binary column size classes. On dialects with sized binary types the
// schema layer selects the narrowest class that fits the column size;
// other dialects ignore the class.
const (
	// BlobSizeTiny fits in a TINYBLOB column.
	BlobSizeTiny int64 = 1<<8 - 1
	// BlobSizeDefault fits in a BLOB column.
	BlobSizeDefault int64 = 1<<16 - 1
	// BlobSizeMedium fits in a MEDIUMBLOB column.
	BlobSizeMedium int64 = 1<<24 - 1
	// BlobSizeLong fits in a LONGBLOB column.
	BlobSizeLong int64 = 1<<32 - 1
)
