package sqldata

import (
	"database/sql/driver"

	"github.com/lib/pq"
)

// Array column types. Encoding and decoding delegate to the pq array
// machinery, which implements the PostgreSQL array literal format
// including quoting and NULL elements.

// TextArray maps to text[].
type TextArray []string

// Value implements the driver.Valuer interface.
func (a TextArray) Value() (driver.Value, error) {
	return pq.Array([]string(a)).Value()
}

// Scan implements the sql.Scanner interface.
func (a *TextArray) Scan(src any) error {
	return pq.Array((*[]string)(a)).Scan(src)
}

// Int64Array maps to bigint[].
type Int64Array []int64

// Value implements the driver.Valuer interface.
func (a Int64Array) Value() (driver.Value, error) {
	return pq.Array([]int64(a)).Value()
}

// Scan implements the sql.Scanner interface.
func (a *Int64Array) Scan(src any) error {
	return pq.Array((*[]int64)(a)).Scan(src)
}

// Float64Array maps to double precision[].
type Float64Array []float64

// Value implements the driver.Valuer interface.
func (a Float64Array) Value() (driver.Value, error) {
	return pq.Array([]float64(a)).Value()
}

// Scan implements the sql.Scanner interface.
func (a *Float64Array) Scan(src any) error {
	return pq.Array((*[]float64)(a)).Scan(src)
}

// BoolArray maps to boolean[].
type BoolArray []bool

// Value implements the driver.Valuer interface.
func (a BoolArray) Value() (driver.Value, error) {
	return pq.Array([]bool(a)).Value()
}

// Scan implements the sql.Scanner interface.
func (a *BoolArray) Scan(src any) error {
	return pq.Array((*[]bool)(a)).Scan(src)
}
