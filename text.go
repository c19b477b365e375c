package sqldata

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// CIText is a string compared case-insensitively, matching the
// PostgreSQL citext type. On SQLite the column collates NOCASE and on
// dialects with case-insensitive default collations it maps to a plain
// varchar.
type CIText string

// Equal reports whether the two values are equal under simple Unicode
// case folding, mirroring the column comparison semantics.
func (c CIText) Equal(o CIText) bool {
	return strings.EqualFold(string(c), string(o))
}

// Fold returns the lower-cased form used for Go-side grouping.
func (c CIText) Fold() string {
	return strings.ToLower(string(c))
}

// String returns the value with its original casing.
func (c CIText) String() string { return string(c) }

// Value implements the driver.Valuer interface.
func (c CIText) Value() (driver.Value, error) {
	return string(c), nil
}

// Scan implements the sql.Scanner interface.
func (c *CIText) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		*c = ""
		return nil
	case string:
		*c = CIText(src)
		return nil
	case []byte:
		*c = CIText(src)
		return nil
	default:
		return newParseError(TypeCIText, fmt.Sprint(src), expectedError(src, "string", "[]byte"))
	}
}

// TSVector carries a text-search document vector in its text form,
// e.g. "'fat':2 'cat':3". Building vectors is left to the server
// (to_tsvector); the Go side treats the value as opaque.
type TSVector string

// String returns the vector text.
func (v TSVector) String() string { return string(v) }

// Value implements the driver.Valuer interface.
func (v TSVector) Value() (driver.Value, error) {
	return string(v), nil
}

// Scan implements the sql.Scanner interface.
func (v *TSVector) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		*v = ""
		return nil
	case string:
		*v = TSVector(src)
		return nil
	case []byte:
		*v = TSVector(src)
		return nil
	default:
		return newParseError(TypeTSVector, fmt.Sprint(src), expectedError(src, "string", "[]byte"))
	}
}

// Lexemes returns the distinct lexemes of the vector in order of first
// appearance, without positions or weights.
func (v TSVector) Lexemes() []string {
	var (
		out  []string
		seen = map[string]struct{}{}
	)
	s := string(v)
	for i := 0; i < len(s); {
		if s[i] != '\'' {
			i++
			continue
		}
		i++
		var sb strings.Builder
		for i < len(s) {
			if s[i] == '\'' {
				if i+1 < len(s) && s[i+1] == '\'' {
					sb.WriteByte('\'')
					i += 2
					continue
				}
				i++
				break
			}
			sb.WriteByte(s[i])
			i++
		}
		lex := sb.String()
		if _, ok := seen[lex]; !ok && lex != "" {
			seen[lex] = struct{}{}
			out = append(out, lex)
		}
	}
	return out
}
