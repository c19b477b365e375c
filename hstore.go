package sqldata

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// HStore is a set of key/value pairs, matching the PostgreSQL hstore
// type. A nil map value represents an hstore NULL value (not a NULL
// column).
type HStore map[string]*string

// NewHStore returns an HStore built from a plain string map.
func NewHStore(m map[string]string) HStore {
	h := make(HStore, len(m))
	for k, v := range m {
		h[k] = ptrTo(v)
	}
	return h
}

func ptrTo(s string) *string { return &s }

// Get returns the value for key. ok reports key presence; a present
// key with a NULL value yields ok == true and null == true.
func (h HStore) Get(key string) (v string, null, ok bool) {
	p, ok := h[key]
	if !ok {
		return "", false, false
	}
	if p == nil {
		return "", true, true
	}
	return *p, false, true
}

// Set stores a value for key.
func (h HStore) Set(key, value string) {
	h[key] = ptrTo(value)
}

// SetNull stores an hstore NULL for key.
func (h HStore) SetNull(key string) {
	h[key] = nil
}

// StringMap returns the pairs as a plain map, dropping NULL values.
func (h HStore) StringMap() map[string]string {
	m := make(map[string]string, len(h))
	for k, v := range h {
		if v != nil {
			m[k] = *v
		}
	}
	return m
}

// String returns the hstore literal with keys in sorted order,
// e.g. `"a"=>"1", "b"=>NULL`.
func (h HStore) String() string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeHStoreString(&sb, k)
		sb.WriteString("=>")
		if v := h[k]; v == nil {
			sb.WriteString("NULL")
		} else {
			writeHStoreString(&sb, *v)
		}
	}
	return sb.String()
}

// Value implements the driver.Valuer interface.
func (h HStore) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return h.String(), nil
}

// Scan implements the sql.Scanner interface.
func (h *HStore) Scan(src any) error {
	var s string
	switch src := src.(type) {
	case nil:
		*h = nil
		return nil
	case string:
		s = src
	case []byte:
		s = string(src)
	default:
		return newParseError(TypeHStore, fmt.Sprint(src), expectedError(src, "string", "[]byte"))
	}
	m, err := parseHStore(s)
	if err != nil {
		return newParseError(TypeHStore, s, err)
	}
	*h = m
	return nil
}

func writeHStoreString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
}

// parseHStore decodes the hstore text form. Keys and non-NULL values
// are double-quoted with backslash escapes; pairs are comma separated.
func parseHStore(s string) (HStore, error) {
	h := HStore{}
	i := 0
	skipSpace := func() {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
	}
	readQuoted := func() (string, error) {
		if i >= len(s) || s[i] != '"' {
			return "", fmt.Errorf("expected quote at offset %d", i)
		}
		i++
		var sb strings.Builder
		for i < len(s) {
			switch s[i] {
			case '\\':
				i++
				if i == len(s) {
					return "", errors.New("trailing escape")
				}
				sb.WriteByte(s[i])
				i++
			case '"':
				i++
				return sb.String(), nil
			default:
				sb.WriteByte(s[i])
				i++
			}
		}
		return "", errors.New("unterminated quoted string")
	}
	for {
		skipSpace()
		if i >= len(s) {
			return h, nil
		}
		key, err := readQuoted()
		if err != nil {
			return nil, err
		}
		skipSpace()
		if !strings.HasPrefix(s[i:], "=>") {
			return nil, fmt.Errorf(`expected "=>" at offset %d`, i)
		}
		i += 2
		skipSpace()
		switch {
		case i < len(s) && s[i] == '"':
			v, err := readQuoted()
			if err != nil {
				return nil, err
			}
			h[key] = &v
		case len(s[i:]) >= 4 && strings.EqualFold(s[i:i+4], "NULL"):
			h[key] = nil
			i += 4
		default:
			return nil, fmt.Errorf("expected value at offset %d", i)
		}
		skipSpace()
		if i >= len(s) {
			return h, nil
		}
		if s[i] != ',' {
			return nil, fmt.Errorf(`expected "," at offset %d`, i)
		}
		i++
	}
}
