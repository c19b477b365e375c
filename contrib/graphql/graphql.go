// Package graphql exposes the library's value domains as gqlgen
// custom scalars. Each scalar has a Marshal/Unmarshal pair following
// the gqlgen external-binding convention, so gqlgen.yml can bind the
// GraphQL type names declared in Schema to this package.
package graphql

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/syssam/sqldata"

	"github.com/99designs/gqlgen/graphql"
	"github.com/google/uuid"
)

// Schema declares the custom scalars this package marshals, ready to
// be appended to a gqlgen schema file.
const Schema = `scalar UUID
scalar Inet
scalar CIDR
scalar MacAddr
scalar JSON
scalar IntRange
scalar TimeRange
scalar Point
`

// MarshalUUID marshals a UUID into its canonical string form.
func MarshalUUID(u uuid.UUID) graphql.Marshaler {
	return graphql.MarshalString(u.String())
}

// UnmarshalUUID unmarshals a UUID from its string form.
func UnmarshalUUID(v any) (uuid.UUID, error) {
	switch v := v.(type) {
	case string:
		return uuid.Parse(v)
	case []byte:
		return uuid.ParseBytes(v)
	default:
		return uuid.Nil, fmt.Errorf("graphql: %T is not a valid UUID", v)
	}
}

// MarshalInet marshals a host address into its string form.
func MarshalInet(i sqldata.Inet) graphql.Marshaler {
	return graphql.MarshalString(i.String())
}

// UnmarshalInet unmarshals a host address from its string form.
func UnmarshalInet(v any) (sqldata.Inet, error) {
	s, ok := v.(string)
	if !ok {
		return sqldata.Inet{}, fmt.Errorf("graphql: %T is not a valid Inet", v)
	}
	return sqldata.ParseInet(s)
}

// MarshalCIDR marshals a network into its string form.
func MarshalCIDR(c sqldata.CIDR) graphql.Marshaler {
	return graphql.MarshalString(c.String())
}

// UnmarshalCIDR unmarshals a network from its string form.
func UnmarshalCIDR(v any) (sqldata.CIDR, error) {
	s, ok := v.(string)
	if !ok {
		return sqldata.CIDR{}, fmt.Errorf("graphql: %T is not a valid CIDR", v)
	}
	return sqldata.ParseCIDR(s)
}

// MarshalMacAddr marshals a hardware address into its string form.
func MarshalMacAddr(m sqldata.MacAddr) graphql.Marshaler {
	return graphql.MarshalString(m.String())
}

// UnmarshalMacAddr unmarshals a hardware address from its string form.
func UnmarshalMacAddr(v any) (sqldata.MacAddr, error) {
	s, ok := v.(string)
	if !ok {
		return sqldata.MacAddr{}, fmt.Errorf("graphql: %T is not a valid MacAddr", v)
	}
	return sqldata.ParseMacAddr(s)
}

// MarshalJSON writes a raw document verbatim. Empty documents render
// as null.
func MarshalJSON(r sqldata.RawJSON) graphql.Marshaler {
	return graphql.WriterFunc(func(w io.Writer) {
		if len(r) == 0 {
			_, _ = io.WriteString(w, "null")
			return
		}
		_, _ = w.Write(r)
	})
}

// UnmarshalJSON unmarshals a raw document from any literal the query
// decoder produced for it.
func UnmarshalJSON(v any) (sqldata.RawJSON, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case sqldata.RawJSON:
		return v, nil
	case json.RawMessage:
		return sqldata.RawJSON(v), nil
	case []byte:
		if !json.Valid(v) {
			return nil, fmt.Errorf("graphql: %q is not a valid JSON document", v)
		}
		return sqldata.RawJSON(v), nil
	default:
		// Maps, slices, strings and numbers re-encode to their
		// document form.
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("graphql: %T is not a valid JSON document: %w", v, err)
		}
		return b, nil
	}
}

// MarshalIntRange marshals a range into its literal form, e.g.
// "[1,10)".
func MarshalIntRange(r sqldata.IntRange) graphql.Marshaler {
	return graphql.MarshalString(r.String())
}

// UnmarshalIntRange unmarshals a range from its literal form.
func UnmarshalIntRange(v any) (sqldata.IntRange, error) {
	s, ok := v.(string)
	if !ok {
		return sqldata.IntRange{}, fmt.Errorf("graphql: %T is not a valid IntRange", v)
	}
	var r sqldata.IntRange
	if err := r.Scan(s); err != nil {
		return sqldata.IntRange{}, err
	}
	return r, nil
}

// MarshalTimeRange marshals a range into its literal form. Bounds
// render in the server output format, RFC 3339 timestamps are also
// accepted on the way in.
func MarshalTimeRange(r sqldata.TimeRange) graphql.Marshaler {
	return graphql.MarshalString(r.String())
}

// UnmarshalTimeRange unmarshals a range from its literal form.
func UnmarshalTimeRange(v any) (sqldata.TimeRange, error) {
	s, ok := v.(string)
	if !ok {
		return sqldata.TimeRange{}, fmt.Errorf("graphql: %T is not a valid TimeRange", v)
	}
	var r sqldata.TimeRange
	if err := r.Scan(s); err != nil {
		return sqldata.TimeRange{}, err
	}
	return r, nil
}

// MarshalPoint marshals a point into its GeoJSON form.
func MarshalPoint(p sqldata.Point) graphql.Marshaler {
	return graphql.WriterFunc(func(w io.Writer) {
		b, err := json.Marshal(p)
		if err != nil {
			_, _ = io.WriteString(w, "null")
			return
		}
		_, _ = w.Write(b)
	})
}

// UnmarshalPoint unmarshals a point from its GeoJSON form, or from a
// well-known text string like "POINT(1 2)".
func UnmarshalPoint(v any) (sqldata.Point, error) {
	switch v := v.(type) {
	case string:
		return sqldata.ParsePoint(v)
	case map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return sqldata.Point{}, err
		}
		var p sqldata.Point
		if err := p.UnmarshalJSON(b); err != nil {
			return sqldata.Point{}, err
		}
		return p, nil
	default:
		return sqldata.Point{}, fmt.Errorf("graphql: %T is not a valid Point", v)
	}
}
