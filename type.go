package sqldata

import "strings"

// A Type represents a column value domain. It decides how values are
// encoded on the wire and which SQL type each dialect renders for it.
type Type uint8

// List of all value domains.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeInt
	TypeInt64
	TypeFloat64
	TypeDecimal
	TypeString
	TypeText
	TypeTime
	TypeDate
	TypeUUID
	TypeBytes
	TypeEnum
	TypeJSON
	TypeJSONB
	TypeIntRange
	TypeBigIntRange
	TypeNumRange
	TypeTimeRange
	TypeDateRange
	TypeInet
	TypeCIDR
	TypeMacAddr
	TypeHStore
	TypeArray
	TypeCIText
	TypeTSVector
	TypeGeometry
	TypeGeography
	endTypes
)

var typeNames = [...]string{
	TypeInvalid:     "invalid",
	TypeBool:        "bool",
	TypeInt:         "int",
	TypeInt64:       "int64",
	TypeFloat64:     "float64",
	TypeDecimal:     "decimal",
	TypeString:      "string",
	TypeText:        "text",
	TypeTime:        "time",
	TypeDate:        "date",
	TypeUUID:        "UUID",
	TypeBytes:       "bytes",
	TypeEnum:        "enum",
	TypeJSON:        "JSON",
	TypeJSONB:       "JSONB",
	TypeIntRange:    "int4range",
	TypeBigIntRange: "int8range",
	TypeNumRange:    "numrange",
	TypeTimeRange:   "tstzrange",
	TypeDateRange:   "daterange",
	TypeInet:        "inet",
	TypeCIDR:        "cidr",
	TypeMacAddr:     "macaddr",
	TypeHStore:      "hstore",
	TypeArray:       "array",
	TypeCIText:      "citext",
	TypeTSVector:    "tsvector",
	TypeGeometry:    "geometry",
	TypeGeography:   "geography",
}

// String returns the name of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return "invalid"
}

// Valid reports if the given type is a known value domain.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Integer reports if the type is an integer type.
func (t Type) Integer() bool {
	return t == TypeInt || t == TypeInt64
}

// Float reports if the type is a float type.
func (t Type) Float() bool {
	return t == TypeFloat64 || t == TypeDecimal
}

// Numeric reports if the type is a numeric type.
func (t Type) Numeric() bool {
	return t.Integer() || t.Float()
}

// Range reports if the type is a range type.
func (t Type) Range() bool {
	return t >= TypeIntRange && t <= TypeDateRange
}

// Network reports if the type is a network address type.
func (t Type) Network() bool {
	return t == TypeInet || t == TypeCIDR || t == TypeMacAddr
}

// Spatial reports if the type is a spatial type.
func (t Type) Spatial() bool {
	return t == TypeGeometry || t == TypeGeography
}

// RangeElem returns the element domain of a range type, or TypeInvalid
// if the type is not a range.
func (t Type) RangeElem() Type {
	switch t {
	case TypeIntRange:
		return TypeInt
	case TypeBigIntRange:
		return TypeInt64
	case TypeNumRange:
		return TypeFloat64
	case TypeTimeRange:
		return TypeTime
	case TypeDateRange:
		return TypeDate
	default:
		return TypeInvalid
	}
}

// ConstName returns the constant name of the type, as spelled in Go
// source. It is used by code generation tools.
func (t Type) ConstName() string {
	switch t {
	case TypeUUID, TypeJSON, TypeJSONB:
		return "Type" + typeNames[t]
	case TypeIntRange, TypeBigIntRange, TypeNumRange, TypeTimeRange, TypeDateRange:
		return rangeConstNames[t]
	case TypeCIDR:
		return "TypeCIDR"
	case TypeCIText:
		return "TypeCIText"
	case TypeTSVector:
		return "TypeTSVector"
	case TypeMacAddr:
		return "TypeMacAddr"
	case TypeHStore:
		return "TypeHStore"
	default:
		if !t.Valid() {
			return "TypeInvalid"
		}
		return "Type" + strings.ToUpper(typeNames[t][:1]) + typeNames[t][1:]
	}
}

var rangeConstNames = map[Type]string{
	TypeIntRange:    "TypeIntRange",
	TypeBigIntRange: "TypeBigIntRange",
	TypeNumRange:    "TypeNumRange",
	TypeTimeRange:   "TypeTimeRange",
	TypeDateRange:   "TypeDateRange",
}

// Types returns all valid value domains.
func Types() []Type {
	ts := make([]Type, 0, int(endTypes)-1)
	for t := TypeBool; t < endTypes; t++ {
		ts = append(ts, t)
	}
	return ts
}
