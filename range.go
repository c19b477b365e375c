package sqldata

import (
	"cmp"
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RangeElem is the set of element types supported by range values.
type RangeElem interface {
	int | int64 | float64 | time.Time
}

// A Bound is one endpoint of a range. The zero value is an exclusive
// bound on the zero element.
type Bound[T RangeElem] struct {
	Value T
	// Inclusive reports whether the endpoint itself belongs to the
	// range. Lower bounds default to inclusive and upper bounds to
	// exclusive when ranges are built with NewRange.
	Inclusive bool
	// Unbounded marks a missing endpoint. The bound value is ignored
	// and the range extends indefinitely in that direction.
	Unbounded bool
	// Infinite marks an explicit infinity endpoint. Unlike Unbounded,
	// the endpoint is part of the value and round-trips as the
	// "infinity"/"-infinity" literal. Only timestamp and date ranges
	// support it.
	Infinite bool
}

// Inclusive returns a bound that includes its endpoint.
func Inclusive[T RangeElem](v T) Bound[T] {
	return Bound[T]{Value: v, Inclusive: true}
}

// Exclusive returns a bound that excludes its endpoint.
func Exclusive[T RangeElem](v T) Bound[T] {
	return Bound[T]{Value: v}
}

// Unbounded returns a missing bound.
func Unbounded[T RangeElem]() Bound[T] {
	return Bound[T]{Unbounded: true}
}

// Infinite returns an explicit infinity bound. It renders as
// "-infinity" on the lower side and "infinity" on the upper side.
func Infinite[T RangeElem]() Bound[T] {
	return Bound[T]{Infinite: true}
}

// A Range is an interval over an ordered element domain with
// per-endpoint inclusivity, matching the PostgreSQL range types.
// The zero value is an unusable zero-width range; construct values
// with NewRange or the bound helpers.
type Range[T RangeElem] struct {
	Lower Bound[T]
	Upper Bound[T]
	// Empty marks the canonical empty range. An empty range contains
	// no elements and both bounds are ignored.
	Empty bool
}

// Common concrete range types. The element type selects the SQL range
// type the value binds to.
type (
	// IntRange maps to int4range.
	IntRange = Range[int]
	// BigIntRange maps to int8range.
	BigIntRange = Range[int64]
	// NumRange maps to numrange.
	NumRange = Range[float64]
	// TimeRange maps to tstzrange.
	TimeRange = Range[time.Time]
)

// DateRange maps to daterange. Element values are encoded with day
// precision; the time-of-day portion is dropped.
type DateRange struct {
	Range[time.Time]
}

// NewRange returns the range [lo,hi): inclusive of lo, exclusive of
// hi. This is the default bound form of range columns.
func NewRange[T RangeElem](lo, hi T) Range[T] {
	return Range[T]{Lower: Inclusive(lo), Upper: Exclusive(hi)}
}

// NewRangeBounds returns a range with explicit bounds.
func NewRangeBounds[T RangeElem](lower, upper Bound[T]) Range[T] {
	return Range[T]{Lower: lower, Upper: upper}
}

// EmptyRange returns the canonical empty range.
func EmptyRange[T RangeElem]() Range[T] {
	return Range[T]{Empty: true}
}

// NewIntRange returns the int range [lo,hi).
func NewIntRange(lo, hi int) IntRange { return NewRange(lo, hi) }

// NewBigIntRange returns the bigint range [lo,hi).
func NewBigIntRange(lo, hi int64) BigIntRange { return NewRange(lo, hi) }

// NewNumRange returns the numeric range [lo,hi).
func NewNumRange(lo, hi float64) NumRange { return NewRange(lo, hi) }

// NewTimeRange returns the timestamp range [lo,hi).
func NewTimeRange(lo, hi time.Time) TimeRange { return NewRange(lo, hi) }

// NewDateRange returns the date range [lo,hi).
func NewDateRange(lo, hi time.Time) DateRange {
	return DateRange{NewRange(lo, hi)}
}

// EmptyDateRange returns the canonical empty date range.
func EmptyDateRange() DateRange {
	return DateRange{EmptyRange[time.Time]()}
}

// Type returns the value domain of the range.
func (r Range[T]) Type() Type { return rangeTypeOf[T]() }

// Type returns TypeDateRange.
func (DateRange) Type() Type { return TypeDateRange }

// IsZero reports if the range is the zero value.
func (r Range[T]) IsZero() bool {
	return r == Range[T]{}
}

// String returns the range literal, e.g. "[1,10)" or "empty".
func (r Range[T]) String() string {
	s, err := encodeRange(r.Type(), r)
	if err != nil {
		return fmt.Sprintf("invalid range: %v", err)
	}
	return s
}

// String returns the date range literal.
func (r DateRange) String() string {
	s, err := encodeRange(TypeDateRange, r.Range)
	if err != nil {
		return fmt.Sprintf("invalid range: %v", err)
	}
	return s
}

// Value implements the driver.Valuer interface.
func (r Range[T]) Value() (driver.Value, error) {
	s, err := encodeRange(r.Type(), r)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Value implements the driver.Valuer interface.
func (r DateRange) Value() (driver.Value, error) {
	s, err := encodeRange(TypeDateRange, r.Range)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Scan implements the sql.Scanner interface.
func (r *Range[T]) Scan(src any) error {
	return scanRange(r.Type(), r, src)
}

// Scan implements the sql.Scanner interface.
func (r *DateRange) Scan(src any) error {
	return scanRange(TypeDateRange, &r.Range, src)
}

// Contains reports whether v lies within the range.
func (r Range[T]) Contains(v T) bool {
	if r.Empty {
		return false
	}
	if !r.Lower.Unbounded && !r.Lower.Infinite {
		c := compareElem(v, r.Lower.Value)
		if c < 0 || (c == 0 && !r.Lower.Inclusive) {
			return false
		}
	}
	if !r.Upper.Unbounded && !r.Upper.Infinite {
		c := compareElem(v, r.Upper.Value)
		if c > 0 || (c == 0 && !r.Upper.Inclusive) {
			return false
		}
	}
	return true
}

// Overlaps reports whether the two ranges share at least one element.
func (r Range[T]) Overlaps(o Range[T]) bool {
	if r.Empty || o.Empty {
		return false
	}
	return lowerBeforeUpper(r.Lower, o.Upper) && lowerBeforeUpper(o.Lower, r.Upper)
}

// lowerBeforeUpper reports whether a lower bound starts at or before an
// upper bound ends, i.e. the interval between them is non-empty.
func lowerBeforeUpper[T RangeElem](l, u Bound[T]) bool {
	if l.Unbounded || u.Unbounded || l.Infinite || u.Infinite {
		return true
	}
	c := compareElem(l.Value, u.Value)
	if c != 0 {
		return c < 0
	}
	return l.Inclusive && u.Inclusive
}

// compareElem orders two range elements.
func compareElem[T RangeElem](a, b T) int {
	switch a := any(a).(type) {
	case int:
		return cmp.Compare(a, any(b).(int))
	case int64:
		return cmp.Compare(a, any(b).(int64))
	case float64:
		return cmp.Compare(a, any(b).(float64))
	case time.Time:
		return a.Compare(any(b).(time.Time))
	}
	return 0
}

// rangeTypeOf maps the element type to its range value domain.
// time.Time elements map to tstzrange; DateRange overrides this.
func rangeTypeOf[T RangeElem]() Type {
	var v T
	switch any(v).(type) {
	case int:
		return TypeIntRange
	case int64:
		return TypeBigIntRange
	case float64:
		return TypeNumRange
	case time.Time:
		return TypeTimeRange
	}
	return TypeInvalid
}

const (
	timeRangeFormat = "2006-01-02 15:04:05.999999-07"
	dateRangeFormat = "2006-01-02"
)

// timeRangeParseFormats lists accepted timestamp spellings, the server
// output format first.
var timeRangeParseFormats = []string{
	timeRangeFormat,
	"2006-01-02 15:04:05.999999-07:00",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
}

// encodeRange renders the canonical range literal for the given domain.
func encodeRange[T RangeElem](t Type, r Range[T]) (string, error) {
	if r.Empty {
		return "empty", nil
	}
	if err := checkBounds(t, r); err != nil {
		return "", err
	}
	var sb strings.Builder
	if r.Lower.Inclusive && !r.Lower.Unbounded {
		sb.WriteByte('[')
	} else {
		sb.WriteByte('(')
	}
	switch {
	case r.Lower.Unbounded:
	case r.Lower.Infinite:
		sb.WriteString("-infinity")
	default:
		sb.WriteString(quoteRangeElem(formatElem(t, r.Lower.Value)))
	}
	sb.WriteByte(',')
	switch {
	case r.Upper.Unbounded:
	case r.Upper.Infinite:
		sb.WriteString("infinity")
	default:
		sb.WriteString(quoteRangeElem(formatElem(t, r.Upper.Value)))
	}
	if r.Upper.Inclusive && !r.Upper.Unbounded {
		sb.WriteByte(']')
	} else {
		sb.WriteByte(')')
	}
	return sb.String(), nil
}

// checkBounds rejects ranges no server would accept.
func checkBounds[T RangeElem](t Type, r Range[T]) error {
	if r.Lower.Infinite || r.Upper.Infinite {
		if t != TypeTimeRange && t != TypeDateRange {
			return &ConversionError{Type: t, Err: errors.New("infinite bounds require a timestamp or date range")}
		}
	}
	lb, ub := r.Lower, r.Upper
	if lb.Unbounded || ub.Unbounded || lb.Infinite || ub.Infinite {
		return nil
	}
	if compareElem(lb.Value, ub.Value) > 0 {
		return &ConversionError{Type: t, Err: errors.New("lower bound must be less than or equal to upper bound")}
	}
	return nil
}

// formatElem renders one range element for the given domain.
func formatElem[T RangeElem](t Type, v T) string {
	switch v := any(v).(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case time.Time:
		if t == TypeDateRange {
			return v.Format(dateRangeFormat)
		}
		return v.UTC().Format(timeRangeFormat)
	}
	return ""
}

// parseElem decodes one range element of the given domain.
func parseElem[T RangeElem](t Type, s string) (T, error) {
	var v T
	switch p := any(&v).(type) {
	case *int:
		n, err := strconv.Atoi(s)
		if err != nil {
			return v, err
		}
		*p = n
	case *int64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return v, err
		}
		*p = n
	case *float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return v, err
		}
		*p = f
	case *time.Time:
		if t == TypeDateRange {
			tm, err := time.Parse(dateRangeFormat, s)
			if err != nil {
				return v, err
			}
			*p = tm
			break
		}
		var (
			tm  time.Time
			err error
		)
		for _, layout := range timeRangeParseFormats {
			if tm, err = time.Parse(layout, s); err == nil {
				break
			}
		}
		if err != nil {
			return v, err
		}
		*p = tm
	}
	return v, nil
}

// quoteRangeElem wraps an element in double quotes when it contains
// characters that are significant inside a range literal.
func quoteRangeElem(s string) string {
	if s != "" && !strings.ContainsAny(s, `(),[]"\ `) {
		return s
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
	return sb.String()
}

// scanRange decodes a range literal into dst. A nil source resets dst
// to the zero range.
func scanRange[T RangeElem](t Type, dst *Range[T], src any) error {
	var s string
	switch src := src.(type) {
	case nil:
		*dst = Range[T]{}
		return nil
	case string:
		s = src
	case []byte:
		s = string(src)
	default:
		return newParseError(t, fmt.Sprint(src), expectedError(src, "string", "[]byte"))
	}
	r, err := parseRange[T](t, s)
	if err != nil {
		return err
	}
	*dst = r
	return nil
}

// parseRange decodes the text form of a range: "empty", or two bounds
// between bracket characters, e.g. "[1,10)", "(,5]", "[-infinity,)".
func parseRange[T RangeElem](t Type, s string) (Range[T], error) {
	var r Range[T]
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, "empty") {
		r.Empty = true
		return r, nil
	}
	if len(trimmed) < 3 {
		return r, newParseError(t, s, errors.New("malformed range literal"))
	}
	switch trimmed[0] {
	case '[':
		r.Lower.Inclusive = true
	case '(':
	default:
		return r, newParseError(t, s, errors.New(`missing "[" or "(" at start`))
	}
	switch trimmed[len(trimmed)-1] {
	case ']':
		r.Upper.Inclusive = true
	case ')':
	default:
		return r, newParseError(t, s, errors.New(`missing "]" or ")" at end`))
	}
	loTxt, hiTxt, err := splitRangeBody(trimmed[1 : len(trimmed)-1])
	if err != nil {
		return r, newParseError(t, s, err)
	}
	if err := parseBound(t, &r.Lower, loTxt, true); err != nil {
		return r, newParseError(t, s, err)
	}
	if err := parseBound(t, &r.Upper, hiTxt, false); err != nil {
		return r, newParseError(t, s, err)
	}
	return r, nil
}

// splitRangeBody splits the range body on the separating comma,
// honoring quoting and backslash escapes.
func splitRangeBody(body string) (lo, hi string, err error) {
	var (
		inQuote bool
		sep     = -1
	)
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '"':
			inQuote = !inQuote
		case ',':
			if inQuote {
				continue
			}
			if sep >= 0 {
				return "", "", errors.New("too many commas")
			}
			sep = i
		}
	}
	if inQuote {
		return "", "", errors.New("unterminated quoted bound")
	}
	if sep < 0 {
		return "", "", errors.New("missing comma between bounds")
	}
	return body[:sep], body[sep+1:], nil
}

// parseBound decodes one bound of the range body into b.
func parseBound[T RangeElem](t Type, b *Bound[T], s string, lower bool) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*b = Bound[T]{Unbounded: true}
		return nil
	}
	quoted := false
	if s[0] == '"' {
		var err error
		if s, err = unquoteRangeElem(s); err != nil {
			return err
		}
		quoted = true
	}
	if !quoted && (strings.EqualFold(s, "infinity") || strings.EqualFold(s, "-infinity") || strings.EqualFold(s, "+infinity")) {
		if t != TypeTimeRange && t != TypeDateRange {
			return fmt.Errorf("infinity bound not allowed in %s", t)
		}
		b.Infinite = true
		if lower && !strings.HasPrefix(s, "-") {
			return errors.New("lower bound infinity must be negative")
		}
		if !lower && strings.HasPrefix(s, "-") {
			return errors.New("upper bound infinity must be positive")
		}
		return nil
	}
	v, err := parseElem[T](t, s)
	if err != nil {
		return err
	}
	b.Value = v
	return nil
}

// unquoteRangeElem strips surrounding double quotes and resolves
// backslash and doubled-quote escapes.
func unquoteRangeElem(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", errors.New("malformed quoted bound")
	}
	inner := s[1 : len(s)-1]
	var sb strings.Builder
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '\\':
			i++
			if i == len(inner) {
				return "", errors.New("trailing escape in quoted bound")
			}
			sb.WriteByte(inner[i])
		case '"':
			i++
			if i == len(inner) || inner[i] != '"' {
				return "", errors.New("stray quote in quoted bound")
			}
			sb.WriteByte('"')
		default:
			sb.WriteByte(inner[i])
		}
	}
	return sb.String(), nil
}
