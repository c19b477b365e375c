package sql

// PredicateFunc constrains the predicate type the typed fields below
// return. Callers define their own func(*Selector) kind once and bind
// columns to it.
type PredicateFunc interface {
	~func(*Selector)
}

// Field is a typed column declaration: P is the caller's predicate
// type, T the Go value the column holds. Declaring a column once
// replaces writing the same predicate wrappers for it over and over:
//
//	type Predicate func(*sql.Selector)
//
//	var (
//	    Celsius    = sql.Float64Field[Predicate]("celsius")
//	    RecordedAt = sql.TimeField[Predicate, time.Time]("recorded_at")
//	)
//
//	Celsius.GT(40)      // "celsius" > $1
//	RecordedAt.NotNil() // "recorded_at" IS NOT NULL
//
// The predicates qualify the column with the selector's table, so they
// stay correct under joins and aliases.
type Field[P PredicateFunc, T any] string

// Name returns the column name.
func (f Field[P, T]) Name() string { return string(f) }

// EQ returns an "=" predicate on the column.
func (f Field[P, T]) EQ(v T) P { return P(FieldEQ(string(f), v)) }

// NEQ returns a "<>" predicate on the column.
func (f Field[P, T]) NEQ(v T) P { return P(FieldNEQ(string(f), v)) }

// In returns an "IN" predicate on the column.
func (f Field[P, T]) In(vs ...T) P { return P(FieldIn(string(f), vs...)) }

// NotIn returns a "NOT IN" predicate on the column.
func (f Field[P, T]) NotIn(vs ...T) P { return P(FieldNotIn(string(f), vs...)) }

// GT returns a ">" predicate on the column.
func (f Field[P, T]) GT(v T) P { return P(FieldGT(string(f), v)) }

// GTE returns a ">=" predicate on the column.
func (f Field[P, T]) GTE(v T) P { return P(FieldGTE(string(f), v)) }

// LT returns a "<" predicate on the column.
func (f Field[P, T]) LT(v T) P { return P(FieldLT(string(f), v)) }

// LTE returns a "<=" predicate on the column.
func (f Field[P, T]) LTE(v T) P { return P(FieldLTE(string(f), v)) }

// IsNull returns an "IS NULL" predicate on the column.
func (f Field[P, T]) IsNull() P { return P(FieldIsNull(string(f))) }

// NotNull returns an "IS NOT NULL" predicate on the column.
func (f Field[P, T]) NotNull() P { return P(FieldNotNull(string(f))) }

// IsNil is an alias for IsNull.
func (f Field[P, T]) IsNil() P { return f.IsNull() }

// NotNil is an alias for NotNull.
func (f Field[P, T]) NotNil() P { return f.NotNull() }

// The ordered column domains construct typed Fields. TimeField takes
// the time representation as its second parameter, usually time.Time;
// UUIDField the UUID value type; OtherField covers driver-supported
// values the library does not model further, like the range, network
// and spatial domains. Generic type aliases of Field would fit here,
// but they need go >= 1.24, so the domains are constructor functions.

// IntField declares an int column.
func IntField[P PredicateFunc](name string) Field[P, int] { return Field[P, int](name) }

// Int64Field declares an int64 column.
func Int64Field[P PredicateFunc](name string) Field[P, int64] { return Field[P, int64](name) }

// Float64Field declares a float64 column.
func Float64Field[P PredicateFunc](name string) Field[P, float64] { return Field[P, float64](name) }

// TimeField declares a column holding the time representation T.
func TimeField[P PredicateFunc, T any](name string) Field[P, T] { return Field[P, T](name) }

// UUIDField declares a column holding the UUID value type T.
func UUIDField[P PredicateFunc, T any](name string) Field[P, T] { return Field[P, T](name) }

// OtherField declares a column holding any other driver-supported value
// type T.
func OtherField[P PredicateFunc, T any](name string) Field[P, T] { return Field[P, T](name) }

// StringField is a string column. Beyond the Field predicates it adds
// the LIKE-based matchers and their case-insensitive forms.
type StringField[P PredicateFunc] string

// Name returns the column name.
func (f StringField[P]) Name() string { return string(f) }

// EQ returns an "=" predicate on the column.
func (f StringField[P]) EQ(v string) P { return P(FieldEQ(string(f), v)) }

// NEQ returns a "<>" predicate on the column.
func (f StringField[P]) NEQ(v string) P { return P(FieldNEQ(string(f), v)) }

// In returns an "IN" predicate on the column.
func (f StringField[P]) In(vs ...string) P { return P(FieldIn(string(f), vs...)) }

// NotIn returns a "NOT IN" predicate on the column.
func (f StringField[P]) NotIn(vs ...string) P { return P(FieldNotIn(string(f), vs...)) }

// GT returns a ">" predicate on the column.
func (f StringField[P]) GT(v string) P { return P(FieldGT(string(f), v)) }

// GTE returns a ">=" predicate on the column.
func (f StringField[P]) GTE(v string) P { return P(FieldGTE(string(f), v)) }

// LT returns a "<" predicate on the column.
func (f StringField[P]) LT(v string) P { return P(FieldLT(string(f), v)) }

// LTE returns a "<=" predicate on the column.
func (f StringField[P]) LTE(v string) P { return P(FieldLTE(string(f), v)) }

// Contains returns a predicate matching rows whose column contains the
// substring.
func (f StringField[P]) Contains(v string) P { return P(FieldContains(string(f), v)) }

// ContainsFold is Contains without case sensitivity.
func (f StringField[P]) ContainsFold(v string) P { return P(FieldContainsFold(string(f), v)) }

// HasPrefix returns a predicate matching rows whose column starts with
// the prefix.
func (f StringField[P]) HasPrefix(v string) P { return P(FieldHasPrefix(string(f), v)) }

// HasSuffix returns a predicate matching rows whose column ends with
// the suffix.
func (f StringField[P]) HasSuffix(v string) P { return P(FieldHasSuffix(string(f), v)) }

// EqualFold returns an "=" predicate without case sensitivity.
func (f StringField[P]) EqualFold(v string) P { return P(FieldEqualFold(string(f), v)) }

// IsNull returns an "IS NULL" predicate on the column.
func (f StringField[P]) IsNull() P { return P(FieldIsNull(string(f))) }

// NotNull returns an "IS NOT NULL" predicate on the column.
func (f StringField[P]) NotNull() P { return P(FieldNotNull(string(f))) }

// IsNil is an alias for IsNull.
func (f StringField[P]) IsNil() P { return f.IsNull() }

// NotNil is an alias for NotNull.
func (f StringField[P]) NotNil() P { return f.NotNull() }

// BoolField is a boolean column. Booleans order poorly, so only
// equality and nullability are exposed.
type BoolField[P PredicateFunc] string

// Name returns the column name.
func (f BoolField[P]) Name() string { return string(f) }

// EQ returns an "=" predicate on the column.
func (f BoolField[P]) EQ(v bool) P { return P(FieldEQ(string(f), v)) }

// NEQ returns a "<>" predicate on the column.
func (f BoolField[P]) NEQ(v bool) P { return P(FieldNEQ(string(f), v)) }

// IsNull returns an "IS NULL" predicate on the column.
func (f BoolField[P]) IsNull() P { return P(FieldIsNull(string(f))) }

// NotNull returns an "IS NOT NULL" predicate on the column.
func (f BoolField[P]) NotNull() P { return P(FieldNotNull(string(f))) }

// IsNil is an alias for IsNull.
func (f BoolField[P]) IsNil() P { return f.IsNull() }

// NotNil is an alias for NotNull.
func (f BoolField[P]) NotNil() P { return f.NotNull() }

// EnumField is a column holding one of a closed set of string values.
// T is the enum kind. Enums compare for membership, not order.
type EnumField[P PredicateFunc, T ~string] string

// Name returns the column name.
func (f EnumField[P, T]) Name() string { return string(f) }

// EQ returns an "=" predicate on the column.
func (f EnumField[P, T]) EQ(v T) P { return P(FieldEQ(string(f), v)) }

// NEQ returns a "<>" predicate on the column.
func (f EnumField[P, T]) NEQ(v T) P { return P(FieldNEQ(string(f), v)) }

// In returns an "IN" predicate on the column.
func (f EnumField[P, T]) In(vs ...T) P { return P(FieldIn(string(f), vs...)) }

// NotIn returns a "NOT IN" predicate on the column.
func (f EnumField[P, T]) NotIn(vs ...T) P { return P(FieldNotIn(string(f), vs...)) }

// IsNull returns an "IS NULL" predicate on the column.
func (f EnumField[P, T]) IsNull() P { return P(FieldIsNull(string(f))) }

// NotNull returns an "IS NOT NULL" predicate on the column.
func (f EnumField[P, T]) NotNull() P { return P(FieldNotNull(string(f))) }

// IsNil is an alias for IsNull.
func (f EnumField[P, T]) IsNil() P { return f.IsNull() }

// NotNil is an alias for NotNull.
func (f EnumField[P, T]) NotNil() P { return f.NotNull() }
