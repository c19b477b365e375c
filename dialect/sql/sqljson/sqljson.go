// Package sqljson provides predicates and modifiers for querying and
// updating values inside JSON documents through the sql builders.
//
//	sql.Select("*").
//		From(sql.Table("users")).
//		Where(sqljson.ValueEQ("data", "mira", sqljson.Path("author", "name")))
//
// All helpers render per dialect: Postgres uses the json operators,
// MySQL and SQLite use the JSON_* functions, and MSSQL uses
// JSON_VALUE, JSON_QUERY, OPENJSON and friends.
package sqljson

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/sqldata/dialect"
	"github.com/syssam/sqldata/dialect/sql"
)

// A PathSpec holds the column holding the JSON document and the path
// into it, along with rendering options.
type PathSpec struct {
	// Ident is the column holding the document.
	Ident string
	// Path is the path inside the document. Array positions are
	// written as "[i]" segments, e.g. ["points", "[1]", "x"].
	Path []string
	// Cast is an optional SQL type the extracted value is cast to.
	Cast string
	// Unquote reports whether the extracted value is unquoted to an
	// SQL string. It applies to Postgres (the ->> operator), MySQL
	// (JSON_UNQUOTE) and MSSQL (JSON_VALUE instead of JSON_QUERY).
	// SQLite extraction returns SQL values already.
	Unquote bool

	err error
}

// Option configures the path specification of an operation.
type Option func(*PathSpec)

// Path sets the path inside the JSON document. Each argument is one
// step down the document, and array positions are written as "[i]".
//
//	sqljson.ValueEQ("data", 1, sqljson.Path("attributes", "[1]", "body"))
func Path(path ...string) Option {
	return func(p *PathSpec) {
		p.Path = path
	}
}

// DotPath is like Path, but accepts the dot syntax instead, e.g.
// "a.b[2].c". A path that fails to parse reports its error when the
// statement is built.
func DotPath(dotpath string) Option {
	return func(p *PathSpec) {
		p.Path, p.err = ParsePath(dotpath)
	}
}

// Unquote sets whether the extracted JSON value is unquoted to an
// SQL string. The comparison helpers below imply it for dialects
// that require it, based on the compared value.
func Unquote(unquote bool) Option {
	return func(p *PathSpec) {
		p.Unquote = unquote
	}
}

// Cast sets the SQL type the extracted JSON value is cast to.
func Cast(typ string) Option {
	return func(p *PathSpec) {
		p.Cast = typ
	}
}

// ParsePath parses the dot syntax for reaching into a JSON document,
// e.g. "a.b[2].c" parses to ["a", "b", "[2]", "c"]. Key names that
// contain dots or brackets must be passed with the Path option
// instead.
func ParsePath(dotpath string) ([]string, error) {
	var (
		path []string
		i, p int
	)
	for i < len(dotpath) {
		switch dotpath[i] {
		case '[':
			if p < i {
				path = append(path, dotpath[p:i])
			}
			j := strings.IndexByte(dotpath[i:], ']')
			if j == -1 {
				return nil, fmt.Errorf("sqljson: unbalanced bracket in %q", dotpath)
			}
			if idx, err := strconv.Atoi(dotpath[i+1 : i+j]); err != nil || idx < 0 {
				return nil, fmt.Errorf("sqljson: invalid array index %q", dotpath[i:i+j+1])
			}
			path = append(path, dotpath[i:i+j+1])
			i += j + 1
			p = i
		case '.':
			if p == i {
				// A dot is allowed right after a bracket
				// segment, but not anywhere else.
				if i == 0 || dotpath[i-1] != ']' {
					return nil, fmt.Errorf("sqljson: empty path segment in %q", dotpath)
				}
			} else {
				path = append(path, dotpath[p:i])
			}
			i++
			p = i
		default:
			i++
		}
	}
	switch {
	case p < i:
		path = append(path, dotpath[p:i])
	case i > 0 && dotpath[i-1] == '.':
		return nil, fmt.Errorf("sqljson: trailing dot in %q", dotpath)
	}
	return path, nil
}

// ValuePath writes the expression for extracting the JSON value at
// the path to the given builder.
//
//	sqljson.ValuePath(b, "data", sqljson.Path("a", "b"))
func ValuePath(b *sql.Builder, column string, opts ...Option) {
	spec := newPathSpec(column, opts)
	if spec.err != nil {
		b.AddError(spec.err)
		return
	}
	spec.value(b)
}

// ValueEQ returns a predicate for checking that the value at the
// path is equal to the given argument.
//
//	sqljson.ValueEQ("data", 10, sqljson.Path("attributes", "quantity"))
func ValueEQ(column string, arg any, opts ...Option) *sql.Predicate {
	return valueOp(column, sql.OpEQ, arg, opts)
}

// ValueNEQ returns a predicate for checking that the value at the
// path is not equal to the given argument.
func ValueNEQ(column string, arg any, opts ...Option) *sql.Predicate {
	return valueOp(column, sql.OpNEQ, arg, opts)
}

// ValueGT returns a predicate for checking that the value at the
// path is greater than the given argument.
func ValueGT(column string, arg any, opts ...Option) *sql.Predicate {
	return valueOp(column, sql.OpGT, arg, opts)
}

// ValueGTE returns a predicate for checking that the value at the
// path is greater than or equal to the given argument.
func ValueGTE(column string, arg any, opts ...Option) *sql.Predicate {
	return valueOp(column, sql.OpGTE, arg, opts)
}

// ValueLT returns a predicate for checking that the value at the
// path is less than the given argument.
func ValueLT(column string, arg any, opts ...Option) *sql.Predicate {
	return valueOp(column, sql.OpLT, arg, opts)
}

// ValueLTE returns a predicate for checking that the value at the
// path is less than or equal to the given argument.
func ValueLTE(column string, arg any, opts ...Option) *sql.Predicate {
	return valueOp(column, sql.OpLTE, arg, opts)
}

// ValueIn returns a predicate for checking that the value at the
// path is one of the given values.
func ValueIn(column string, args []any, opts ...Option) *sql.Predicate {
	return valueIn(column, sql.OpIn, args, opts)
}

// ValueNotIn returns a predicate for checking that the value at the
// path is none of the given values.
func ValueNotIn(column string, args []any, opts ...Option) *sql.Predicate {
	return valueIn(column, sql.OpNotIn, args, opts)
}

// ValueIsNull returns a predicate for checking that the value at the
// path is a JSON null literal. It does not report missing keys; use
// HasKey for existence. On MSSQL, JSON_VALUE cannot distinguish a
// JSON null from a missing key, and the predicate matches both.
func ValueIsNull(column string, opts ...Option) *sql.Predicate {
	return sql.P(func(b *sql.Builder) {
		spec := newPathSpec(column, opts)
		if spec.err != nil {
			b.AddError(spec.err)
			return
		}
		switch b.Dialect() {
		case dialect.Postgres:
			spec.Unquote, spec.Cast = false, ""
			spec.pgPath(b)
			b.WriteOp(sql.OpEQ).WriteString("'null'::jsonb")
		case dialect.MySQL:
			b.WriteString("JSON_TYPE(JSON_EXTRACT(")
			b.Ident(spec.Ident).Comma().WriteString(spec.pathLiteral())
			b.WriteString(")) = 'NULL'")
		case dialect.SQLite:
			b.WriteString("JSON_TYPE(")
			b.Ident(spec.Ident).Comma().WriteString(spec.pathLiteral())
			b.WriteString(") = 'null'")
		case dialect.MSSQL:
			b.WriteString("(ISJSON(").Ident(spec.Ident).WriteString(") = 1 AND JSON_VALUE(")
			b.Ident(spec.Ident).Comma().WriteString(spec.pathLiteral())
			b.WriteString(") IS NULL)")
		default:
			b.AddError(fmt.Errorf("sqljson: unsupported dialect %q", b.Dialect()))
		}
	})
}

// HasKey returns a predicate for checking that the document has the
// given path. Paths holding a JSON null are still counted as present.
//
//	sqljson.HasKey("data", sqljson.Path("attributes", "[1]", "body"))
func HasKey(column string, opts ...Option) *sql.Predicate {
	return sql.P(func(b *sql.Builder) {
		spec := newPathSpec(column, opts)
		if spec.err != nil {
			b.AddError(spec.err)
			return
		}
		switch b.Dialect() {
		case dialect.Postgres:
			spec.Unquote, spec.Cast = false, ""
			spec.pgPath(b)
			b.WriteOp(sql.OpNotNull)
		case dialect.MySQL:
			b.WriteString("JSON_CONTAINS_PATH(")
			b.Ident(spec.Ident).Comma().WriteString("'one'").Comma().WriteString(spec.pathLiteral())
			b.WriteByte(')')
		case dialect.SQLite:
			b.WriteString("JSON_TYPE(")
			b.Ident(spec.Ident).Comma().WriteString(spec.pathLiteral())
			b.WriteString(") IS NOT NULL")
		case dialect.MSSQL:
			// JSON_PATH_EXISTS requires SQL Server 2022 or azure.
			b.WriteString("JSON_PATH_EXISTS(")
			b.Ident(spec.Ident).Comma().WriteString(spec.pathLiteral())
			b.WriteString(") = 1")
		default:
			b.AddError(fmt.Errorf("sqljson: unsupported dialect %q", b.Dialect()))
		}
	})
}

// ValueContains returns a predicate for checking that the value at
// the path contains the given argument. On Postgres and MySQL the
// check uses native JSON containment and the argument can be any
// JSON value. On SQLite and MSSQL the check scans the array elements
// and the argument must be a scalar.
//
//	sqljson.ValueContains("tags", "hello")
func ValueContains(column string, arg any, opts ...Option) *sql.Predicate {
	return sql.P(func(b *sql.Builder) {
		spec := newPathSpec(column, opts)
		if spec.err != nil {
			b.AddError(spec.err)
			return
		}
		switch b.Dialect() {
		case dialect.Postgres:
			buf, err := json.Marshal(arg)
			if err != nil {
				b.AddError(err)
				return
			}
			spec.Unquote, spec.Cast = false, ""
			spec.pgPath(b)
			b.WriteString(" @> ").Arg(string(buf))
		case dialect.MySQL:
			buf, err := json.Marshal(arg)
			if err != nil {
				b.AddError(err)
				return
			}
			b.WriteString("JSON_CONTAINS(")
			b.Ident(spec.Ident).Comma().Arg(string(buf)).Comma().WriteString(spec.pathLiteral())
			b.WriteString(") = 1")
		case dialect.SQLite:
			b.WriteString("EXISTS(SELECT 1 FROM JSON_EACH(")
			b.Ident(spec.Ident).Comma().WriteString(spec.pathLiteral())
			b.WriteString(") WHERE ").Ident("value").WriteOp(sql.OpEQ).Arg(arg).WriteByte(')')
		case dialect.MSSQL:
			b.WriteString("EXISTS(SELECT 1 FROM OPENJSON(")
			b.Ident(spec.Ident).Comma().WriteString(spec.pathLiteral())
			b.WriteString(") WHERE ").Ident("value").WriteOp(sql.OpEQ).Arg(arg).WriteByte(')')
		default:
			b.AddError(fmt.Errorf("sqljson: unsupported dialect %q", b.Dialect()))
		}
	})
}

// LenEQ returns a predicate for checking that the array length at
// the path is equal to the given size. On Postgres the column must
// be of type jsonb.
//
//	sqljson.LenEQ("tags", 1)
func LenEQ(column string, size int, opts ...Option) *sql.Predicate {
	return lenOp(column, sql.OpEQ, size, opts)
}

// LenNEQ returns a predicate for checking that the array length at
// the path is not equal to the given size.
func LenNEQ(column string, size int, opts ...Option) *sql.Predicate {
	return lenOp(column, sql.OpNEQ, size, opts)
}

// LenGT returns a predicate for checking that the array length at
// the path is greater than the given size.
func LenGT(column string, size int, opts ...Option) *sql.Predicate {
	return lenOp(column, sql.OpGT, size, opts)
}

// LenGTE returns a predicate for checking that the array length at
// the path is greater than or equal to the given size.
func LenGTE(column string, size int, opts ...Option) *sql.Predicate {
	return lenOp(column, sql.OpGTE, size, opts)
}

// LenLT returns a predicate for checking that the array length at
// the path is less than the given size.
func LenLT(column string, size int, opts ...Option) *sql.Predicate {
	return lenOp(column, sql.OpLT, size, opts)
}

// LenLTE returns a predicate for checking that the array length at
// the path is less than or equal to the given size.
func LenLTE(column string, size int, opts ...Option) *sql.Predicate {
	return lenOp(column, sql.OpLTE, size, opts)
}

// StringContains returns a predicate for checking that the string
// value at the path contains the given substring.
func StringContains(column, substr string, opts ...Option) *sql.Predicate {
	return stringOp(column, "%"+substr+"%", opts)
}

// StringHasPrefix returns a predicate for checking that the string
// value at the path has the given prefix.
func StringHasPrefix(column, prefix string, opts ...Option) *sql.Predicate {
	return stringOp(column, prefix+"%", opts)
}

// StringHasSuffix returns a predicate for checking that the string
// value at the path has the given suffix.
func StringHasSuffix(column, suffix string, opts ...Option) *sql.Predicate {
	return stringOp(column, "%"+suffix, opts)
}

// Append returns an update modifier that appends the given values to
// a JSON array at the path. SQL NULL documents, JSON nulls and
// missing paths are replaced with a fresh array holding the values.
//
//	sqljson.Append(u, "tags", []string{"hello"})
//
// Array elements are encoded as SQL scalars on MySQL, SQLite and
// MSSQL. On Postgres the values are encoded as one JSON array.
func Append[T any](u *sql.UpdateBuilder, column string, elems []T, opts ...Option) {
	u.Set(column, sql.ExprFunc(func(b *sql.Builder) {
		spec := newPathSpec(column, opts)
		if spec.err != nil {
			b.AddError(spec.err)
			return
		}
		switch b.Dialect() {
		case dialect.Postgres:
			appendPG(b, spec, elems)
		case dialect.MySQL:
			appendMySQL(b, spec, elems)
		case dialect.SQLite:
			appendSQLite(b, spec, elems)
		case dialect.MSSQL:
			appendMSSQL(b, spec, elems)
		default:
			b.AddError(fmt.Errorf("sqljson: unsupported dialect %q", b.Dialect()))
		}
	}))
}

func valueOp(column string, op sql.Op, arg any, opts []Option) *sql.Predicate {
	return sql.P(func(b *sql.Builder) {
		ValuePath(b, column, normalize(b, arg, opts)...)
		b.WriteOp(op).Arg(arg)
	})
}

func valueIn(column string, op sql.Op, args []any, opts []Option) *sql.Predicate {
	return sql.P(func(b *sql.Builder) {
		if len(args) == 0 {
			if op == sql.OpIn {
				b.WriteString("FALSE")
			} else {
				b.WriteString("TRUE")
			}
			return
		}
		ValuePath(b, column, normalize(b, args[0], opts)...)
		b.WriteOp(op)
		b.WriteByte('(').Args(args...).WriteByte(')')
	})
}

func lenOp(column string, op sql.Op, size int, opts []Option) *sql.Predicate {
	return sql.P(func(b *sql.Builder) {
		spec := newPathSpec(column, opts)
		if spec.err != nil {
			b.AddError(spec.err)
			return
		}
		spec.lenPath(b)
		b.WriteOp(op).Arg(size)
	})
}

func stringOp(column, pattern string, opts []Option) *sql.Predicate {
	return sql.P(func(b *sql.Builder) {
		ValuePath(b, column, append([]Option{Unquote(true)}, opts...)...)
		b.WriteOp(sql.OpLike).Arg(pattern)
	})
}

func newPathSpec(column string, opts []Option) *PathSpec {
	spec := &PathSpec{Ident: column}
	for _, opt := range opts {
		opt(spec)
	}
	return spec
}

// normalize prepends the unquote and cast options implied by the Go
// type of the compared argument for dialects whose extraction
// expressions return JSON fragments. Caller options come last so an
// explicit Unquote or Cast wins.
func normalize(b *sql.Builder, arg any, opts []Option) []Option {
	var typ string
	switch b.Dialect() {
	case dialect.Postgres:
		typ = pgCast(arg)
	case dialect.MSSQL:
		typ = mssqlCast(arg)
	default:
		return opts
	}
	base := []Option{Unquote(true)}
	if typ != "" {
		base = append(base, Cast(typ))
	}
	return append(base, opts...)
}

func pgCast(arg any) string {
	switch arg.(type) {
	case bool:
		return "bool"
	case float32, float64:
		return "float"
	case int8, int16, int32, int, uint8, uint16, uint32, uint:
		return "int"
	case int64, uint64:
		return "bigint"
	}
	return ""
}

func mssqlCast(arg any) string {
	switch arg.(type) {
	case bool:
		return "bit"
	case float32, float64:
		return "float"
	case int8, int16, int32, int, uint8, uint16, uint32, uint:
		return "int"
	case int64, uint64:
		return "bigint"
	}
	return ""
}

// value writes the extraction expression for the dialect of b.
func (p *PathSpec) value(b *sql.Builder) {
	switch b.Dialect() {
	case dialect.Postgres:
		p.pgPath(b)
	case dialect.MySQL, dialect.SQLite:
		p.extractPath(b)
	case dialect.MSSQL:
		p.mssqlPath(b)
	default:
		b.AddError(fmt.Errorf("sqljson: unsupported dialect %q", b.Dialect()))
	}
}

// pgPath writes the Postgres -> / ->> operator chain of the path.
func (p *PathSpec) pgPath(b *sql.Builder) {
	if p.Cast != "" {
		b.WriteByte('(')
	}
	b.Ident(p.Ident)
	if len(p.Path) == 0 && p.Unquote {
		// Unquoting the whole document.
		b.WriteString("#>>'{}'")
	}
	for i, s := range p.Path {
		op := "->"
		if p.Unquote && i == len(p.Path)-1 {
			op = "->>"
		}
		b.WriteString(op)
		if idx, ok := arrayIndex(s); ok {
			b.WriteString(strconv.Itoa(idx))
		} else {
			b.WriteString(quoteLiteral(s))
		}
	}
	if p.Cast != "" {
		b.WriteString(")::" + p.Cast)
	}
}

// extractPath writes the JSON_EXTRACT call used by MySQL and SQLite.
func (p *PathSpec) extractPath(b *sql.Builder) {
	unquote := p.Unquote && b.Dialect() == dialect.MySQL
	if p.Cast != "" {
		b.WriteString("CAST(")
	}
	if unquote {
		b.WriteString("JSON_UNQUOTE(")
	}
	b.WriteString("JSON_EXTRACT(")
	b.Ident(p.Ident).Comma().WriteString(p.pathLiteral())
	b.WriteByte(')')
	if unquote {
		b.WriteByte(')')
	}
	if p.Cast != "" {
		b.WriteString(" AS " + p.Cast + ")")
	}
}

// mssqlPath writes the JSON_VALUE or JSON_QUERY call used by MSSQL.
// JSON_VALUE returns unquoted scalars and JSON_QUERY returns object
// and array fragments.
func (p *PathSpec) mssqlPath(b *sql.Builder) {
	fn := "JSON_QUERY"
	if p.Unquote {
		fn = "JSON_VALUE"
	}
	if p.Cast != "" {
		b.WriteString("CAST(")
	}
	b.WriteString(fn + "(")
	b.Ident(p.Ident).Comma().WriteString(p.pathLiteral())
	b.WriteByte(')')
	if p.Cast != "" {
		b.WriteString(" AS " + p.Cast + ")")
	}
}

// lenPath writes the array length expression of the path.
func (p *PathSpec) lenPath(b *sql.Builder) {
	switch b.Dialect() {
	case dialect.Postgres:
		b.WriteString("JSONB_ARRAY_LENGTH(")
		p.Unquote, p.Cast = false, ""
		p.pgPath(b)
		b.WriteByte(')')
	case dialect.MySQL:
		b.WriteString("JSON_LENGTH(")
		b.Ident(p.Ident).Comma().WriteString(p.pathLiteral())
		b.WriteByte(')')
	case dialect.SQLite:
		b.WriteString("JSON_ARRAY_LENGTH(")
		b.Ident(p.Ident).Comma().WriteString(p.pathLiteral())
		b.WriteByte(')')
	case dialect.MSSQL:
		b.WriteString("(SELECT COUNT(*) FROM OPENJSON(")
		b.Ident(p.Ident).Comma().WriteString(p.pathLiteral())
		b.WriteString("))")
	default:
		b.AddError(fmt.Errorf("sqljson: unsupported dialect %q", b.Dialect()))
	}
}

// jsonPath returns the JSON path expression, e.g. "$.a.b[2]".
func (p *PathSpec) jsonPath() string {
	var sb strings.Builder
	sb.WriteByte('$')
	for _, s := range p.Path {
		if _, ok := arrayIndex(s); ok {
			sb.WriteString(s)
			continue
		}
		sb.WriteByte('.')
		if plainSegment(s) {
			sb.WriteString(s)
		} else {
			sb.WriteString(`"` + s + `"`)
		}
	}
	return sb.String()
}

// pathLiteral returns the JSON path as an SQL string literal,
// e.g. '$.a.b[2]'.
func (p *PathSpec) pathLiteral() string {
	return quoteLiteral(p.jsonPath())
}

// pgArrayPath returns the Postgres text-array path literal,
// e.g. '{a,b,2}'.
func (p *PathSpec) pgArrayPath() string {
	parts := make([]string, len(p.Path))
	for i, s := range p.Path {
		if idx, ok := arrayIndex(s); ok {
			parts[i] = strconv.Itoa(idx)
		} else {
			parts[i] = s
		}
	}
	return quoteLiteral("{" + strings.Join(parts, ",") + "}")
}

func appendPG[T any](b *sql.Builder, spec *PathSpec, elems []T) {
	buf, err := json.Marshal(elems)
	if err != nil {
		b.AddError(err)
		return
	}
	arg := string(buf)
	if len(spec.Path) == 0 {
		b.WriteString("CASE WHEN ").Ident(spec.Ident).WriteString(" IS NULL OR ")
		b.Ident(spec.Ident).WriteString(" = 'null'::jsonb THEN ").Arg(arg).WriteString("::jsonb")
		b.WriteString(" ELSE ").Ident(spec.Ident).WriteString(" || ").Arg(arg).WriteString("::jsonb END")
		return
	}
	path := spec.pgArrayPath()
	b.WriteString("JSONB_SET(").Ident(spec.Ident).Comma().WriteString(path).Comma()
	b.WriteString("COALESCE(").Ident(spec.Ident).WriteString("#>" + path).Comma().WriteString("'[]'::jsonb)")
	b.WriteString(" || ").Arg(arg).WriteString("::jsonb)")
}

func appendMySQL[T any](b *sql.Builder, spec *PathSpec, elems []T) {
	pl := spec.pathLiteral()
	typeOf := func() {
		b.WriteString("JSON_TYPE(JSON_EXTRACT(")
		b.Ident(spec.Ident).Comma().WriteString(pl)
		b.WriteString("))")
	}
	b.WriteString("CASE WHEN ")
	typeOf()
	b.WriteString(" IS NULL OR ")
	typeOf()
	b.WriteString(" = 'NULL' THEN JSON_SET(COALESCE(")
	b.Ident(spec.Ident).Comma().WriteString("'{}')").Comma().WriteString(pl).Comma()
	b.WriteString("JSON_ARRAY(").Args(anySlice(elems)...).WriteString("))")
	b.WriteString(" ELSE JSON_ARRAY_APPEND(").Ident(spec.Ident)
	for _, e := range elems {
		b.Comma().WriteString(pl).Comma().Arg(e)
	}
	b.WriteString(") END")
}

func appendSQLite[T any](b *sql.Builder, spec *PathSpec, elems []T) {
	pl := spec.pathLiteral()
	typeOf := func() {
		b.WriteString("JSON_TYPE(")
		b.Ident(spec.Ident).Comma().WriteString(pl)
		b.WriteByte(')')
	}
	// The "[#]" position denotes the end of the array.
	appendPl := quoteLiteral(spec.jsonPath() + "[#]")
	b.WriteString("CASE WHEN ")
	typeOf()
	b.WriteString(" IS NULL OR ")
	typeOf()
	b.WriteString(" = 'null' THEN JSON_SET(COALESCE(")
	b.Ident(spec.Ident).Comma().WriteString("'{}')").Comma().WriteString(pl).Comma()
	b.WriteString("JSON_ARRAY(").Args(anySlice(elems)...).WriteString("))")
	b.WriteString(" ELSE JSON_INSERT(").Ident(spec.Ident)
	for _, e := range elems {
		b.Comma().WriteString(appendPl).Comma().Arg(e)
	}
	b.WriteString(") END")
}

func appendMSSQL[T any](b *sql.Builder, spec *PathSpec, elems []T) {
	base := "'[]'"
	if len(spec.Path) > 0 {
		// Lax mode creates the array at the path if it is missing.
		base = "'{}'"
	}
	appendArg := quoteLiteral("append " + spec.jsonPath())
	for range elems {
		b.WriteString("JSON_MODIFY(")
	}
	b.WriteString("COALESCE(").Ident(spec.Ident).Comma().WriteString(base).WriteByte(')')
	for _, e := range elems {
		b.Comma().WriteString(appendArg).Comma().Arg(e).WriteByte(')')
	}
}

// arrayIndex reports whether the path segment is an array position
// of the form "[i]", and returns the position.
func arrayIndex(s string) (int, bool) {
	if len(s) < 3 || s[0] != '[' || s[len(s)-1] != ']' {
		return 0, false
	}
	idx, err := strconv.Atoi(s[1 : len(s)-1])
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

// plainSegment reports whether the path segment can be written in a
// JSON path expression without quoting.
func plainSegment(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func anySlice[T any](vs []T) []any {
	args := make([]any, len(vs))
	for i := range vs {
		args[i] = vs[i]
	}
	return args
}
