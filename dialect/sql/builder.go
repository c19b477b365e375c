package sql

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/sqldata/dialect"
)

// Querier wraps the basic Query method that is implemented
// by the different builders in this package.
type Querier interface {
	// Query returns the query representation of the element
	// and its arguments (if any).
	Query() (string, []any)
}

// querierErr allows chain builders to propagate errors that
// occurred during the construction of the query.
type querierErr interface {
	Err() error
}

// state wraps the methods for setting and getting the
// build state that is shared between queries in a tree.
type state interface {
	Dialect() string
	SetDialect(string)
	Total() int
	SetTotal(int)
}

// raw always appears as-is in the query.
type raw struct{ s string }

// Query implements the Querier interface.
func (r *raw) Query() (string, []any) { return r.s, nil }

// Raw returns a raw SQL element that is placed as-is in the query.
//
//	sql.Insert("users").Columns("name").Values(sql.Raw("DEFAULT"))
func Raw(s string) Querier { return &raw{s} }

// expr is an SQL expression with optional arguments.
type expr struct {
	s    string
	args []any
}

// Query implements the Querier interface.
func (e expr) Query() (string, []any) { return e.s, e.args }

// Expr returns an SQL expression that implements the Querier interface.
//
//	sql.Update("users").Set("version", sql.Expr("version + 1"))
func Expr(s string, args ...any) Querier { return expr{s: s, args: args} }

// exprFunc is an expression evaluated lazily with the dialect and the
// parameter count of the builder that embeds it.
type exprFunc struct {
	Builder
	fn func(*Builder)
}

// ExprFunc returns an expression that is built by the given function.
// Unlike Expr, it follows the dialect and the placeholder numbering of
// the statement embedding it.
func ExprFunc(fn func(*Builder)) Querier {
	return &exprFunc{fn: fn}
}

// Query implements the Querier interface.
func (e *exprFunc) Query() (string, []any) {
	b := e.Builder.new()
	e.fn(&b)
	e.AddError(b.Err())
	return b.String(), b.args
}

// Builder is the base query builder for the sql dsl.
type Builder struct {
	sb      *strings.Builder // underlying buffer.
	dialect string           // configured dialect.
	args    []any            // query parameters.
	total   int              // total number of parameters in query tree.
	errs    []error          // errors that added during the query construction.
}

// new returns a new builder that shares the dialect
// and the parameter count of the current builder.
func (b Builder) new() Builder {
	return Builder{dialect: b.dialect, total: b.total}
}

// Quote quotes the given identifier with the characters based
// on the configured dialect. It defaults to "`".
func (b *Builder) Quote(ident string) string {
	switch b.dialect {
	case dialect.Postgres:
		// Lift identifiers that were quoted before
		// the dialect information was attached.
		if strings.ContainsRune(ident, '`') {
			return strings.ReplaceAll(ident, "`", `"`)
		}
		return `"` + ident + `"`
	case dialect.MSSQL:
		if strings.ContainsRune(ident, '`') {
			return rebracket(ident)
		}
		return "[" + ident + "]"
	default:
		return "`" + ident + "`"
	}
}

// rebracket rewrites MySQL-style quoting with the T-SQL bracket pairs.
func rebracket(ident string) string {
	var sb strings.Builder
	sb.Grow(len(ident))
	open := true
	for i := 0; i < len(ident); i++ {
		if ident[i] != '`' {
			sb.WriteByte(ident[i])
			continue
		}
		if open {
			sb.WriteByte('[')
		} else {
			sb.WriteByte(']')
		}
		open = !open
	}
	return sb.String()
}

// Ident appends the given string as an identifier.
func (b *Builder) Ident(s string) *Builder {
	switch {
	case len(s) == 0:
	case s == "*" || b.isIdent(s) || isFunc(s):
		b.WriteString(s)
	case strings.ContainsRune(s, ' '):
		// Identifier with a suffix modifier, e.g. "name ASC".
		name, suffix, _ := strings.Cut(s, " ")
		b.Ident(name).Pad().WriteString(suffix)
	case strings.ContainsRune(s, '.'):
		// Qualified identifier, e.g. "t.name".
		for i, p := range strings.Split(s, ".") {
			if i > 0 {
				b.WriteByte('.')
			}
			if p == "*" {
				b.WriteString(p)
			} else {
				b.WriteString(b.Quote(p))
			}
		}
	default:
		b.WriteString(b.Quote(s))
	}
	return b
}

// IdentComma calls Ident on all arguments and adds a comma between them.
func (b *Builder) IdentComma(s ...string) *Builder {
	for i := range s {
		if i > 0 {
			b.Comma()
		}
		b.Ident(s[i])
	}
	return b
}

// isIdent reports if the given string was already
// quoted with the dialect identifier character.
func (b *Builder) isIdent(s string) bool {
	switch b.dialect {
	case dialect.Postgres:
		return strings.ContainsRune(s, '"')
	case dialect.MSSQL:
		return strings.ContainsRune(s, '[')
	default:
		return strings.ContainsRune(s, '`')
	}
}

// isFunc reports if the given string is a function call, e.g. "COUNT(*)".
func isFunc(s string) bool {
	return strings.ContainsRune(s, '(') && strings.ContainsRune(s, ')')
}

// String returns the accumulated query string.
func (b *Builder) String() string {
	if b.sb == nil {
		return ""
	}
	return b.sb.String()
}

// Len returns the number of accumulated bytes.
func (b *Builder) Len() int {
	if b.sb == nil {
		return 0
	}
	return b.sb.Len()
}

// Reset resets the underlying buffer.
func (b *Builder) Reset() *Builder {
	if b.sb != nil {
		b.sb.Reset()
	}
	return b
}

// WriteString appends the given string to the query buffer.
func (b *Builder) WriteString(s string) *Builder {
	if b.sb == nil {
		b.sb = &strings.Builder{}
	}
	b.sb.WriteString(s)
	return b
}

// WriteByte appends the given byte to the query buffer.
func (b *Builder) WriteByte(c byte) *Builder {
	if b.sb == nil {
		b.sb = &strings.Builder{}
	}
	b.sb.WriteByte(c)
	return b
}

// Comma appends a comma separator to the query.
func (b *Builder) Comma() *Builder { return b.WriteString(", ") }

// Pad appends a single space to the query.
func (b *Builder) Pad() *Builder { return b.WriteByte(' ') }

// Arg appends the given value as a query parameter and writes
// the placeholder of the configured dialect.
func (b *Builder) Arg(a any) *Builder {
	switch v := a.(type) {
	case *raw:
		return b.WriteString(v.s)
	case Querier:
		return b.Join(v)
	}
	b.total++
	b.args = append(b.args, a)
	switch b.dialect {
	case dialect.Postgres:
		b.WriteString("$" + strconv.Itoa(b.total))
	case dialect.MSSQL:
		b.WriteString("@p" + strconv.Itoa(b.total))
	default:
		b.WriteString("?")
	}
	return b
}

// Args appends the given values as query parameters with a comma between them.
func (b *Builder) Args(a ...any) *Builder {
	for i := range a {
		if i > 0 {
			b.Comma()
		}
		b.Arg(a[i])
	}
	return b
}

// Join joins a list of queriers to the builder.
func (b *Builder) Join(qs ...Querier) *Builder {
	return b.join(qs, "")
}

// JoinComma joins a list of queriers with a comma between them.
func (b *Builder) JoinComma(qs ...Querier) *Builder {
	return b.join(qs, ", ")
}

func (b *Builder) join(qs []Querier, sep string) *Builder {
	for i, q := range qs {
		if i > 0 {
			b.WriteString(sep)
		}
		if st, ok := q.(state); ok {
			st.SetDialect(b.dialect)
			st.SetTotal(b.total)
		}
		query, args := q.Query()
		b.WriteString(query)
		b.args = append(b.args, args...)
		b.total += len(args)
		if qe, ok := q.(querierErr); ok {
			b.AddError(qe.Err())
		}
	}
	return b
}

// Nested applies the given function on a new builder
// and wraps its output in parentheses.
func (b *Builder) Nested(f func(*Builder)) *Builder {
	nb := &Builder{dialect: b.dialect, total: b.total}
	nb.WriteByte('(')
	f(nb)
	nb.WriteByte(')')
	b.WriteString(nb.String())
	b.args = append(b.args, nb.args...)
	b.total = nb.total
	return b
}

// AddError appends an error to the builder. Nil errors are skipped.
func (b *Builder) AddError(err error) *Builder {
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return b
}

// Err returns a concatenated error of all errors encountered
// during the query-building, or were added manually by calling AddError.
func (b *Builder) Err() error {
	if len(b.errs) == 0 {
		return nil
	}
	return errors.Join(b.errs...)
}

// Dialect returns the dialect of the builder.
func (b *Builder) Dialect() string { return b.dialect }

// SetDialect sets the builder dialect. It is used for garnering dialect
// specific queries from the same query tree.
func (b *Builder) SetDialect(dialect string) { b.dialect = dialect }

// Total returns the total number of arguments so far.
func (b *Builder) Total() int { return b.total }

// SetTotal sets the value of the total arguments.
// Used to pass this information between sub builders and queries.
func (b *Builder) SetTotal(total int) { b.total = total }

func (b *Builder) postgres() bool { return b.dialect == dialect.Postgres }

func (b *Builder) mysql() bool { return b.dialect == dialect.MySQL }

func (b *Builder) sqlite() bool { return b.dialect == dialect.SQLite }

func (b *Builder) mssql() bool { return b.dialect == dialect.MSSQL }

// An Op represents an operator.
type Op int

// Operators.
const (
	OpEQ      Op = iota // =
	OpNEQ               // <>
	OpGT                // >
	OpGTE               // >=
	OpLT                // <
	OpLTE               // <=
	OpIn                // IN
	OpNotIn             // NOT IN
	OpLike              // LIKE
	OpIsNull            // IS NULL
	OpNotNull           // IS NOT NULL
)

var ops = [...]string{
	OpEQ:      "=",
	OpNEQ:     "<>",
	OpGT:      ">",
	OpGTE:     ">=",
	OpLT:      "<",
	OpLTE:     "<=",
	OpIn:      "IN",
	OpNotIn:   "NOT IN",
	OpLike:    "LIKE",
	OpIsNull:  "IS NULL",
	OpNotNull: "IS NOT NULL",
}

// WriteOp writes the given operator to the builder.
func (b *Builder) WriteOp(op Op) *Builder {
	switch {
	case op >= OpEQ && op <= OpLike:
		b.Pad().WriteString(ops[op]).Pad()
	case op == OpIsNull || op == OpNotNull:
		b.Pad().WriteString(ops[op])
	default:
		panic(fmt.Sprintf("invalid op %d", op))
	}
	return b
}

// DialectBuilder prefixes all root builders with the dialect name.
//
//	d := sql.Dialect(dialect.Postgres)
//	d.Select("id").From(d.Table("users")).Query()
type DialectBuilder struct {
	dialect string
}

// Dialect creates a new DialectBuilder with the given dialect name.
func Dialect(name string) *DialectBuilder {
	return &DialectBuilder{name}
}

// Select creates a Selector for the configured dialect.
func (d *DialectBuilder) Select(columns ...string) *Selector {
	s := Select(columns...)
	s.SetDialect(d.dialect)
	return s
}

// Table creates a SelectTable for the configured dialect.
func (d *DialectBuilder) Table(name string) *SelectTable {
	t := Table(name)
	t.SetDialect(d.dialect)
	return t
}

// Insert creates an InsertBuilder for the configured dialect.
func (d *DialectBuilder) Insert(table string) *InsertBuilder {
	i := Insert(table)
	i.SetDialect(d.dialect)
	return i
}

// Update creates an UpdateBuilder for the configured dialect.
func (d *DialectBuilder) Update(table string) *UpdateBuilder {
	u := Update(table)
	u.SetDialect(d.dialect)
	return u
}

// Delete creates a DeleteBuilder for the configured dialect.
func (d *DialectBuilder) Delete(table string) *DeleteBuilder {
	del := Delete(table)
	del.SetDialect(d.dialect)
	return del
}

// CreateTable creates a CreateTableBuilder for the configured dialect.
func (d *DialectBuilder) CreateTable(name string) *CreateTableBuilder {
	t := CreateTable(name)
	t.SetDialect(d.dialect)
	return t
}

// CreateIndex creates an IndexBuilder for the configured dialect.
func (d *DialectBuilder) CreateIndex(name string) *IndexBuilder {
	i := CreateIndex(name)
	i.SetDialect(d.dialect)
	return i
}

// TableView is a view that returns a table view. Can be a Table or a Selector.
type TableView interface {
	view()
	// C returns a formatted string for the table column.
	C(string) string
}

// SelectTable is a table selection with an optional alias.
type SelectTable struct {
	Builder
	as     string
	name   string
	schema string
	quote  bool
}

// Table returns a new table view with the given name.
func Table(name string) *SelectTable {
	return &SelectTable{quote: true, name: name}
}

// Schema sets the schema name of the table.
func (s *SelectTable) Schema(name string) *SelectTable {
	s.schema = name
	return s
}

// As adds the AS clause to the table view.
func (s *SelectTable) As(alias string) *SelectTable {
	s.as = alias
	return s
}

// C returns a formatted string for the table column.
func (s *SelectTable) C(column string) string {
	name := s.name
	if s.as != "" {
		name = s.as
	}
	b := &Builder{dialect: s.dialect}
	b.Ident(name).WriteByte('.').Ident(column)
	return b.String()
}

// Columns returns a list of formatted strings for the table columns.
func (s *SelectTable) Columns(columns ...string) []string {
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, s.C(c))
	}
	return names
}

// Unquote makes the table name to not be formatted as an identifier.
// Useful when the table is a raw expression known to be quoted already.
func (s *SelectTable) Unquote() *SelectTable {
	s.quote = false
	return s
}

// ref returns the table reference as it appears in a FROM or JOIN clause.
func (s *SelectTable) ref() string {
	b := &Builder{dialect: s.dialect}
	if s.schema != "" {
		b.Ident(s.schema).WriteByte('.')
	}
	if s.quote {
		b.Ident(s.name)
	} else {
		b.WriteString(s.name)
	}
	if s.as != "" {
		b.WriteString(" AS ")
		b.Ident(s.as)
	}
	return b.String()
}

// implement the TableView interface.
func (*SelectTable) view() {}

// LockStrength defines the strength of a row-level lock.
type LockStrength string

// Lock strengths.
const (
	LockShare  LockStrength = "SHARE"
	LockUpdate LockStrength = "UPDATE"
)

// Selector is a builder for the SELECT statement.
type Selector struct {
	Builder
	as       string
	columns  []string
	from     TableView
	joins    []join
	where    *Predicate
	order    []string
	group    []string
	having   *Predicate
	limit    *int
	offset   *int
	distinct bool
	lock     LockStrength
}

// join describes a JOIN clause attached to a Selector.
type join struct {
	on    *Predicate
	kind  string
	table TableView
}

// Select returns a new selector for the given columns.
//
//	t := sql.Table("users")
//	sql.Select(t.C("id"), t.C("name")).From(t).Query()
func Select(columns ...string) *Selector {
	return (&Selector{}).Select(columns...)
}

// Select changes the column selection of the selector.
func (s *Selector) Select(columns ...string) *Selector {
	s.columns = columns
	return s
}

// AppendSelect appends additional columns to the selection.
func (s *Selector) AppendSelect(columns ...string) *Selector {
	s.columns = append(s.columns, columns...)
	return s
}

// From sets the source view of the selection.
func (s *Selector) From(t TableView) *Selector {
	s.from = t
	if st, ok := t.(state); ok {
		st.SetDialect(s.dialect)
	}
	return s
}

// As gives the selection an alias. Used when the
// selector appears as a sub-query in a FROM clause.
func (s *Selector) As(alias string) *Selector {
	s.as = alias
	return s
}

// Distinct adds the DISTINCT keyword to the selection.
func (s *Selector) Distinct() *Selector {
	s.distinct = true
	return s
}

// Where sets or appends the given predicate to the statement.
func (s *Selector) Where(p *Predicate) *Selector {
	switch {
	case p == nil:
	case s.where == nil:
		s.where = p
	default:
		s.where = And(s.where, p)
	}
	return s
}

// P returns the predicate of the selector.
func (s *Selector) P() *Predicate {
	return s.where
}

// Join appends an INNER JOIN to the statement.
func (s *Selector) Join(t TableView) *Selector {
	return s.join("JOIN", t)
}

// LeftJoin appends a LEFT OUTER JOIN to the statement.
func (s *Selector) LeftJoin(t TableView) *Selector {
	return s.join("LEFT JOIN", t)
}

// RightJoin appends a RIGHT OUTER JOIN to the statement.
func (s *Selector) RightJoin(t TableView) *Selector {
	return s.join("RIGHT JOIN", t)
}

func (s *Selector) join(kind string, t TableView) *Selector {
	if st, ok := t.(state); ok {
		st.SetDialect(s.dialect)
	}
	s.joins = append(s.joins, join{kind: kind, table: t})
	return s
}

// On sets the join condition of the last added join.
func (s *Selector) On(c1, c2 string) *Selector {
	if len(s.joins) > 0 {
		j := &s.joins[len(s.joins)-1]
		if j.on == nil {
			j.on = ColumnsEQ(c1, c2)
		} else {
			j.on = And(j.on, ColumnsEQ(c1, c2))
		}
	}
	return s
}

// OrderBy appends the ORDER BY clause to the statement.
// Use the Asc and Desc helpers for setting the order direction.
func (s *Selector) OrderBy(columns ...string) *Selector {
	s.order = append(s.order, columns...)
	return s
}

// GroupBy appends the GROUP BY clause to the statement.
func (s *Selector) GroupBy(columns ...string) *Selector {
	s.group = append(s.group, columns...)
	return s
}

// Having appends the HAVING clause to the statement.
func (s *Selector) Having(p *Predicate) *Selector {
	s.having = p
	return s
}

// Limit adds the LIMIT clause to the statement.
func (s *Selector) Limit(limit int) *Selector {
	s.limit = &limit
	return s
}

// Offset adds the OFFSET clause to the statement.
func (s *Selector) Offset(offset int) *Selector {
	s.offset = &offset
	return s
}

// For sets the lock configuration for suffixing the
// statement with the `FOR [SHARE|UPDATE]` clause.
func (s *Selector) For(l LockStrength) *Selector {
	switch s.dialect {
	case dialect.SQLite:
		// Transactions are serialized by the single
		// writer, row locks add nothing.
	case dialect.MSSQL:
		s.AddError(fmt.Errorf("dialect/sql: FOR %s is not supported on %q, use table hints", l, s.dialect))
	default:
		s.lock = l
	}
	return s
}

// ForUpdate locks the selected rows against concurrent writers.
func (s *Selector) ForUpdate() *Selector {
	return s.For(LockUpdate)
}

// ForShare locks the selected rows against concurrent updates.
func (s *Selector) ForShare() *Selector {
	return s.For(LockShare)
}

// Table returns the selected table, or nil if
// the selection is not based on a plain table.
func (s *Selector) Table() *SelectTable {
	if t, ok := s.from.(*SelectTable); ok {
		return t
	}
	return nil
}

// C returns a formatted string for the given column in the
// context of the selector, qualified by the table or its alias.
func (s *Selector) C(column string) string {
	if s.as != "" {
		b := &Builder{dialect: s.dialect}
		b.Ident(s.as).WriteByte('.').Ident(column)
		return b.String()
	}
	if t := s.Table(); t != nil {
		t.SetDialect(s.dialect)
		return t.C(column)
	}
	return column
}

// Clone returns a duplicate of the selector, including all associated steps.
func (s *Selector) Clone() *Selector {
	if s == nil {
		return nil
	}
	joins := make([]join, len(s.joins))
	copy(joins, s.joins)
	c := *s
	c.Builder = s.Builder.new()
	c.joins = joins
	c.columns = append([]string(nil), s.columns...)
	c.order = append([]string(nil), s.order...)
	c.group = append([]string(nil), s.group...)
	c.where = s.where.clone()
	c.having = s.having.clone()
	return &c
}

// Query returns query representation of a `SELECT` statement.
func (s *Selector) Query() (string, []any) {
	b := s.Builder.new()
	b.WriteString("SELECT ")
	if s.distinct {
		b.WriteString("DISTINCT ")
	}
	if len(s.columns) > 0 {
		b.IdentComma(s.columns...)
	} else {
		b.WriteString("*")
	}
	if s.from != nil {
		b.WriteString(" FROM ")
		s.joinView(&b, s.from)
	}
	for _, j := range s.joins {
		b.Pad().WriteString(j.kind).Pad()
		s.joinView(&b, j.table)
		if j.on != nil {
			b.WriteString(" ON ")
			b.Join(j.on)
		}
	}
	if s.where != nil {
		b.WriteString(" WHERE ")
		b.Join(s.where)
	}
	if len(s.group) > 0 {
		b.WriteString(" GROUP BY ")
		b.IdentComma(s.group...)
	}
	if s.having != nil {
		b.WriteString(" HAVING ")
		b.Join(s.having)
	}
	if len(s.order) > 0 {
		b.WriteString(" ORDER BY ")
		b.IdentComma(s.order...)
	}
	s.joinLimit(&b)
	if s.lock != "" {
		b.WriteString(" FOR ")
		b.WriteString(string(s.lock))
	}
	s.total = b.total
	s.AddError(b.Err())
	return b.String(), b.args
}

// joinView writes the given table view to the SELECT statement.
func (s *Selector) joinView(b *Builder, t TableView) {
	switch view := t.(type) {
	case *SelectTable:
		view.SetDialect(s.dialect)
		b.WriteString(view.ref())
	case *Selector:
		view.SetDialect(s.dialect)
		b.Nested(func(b *Builder) {
			b.Join(view)
		})
		if view.as != "" {
			b.WriteString(" AS ")
			b.Ident(view.as)
		}
	}
}

// joinLimit writes the pagination clauses of the configured dialect.
// T-SQL pages with OFFSET/FETCH and requires an ORDER BY clause.
func (s *Selector) joinLimit(b *Builder) {
	if b.mssql() && (s.limit != nil || s.offset != nil) {
		if len(s.order) == 0 {
			b.WriteString(" ORDER BY (SELECT NULL)")
		}
		offset := 0
		if s.offset != nil {
			offset = *s.offset
		}
		b.WriteString(" OFFSET ").WriteString(strconv.Itoa(offset)).WriteString(" ROWS")
		if s.limit != nil {
			b.WriteString(" FETCH NEXT ").WriteString(strconv.Itoa(*s.limit)).WriteString(" ROWS ONLY")
		}
		return
	}
	if s.limit != nil {
		b.WriteString(" LIMIT ").WriteString(strconv.Itoa(*s.limit))
	}
	if s.offset != nil {
		b.WriteString(" OFFSET ").WriteString(strconv.Itoa(*s.offset))
	}
}

// implement the TableView interface.
func (*Selector) view() {}

// Asc adds the ASC suffix for the given column.
func Asc(column string) string {
	b := &Builder{}
	b.Ident(column).WriteString(" ASC")
	return b.String()
}

// Desc adds the DESC suffix for the given column.
func Desc(column string) string {
	b := &Builder{}
	b.Ident(column).WriteString(" DESC")
	return b.String()
}

// Predicate is a where predicate.
type Predicate struct {
	Builder
	depth int
	fns   []func(*Builder)
}

// P creates a new predicate.
//
//	P().EQ("name", "mira").And().EQ("age", 30)
func P(fns ...func(*Builder)) *Predicate {
	return &Predicate{fns: fns}
}

// Append appends a new function to the predicate callbacks.
// The callback list are executed on call to Query.
func (p *Predicate) Append(f func(*Builder)) *Predicate {
	p.fns = append(p.fns, f)
	return p
}

// Query returns query representation of a predicate.
func (p *Predicate) Query() (string, []any) {
	if p.Len() > 0 || len(p.args) > 0 {
		p.Reset()
		p.args = nil
	}
	for _, f := range p.fns {
		f(&p.Builder)
	}
	return p.String(), p.args
}

// clone returns a shallow clone of p.
func (p *Predicate) clone() *Predicate {
	if p == nil {
		return nil
	}
	return P(p.fns...)
}

// And combines all given predicates with AND between them.
func And(preds ...*Predicate) *Predicate {
	p := P()
	return p.Append(func(b *Builder) {
		p.mayWrap(b, preds, "AND")
	})
}

// Or combines all given predicates with OR between them.
func Or(preds ...*Predicate) *Predicate {
	p := P()
	return p.Append(func(b *Builder) {
		p.mayWrap(b, preds, "OR")
	})
}

// Not wraps the given predicate with the NOT operator.
func Not(pred *Predicate) *Predicate {
	return P().Append(func(b *Builder) {
		b.WriteString("NOT ")
		b.Nested(func(b *Builder) {
			b.Join(pred)
		})
	})
}

// mayWrap wraps the predicate group with parens if it
// is a nested group with more than one member.
func (p *Predicate) mayWrap(b *Builder, preds []*Predicate, op string) {
	switch n := len(preds); {
	case n == 1:
		preds[0].depth = p.depth
		b.Join(preds[0])
		return
	case n > 1 && p.depth > 0:
		b.WriteByte('(')
		defer b.WriteByte(')')
	}
	for i := range preds {
		preds[i].depth = p.depth + 1
		if i > 0 {
			b.Pad().WriteString(op).Pad()
		}
		if len(preds[i].fns) > 1 {
			b.Nested(func(b *Builder) {
				b.Join(preds[i])
			})
		} else {
			b.Join(preds[i])
		}
	}
}

// ColumnsEQ appends a "=" predicate between 2 columns.
func ColumnsEQ(col1, col2 string) *Predicate {
	return P().Append(func(b *Builder) {
		b.Ident(col1).WriteOp(OpEQ).Ident(col2)
	})
}

// EQ returns a "=" predicate.
func EQ(col string, value any) *Predicate {
	return P().EQ(col, value)
}

// EQ appends a "=" predicate.
func (p *Predicate) EQ(col string, arg any) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col).WriteOp(OpEQ).Arg(arg)
	})
}

// NEQ returns a "<>" predicate.
func NEQ(col string, value any) *Predicate {
	return P().NEQ(col, value)
}

// NEQ appends a "<>" predicate.
func (p *Predicate) NEQ(col string, arg any) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col).WriteOp(OpNEQ).Arg(arg)
	})
}

// GT returns a ">" predicate.
func GT(col string, value any) *Predicate {
	return P().GT(col, value)
}

// GT appends a ">" predicate.
func (p *Predicate) GT(col string, arg any) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col).WriteOp(OpGT).Arg(arg)
	})
}

// GTE returns a ">=" predicate.
func GTE(col string, value any) *Predicate {
	return P().GTE(col, value)
}

// GTE appends a ">=" predicate.
func (p *Predicate) GTE(col string, arg any) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col).WriteOp(OpGTE).Arg(arg)
	})
}

// LT returns a "<" predicate.
func LT(col string, value any) *Predicate {
	return P().LT(col, value)
}

// LT appends a "<" predicate.
func (p *Predicate) LT(col string, arg any) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col).WriteOp(OpLT).Arg(arg)
	})
}

// LTE returns a "<=" predicate.
func LTE(col string, value any) *Predicate {
	return P().LTE(col, value)
}

// LTE appends a "<=" predicate.
func (p *Predicate) LTE(col string, arg any) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col).WriteOp(OpLTE).Arg(arg)
	})
}

// In returns an "IN" predicate.
func In(col string, args ...any) *Predicate {
	return P().In(col, args...)
}

// In appends an "IN" predicate. An empty list limits
// the statement to no rows, like the database would.
func (p *Predicate) In(col string, args ...any) *Predicate {
	// If the predicate is a sub-query,
	// apply it to the format: "IN (SELECT ...)".
	if len(args) == 1 {
		if q, ok := args[0].(Querier); ok {
			return p.Append(func(b *Builder) {
				b.Ident(col).WriteOp(OpIn)
				b.Nested(func(b *Builder) {
					b.Join(q)
				})
			})
		}
	}
	return p.Append(func(b *Builder) {
		if len(args) == 0 {
			b.WriteString("FALSE")
			return
		}
		b.Ident(col).WriteOp(OpIn)
		b.WriteByte('(').Args(args...).WriteByte(')')
	})
}

// NotIn returns a "NOT IN" predicate.
func NotIn(col string, args ...any) *Predicate {
	return P().NotIn(col, args...)
}

// NotIn appends a "NOT IN" predicate.
func (p *Predicate) NotIn(col string, args ...any) *Predicate {
	if len(args) == 1 {
		if q, ok := args[0].(Querier); ok {
			return p.Append(func(b *Builder) {
				b.Ident(col).WriteOp(OpNotIn)
				b.Nested(func(b *Builder) {
					b.Join(q)
				})
			})
		}
	}
	return p.Append(func(b *Builder) {
		if len(args) == 0 {
			b.WriteString("TRUE")
			return
		}
		b.Ident(col).WriteOp(OpNotIn)
		b.WriteByte('(').Args(args...).WriteByte(')')
	})
}

// IsNull returns an "IS NULL" predicate.
func IsNull(col string) *Predicate {
	return P().IsNull(col)
}

// IsNull appends an "IS NULL" predicate.
func (p *Predicate) IsNull(col string) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col).WriteOp(OpIsNull)
	})
}

// NotNull returns an "IS NOT NULL" predicate.
func NotNull(col string) *Predicate {
	return P().NotNull(col)
}

// NotNull appends an "IS NOT NULL" predicate.
func (p *Predicate) NotNull(col string) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col).WriteOp(OpNotNull)
	})
}

// Like returns a "LIKE" predicate.
func Like(col, pattern string) *Predicate {
	return P().Like(col, pattern)
}

// Like appends a "LIKE" predicate.
func (p *Predicate) Like(col, pattern string) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col).WriteOp(OpLike).Arg(pattern)
	})
}

// Contains returns a "LIKE %substr%" predicate.
func Contains(col, substr string) *Predicate {
	return P().Contains(col, substr)
}

// Contains appends a "LIKE %substr%" predicate.
func (p *Predicate) Contains(col, substr string) *Predicate {
	return p.Like(col, "%"+substr+"%")
}

// HasPrefix returns a "LIKE prefix%" predicate.
func HasPrefix(col, prefix string) *Predicate {
	return P().HasPrefix(col, prefix)
}

// HasPrefix appends a "LIKE prefix%" predicate.
func (p *Predicate) HasPrefix(col, prefix string) *Predicate {
	return p.Like(col, prefix+"%")
}

// HasSuffix returns a "LIKE %suffix" predicate.
func HasSuffix(col, suffix string) *Predicate {
	return P().HasSuffix(col, suffix)
}

// HasSuffix appends a "LIKE %suffix" predicate.
func (p *Predicate) HasSuffix(col, suffix string) *Predicate {
	return p.Like(col, "%"+suffix)
}

// ContainsFold returns a case-folded variant of the Contains predicate.
func ContainsFold(col, substr string) *Predicate {
	return P().ContainsFold(col, substr)
}

// ContainsFold appends a case-folded variant of the Contains predicate.
func (p *Predicate) ContainsFold(col, substr string) *Predicate {
	return p.likeFold(col, "%"+substr+"%")
}

// EqualFold returns a case-folded variant of the "=" predicate.
func EqualFold(col, value string) *Predicate {
	return P().EqualFold(col, value)
}

// EqualFold appends a case-folded variant of the "=" predicate.
func (p *Predicate) EqualFold(col, value string) *Predicate {
	return p.Append(func(b *Builder) {
		switch b.dialect {
		case dialect.MySQL:
			// The default utf8mb4 collations compare case-insensitively.
			b.Ident(col).WriteOp(OpEQ).Arg(value)
		default:
			b.WriteString("LOWER(").Ident(col).WriteByte(')')
			b.WriteOp(OpEQ).Arg(strings.ToLower(value))
		}
	})
}

// likeFold appends a case-folded LIKE predicate with the given pattern.
func (p *Predicate) likeFold(col, pattern string) *Predicate {
	return p.Append(func(b *Builder) {
		switch b.dialect {
		case dialect.MySQL:
			b.Ident(col).WriteOp(OpLike).Arg(pattern)
		case dialect.Postgres:
			b.Ident(col).WriteString(" ILIKE ").Arg(pattern)
		default:
			b.WriteString("LOWER(").Ident(col).WriteByte(')')
			b.WriteOp(OpLike).Arg(strings.ToLower(pattern))
		}
	})
}

// ExprP returns an expression predicate with the given args.
//
//	sql.ExprP("tags @> ?", pq.Array([]string{"go"}))
func ExprP(exp string, args ...any) *Predicate {
	return P().Append(func(b *Builder) {
		b.Join(Expr(exp, args...))
	})
}

// FieldEQ returns a function that sets a "=" predicate on the field.
func FieldEQ(name string, v any) func(*Selector) {
	return func(s *Selector) {
		s.Where(EQ(s.C(name), v))
	}
}

// FieldNEQ returns a function that sets a "<>" predicate on the field.
func FieldNEQ(name string, v any) func(*Selector) {
	return func(s *Selector) {
		s.Where(NEQ(s.C(name), v))
	}
}

// FieldGT returns a function that sets a ">" predicate on the field.
func FieldGT(name string, v any) func(*Selector) {
	return func(s *Selector) {
		s.Where(GT(s.C(name), v))
	}
}

// FieldGTE returns a function that sets a ">=" predicate on the field.
func FieldGTE(name string, v any) func(*Selector) {
	return func(s *Selector) {
		s.Where(GTE(s.C(name), v))
	}
}

// FieldLT returns a function that sets a "<" predicate on the field.
func FieldLT(name string, v any) func(*Selector) {
	return func(s *Selector) {
		s.Where(LT(s.C(name), v))
	}
}

// FieldLTE returns a function that sets a "<=" predicate on the field.
func FieldLTE(name string, v any) func(*Selector) {
	return func(s *Selector) {
		s.Where(LTE(s.C(name), v))
	}
}

// FieldIn returns a function that sets an "IN" predicate on the field.
func FieldIn[T any](name string, vs ...T) func(*Selector) {
	return func(s *Selector) {
		v := make([]any, len(vs))
		for i := range v {
			v[i] = vs[i]
		}
		s.Where(In(s.C(name), v...))
	}
}

// FieldNotIn returns a function that sets a "NOT IN" predicate on the field.
func FieldNotIn[T any](name string, vs ...T) func(*Selector) {
	return func(s *Selector) {
		v := make([]any, len(vs))
		for i := range v {
			v[i] = vs[i]
		}
		s.Where(NotIn(s.C(name), v...))
	}
}

// FieldIsNull returns a function that sets an "IS NULL" predicate on the field.
func FieldIsNull(name string) func(*Selector) {
	return func(s *Selector) {
		s.Where(IsNull(s.C(name)))
	}
}

// FieldNotNull returns a function that sets an "IS NOT NULL" predicate on the field.
func FieldNotNull(name string) func(*Selector) {
	return func(s *Selector) {
		s.Where(NotNull(s.C(name)))
	}
}

// FieldContains returns a function that sets a substring predicate on the field.
func FieldContains(name, substr string) func(*Selector) {
	return func(s *Selector) {
		s.Where(Contains(s.C(name), substr))
	}
}

// FieldContainsFold returns a function that sets a case-folded substring predicate on the field.
func FieldContainsFold(name, substr string) func(*Selector) {
	return func(s *Selector) {
		s.Where(ContainsFold(s.C(name), substr))
	}
}

// FieldHasPrefix returns a function that sets a prefix predicate on the field.
func FieldHasPrefix(name, prefix string) func(*Selector) {
	return func(s *Selector) {
		s.Where(HasPrefix(s.C(name), prefix))
	}
}

// FieldHasSuffix returns a function that sets a suffix predicate on the field.
func FieldHasSuffix(name, suffix string) func(*Selector) {
	return func(s *Selector) {
		s.Where(HasSuffix(s.C(name), suffix))
	}
}

// FieldEqualFold returns a function that sets a case-folded "=" predicate on the field.
func FieldEqualFold(name, value string) func(*Selector) {
	return func(s *Selector) {
		s.Where(EqualFold(s.C(name), value))
	}
}

// InsertBuilder is a builder for the INSERT statement.
type InsertBuilder struct {
	Builder
	table     string
	schema    string
	columns   []string
	defaults  bool
	returning []string
	values    [][]any
}

// Insert creates a builder for the INSERT statement.
//
//	sql.Insert("users").Columns("name", "age").Values("mira", 10)
func Insert(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

// Schema sets the database name for the insert table.
func (i *InsertBuilder) Schema(name string) *InsertBuilder {
	i.schema = name
	return i
}

// Columns appends columns to the INSERT statement.
func (i *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	i.columns = append(i.columns, columns...)
	return i
}

// Values appends a value tuple to the INSERT statement.
func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	i.values = append(i.values, values)
	return i
}

// Set is a syntactic sugar API for inserting only one row.
func (i *InsertBuilder) Set(column string, v any) *InsertBuilder {
	i.columns = append(i.columns, column)
	if len(i.values) == 0 {
		i.values = append(i.values, []any{v})
	} else {
		i.values[0] = append(i.values[0], v)
	}
	return i
}

// Default sets the default values clause on the INSERT statement.
func (i *InsertBuilder) Default() *InsertBuilder {
	i.defaults = true
	return i
}

// Returning adds the given columns to the RETURNING clause
// of the statement. Supported by SQLite and PostgreSQL; T-SQL
// uses the equivalent OUTPUT clause. MySQL ignores it.
func (i *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	i.returning = columns
	return i
}

// Query returns query representation of an `INSERT INTO` statement.
func (i *InsertBuilder) Query() (string, []any) {
	b := i.Builder.new()
	b.WriteString("INSERT INTO ")
	if i.schema != "" {
		b.Ident(i.schema).WriteByte('.')
	}
	b.Ident(i.table)
	if len(i.columns) > 0 {
		b.Pad().Nested(func(b *Builder) {
			b.IdentComma(i.columns...)
		})
	}
	if b.mssql() && len(i.returning) > 0 {
		joinOutput(&b, i.returning)
	}
	if i.defaults && len(i.columns) == 0 {
		i.writeDefault(&b)
	} else {
		b.WriteString(" VALUES ")
		for j, v := range i.values {
			if j > 0 {
				b.Comma()
			}
			b.Nested(func(b *Builder) {
				b.Args(v...)
			})
		}
	}
	joinReturning(&b, i.returning)
	i.total = b.total
	i.AddError(b.Err())
	return b.String(), b.args
}

// writeDefault writes the default-values clause of the configured dialect.
func (i *InsertBuilder) writeDefault(b *Builder) {
	switch i.Dialect() {
	case dialect.MySQL:
		b.WriteString(" () VALUES ()")
	default:
		b.WriteString(" DEFAULT VALUES")
	}
}

// joinReturning writes the RETURNING clause on dialects that support it.
func joinReturning(b *Builder, columns []string) {
	if len(columns) == 0 || (!b.postgres() && !b.sqlite()) {
		return
	}
	b.WriteString(" RETURNING ")
	b.IdentComma(columns...)
}

// joinOutput writes the T-SQL OUTPUT clause. It precedes the VALUES
// clause and reads the inserted or updated rows.
func joinOutput(b *Builder, columns []string) {
	b.WriteString(" OUTPUT ")
	for i, c := range columns {
		if i > 0 {
			b.Comma()
		}
		b.WriteString("INSERTED.")
		b.Ident(c)
	}
}

// UpdateBuilder is a builder for the UPDATE statement.
type UpdateBuilder struct {
	Builder
	table     string
	schema    string
	where     *Predicate
	columns   []string
	returning []string
	values    []any
}

// Update creates a builder for the UPDATE statement.
//
//	sql.Update("users").Set("name", "mira").Where(sql.EQ("id", 1))
func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Schema sets the database name for the updated table.
func (u *UpdateBuilder) Schema(name string) *UpdateBuilder {
	u.schema = name
	return u
}

// Set sets a column to the given value. Querier values
// are embedded in the statement as expressions.
func (u *UpdateBuilder) Set(column string, v any) *UpdateBuilder {
	u.columns = append(u.columns, column)
	u.values = append(u.values, v)
	return u
}

// Where adds a where predicate for the update statement.
func (u *UpdateBuilder) Where(p *Predicate) *UpdateBuilder {
	if u.where != nil {
		u.where = And(u.where, p)
	} else {
		u.where = p
	}
	return u
}

// Returning adds the given columns to the RETURNING clause of the statement.
func (u *UpdateBuilder) Returning(columns ...string) *UpdateBuilder {
	u.returning = columns
	return u
}

// Empty reports whether this builder does not contain update changes.
func (u *UpdateBuilder) Empty() bool {
	return len(u.columns) == 0
}

// Query returns query representation of an `UPDATE` statement.
func (u *UpdateBuilder) Query() (string, []any) {
	b := u.Builder.new()
	b.WriteString("UPDATE ")
	if u.schema != "" {
		b.Ident(u.schema).WriteByte('.')
	}
	b.Ident(u.table)
	b.WriteString(" SET ")
	for j, column := range u.columns {
		if j > 0 {
			b.Comma()
		}
		b.Ident(column).WriteOp(OpEQ).Arg(u.values[j])
	}
	if b.mssql() && len(u.returning) > 0 {
		joinOutput(&b, u.returning)
	}
	if u.where != nil {
		b.WriteString(" WHERE ")
		b.Join(u.where)
	}
	joinReturning(&b, u.returning)
	u.total = b.total
	u.AddError(b.Err())
	return b.String(), b.args
}

// DeleteBuilder is a builder for the DELETE statement.
type DeleteBuilder struct {
	Builder
	table  string
	schema string
	where  *Predicate
}

// Delete creates a builder for the DELETE statement.
//
//	sql.Delete("users").Where(sql.EQ("id", 1))
func Delete(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

// Schema sets the database name for the deleted table.
func (d *DeleteBuilder) Schema(name string) *DeleteBuilder {
	d.schema = name
	return d
}

// Where appends a where predicate to the DELETE statement.
func (d *DeleteBuilder) Where(p *Predicate) *DeleteBuilder {
	if d.where != nil {
		d.where = And(d.where, p)
	} else {
		d.where = p
	}
	return d
}

// Query returns query representation of a `DELETE` statement.
func (d *DeleteBuilder) Query() (string, []any) {
	b := d.Builder.new()
	b.WriteString("DELETE FROM ")
	if d.schema != "" {
		b.Ident(d.schema).WriteByte('.')
	}
	b.Ident(d.table)
	if d.where != nil {
		b.WriteString(" WHERE ")
		b.Join(d.where)
	}
	d.total = b.total
	d.AddError(b.Err())
	return b.String(), b.args
}

// ColumnBuilder is a builder for column definitions in CREATE TABLE statements.
type ColumnBuilder struct {
	Builder
	typ   string
	name  string
	attr  string
	fk    *ForeignKeyBuilder
	check func(*Builder)
}

// Column returns a new ColumnBuilder with the given name.
//
//	sql.Column("group_id").Type("int").Attr("UNIQUE")
func Column(name string) *ColumnBuilder {
	return &ColumnBuilder{name: name}
}

// Type sets the column type.
func (c *ColumnBuilder) Type(t string) *ColumnBuilder {
	c.typ = t
	return c
}

// Attr sets an extra attribute for the column, like UNIQUE or AUTO_INCREMENT.
func (c *ColumnBuilder) Attr(attr string) *ColumnBuilder {
	if c.attr != "" && attr != "" {
		c.attr += " "
	}
	c.attr += attr
	return c
}

// Constraint adds a foreign-key constraint to the column.
func (c *ColumnBuilder) Constraint(fk *ForeignKeyBuilder) *ColumnBuilder {
	c.fk = fk
	return c
}

// Check adds a CHECK clause to the column definition.
func (c *ColumnBuilder) Check(check func(*Builder)) *ColumnBuilder {
	c.check = check
	return c
}

// Query returns query representation of a column definition.
func (c *ColumnBuilder) Query() (string, []any) {
	b := c.Builder.new()
	b.Ident(c.name)
	if c.typ != "" {
		b.Pad().WriteString(c.typ)
	}
	if c.attr != "" {
		b.Pad().WriteString(c.attr)
	}
	if c.fk != nil {
		if c.fk.symbol != "" {
			b.WriteString(" CONSTRAINT ").Ident(c.fk.symbol)
		}
		b.Pad().Join(c.fk.ref)
		for _, action := range c.fk.actions {
			b.Pad().WriteString(action)
		}
	}
	if c.check != nil {
		b.WriteString(" CHECK ")
		b.Nested(c.check)
	}
	c.total = b.total
	return b.String(), b.args
}

// CreateTableBuilder is a builder for the CREATE TABLE statement.
type CreateTableBuilder struct {
	Builder
	name        string
	exists      bool
	charset     string
	collation   string
	options     string
	columns     []Querier
	primary     []string
	constraints []Querier
}

// CreateTable returns a builder for the CREATE TABLE statement.
//
//	sql.CreateTable("users").
//		Columns(
//			sql.Column("id").Type("int").Attr("auto_increment"),
//			sql.Column("name").Type("varchar(255)"),
//		).
//		PrimaryKey("id")
func CreateTable(name string) *CreateTableBuilder {
	return &CreateTableBuilder{name: name}
}

// IfNotExists appends the `IF NOT EXISTS` clause to the statement.
// T-SQL has no such clause; callers probe the catalog instead.
func (t *CreateTableBuilder) IfNotExists() *CreateTableBuilder {
	t.exists = true
	return t
}

// Column appends the given column to the table.
func (t *CreateTableBuilder) Column(c *ColumnBuilder) *CreateTableBuilder {
	t.columns = append(t.columns, c)
	return t
}

// Columns appends a list of columns to the table.
func (t *CreateTableBuilder) Columns(columns ...*ColumnBuilder) *CreateTableBuilder {
	t.columns = make([]Querier, 0, len(columns))
	for _, c := range columns {
		t.columns = append(t.columns, c)
	}
	return t
}

// PrimaryKey adds a primary-key constraint on the given columns.
func (t *CreateTableBuilder) PrimaryKey(columns ...string) *CreateTableBuilder {
	t.primary = append(t.primary, columns...)
	return t
}

// ForeignKeys adds a list of foreign-key constraints to the table.
func (t *CreateTableBuilder) ForeignKeys(fks ...*ForeignKeyBuilder) *CreateTableBuilder {
	for _, fk := range fks {
		t.constraints = append(t.constraints, fk)
	}
	return t
}

// Checks adds a list of CHECK constraints to the table.
func (t *CreateTableBuilder) Checks(checks ...func(*Builder)) *CreateTableBuilder {
	for _, check := range checks {
		t.constraints = append(t.constraints, &checkBuilder{check: check})
	}
	return t
}

// Charset appends the `CHARACTER SET` clause to the statement. MySQL only.
func (t *CreateTableBuilder) Charset(s string) *CreateTableBuilder {
	t.charset = s
	return t
}

// Collate appends the `COLLATE` clause to the statement. MySQL only.
func (t *CreateTableBuilder) Collate(s string) *CreateTableBuilder {
	t.collation = s
	return t
}

// Options appends additional options to the statement, like engine settings.
func (t *CreateTableBuilder) Options(s string) *CreateTableBuilder {
	t.options = s
	return t
}

// checkBuilder renders a table-level CHECK constraint.
type checkBuilder struct {
	Builder
	check func(*Builder)
}

// Query returns query representation of a CHECK constraint.
func (c *checkBuilder) Query() (string, []any) {
	b := c.Builder.new()
	b.WriteString("CHECK ")
	b.Nested(c.check)
	return b.String(), b.args
}

// Query returns query representation of a `CREATE TABLE` statement.
func (t *CreateTableBuilder) Query() (string, []any) {
	b := t.Builder.new()
	b.WriteString("CREATE TABLE ")
	if t.exists && !b.mssql() {
		b.WriteString("IF NOT EXISTS ")
	}
	b.Ident(t.name).Pad()
	b.Nested(func(b *Builder) {
		b.JoinComma(t.columns...)
		if len(t.primary) > 0 {
			b.Comma().WriteString("PRIMARY KEY")
			b.Nested(func(b *Builder) {
				b.IdentComma(t.primary...)
			})
		}
		if len(t.constraints) > 0 {
			b.Comma().JoinComma(t.constraints...)
		}
	})
	if t.charset != "" {
		b.WriteString(" CHARACTER SET " + t.charset)
	}
	if t.collation != "" {
		b.WriteString(" COLLATE " + t.collation)
	}
	if t.options != "" {
		b.WriteString(" " + t.options)
	}
	t.total = b.total
	t.AddError(b.Err())
	return b.String(), b.args
}

// ForeignKeyBuilder is a builder for foreign-key constraints.
type ForeignKeyBuilder struct {
	Builder
	symbol  string
	columns []string
	actions []string
	ref     *ReferenceBuilder
}

// ForeignKey returns a builder for the foreign-key constraint clause.
//
//	sql.ForeignKey().
//		Columns("group_id").
//		Reference(sql.Reference().Table("groups").Columns("id")).
//		OnDelete("CASCADE")
func ForeignKey(symbol ...string) *ForeignKeyBuilder {
	fk := &ForeignKeyBuilder{}
	if len(symbol) != 0 {
		fk.symbol = symbol[0]
	}
	return fk
}

// Symbol sets the constraint name of the foreign key.
func (fk *ForeignKeyBuilder) Symbol(s string) *ForeignKeyBuilder {
	fk.symbol = s
	return fk
}

// Columns sets the child columns of the foreign key.
func (fk *ForeignKeyBuilder) Columns(s ...string) *ForeignKeyBuilder {
	fk.columns = append(fk.columns, s...)
	return fk
}

// Reference sets the parent reference of the foreign key.
func (fk *ForeignKeyBuilder) Reference(r *ReferenceBuilder) *ForeignKeyBuilder {
	fk.ref = r
	return fk
}

// OnDelete sets the action taken when a referenced row is deleted.
func (fk *ForeignKeyBuilder) OnDelete(action string) *ForeignKeyBuilder {
	fk.actions = append(fk.actions, "ON DELETE "+action)
	return fk
}

// OnUpdate sets the action taken when a referenced row is updated.
func (fk *ForeignKeyBuilder) OnUpdate(action string) *ForeignKeyBuilder {
	fk.actions = append(fk.actions, "ON UPDATE "+action)
	return fk
}

// Query returns query representation of a foreign-key constraint.
func (fk *ForeignKeyBuilder) Query() (string, []any) {
	b := fk.Builder.new()
	if fk.symbol != "" {
		b.WriteString("CONSTRAINT ").Ident(fk.symbol).Pad()
	}
	b.WriteString("FOREIGN KEY")
	b.Nested(func(b *Builder) {
		b.IdentComma(fk.columns...)
	})
	if fk.ref != nil {
		b.Pad().Join(fk.ref)
	}
	for _, action := range fk.actions {
		b.Pad().WriteString(action)
	}
	return b.String(), b.args
}

// ReferenceBuilder is a builder for the parent reference of a foreign key.
type ReferenceBuilder struct {
	Builder
	table   string
	columns []string
}

// Reference creates a reference builder for the reference clause.
//
//	sql.Reference().Table("groups").Columns("id")
func Reference() *ReferenceBuilder {
	return &ReferenceBuilder{}
}

// Table sets the referenced table.
func (r *ReferenceBuilder) Table(s string) *ReferenceBuilder {
	r.table = s
	return r
}

// Columns sets the referenced columns.
func (r *ReferenceBuilder) Columns(s ...string) *ReferenceBuilder {
	r.columns = append(r.columns, s...)
	return r
}

// Query returns query representation of a reference clause.
func (r *ReferenceBuilder) Query() (string, []any) {
	b := r.Builder.new()
	b.WriteString("REFERENCES ")
	b.Ident(r.table)
	b.Nested(func(b *Builder) {
		b.IdentComma(r.columns...)
	})
	return b.String(), b.args
}

// IndexBuilder is a builder for the CREATE INDEX statement.
type IndexBuilder struct {
	Builder
	name    string
	unique  bool
	exists  bool
	table   string
	method  string
	columns []string
}

// CreateIndex creates a builder for the CREATE INDEX statement.
//
//	sql.CreateIndex("users_name").
//		Unique().
//		Table("users").
//		Columns("name")
func CreateIndex(name string) *IndexBuilder {
	return &IndexBuilder{name: name}
}

// IfNotExists appends the `IF NOT EXISTS` clause to the statement.
func (i *IndexBuilder) IfNotExists() *IndexBuilder {
	i.exists = true
	return i
}

// Unique sets the index to be a unique index.
func (i *IndexBuilder) Unique() *IndexBuilder {
	i.unique = true
	return i
}

// Table defines the table for the index.
func (i *IndexBuilder) Table(table string) *IndexBuilder {
	i.table = table
	return i
}

// Using sets the index method, like BTREE or GIN. PostgreSQL only.
func (i *IndexBuilder) Using(method string) *IndexBuilder {
	i.method = method
	return i
}

// Column appends a column to the index.
func (i *IndexBuilder) Column(column string) *IndexBuilder {
	i.columns = append(i.columns, column)
	return i
}

// Columns appends a list of columns to the index.
func (i *IndexBuilder) Columns(columns ...string) *IndexBuilder {
	i.columns = append(i.columns, columns...)
	return i
}

// Query returns query representation of a `CREATE INDEX` statement.
func (i *IndexBuilder) Query() (string, []any) {
	b := i.Builder.new()
	b.WriteString("CREATE ")
	if i.unique {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX ")
	if i.exists && !b.mysql() && !b.mssql() {
		// MySQL and T-SQL reject IF NOT EXISTS on indexes;
		// callers probe the catalog instead.
		b.WriteString("IF NOT EXISTS ")
	}
	b.Ident(i.name)
	b.WriteString(" ON ")
	b.Ident(i.table)
	if i.method != "" && b.postgres() {
		b.WriteString(" USING " + i.method)
	}
	b.Nested(func(b *Builder) {
		b.IdentComma(i.columns...)
	})
	return b.String(), b.args
}
