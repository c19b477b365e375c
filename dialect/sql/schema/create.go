package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/syssam/sqldata/dialect"
	"github.com/syssam/sqldata/dialect/sql"
)

// sqlDialect decouples the dialect-specific fragments of the DDL
// generation. Implementations render column types for one dialect and
// reject value domains it cannot represent.
type sqlDialect interface {
	// cType returns the raw SQL type of the given column, or an
	// *sqldata.UnsupportedTypeError if the dialect cannot represent
	// its value domain.
	cType(t *Table, c *Column) (string, error)
	// cBuilder returns the column definition builder of the given column.
	cBuilder(t *Table, c *Column) (*sql.ColumnBuilder, error)
	// tableExist reports if the table exists in the connected database.
	tableExist(ctx context.Context, conn dialect.ExecQuerier, t *Table) (bool, error)
}

// preparer is implemented by dialects that must create named database
// types before the tables using them, like Postgres enums.
type preparer interface {
	prepare(ctx context.Context, conn dialect.ExecQuerier, t *Table) error
}

// change is a single planned DDL statement with its reversal.
type change struct {
	cmd     string
	reverse string
	comment string
	ident   string // quoted identifier of the created object, for deduplication.
}

// typePlanner is implemented by dialects whose tables need statements
// planned ahead of CREATE TABLE in offline migrations.
type typePlanner interface {
	typePlan(t *Table) ([]change, error)
}

// Create creates all schema resources in the database. It works in an
// append-only mode: new tables are created together with their indexes
// and constraints, and existing tables are left untouched.
func Create(ctx context.Context, drv dialect.Driver, tables []*Table, opts ...MigrateOption) error {
	m, err := NewMigrate(drv, opts...)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}

// create runs the creation flow on the given transaction.
func (m *Migrate) create(ctx context.Context, conn dialect.ExecQuerier, tables ...*Table) error {
	ordered := tables
	if m.withForeignKeys {
		var err error
		if ordered, err = sortTables(tables); err != nil {
			return err
		}
	}
	for _, t := range ordered {
		if m.schema != "" && t.Schema == "" {
			t.Schema = m.schema
		}
		exist, err := m.sqlDialect.tableExist(ctx, conn, t)
		if err != nil {
			return err
		}
		if exist {
			continue
		}
		if p, ok := m.sqlDialect.(preparer); ok {
			if err := p.prepare(ctx, conn, t); err != nil {
				return err
			}
		}
		b, err := m.tBuilder(t, true)
		if err != nil {
			return err
		}
		query, args := b.Query()
		if err := b.Err(); err != nil {
			return err
		}
		if err := conn.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("schema: create table %q: %w", t.Name, err)
		}
		for _, idx := range t.Indexes {
			query, args := m.iBuilder(t, idx, true).Query()
			if err := conn.Exec(ctx, query, args, nil); err != nil {
				return fmt.Errorf("schema: create index %q: %w", idx.Name, err)
			}
		}
	}
	return nil
}

// tBuilder returns the CREATE TABLE builder of the given table. The
// IF NOT EXISTS guard is skipped in offline plans, where revisions run
// exactly once.
func (m *Migrate) tBuilder(t *Table, ifNotExists bool) (*sql.CreateTableBuilder, error) {
	b := sql.Dialect(m.dialect).CreateTable(t.qname())
	if ifNotExists {
		b.IfNotExists()
	}
	for _, c := range t.Columns {
		cb, err := m.sqlDialect.cBuilder(t, c)
		if err != nil {
			return nil, err
		}
		b.Column(cb)
	}
	// A single increment column on SQLite must be declared
	// as INTEGER PRIMARY KEY AUTOINCREMENT on the column itself.
	if !m.inlinePK(t) {
		if pk := t.PrimaryKey; len(pk) > 0 {
			names := make([]string, len(pk))
			for i, c := range pk {
				names[i] = c.Name
			}
			b.PrimaryKey(names...)
		}
	}
	if m.withForeignKeys {
		for _, fk := range t.ForeignKeys {
			fkb, err := m.fkBuilder(fk)
			if err != nil {
				return nil, err
			}
			b.ForeignKeys(fkb)
		}
	}
	for _, expr := range t.Checks {
		expr := expr
		b.Checks(func(b *sql.Builder) {
			b.WriteString(expr)
		})
	}
	if m.dialect == dialect.MySQL {
		if t.Charset != "" {
			b.Charset(t.Charset)
		}
		if t.Collation != "" {
			b.Collate(t.Collation)
		}
		if t.Options != "" {
			b.Options(t.Options)
		}
	}
	return b, nil
}

// inlinePK reports if the primary key is rendered on the column
// definition instead of a table constraint.
func (m *Migrate) inlinePK(t *Table) bool {
	return m.dialect == dialect.SQLite && len(t.PrimaryKey) == 1 && t.PrimaryKey[0].Increment
}

// fkBuilder returns the foreign-key constraint builder.
func (m *Migrate) fkBuilder(fk *ForeignKey) (*sql.ForeignKeyBuilder, error) {
	if fk.RefTable == nil {
		return nil, fmt.Errorf("schema: missing reference table for foreign key %q", fk.Symbol)
	}
	symbol := fk.Symbol
	if symbol == "" {
		symbol = fk.RefTable.Name + "_" + fk.column()
	}
	b := sql.ForeignKey(symbol)
	for _, c := range fk.Columns {
		b.Columns(c.Name)
	}
	ref := sql.Reference().Table(fk.RefTable.qname())
	for _, c := range fk.RefColumns {
		ref.Columns(c.Name)
	}
	b.Reference(ref)
	if fk.OnDelete != "" {
		b.OnDelete(string(fk.OnDelete))
	}
	if fk.OnUpdate != "" {
		b.OnUpdate(string(fk.OnUpdate))
	}
	return b, nil
}

// iBuilder returns the CREATE INDEX builder of the given index.
func (m *Migrate) iBuilder(t *Table, idx *Index, ifNotExists bool) *sql.IndexBuilder {
	b := sql.Dialect(m.dialect).CreateIndex(idx.Name).Table(t.qname())
	if ifNotExists {
		b.IfNotExists()
	}
	if idx.Unique {
		b.Unique()
	}
	if idx.Method != "" {
		b.Using(idx.Method)
	}
	return b.Columns(idx.columnNames()...)
}

// sortTables returns the tables sorted in foreign-key dependency
// order, so referenced tables are created before their referrers.
// Self references stay in place. A reference cycle between distinct
// tables cannot be created inline and is reported as an error.
func sortTables(tables []*Table) ([]*Table, error) {
	byName := make(map[string]*Table, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}
	var (
		sorted  = make([]*Table, 0, len(tables))
		visited = make(map[string]int, len(tables))
	)
	const (
		unvisited = iota
		visiting
		done
	)
	var visit func(t *Table) error
	visit = func(t *Table) error {
		switch visited[t.Name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("schema: circular foreign-key references involving table %q. Create with WithForeignKeys(false) and add constraints manually", t.Name)
		}
		visited[t.Name] = visiting
		for _, fk := range t.ForeignKeys {
			ref := fk.RefTable
			if ref == nil || ref.Name == t.Name {
				continue
			}
			// References to tables outside this batch
			// are assumed to exist in the database.
			if _, ok := byName[ref.Name]; !ok {
				continue
			}
			if err := visit(byName[ref.Name]); err != nil {
				return err
			}
		}
		visited[t.Name] = done
		sorted = append(sorted, t)
		return nil
	}
	for _, t := range tables {
		if err := visit(t); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}

// nullable appends the NULL or NOT NULL attribute of the column.
func nullable(b *sql.ColumnBuilder, c *Column) {
	attr := "NOT NULL"
	if c.Nullable {
		attr = "NULL"
	}
	b.Attr(attr)
}

// checkIn appends an IN check restricting the column to its enum values.
func checkIn(b *sql.ColumnBuilder, c *Column) error {
	values := c.enumValues()
	if len(values) == 0 {
		return fmt.Errorf("schema: enum column %q has no values", c.Name)
	}
	name := c.Name
	b.Check(func(b *sql.Builder) {
		b.Ident(name).WriteString(" IN (")
		for i, v := range values {
			if i > 0 {
				b.Comma()
			}
			b.WriteString(literal(v))
		}
		b.WriteString(")")
	})
	return nil
}

// defaultLiteral renders the DEFAULT literal of the column, if the
// column carries one and its type supports the clause. Raw expressions
// pass through unquoted.
func defaultLiteral(c *Column, quote func(string) string, boolLit func(bool) string) (string, bool) {
	if c.Default == nil {
		return "", false
	}
	if expr, ok := c.Default.(Expr); ok {
		return string(expr), true
	}
	if !c.supportDefault() {
		return "", false
	}
	switch v := c.Default.(type) {
	case string:
		return quote(v), true
	case bool:
		return boolLit(v), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprintf("%v", v), true
	default:
		return "", false
	}
}

// literal quotes a string as a single-quoted SQL literal.
func literal(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// boolWord renders a bool as the TRUE/FALSE keyword literal.
func boolWord(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

// boolBit renders a bool as a bit literal. T-SQL has no bool keywords.
func boolBit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// exist runs a COUNT query and reports if it returned at least one row.
func exist(ctx context.Context, conn dialect.ExecQuerier, query string, args ...any) (bool, error) {
	rows := &sql.Rows{}
	if err := conn.Query(ctx, query, args, rows); err != nil {
		return false, fmt.Errorf("schema: reading catalog: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return false, err
		}
		return false, fmt.Errorf("schema: no rows returned from catalog query")
	}
	var n int
	if err := rows.Scan(&n); err != nil {
		return false, fmt.Errorf("schema: scanning count: %w", err)
	}
	return n > 0, nil
}
