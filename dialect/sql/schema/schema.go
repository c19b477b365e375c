// Package schema contains all schema migration logic for SQL dialects.
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/sqldata"
)

// Column key kinds, following the information_schema COLUMN_KEY notation.
const (
	PrimaryKey = "PRI"
	UniqueKey  = "UNI"
)

// DefaultStringLen describes the default length for string/varchar types.
const DefaultStringLen int64 = 255

// Table represents a table definition to be created or planned.
type Table struct {
	Name        string
	Schema      string // optional schema qualifier.
	Comment     string
	Columns     []*Column
	columns     map[string]*Column
	Indexes     []*Index
	PrimaryKey  []*Column
	ForeignKeys []*ForeignKey
	Checks      []string // raw boolean expressions.
	Charset     string   // table character set. MySQL only.
	Collation   string   // table collation. MySQL only.
	Options     string   // extra table options, like engine settings.
}

// NewTable returns a new table with the given name.
func NewTable(name string) *Table {
	return &Table{
		Name:    name,
		columns: make(map[string]*Column),
	}
}

// SetSchema sets the schema (named-database) qualifier of the table.
func (t *Table) SetSchema(name string) *Table {
	t.Schema = name
	return t
}

// SetComment sets the table comment.
func (t *Table) SetComment(comment string) *Table {
	t.Comment = comment
	return t
}

// SetCharset sets the table character set. MySQL only.
func (t *Table) SetCharset(charset string) *Table {
	t.Charset = charset
	return t
}

// SetCollation sets the table collation. MySQL only.
func (t *Table) SetCollation(collation string) *Table {
	t.Collation = collation
	return t
}

// SetOptions sets extra table creation options, like engine settings.
func (t *Table) SetOptions(options string) *Table {
	t.Options = options
	return t
}

// AddPrimary adds a new primary-key column to the table.
func (t *Table) AddPrimary(c *Column) *Table {
	c.Key = PrimaryKey
	t.AddColumn(c)
	t.PrimaryKey = append(t.PrimaryKey, c)
	return t
}

// AddForeignKey adds a foreign-key constraint to the table.
func (t *Table) AddForeignKey(fk *ForeignKey) *Table {
	t.ForeignKeys = append(t.ForeignKeys, fk)
	return t
}

// AddColumn adds a new column to the table.
func (t *Table) AddColumn(c *Column) *Table {
	if t.columns == nil {
		t.columns = make(map[string]*Column, len(t.Columns))
	}
	t.columns[c.Name] = c
	t.Columns = append(t.Columns, c)
	return t
}

// HasColumn reports if the table contains a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// Column returns the column with the given name, if it exists.
func (t *Table) Column(name string) (*Column, bool) {
	if c, ok := t.columns[name]; ok {
		return c, true
	}
	// Columns that were assigned to the exported
	// slice directly, without going through AddColumn.
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// AddIndex creates and adds a new index to the table from the given options.
// Columns that do not exist in the table are skipped.
func (t *Table) AddIndex(name string, unique bool, columns []string) *Table {
	idx := &Index{
		Name:    name,
		Unique:  unique,
		Columns: make([]*Column, 0, len(columns)),
	}
	for _, name := range columns {
		if c, ok := t.Column(name); ok {
			idx.Columns = append(idx.Columns, c)
		}
	}
	t.Indexes = append(t.Indexes, idx)
	return t
}

// Index returns the index with the given name, if it exists.
func (t *Table) Index(name string) (*Index, bool) {
	for _, idx := range t.Indexes {
		if idx.Name == name {
			return idx, true
		}
	}
	return nil, false
}

// AddCheck adds a CHECK constraint with the given boolean expression.
func (t *Table) AddCheck(expr string) *Table {
	t.Checks = append(t.Checks, expr)
	return t
}

// qname returns the schema-qualified name of the table.
func (t *Table) qname() string {
	if t.Schema != "" {
		return t.Schema + "." + t.Name
	}
	return t.Name
}

// Column represents a column definition of a table.
type Column struct {
	Name       string            // column name.
	Type       sqldata.Type      // value domain of the column.
	Elem       sqldata.Type      // element domain for TypeArray columns.
	SchemaType map[string]string // raw SQL type per dialect, overrides the default mapping.
	Enum       *sqldata.EnumType // named enum descriptor. Takes precedence over Enums.
	Enums      []string          // enum values for columns without a named descriptor.
	Size       int64             // max size parameter for strings and blobs.
	SRID       int               // spatial reference identifier for spatial columns.
	Key        string            // key definition (PRI or UNI).
	Unique     bool              // column with a unique constraint.
	Increment  bool              // auto-increment column.
	Nullable   bool              // null or not null attribute.
	Default    any               // default value, or an Expr for raw expressions.
	Collation  string            // collation of string columns.
	Comment    string            // column comment. Rendered inline on MySQL only.
}

// Expr is a raw SQL expression. It can be used as a column
// default to avoid quoting, like Expr("CURRENT_TIMESTAMP").
type Expr string

// PrimaryKey reports if the column is part of the primary key.
func (c *Column) PrimaryKey() bool { return c.Key == PrimaryKey }

// UniqueKey reports if the column holds a unique-key constraint.
func (c *Column) UniqueKey() bool { return c.Key == UniqueKey }

// ConvertibleTo reports whether a column of this definition can be
// changed into the given definition without data loss.
func (c *Column) ConvertibleTo(d *Column) bool {
	switch {
	case c.Type == d.Type:
		if c.Size != 0 && d.Size != 0 && c.Size > d.Size {
			return false
		}
		return true
	case c.Type.Integer() && d.Type.Integer():
		// The only integer widening is int to int64.
		return c.Type == sqldata.TypeInt || d.Type == sqldata.TypeInt64
	case c.Type.Numeric() && d.Type.Float():
		return true
	case c.Type.Numeric() && d.Type == sqldata.TypeString:
		return true
	case c.Type == sqldata.TypeString && d.Type == sqldata.TypeEnum,
		c.Type == sqldata.TypeEnum && d.Type == sqldata.TypeString:
		return true
	case c.Type == sqldata.TypeString && d.Type == sqldata.TypeText,
		c.Type == sqldata.TypeString && d.Type == sqldata.TypeCIText,
		c.Type == sqldata.TypeCIText && d.Type == sqldata.TypeString,
		c.Type == sqldata.TypeCIText && d.Type == sqldata.TypeText:
		return true
	case c.Type == sqldata.TypeJSON && d.Type == sqldata.TypeJSONB,
		c.Type == sqldata.TypeJSONB && d.Type == sqldata.TypeJSON:
		// Both flavors share the document representation.
		return true
	}
	return false
}

// ScanDefault sets the default value of the column from
// its raw database string representation.
func (c *Column) ScanDefault(value string) error {
	switch {
	case strings.EqualFold(value, "null"):
		c.Default = nil
	case c.Type.Integer():
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("schema: default %q of column %q is not an integer: %w", value, c.Name, err)
		}
		c.Default = v
	case c.Type.Float():
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("schema: default %q of column %q is not a float: %w", value, c.Name, err)
		}
		c.Default = v
	case c.Type == sqldata.TypeBool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("schema: default %q of column %q is not a bool: %w", value, c.Name, err)
		}
		c.Default = v
	case c.Type == sqldata.TypeUUID, c.Type == sqldata.TypeTime, c.Type == sqldata.TypeDate:
		// Database functions like gen_random_uuid() or
		// CURRENT_TIMESTAMP are not scanned back as values.
		if !strings.Contains(value, "(") && !strings.HasPrefix(strings.ToUpper(value), "CURRENT_") {
			c.Default = value
		}
	case c.Type == sqldata.TypeBytes:
		c.Default = []byte(value)
	case c.Type == sqldata.TypeString, c.Type == sqldata.TypeText, c.Type == sqldata.TypeCIText,
		c.Type == sqldata.TypeEnum, c.Type == sqldata.TypeJSON, c.Type == sqldata.TypeJSONB:
		c.Default = value
	default:
		return fmt.Errorf("schema: unsupported default value for column %q of type %s", c.Name, c.Type)
	}
	return nil
}

// supportDefault reports if the column type supports a DEFAULT clause.
func (c Column) supportDefault() bool {
	switch t := c.Type; {
	case t == sqldata.TypeString, t == sqldata.TypeCIText, t == sqldata.TypeEnum:
		return c.Size < 1<<16 // not a text blob.
	case t == sqldata.TypeBool, t == sqldata.TypeTime, t == sqldata.TypeDate, t == sqldata.TypeUUID:
		return true
	default:
		return t.Numeric()
	}
}

// enumValues returns the declared values of an enum column.
func (c *Column) enumValues() []string {
	if c.Enum != nil {
		return c.Enum.Values()
	}
	return c.Enums
}

// enumName returns the name of the database type backing an enum
// column on dialects with named enum types.
func (c *Column) enumName(t *Table) string {
	if c.Enum != nil {
		return c.Enum.Name()
	}
	return t.Name + "_" + c.Name
}

// Index definition for table indexes.
type Index struct {
	Name    string
	Unique  bool
	Columns []*Column
	Method  string // index method, like GIN or GIST. Postgres only.
}

// columnNames returns the names of the index columns.
func (i *Index) columnNames() []string {
	names := make([]string, 0, len(i.Columns))
	for _, c := range i.Columns {
		names = append(names, c.Name)
	}
	return names
}

// ForeignKey definition of a table constraint.
type ForeignKey struct {
	Symbol     string          // foreign-key name (generated if empty).
	Columns    []*Column       // table columns.
	RefTable   *Table          // referenced table.
	RefColumns []*Column       // referenced columns.
	OnUpdate   ReferenceOption // action on update.
	OnDelete   ReferenceOption // action on delete.
}

// column returns the first column of the foreign key. Used
// for generating a fallback constraint symbol.
func (fk ForeignKey) column() string {
	if len(fk.Columns) > 0 {
		return fk.Columns[0].Name
	}
	return ""
}

// ReferenceOption for constraint actions.
type ReferenceOption string

// Reference options.
const (
	NoAction   ReferenceOption = "NO ACTION"
	Restrict   ReferenceOption = "RESTRICT"
	Cascade    ReferenceOption = "CASCADE"
	SetNull    ReferenceOption = "SET NULL"
	SetDefault ReferenceOption = "SET DEFAULT"
)

// ConstName returns the constant name of a reference option,
// as spelled in Go source. It is used by code generation tools.
func (r ReferenceOption) ConstName() string {
	parts := strings.Fields(strings.ToLower(string(r)))
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}

// indexOf returns the position of the column with the given
// name, or -1 if it is not part of the list.
func indexOf(columns []*Column, name string) int {
	for i, c := range columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}
