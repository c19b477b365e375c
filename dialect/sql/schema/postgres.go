package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/syssam/sqldata"
	"github.com/syssam/sqldata/dialect"
	"github.com/syssam/sqldata/dialect/sql"
)

// Postgres is a postgres-flavored schema migrator. It assumes the
// citext, hstore and postgis extensions were installed by the operator
// when the matching value domains are used.
type Postgres struct{}

// cType returns the PostgreSQL string type of the given column.
func (d *Postgres) cType(t *Table, c *Column) (string, error) {
	if s, ok := c.SchemaType[dialect.Postgres]; ok {
		return s, nil
	}
	switch c.Type {
	case sqldata.TypeBool:
		return "boolean", nil
	case sqldata.TypeInt:
		return "integer", nil
	case sqldata.TypeInt64:
		return "bigint", nil
	case sqldata.TypeFloat64:
		return "double precision", nil
	case sqldata.TypeDecimal:
		return "numeric", nil
	case sqldata.TypeString:
		if c.Size > 0 {
			return fmt.Sprintf("varchar(%d)", c.Size), nil
		}
		return "varchar", nil
	case sqldata.TypeText:
		return "text", nil
	case sqldata.TypeTime:
		return "timestamp with time zone", nil
	case sqldata.TypeDate:
		return "date", nil
	case sqldata.TypeUUID:
		return "uuid", nil
	case sqldata.TypeBytes:
		return "bytea", nil
	case sqldata.TypeEnum:
		// Enums are backed by a named type created in prepare.
		return pq.QuoteIdentifier(c.enumName(t)), nil
	case sqldata.TypeJSON:
		return "json", nil
	case sqldata.TypeJSONB:
		return "jsonb", nil
	case sqldata.TypeIntRange, sqldata.TypeBigIntRange, sqldata.TypeNumRange,
		sqldata.TypeTimeRange, sqldata.TypeDateRange:
		return c.Type.String(), nil
	case sqldata.TypeInet:
		return "inet", nil
	case sqldata.TypeCIDR:
		return "cidr", nil
	case sqldata.TypeMacAddr:
		return "macaddr", nil
	case sqldata.TypeHStore:
		return "hstore", nil
	case sqldata.TypeArray:
		elem, err := d.elemType(t, c)
		if err != nil {
			return "", err
		}
		return elem + "[]", nil
	case sqldata.TypeCIText:
		return "citext", nil
	case sqldata.TypeTSVector:
		return "tsvector", nil
	case sqldata.TypeGeometry:
		if c.SRID != 0 {
			return fmt.Sprintf("geometry(Geometry,%d)", c.SRID), nil
		}
		return "geometry", nil
	case sqldata.TypeGeography:
		if c.SRID != 0 {
			return fmt.Sprintf("geography(Geometry,%d)", c.SRID), nil
		}
		return "geography", nil
	default:
		return "", sqldata.NewUnsupportedTypeError(c.Type, dialect.Postgres)
	}
}

// elemType returns the array element type of the given column.
func (d *Postgres) elemType(t *Table, c *Column) (string, error) {
	switch {
	case !c.Elem.Valid():
		return "", fmt.Errorf("schema: array column %q requires an element domain", c.Name)
	case c.Elem == sqldata.TypeArray:
		return "", fmt.Errorf("schema: nested arrays are not supported for column %q", c.Name)
	}
	return d.cType(t, &Column{Name: c.Name, Type: c.Elem, Size: c.Size})
}

// cBuilder returns the column definition builder.
func (d *Postgres) cBuilder(t *Table, c *Column) (*sql.ColumnBuilder, error) {
	typ, err := d.cType(t, c)
	if err != nil {
		return nil, err
	}
	b := sql.Column(c.Name).Type(typ)
	if c.Collation != "" {
		b.Attr("COLLATE " + pq.QuoteIdentifier(c.Collation))
	}
	if c.Increment {
		if !c.Type.Integer() {
			return nil, fmt.Errorf("schema: increment column %q must be an integer domain", c.Name)
		}
		b.Attr("GENERATED BY DEFAULT AS IDENTITY")
	}
	if c.Unique {
		b.Attr("UNIQUE")
	}
	nullable(b, c)
	if lit, ok := defaultLiteral(c, pq.QuoteLiteral, boolWord); ok {
		b.Attr("DEFAULT " + lit)
	}
	return b, nil
}

// tableExist reports if the table exists in the connected schema.
func (d *Postgres) tableExist(ctx context.Context, conn dialect.ExecQuerier, t *Table) (bool, error) {
	if t.Schema != "" {
		return exist(ctx, conn, "SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE table_schema = $1 AND table_name = $2", t.Schema, t.Name)
	}
	return exist(ctx, conn, "SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE table_schema = CURRENT_SCHEMA() AND table_name = $1", t.Name)
}

// prepare creates the enum types backing the table columns. Types
// that already exist in the catalog are left untouched.
func (d *Postgres) prepare(ctx context.Context, conn dialect.ExecQuerier, t *Table) error {
	for _, c := range t.Columns {
		if c.Type != sqldata.TypeEnum {
			continue
		}
		stmt, err := d.enumStmt(t, c)
		if err != nil {
			return err
		}
		exists, err := exist(ctx, conn, "SELECT COUNT(*) FROM pg_type WHERE typname = $1", c.enumName(t))
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := conn.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("schema: create enum type %q: %w", c.enumName(t), err)
		}
	}
	return nil
}

// typePlan returns the CREATE TYPE statements that precede the
// CREATE TABLE statement of the given table in offline plans.
func (d *Postgres) typePlan(t *Table) ([]change, error) {
	var changes []change
	for _, c := range t.Columns {
		if c.Type != sqldata.TypeEnum {
			continue
		}
		stmt, err := d.enumStmt(t, c)
		if err != nil {
			return nil, err
		}
		changes = append(changes, change{
			cmd:     stmt,
			ident:   pq.QuoteIdentifier(c.enumName(t)),
			reverse: "DROP TYPE " + pq.QuoteIdentifier(c.enumName(t)),
			comment: fmt.Sprintf("create enum type %q", c.enumName(t)),
		})
	}
	return changes, nil
}

// enumStmt returns the CREATE TYPE statement of an enum column.
func (d *Postgres) enumStmt(t *Table, c *Column) (string, error) {
	values := c.enumValues()
	if len(values) == 0 {
		return "", fmt.Errorf("schema: enum column %q has no values", c.Name)
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = pq.QuoteLiteral(v)
	}
	return fmt.Sprintf("CREATE TYPE %s AS ENUM (%s)", pq.QuoteIdentifier(c.enumName(t)), strings.Join(quoted, ", ")), nil
}
