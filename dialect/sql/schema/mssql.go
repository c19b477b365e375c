package schema

import (
	"context"
	"fmt"

	"github.com/syssam/sqldata"
	"github.com/syssam/sqldata/dialect"
	"github.com/syssam/sqldata/dialect/sql"
)

// nvarcharMaxLen is the longest explicit nvarchar length T-SQL
// accepts before the column must be declared as nvarchar(MAX).
const nvarcharMaxLen = 4000

// MSSQL is a T-SQL-flavored schema migrator.
type MSSQL struct{}

// cType returns the T-SQL string type of the given column.
func (d *MSSQL) cType(t *Table, c *Column) (string, error) {
	if s, ok := c.SchemaType[dialect.MSSQL]; ok {
		return s, nil
	}
	switch c.Type {
	case sqldata.TypeBool:
		return "bit", nil
	case sqldata.TypeInt:
		return "int", nil
	case sqldata.TypeInt64:
		return "bigint", nil
	case sqldata.TypeFloat64:
		return "float", nil
	case sqldata.TypeDecimal:
		return "decimal", nil
	case sqldata.TypeString, sqldata.TypeCIText:
		// The default T-SQL collations compare case-insensitively,
		// so citext degrades to a plain nvarchar.
		size := c.Size
		if size == 0 {
			size = DefaultStringLen
		}
		if size > nvarcharMaxLen {
			return "nvarchar(max)", nil
		}
		return fmt.Sprintf("nvarchar(%d)", size), nil
	case sqldata.TypeText:
		return "nvarchar(max)", nil
	case sqldata.TypeTime:
		return "datetimeoffset", nil
	case sqldata.TypeDate:
		return "date", nil
	case sqldata.TypeUUID:
		return "uniqueidentifier", nil
	case sqldata.TypeBytes:
		if c.Size > 0 && c.Size <= 8000 {
			return fmt.Sprintf("varbinary(%d)", c.Size), nil
		}
		return "varbinary(max)", nil
	case sqldata.TypeEnum:
		// Enums degrade to nvarchar with an IN check added in cBuilder.
		return fmt.Sprintf("nvarchar(%d)", DefaultStringLen), nil
	case sqldata.TypeJSON, sqldata.TypeJSONB:
		// Documents are stored as text with an ISJSON guard.
		return "nvarchar(max)", nil
	case sqldata.TypeGeometry:
		return "geometry", nil
	case sqldata.TypeGeography:
		return "geography", nil
	default:
		return "", sqldata.NewUnsupportedTypeError(c.Type, dialect.MSSQL)
	}
}

// cBuilder returns the column definition builder.
func (d *MSSQL) cBuilder(t *Table, c *Column) (*sql.ColumnBuilder, error) {
	typ, err := d.cType(t, c)
	if err != nil {
		return nil, err
	}
	b := sql.Column(c.Name).Type(typ)
	if c.Collation != "" {
		b.Attr("COLLATE " + c.Collation)
	}
	nullable(b, c)
	if c.Increment {
		if !c.Type.Integer() {
			return nil, fmt.Errorf("schema: increment column %q must be an integer domain", c.Name)
		}
		b.Attr("IDENTITY(1,1)")
	}
	if lit, ok := defaultLiteral(c, literal, boolBit); ok {
		b.Attr("DEFAULT " + lit)
	}
	if c.Unique {
		b.Attr("UNIQUE")
	}
	switch c.Type {
	case sqldata.TypeJSON, sqldata.TypeJSONB:
		name := c.Name
		b.Check(func(b *sql.Builder) {
			b.WriteString("ISJSON(").Ident(name).WriteString(") = 1")
		})
	case sqldata.TypeEnum:
		if err := checkIn(b, c); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// tableExist reports if the table exists in the connected database.
func (d *MSSQL) tableExist(ctx context.Context, conn dialect.ExecQuerier, t *Table) (bool, error) {
	if t.Schema != "" {
		return exist(ctx, conn, "SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2", t.Schema, t.Name)
	}
	return exist(ctx, conn, "SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = SCHEMA_NAME() AND TABLE_NAME = @p1", t.Name)
}
