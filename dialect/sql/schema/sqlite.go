package schema

import (
	"context"
	"fmt"

	"github.com/syssam/sqldata"
	"github.com/syssam/sqldata/dialect"
	"github.com/syssam/sqldata/dialect/sql"
)

// SQLite is a sqlite3-flavored schema migrator.
type SQLite struct{}

// cType returns the SQLite string type of the given column.
func (d *SQLite) cType(t *Table, c *Column) (string, error) {
	if s, ok := c.SchemaType[dialect.SQLite]; ok {
		return s, nil
	}
	switch c.Type {
	case sqldata.TypeBool:
		return "bool", nil
	case sqldata.TypeInt, sqldata.TypeInt64:
		return "integer", nil
	case sqldata.TypeFloat64:
		return "real", nil
	case sqldata.TypeDecimal:
		return "decimal", nil
	case sqldata.TypeString, sqldata.TypeText, sqldata.TypeCIText:
		return "text", nil
	case sqldata.TypeTime:
		return "datetime", nil
	case sqldata.TypeDate:
		return "date", nil
	case sqldata.TypeUUID:
		return "uuid", nil
	case sqldata.TypeBytes:
		return "blob", nil
	case sqldata.TypeEnum:
		// Enums degrade to text with an IN check added in cBuilder.
		return "text", nil
	case sqldata.TypeJSON, sqldata.TypeJSONB:
		return "json", nil
	default:
		return "", sqldata.NewUnsupportedTypeError(c.Type, dialect.SQLite)
	}
}

// cBuilder returns the column definition builder.
func (d *SQLite) cBuilder(t *Table, c *Column) (*sql.ColumnBuilder, error) {
	typ, err := d.cType(t, c)
	if err != nil {
		return nil, err
	}
	b := sql.Column(c.Name).Type(typ)
	if c.Unique {
		b.Attr("UNIQUE")
	}
	nullable(b, c)
	if c.Increment {
		// SQLite allows auto-increment only on a single
		// INTEGER PRIMARY KEY column.
		if !c.Type.Integer() || len(t.PrimaryKey) != 1 || t.PrimaryKey[0] != c {
			return nil, fmt.Errorf("schema: increment column %q must be the single integer primary key", c.Name)
		}
		b.Attr("PRIMARY KEY AUTOINCREMENT")
	}
	if lit, ok := defaultLiteral(c, literal, boolWord); ok {
		b.Attr("DEFAULT " + lit)
	}
	switch {
	case c.Collation != "":
		b.Attr("COLLATE " + c.Collation)
	case c.Type == sqldata.TypeCIText:
		b.Attr("COLLATE NOCASE")
	}
	if c.Type == sqldata.TypeEnum {
		if err := checkIn(b, c); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// tableExist reports if the table exists in the connected database.
func (d *SQLite) tableExist(ctx context.Context, conn dialect.ExecQuerier, t *Table) (bool, error) {
	return exist(ctx, conn, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", t.Name)
}
