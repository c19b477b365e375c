package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/syssam/sqldata"
	"github.com/syssam/sqldata/dialect"
	"github.com/syssam/sqldata/dialect/sql"
)

// MySQL is a mysql-flavored schema migrator. It covers MariaDB as
// well, which shares the same DDL surface for the supported domains.
type MySQL struct{}

// cType returns the MySQL string type of the given column.
func (d *MySQL) cType(t *Table, c *Column) (string, error) {
	if s, ok := c.SchemaType[dialect.MySQL]; ok {
		return s, nil
	}
	switch c.Type {
	case sqldata.TypeBool:
		return "bool", nil
	case sqldata.TypeInt:
		return "int", nil
	case sqldata.TypeInt64:
		return "bigint", nil
	case sqldata.TypeFloat64:
		return "double", nil
	case sqldata.TypeDecimal:
		return "decimal", nil
	case sqldata.TypeString, sqldata.TypeCIText:
		// MySQL default collations compare case-insensitively,
		// so citext degrades to a plain varchar.
		size := c.Size
		if size == 0 {
			size = DefaultStringLen
		}
		if size > sqldata.BlobSizeDefault {
			return "longtext", nil
		}
		return fmt.Sprintf("varchar(%d)", size), nil
	case sqldata.TypeText:
		return "longtext", nil
	case sqldata.TypeTime:
		return "timestamp", nil
	case sqldata.TypeDate:
		return "date", nil
	case sqldata.TypeUUID:
		return "char(36)", nil
	case sqldata.TypeBytes:
		size := c.Size
		if size == 0 {
			size = sqldata.BlobSizeDefault
		}
		switch {
		case size <= sqldata.BlobSizeTiny:
			return "tinyblob", nil
		case size <= sqldata.BlobSizeDefault:
			return "blob", nil
		case size <= sqldata.BlobSizeMedium:
			return "mediumblob", nil
		default:
			return "longblob", nil
		}
	case sqldata.TypeEnum:
		values := c.enumValues()
		if len(values) == 0 {
			return "", fmt.Errorf("schema: enum column %q has no values", c.Name)
		}
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = literal(v)
		}
		return fmt.Sprintf("enum(%s)", strings.Join(quoted, ", ")), nil
	case sqldata.TypeJSON, sqldata.TypeJSONB:
		// MySQL has a single JSON type. The binary flavor
		// degrades to it without the jsonb guarantees.
		return "json", nil
	case sqldata.TypeGeometry:
		return "geometry", nil
	default:
		return "", sqldata.NewUnsupportedTypeError(c.Type, dialect.MySQL)
	}
}

// cBuilder returns the column definition builder.
func (d *MySQL) cBuilder(t *Table, c *Column) (*sql.ColumnBuilder, error) {
	typ, err := d.cType(t, c)
	if err != nil {
		return nil, err
	}
	b := sql.Column(c.Name).Type(typ)
	if c.Collation != "" {
		b.Attr("COLLATE " + c.Collation)
	}
	nullable(b, c)
	if lit, ok := defaultLiteral(c, literal, boolWord); ok {
		b.Attr("DEFAULT " + lit)
	}
	if c.Increment {
		if !c.Type.Integer() {
			return nil, fmt.Errorf("schema: increment column %q must be an integer domain", c.Name)
		}
		b.Attr("AUTO_INCREMENT")
	}
	if c.Unique {
		b.Attr("UNIQUE")
	}
	if c.Type.Spatial() && c.SRID != 0 {
		b.Attr(fmt.Sprintf("SRID %d", c.SRID))
	}
	if c.Comment != "" {
		b.Attr("COMMENT " + literal(c.Comment))
	}
	return b, nil
}

// tableExist reports if the table exists in the connected database.
func (d *MySQL) tableExist(ctx context.Context, conn dialect.ExecQuerier, t *Table) (bool, error) {
	if t.Schema != "" {
		return exist(ctx, conn, "SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?", t.Schema, t.Name)
	}
	return exist(ctx, conn, "SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = (SELECT DATABASE()) AND TABLE_NAME = ?", t.Name)
}
