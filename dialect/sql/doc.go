// Package sql implements the SQL layer of sqldata: a thin database/sql
// wrapper satisfying the dialect.Driver interface, and a dialect-aware
// statement builder the typed values in the root package ride on.
//
// # Drivers
//
// Open and OpenDB adapt a database/sql pool. The dialect name doubles
// as the driver name, so the matching driver must be linked in:
//
//	import _ "github.com/lib/pq"
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://localhost/sensors")
//	if err != nil {
//	    return err
//	}
//	defer drv.Close()
//
//	rows := &sql.Rows{}
//	if err := drv.Query(ctx, "SELECT id FROM sensors", []any{}, rows); err != nil {
//	    return err
//	}
//	defer rows.Close()
//
// Query scans into a *Rows; Exec takes nil or a *sql.Result. Tx and
// BeginTx start transactions with the same conventions.
//
// # Building Statements
//
// Dialect binds a builder factory to one engine. Identifier quoting and
// placeholders follow the engine: backticks and ? on MySQL and SQLite,
// double quotes and $n on PostgreSQL, brackets and @pn on SQL Server.
//
//	query, args := sql.Dialect(dialect.Postgres).
//	    Select("id", "recorded_at").
//	    From(sql.Table("readings")).
//	    Where(sql.And(sql.EQ("grade", "critical"), sql.GT("celsius", 40))).
//	    OrderBy(sql.Desc("recorded_at")).
//	    Limit(10).
//	    Query()
//
// Selector, InsertBuilder, UpdateBuilder and DeleteBuilder cover the
// DML forms, including RETURNING where the engine has it and OUTPUT on
// SQL Server, and ForUpdate/ForShare render the engine's row locking
// clauses. CreateTableBuilder, ColumnBuilder and IndexBuilder cover the
// DDL needed by the schema subpackage.
//
// # Predicates
//
// Predicates are plain values composed with And, Or and Not:
//
//	sql.EQ("status", "sealed")
//	sql.In("region", "eu-west", "us-east")
//	sql.IsNull("removed_at")
//	sql.ContainsFold("name", "roof")
//
// Anything the helpers do not model drops down to Expr or ExprP, which
// splice raw SQL with arguments:
//
//	sql.ExprP("window @> ?::int8range", "[5,10)")
//
// # Session Variables
//
// WithVar attaches engine session variables to a context. They are SET
// before the statement runs; on a pool the statement is pinned to a
// dedicated connection and the variables are reset when the rows close.
// SQLite and SQL Server have no SET <name> = '<value>' form and report
// an error.
//
//	ctx := sql.WithVar(ctx, "app.tenant", "acme")
//
// # Instrumentation
//
// NewStatsDriver counts queries, executions, failures and slow
// statements; contrib/prometheus exports the counters as metrics.
// NewDebugDriver logs every statement through log/slog during
// development.
//
// # Server Versions
//
// ServerVersion probes the connected engine; concurrent probes of the
// same driver share one round trip. The reported Version compares
// numerically and carries the flavor, which tells MariaDB and
// CockroachDB apart from the dialects they speak:
//
//	v, err := sql.ServerVersion(ctx, drv)
//	if err == nil && v.AtLeast(15, 0) {
//	    // ...
//	}
//
// # Constraint Errors
//
// Constraint failures reported by the lib/pq, go-sql-driver/mysql,
// modernc.org/sqlite and go-mssqldb drivers normalize to
// *ConstraintError:
//
//	if sql.IsUniqueConstraintError(err) {
//	    // handle the duplicate key
//	}
//
// The sqljson subpackage adds JSON document predicates and modifiers,
// and the schema subpackage builds and versions DDL for the types in
// the root package.
package sql
