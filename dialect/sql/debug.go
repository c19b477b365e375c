package sql

import (
	"context"
	"log/slog"

	"github.com/syssam/sqldata/dialect"
)

// DebugDriver logs every statement at debug level before running it.
// Wrap a driver during development; the logging cost is paid on every
// statement, so production setups should prefer StatsDriver.
type DebugDriver struct {
	*Driver
	log *slog.Logger
}

// DebugOption configures a DebugDriver.
type DebugOption func(*DebugDriver)

// DebugWithLogger routes statement logs to log instead of
// slog.Default.
func DebugWithLogger(log *slog.Logger) DebugOption {
	return func(d *DebugDriver) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDebugDriver wraps drv with statement logging.
func NewDebugDriver(drv *Driver, opts ...DebugOption) *DebugDriver {
	d := &DebugDriver{Driver: drv, log: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Query logs and forwards a query.
func (d *DebugDriver) Query(ctx context.Context, query string, args, v any) error {
	d.log.DebugContext(ctx, "query", "sql", query, "args", args)
	return d.Driver.Query(ctx, query, args, v)
}

// Exec logs and forwards a statement.
func (d *DebugDriver) Exec(ctx context.Context, query string, args, v any) error {
	d.log.DebugContext(ctx, "exec", "sql", query, "args", args)
	return d.Driver.Exec(ctx, query, args, v)
}

// Tx starts a transaction whose statements are logged as well.
func (d *DebugDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		d.log.ErrorContext(ctx, "transaction begin failed", "error", err)
		return nil, err
	}
	d.log.DebugContext(ctx, "transaction started")
	return &debugTx{Tx: tx, log: d.log}, nil
}

type debugTx struct {
	dialect.Tx
	log *slog.Logger
}

func (tx *debugTx) Query(ctx context.Context, query string, args, v any) error {
	tx.log.DebugContext(ctx, "tx query", "sql", query, "args", args)
	return tx.Tx.Query(ctx, query, args, v)
}

func (tx *debugTx) Exec(ctx context.Context, query string, args, v any) error {
	tx.log.DebugContext(ctx, "tx exec", "sql", query, "args", args)
	return tx.Tx.Exec(ctx, query, args, v)
}

func (tx *debugTx) Commit() error {
	err := tx.Tx.Commit()
	if err != nil {
		tx.log.Error("transaction commit failed", "error", err)
		return err
	}
	tx.log.Debug("transaction committed")
	return nil
}

func (tx *debugTx) Rollback() error {
	err := tx.Tx.Rollback()
	if err != nil {
		tx.log.Error("transaction rollback failed", "error", err)
		return err
	}
	tx.log.Debug("transaction rolled back")
	return nil
}

var (
	_ dialect.Driver = (*DebugDriver)(nil)
	_ dialect.Tx     = (*debugTx)(nil)
)
