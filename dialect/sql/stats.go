package sql

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/syssam/sqldata/dialect"
)

// QueryStats counts the statements executed through a StatsDriver.
// All counters advance atomically; failed statements still count
// toward the totals.
type QueryStats struct {
	// TotalQueries is the number of executed queries.
	TotalQueries atomic.Int64
	// TotalExecs is the number of executed statements.
	TotalExecs atomic.Int64
	// TotalDuration is the accumulated execution time in nanoseconds.
	TotalDuration atomic.Int64
	// SlowQueries is the number of statements above the slow threshold.
	SlowQueries atomic.Int64
	// Errors is the number of failed statements.
	Errors atomic.Int64
}

// Stats returns a point-in-time copy of the counters.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalExecs:    s.TotalExecs.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
	}
}

// Reset zeroes all counters.
func (s *QueryStats) Reset() {
	s.TotalQueries.Store(0)
	s.TotalExecs.Store(0)
	s.TotalDuration.Store(0)
	s.SlowQueries.Store(0)
	s.Errors.Store(0)
}

// StatsSnapshot is a consistent copy of QueryStats counters.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// AvgDuration returns the mean statement duration, or zero before the
// first statement.
func (s StatsSnapshot) AvgDuration() time.Duration {
	n := s.TotalQueries + s.TotalExecs
	if n == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(n)
}

// String renders the counters on one line for logs.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf("queries=%d execs=%d total=%s avg=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.AvgDuration(), s.SlowQueries, s.Errors)
}

// SlowQueryHook runs after a statement exceeds the slow threshold.
// It must not block; it runs on the statement's goroutine.
type SlowQueryHook func(ctx context.Context, query string, args []any, elapsed time.Duration)

// StatsDriver decorates a Driver with execution counters and an
// optional slow statement hook. The contrib/prometheus package
// exports its snapshots as metrics.
type StatsDriver struct {
	*Driver
	stats    *QueryStats
	slowNS   atomic.Int64
	slowHook SlowQueryHook
}

// StatsOption configures a StatsDriver.
type StatsOption func(*StatsDriver)

// WithSlowThreshold sets the duration above which a statement counts
// as slow. The default is 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsDriver) {
		s.slowNS.Store(int64(d))
	}
}

// WithSlowQueryHook runs hook for every slow statement.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *StatsDriver) {
		s.slowHook = hook
	}
}

// WithSlowQueryLog logs slow statements at warning level. A nil log
// uses slog.Default.
func WithSlowQueryLog(log *slog.Logger) StatsOption {
	return WithSlowQueryHook(func(ctx context.Context, query string, args []any, elapsed time.Duration) {
		if log == nil {
			log = slog.Default()
		}
		log.WarnContext(ctx, "slow statement", "elapsed", elapsed, "sql", query, "args", args)
	})
}

// NewStatsDriver wraps drv with statement counting:
//
//	drv = sql.NewStatsDriver(drv,
//	    sql.WithSlowThreshold(200*time.Millisecond),
//	    sql.WithSlowQueryLog(nil),
//	)
//	...
//	fmt.Println(drv.QueryStats().Stats())
func NewStatsDriver(drv *Driver, opts ...StatsOption) *StatsDriver {
	s := &StatsDriver{Driver: drv, stats: &QueryStats{}}
	s.slowNS.Store(int64(100 * time.Millisecond))
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenWithStats opens a dialect driver with statement counting in one
// call.
func OpenWithStats(dialect, source string, opts ...StatsOption) (*StatsDriver, error) {
	drv, err := Open(dialect, source)
	if err != nil {
		return nil, err
	}
	return NewStatsDriver(drv, opts...), nil
}

// QueryStats returns the live counters.
func (d *StatsDriver) QueryStats() *QueryStats {
	return d.stats
}

// SlowThreshold returns the current slow statement threshold.
func (d *StatsDriver) SlowThreshold() time.Duration {
	return time.Duration(d.slowNS.Load())
}

// SetSlowThreshold updates the slow statement threshold. It may be
// called while statements are in flight.
func (d *StatsDriver) SetSlowThreshold(threshold time.Duration) {
	d.slowNS.Store(int64(threshold))
}

// Query counts and forwards a query.
func (d *StatsDriver) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Query(ctx, query, args, v)
	d.observe(ctx, query, args, start, err, true)
	return err
}

// Exec counts and forwards a statement.
func (d *StatsDriver) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Exec(ctx, query, args, v)
	d.observe(ctx, query, args, start, err, false)
	return err
}

// Tx starts a transaction whose statements count as well.
func (d *StatsDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &statsTx{Tx: tx, drv: d}, nil
}

func (d *StatsDriver) observe(ctx context.Context, query string, args any, start time.Time, err error, isQuery bool) {
	elapsed := time.Since(start)
	if isQuery {
		d.stats.TotalQueries.Add(1)
	} else {
		d.stats.TotalExecs.Add(1)
	}
	d.stats.TotalDuration.Add(int64(elapsed))
	if err != nil {
		d.stats.Errors.Add(1)
	}
	if elapsed <= time.Duration(d.slowNS.Load()) {
		return
	}
	d.stats.SlowQueries.Add(1)
	if d.slowHook != nil {
		vs, _ := args.([]any)
		d.slowHook(ctx, query, vs, elapsed)
	}
}

type statsTx struct {
	dialect.Tx
	drv *StatsDriver
}

func (tx *statsTx) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Query(ctx, query, args, v)
	tx.drv.observe(ctx, query, args, start, err, true)
	return err
}

func (tx *statsTx) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Exec(ctx, query, args, v)
	tx.drv.observe(ctx, query, args, start, err, false)
	return err
}

var (
	_ dialect.Driver = (*StatsDriver)(nil)
	_ dialect.Tx     = (*statsTx)(nil)
)
