package compat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/syssam/sqldata/dialect"
	"github.com/syssam/sqldata/dialect/sql"
)

// UnsupportedServerError is returned by Check when the server reports
// a version outside the supported range of its dialect.
type UnsupportedServerError struct {
	// Dialect and Flavor identify the engine, e.g. "mysql"/"MariaDB".
	Dialect string
	Flavor  string
	// Version is the version the server reported.
	Version sql.Version
	// Min and Max bound the supported range. Max is zero when the
	// range has no upper bound.
	Min sql.Version
	Max sql.Version
}

func (e *UnsupportedServerError) Error() string {
	if (e.Max != sql.Version{}) && e.Version.Compare(e.Max) > 0 {
		return fmt.Sprintf("compat: %s %s is newer than the newest supported version %s", e.Flavor, e.Version, e.Max)
	}
	return fmt.Sprintf("compat: %s %s is older than the oldest supported version %s", e.Flavor, e.Version, e.Min)
}

type checkConfig struct {
	log *slog.Logger
	now func() time.Time
}

// CheckOption configures Check.
type CheckOption func(*checkConfig)

// WithLogger sets the logger Check emits warnings through. Defaults
// to slog.Default.
func WithLogger(l *slog.Logger) CheckOption {
	return func(c *checkConfig) { c.log = l }
}

// WithNow sets the clock used to evaluate release line status.
func WithNow(now func() time.Time) CheckOption {
	return func(c *checkConfig) { c.now = now }
}

// Check probes the server behind the driver for its version and
// validates it against the support matrix. Servers outside the
// supported range are reported as *UnsupportedServerError. Servers
// below the recommended floor and release lines past their end of
// life only log warnings.
func Check(ctx context.Context, drv dialect.Driver, opts ...CheckOption) error {
	cfg := checkConfig{log: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	ds, ok := DriverFor(drv.Dialect())
	if !ok {
		return fmt.Errorf("compat: no support matrix entry for dialect %q", drv.Dialect())
	}
	v, err := sql.ServerVersion(ctx, drv)
	if err != nil {
		return err
	}
	engineMin := ds.EngineMin
	if v.Flavor == "MariaDB" && ds.MariaDBMin != "" {
		engineMin = ds.MariaDBMin
	}
	floor, err := constraint(ds.Dialect, engineMin)
	if err != nil {
		return err
	}
	if v.Compare(floor) < 0 {
		return &UnsupportedServerError{Dialect: ds.Dialect, Flavor: v.Flavor, Version: v, Min: floor}
	}
	if ds.EngineMax != "" {
		ceil, err := constraint(ds.Dialect, ds.EngineMax)
		if err != nil {
			return err
		}
		if v.Compare(ceil) > 0 {
			return &UnsupportedServerError{Dialect: ds.Dialect, Flavor: v.Flavor, Version: v, Min: floor, Max: ceil}
		}
	}
	if ds.Recommended != "" {
		rec, err := constraint(ds.Dialect, ds.Recommended)
		if err != nil {
			return err
		}
		if v.Compare(rec) < 0 {
			cfg.log.Warn("server version is below the recommended floor",
				"dialect", ds.Dialect,
				"flavor", v.Flavor,
				"version", v.String(),
				"recommended", ds.Recommended,
			)
		}
	}
	if r, ok := Line(Series); ok && r.Status(cfg.now()) == StatusEOL {
		cfg.log.Warn("release line reached its end of life",
			"series", r.Series,
			"eol", r.EOL.Format(time.DateOnly),
		)
	}
	return nil
}

// constraint parses a version bound from the matrix. Bounds order
// numerically only, so the raw form and flavor are dropped.
func constraint(d, s string) (sql.Version, error) {
	v, err := sql.ParseVersion(d, s)
	if err != nil {
		return sql.Version{}, fmt.Errorf("compat: malformed version constraint %q", s)
	}
	v.Raw, v.Flavor = "", ""
	return v, nil
}
