package sql

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/syssam/sqldata/dialect"
	"golang.org/x/sync/singleflight"
)

// Version is a parsed database server version.
type Version struct {
	Major int
	Minor int
	Patch int
	// Flavor names the engine that reported the version, e.g.
	// "PostgreSQL", "MySQL", "MariaDB", "SQLite" or "SQL Server".
	Flavor string
	// Raw is the unparsed version string as reported by the server.
	Raw string
}

// String returns the dotted form of the version.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or 1 if v is smaller, equal or greater than other.
// The flavor is not part of the ordering.
func (v Version) Compare(other Version) int {
	for _, d := range [3]int{
		v.Major - other.Major,
		v.Minor - other.Minor,
		v.Patch - other.Patch,
	} {
		switch {
		case d < 0:
			return -1
		case d > 0:
			return 1
		}
	}
	return 0
}

// AtLeast reports whether the version is at least major.minor.
func (v Version) AtLeast(major, minor int) bool {
	return v.Compare(Version{Major: major, Minor: minor}) >= 0
}

// versionGroup deduplicates concurrent version probes per driver.
var versionGroup singleflight.Group

// ServerVersion queries the database server behind the driver for its
// version. Concurrent calls for the same driver share a single probe.
func ServerVersion(ctx context.Context, drv dialect.Driver) (Version, error) {
	v, err, _ := versionGroup.Do(fmt.Sprintf("%s/%p", drv.Dialect(), drv), func() (any, error) {
		return serverVersion(ctx, drv)
	})
	if err != nil {
		return Version{}, err
	}
	return v.(Version), nil
}

func serverVersion(ctx context.Context, drv dialect.Driver) (Version, error) {
	var query string
	switch drv.Dialect() {
	case dialect.Postgres:
		query = "SELECT version()"
	case dialect.MySQL:
		query = "SELECT VERSION()"
	case dialect.SQLite:
		query = "SELECT sqlite_version()"
	case dialect.MSSQL:
		query = "SELECT CONVERT(varchar(128), SERVERPROPERTY('productversion'))"
	default:
		return Version{}, fmt.Errorf("dialect/sql: unknown dialect %q", drv.Dialect())
	}
	rows := &Rows{}
	if err := drv.Query(ctx, query, []any{}, rows); err != nil {
		return Version{}, fmt.Errorf("dialect/sql: query server version: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return Version{}, fmt.Errorf("dialect/sql: server version: no rows")
	}
	var raw string
	if err := rows.Scan(&raw); err != nil {
		return Version{}, fmt.Errorf("dialect/sql: scan server version: %w", err)
	}
	return ParseVersion(drv.Dialect(), raw)
}

// versionRegexp extracts the leading numeric version triple.
var versionRegexp = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersion parses a raw version string reported by the given dialect.
//
//	ParseVersion(dialect.Postgres, "PostgreSQL 16.2 on x86_64-pc-linux-gnu")
//	ParseVersion(dialect.MySQL, "10.11.6-MariaDB-1")
func ParseVersion(d, raw string) (Version, error) {
	m := versionRegexp.FindStringSubmatch(raw)
	if m == nil {
		return Version{}, fmt.Errorf("dialect/sql: unexpected server version %q", raw)
	}
	v := Version{Raw: raw}
	v.Major, _ = strconv.Atoi(m[1])
	v.Minor, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		v.Patch, _ = strconv.Atoi(m[3])
	}
	switch d {
	case dialect.Postgres:
		v.Flavor = "PostgreSQL"
		if strings.Contains(raw, "CockroachDB") {
			v.Flavor = "CockroachDB"
		}
	case dialect.MySQL:
		v.Flavor = "MySQL"
		if strings.Contains(raw, "MariaDB") {
			v.Flavor = "MariaDB"
		}
	case dialect.SQLite:
		v.Flavor = "SQLite"
	case dialect.MSSQL:
		v.Flavor = "SQL Server"
	}
	return v, nil
}
