// Package compat records the release lines of the library and the
// databases and drivers every dialect is tested against, and checks
// live connections against that matrix.
//
// The data is editorial. It ships embedded in releases.yaml and
// matrix.yaml and changes only with releases of the library, never at
// runtime.
package compat

import (
	_ "embed"
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Series is the release line this module belongs to.
const Series = "7"

// Status is the phase of a release line at a point in time.
type Status string

const (
	// StatusCurrent lines receive features and fixes.
	StatusCurrent Status = "current"
	// StatusLTS lines receive fixes only.
	StatusLTS Status = "lts"
	// StatusEOL lines receive nothing.
	StatusEOL Status = "eol"
)

// Release describes one release line of the library.
type Release struct {
	// Series is the major version of the line, e.g. "7".
	Series string `yaml:"series"`
	// ReleaseDate is the day the line first shipped.
	ReleaseDate time.Time `yaml:"release_date"`
	// LTSUntil is the day active maintenance ends and the line enters
	// long-term support. Zero while not scheduled.
	LTSUntil time.Time `yaml:"lts_until,omitempty"`
	// EOL is the day support ends entirely. Zero while not scheduled.
	EOL time.Time `yaml:"eol,omitempty"`
	// MinGo is the oldest Go toolchain the line supports.
	MinGo string `yaml:"min_go"`
}

// Status reports the phase of the release line at the given time.
func (r Release) Status(at time.Time) Status {
	switch {
	case !r.EOL.IsZero() && at.After(r.EOL):
		return StatusEOL
	case !r.LTSUntil.IsZero() && at.After(r.LTSUntil):
		return StatusLTS
	default:
		return StatusCurrent
	}
}

// Supported reports whether the release line receives support at the
// given time. Lines are unsupported before they ship and after their
// end of life.
func (r Release) Supported(at time.Time) bool {
	return !at.Before(r.ReleaseDate) && r.Status(at) != StatusEOL
}

// Lines returns all release lines, newest first.
func Lines() []Release {
	return slices.Clone(releases)
}

// Line returns the release line of the given series.
func Line(series string) (Release, bool) {
	for _, r := range releases {
		if r.Series == series {
			return r, true
		}
	}
	return Release{}, false
}

// Current returns the newest release line that is supported now, or
// the newest line if support for all of them ended.
func Current() Release {
	now := time.Now()
	for _, r := range releases {
		if r.Supported(now) {
			return r
		}
	}
	return releases[0]
}

// DriverSupport describes the driver and the range of server versions
// a dialect is tested against.
type DriverSupport struct {
	// Dialect is the dialect name, e.g. dialect.Postgres.
	Dialect string `yaml:"dialect"`
	// Package is the import path of the database/sql driver.
	Package string `yaml:"package"`
	// MinVersion is the oldest supported driver version.
	MinVersion string `yaml:"min_version"`
	// EngineMin is the oldest supported server version.
	EngineMin string `yaml:"engine_min"`
	// EngineMax is the newest supported server version. Empty when
	// the range has no upper bound.
	EngineMax string `yaml:"engine_max,omitempty"`
	// Recommended is the server version below which Check logs a
	// warning. Empty when there is no recommended floor.
	Recommended string `yaml:"recommended,omitempty"`
	// MariaDBMin replaces EngineMin when the server reports a MariaDB
	// flavor. Set on the mysql dialect only.
	MariaDBMin string `yaml:"mariadb_min,omitempty"`
	// Notes carries editorial remarks about the entry.
	Notes string `yaml:"notes,omitempty"`
}

// Drivers returns the support matrix entries of all dialects.
func Drivers() []DriverSupport {
	return slices.Clone(matrix.Drivers)
}

// DriverFor returns the support matrix entry of the given dialect.
func DriverFor(dialect string) (DriverSupport, bool) {
	for _, d := range matrix.Drivers {
		if d.Dialect == dialect {
			return d, true
		}
	}
	return DriverSupport{}, false
}

var (
	//go:embed releases.yaml
	releasesYAML []byte

	//go:embed matrix.yaml
	matrixYAML []byte

	releases = mustReleases(releasesYAML)
	matrix   = mustMatrix(matrixYAML)
)

func mustReleases(data []byte) []Release {
	var f struct {
		Releases []Release `yaml:"releases"`
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		panic(fmt.Sprintf("compat: malformed releases.yaml: %v", err))
	}
	rs := f.Releases
	slices.SortFunc(rs, func(a, b Release) int {
		return b.ReleaseDate.Compare(a.ReleaseDate)
	})
	return rs
}

type matrixFile struct {
	Drivers []DriverSupport     `yaml:"drivers"`
	Types   map[string][]string `yaml:"types"`
}

func mustMatrix(data []byte) matrixFile {
	var f matrixFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		panic(fmt.Sprintf("compat: malformed matrix.yaml: %v", err))
	}
	return f
}
