package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/syssam/sqldata/compat"
)

// runSupport prints the release lines and the driver support matrix,
// the versioning documentation as a command.
func runSupport(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("support", flag.ContinueOnError)
	var (
		d  = fs.String("dialect", "", "restrict the driver table to one dialect")
		at = fs.String("at", "", "evaluate release status at this date (YYYY-MM-DD)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	now := time.Now()
	if *at != "" {
		var err error
		now, err = time.Parse(time.DateOnly, *at)
		if err != nil {
			return fmt.Errorf("invalid -at date: %w", err)
		}
	}
	if *d != "" {
		if _, ok := compat.DriverFor(*d); !ok {
			return fmt.Errorf("unknown dialect %q", *d)
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SERIES\tRELEASED\tSTATUS\tLTS UNTIL\tEOL\tMIN GO")
	for _, r := range compat.Lines() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Series, r.ReleaseDate.Format(time.DateOnly), r.Status(now),
			day(r.LTSUntil), day(r.EOL), r.MinGo)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "DIALECT\tDRIVER\tMIN DRIVER\tENGINES\tNOTES")
	for _, ds := range compat.Drivers() {
		if *d != "" && ds.Dialect != *d {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			ds.Dialect, ds.Package, ds.MinVersion, engineRange(ds), ds.Notes)
	}
	if *d != "" {
		ts := compat.TypesFor(*d)
		names := make([]string, len(ts))
		for i, t := range ts {
			names[i] = t.String()
		}
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "DOMAINS\t%s\n", strings.Join(names, ", "))
	}
	return tw.Flush()
}

// day renders a date, or "-" while unscheduled.
func day(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}

// engineRange renders the supported server versions of an entry.
func engineRange(ds compat.DriverSupport) string {
	s := ">= " + ds.EngineMin
	if ds.EngineMax != "" {
		s = ds.EngineMin + " - " + ds.EngineMax
	}
	if ds.MariaDBMin != "" {
		s += ", MariaDB >= " + ds.MariaDBMin
	}
	return s
}
