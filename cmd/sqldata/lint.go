package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"

	"ariga.io/atlas/sql/migrate"
)

// runLint validates the checksum file and the statements of a
// migration directory.
func runLint(log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: sqldata lint <dir>")
	}
	return lintDir(log, fs.Arg(0))
}

// lintDir runs the checks of the lint command, shared with watch.
func lintDir(log *slog.Logger, path string) error {
	dir, err := migrate.NewLocalDir(path)
	if err != nil {
		return err
	}
	if err := migrate.Validate(dir); err != nil {
		if errors.Is(err, migrate.ErrChecksumNotFound) || errors.Is(err, migrate.ErrChecksumMismatch) {
			return fmt.Errorf("%w (run \"sqldata hash %s\" to rewrite it)", err, path)
		}
		return err
	}
	files, err := dir.Files()
	if err != nil {
		return err
	}
	total := 0
	for _, f := range files {
		stmts, err := f.Stmts()
		if err != nil {
			return fmt.Errorf("parsing %s: %w", f.Name(), err)
		}
		log.Debug("linted file", "file", f.Name(), "statements", len(stmts))
		total += len(stmts)
	}
	log.Info("directory is valid", "dir", path, "files", len(files), "statements", total)
	return nil
}

// runHash recomputes the checksum file of a migration directory.
func runHash(log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: sqldata hash <dir>")
	}
	dir, err := migrate.NewLocalDir(fs.Arg(0))
	if err != nil {
		return err
	}
	sum, err := dir.Checksum()
	if err != nil {
		return err
	}
	if err := migrate.WriteSumFile(dir, sum); err != nil {
		return err
	}
	log.Info("checksum file updated", "dir", fs.Arg(0), "files", len(sum))
	return nil
}
