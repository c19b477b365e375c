// Command sqldata manages migration directories and prints the
// support matrix of the library.
//
// Usage:
//
//	sqldata [-v] <command> [arguments]
//
// The commands are:
//
//	lint    validate a migration directory
//	hash    recompute and write the checksum file of a directory
//	support print the release and driver support tables
//	watch   re-lint a migration directory on every change
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd := args[0]; cmd {
	case "lint":
		err = runLint(log, args[1:])
	case "hash":
		err = runHash(log, args[1:])
	case "support":
		err = runSupport(os.Stdout, args[1:])
	case "watch":
		err = runWatch(ctx, log, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "sqldata: unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Error(args[0]+" failed", "err", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: sqldata [-v] <command> [arguments]

Commands:
  lint <dir>                       validate the migration directory
  hash <dir>                       recompute and write atlas.sum
  support [-dialect d] [-at date]  print release and driver support tables
  watch [-debounce d] <dir>        re-lint the directory on every change
`)
}
