package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// runWatch re-lints the migration directory whenever its contents
// change, until the context is canceled.
func runWatch(ctx context.Context, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	debounce := fs.Duration("debounce", 250*time.Millisecond, "quiet period before re-linting")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: sqldata watch <dir>")
	}
	path := fs.Arg(0)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(path); err != nil {
		return err
	}

	lint := func() {
		if err := lintDir(log, path); err != nil {
			log.Error("lint failed", "dir", path, "err", err)
		}
	}
	lint()
	log.Info("watching for changes", "dir", path)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		timer := time.NewTimer(0)
		<-timer.C
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if !ev.Op.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
					continue
				}
				log.Debug("change detected", "file", ev.Name, "op", ev.Op.String())
				timer.Reset(*debounce)
			case <-timer.C:
				lint()
			}
		}
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				log.Error("watch error", "err", err)
			}
		}
	})
	if err := g.Wait(); !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("watch stopped")
	return nil
}
