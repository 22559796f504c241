package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/folio"
	"github.com/eringen/folio/content"
)

const watchDebounce = 300 * time.Millisecond

// errDefects is returned when a check finds problems, so the process exits
// non-zero after the report has been printed.
var errDefects = errors.New("content check failed")

type checkOptions struct {
	images bool
	watch  bool
}

func newCheckCmd(c *cli) *cobra.Command {
	var opts checkOptions
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate every document in the content tree",
		Long: `The check command loads and validates every singleton, page, blog post and
project, and reports all defects at once. With --images it also decodes every
referenced image. With --watch it re-runs whenever the content changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := content.New(c.cfg.Content)
			out := cmd.OutOrStdout()
			if !opts.watch {
				if n := runCheck(store, c.cfg.Public, opts.images, out); n > 0 {
					return errDefects
				}
				return nil
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.watch(ctx, store, opts, out)
		},
	}
	cmd.Flags().BoolVar(&opts.images, "images", false, "also decode referenced images and check OpenGraph sizes")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-run the check when the content changes")
	return cmd
}

// runCheck prints one line per defect and returns the number of defects.
func runCheck(store *content.Store, publicDir string, images bool, w io.Writer) int {
	defects := 0
	if err := store.Check(); err != nil {
		for _, e := range flatten(err) {
			fmt.Fprintf(w, "✗ %v\n", e)
			defects++
		}
	}
	if images && defects == 0 {
		reports, err := folio.CheckImages(store, publicDir)
		if err != nil {
			fmt.Fprintf(w, "✗ %v\n", err)
			return defects + 1
		}
		for _, r := range reports {
			if !r.OK() {
				fmt.Fprintf(w, "✗ %s %s %q: %s\n", r.Source, r.Field, r.Ref, r.Problem)
				defects++
			}
		}
	}
	if defects == 0 {
		fmt.Fprintln(w, "✓ content OK")
	} else {
		fmt.Fprintf(w, "%d problem(s) found\n", defects)
	}
	return defects
}

// flatten expands errors joined with errors.Join.
func flatten(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}

// watch runs the check, then again after every burst of filesystem events
// under the content directory, until ctx is done.
func (c *cli) watch(ctx context.Context, store *content.Store, opts checkOptions, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dirs := []string{c.cfg.Content}
	if opts.images {
		dirs = append(dirs, c.cfg.Public)
	}
	for _, dir := range dirs {
		if err := addTree(watcher, dir); err != nil {
			return err
		}
	}

	runCheck(store, c.cfg.Public, opts.images, w)

	var timer *time.Timer
	rerun := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			c.logger.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if event.Has(fsnotify.Create) {
				if err := addTree(watcher, event.Name); err != nil {
					c.logger.Warn("watch new path", zap.String("path", event.Name), zap.Error(err))
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})
		case <-rerun:
			fmt.Fprintln(w)
			runCheck(store, c.cfg.Public, opts.images, w)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// addTree watches root and every directory below it. A root that is a
// regular file is ignored.
func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
