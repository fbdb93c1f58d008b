// ============================================================================
// HeLang - Saint He's programming language
// ============================================================================
//
// Package:     runner
// Description: Runs script files, optionally re-running them on change
// Author:      lwd-temp
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
	helog "github.com/lwd-temp/helang/foundation/core/log"
	"github.com/lwd-temp/helang/foundation/helang"
	"github.com/lwd-temp/helang/foundation/helang/env"
)

// DefaultDebounce is how long a file must stay quiet before it is re-run
const DefaultDebounce = 300 * time.Millisecond

// Config holds runner configuration
type Config struct {
	Engine   *helang.Engine
	ErrOut   io.Writer // watch mode reports failed runs here
	Watch    bool
	Debounce time.Duration
	OnRun    func(err error) // called after every run
	Logger   *helog.Logger
}

// Runner executes script files with a fresh environment per run
type Runner struct {
	cfg    Config
	logger *helog.Logger
}

// New creates a new runner
func New(cfg Config) *Runner {
	if cfg.Logger == nil {
		cfg.Logger = helog.GetDefault()
	}
	if cfg.Engine == nil {
		cfg.Engine = helang.New(helang.Options{Logger: cfg.Logger})
	}
	if cfg.ErrOut == nil {
		cfg.ErrOut = os.Stderr
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &Runner{cfg: cfg, logger: cfg.Logger.WithField("component", "runner")}
}

// Run executes path once. In watch mode it keeps re-running the file after
// every change until ctx is cancelled; failed runs are reported and
// watching continues.
func (r *Runner) Run(ctx context.Context, path string) error {
	if !r.cfg.Watch {
		return r.runOnce(ctx, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return heerror.Wrap(err, "failed to resolve path").
			WithCode(heerror.CodeInvalidInput).
			WithDetail("path", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return heerror.Wrap(err, "failed to create watcher").WithCode(heerror.CodeInternal)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return heerror.Wrap(err, "failed to watch directory").
			WithCode(heerror.CodeInternal).
			WithDetail("path", filepath.Dir(abs))
	}

	r.report(r.runOnce(ctx, abs))
	r.logger.Info("Watching for changes", helog.Fields{"path": abs})

	// A stopped timer with a drained channel marks "no run pending".
	pending := time.NewTimer(time.Hour)
	if !pending.Stop() {
		<-pending.C
	}

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Stopping file watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			r.logger.Debug("Script changed", helog.Fields{"op": event.Op.String()})
			pending.Reset(r.cfg.Debounce)

		case <-pending.C:
			r.report(r.runOnce(ctx, abs))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.WarnWithErr("Watcher error", err)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context, path string) error {
	_, err := r.cfg.Engine.RunFile(ctx, path, env.New())
	if r.cfg.OnRun != nil {
		r.cfg.OnRun(err)
	}
	return err
}

func (r *Runner) report(err error) {
	if err == nil {
		return
	}
	r.logger.LogError(err)
	fmt.Fprintf(r.cfg.ErrOut, "%s: %s\n", heerror.GetCode(err), err.Error())
}
