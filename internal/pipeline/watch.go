// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pdiddy/purchase-wrangler/pkg/types"
)

// Watch runs the pipeline once, then again each time cfg.Input is written,
// created or replaced, after cfg.Debounce of quiet. Every run's outcome is
// passed to onRun; a failed run does not stop the watch. Watch returns nil
// when ctx is cancelled.
//
// The parent directory is watched rather than the file so that editors that
// save by rename are still seen. Watch needs the OS file system.
func (p *Pipeline) Watch(ctx context.Context, cfg types.Config, onRun func(Result, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	target, err := filepath.Abs(cfg.Input)
	if err != nil {
		return fmt.Errorf("resolving input path: %w", err)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	onRun(p.Run(ctx, cfg))
	p.log.Info("watching for changes", "path", target)

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || name != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			p.log.Debug("input changed", "op", ev.Op.String())
			fire = time.After(cfg.Debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			p.log.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			onRun(p.Run(ctx, cfg))
		}
	}
}
