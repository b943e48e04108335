package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/cardkit"
	"github.com/gogpu/cardkit/media"
)

// settle coalesces the burst of events an editor save produces.
const settle = 150 * time.Millisecond

// watchDocument re-runs j whenever its document changes, until ctx ends.
// The document directory is watched so saves that replace the file are
// seen too.
func watchDocument(ctx context.Context, j job) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	target, err := filepath.Abs(j.doc)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	if j.loader == nil {
		j.loader = media.NewLoader()
	}
	cardkit.Logger().Info("cardgen: watching", "doc", j.doc)

	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, target) {
				continue
			}
			timer.Reset(settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			cardkit.Logger().Warn("cardgen: watch error", "err", err)
		case <-timer.C:
			if err := j.run(ctx); err != nil {
				cardkit.Logger().Warn("cardgen: render failed", "err", err)
			}
		}
	}
}

func relevant(ev fsnotify.Event, target string) bool {
	name, err := filepath.Abs(ev.Name)
	if err != nil || name != target {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
