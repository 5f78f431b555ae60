package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/gommon/log"
)

// Debounce is how long Watch waits after the last change before calling fn.
var Debounce = 500 * time.Millisecond

// Watch calls fn whenever markdown under dir changes, coalescing bursts of
// events. It blocks until ctx is done. Errors from fn are logged, not
// returned.
func Watch(ctx context.Context, dir string, logger *log.Logger, fn func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("content: watcher: %w", err)
	}
	defer w.Close()

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("content: watch %s: %w", dir, err)
	}
	logger.Infof("watching %s for changes", dir)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if ev.Has(fsnotify.Create) && isDir(ev.Name) {
				if err := w.Add(ev.Name); err != nil {
					logger.Errorf("watch %s: %v", ev.Name, err)
				}
			} else if !isMarkdown(ev.Name) {
				continue
			}
			logger.Debugf("change detected: %s (%s)", ev.Name, ev.Op)
			if timer == nil {
				timer = time.NewTimer(Debounce)
			} else {
				timer.Reset(Debounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("watcher: %v", err)
		case <-fire:
			fire = nil
			if err := fn(); err != nil {
				logger.Errorf("reload %s: %v", dir, err)
			}
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
