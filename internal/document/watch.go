package document

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"PageInk/internal/logging"
)

// settle is how long Watch waits after the last write before reopening,
// so a file being copied in is read once it is complete.
const settle = 200 * time.Millisecond

// Watch reopens the document at path whenever it is written or replaced
// and passes the new Info to onChange. It blocks until ctx is done.
// Failed reopens are logged and skipped.
func Watch(ctx context.Context, path string, onChange func(Info)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch document: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch document: %w", err)
	}
	defer w.Close()

	// Watch the directory: editors and downloaders replace files by rename,
	// which drops a watch on the file itself.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	log := logging.WithComponent("document")
	log.Debug("watching document", "path", abs)

	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(settle)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("document watcher error", "error", err)
		case <-timer.C:
			info, err := Open(abs)
			if err != nil {
				log.Warn("reopen document failed", "path", abs, "error", err)
				continue
			}
			log.Info("document changed", "path", abs, "pages", info.PageCount)
			onChange(info)
		}
	}
}
