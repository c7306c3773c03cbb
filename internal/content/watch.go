package content

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/beyond-scaling/internal/logging"
)

// Invalidator drops cached articles.
type Invalidator interface {
	Invalidate(id string)
}

// Watch invalidates cached articles as files in dir change. It blocks until
// ctx is cancelled.
func Watch(ctx context.Context, dir string, inv Invalidator, logger logrus.FieldLogger) error {
	log := logging.OrDiscard(logger).WithField("dir", dir)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	log.Info("watching content for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if id, changed := handleEvent(ev, inv); changed {
				log.WithFields(logrus.Fields{"article": id, "op": ev.Op.String()}).Debug("content changed")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("content watcher")
		}
	}
}

// handleEvent invalidates the article an event refers to. Hidden files,
// non-markdown files and chmod-only events are ignored.
func handleEvent(ev fsnotify.Event, inv Invalidator) (string, bool) {
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".md") {
		return "", false
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return "", false
	}
	id := strings.TrimSuffix(name, ".md")
	inv.Invalidate(id)
	return id, true
}
