package store

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/qasemB/blog-back-end/pkg/logger"
	"go.uber.org/zap"
)

// selfWriteWindow is how long after one of our own flushes a file event is
// still attributed to that flush rather than an external edit.
const selfWriteWindow = 500 * time.Millisecond

// Watch reloads the store whenever the backing file is changed by another
// process (a hand edit, a deploy copying a fresh db.json). It watches the
// parent directory because the atomic-rename flush replaces the file node
// itself. Blocks until stop is closed.
func (s *Store) Watch(stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	base := filepath.Base(s.path)
	for {
		select {
		case <-stop:
			return nil

		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(evt.Name) != base {
				continue
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if s.sinceFlush() < selfWriteWindow {
				continue
			}

			if err := s.Reload(); err != nil {
				logger.Log.Warn("Failed to reload database after external change",
					zap.String("path", s.path),
					zap.Error(err),
				)
				continue
			}
			logger.Log.Info("Database reloaded after external change",
				zap.String("path", s.path),
			)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Warn("Database watcher error",
				zap.Error(err),
			)
		}
	}
}
