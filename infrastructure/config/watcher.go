package config

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the yaml config overlay when the file changes on disk.
// Intended for development; production restarts on config change.
type Watcher struct {
	path     string
	onChange func(*Config)
	logger   *zap.Logger
}

// NewWatcher creates a watcher for the given config file. onChange runs
// on the watcher goroutine with the freshly loaded config.
func NewWatcher(path string, onChange func(*Config), logger *zap.Logger) *Watcher {
	return &Watcher{path: path, onChange: onChange, logger: logger}
}

// Watch blocks until ctx is done, invoking onChange after each write to
// the config file. A reload that fails to parse keeps the previous
// config and logs the error.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.path); err != nil {
		return err
	}
	w.logger.Info("watching config file", zap.String("path", w.path))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := LoadConfig()
			if err != nil {
				w.logger.Warn("config reload failed", zap.Error(err))
				continue
			}
			w.logger.Info("config reloaded", zap.String("path", w.path))
			w.onChange(cfg)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", zap.Error(err))
		}
	}
}
