package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/planetterrain/internal/logger"
)

// reloadDelay batches the burst of events editors produce for one save.
const reloadDelay = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	fw   *fsnotify.Watcher
	done chan struct{}
}

// Watch calls onChange with a freshly loaded and validated config after each
// change to the file at path. On failure onChange receives a nil config and
// the error. onChange runs on the watcher's goroutine.
func Watch(path string, load func() (*Config, error), onChange func(*Config, error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors often replace the file instead of writing it.
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{fw: fw, done: make(chan struct{})}
	go w.run(abs, load, onChange)
	return w, nil
}

func (w *Watcher) run(path string, load func() (*Config, error), onChange func(*Config, error)) {
	defer close(w.done)

	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				pending = time.After(reloadDelay)
			}

		case <-pending:
			pending = nil
			cfg, err := load()
			if err == nil {
				err = cfg.Validate()
			}
			if err != nil {
				onChange(nil, err)
				continue
			}
			logger.Debug("config reloaded", zap.String("path", path))
			onChange(cfg, nil)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error", zap.Error(err))
		}
	}
}

// Close stops watching and waits for the watcher goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}
