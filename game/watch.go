package game

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ConfigWatcher reloads a config file when it changes on disk and hands
// validated configs to the frame goroutine over a channel. Invalid edits are
// logged and the last good config stays in effect.
type ConfigWatcher struct {
	path        string
	watcher     *fsnotify.Watcher
	updates     chan Config
	logger      *zap.Logger
	debounceDur time.Duration
}

// NewConfigWatcher watches path's directory, so editors that save by rename
// are still seen.
func NewConfigWatcher(path string, logger *zap.Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &ConfigWatcher{
		path:        abs,
		watcher:     watcher,
		updates:     make(chan Config, 1),
		logger:      logger,
		debounceDur: 100 * time.Millisecond, // editors often write twice
	}, nil
}

// Updates delivers reloaded configs. Only the newest pending config is kept.
func (w *ConfigWatcher) Updates() <-chan Config { return w.updates }

// Run processes file events until ctx is done, then closes the watcher.
func (w *ConfigWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(w.debounceDur)

		case <-pending:
			pending = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", zap.Error(err))
		}
	}
}

func (w *ConfigWatcher) reload() {
	// a moved or deleted file keeps the running config; LoadConfig would
	// otherwise fall back to defaults
	if _, err := os.Stat(w.path); err != nil {
		w.logger.Warn("config file unavailable; keeping current config", zap.String("path", w.path), zap.Error(err))
		return
	}

	cfg, err := LoadConfig(w.path)
	if err != nil {
		w.logger.Warn("config reload rejected", zap.String("path", w.path), zap.Error(err))
		return
	}

	// replace any config the frame goroutine has not picked up yet
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.logger.Debug("config reloaded", zap.String("path", w.path))
}
