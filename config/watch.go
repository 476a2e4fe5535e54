package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is how long the watcher waits for the editor to stop
// rewriting the file before reloading.
const defaultDebounce = 250 * time.Millisecond

// Watcher reloads a config file when it changes on disk and emits the
// new config, letting a running storefront pick up pricing-policy
// changes without a restart.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
	watcher  *fsnotify.Watcher

	mu      sync.Mutex
	pending *time.Timer

	updates chan *Config
}

// NewWatcher creates a watcher for the given config file.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors often replace the file, which drops
	// a watch registered on the file itself.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return &Watcher{
		path:     path,
		debounce: defaultDebounce,
		logger:   logger,
		watcher:  fsw,
		updates:  make(chan *Config, 1),
	}, nil
}

// Updates returns the channel on which reloaded configs are delivered.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Run processes filesystem events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	defer func() { _ = w.watcher.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Config watch error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := LoadFromFile(w.path)
	if err != nil {
		w.logger.Warn("Failed to reload config", slog.String("path", w.path), slog.String("error", err.Error()))
		return
	}
	if err := cfg.Validate(); err != nil {
		w.logger.Warn("Reloaded config is invalid", slog.String("path", w.path), slog.String("error", err.Error()))
		return
	}

	// Drop a stale undelivered update in favor of the newest one.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.logger.Info("Config reloaded", slog.String("path", w.path))
}
