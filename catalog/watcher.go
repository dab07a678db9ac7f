package catalog

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces editor write bursts into one reload
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a catalog file when it changes on disk
// The parent directory is watched so editors that replace the file are still seen
type Watcher struct {
	Path    string
	Updates <-chan *Catalog // Read-only external channel

	updates  chan *Catalog // Internal write channel
	done     chan struct{}
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	debounce time.Duration
	started  bool
	stopOnce sync.Once
}

// NewWatcher creates a watcher for the catalog at path
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ch := make(chan *Catalog, 4)
	return &Watcher{
		Path:     filepath.Clean(path),
		Updates:  ch,
		updates:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
		logger:   logger.With(zap.String("catalog", path)),
		debounce: DefaultDebounce,
	}, nil
}

// Name implements service.Service
func (w *Watcher) Name() string {
	return "catalog-watcher"
}

// Start begins watching the catalog's directory
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}
	w.started = true
	go w.loop()
	return nil
}

// Stop closes the watcher and the Updates channel
// Also releases the fsnotify handle when Start failed
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.watcher.Close()
		if w.started {
			<-w.done // Wait for loop to exit
		}
		close(w.updates)
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.debounce {
				pending = time.Time{}
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	c, err := Load(w.Path)
	if err != nil {
		w.logger.Warn("catalog reload skipped", zap.Error(err))
		return
	}
	w.logger.Info("catalog reloaded", zap.Int("categories", len(c.Categories)))

	// Drop the oldest queued catalog when the consumer lags
	select {
	case w.updates <- c:
	default:
		select {
		case <-w.updates:
		default:
		}
		w.updates <- c
	}
}
