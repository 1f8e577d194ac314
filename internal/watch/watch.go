// Package watch adapts the host application's directory file watcher to
// the kernel's CLI demo: a single spec file is watched for writes, and a
// debounced callback re-runs generation. This is not a general-purpose
// file indexer — it exists only to give the CLI's --watch flag a real
// fsnotify-backed home.
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DebounceDelay coalesces bursts of writes (editors often emit several
// events per save) into a single regeneration.
const DebounceDelay = 200 * time.Millisecond

// SpecWatcher watches one spec file and invokes onChange, debounced,
// whenever the file is written or recreated.
type SpecWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func()
	logger   *zap.Logger
	done     chan struct{}
}

// New creates a watcher on path. The caller must call Start to begin
// watching and Close to release the underlying inotify/kqueue handle.
func New(path string, onChange func(), logger *zap.Logger) (*SpecWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: new watcher: %w", err)
	}
	// Watch the containing directory rather than the file itself: many
	// editors save by rename, which would otherwise drop the watch on
	// the original inode.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch: add %s: %w", dir, err)
	}
	return &SpecWatcher{
		watcher:  w,
		path:     filepath.Clean(path),
		onChange: onChange,
		logger:   logger,
		done:     make(chan struct{}),
	}, nil
}

// Start begins the watch loop in the current goroutine; it returns when
// Close is called.
func (s *SpecWatcher) Start() {
	var pending *time.Timer
	for {
		select {
		case <-s.done:
			if pending != nil {
				pending.Stop()
			}
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != s.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			s.logger.Debug("spec file changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(DebounceDelay, s.onChange)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watch error", zap.Error(err))
		}
	}
}

// Close stops the watch loop and releases the underlying OS handle.
func (s *SpecWatcher) Close() error {
	close(s.done)
	return s.watcher.Close()
}
