package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskmatch/pkg/usecase"
	"github.com/secmon-lab/riskmatch/pkg/utils/errutil"
	"github.com/secmon-lab/riskmatch/pkg/utils/logging"
	"github.com/secmon-lab/riskmatch/pkg/utils/safe"
)

const defaultReloadDebounce = 500 * time.Millisecond

// WorkspaceWatcher re-imports workspace files when they change on disk
type WorkspaceWatcher struct {
	watcher  *fsnotify.Watcher
	cfg      *Workspace
	uc       *usecase.UseCases
	files    map[string]struct{}
	debounce time.Duration

	// reloadMu keeps one reload at a time so an import is never interleaved
	// with another
	reloadMu sync.Mutex
}

// NewWatcher starts watching the directories of the configured workspace
// files. Directories are watched instead of files so that editors replacing
// a file by rename are still noticed.
func (x *Workspace) NewWatcher(uc *usecase.UseCases) (*WorkspaceWatcher, error) {
	paths, err := x.Files()
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create file watcher")
	}

	files := make(map[string]struct{})
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = watcher.Close()
			return nil, goerr.Wrap(err, "failed to resolve workspace path", goerr.V(ConfigPathKey, p))
		}
		files[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, goerr.Wrap(err, "failed to watch directory", goerr.V("dir", dir))
		}
		dirs[dir] = struct{}{}
	}

	return &WorkspaceWatcher{
		watcher:  watcher,
		cfg:      x,
		uc:       uc,
		files:    files,
		debounce: defaultReloadDebounce,
	}, nil
}

// Run blocks until ctx is canceled. Changes are debounced and then all
// workspace files are reloaded together; a failed reload keeps the previous
// records.
func (w *WorkspaceWatcher) Run(ctx context.Context) error {
	defer safe.Close(ctx, w.watcher)

	var (
		mu       sync.Mutex
		debounce *time.Timer
	)
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if _, watched := w.files[filepath.Clean(event.Name)]; !watched {
				continue
			}

			mu.Lock()
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(w.debounce, func() { w.reload(ctx) })
			mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logging.From(ctx).Warn("file watcher error", "error", err)
		}
	}
}

func (w *WorkspaceWatcher) reload(ctx context.Context) {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	if ctx.Err() != nil {
		return
	}
	snapshots, err := w.cfg.Configure(ctx, w.uc)
	if err != nil {
		_ = errutil.Handle(ctx, err, "workspace reload failed")
		return
	}
	logging.From(ctx).Info("Workspaces reloaded", "count", len(snapshots))
}
