// Package watch re-runs license detection on individual files as they
// change, instead of re-scanning a whole tree. Grounded on the teacher's
// infrastructure/fswatcher.Watcher (recursive subscription, 500ms
// debounce, skip-dir denylist), repurposed from emitting UI events to
// directly driving an incremental Orchestrator.LicensesIn + Aggregator.Add
// pass per changed file.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gerv/slic/application/license"
	"github.com/gerv/slic/domain"
)

// debounceDelay is the time to wait before reacting to a burst of file
// change events, same constant as the teacher's fswatcher.Watcher.
const debounceDelay = 500 * time.Millisecond

var skipDirNames = map[string]bool{
	".git": true, "node_modules": true, ".idea": true,
	"dist": true, "build": true, ".cache": true, "vendor": true,
}

// OnChange is called after each debounce window, once for every file that
// changed in it, with that file's path and the hits found by re-running
// the orchestrator on it.
type OnChange func(path string, hits []domain.LicenseHit)

// Watcher subscribes to a directory tree and reclassifies changed files.
type Watcher struct {
	log  domain.Logger
	orch *license.Orchestrator
	agg  *license.Aggregator

	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	pending   map[string]struct{}
	timer     *time.Timer
}

// New returns a Watcher that reclassifies changed files with orch and
// folds their hits into agg.
func New(orch *license.Orchestrator, agg *license.Aggregator, log domain.Logger) *Watcher {
	if log == nil {
		log = domain.NoopLogger{}
	}
	return &Watcher{orch: orch, agg: agg, log: log, pending: make(map[string]struct{})}
}

// Start subscribes to root and every non-denylisted subdirectory, then
// runs until ctx is cancelled, calling onChange after each debounce
// window. Start blocks until ctx is done or subscription setup fails.
func (w *Watcher) Start(ctx context.Context, root string, onChange OnChange) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.fsWatcher = fsWatcher
	w.mu.Unlock()
	defer fsWatcher.Close()

	err = filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirNames[d.Name()] {
				return filepath.SkipDir
			}
			return fsWatcher.Add(p)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return w.run(ctx, fsWatcher, onChange)
}

func (w *Watcher) run(ctx context.Context, fsWatcher *fsnotify.Watcher, onChange OnChange) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if isGitPath(event.Name) {
				continue
			}
			w.scheduleDebounce(event.Name, onChange)
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("slic watch: " + err.Error())
		}
	}
}

func isGitPath(name string) bool {
	return filepath.Base(name) == ".git" || strings.Contains(name, string(os.PathSeparator)+".git"+string(os.PathSeparator))
}

func (w *Watcher) scheduleDebounce(path string, onChange OnChange) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, func() {
		w.flush(onChange)
	})
}

func (w *Watcher) flush(onChange OnChange) {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	for _, path := range paths {
		hits, err := w.orch.LicensesIn(path, true)
		if err != nil {
			w.log.Warning("slic watch: " + path + ": " + err.Error())
			continue
		}
		for _, hit := range hits {
			w.agg.Add(path, hit)
		}
		if onChange != nil {
			onChange(path, hits)
		}
	}
}
