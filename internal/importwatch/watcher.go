// Package importwatch watches a drop directory for CSV files and imports
// them into their target collections. The filename convention is
// <collectionID>.csv; processed files are renamed in place so a crash never
// imports the same file twice.
package importwatch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/storefolioapp/storefolio-server/internal/service"
)

// defaultSettleDelay is how long a file must stop changing before import.
// Copies into the drop directory arrive as a burst of write events; waiting
// for quiet avoids importing a half-written file.
const defaultSettleDelay = 500 * time.Millisecond

// Importer runs a CSV import on behalf of the collection owner.
type Importer interface {
	ImportAsOwner(ctx context.Context, collectionID, text string) (*service.ImportResult, error)
}

// Watcher monitors a drop directory for importable CSV files.
type Watcher struct {
	dir         string
	importer    Importer
	logger      *slog.Logger
	settleDelay time.Duration

	watcher *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// Options configures the watcher.
type Options struct {
	Dir         string
	Importer    Importer
	Logger      *slog.Logger
	SettleDelay time.Duration // <= 0 uses the default
}

// New creates a drop-directory watcher. The directory is created if missing.
func New(opts Options) (*Watcher, error) {
	if opts.Dir == "" {
		return nil, fmt.Errorf("drop directory cannot be empty")
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create drop directory: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(opts.Dir); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("watch drop directory: %w", err)
	}

	settle := opts.SettleDelay
	if settle <= 0 {
		settle = defaultSettleDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		dir:         opts.Dir,
		importer:    opts.Importer,
		logger:      logger,
		settleDelay: settle,
		watcher:     fsWatcher,
		pending:     make(map[string]*time.Timer),
	}, nil
}

// Run processes events until the context is canceled. Files already sitting
// in the drop directory (dropped while the server was down) are imported
// first. Blocks; run it in its own goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	w.importExisting(ctx)

	for {
		select {
		case <-ctx.Done():
			w.stop()
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("import watcher error", "error", err)
		}
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()
	_ = w.watcher.Close()
}

// importExisting picks up files that predate the watch.
func (w *Watcher) importExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Warn("read drop directory", "error", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !isImportable(entry.Name()) {
			continue
		}
		w.importFile(ctx, filepath.Join(w.dir, entry.Name()))
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}
	if !isImportable(filepath.Base(event.Name)) {
		return
	}
	w.scheduleImport(ctx, event.Name)
}

// scheduleImport (re)starts the settle timer for a path. Every new write
// pushes the import further out until the file goes quiet.
func (w *Watcher) scheduleImport(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.settleDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.importFile(ctx, path)
	})
}

// importFile imports one settled file and renames it out of the way:
// .imported on success, .failed on any error.
func (w *Watcher) importFile(ctx context.Context, path string) {
	collectionID := strings.TrimSuffix(filepath.Base(path), ".csv")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return // removed before we got to it
		}
		w.logger.Warn("read import file", "path", path, "error", err)
		return
	}

	result, err := w.importer.ImportAsOwner(ctx, collectionID, string(data))
	if err != nil {
		w.logger.Warn("import failed",
			"path", path,
			"collection_id", collectionID,
			"error", err,
		)
		w.archive(path, ".failed")
		return
	}

	w.logger.Info("imported dropped file",
		"path", path,
		"collection_id", collectionID,
		"added", result.Added,
		"row_errors", len(result.RowErrors),
		"truncated", result.Truncated,
	)
	w.archive(path, ".imported")
}

func (w *Watcher) archive(path, suffix string) {
	target := path + suffix
	if err := os.Rename(path, target); err != nil {
		w.logger.Warn("archive import file", "path", path, "error", err)
	}
}

func isImportable(name string) bool {
	return strings.HasSuffix(name, ".csv") && !strings.HasPrefix(name, ".")
}
