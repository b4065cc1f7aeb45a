package providers

import (
	"context"
	"errors"

	"github.com/samber/do/v2"

	"github.com/storefolioapp/storefolio-server/internal/config"
	"github.com/storefolioapp/storefolio-server/internal/importwatch"
	"github.com/storefolioapp/storefolio-server/internal/logger"
	"github.com/storefolioapp/storefolio-server/internal/service"
)

// ImportWatcherHandle wraps the drop-directory watcher with shutdown
// capability. Watcher is nil when no drop path is configured.
type ImportWatcherHandle struct {
	*importwatch.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *ImportWatcherHandle) Shutdown() error {
	if h.cancel != nil {
		h.cancel()
	}
	return nil
}

// ProvideImportWatcher provides the CSV drop-directory watcher.
func ProvideImportWatcher(i do.Injector) (*ImportWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	imports := do.MustInvoke[*service.ImportService](i)

	if cfg.Catalog.ImportDropPath == "" {
		log.Info("Import watcher disabled: no drop path configured")
		return &ImportWatcherHandle{}, nil
	}

	w, err := importwatch.New(importwatch.Options{
		Dir:      cfg.Catalog.ImportDropPath,
		Importer: imports,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Import watcher stopped", "error", err)
		}
	}()

	log.Info("Import watcher started", "path", cfg.Catalog.ImportDropPath)

	return &ImportWatcherHandle{Watcher: w, cancel: cancel}, nil
}
