package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/storefolioapp/storefolio-server/internal/api"
	"github.com/storefolioapp/storefolio-server/internal/config"
	"github.com/storefolioapp/storefolio-server/internal/logger"
	"github.com/storefolioapp/storefolio-server/internal/media/images"
	"github.com/storefolioapp/storefolio-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	imageStorage := do.MustInvoke[*images.Storage](i)

	services := &api.Services{
		Collection: do.MustInvoke[*service.CollectionService](i),
		Folio:      do.MustInvoke[*service.FolioService](i),
		Import:     do.MustInvoke[*service.ImportService](i),
		Enrichment: do.MustInvoke[*service.EnrichmentService](i),
		Search:     do.MustInvoke[*service.SearchService](i),
	}

	storage := &api.StorageServices{
		Images: imageStorage,
	}

	handler := api.NewServer(storeHandle.Store, services, storage, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
