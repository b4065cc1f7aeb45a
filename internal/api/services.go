package api

import (
	"github.com/storefolioapp/storefolio-server/internal/media/images"
	"github.com/storefolioapp/storefolio-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Collection *service.CollectionService
	Folio      *service.FolioService
	Import     *service.ImportService
	Enrichment *service.EnrichmentService
	Search     *service.SearchService
}

// StorageServices groups file storage handlers used by the API server.
type StorageServices struct {
	Images *images.Storage // Store images from the enrichment side channel
}
