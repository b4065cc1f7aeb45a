package providers

import (
	"github.com/samber/do/v2"

	"github.com/storefolioapp/storefolio-server/internal/config"
	"github.com/storefolioapp/storefolio-server/internal/enrich"
	"github.com/storefolioapp/storefolio-server/internal/logger"
	"github.com/storefolioapp/storefolio-server/internal/media/images"
	"github.com/storefolioapp/storefolio-server/internal/service"
)

// ProvideCollectionService provides the collection service.
func ProvideCollectionService(i do.Injector) (*service.CollectionService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCollectionService(storeHandle.Store, log.Logger, cfg.Catalog.MaxStoresPerCollection), nil
}

// ProvideFolioService provides the folio service.
func ProvideFolioService(i do.Injector) (*service.FolioService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFolioService(storeHandle.Store, log.Logger), nil
}

// ProvideImportService provides the CSV import service.
func ProvideImportService(i do.Injector) (*service.ImportService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewImportService(storeHandle.Store, log.Logger, cfg.Catalog.MaxStoresPerCollection), nil
}

// EnrichmentProviders bundles the field and image providers backing enrichment.
// Both point at the HTTP client when a provider URL is configured; otherwise
// an empty stub stands in and every lookup is a miss.
type EnrichmentProviders struct {
	Provider enrich.Provider
	Images   enrich.ImageProvider
}

// ProvideEnrichmentProviders provides the enrichment provider pair.
func ProvideEnrichmentProviders(i do.Injector) (*EnrichmentProviders, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Enrichment.BaseURL == "" {
		log.Info("Remote enrichment disabled: no provider URL configured")
		stub := enrich.NewStubProvider()
		return &EnrichmentProviders{Provider: stub, Images: stub}, nil
	}

	client := enrich.NewClient(enrich.ClientOptions{
		BaseURL:           cfg.Enrichment.BaseURL,
		RequestsPerSecond: float64(cfg.Enrichment.RequestsPerSecond),
		Timeout:           cfg.Enrichment.Timeout,
		Logger:            log.Logger,
	})

	log.Info("Enrichment provider configured", "base_url", cfg.Enrichment.BaseURL)

	return &EnrichmentProviders{Provider: client, Images: client}, nil
}

// ProvideEnrichmentService provides the enrichment fan-out service.
func ProvideEnrichmentService(i do.Injector) (*service.EnrichmentService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	enrichProviders := do.MustInvoke[*EnrichmentProviders](i)
	processor := do.MustInvoke[*images.Processor](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEnrichmentService(
		storeHandle.Store,
		enrichProviders.Provider,
		enrichProviders.Images,
		processor,
		log.Logger,
		cfg.Enrichment.MaxConcurrent,
	), nil
}
