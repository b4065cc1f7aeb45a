// Package di provides dependency injection configuration for the Storefolio server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/storefolioapp/storefolio-server/internal/config"
	"github.com/storefolioapp/storefolio-server/internal/di/providers"
	"github.com/storefolioapp/storefolio-server/internal/logger"
	"github.com/storefolioapp/storefolio-server/internal/media/images"
	"github.com/storefolioapp/storefolio-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Storage layer
	do.Provide(injector, providers.ProvideImageStorage)
	do.Provide(injector, providers.ProvideImageProcessor)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Enrichment layer
	do.Provide(injector, providers.ProvideEnrichmentProviders)

	// Business services
	do.Provide(injector, providers.ProvideCollectionService)
	do.Provide(injector, providers.ProvideFolioService)
	do.Provide(injector, providers.ProvideImportService)
	do.Provide(injector, providers.ProvideEnrichmentService)

	// Workers
	do.Provide(injector, providers.ProvideImportWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*images.Storage](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*images.Processor](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.SearchService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.EnrichmentProviders](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.CollectionService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.FolioService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.ImportService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.EnrichmentService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.ImportWatcherHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}
