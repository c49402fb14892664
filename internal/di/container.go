// Package di provides dependency injection configuration for the ShelfSync server.
package di

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/shelfsyncapp/shelfsync-server/internal/config"
	"github.com/shelfsyncapp/shelfsync-server/internal/di/providers"
	"github.com/shelfsyncapp/shelfsync-server/internal/logger"
	"github.com/shelfsyncapp/shelfsync-server/internal/source"
	"github.com/shelfsyncapp/shelfsync-server/internal/syncer"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Sync layer
	do.Provide(injector, providers.ProvideSourceRegistry)
	do.Provide(injector, providers.ProvideSyncRunner)
	do.Provide(injector, providers.ProvideSyncCoordinator)

	// Workers
	do.Provide(injector, providers.ProvideScheduler)
	do.Provide(injector, providers.ProvideLibraryWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap invokes every service to trigger initialization. Providers that
// fail panic via MustInvoke; the recover keeps the error path uniform.
func Bootstrap(injector *do.RootScope) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("bootstrap: %v", r)
		}
	}()

	// Core infrastructure
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)

	// Sync layer
	_ = do.MustInvoke[*source.Registry](injector)
	_ = do.MustInvoke[*syncer.Runner](injector)
	_ = do.MustInvoke[*syncer.Coordinator](injector)

	// Workers
	_ = do.MustInvoke[*providers.SchedulerHandle](injector)
	_ = do.MustInvoke[*providers.LibraryWatcherHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
