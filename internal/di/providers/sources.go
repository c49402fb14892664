package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfsyncapp/shelfsync-server/internal/config"
	"github.com/shelfsyncapp/shelfsync-server/internal/logger"
	"github.com/shelfsyncapp/shelfsync-server/internal/source"
	"github.com/shelfsyncapp/shelfsync-server/internal/source/catalog"
	"github.com/shelfsyncapp/shelfsync-server/internal/source/filesystem"
)

// catalogSourceID identifies the remote catalog source in the store.
const catalogSourceID = "catalog"

// ProvideSourceRegistry provides the registry of configured sync sources.
// Registration order is sync order: local library first, then the catalog.
func ProvideSourceRegistry(i do.Injector) (*source.Registry, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	registry := source.NewRegistry()

	if cfg.Library.Path != "" {
		fs := filesystem.New(cfg.Library.Path, log.Logger)
		if err := registry.Register(fs); err != nil {
			return nil, err
		}
		log.Info("Filesystem source registered", "path", cfg.Library.Path)
	}

	if cfg.Catalog.URL != "" {
		cat := catalog.New(catalogSourceID, cfg.Catalog.URL, log.Logger)
		if err := registry.Register(cat); err != nil {
			return nil, err
		}
		log.Info("Catalog source registered", "url", cfg.Catalog.URL)
	}

	return registry, nil
}
