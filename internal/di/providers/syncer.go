package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfsyncapp/shelfsync-server/internal/config"
	"github.com/shelfsyncapp/shelfsync-server/internal/logger"
	"github.com/shelfsyncapp/shelfsync-server/internal/source"
	"github.com/shelfsyncapp/shelfsync-server/internal/syncer"
)

// ProvideSyncRunner provides the per-source sync pipeline.
func ProvideSyncRunner(i do.Injector) (*syncer.Runner, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return syncer.NewRunner(storeHandle.Store, storeHandle.Store, log.Logger), nil
}

// ProvideSyncCoordinator provides the coordinator that drives full sync passes.
func ProvideSyncCoordinator(i do.Injector) (*syncer.Coordinator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	registry := do.MustInvoke[*source.Registry](i)
	runner := do.MustInvoke[*syncer.Runner](i)
	log := do.MustInvoke[*logger.Logger](i)

	return syncer.NewCoordinator(registry, runner, storeHandle.Store, cfg.Sync.MinInterval, log.Logger), nil
}
