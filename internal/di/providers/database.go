package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/shelfsyncapp/shelfsync-server/internal/config"
	"github.com/shelfsyncapp/shelfsync-server/internal/logger"
	"github.com/shelfsyncapp/shelfsync-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}
