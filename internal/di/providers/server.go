package providers

import (
	"context"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/shelfsyncapp/shelfsync-server/internal/api"
	"github.com/shelfsyncapp/shelfsync-server/internal/config"
	"github.com/shelfsyncapp/shelfsync-server/internal/logger"
	"github.com/shelfsyncapp/shelfsync-server/internal/syncer"
)

const shutdownTimeout = 10 * time.Second

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
	schedHandle := do.MustInvoke[*SchedulerHandle](i)
	coordinator := do.MustInvoke[*syncer.Coordinator](i)
	log := do.MustInvoke[*logger.Logger](i)

	handler := api.NewServer(storeHandle.Store, schedHandle.Scheduler, coordinator, log.Logger)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
