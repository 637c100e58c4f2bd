package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"Stock100/internal/domain/repository"
	"Stock100/internal/scheduler"
	"Stock100/pkg/cache"
	"Stock100/pkg/config"
	xhttp "Stock100/pkg/http"
	"Stock100/pkg/logger"
)

// App encapsulates the application lifecycle: HTTP server, scheduler,
// and the shared resources that need closing on shutdown.
type App struct {
	cfg      *config.Config
	handler  xhttp.Handler
	sched    *scheduler.Scheduler
	sinks    []repository.ResultSink
	cacheSvc cache.Service
	log      *logger.Logger

	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	handler xhttp.Handler,
	sched *scheduler.Scheduler,
	sinks []repository.ResultSink,
	cacheSvc cache.Service,
	log *logger.Logger,
) *App {
	return &App{
		cfg:      cfg,
		handler:  handler,
		sched:    sched,
		sinks:    sinks,
		cacheSvc: cacheSvc,
		log:      log,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		return err
	}
	a.log.Info("http server started", logger.Int("port", a.cfg.Server.Port))

	if a.cfg.Scheduler.Enabled {
		a.sched.Start()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.log.Info("shutting down", logger.String("signal", sig.String()))

	return a.shutdown()
}

func (a *App) shutdown() error {
	if a.cfg.Scheduler.Enabled {
		a.sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown failed", logger.Error(err))
	}

	for _, sink := range a.sinks {
		if closer, ok := sink.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				a.log.Warn("sink close failed",
					logger.String("sink", sink.Name()),
					logger.Error(err))
			}
		}
	}
	if err := a.cacheSvc.Close(); err != nil {
		a.log.Warn("cache close failed", logger.Error(err))
	}

	a.log.Info("shutdown complete")
	return nil
}
