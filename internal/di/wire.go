//go:build wireinject
// +build wireinject

package di

import (
	"Stock100/pkg/config"
	"Stock100/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient services
		ProvideLogger,
		ProvideMetrics,
		ProvideCacheService,

		// Upstream client and persistence
		ProvideMarketData,
		ProvideSnapshotStore,
		ProvideResultSinks,

		// Pipeline
		ProvideFetcher,
		ProvideScorer,
		ProvideRanker,
		ProvideEngine,
		ProvideFeedService,

		// Surfaces
		ProvideHTTPHandler,
		ProvideScheduler,

		// Application
		ProvideApp,
	)
	return &server.App{}, nil
}
