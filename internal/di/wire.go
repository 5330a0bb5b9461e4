//go:build wireinject
// +build wireinject

package di

import (
	"StockPulse/pkg/config"
	"StockPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation in wire_gen.go.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient infrastructure
		ProvideLogger,
		ProvideMetrics,
		ProvideRedisClient,
		ProvideCache,
		ProvideClickHouseClient,

		// Stores
		ProvideBarStore,
		ProvideTickStore,
		ProvideJobStore,

		// Upstream providers and model infrastructure
		ProvideBarProviders,
		ProvideRegistry,
		ProvideTrainConfig,
		ProvideNewsSources,
		ProvideScorer,

		// Use cases
		ProvideMarketData,
		ProvideAnalysis,
		ProvideTrainJobHandler,
		ProvideJobQueue,
		ProvideTrainUseCase,
		ProvideBacktest,
		ProvideNews,
		ProvideSignals,

		// Streaming path
		ProvideKafkaProducer,
		ProvideTickPublisher,
		ProvideKafkaConsumer,
		ProvideKafkaTicksHandler,
		ProvideMarketStream,
		ProvideTickProcessor,
		ProvideQuoteCollector,

		// Scheduler, HTTP, and application server
		ProvideScheduler,
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
