package di

import (
	"context"
	"fmt"
	"time"

	"Stock100/internal/domain/repository"
	"Stock100/internal/handler/api"
	internalrepo "Stock100/internal/repository"
	"Stock100/internal/scheduler"
	"Stock100/internal/service/fmp"
	"Stock100/internal/usecase"
	"Stock100/pkg/cache"
	pkgch "Stock100/pkg/clickhouse"
	"Stock100/pkg/config"
	xhttp "Stock100/pkg/http"
	pkgkafka "Stock100/pkg/kafka"
	"Stock100/pkg/logger"
	"Stock100/pkg/metrics"
	"Stock100/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return logger.New(&logger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideMarketData creates the FMP REST client.
func ProvideMarketData(cfg *config.Config, log *logger.Logger) repository.MarketData {
	return fmp.NewClient(cfg.FMP.BaseURL, cfg.FMP.APIKey, log,
		fmp.WithTimeout(cfg.FMP.Timeout),
		fmp.WithRateLimit(cfg.FMP.MaxRPS, cfg.FMP.Burst),
	)
}

// ProvideCacheService creates the shared cache backend. Redis (behind
// an in-process L1) is used when configured, plain memory otherwise.
func ProvideCacheService(cfg *config.Config) (cache.Service, error) {
	if cfg.Redis.Host == "" {
		return cache.NewMemoryCache(), nil
	}
	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
		cache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideSnapshotStore selects the snapshot backend from config.
func ProvideSnapshotStore(cfg *config.Config, cacheSvc cache.Service, log *logger.Logger) repository.SnapshotStore {
	if cfg.Snapshot.Store == "file" {
		return internalrepo.NewFileSnapshotStore(cfg.Snapshot.Path, log)
	}
	return internalrepo.NewCacheSnapshotStore(cacheSvc)
}

// ProvideResultSinks builds the enabled downstream sinks. Sinks holding
// connections also implement io.Closer and are closed on shutdown.
func ProvideResultSinks(cfg *config.Config) ([]repository.ResultSink, error) {
	var sinks []repository.ResultSink

	if cfg.Kafka.Enabled {
		opts := []pkgkafka.ProducerOption{
			pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		}
		if cfg.Kafka.Compression != "" {
			opts = append(opts, pkgkafka.WithCompression(cfg.Kafka.Compression))
		}
		if cfg.Kafka.RequiredAcks != 0 {
			opts = append(opts, pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks))
		}
		if cfg.Kafka.MaxAttempts != 0 {
			opts = append(opts, pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts))
		}
		if cfg.Kafka.WriteTimeout != 0 {
			opts = append(opts, pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout))
		}
		producer, err := pkgkafka.NewProducer(opts...)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		sinks = append(sinks, internalrepo.NewKafkaSink(producer, cfg.Kafka.Topic))
	}

	if cfg.ClickHouse.Enabled {
		client, err := pkgch.NewClient(
			pkgch.WithHost(cfg.ClickHouse.Host),
			pkgch.WithPort(cfg.ClickHouse.Port),
			pkgch.WithDatabase(cfg.ClickHouse.Database),
			pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
			pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
			pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
			pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
			pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
		)
		if err != nil {
			return nil, fmt.Errorf("clickhouse client: %w", err)
		}

		sink := internalrepo.NewClickHouseSink(client, cfg.ClickHouse.Database+"."+cfg.ClickHouse.Table)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := sink.InitSchema(ctx); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}
		sinks = append(sinks, sink)
	}

	return sinks, nil
}

// ProvideFetcher creates the concurrent feed fetcher.
func ProvideFetcher(source repository.MarketData, m repository.Metrics, log *logger.Logger, cfg *config.Config) *usecase.Fetcher {
	return usecase.NewFetcher(source, m, log, cfg.FMP.SourceTimeout)
}

// ProvideScorer creates the composite scorer.
func ProvideScorer(cfg *config.Config) *usecase.Scorer {
	return usecase.NewScorer(cfg)
}

// ProvideRanker creates the ranker and tagger.
func ProvideRanker(cfg *config.Config) *usecase.Ranker {
	return usecase.NewRanker(cfg)
}

// ProvideEngine creates the prediction engine.
func ProvideEngine(
	fetcher *usecase.Fetcher,
	scorer *usecase.Scorer,
	ranker *usecase.Ranker,
	store repository.SnapshotStore,
	sinks []repository.ResultSink,
	m repository.Metrics,
	log *logger.Logger,
) *usecase.Engine {
	return usecase.NewEngine(fetcher, scorer, ranker, store, sinks, m, log)
}

// ProvideFeedService creates the cached feed service.
func ProvideFeedService(source repository.MarketData, cacheSvc cache.Service, log *logger.Logger, cfg *config.Config) *usecase.FeedService {
	return usecase.NewFeedService(source, cacheSvc, log, cfg.Feeds.TTL)
}

// ProvideHTTPHandler creates the API handler.
func ProvideHTTPHandler(engine *usecase.Engine, feeds *usecase.FeedService, log *logger.Logger) xhttp.Handler {
	return api.NewHandler(engine, feeds, log)
}

// ProvideScheduler creates the cron scheduler.
func ProvideScheduler(cfg *config.Config, engine *usecase.Engine, feeds *usecase.FeedService, log *logger.Logger) (*scheduler.Scheduler, error) {
	return scheduler.New(cfg, engine, feeds, log)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	handler xhttp.Handler,
	sched *scheduler.Scheduler,
	sinks []repository.ResultSink,
	cacheSvc cache.Service,
	log *logger.Logger,
) *server.App {
	return server.New(cfg, handler, sched, sinks, cacheSvc, log)
}
