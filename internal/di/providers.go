package di

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	drepo "StockPulse/internal/domain/repository"
	dservice "StockPulse/internal/domain/service"
	"StockPulse/internal/handler/api"
	mid "StockPulse/internal/middleware"
	internalrepo "StockPulse/internal/repository"
	"StockPulse/internal/scheduler"
	"StockPulse/internal/service/alphavantage"
	icache "StockPulse/internal/service/cache"
	"StockPulse/internal/service/finnhub"
	"StockPulse/internal/service/yahoo"
	"StockPulse/internal/services/predict"
	"StockPulse/internal/services/sentiment"
	"StockPulse/internal/usecase"
	pkgch "StockPulse/pkg/clickhouse"
	"StockPulse/pkg/config"
	xhttp "StockPulse/pkg/http"
	pkgkafka "StockPulse/pkg/kafka"
	applogger "StockPulse/pkg/logger"
	"StockPulse/pkg/metrics"
	"StockPulse/pkg/queue"
	"StockPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideRedisClient creates the shared Redis client.
func ProvideRedisClient(cfg *config.Config) *redis.Client {
	addr := cfg.Cache.Redis.Addr
	if addr == "" {
		addr = "localhost:6379"
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
}

// ProvideCache builds the layered cache: memory in front, SQLite behind it,
// Redis as the shared outer layer when enabled.
func ProvideCache(cfg *config.Config, rdb *redis.Client, l *applogger.Logger) (icache.BytesCache, error) {
	layers := []icache.BytesCache{icache.NewTTLCache()}

	if cfg.Cache.SQLitePath != "" {
		sq, err := icache.NewSQLiteCache(cfg.Cache.SQLitePath, cfg.Cache.SweepInterval)
		if err != nil {
			return nil, fmt.Errorf("sqlite cache: %w", err)
		}
		layers = append(layers, sq)
	}
	if cfg.Cache.Redis.Enabled {
		layers = append(layers, icache.NewRedisCache(rdb))
	}

	l.Info("cache layers assembled",
		applogger.Int("layers", len(layers)),
		applogger.Bool("redis", cfg.Cache.Redis.Enabled),
		applogger.String("sqlite", cfg.Cache.SQLitePath))
	return icache.NewLayered(layers...), nil
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when no host is
// configured.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.ClickHouse.Host == "" {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideBarStore creates the ClickHouse bar store and ensures its schema.
func ProvideBarStore(chClient *pkgch.Client, l *applogger.Logger) (drepo.BarStore, error) {
	if chClient == nil {
		return nil, nil
	}
	store := internalrepo.NewCHBarStore(chClient, l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("bar store schema: %w", err)
	}
	return store, nil
}

// ProvideTickStore creates the ClickHouse tick store and ensures its schema.
func ProvideTickStore(chClient *pkgch.Client) (drepo.TickStore, error) {
	if chClient == nil {
		return nil, nil
	}
	store := internalrepo.NewCHTickStore(chClient)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("tick store schema: %w", err)
	}
	return store, nil
}

// ProvideBarProviders builds the ordered provider failover chain.
func ProvideBarProviders(cfg *config.Config) []drepo.BarProvider {
	providers := []drepo.BarProvider{
		yahoo.NewClient(cfg.Providers.Yahoo.BaseURL, cfg.Providers.Yahoo.Timeout),
	}
	if cfg.Providers.AlphaVantage.APIKey != "" {
		providers = append(providers, alphavantage.NewClient(
			cfg.Providers.AlphaVantage.BaseURL,
			cfg.Providers.AlphaVantage.APIKey,
			cfg.Providers.AlphaVantage.Timeout,
		))
	}
	return providers
}

// ProvideMarketData creates the market data use case.
func ProvideMarketData(
	providers []drepo.BarProvider,
	c icache.BytesCache,
	store drepo.BarStore,
	m drepo.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.MarketDataUseCase {
	return usecase.NewMarketDataUseCase(providers, c, store, m, l, cfg.Cache.QuoteTTL, cfg.Cache.HistoryTTL)
}

// ProvideAnalysis creates the indicator use case.
func ProvideAnalysis(market *usecase.MarketDataUseCase) *usecase.AnalysisUseCase {
	return usecase.NewAnalysisUseCase(market)
}

// ProvideRegistry creates the in-process model registry.
func ProvideRegistry() *predict.Registry {
	return predict.NewRegistry()
}

// ProvideJobStore creates the Redis-backed training job store.
func ProvideJobStore(rdb *redis.Client, cfg *config.Config) drepo.JobStore {
	return internalrepo.NewRedisJobStore(rdb, cfg.Queue.JobTTL)
}

// ProvideJobQueue creates the Redis job queue with the train handler
// registered.
func ProvideJobQueue(
	l *applogger.Logger,
	cfg *config.Config,
	rdb *redis.Client,
	handler *usecase.TrainJobHandler,
) *queue.RedisQueue {
	q := queue.NewRedisQueue(l, &queue.QueueConfig{
		Workers:    cfg.Queue.Workers,
		RetryLimit: cfg.Queue.RetryLimit,
		RetryDelay: cfg.Queue.RetryDelay,
	}, rdb)
	q.RegisterJob(handler)
	return q
}

// ProvideTrainConfig maps prediction settings from YAML.
func ProvideTrainConfig(cfg *config.Config) predict.TrainConfig {
	tc := predict.DefaultTrainConfig()
	if cfg.Predict.HorizonBars > 0 {
		tc.HorizonBars = cfg.Predict.HorizonBars
	}
	if cfg.Predict.FlatThreshold > 0 {
		tc.FlatThreshold = cfg.Predict.FlatThreshold
	}
	if cfg.Predict.Epochs > 0 {
		tc.Epochs = cfg.Predict.Epochs
	}
	if cfg.Predict.LearningRate > 0 {
		tc.LearningRate = cfg.Predict.LearningRate
	}
	if cfg.Predict.L2 > 0 {
		tc.L2 = cfg.Predict.L2
	}
	if cfg.Predict.Validationpart > 0 {
		tc.ValidationPart = cfg.Predict.Validationpart
	}
	return tc
}

// ProvideTrainJobHandler creates the queue worker that runs training.
func ProvideTrainJobHandler(
	market *usecase.MarketDataUseCase,
	registry *predict.Registry,
	jobs drepo.JobStore,
	m drepo.Metrics,
	l *applogger.Logger,
	tc predict.TrainConfig,
) *usecase.TrainJobHandler {
	return usecase.NewTrainJobHandler(market, registry, jobs, m, l, tc)
}

// ProvideTrainUseCase creates the train/predict use case.
func ProvideTrainUseCase(
	market *usecase.MarketDataUseCase,
	registry *predict.Registry,
	jobs drepo.JobStore,
	q *queue.RedisQueue,
	m drepo.Metrics,
	l *applogger.Logger,
	tc predict.TrainConfig,
) *usecase.TrainUseCase {
	return usecase.NewTrainUseCase(market, registry, jobs, q, m, l, tc)
}

// ProvideBacktest creates the backtest use case.
func ProvideBacktest(market *usecase.MarketDataUseCase, registry *predict.Registry, m drepo.Metrics, l *applogger.Logger) *usecase.BacktestUseCase {
	return usecase.NewBacktestUseCase(market, registry, m, l)
}

// ProvideNewsSources builds the ordered news source chain: the Alpha Vantage
// news API first when keyed, the Yahoo Finance scraper as fallback.
func ProvideNewsSources(cfg *config.Config) []dservice.NewsSource {
	var sources []dservice.NewsSource
	if cfg.Providers.AlphaVantage.APIKey != "" {
		sources = append(sources, alphavantage.NewClient(
			cfg.Providers.AlphaVantage.BaseURL,
			cfg.Providers.AlphaVantage.APIKey,
			cfg.Providers.AlphaVantage.Timeout,
		))
	}
	sources = append(sources, sentiment.NewYahooNews("", 10*time.Second))
	return sources
}

// ProvideScorer creates the external sentiment model client.
func ProvideScorer(cfg *config.Config) dservice.SentimentScorer {
	return sentiment.NewModelClient(cfg.Sentiment.ModelServiceURL, cfg.Sentiment.Timeout)
}

// ProvideNews creates the news/sentiment use case.
func ProvideNews(
	sources []dservice.NewsSource,
	scorer dservice.SentimentScorer,
	c icache.BytesCache,
	m drepo.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.NewsUseCase {
	return usecase.NewNewsUseCase(sources, scorer, c, m, l, cfg.Cache.NewsTTL)
}

// ProvideSignals creates the aggregate signals use case.
func ProvideSignals(
	market *usecase.MarketDataUseCase,
	analysis *usecase.AnalysisUseCase,
	train *usecase.TrainUseCase,
	news *usecase.NewsUseCase,
	l *applogger.Logger,
) *usecase.SignalsUseCase {
	return usecase.NewSignalsUseCase(market, analysis, train, news, l)
}

// ProvideKafkaProducer creates the Kafka producer when the stream backend is
// kafka.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Stream.Enabled || cfg.Stream.Backend != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatch(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.BatchBytes, cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideTickPublisher wraps the producer as a tick publisher.
func ProvideTickPublisher(producer *pkgkafka.Producer, cfg *config.Config) drepo.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates the tick consumer when the stream backend is
// kafka.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Stream.Enabled || cfg.Stream.Backend != "kafka" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaTicksHandler persists consumed ticks to ClickHouse.
func ProvideKafkaTicksHandler(store drepo.TickStore, m drepo.Metrics, cfg *config.Config) *usecase.KafkaTicksHandler {
	if store == nil || !cfg.Stream.Enabled || cfg.Stream.Backend != "kafka" {
		return nil
	}
	return usecase.NewKafkaTicksHandler(cfg.Kafka.Topic, store, m)
}

// ProvideMarketStream creates the websocket quote stream.
func ProvideMarketStream(cfg *config.Config, l *applogger.Logger) drepo.MarketStream {
	if !cfg.Stream.Enabled {
		return nil
	}
	return finnhub.New(
		l,
		cfg.Stream.APIKey,
		cfg.Stream.WebSocketURL,
		cfg.Stream.Symbols,
		cfg.Stream.ReconnectDelay,
		cfg.Stream.PingInterval,
	)
}

// ProvideTickProcessor routes live ticks to the configured backend.
func ProvideTickProcessor(
	pub drepo.Publisher,
	store drepo.TickStore,
	m drepo.Metrics,
	cfg *config.Config,
) *usecase.TickProcessor {
	if !cfg.Stream.Enabled {
		return nil
	}
	return usecase.NewTickProcessor(pub, store, m, cfg.Stream.Backend)
}

// ProvideQuoteCollector wires the stream through the realtime pipeline into
// the processor.
func ProvideQuoteCollector(
	stream drepo.MarketStream,
	processor *usecase.TickProcessor,
	m drepo.Metrics,
	cfg *config.Config,
) *usecase.QuoteCollector {
	if stream == nil || processor == nil {
		return nil
	}
	pipe := mid.NewRealtimePipeline(processor, m,
		mid.WithMaxTPS(cfg.Stream.MaxTPS),
		mid.WithBufferSize(cfg.Stream.BufferSize),
	)
	return usecase.NewQuoteCollector(stream, processor, m, pipe)
}

// ProvideScheduler creates the watchlist refresh scheduler.
func ProvideScheduler(market *usecase.MarketDataUseCase, m drepo.Metrics, l *applogger.Logger, cfg *config.Config) *scheduler.Scheduler {
	if !cfg.Scheduler.Enabled {
		return nil
	}
	return scheduler.New(market, m, l, cfg.Scheduler.CronSpec, cfg.Scheduler.Watchlist)
}

// ProvideHTTPHandler composes every API handler.
func ProvideHTTPHandler(
	l *applogger.Logger,
	market *usecase.MarketDataUseCase,
	analysis *usecase.AnalysisUseCase,
	train *usecase.TrainUseCase,
	backtest *usecase.BacktestUseCase,
	news *usecase.NewsUseCase,
	signals *usecase.SignalsUseCase,
	barStore drepo.BarStore,
	rdb *redis.Client,
	cfg *config.Config,
) xhttp.Handler {
	return xhttp.CompositeHandler{
		api.NewHealthHandler(l, barStore, rdb, cfg.Environment),
		api.NewMarketHandler(l, market),
		api.NewAnalysisHandler(l, analysis),
		api.NewPredictHandler(l, train),
		api.NewBacktestHandler(l, backtest),
		api.NewNewsHandler(l, news),
		api.NewSignalsHandler(l, signals),
	}
}

// ProvideApp assembles the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	collector *usecase.QuoteCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaTicksHandler,
	q *queue.RedisQueue,
	sched *scheduler.Scheduler,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, l, handler, collector, consumer, kh, q, sched, chClient)
}
