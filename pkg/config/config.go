package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"StockPulse/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Providers struct {
		Yahoo struct {
			BaseURL string        `yaml:"base_url"`
			Timeout time.Duration `yaml:"timeout"`
		} `yaml:"yahoo"`
		AlphaVantage struct {
			BaseURL string        `yaml:"base_url"`
			APIKey  string        `yaml:"api_key"`
			Timeout time.Duration `yaml:"timeout"`
		} `yaml:"alphavantage"`
	} `yaml:"providers"`
	Cache struct {
		QuoteTTL      time.Duration `yaml:"quote_ttl"`
		HistoryTTL    time.Duration `yaml:"history_ttl"`
		NewsTTL       time.Duration `yaml:"news_ttl"`
		SQLitePath    string        `yaml:"sqlite_path"`
		SweepInterval time.Duration `yaml:"sweep_interval"`
		Redis         struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Stream struct {
		Enabled        bool          `yaml:"enabled"`
		APIKey         string        `yaml:"api_key"`
		WebSocketURL   string        `yaml:"websocket_url"`
		Backend        string        `yaml:"backend"` // kafka or clickhouse
		Symbols        []string      `yaml:"symbols"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay"`
		PingInterval   time.Duration `yaml:"ping_interval"`
		MaxTPS         int           `yaml:"max_tps"`
		BufferSize     int           `yaml:"buffer_size"`
	} `yaml:"stream"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
			DLQTopic   string        `yaml:"dlq_topic"`
			MinBytes   int           `yaml:"min_bytes"`
			MaxBytes   int           `yaml:"max_bytes"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	Queue struct {
		Workers    int           `yaml:"workers"`
		RetryLimit int           `yaml:"retry_limit"`
		RetryDelay time.Duration `yaml:"retry_delay"`
		JobTTL     time.Duration `yaml:"job_ttl"`
	} `yaml:"queue"`
	Sentiment struct {
		ModelServiceURL string        `yaml:"model_service_url"`
		Timeout         time.Duration `yaml:"timeout"`
		MaxHeadlines    int           `yaml:"max_headlines"`
	} `yaml:"sentiment"`
	Predict struct {
		LookbackDays   int     `yaml:"lookback_days"`
		HorizonBars    int     `yaml:"horizon_bars"`
		FlatThreshold  float64 `yaml:"flat_threshold"`
		Epochs         int     `yaml:"epochs"`
		LearningRate   float64 `yaml:"learning_rate"`
		L2             float64 `yaml:"l2"`
		Validationpart float64 `yaml:"validation_part"`
	} `yaml:"predict"`
	Scheduler struct {
		Enabled   bool     `yaml:"enabled"`
		CronSpec  string   `yaml:"cron_spec"`
		Watchlist []string `yaml:"watchlist"`
	} `yaml:"scheduler"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		c.Providers.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("STREAM_API_KEY"); v != "" {
		c.Stream.APIKey = v
	}
	if v := os.Getenv("STREAM_SYMBOLS"); v != "" {
		c.Stream.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		c.Scheduler.Watchlist = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("SENTIMENT_MODEL_URL"); v != "" {
		c.Sentiment.ModelServiceURL = v
	}
	c.Server.Port = util.ParseIntDefault(os.Getenv("SERVER_PORT"), c.Server.Port)
	c.Cache.Redis.DB = util.ParseIntDefault(os.Getenv("REDIS_DB"), c.Cache.Redis.DB)
	c.Predict.FlatThreshold = util.ParseFloatDefault(os.Getenv("PREDICT_FLAT_THRESHOLD"), c.Predict.FlatThreshold)

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Stream.Enabled {
		if c.Stream.Backend != "kafka" && c.Stream.Backend != "clickhouse" {
			return fmt.Errorf("stream.backend must be 'kafka' or 'clickhouse', got '%s'", c.Stream.Backend)
		}
		if c.Stream.APIKey == "" {
			return fmt.Errorf("stream.api_key is required when stream is enabled")
		}
		if len(c.Stream.Symbols) == 0 {
			return fmt.Errorf("stream.symbols cannot be empty when stream is enabled")
		}
		if c.Stream.Backend == "kafka" && len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers cannot be empty when stream.backend is kafka")
		}
		if c.Stream.Backend == "clickhouse" && c.ClickHouse.Host == "" {
			return fmt.Errorf("clickhouse.host is required when stream.backend is clickhouse")
		}
	}
	if c.Scheduler.Enabled && len(c.Scheduler.Watchlist) == 0 {
		return fmt.Errorf("scheduler.watchlist cannot be empty when scheduler is enabled")
	}
	if c.Predict.FlatThreshold < 0 {
		return fmt.Errorf("predict.flat_threshold must be >= 0")
	}
	return nil
}
