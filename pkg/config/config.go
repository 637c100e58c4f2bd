package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	FMP struct {
		BaseURL       string        `yaml:"base_url"`
		APIKey        string        `yaml:"api_key"`
		Timeout       time.Duration `yaml:"timeout"`
		SourceTimeout time.Duration `yaml:"source_timeout"`
		MaxRPS        float64       `yaml:"max_rps"`
		Burst         float64       `yaml:"burst"`
	} `yaml:"fmp"`
	Scoring struct {
		EPSWeight    float64 `yaml:"eps_weight"`
		CapWeight    float64 `yaml:"cap_weight"`
		NewsWeight   float64 `yaml:"news_weight"`
		VolumeWeight float64 `yaml:"volume_weight"`
		RSIWeight    float64 `yaml:"rsi_weight"`
		GapWeight    float64 `yaml:"gap_weight"`
		TopN         int     `yaml:"top_n"`
		HoldLow      int     `yaml:"hold_low"`
		HoldHigh     int     `yaml:"hold_high"`
		HoldCap      int     `yaml:"hold_cap"`
	} `yaml:"scoring"`
	Snapshot struct {
		Store string `yaml:"store"` // file, memory, redis, layered
		Path  string `yaml:"path"`  // file store location
	} `yaml:"snapshot"`
	Feeds struct {
		TTL time.Duration `yaml:"ttl"`
	} `yaml:"feeds"`
	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		Table            string        `yaml:"table"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Scheduler struct {
		Enabled      bool   `yaml:"enabled"`
		MarketOpen   string `yaml:"market_open"`  // HH:MM local
		MarketClose  string `yaml:"market_close"` // HH:MM local
		GainersEvery int    `yaml:"gainers_every_minutes"`
		PicksAt      string `yaml:"picks_at"`   // HH:MM local, weekdays
		CleanupAt    string `yaml:"cleanup_at"` // HH:MM local, Sundays
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

	c.applyDefaults()

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

	if v := os.Getenv("FMP_API_KEY"); v != "" {
		c.FMP.APIKey = v
	}
	if v := os.Getenv("FMP_BASE_URL"); v != "" {
		c.FMP.BaseURL = v
	}
	if v := os.Getenv("SNAPSHOT_STORE"); v != "" {
		c.Snapshot.Store = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	return c, nil
}

// applyDefaults fills zero values with the canonical scoring model and
// sensible service defaults so a minimal config file still runs.
func (c *Config) applyDefaults() {
	if c.FMP.BaseURL == "" {
		c.FMP.BaseURL = "https://financialmodelingprep.com/api/v3"
	}
	if c.FMP.Timeout == 0 {
		c.FMP.Timeout = 30 * time.Second
	}
	if c.FMP.SourceTimeout == 0 {
		c.FMP.SourceTimeout = 15 * time.Second
	}

	s := &c.Scoring
	if s.EPSWeight == 0 && s.CapWeight == 0 && s.NewsWeight == 0 {
		s.EPSWeight, s.CapWeight, s.NewsWeight = 0.4, 0.4, 0.2
	}
	if s.VolumeWeight == 0 && s.RSIWeight == 0 && s.GapWeight == 0 {
		s.VolumeWeight, s.RSIWeight, s.GapWeight = 0.3, 0.3, 0.4
	}
	if s.TopN == 0 {
		s.TopN = 10
	}
	if s.HoldLow == 0 && s.HoldHigh == 0 {
		s.HoldLow, s.HoldHigh = 40, 60
	}
	if s.HoldCap == 0 {
		s.HoldCap = 20
	}

	if c.Snapshot.Store == "" {
		c.Snapshot.Store = "file"
	}
	if c.Snapshot.Path == "" {
		c.Snapshot.Path = "cache/ai_picks.json"
	}
	if c.Feeds.TTL == 0 {
		c.Feeds.TTL = 24 * time.Hour
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "stock100"
	}
	if c.Scheduler.MarketOpen == "" {
		c.Scheduler.MarketOpen = "06:30"
	}
	if c.Scheduler.MarketClose == "" {
		c.Scheduler.MarketClose = "13:00"
	}
	if c.Scheduler.GainersEvery == 0 {
		c.Scheduler.GainersEvery = 6
	}
	if c.Scheduler.PicksAt == "" {
		c.Scheduler.PicksAt = "08:00"
	}
	if c.Scheduler.CleanupAt == "" {
		c.Scheduler.CleanupAt = "01:00"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.FMP.APIKey == "" && os.Getenv("FMP_API_KEY") == "" {
		return fmt.Errorf("fmp.api_key is required")
	}
	switch c.Snapshot.Store {
	case "file", "memory", "redis", "layered":
	default:
		return fmt.Errorf("snapshot.store must be one of 'file', 'memory', 'redis', 'layered', got '%s'", c.Snapshot.Store)
	}
	if err := weightsSumToOne(c.Scoring.EPSWeight, c.Scoring.CapWeight, c.Scoring.NewsWeight); err != nil {
		return fmt.Errorf("scoring long-buy weights: %w", err)
	}
	if err := weightsSumToOne(c.Scoring.VolumeWeight, c.Scoring.RSIWeight, c.Scoring.GapWeight); err != nil {
		return fmt.Errorf("scoring short-buy weights: %w", err)
	}
	if c.Scoring.HoldLow > c.Scoring.HoldHigh {
		return fmt.Errorf("scoring hold band inverted: [%d,%d]", c.Scoring.HoldLow, c.Scoring.HoldHigh)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.ClickHouse.Enabled && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when clickhouse is enabled")
	}
	return nil
}

func weightsSumToOne(ws ...float64) error {
	var sum float64
	for _, w := range ws {
		if w < 0 {
			return fmt.Errorf("negative weight %v", w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("weights sum to %v, want 1.0", sum)
	}
	return nil
}
