// Package config loads application configuration from config.yaml, the
// environment, and built-in defaults, and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Clean     CleanConfig     `yaml:"clean" mapstructure:"clean"`
	Viewport  ViewportConfig  `yaml:"viewport" mapstructure:"viewport"`
	Fetch     FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Mapbox    MapboxConfig    `yaml:"mapbox" mapstructure:"mapbox"`
	Wikipedia WikipediaConfig `yaml:"wikipedia" mapstructure:"wikipedia"`
	Notion    NotionConfig    `yaml:"notion" mapstructure:"notion"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// CleanConfig configures the cleanup pipeline.
type CleanConfig struct {
	TitleKey            string   `yaml:"title_key" mapstructure:"title_key"`
	RegionKey           string   `yaml:"region_key" mapstructure:"region_key"`
	WikipediaKey        string   `yaml:"wikipedia_key" mapstructure:"wikipedia_key"`
	RemoveFields        []string `yaml:"remove_fields" mapstructure:"remove_fields"`
	AllowFields         []string `yaml:"allow_fields" mapstructure:"allow_fields"`
	RequiredFields      []string `yaml:"required_fields" mapstructure:"required_fields"`
	SimilarityThreshold float64  `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
	KeepAltitude        bool     `yaml:"keep_altitude" mapstructure:"keep_altitude"`
	TablesFile          string   `yaml:"tables_file" mapstructure:"tables_file"`
}

// ViewportConfig configures the zoom estimator's target viewport.
type ViewportConfig struct {
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`
}

// FetchConfig configures dataset retrieval.
type FetchConfig struct {
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
}

// StoreConfig configures the run-history database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// MapboxConfig holds Mapbox Datasets API credentials.
type MapboxConfig struct {
	Username string `yaml:"username" mapstructure:"username"`
	Token    string `yaml:"token" mapstructure:"token"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
}

// WikipediaConfig configures the article enrichment phase.
type WikipediaConfig struct {
	Languages   []string `yaml:"languages" mapstructure:"languages"`
	Concurrency int      `yaml:"concurrency" mapstructure:"concurrency"`
	RatePerSec  float64  `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// NotionConfig holds the optional duplicate-review sink settings.
type NotionConfig struct {
	Token    string `yaml:"token" mapstructure:"token"`
	ReviewDB string `yaml:"review_db" mapstructure:"review_db"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so keys
	// that carry no default must be bound explicitly or they are invisible
	// to Unmarshal when no config file is present.
	for _, key := range []string{
		"clean.remove_fields",
		"clean.allow_fields",
		"clean.required_fields",
		"clean.keep_altitude",
		"clean.tables_file",
		"store.database_url",
		"mapbox.username",
		"mapbox.token",
		"notion.token",
		"notion.review_db",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, eris.Wrapf(err, "config: bind %s", key)
		}
	}

	// Defaults
	v.SetDefault("clean.title_key", "title")
	v.SetDefault("clean.region_key", "region")
	v.SetDefault("clean.wikipedia_key", "Wikipedia")
	v.SetDefault("clean.similarity_threshold", 0.85)
	v.SetDefault("viewport.width", 1200)
	v.SetDefault("viewport.height", 800)
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.rate_per_sec", 5)
	v.SetDefault("fetch.user_agent", "atlas-cli (dataset cleanup)")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("mapbox.base_url", "https://api.mapbox.com")
	v.SetDefault("wikipedia.languages", []string{"en", "de"})
	v.SetDefault("wikipedia.concurrency", 4)
	v.SetDefault("wikipedia.rate_per_sec", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
