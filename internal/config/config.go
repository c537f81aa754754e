// Package config loads application configuration and initializes logging.
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
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Fetch   FetchConfig   `yaml:"fetch" mapstructure:"fetch"`
	Resolve ResolveConfig `yaml:"resolve" mapstructure:"resolve"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// CatalogConfig configures where assembly summaries come from and where
// they are cached.
type CatalogConfig struct {
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	CacheDir string `yaml:"cache_dir" mapstructure:"cache_dir"`
}

// FetchConfig configures the download layer.
type FetchConfig struct {
	Protocol    string `yaml:"protocol" mapstructure:"protocol"` // "https" or "ftp"
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries" mapstructure:"max_retries"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
}

// ResolveConfig configures the resolution engine.
type ResolveConfig struct {
	Workers               int  `yaml:"workers" mapstructure:"workers"`
	PreferQualityFallback bool `yaml:"prefer_quality_fallback" mapstructure:"prefer_quality_fallback"`
}

// StoreConfig configures the sync-metadata database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
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
	v.SetConfigName("taxofetch")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TAXOFETCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("catalog.base_url", "https://ftp.ncbi.nlm.nih.gov/genomes")
	v.SetDefault("catalog.cache_dir", ".taxofetch")
	v.SetDefault("fetch.protocol", "https")
	v.SetDefault("fetch.timeout_secs", 600)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.user_agent", "taxofetch/1.0")
	v.SetDefault("resolve.workers", 8)
	v.SetDefault("resolve.prefer_quality_fallback", false)
	v.SetDefault("store.path", ".taxofetch/taxofetch.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

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
