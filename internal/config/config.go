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
	Dataset DatasetConfig `yaml:"dataset" mapstructure:"dataset"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Flavour FlavourConfig `yaml:"flavour" mapstructure:"flavour"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// DatasetConfig locates the three dataset documents produced by the
// offline pipeline. Sources may be local file paths or HTTP URLs.
type DatasetConfig struct {
	SchoolsSource   string `yaml:"schools_source" mapstructure:"schools_source"`
	PostcodesSource string `yaml:"postcodes_source" mapstructure:"postcodes_source"`
	SuburbsSource   string `yaml:"suburbs_source" mapstructure:"suburbs_source"`
	RegionCode      string `yaml:"region_code" mapstructure:"region_code"`
	RegionName      string `yaml:"region_name" mapstructure:"region_name"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	DefaultRadiusKm float64 `yaml:"default_radius_km" mapstructure:"default_radius_km"`
	MaxResults      int     `yaml:"max_results" mapstructure:"max_results"`
}

// StoreConfig configures the search-log database backend.
// An empty driver disables search logging entirely.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// FlavourConfig locates the optional regional notes file.
type FlavourConfig struct {
	NotesPath string `yaml:"notes_path" mapstructure:"notes_path"`
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
	v.SetEnvPrefix("SCHOOLSEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.schools_source", "data/schools.min.json")
	v.SetDefault("dataset.postcodes_source", "data/postcode_centroids.min.json")
	v.SetDefault("dataset.suburbs_source", "data/suburb_centroids.min.json")
	v.SetDefault("dataset.region_code", "nsw")
	v.SetDefault("dataset.region_name", "New South Wales")
	v.SetDefault("search.default_radius_km", 20)
	v.SetDefault("search.max_results", 500)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "schoolsearch.db")
	v.SetDefault("server.port", 8080)
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
