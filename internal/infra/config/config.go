package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Forecast ForecastConfig `yaml:"forecast"`
	Store    StoreConfig    `yaml:"store"`
	Auth     AuthConfig     `yaml:"auth"`
	Geo      GeoConfig      `yaml:"geo"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// ForecastConfig defines the generation procedure's knobs.
type ForecastConfig struct {
	SequenceLength    int           `yaml:"sequenceLength"`
	HorizonDays       int           `yaml:"horizonDays"`
	AnchorDate        string        `yaml:"anchorDate"`
	SeasonalAmplitude float64       `yaml:"seasonalAmplitude"`
	MinTemperature    float64       `yaml:"minTemperature"`
	MaxTemperature    float64       `yaml:"maxTemperature"`
	MinConfidence     float64       `yaml:"minConfidence"`
	MaxConfidence     float64       `yaml:"maxConfidence"`
	TrainingEpochs    int           `yaml:"trainingEpochs"`
	ModelVersion      string        `yaml:"modelVersion"`
	RefreshInterval   time.Duration `yaml:"refreshInterval"`
}

// StoreConfig contains persistence settings.
type StoreConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
	Valkey   ValkeyConfig   `yaml:"valkey"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for the run summary cache.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// AuthConfig guards the mutating endpoints.
type AuthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Secret  string `yaml:"secret"`
	Issuer  string `yaml:"issuer"`
}

// GeoConfig configures the optional coordinate resolver.
type GeoConfig struct {
	GeocoderAPIKey string `yaml:"geocoderApiKey"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// AnchorTime parses the configured anchor date.
func (c *Config) AnchorTime() (time.Time, error) {
	return time.Parse("2006-01-02", c.Forecast.AnchorDate)
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("FORECAST_SEQUENCE_LENGTH"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Forecast.SequenceLength = parsed
		}
	}
	if v := os.Getenv("FORECAST_HORIZON_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Forecast.HorizonDays = parsed
		}
	}
	if v := os.Getenv("FORECAST_ANCHOR_DATE"); v != "" {
		cfg.Forecast.AnchorDate = v
	}
	if v := os.Getenv("FORECAST_MODEL_VERSION"); v != "" {
		cfg.Forecast.ModelVersion = v
	}
	if v := os.Getenv("FORECAST_REFRESH_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Forecast.RefreshInterval = parsed
		}
	}
	if v := os.Getenv("STORE_POSTGRES_DSN"); v != "" {
		cfg.Store.Postgres.DSN = v
	}
	if v := os.Getenv("STORE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Store.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("STORE_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Store.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("STORE_VALKEY_ENABLED"); v != "" {
		cfg.Store.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("STORE_VALKEY_ADDR"); v != "" {
		cfg.Store.Valkey.Addr = v
	}
	if v := os.Getenv("AUTH_ENABLED"); v != "" {
		cfg.Auth.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("GEO_GEOCODER_API_KEY"); v != "" {
		cfg.Geo.GeocoderAPIKey = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
		},
		Forecast: ForecastConfig{
			SequenceLength:    5,
			HorizonDays:       30,
			AnchorDate:        "2025-04-01",
			SeasonalAmplitude: 2,
			MinTemperature:    15,
			MaxTemperature:    40,
			MinConfidence:     0.6,
			MaxConfidence:     0.95,
			TrainingEpochs:    35,
			ModelVersion:      "lstm-v2",
		},
		Store: StoreConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Auth: AuthConfig{
			Issuer: "habagat",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Forecast.SequenceLength <= 0 {
		return errors.New("forecast.sequenceLength must be positive")
	}
	if c.Forecast.HorizonDays <= 0 {
		return errors.New("forecast.horizonDays must be positive")
	}
	if _, err := time.Parse("2006-01-02", c.Forecast.AnchorDate); err != nil {
		return fmt.Errorf("forecast.anchorDate must be YYYY-MM-DD: %w", err)
	}
	if c.Forecast.MinTemperature >= c.Forecast.MaxTemperature {
		return errors.New("forecast temperature bounds are inverted")
	}
	if c.Forecast.MinConfidence < 0 || c.Forecast.MaxConfidence > 1 || c.Forecast.MinConfidence >= c.Forecast.MaxConfidence {
		return errors.New("forecast confidence bounds must satisfy 0 <= min < max <= 1")
	}
	if c.Forecast.TrainingEpochs <= 0 {
		return errors.New("forecast.trainingEpochs must be positive")
	}
	if c.Forecast.ModelVersion == "" {
		return errors.New("forecast.modelVersion cannot be empty")
	}
	if c.Store.Valkey.Enabled && strings.TrimSpace(c.Store.Valkey.Addr) == "" {
		return errors.New("store.valkey.addr cannot be empty when valkey is enabled")
	}
	if c.Auth.Enabled && strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret cannot be empty when auth is enabled")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
