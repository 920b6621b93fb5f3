package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr           = ":8080"
	DefaultDataSource     = "./books.csv"
	DefaultMaxRows        = 300
	DefaultCoverTTL       = 24 * time.Hour
	DefaultPlaceholderURL = "https://via.placeholder.com/120x180?text=No+Cover"
	DefaultCatalogURL     = "https://www.googleapis.com/books/v1/volumes"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Data     DataConfig     `yaml:"data"`
	Covers   CoverConfig    `yaml:"covers"`
	Database DatabaseConfig `yaml:"database"`
}

type AppConfig struct {
	Addr           string   `yaml:"addr" validate:"required"`
	LogLevel       string   `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat      string   `yaml:"log_format" validate:"omitempty,oneof=text json logfmt"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int      `yaml:"rate_limit_burst" validate:"gte=0"`
	InternalSecret string   `yaml:"internal_secret"`
	EnableHSTS     bool     `yaml:"enable_hsts"`
}

// DataConfig points at the reading history export. Source may be a file path,
// an http(s) URL or an s3://bucket/key location.
type DataConfig struct {
	Source    string        `yaml:"source" validate:"required"`
	MaxRows   int           `yaml:"max_rows" validate:"gte=0"`
	Refresh   time.Duration `yaml:"refresh" validate:"gte=0"`
	FromDB    bool          `yaml:"from_db"`
	AWSRegion string        `yaml:"aws_region"`
}

type CoverConfig struct {
	CatalogURL     string        `yaml:"catalog_url" validate:"required,url"`
	APIKey         string        `yaml:"api_key"`
	UserAgent      string        `yaml:"user_agent"`
	TTL            time.Duration `yaml:"ttl" validate:"gt=0"`
	PlaceholderURL string        `yaml:"placeholder_url" validate:"required,url"`
	RPS            int           `yaml:"rps" validate:"gte=1"`
	Timeout        time.Duration `yaml:"timeout" validate:"gt=0"`
	Concurrency    int           `yaml:"concurrency" validate:"gte=1,lte=32"`
	TopRated       int           `yaml:"top_rated" validate:"gte=0"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// Enabled reports whether a Postgres DSN was configured.
func (c DatabaseConfig) Enabled() bool {
	return c.DSN != ""
}

// NewDefault returns a Config populated with defaults.
func NewDefault() *Config {
	return &Config{
		App: AppConfig{
			Addr:           DefaultAddr,
			LogLevel:       "info",
			LogFormat:      "text",
			RateLimitRPS:   20,
			RateLimitBurst: 40,
		},
		Data: DataConfig{
			Source:  DefaultDataSource,
			MaxRows: DefaultMaxRows,
			Refresh: 5 * time.Minute,
		},
		Covers: CoverConfig{
			CatalogURL:     DefaultCatalogURL,
			UserAgent:      "shelfthis/1.0",
			TTL:            DefaultCoverTTL,
			PlaceholderURL: DefaultPlaceholderURL,
			RPS:            5,
			Timeout:        10 * time.Second,
			Concurrency:    4,
			TopRated:       10,
		},
	}
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Data.FromDB && !c.Database.Enabled() {
		return errors.New("invalid config: data.from_db requires database.dsn")
	}
	return nil
}

// LoadEnvFiles loads .env and .env.local without overriding variables that
// are already set in the process environment.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds the configuration: defaults, then the YAML file at path (if it
// exists, with ${VAR} expansion), then environment overrides.
func Load(path string) (*Config, error) {
	LoadEnvFiles()

	cfg := NewDefault()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.App.Addr, "APP_ADDR")
	setString(&cfg.App.LogLevel, "LOG_LEVEL")
	setString(&cfg.App.LogFormat, "LOG_FORMAT")
	setString(&cfg.App.InternalSecret, "INTERNAL_SECRET")
	setString(&cfg.Data.Source, "DATA_SOURCE")
	setString(&cfg.Data.AWSRegion, "AWS_REGION")
	setString(&cfg.Database.DSN, "DB_DSN")
	setString(&cfg.Covers.APIKey, "GOOGLE_BOOKS_API_KEY")
	setString(&cfg.Covers.PlaceholderURL, "COVER_PLACEHOLDER_URL")

	if v := os.Getenv("DATA_MAX_ROWS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DATA_MAX_ROWS: %w", err)
		}
		cfg.Data.MaxRows = n
	}
	if v := os.Getenv("DATA_FROM_DB"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DATA_FROM_DB: %w", err)
		}
		cfg.Data.FromDB = b
	}
	if v := os.Getenv("ENABLE_HSTS"); v != "" {
		cfg.App.EnableHSTS = v == "true"
	}
	if v := os.Getenv("COVER_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("COVER_TTL: %w", err)
		}
		cfg.Covers.TTL = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
