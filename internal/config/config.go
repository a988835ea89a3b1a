package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config represents the complete service configuration
type Config struct {
	App      AppConfig      `toml:"app"`
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Minio    MinioConfig    `toml:"minio"`
	Auth     AuthConfig     `toml:"auth"`
	Reports  ReportsConfig  `toml:"reports"`
	Jobs     JobsConfig     `toml:"jobs"`
	Logging  LoggingConfig  `toml:"logging"`
}

type AppConfig struct {
	Name string `toml:"name"` // Prefix of export file names
	Env  string `toml:"env"`  // dev or prod
}

type ServerConfig struct {
	Port int `toml:"port"`
}

type DatabaseConfig struct {
	URL           string `toml:"url"`
	RunMigrations bool   `toml:"run_migrations"`
}

type RedisConfig struct {
	Addr          string `toml:"addr"`
	Password      string `toml:"password"`
	DB            int    `toml:"db"`
	EventsChannel string `toml:"events_channel"`
}

type MinioConfig struct {
	Endpoint     string `toml:"endpoint"`
	AccessKey    string `toml:"access_key"`
	SecretKey    string `toml:"secret_key"`
	UseSSL       bool   `toml:"use_ssl"`
	Region       string `toml:"region"`
	Bucket       string `toml:"bucket"`
	URLExpiryMin int    `toml:"url_expiry_minutes"`
}

// AuthConfig selects how bearer tokens from the identity provider are verified.
// JWKSURL takes precedence over JWTSecret when both are set.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	JWKSURL   string `toml:"jwks_url"`
}

type ReportsConfig struct {
	CurrencySymbol string `toml:"currency_symbol"`
}

type JobsConfig struct {
	LowStockScanMinutes     int `toml:"low_stock_scan_minutes"`
	AnalyticsRefreshMinutes int `toml:"analytics_refresh_minutes"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is supplied
func Default() *Config {
	return &Config{
		App:      AppConfig{Name: "SmartInventory", Env: "dev"},
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{RunMigrations: true},
		Redis:    RedisConfig{Addr: "localhost:6379", EventsChannel: "stockroom:events"},
		Minio: MinioConfig{
			Endpoint:     "localhost:9000",
			AccessKey:    "minioadmin",
			SecretKey:    "minioadmin",
			Region:       "us-east-1",
			Bucket:       "stockroom-reports",
			URLExpiryMin: 60,
		},
		Reports: ReportsConfig{CurrencySymbol: "$"},
		Jobs:    JobsConfig{LowStockScanMinutes: 30, AnalyticsRefreshMinutes: 5},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads an optional TOML file on top of the defaults, then applies
// environment overrides. A .env file in the working directory is honored.
func Load(filename string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if filename != "" {
		if _, err := toml.DecodeFile(filename, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = n
		return nil
	}

	str("APP_NAME", &c.App.Name)
	str("APP_ENV", &c.App.Env)
	str("DATABASE_URL", &c.Database.URL)
	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASSWORD", &c.Redis.Password)
	str("MINIO_ENDPOINT", &c.Minio.Endpoint)
	str("MINIO_ACCESS_KEY", &c.Minio.AccessKey)
	str("MINIO_SECRET_KEY", &c.Minio.SecretKey)
	str("MINIO_BUCKET", &c.Minio.Bucket)
	str("MINIO_REGION", &c.Minio.Region)
	str("JWT_SECRET", &c.Auth.JWTSecret)
	str("JWKS_URL", &c.Auth.JWKSURL)
	str("LOG_LEVEL", &c.Logging.Level)

	if v, ok := lookup("MINIO_USE_SSL"); ok {
		c.Minio.UseSSL = v == "true"
	}
	if err := num("REDIS_DB", &c.Redis.DB); err != nil {
		return err
	}
	return num("PORT", &c.Server.Port)
}

// URLExpiry is how long presigned export links stay valid
func (m MinioConfig) URLExpiry() time.Duration {
	if m.URLExpiryMin <= 0 {
		return time.Hour
	}
	return time.Duration(m.URLExpiryMin) * time.Minute
}
