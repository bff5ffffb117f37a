package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"notebook/utils"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Log      LogConfig
	Store    string
}

type ServerConfig struct {
	Port            string
	GinMode         string
	AllowedOrigins  []string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// JWTConfig holds the signing secret. It is only ever read from the
// environment and must not be logged.
type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	Issuer     string
}

type RedisConfig struct {
	URL      string
	CacheTTL time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads .env when present and builds the configuration from the
// environment. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            utils.GetEnvAsString("PORT", "8080"),
			GinMode:         utils.GetEnvAsString("GIN_MODE", "release"),
			AllowedOrigins:  utils.GetEnvAsStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			MaxBodyBytes:    utils.GetEnvAsInt64("MAX_BODY_BYTES", 1<<20),
			ShutdownTimeout: utils.GetEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: LoadDatabaseConfig(),
		JWT: JWTConfig{
			SecretKey:  os.Getenv("JWT_SECRET_KEY"),
			Expiration: time.Duration(utils.GetEnvAsInt64("JWT_EXPIRATION_TIME", 7*24*60*60)) * time.Second,
			Issuer:     utils.GetEnvAsString("JWT_ISSUER", "notebook"),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			CacheTTL: utils.GetEnvAsDuration("TOKEN_VERSION_CACHE_TTL", 15*time.Minute),
		},
		Log: LogConfig{
			Level:  utils.GetEnvAsString("LOG_LEVEL", "info"),
			Format: utils.GetEnvAsString("LOG_FORMAT", "json"),
		},
		Store: utils.GetEnvAsString("STORE_DRIVER", StoreMongo),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == "" {
		return errors.New("JWT_SECRET_KEY is not set")
	}
	if c.JWT.Expiration <= 0 {
		return errors.New("JWT_EXPIRATION_TIME must be positive")
	}
	switch c.Store {
	case StoreMongo:
		if c.Database.URI == "" {
			return errors.New("MONGO_URI is not set")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("MAX_BODY_BYTES must be positive")
	}
	return nil
}
