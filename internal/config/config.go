package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/app"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	StoreSQLite   = "sqlite"
	StoreFile     = "file"
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

const (
	DefaultWaterIncrementML = 250
	DefaultMaxWaterML       = 3000
)

type S3Config struct {
	Endpoint    string
	Region      string
	Bucket      string
	AccessKeyID string
	SecretKey   string
	Prefix      string
}

// Enabled reports whether enough settings are present to upload backups.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

type Config struct {
	Env              string
	LogLevel         string
	Store            string
	DBPath           string
	DataFile         string
	RedisURL         string
	RedisPrefix      string
	PostgresDSN      string
	BcryptCost       int
	WaterIncrementML int
	MaxWaterML       int
	OpenFoodFactsURL string
	S3               S3Config
}

// Load reads .env (when present) and the process environment. Callers
// override individual fields from flags and then call Validate.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Env:         getEnv("BIG2FIT_ENV", "development"),
		LogLevel:    getEnv("BIG2FIT_LOG_LEVEL", "warn"),
		Store:       strings.ToLower(getEnv("BIG2FIT_STORE", StoreSQLite)),
		DBPath:      getEnv("BIG2FIT_DB", ""),
		DataFile:    getEnv("BIG2FIT_DATA_FILE", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		RedisPrefix: getEnv("BIG2FIT_REDIS_PREFIX", "big2fit:"),
		PostgresDSN: getEnv("POSTGRES_DSN", ""),
		S3: S3Config{
			Endpoint:    getEnv("BIG2FIT_S3_ENDPOINT", ""),
			Region:      getEnv("BIG2FIT_S3_REGION", "us-east-1"),
			Bucket:      getEnv("BIG2FIT_S3_BUCKET", ""),
			AccessKeyID: getEnv("BIG2FIT_S3_ACCESS_KEY_ID", ""),
			SecretKey:   getEnv("BIG2FIT_S3_SECRET_ACCESS_KEY", ""),
			Prefix:      getEnv("BIG2FIT_S3_PREFIX", "big2fit/"),
		},
		// Empty means the public openfoodfacts.org API.
		OpenFoodFactsURL: getEnv("BIG2FIT_OPENFOODFACTS_URL", ""),
	}

	var err error
	if cfg.BcryptCost, err = getEnvInt("BIG2FIT_BCRYPT_COST", bcrypt.DefaultCost); err != nil {
		return nil, err
	}
	if cfg.WaterIncrementML, err = getEnvInt("BIG2FIT_WATER_INCREMENT_ML", DefaultWaterIncrementML); err != nil {
		return nil, err
	}
	if cfg.MaxWaterML, err = getEnvInt("BIG2FIT_MAX_WATER_ML", DefaultMaxWaterML); err != nil {
		return nil, err
	}

	if cfg.DBPath == "" {
		if cfg.DBPath, err = app.DefaultDBPath(); err != nil {
			return nil, err
		}
	}
	if cfg.DataFile == "" {
		if cfg.DataFile, err = app.DefaultDataFilePath(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreSQLite:
		if c.DBPath == "" {
			return errors.New("BIG2FIT_DB is required when BIG2FIT_STORE=sqlite")
		}
	case StoreFile:
		if c.DataFile == "" {
			return errors.New("BIG2FIT_DATA_FILE is required when BIG2FIT_STORE=file")
		}
	case StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required when BIG2FIT_STORE=redis")
		}
	case StorePostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when BIG2FIT_STORE=postgres")
		}
	default:
		return fmt.Errorf("BIG2FIT_STORE must be one of: sqlite, file, memory, redis, postgres (got %q)", c.Store)
	}
	if c.Env != "development" && c.Env != "production" {
		return errors.New("BIG2FIT_ENV must be one of: development, production")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BIG2FIT_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.WaterIncrementML <= 0 {
		return errors.New("BIG2FIT_WATER_INCREMENT_ML must be > 0")
	}
	if c.MaxWaterML < c.WaterIncrementML {
		return errors.New("BIG2FIT_MAX_WATER_ML must be >= BIG2FIT_WATER_INCREMENT_ML")
	}
	if c.S3.Enabled() && (c.S3.AccessKeyID == "") != (c.S3.SecretKey == "") {
		return errors.New("BIG2FIT_S3_ACCESS_KEY_ID and BIG2FIT_S3_SECRET_ACCESS_KEY must be set together")
	}
	return nil
}

// StorePath is the on-disk location backing the configured store, or "" for
// backends that do not live in a local file.
func (c *Config) StorePath() string {
	switch c.Store {
	case StoreSQLite:
		return c.DBPath
	case StoreFile:
		return c.DataFile
	}
	return ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}
