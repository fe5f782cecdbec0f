package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config represents the complete configuration
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Queuing     QueuingConfig     `toml:"queuing"`
	Storage     StorageConfig     `toml:"storage"`
	Translation TranslationConfig `toml:"translation"`
	Import      ImportConfig      `toml:"import"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port      int    `toml:"port"`
	JWTSecret string `toml:"jwt_secret"`
}

// DatabaseConfig contains the Postgres connection settings
type DatabaseConfig struct {
	URL           string `toml:"url"`
	MigrationsDir string `toml:"migrations_dir"`
}

// QueuingConfig contains Redis and worker concurrency settings. The same
// Redis instance backs caching and the asynq task queue.
type QueuingConfig struct {
	RedisAddr       string         `toml:"redis_addr"`
	RedisPassword   string         `toml:"redis_password"`
	RedisDB         int            `toml:"redis_db"`
	Concurrency     int            `toml:"concurrency"`
	QueuePriorities map[string]int `toml:"queue_priorities"`
}

// StorageConfig contains MinIO settings for food item images
type StorageConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
}

// TranslationConfig contains machine translation settings
type TranslationConfig struct {
	Endpoint      string   `toml:"endpoint"`
	APIKey        string   `toml:"api_key"`
	SourceLocale  string   `toml:"source_locale"`
	TargetLocales []string `toml:"target_locales"`
}

// ImportConfig contains limits for sheet imports
type ImportConfig struct {
	MaxRows      int `toml:"max_rows"`
	MaxFileBytes int `toml:"max_file_bytes"`
}

// Load reads configuration from a TOML file when path is non-empty, then
// applies environment overrides and defaults. Environment variables win so
// deployments can keep secrets out of the file.
func Load(path string) (*Config, error) {
	config := &Config{}
	if path != "" {
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}
	config.applyEnv()
	config.applyDefaults()
	if config.Database.URL == "" {
		return nil, fmt.Errorf("database url is required (set database.url or DATABASE_URL)")
	}
	return config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Server.JWTSecret = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Queuing.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Queuing.RedisPassword = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Queuing.RedisDB = db
		}
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		c.Storage.Endpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		c.Storage.AccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		c.Storage.SecretKey = v
	}
	if os.Getenv("MINIO_USE_SSL") == "true" {
		c.Storage.UseSSL = true
	}
	if v := os.Getenv("TRANSLATION_ENDPOINT"); v != "" {
		c.Translation.Endpoint = v
	}
	if v := os.Getenv("TRANSLATION_API_KEY"); v != "" {
		c.Translation.APIKey = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.MigrationsDir == "" {
		c.Database.MigrationsDir = "migrations"
	}
	if c.Queuing.RedisAddr == "" {
		c.Queuing.RedisAddr = "localhost:6379"
	}
	if c.Queuing.Concurrency == 0 {
		c.Queuing.Concurrency = 10
	}
	if len(c.Queuing.QueuePriorities) == 0 {
		c.Queuing.QueuePriorities = map[string]int{"default": 1}
	}
	if c.Storage.Endpoint == "" {
		c.Storage.Endpoint = "localhost:9000"
	}
	if c.Storage.AccessKey == "" {
		c.Storage.AccessKey = "minioadmin"
	}
	if c.Storage.SecretKey == "" {
		c.Storage.SecretKey = "minioadmin"
	}
	if c.Translation.SourceLocale == "" {
		c.Translation.SourceLocale = "en"
	}
	if c.Import.MaxRows == 0 {
		c.Import.MaxRows = 5000
	}
	if c.Import.MaxFileBytes == 0 {
		c.Import.MaxFileBytes = 5 << 20
	}
}
