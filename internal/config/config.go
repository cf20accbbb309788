package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration of the service.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	JWT        JWTConfig        `yaml:"jwt"`
	Admin      AdminConfig      `yaml:"admin"`
	S3         S3Config         `yaml:"s3"`
	Logger     LoggerConfig     `yaml:"logger"`
	Feed       FeedConfig       `yaml:"feed"`
	Moderation ModerationConfig `yaml:"moderation"`
	Profile    ProfileConfig    `yaml:"profile"`
	Jobs       JobsConfig       `yaml:"jobs"`
}

type ServerConfig struct {
	Port            string        `yaml:"port" env:"PORT"`
	Mode            string        `yaml:"mode" env:"GIN_MODE"`
	BasePath        string        `yaml:"base_path" env:"SERVER_BASE_PATH"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver" env:"DB_DRIVER"` // postgres or sqlite
	URL             string        `yaml:"url" env:"DATABASE_URL"`
	Host            string        `yaml:"host" env:"DB_HOST"`
	Port            int           `yaml:"port" env:"DB_PORT"`
	User            string        `yaml:"user" env:"DB_USER"`
	Password        string        `yaml:"password" env:"DB_PASSWORD"`
	Name            string        `yaml:"name" env:"DB_NAME"`
	SSLMode         string        `yaml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
}

// GetDSN returns DATABASE_URL when set, otherwise a key/value postgres DSN.
func (d DatabaseConfig) GetDSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED"`
	URL      string `yaml:"url" env:"REDIS_URL"`
	Host     string `yaml:"host" env:"REDIS_HOST"`
	Port     int    `yaml:"port" env:"REDIS_PORT"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

// Addr returns host:port of the redis server.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string `yaml:"secret" env:"JWT_SECRET"`
}

type AdminConfig struct {
	APIKey string `yaml:"api_key" env:"ADMIN_API_KEY"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket" env:"S3_BUCKET"`
	Region    string `yaml:"region" env:"S3_REGION"`
	Endpoint  string `yaml:"endpoint" env:"S3_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"S3_SECRET_KEY"`
}

type LoggerConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

type FeedConfig struct {
	CacheTTL        time.Duration `yaml:"cache_ttl" env:"FEED_CACHE_TTL"`
	DefaultPageSize int           `yaml:"default_page_size" env:"FEED_DEFAULT_PAGE_SIZE"`
	MaxPageSize     int           `yaml:"max_page_size" env:"FEED_MAX_PAGE_SIZE"`
}

// ModerationConfig controls user post submission rules.
// Timezone decides where the calendar day used by the daily limit starts.
type ModerationConfig struct {
	Timezone string `yaml:"timezone" env:"MODERATION_TIMEZONE"`
}

// Location resolves Timezone, falling back to UTC.
func (m ModerationConfig) Location() (*time.Location, error) {
	if m.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(m.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid moderation timezone %q: %w", m.Timezone, err)
	}
	return loc, nil
}

type ProfileConfig struct {
	DefaultAvatar  string   `yaml:"default_avatar" env:"PROFILE_DEFAULT_AVATAR"`
	AllowedAvatars []string `yaml:"allowed_avatars" env:"PROFILE_ALLOWED_AVATARS" envSeparator:","`
}

type JobsConfig struct {
	MetricsSpec string `yaml:"metrics_spec" env:"JOB_METRICS_SPEC"`
	CleanupSpec string `yaml:"cleanup_spec" env:"JOB_CLEANUP_SPEC"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Mode:            "debug",
			BasePath:        "/api",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"http://localhost:5173", "http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Password:        "postgres",
			Name:            "community",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
		Logger: LoggerConfig{Level: "info"},
		Feed: FeedConfig{
			CacheTTL:        30 * time.Second,
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Moderation: ModerationConfig{Timezone: "UTC"},
		Profile: ProfileConfig{
			DefaultAvatar: "avatars/avatar1.png",
			AllowedAvatars: []string{
				"avatars/avatar1.png",
				"avatars/avatar2.png",
				"avatars/avatar3.png",
				"avatars/avatar4.png",
			},
		},
		Jobs: JobsConfig{
			MetricsSpec: "@every 1m",
			CleanupSpec: "@every 1h",
		},
	}
}

// Load reads defaults, then the yaml file at path (if present), then a .env
// file (if present), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// .env is optional outside local development
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if _, err := cfg.Moderation.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}
