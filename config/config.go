package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Values come from defaults,
// then an optional YAML file (CONFIG_PATH), then environment variables.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	AI        AIConfig        `yaml:"ai"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // gin mode: debug, release, test
}

type DatabaseConfig struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	Name        string `yaml:"name"`
	SSLMode     string `yaml:"sslmode"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

type JWTConfig struct {
	Secret          string `yaml:"secret"`
	ExpirationHours int    `yaml:"expiration_hours"`
}

type AIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type SchedulerConfig struct {
	Enabled       bool   `yaml:"enabled"`
	WarrantySweep string `yaml:"warranty_sweep"` // HH:MM, local time
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "release",
		},
		Database: DatabaseConfig{
			Host:        "localhost",
			Port:        "5432",
			User:        "postgres",
			Name:        "propdesk",
			SSLMode:     "disable",
			AutoMigrate: true,
		},
		JWT: JWTConfig{
			ExpirationHours: 24,
		},
		AI: AIConfig{
			Model: "gemini-2.0-flash",
		},
		Scheduler: SchedulerConfig{
			Enabled:       true,
			WarrantySweep: "02:00",
		},
	}
}

// Load builds the configuration. It never fails: a missing or unreadable
// config file leaves the defaults in place, and secrets are expected from
// the environment in production anyway.
func Load() *Config {
	cfg := defaults()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, cfg)
		}
	}

	overlayEnv(&cfg.Server.Port, "PORT")
	overlayEnv(&cfg.Server.Mode, "GIN_MODE")
	overlayEnv(&cfg.Database.Host, "DB_HOST")
	overlayEnv(&cfg.Database.Port, "DB_PORT")
	overlayEnv(&cfg.Database.User, "DB_USER")
	overlayEnv(&cfg.Database.Password, "DB_PASSWORD")
	overlayEnv(&cfg.Database.Name, "DB_NAME")
	overlayEnv(&cfg.Database.SSLMode, "DB_SSLMODE")
	overlayEnv(&cfg.JWT.Secret, "JWT_SECRET")
	overlayEnv(&cfg.AI.APIKey, "GENAI_API_KEY")
	overlayEnv(&cfg.AI.Model, "GENAI_MODEL")

	return cfg
}

func overlayEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// ConnectionString renders a lib/pq DSN.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// ExpirationDuration returns the JWT lifetime.
func (c *JWTConfig) ExpirationDuration() time.Duration {
	if c.ExpirationHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.ExpirationHours) * time.Hour
}
