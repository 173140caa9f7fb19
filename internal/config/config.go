package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Store    string `yaml:"store"`
	Path     string `yaml:"path"`
	SeedDemo bool   `yaml:"seed_demo"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Store: StoreSQLite,
			Path:  "tally.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("TALLY_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("TALLY_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("TALLY_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TALLY_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if store := os.Getenv("TALLY_STORE"); store != "" {
		cfg.DB.Store = store
	}
	if dbPath := os.Getenv("TALLY_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if seed := os.Getenv("TALLY_SEED_DEMO"); seed != "" {
		cfg.DB.SeedDemo = seed == "true" || seed == "1"
	}
	if level := os.Getenv("TALLY_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.DB.Store != StoreSQLite && cfg.DB.Store != StoreMemory {
		return Config{}, fmt.Errorf("invalid store %q: must be %q or %q", cfg.DB.Store, StoreSQLite, StoreMemory)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
