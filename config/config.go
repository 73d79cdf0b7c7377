// Package config loads server configuration from an optional YAML file,
// with environment variables taking precedence over file values.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// CalendarConfig optionally names a JSON calendar definition to load into
// the store at startup, replacing any stored calendar for its year.
type CalendarConfig struct {
	File string `yaml:"file"`
}

// DefaultsConfig fills calculation fields a request leaves unset.
type DefaultsConfig struct {
	JornadaHours     float64 `yaml:"jornada_hours"`
	Method           string  `yaml:"method"`
	DailyRateMinutes int     `yaml:"daily_rate_minutes"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Calendar CalendarConfig `yaml:"calendar"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Path: "recovery.db"},
		Defaults: DefaultsConfig{
			JornadaHours:     6,
			Method:           "daily",
			DailyRateMinutes: 30,
		},
	}
}

// Load reads the YAML file at filename on top of the defaults, then applies
// environment overrides. An empty filename skips the file entirely.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Database.Path = v
	}
}
