// Package config provides YAML-based configuration loading for Drydock.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config is the top-level Drydock configuration, loaded from drydock.yaml.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Exports  []ExportConfig `yaml:"exports"`
}

// DatabaseConfig holds connection settings for the relational store.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Path     string `yaml:"path"`
	LogSQL   bool   `yaml:"log_sql"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ExportConfig defines a scheduled timesheet export.
type ExportConfig struct {
	Name      string `yaml:"name"`
	Schedule  string `yaml:"schedule"`
	Dir       string `yaml:"dir"`
	RangeDays int    `yaml:"range_days"`
	StaffID   uint   `yaml:"staff_id"`
	ProjectID uint   `yaml:"project_id"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = DriverMySQL
	}
	c.Database.Driver = strings.ToLower(c.Database.Driver)
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.User == "" {
		c.Database.User = "root"
	}
	if c.Database.Path == "" {
		c.Database.Path = "drydock.db"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	for i := range c.Exports {
		if c.Exports[i].Dir == "" {
			c.Exports[i].Dir = "reports"
		}
		if c.Exports[i].RangeDays == 0 {
			c.Exports[i].RangeDays = 7
		}
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.Database.Driver {
	case DriverMySQL:
		if c.Database.Name == "" {
			errs = append(errs, "database.name is required for the mysql driver")
		}
	case DriverSQLite:
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not supported (use mysql or sqlite)", c.Database.Driver))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("log.format %q is not one of json, console", c.Log.Format))
	}

	seen := make(map[string]bool)
	for i, e := range c.Exports {
		if e.Name == "" {
			errs = append(errs, fmt.Sprintf("exports[%d].name is required", i))
		} else if seen[e.Name] {
			errs = append(errs, fmt.Sprintf("exports[%d].name %q is duplicated", i, e.Name))
		}
		seen[e.Name] = true
		if e.Schedule == "" {
			errs = append(errs, fmt.Sprintf("exports[%d].schedule is required", i))
		} else if _, err := cron.ParseStandard(e.Schedule); err != nil {
			errs = append(errs, fmt.Sprintf("exports[%d].schedule %q: %v", i, e.Schedule, err))
		}
		if e.RangeDays < 0 {
			errs = append(errs, fmt.Sprintf("exports[%d].range_days must be positive", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
