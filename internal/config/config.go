// Package config provides configuration loading for the resume service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Render   RenderConfig   `yaml:"render"`
	Assets   AssetsConfig   `yaml:"assets"`
	Export   ExportConfig   `yaml:"export"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port      string `yaml:"port"`
	BodyLimit int    `yaml:"body_limit"` // bytes
}

type RenderConfig struct {
	Font     string `yaml:"font"`
	Template string `yaml:"template"`
	Compress bool   `yaml:"compress"`
	// CreationDate is an RFC 3339 timestamp written into every document.
	// Empty keeps the fixed renderer default.
	CreationDate string `yaml:"creation_date"`
}

// AssetsConfig controls where QR images are written while a render runs.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

type ExportConfig struct {
	Dir          string `yaml:"dir"`
	AllowSaveDir bool   `yaml:"allow_save_dir"`
}

// DatabaseConfig enables the render log when URL is set.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      "3000",
			BodyLimit: 1 << 20,
		},
		Render: RenderConfig{
			Font:     "Arial",
			Template: "classic",
			Compress: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// FromEnvironment reads an optional .env file, loads path (if present) and
// applies environment overrides.
func FromEnvironment(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Server.Port, "PORT")
	set(&c.Database.URL, "RENDER_DATABASE_URL")
	set(&c.Assets.Dir, "ASSET_DIR")
	set(&c.Export.Dir, "EXPORT_DIR")
	set(&c.Log.Level, "LOG_LEVEL")
	set(&c.Log.Format, "LOG_FORMAT")

	if v := getenv("ALLOW_SAVE_DIR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid ALLOW_SAVE_DIR %q: %w", v, err)
		}
		c.Export.AllowSaveDir = b
	}
	return nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port must be set")
	}
	if c.Server.BodyLimit <= 0 {
		return fmt.Errorf("server.body_limit must be positive, got %d", c.Server.BodyLimit)
	}
	if _, err := c.CreationDate(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// CreationDate parses Render.CreationDate. The zero time means unset.
func (c *Config) CreationDate() (time.Time, error) {
	if c.Render.CreationDate == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, c.Render.CreationDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("render.creation_date: %w", err)
	}
	return t, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
