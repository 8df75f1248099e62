package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the process configuration. Zero values are filled by defaults.
type Config struct {
	Server   ServerConfig `yaml:"server"`
	Theme    string       `yaml:"theme"`
	Fixtures string       `yaml:"fixtures,omitempty"`
	// Templates points at a template directory on disk; empty uses the
	// embedded set.
	Templates string        `yaml:"templates,omitempty"`
	Charts    ChartsConfig  `yaml:"charts"`
	Logger    LoggerConfig  `yaml:"logger"`
	Notices   NoticesConfig `yaml:"notices"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ChartsConfig tunes the go-echarts renderer. An empty AssetsHost keeps the
// library default CDN.
type ChartsConfig struct {
	AssetsHost string        `yaml:"assets_host,omitempty"`
	CacheTTL   time.Duration `yaml:"cache_ttl"`
	Height     string        `yaml:"height,omitempty"`
}

// LoggerConfig mirrors the zap setup: Mode picks the production or
// development preset; FileEnable adds a rotating JSON file.
type LoggerConfig struct {
	Mode       string `yaml:"mode"`
	Level      string `yaml:"level"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
}

type NoticesConfig struct {
	InboxLimit int `yaml:"inbox_limit"`
}

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

var validLevels = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads path, or returns Default when path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a YAML config. Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate ensures enumerated settings hold known values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Theme) {
	case "light", "dark":
	default:
		return fmt.Errorf("config: theme must be light or dark, got %q", c.Theme)
	}
	switch c.Logger.Mode {
	case ModeDevelopment, ModeProduction:
	default:
		return fmt.Errorf("config: logger.mode must be %s or %s, got %q", ModeDevelopment, ModeProduction, c.Logger.Mode)
	}
	if _, ok := validLevels[c.Logger.Level]; !ok {
		return fmt.Errorf("config: unknown logger.level %q", c.Logger.Level)
	}
	if c.Logger.FileEnable && c.Logger.Filename == "" {
		return errors.New("config: logger.filename is required when file_enable is set")
	}
	if c.Charts.CacheTTL < 0 {
		return errors.New("config: charts.cache_ttl cannot be negative")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Theme == "" {
		c.Theme = "light"
	}
	if c.Charts.CacheTTL == 0 {
		c.Charts.CacheTTL = 5 * time.Minute
	}
	if c.Charts.Height == "" {
		c.Charts.Height = "300px"
	}
	if c.Logger.Mode == "" {
		c.Logger.Mode = ModeDevelopment
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.FileEnable && c.Logger.Filename == "" {
		c.Logger.Filename = "logs/commerce-admin.log"
	}
	if c.Logger.MaxSizeMB == 0 {
		c.Logger.MaxSizeMB = 64
	}
	if c.Logger.MaxBackups == 0 {
		c.Logger.MaxBackups = 7
	}
	if c.Logger.MaxAgeDays == 0 {
		c.Logger.MaxAgeDays = 7
	}
	if c.Notices.InboxLimit <= 0 {
		c.Notices.InboxLimit = 20
	}
}
