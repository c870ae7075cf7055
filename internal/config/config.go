package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from SVGCUT_* environment variables.
type Config struct {
	Port          int     `envconfig:"PORT" default:"8080"`
	Smoothness    float64 `envconfig:"SMOOTHNESS" default:"0.2"`
	MaxUploadSize int64   `envconfig:"MAX_UPLOAD" default:"33554432"`
	DumpPath      string  `envconfig:"DUMP_PATH"`
	PreviewDPMM   float64 `envconfig:"PREVIEW_DPMM" default:"4"`
	LogLevel      string  `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("svgcut", &cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Level maps LogLevel to a slog level.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
}
