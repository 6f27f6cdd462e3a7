package mats

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk form of the engine settings, usually mats.yaml.
type FileConfig struct {
	MaxDepth  int    `yaml:"max_depth"`
	StepQuota int    `yaml:"step_quota"`
	LogLevel  string `yaml:"log_level"`
	Quiet     bool   `yaml:"quiet"`
}

// LoadConfig reads a YAML config file. Unknown keys are rejected.
func LoadConfig(path string) (*FileConfig, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()
	return DecodeConfig(file, path)
}

// DecodeConfig decodes a YAML config from r. name labels error messages.
func DecodeConfig(r io.Reader, name string) (*FileConfig, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var cfg FileConfig
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", name, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", name, err)
	}
	return &cfg, nil
}

func (c *FileConfig) validate() error {
	var errs []error
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must be non-negative, got %d", c.MaxDepth))
	}
	if c.StepQuota < 0 {
		errs = append(errs, fmt.Errorf("step_quota must be non-negative, got %d", c.StepQuota))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Apply copies the file settings onto cfg, leaving zero values alone.
func (c *FileConfig) Apply(cfg *Config) {
	if c.MaxDepth > 0 {
		cfg.MaxDepth = c.MaxDepth
	}
	if c.StepQuota > 0 {
		cfg.StepQuota = c.StepQuota
	}
}

// ParseLogLevel maps debug, info, warn and error to slog levels. An empty
// string means warn.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log_level %q", s)
	}
}
