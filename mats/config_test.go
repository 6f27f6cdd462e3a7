package mats

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader("max_depth: 50\nstep_quota: 1000\nlog_level: debug\nquiet: true\n"), "inline")
	require.NoError(t, err)
	assert.Equal(t, FileConfig{MaxDepth: 50, StepQuota: 1000, LogLevel: "debug", Quiet: true}, *cfg)

	engineCfg := Config{MaxDepth: 7}
	cfg.Apply(&engineCfg)
	assert.Equal(t, 50, engineCfg.MaxDepth)
	assert.Equal(t, 1000, engineCfg.StepQuota)
}

func TestDecodeConfigRejectsBadInput(t *testing.T) {
	_, err := DecodeConfig(strings.NewReader("max_depht: 5\n"), "typo.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typo.yaml")

	_, err = DecodeConfig(strings.NewReader("step_quota: -1\n"), "neg.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step_quota must be non-negative")

	_, err = DecodeConfig(strings.NewReader("log_level: loud\n"), "level.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown log_level "loud"`)
}

func TestDecodeEmptyConfig(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader(""), "empty.yaml")
	require.NoError(t, err)
	assert.Equal(t, FileConfig{}, *cfg)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mats.yaml")
	require.NoError(t, os.WriteFile(path, []byte("step_quota: 42\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.StepQuota)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	level, err = ParseLogLevel(" INFO ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}
