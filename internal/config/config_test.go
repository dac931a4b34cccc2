package config_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/neekrasov/semaphore/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		expected    config.Config
		expectError bool
	}{
		{
			name: "Valid YAML config",
			content: `
semaphore:
  permits: 8
workers:
  count: 32
  iterations: 50
  permits_per_task: 2
  acquire_timeout: 250ms
payload:
  size_bytes: 4096
  compression: "gzip"
logging:
  level: "debug"
  output: "/log"
`,
			expected: config.Config{
				Semaphore: &config.SemaphoreConfig{Permits: 8},
				Workers: &config.WorkersConfig{
					Count:          32,
					Iterations:     50,
					PermitsPerTask: 2,
					AcquireTimeout: 250 * time.Millisecond,
				},
				Payload: &config.PayloadConfig{
					SizeBytes:   4096,
					Compression: "gzip",
				},
				Logging: &config.LoggingConfig{
					Level:  "debug",
					Output: "/log",
				},
			},
		},
		{
			name: "Valid JSON config",
			content: `{
  "semaphore": {"permits": 2},
  "workers": {"count": 4, "iterations": 10, "permits_per_task": 1},
  "payload": {"size_bytes": 1024, "compression": "flate"},
  "logging": {"level": "info", "output": ""}
}`,
			expected: config.Config{
				Semaphore: &config.SemaphoreConfig{Permits: 2},
				Workers: &config.WorkersConfig{
					Count:          4,
					Iterations:     10,
					PermitsPerTask: 1,
				},
				Payload: &config.PayloadConfig{
					SizeBytes:   1024,
					Compression: "flate",
				},
				Logging: &config.LoggingConfig{Level: "info"},
			},
		},
		{
			name: "Invalid YAML config (invalid duration)",
			content: `
workers:
  acquire_timeout: "not-a-duration"
`,
			expectError: true,
		},
		{
			name:        "Garbage input",
			content:     `{{{`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.ParseConfig(io.NopCloser(strings.NewReader(tt.content)))
			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestGetConfig_DefaultsWhenMissing(t *testing.T) {
	t.Parallel()

	cfg, err := config.GetConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	require.NotNil(t, cfg.Semaphore)
	assert.Equal(t, uint64(4), cfg.Semaphore.Permits)
	require.NotNil(t, cfg.Workers)
	assert.Equal(t, 16, cfg.Workers.Count)
	require.NotNil(t, cfg.Payload)
	assert.Equal(t, "zstd", cfg.Payload.Compression)
}

func TestGetConfig_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bench.yml")
	content := "semaphore:\n  permits: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.GetConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Semaphore)
	assert.Equal(t, uint64(1), cfg.Semaphore.Permits)
}
