package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type (
	// Config - settings for the semabench load generator.
	Config struct {
		Semaphore *SemaphoreConfig `yaml:"semaphore" json:"semaphore"`
		Workers   *WorkersConfig   `yaml:"workers" json:"workers"`
		Payload   *PayloadConfig   `yaml:"payload" json:"payload"`
		Logging   *LoggingConfig   `yaml:"logging" json:"logging"`
	}

	SemaphoreConfig struct {
		Permits uint64 `yaml:"permits" json:"permits"`
	}

	WorkersConfig struct {
		Count          int           `yaml:"count" json:"count"`
		Iterations     int           `yaml:"iterations" json:"iterations"`
		PermitsPerTask uint64        `yaml:"permits_per_task" json:"permits_per_task"`
		AcquireTimeout time.Duration `yaml:"acquire_timeout" json:"acquire_timeout"`
	}

	PayloadConfig struct {
		SizeBytes   int    `yaml:"size_bytes" json:"size_bytes"`
		Compression string `yaml:"compression" json:"compression"`
	}

	LoggingConfig struct {
		Level  string `yaml:"level" json:"level"`
		Output string `yaml:"output" json:"output"`
	}
)

// GetConfig - reads and parses the config at path, falling back to the
// embedded defaults when the file does not exist.
func GetConfig(path string) (Config, error) {
	configContent, err := GetConfigReader(path)
	if err != nil {
		return Config{}, err
	}

	return ParseConfig(configContent)
}

// ParseConfig - decodes the config from yaml or json input.
func ParseConfig(input io.ReadCloser) (Config, error) {
	defer input.Close()

	raw, err := io.ReadAll(input)
	if err != nil {
		return Config{}, fmt.Errorf("read config failed: %w", err)
	}

	var (
		cfg      Config
		parseErr strings.Builder
	)

	for _, parser := range []func(io.Reader, *Config) error{yamlParser, jsonParser} {
		err := parser(bytes.NewReader(raw), &cfg)
		if err == nil {
			return cfg, nil
		}

		_, _ = parseErr.WriteString(fmt.Sprintf("Error parsing config: %s\n", err.Error()))
	}

	return cfg, errors.New(parseErr.String())
}

func yamlParser(input io.Reader, config *Config) error {
	decoder := yaml.NewDecoder(input)
	if err := decoder.Decode(config); err != nil {
		return fmt.Errorf("cant decode yaml config: %w", err)
	}

	return nil
}

func jsonParser(input io.Reader, config *Config) error {
	decoder := json.NewDecoder(input)
	if err := decoder.Decode(config); err != nil {
		return fmt.Errorf("cant decode json config: %w", err)
	}

	return nil
}
