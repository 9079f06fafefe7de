package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

const DefaultBatchSize = 100

type Config struct {
	// Exclude holds glob patterns; a trailing "/" matches directory names.
	Exclude []string `yaml:"exclude"`
	// Accept restricts manually selected files; empty accepts everything.
	Accept        []string `yaml:"accept"`
	MaxFileSize   int64    `yaml:"max_file_size"`
	BatchSize     int      `yaml:"batch_size"`
	Workers       int      `yaml:"workers"`
	OutputFile    string   `yaml:"output_file"`
	IncludeHidden bool     `yaml:"include_hidden"`
}

func DefaultConfig() *Config {
	return &Config{
		Exclude: []string{
			".git/",
			".svn/",
			"node_modules/",
			"__pycache__/",
			"*.tmp",
			"*.swp",
			".DS_Store",
			"Thumbs.db",
		},
		Accept:    []string{},
		BatchSize: DefaultBatchSize,
		Workers:   runtime.NumCPU() * 2,
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Initialize slices if nil (for empty configs)
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}
	if cfg.Accept == nil {
		cfg.Accept = []string{}
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU() * 2
	}
	if cfg.MaxFileSize < 0 {
		return nil, fmt.Errorf("max_file_size must not be negative, got %d", cfg.MaxFileSize)
	}

	return &cfg, nil
}
