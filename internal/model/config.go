// Package model holds the shared configuration and record types.
package model

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config is the runtime configuration assembled from flags, RADFLAG_*
// environment variables, the config file, and defaults.
type Config struct {
	Vocabulary  VocabularyConfig  `yaml:"vocabulary"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
	Output      OutputConfig      `yaml:"output"`
}

// VocabularyConfig selects the vocabulary data to load.
type VocabularyConfig struct {
	// Path of a YAML vocabulary file; empty selects the built-in
	// vocabulary.
	Path string `yaml:"path"`
}

// ConcurrencyConfig controls row-parallel fan-out.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// CacheConfig controls compose memoization and processed-output reuse.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// OutputConfig controls CLI output behavior.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	cacheDir := ".radflag-cache"
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, "radflag")
	}
	return &Config{
		Concurrency: ConcurrencyConfig{Workers: runtime.NumCPU()},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       cacheDir,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
	}
}
