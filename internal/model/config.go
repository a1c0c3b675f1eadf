package model

import "time"

// Config holds runtime configuration for argcoder
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Cache  CacheConfig  `yaml:"cache"`
	Output OutputConfig `yaml:"output"`
}

// DataConfig locates the input datasets
type DataConfig struct {
	// Dir is the directory holding item CSVs and the category catalog
	Dir string `yaml:"dir"`

	// Catalog is the category definition file (YAML), relative to Dir
	// unless absolute
	Catalog string `yaml:"catalog"`

	// ItemPattern names the default per-variable item file; %s is the
	// lowercased variable name
	ItemPattern string `yaml:"item_pattern"`
}

// CacheConfig controls the parsed-dataset cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`        // Disk cache directory
	MemoryTTL time.Duration `yaml:"memory_ttl"` // TTL for the in-process layer
	DiskTTL   time.Duration `yaml:"disk_ttl"`   // TTL for the on-disk layer
}

// OutputConfig controls where exports land and how chatty the CLI is
type OutputConfig struct {
	Dir     string `yaml:"dir"` // Directory for exported result CSVs ("" = current dir)
	Verbose bool   `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Data: DataConfig{
			Dir:         "validation_samples/production",
			Catalog:     "categories.yaml",
			ItemPattern: "coding_%s.csv",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Output: OutputConfig{
			Dir:     "",
			Verbose: false,
		},
	}
}
