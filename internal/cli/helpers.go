package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ppiankov/argcoder/internal/cache"
	"github.com/ppiankov/argcoder/internal/catalog"
	"github.com/ppiankov/argcoder/internal/model"
	"github.com/ppiankov/argcoder/internal/store"
)

// loadConfig layers config-file and env values over the defaults.
func loadConfig() model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("data.dir"); v != "" {
		cfg.Data.Dir = v
	}
	if v := viper.GetString("data.catalog"); v != "" {
		cfg.Data.Catalog = v
	}
	if v := viper.GetString("data.item_pattern"); v != "" {
		cfg.Data.ItemPattern = v
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetDuration("cache.memory_ttl"); v > 0 {
		cfg.Cache.MemoryTTL = v
	}
	if v := viper.GetDuration("cache.disk_ttl"); v > 0 {
		cfg.Cache.DiskTTL = v
	}
	if v := viper.GetString("output.dir"); v != "" {
		cfg.Output.Dir = v
	}
	cfg.Output.Verbose = cfg.Output.Verbose || viper.GetBool("verbose")

	return cfg
}

// newCache builds the dataset cache described by cfg.
func newCache(cfg model.Config) cache.Cache {
	if !cfg.Cache.Enabled {
		return cache.Nop{}
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			// No usable cache directory; stay in memory only
			return cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*cfg.Cache.MemoryTTL)
		}
		dir = filepath.Join(base, "argcoder")
	}

	return cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
}

// loadItems loads the item store from path, falling back to the
// configured per-variable default file.
func loadItems(cfg model.Config, path string, variable model.Variable) ([]model.CodingItem, error) {
	if path == "" {
		if variable == "" {
			return nil, fmt.Errorf("either --items or --variable is required to locate the item file")
		}
		name := fmt.Sprintf(cfg.Data.ItemPattern, strings.ToLower(string(variable)))
		path = filepath.Join(cfg.Data.Dir, name)
	}

	loader := store.NewLoader(newCache(cfg))
	items, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d items from %s\n", len(items), path)
	}
	return items, nil
}

// loadCatalog loads the category catalog from path or the configured
// location, falling back to the built-in catalog when no file exists.
func loadCatalog(cfg model.Config, path string) (*catalog.Catalog, error) {
	explicit := path != ""
	if path == "" {
		path = cfg.Data.Catalog
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.Data.Dir, path)
		}
	}

	if _, err := os.Stat(path); err != nil {
		if explicit {
			return nil, fmt.Errorf("catalog file %s: %w", path, err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "No catalog file at %s, using built-in categories\n", path)
		}
		return catalog.Default(), nil
	}

	return catalog.Load(path)
}

// parseVariableFlag validates a --variable value, allowing empty.
func parseVariableFlag(s string) (model.Variable, error) {
	if s == "" {
		return "", nil
	}
	v, ok := model.ParseVariable(s)
	if !ok {
		return "", fmt.Errorf("unsupported variable %q (expected one of %v)", s, model.Variables)
	}
	return v, nil
}
