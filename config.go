package apropos

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mandb/apropos/rank"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the apropos engine.
type Config struct {
	// DBPath is the full path to the SQLite index file. If empty,
	// defaults to ./apropos.db, matching the original DBPATH.
	DBPath string `yaml:"db_path"`

	// ManRoots overrides the directories walked during reindexing. If
	// empty, the roots are discovered by invoking `man -p`.
	ManRoots []string `yaml:"man_roots"`

	// Weights sets the per-section ranking weights. DefaultConfig and
	// LoadConfig start from rank.DefaultWeights, so a YAML file that
	// names only some columns keeps the defaults for the rest. A column
	// set to zero is used as zero; it does not fall back to its default.
	Weights rank.Weights `yaml:"weights"`

	// PagerCommand is the external pager invoked for `-p`. Defaults to
	// "more", matching the original popen("more", "w").
	PagerCommand string `yaml:"pager_command"`

	// ResultLimit caps unpaged result counts. Defaults to 10.
	ResultLimit int `yaml:"result_limit"`
}

// DefaultConfig returns a Config with the original tool's defaults.
func DefaultConfig() Config {
	return Config{
		DBPath:       "apropos.db",
		Weights:      rank.DefaultWeights(),
		PagerCommand: "more",
		ResultLimit:  10,
	}
}

// LoadConfig reads a YAML config file and layers it over DefaultConfig.
// A missing file is not an error; the defaults are returned unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// resolveDBPath returns the configured index path as given (a relative
// path stays relative to the working directory), defaulting to
// apropos.db in the current working directory like the original DBPATH
// macro.
func (c *Config) resolveDBPath() string {
	if c.DBPath == "" {
		return "apropos.db"
	}
	if filepath.IsAbs(c.DBPath) {
		return c.DBPath
	}
	return c.DBPath
}
