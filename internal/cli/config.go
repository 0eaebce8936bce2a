package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tessella/gridlock/pkg/grid"
	"github.com/tessella/gridlock/pkg/store"
)

// =============================================================================
// Config
// =============================================================================

// Config is the TOML configuration loaded from ~/.config/gridlock/config.toml
// (or the --config override). Every field has a working default, so a missing
// config file is not an error.
type Config struct {
	Grid   GridSection   `toml:"grid"`
	Store  StoreSection  `toml:"store"`
	Render RenderSection `toml:"render"`
	Serve  ServeSection  `toml:"serve"`
}

// GridSection configures the default grid for new boards.
type GridSection struct {
	Columns int  `toml:"columns"`
	Gap     int  `toml:"gap"`
	Float   bool `toml:"float"`
}

// StoreSection selects the board store backend and its connection strings.
type StoreSection struct {
	Backend string `toml:"backend"`

	// Per-backend DSNs; only the selected backend's entry is consulted.
	Dir    string `toml:"dir"`    // file: boards directory
	SQLite string `toml:"sqlite"` // sqlite: database file path
	Redis  string `toml:"redis"`  // redis: host:port
	Mongo  string `toml:"mongo"`  // mongo: connection URI
}

// RenderSection configures PNG rendering defaults.
type RenderSection struct {
	CellSize int  `toml:"cell_size"`
	MinRows  int  `toml:"min_rows"`
	Labels   bool `toml:"labels"`
}

// ServeSection configures the HTTP server.
type ServeSection struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Grid:   GridSection{Columns: 12, Gap: 8},
		Store:  StoreSection{Backend: store.BackendFile},
		Render: RenderSection{CellSize: 48, MinRows: 4, Labels: true},
		Serve:  ServeSection{Addr: ":8080"},
	}
}

// LoadConfig reads the config file at path, or the default location when
// path is empty. A missing file at the default location yields defaults;
// a missing file passed explicitly via --config is an error.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// GridConfig converts the config's grid section into engine configuration.
func (c *Config) GridConfig() grid.GridConfig {
	return grid.GridConfig{
		Columns: c.Grid.Columns,
		Gap:     c.Grid.Gap,
		Float:   c.Grid.Float,
	}
}

// StoreDSN returns the connection string for the given backend, falling back
// to sensible per-backend defaults under the XDG data directory.
func (c *Config) StoreDSN(backend string) (string, error) {
	switch backend {
	case store.BackendMemory:
		return "", nil
	case store.BackendFile:
		if c.Store.Dir != "" {
			return c.Store.Dir, nil
		}
		dir, err := dataDir()
		if err != nil {
			return "", fmt.Errorf("resolve boards directory: %w", err)
		}
		return filepath.Join(dir, "boards"), nil
	case store.BackendSQLite:
		if c.Store.SQLite != "" {
			return c.Store.SQLite, nil
		}
		dir, err := dataDir()
		if err != nil {
			return "", fmt.Errorf("resolve database path: %w", err)
		}
		return filepath.Join(dir, "gridlock.db"), nil
	case store.BackendRedis:
		if c.Store.Redis != "" {
			return c.Store.Redis, nil
		}
		return "localhost:6379", nil
	case store.BackendMongo:
		if c.Store.Mongo != "" {
			return c.Store.Mongo, nil
		}
		return "mongodb://localhost:27017", nil
	default:
		return "", fmt.Errorf("unknown store backend %q", backend)
	}
}
