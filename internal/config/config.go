package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration
type Config struct {
	// DBPath is the sqlite database location. Empty means the default
	// under ~/.carta.
	DBPath string `json:"db_path"`

	// CatalogPath points to the JSON catalog to seed from.
	CatalogPath string `json:"catalog_path"`

	// PageSize is the number of entries fetched per page.
	PageSize int `json:"page_size"`

	// LookaheadMargin is how many rows before the end of the loaded list
	// the next page fetch is triggered.
	LookaheadMargin int `json:"lookahead_margin"`

	// SearchCommitDelayMs is the quiet period before typed search text
	// is applied to the list.
	SearchCommitDelayMs int `json:"search_commit_delay_ms"`

	// UI Preferences
	UI UIConfig `json:"ui"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	DensityMode string `json:"density_mode"` // "comfortable" or "compact"
	ItemLimit   int    `json:"item_limit"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		PageSize:            20,
		LookaheadMargin:     5,
		SearchCommitDelayMs: 250,
		UI: UIConfig{
			DensityMode: "comfortable",
			ItemLimit:   500,
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".carta", "config.json")
}

// DefaultDBPath returns the sqlite database location used when the config
// doesn't name one.
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".carta", "carta.db")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}

	cfg.fillDefaults()
	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// fillDefaults replaces zero or negative tunables with the defaults so a
// hand-edited config can omit fields.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.PageSize <= 0 {
		c.PageSize = def.PageSize
	}
	if c.LookaheadMargin <= 0 {
		c.LookaheadMargin = def.LookaheadMargin
	}
	if c.SearchCommitDelayMs <= 0 {
		c.SearchCommitDelayMs = def.SearchCommitDelayMs
	}
	if c.UI.DensityMode == "" {
		c.UI.DensityMode = def.UI.DensityMode
	}
	if c.UI.ItemLimit <= 0 {
		c.UI.ItemLimit = def.UI.ItemLimit
	}
}
