package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "ingdiba.yaml"

// Config represents the top-level ingdiba.yaml configuration.
type Config struct {
	ImportDir   string    `yaml:"import_dir"`
	Database    string    `yaml:"database"`
	CreditCards []string  `yaml:"credit_cards,omitempty"`
	Log         LogConfig `yaml:"log"`
}

// LogConfig controls logger output.
type LogConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"` // human-readable output instead of JSON
}

// Load reads an ingdiba.yaml file from disk. Relative paths in the file are
// resolved against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		ImportDir: "import",
		Database:  "ingdiba.db",
		Log: LogConfig{
			Level:   "info",
			Console: true,
		},
	}
}

func (c *Config) resolve(base string) {
	if c.ImportDir != "" && !filepath.IsAbs(c.ImportDir) {
		c.ImportDir = filepath.Join(base, c.ImportDir)
	}
	if c.Database != "" && !filepath.IsAbs(c.Database) {
		c.Database = filepath.Join(base, c.Database)
	}
}
