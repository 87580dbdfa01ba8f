package config

import (
	"os"

	"github.com/henderiw/intervaltree/pkg/ingest"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the ivcheck command.
type Config struct {
	Input     string      `yaml:"input"`      // record file: ranges, blank line, queries
	Mode      ingest.Mode `yaml:"mode"`       // "build" or "insert"
	PrintTree bool        `yaml:"print_tree"` // dump the tree after loading
	Verbosity int         `yaml:"verbosity"`  // klog verbosity
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	return &Config{
		Mode: ingest.ModeBuild,
	}
}

// Load reads a YAML config file. Fields missing from the file keep their
// default value.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read config file: %s", path)
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "could not parse config file: %s", path)
	}
	return cfg, nil
}

// Validate checks that the config can be run.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("no input file given")
	}
	switch c.Mode {
	case ingest.ModeBuild, ingest.ModeInsert:
	default:
		return errors.Errorf("invalid mode %q, must be %q or %q", c.Mode, ingest.ModeBuild, ingest.ModeInsert)
	}
	if c.Verbosity < 0 {
		return errors.Errorf("verbosity must not be negative, got %d", c.Verbosity)
	}
	return nil
}
