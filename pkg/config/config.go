// Package config loads client settings from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"prom-cli/pkg/promapi"
)

// Config holds connection and UI settings. Flags and environment
// variables take precedence over file values.
type Config struct {
	Server      string `yaml:"server"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	Insecure    bool   `yaml:"insecure"`
	HistoryFile string `yaml:"history_file"`
	Repl        string `yaml:"repl"`
}

// New returns a Config with default values.
func New() *Config {
	return &Config{
		Server: promapi.DefaultServer,
		Repl:   "readline",
	}
}

// LoadFromFile merges settings from a YAML file into c. A missing file
// is not an error so a default path can always be attempted.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}
