package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"os"
)

// DefaultPath is where the CLI looks for its configuration.
const DefaultPath = "bmpheaders.json"

// Output formats understood by the inspect command.
const (
	OutputTable = "table"
	OutputYAML  = "yaml"
)

type Config struct {
	LayoutFile string `json:"layoutFile,omitempty"` // Empty means the built-in BMP layout
	Output     string `json:"output"`               // table or yaml
	Derived    bool   `json:"derived"`              // Evaluate derived values
	Warnings   bool   `json:"warnings"`             // Report header consistency warnings
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Output:   OutputTable,
		Derived:  true,
		Warnings: true,
	}
}

// Validate rejects settings the CLI cannot act on.
func (c Config) Validate() error {
	switch c.Output {
	case OutputTable, OutputYAML:
		return nil
	}
	return fmt.Errorf("invalid output format %q: must be %q or %q", c.Output, OutputTable, OutputYAML)
}

// LoadConfig reads and parses the configuration file. A missing file yields
// the defaults rather than an error.
func LoadConfig(configPath string) (Config, error) {
	cfg := Default()
	configData, err := ioutil.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Configuration file '%s' not found. Using defaults.", configPath)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read configuration file '%s': %w", configPath, err)
	}

	if err := json.Unmarshal(configData, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse configuration file '%s': %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration file '%s': %w", configPath, err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration as indented JSON.
func SaveConfig(configPath string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	err = ioutil.WriteFile(configPath, append(data, '\n'), 0644)
	if err != nil {
		return fmt.Errorf("failed to write configuration file '%s': %w", configPath, err)
	}
	return nil
}
