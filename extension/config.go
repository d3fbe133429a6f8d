package extension

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the invoicer extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.invoicer" or "invoicer" keys).
type Config struct {
	// IDGenerator selects how invoice IDs are minted: "typeid" (default),
	// "uuid", "sequence" or "snowflake".
	IDGenerator string `json:"id_generator" mapstructure:"id_generator" yaml:"id_generator"`

	// SnowflakeNode is the node number used by the snowflake generator (0-1023).
	SnowflakeNode int64 `json:"snowflake_node" mapstructure:"snowflake_node" yaml:"snowflake_node"`

	// LogLevel is the minimum slog level the CLI logs at (default: "info").
	LogLevel string `json:"log_level" mapstructure:"log_level" yaml:"log_level"`

	// PDFTitle is the heading written on exported ledgers.
	PDFTitle string `json:"pdf_title" mapstructure:"pdf_title" yaml:"pdf_title"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		IDGenerator: "typeid",
		LogLevel:    "info",
		PDFTitle:    "Invoices",
	}
}

// fileDocument accepts both the namespaced and the bare layout.
type fileDocument struct {
	Extensions struct {
		Invoicer *Config `yaml:"invoicer"`
	} `yaml:"extensions"`
	Invoicer *Config `yaml:"invoicer"`
}

// LoadFile reads a YAML config file outside of a Forge app. The
// "extensions.invoicer" section wins over a top-level "invoicer" one.
// Missing fields are filled from DefaultConfig.
func LoadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	switch {
	case doc.Extensions.Invoicer != nil:
		return mergeWithDefaults(*doc.Extensions.Invoicer), nil
	case doc.Invoicer != nil:
		return mergeWithDefaults(*doc.Invoicer), nil
	default:
		return DefaultConfig(), nil
	}
}

// mergeWithDefaults fills zero-valued fields with defaults.
func mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.IDGenerator == "" {
		cfg.IDGenerator = defaults.IDGenerator
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.PDFTitle == "" {
		cfg.PDFTitle = defaults.PDFTitle
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence; programmatic values fill gaps.
func mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	if yamlConfig.IDGenerator == "" {
		yamlConfig.IDGenerator = programmaticConfig.IDGenerator
	}
	if yamlConfig.SnowflakeNode == 0 {
		yamlConfig.SnowflakeNode = programmaticConfig.SnowflakeNode
	}
	if yamlConfig.LogLevel == "" {
		yamlConfig.LogLevel = programmaticConfig.LogLevel
	}
	if yamlConfig.PDFTitle == "" {
		yamlConfig.PDFTitle = programmaticConfig.PDFTitle
	}

	// Fill remaining zeros with defaults.
	return mergeWithDefaults(yamlConfig)
}
