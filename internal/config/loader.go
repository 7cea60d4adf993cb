package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load builds the configuration from defaults, the YAML file at path (or the
// first file found in the standard locations when path is empty) and the
// environment. Flags are merged later by the command.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = FindConfigFile()
	}
	if path != "" {
		fileCfg, err := LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		cfg = fileCfg
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile loads configuration from a YAML file on top of the defaults
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in standard locations.
// Returns empty string if none is found.
func FindConfigFile() string {
	home, _ := os.UserHomeDir()
	locations := []string{
		"./clipbatch.yaml",
		"./clipbatch.yml",
	}
	if home != "" {
		locations = append(locations,
			filepath.Join(home, ".clipbatch", "config.yaml"),
			filepath.Join(home, ".clipbatch", "config.yml"),
		)
	}

	for _, path := range locations {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ApplyEnv overrides values from environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"CLIPBATCH_OUTPUT_DIR":      &c.OutputDir,
		"CLIPBATCH_METADATA_LOG":    &c.MetadataLog,
		"CLIPBATCH_SUMMARY_LOG":     &c.SummaryLog,
		"CLIPBATCH_HEADER_LOCALE":   &c.HeaderLocale,
		"CLIPBATCH_SCRATCH_DIR":     &c.ScratchDir,
		"CLIPBATCH_METADATA_SOURCE": &c.MetadataSource,
		"CLIPBATCH_LOG_LEVEL":       &c.LogLevel,
		"CLIPBATCH_LOG_FILE":        &c.LogFile,
		"YTDLP_PATH":                &c.Fetch.Binary,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("CLIPBATCH_MAX_HEIGHT"); ok && v != "" {
		height, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CLIPBATCH_MAX_HEIGHT %q: %w", v, err)
		}
		c.Fetch.MaxHeight = height
	}
	return nil
}

// ResolvePath returns name inside the output directory unless it is absolute.
func (c *Config) ResolvePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.OutputDir, name)
}
