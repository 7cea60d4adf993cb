package config

import (
	"fmt"
	"strings"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	if c.OutputDir == "" {
		errors = append(errors, "output directory is required")
	}
	if c.MetadataLog == "" {
		errors = append(errors, "metadata log name is required")
	}
	if c.SummaryLog == "" {
		errors = append(errors, "summary log name is required")
	}

	if !contains(LocaleValues(), c.HeaderLocale) {
		errors = append(errors, fmt.Sprintf("invalid header locale '%s', must be one of: %s",
			c.HeaderLocale, strings.Join(LocaleValues(), ", ")))
	}
	if !contains(MetadataSourceValues(), c.MetadataSource) {
		errors = append(errors, fmt.Sprintf("invalid metadata source '%s', must be one of: %s",
			c.MetadataSource, strings.Join(MetadataSourceValues(), ", ")))
	}

	if err := c.Fetch.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("fetch config: %v", err))
	}
	if err := c.Trim.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("trim config: %v", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

// Validate checks if fetch configuration is valid
func (f *FetchConfig) Validate() error {
	if f.Binary == "" {
		return fmt.Errorf("yt-dlp binary is required")
	}
	if f.MaxHeight <= 0 {
		return fmt.Errorf("max height must be positive, got %d", f.MaxHeight)
	}
	if f.MergeFormat == "" {
		return fmt.Errorf("merge format is required")
	}
	if f.InfoTimeout < 0 || f.SocketTimeout < 0 {
		return fmt.Errorf("timeouts cannot be negative")
	}
	return nil
}

// Validate checks if trim configuration is valid
func (t *TrimConfig) Validate() error {
	if t.VideoCodec == "" {
		return fmt.Errorf("video codec is required")
	}
	if t.AudioCodec == "" {
		return fmt.Errorf("audio codec is required")
	}
	return nil
}
