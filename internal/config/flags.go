package config

import (
	"flag"
	"time"
)

// FlagOverrides holds the values of the flags shared by every command.
// Unset flags keep their zero value and do not override anything.
type FlagOverrides struct {
	ConfigPath     *string
	MaxHeight      *int
	MetadataSource *string
	HeaderLocale   *string
	YtDlpPath      *string
	InfoTimeout    *time.Duration
	LogLevel       *string
	LogFile        *string
	Verbose        *bool
}

// RegisterFlags defines the shared flags on fs.
func RegisterFlags(fs *flag.FlagSet) *FlagOverrides {
	return &FlagOverrides{
		ConfigPath:     fs.String("config", "", "Path to config file (default: search standard locations)"),
		MaxHeight:      fs.Int("max-height", -1, "Maximum video height to download (default: from config)"),
		MetadataSource: fs.String("metadata-source", "", "Metadata source: ytdlp, native (default: from config)"),
		HeaderLocale:   fs.String("header-locale", "", "Metadata log column titles: pt, en (default: from config)"),
		YtDlpPath:      fs.String("ytdlp", "", "Path to the yt-dlp executable (default: from config)"),
		InfoTimeout:    fs.Duration("info-timeout", 0, "Timeout for the metadata lookup (default: from config)"),
		LogLevel:       fs.String("log-level", "", "Log level: debug, info, warn, error (default: from config)"),
		LogFile:        fs.String("log", "", "Also append logs to this file"),
		Verbose:        fs.Bool("verbose", false, "Shortcut for -log-level debug"),
	}
}

// MergeFlags overrides config values with explicitly set flags.
func (c *Config) MergeFlags(o *FlagOverrides) {
	if *o.MaxHeight > 0 {
		c.Fetch.MaxHeight = *o.MaxHeight
	}
	if *o.MetadataSource != "" {
		c.MetadataSource = *o.MetadataSource
	}
	if *o.HeaderLocale != "" {
		c.HeaderLocale = *o.HeaderLocale
	}
	if *o.YtDlpPath != "" {
		c.Fetch.Binary = *o.YtDlpPath
	}
	if *o.InfoTimeout > 0 {
		c.Fetch.InfoTimeout = *o.InfoTimeout
	}
	if *o.LogLevel != "" {
		c.LogLevel = *o.LogLevel
	}
	if *o.LogFile != "" {
		c.LogFile = *o.LogFile
	}
	if *o.Verbose {
		c.LogLevel = "debug"
	}
}
