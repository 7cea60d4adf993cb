package config

import (
	"time"
)

// Config holds all clipbatch settings. It is built once by the command and
// passed to every constructor that needs it.
type Config struct {
	OutputDir    string `yaml:"output_dir"`
	MetadataLog  string `yaml:"metadata_log"`  // relative to OutputDir unless absolute
	SummaryLog   string `yaml:"summary_log"`   // relative to OutputDir unless absolute
	HeaderLocale string `yaml:"header_locale"` // "pt" or "en"
	ScratchDir   string `yaml:"scratch_dir"`   // empty = OS temp dir

	MetadataSource string `yaml:"metadata_source"` // "ytdlp" or "native"

	Fetch FetchConfig `yaml:"fetch"`
	Trim  TrimConfig  `yaml:"trim"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// FetchConfig holds media acquisition settings
type FetchConfig struct {
	Binary        string        `yaml:"binary"`         // yt-dlp executable
	MaxHeight     int           `yaml:"max_height"`     // e.g. 720
	MergeFormat   string        `yaml:"merge_format"`   // e.g. "mp4"
	InfoTimeout   time.Duration `yaml:"info_timeout"`   // metadata lookup timeout
	SocketTimeout time.Duration `yaml:"socket_timeout"` // passed to yt-dlp
}

// TrimConfig holds codec tool settings. ffmpeg and ffprobe are always
// discovered on PATH.
type TrimConfig struct {
	VideoCodec string `yaml:"video_codec"`
	AudioCodec string `yaml:"audio_codec"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		OutputDir:      ".",
		MetadataLog:    "metadata_log.xlsx",
		SummaryLog:     "batch_execution_log.xlsx",
		HeaderLocale:   "pt",
		MetadataSource: "ytdlp",

		Fetch: FetchConfig{
			Binary:        "yt-dlp",
			MaxHeight:     720,
			MergeFormat:   "mp4",
			InfoTimeout:   2 * time.Minute,
			SocketTimeout: 30 * time.Second,
		},

		Trim: TrimConfig{
			VideoCodec: "libx264",
			AudioCodec: "aac",
		},

		LogLevel: "info",
	}
}

// LocaleValues returns valid header locales
func LocaleValues() []string {
	return []string{"pt", "en"}
}

// MetadataSourceValues returns valid metadata sources
func MetadataSourceValues() []string {
	return []string{"ytdlp", "native"}
}

func contains(values []string, v string) bool {
	for _, valid := range values {
		if v == valid {
			return true
		}
	}
	return false
}
