package sheets

import (
	"math"
	"strings"

	"clipbatch/internal/core/domain"
)

var metadataHeaders = map[string][]string{
	"pt": {
		"Nome do Arquivo Salvo",
		"URL do Vídeo",
		"Título no YouTube",
		"Duração (segundos)",
		"Duração (HH:MM:SS)",
		"Data de Publicação",
		"Tags",
		"Categorias",
	},
	"en": {
		"Saved Filename",
		"Video URL",
		"YouTube Title",
		"Duration (seconds)",
		"Duration (HH:MM:SS)",
		"Upload Date",
		"Tags",
		"Categories",
	},
}

// MetadataHeaders returns the column titles for locale, Portuguese when the
// locale is unknown.
func MetadataHeaders(locale string) []string {
	if h, ok := metadataHeaders[locale]; ok {
		return h
	}
	return metadataHeaders["pt"]
}

// MetadataLog appends one row per saved video to a table file.
// It implements ports.MetadataLog.
type MetadataLog struct {
	path   string
	header []string
}

// NewMetadataLog creates a MetadataLog writing to path with column titles in locale.
func NewMetadataLog(path, locale string) *MetadataLog {
	return &MetadataLog{path: path, header: MetadataHeaders(locale)}
}

// Path returns the log file location.
func (l *MetadataLog) Path() string {
	return l.path
}

// Append adds record as the last row. The file and its header are created on
// first use. Failures are *domain.LogWriteFailedError.
func (l *MetadataLog) Append(record domain.MetadataRecord) error {
	if err := appendRow(l.path, l.header, metadataRow(record)); err != nil {
		return domain.NewLogWriteFailedError(l.path, err)
	}
	return nil
}

func metadataRow(r domain.MetadataRecord) []any {
	return []any{
		r.Filename,
		r.URL,
		r.Title,
		math.Round(r.DurationSeconds*100) / 100,
		r.DurationString,
		orNA(r.UploadDate),
		joinOrNA(r.Tags),
		joinOrNA(r.Categories),
	}
}

func orNA(s string) string {
	if s == "" || s == domain.UnknownDate {
		return "N/A"
	}
	return s
}

func joinOrNA(values []string) string {
	if len(values) == 0 {
		return "N/A"
	}
	return strings.Join(values, ", ")
}
