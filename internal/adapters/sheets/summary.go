package sheets

import (
	"clipbatch/internal/core/domain"
)

var summaryHeader = []string{"video_number", "url", "status", "detail"}

// SummaryWriter writes the batch execution log. It implements ports.SummaryWriter.
type SummaryWriter struct{}

// NewSummaryWriter creates a SummaryWriter.
func NewSummaryWriter() *SummaryWriter {
	return &SummaryWriter{}
}

// WriteSummary writes records to path in one go, replacing any previous file.
func (w *SummaryWriter) WriteSummary(path string, records []domain.BatchLogRecord) error {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{r.VideoNumber, r.URL, string(r.Status), r.Detail}
	}
	if err := writeTable(path, summaryHeader, rows); err != nil {
		return domain.NewLogWriteFailedError(path, err)
	}
	return nil
}
