package sheets

import (
	"errors"
	"fmt"
	"strings"

	"clipbatch/internal/core/domain"
)

// ErrMissingURLColumn is returned when the input table has no url column.
var ErrMissingURLColumn = errors.New("input table must contain a column named 'url'")

// Recognized input columns. The first name column present wins.
var (
	nameColumns   = []string{"id", "name", "nome_do_arquivo"}
	urlColumn     = "url"
	startColumn   = "start_time"
	endColumn     = "end_time"
	byteOrderMark = "\ufeff"
)

// JobReader reads batch input tables. It implements ports.JobSource.
type JobReader struct{}

// NewJobReader creates a JobReader.
func NewJobReader() *JobReader {
	return &JobReader{}
}

// ReadJobs parses path (.xlsx or .csv) into job specs numbered from 1 in
// input order. Every data row is kept, including rows with no url, so the
// batch reports them as skipped at their own position. Only blank rows
// after the last filled one are dropped.
func (r *JobReader) ReadJobs(path string) ([]domain.JobSpec, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingURLColumn)
	}

	columns := indexHeader(rows[0])
	urlIdx, ok := columns[urlColumn]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingURLColumn)
	}
	nameIdx := -1
	for _, c := range nameColumns {
		if i, ok := columns[c]; ok {
			nameIdx = i
			break
		}
	}
	startIdx, hasStart := columns[startColumn]
	endIdx, hasEnd := columns[endColumn]

	data := rows[1:]
	for len(data) > 0 && isBlank(data[len(data)-1]) {
		data = data[:len(data)-1]
	}

	specs := make([]domain.JobSpec, 0, len(data))
	for i, row := range data {
		spec := domain.JobSpec{
			Number: i + 1,
			URL:    cell(row, urlIdx),
			Name:   cell(row, nameIdx),
		}
		if hasStart {
			spec.Start = cell(row, startIdx)
		}
		if hasEnd {
			spec.End = cell(row, endIdx)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func indexHeader(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, byteOrderMark)))
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	return columns
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
