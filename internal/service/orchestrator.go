package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"clipbatch/internal/core/domain"
	"clipbatch/internal/core/ports"
	"clipbatch/internal/logging"
)

// SkippedDetail is the detail of a row without a url.
const SkippedDetail = "URL was empty"

// Orchestrator runs a batch of jobs in input order and records every outcome.
type Orchestrator struct {
	runner      *JobRunner
	storage     ports.Storage
	summary     ports.SummaryWriter
	summaryPath string
	logger      logging.Logger
}

// NewOrchestrator creates a new Orchestrator. The summary is written to
// summaryPath once the batch ends.
func NewOrchestrator(
	runner *JobRunner,
	storage ports.Storage,
	summary ports.SummaryWriter,
	summaryPath string,
	logger logging.Logger,
) *Orchestrator {
	if logger == nil {
		logger = logging.NopLogger
	}
	return &Orchestrator{
		runner:      runner,
		storage:     storage,
		summary:     summary,
		summaryPath: summaryPath,
		logger:      logger,
	}
}

// RunBatch processes specs sequentially. A failing row never stops the batch;
// the only errors returned are those raised before the first job, such as a
// missing trim tool.
func (o *Orchestrator) RunBatch(ctx context.Context, specs []domain.JobSpec) ([]domain.BatchLogRecord, error) {
	logger := logging.With(o.logger, "run_id", uuid.New().String())
	logger.Info("Starting batch", "videos", len(specs))

	if err := o.storage.EnsureOutputDir(); err != nil {
		return nil, err
	}
	if err := o.runner.Preflight(ctx, specs); err != nil {
		return nil, err
	}

	records := make([]domain.BatchLogRecord, 0, len(specs))
	for i, spec := range specs {
		spec.Number = i + 1
		spec.URL = strings.TrimSpace(spec.URL)
		logger.Info("Processing video", "video", spec.Number, "of", len(specs), "url", spec.URL)

		if spec.URL == "" {
			logger.Warn("Skipping row because the url is empty", "video", spec.Number)
			records = append(records, domain.BatchLogRecord{
				VideoNumber: spec.Number,
				Status:      domain.StatusSkipped,
				Detail:      SkippedDetail,
			})
			continue
		}

		if err := ctx.Err(); err != nil {
			records = append(records, domain.BatchLogRecord{
				VideoNumber: spec.Number,
				URL:         spec.URL,
				Status:      domain.StatusFailure,
				Detail:      "batch cancelled before this video started",
			})
			continue
		}

		result := o.runner.Run(ctx, spec)
		records = append(records, domain.BatchLogRecord{
			VideoNumber: spec.Number,
			URL:         spec.URL,
			Status:      result.Status,
			Detail:      domain.LastLine(result.Detail),
		})
	}

	logger.Info("Saving batch execution log", "file", o.summaryPath)
	if err := o.summary.WriteSummary(o.summaryPath, records); err != nil {
		logger.Error("Failed to write batch execution log", "error", err)
	}

	logger.Info("Batch finished", "summary", countByStatus(records))
	return records, nil
}

func countByStatus(records []domain.BatchLogRecord) map[domain.JobStatus]int {
	counts := make(map[domain.JobStatus]int)
	for _, r := range records {
		counts[r.Status]++
	}
	return counts
}
