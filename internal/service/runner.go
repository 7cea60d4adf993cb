package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"clipbatch/internal/core/domain"
	"clipbatch/internal/core/ports"
	"clipbatch/internal/logging"
	"clipbatch/internal/naming"
	"clipbatch/internal/timespec"
	"clipbatch/internal/trim"
)

// DefaultTitle names the output of a video whose title could not be read.
const DefaultTitle = "youtube_video"

// Trimmer produces the final media file of a job.
type Trimmer interface {
	Trim(ctx context.Context, src, dst string, rng *domain.TimeRange, info domain.MediaInfo) (domain.TrimResult, error)
}

// JobRunner executes one video job: fetch, trim, place, log.
type JobRunner struct {
	info       ports.InfoFetcher
	downloader ports.Downloader
	trimmer    Trimmer
	tool       ports.ToolChecker
	storage    ports.Storage
	metadata   ports.MetadataLog
	logger     logging.Logger

	toolOnce sync.Once
	toolErr  error
}

// NewJobRunner creates a JobRunner. metadata may be nil to skip the metadata log.
func NewJobRunner(
	info ports.InfoFetcher,
	downloader ports.Downloader,
	trimmer Trimmer,
	tool ports.ToolChecker,
	storage ports.Storage,
	metadata ports.MetadataLog,
	logger logging.Logger,
) *JobRunner {
	if logger == nil {
		logger = logging.NopLogger
	}
	return &JobRunner{
		info:       info,
		downloader: downloader,
		trimmer:    trimmer,
		tool:       tool,
		storage:    storage,
		metadata:   metadata,
		logger:     logger,
	}
}

// Preflight verifies the trim tool once when any runnable job asks for a cut.
// The result is remembered for the lifetime of the runner.
func (r *JobRunner) Preflight(ctx context.Context, specs []domain.JobSpec) error {
	for _, spec := range specs {
		if strings.TrimSpace(spec.URL) != "" && spec.WantsTrim() {
			return r.checkTool(ctx)
		}
	}
	return nil
}

func (r *JobRunner) checkTool(ctx context.Context) error {
	r.toolOnce.Do(func() {
		r.toolErr = r.tool.Check(ctx)
	})
	return r.toolErr
}

// Run executes spec and reports the outcome. It never returns an error:
// every failure is captured in the result.
func (r *JobRunner) Run(ctx context.Context, spec domain.JobSpec) domain.JobResult {
	jobID := uuid.New().String()
	logger := logging.With(r.logger, "job_id", jobID, "video", spec.Number, "url", spec.URL)

	result := domain.JobResult{
		JobID:  jobID,
		Number: spec.Number,
		URL:    spec.URL,
		Status: domain.StatusFailure,
	}

	logger.Info("Starting job")
	err := r.execute(ctx, spec, logger, &result)
	result.CompletedAt = time.Now().UTC()
	if err != nil {
		result.Detail = domain.LastLine(err.Error())
		logger.Error("Job failed", "error", result.Detail)
		return result
	}

	result.Status = domain.StatusSuccess
	result.Detail = "Video saved to " + result.FinalFilePath
	logger.Info("Job completed", "path", result.FinalFilePath, "duration", result.Metadata.DurationString)
	return result
}

func (r *JobRunner) execute(ctx context.Context, spec domain.JobSpec, logger logging.Logger, result *domain.JobResult) error {
	// Malformed times fail before any network work
	for _, t := range []string{spec.Start, spec.End} {
		if t == "" {
			continue
		}
		if _, err := timespec.Parse(t); err != nil {
			return err
		}
	}

	logger.Info("Fetching video info")
	info, err := r.info.FetchInfo(ctx, spec.URL)
	if err != nil {
		return err
	}
	logger.Debug("Video info fetched", "title", info.Title, "duration", info.DurationSeconds)

	if spec.WantsTrim() {
		if err := r.checkTool(ctx); err != nil {
			return err
		}
	}

	scratch, release, err := r.storage.NewScratch(result.JobID)
	if err != nil {
		return err
	}
	defer release()

	logger.Info("Downloading video")
	src, err := r.downloader.Download(ctx, spec.URL, scratch)
	if err != nil {
		return err
	}

	rng, err := trim.ResolveRange(spec.Start, spec.End, info)
	if err != nil {
		return err
	}

	title := info.Title
	if title == "" {
		title = DefaultTitle
	}
	if err := r.storage.EnsureOutputDir(); err != nil {
		return err
	}
	dst := r.storage.ClaimPath(outputFilename(spec.Name, title), spec.Number)

	trimmed, err := r.trimmer.Trim(ctx, src, dst, rng, info)
	if err != nil {
		r.storage.ReleasePath(dst)
		return err
	}

	record := domain.MetadataRecord{
		Filename:        filepath.Base(trimmed.Path),
		URL:             spec.URL,
		Title:           title,
		DurationSeconds: trimmed.DurationSeconds,
		DurationString:  timespec.Format(trimmed.DurationSeconds),
		UploadDate:      info.UploadDate,
		Tags:            info.Tags,
		Categories:      info.Categories,
	}
	result.FinalFilePath = trimmed.Path
	result.FinalFilename = record.Filename
	result.Metadata = record

	if r.metadata != nil {
		if err := r.metadata.Append(record); err != nil {
			logger.Warn("Failed to write metadata log", "error", err)
		} else {
			logger.Debug("Metadata logged", "file", r.metadata.Path())
		}
	}
	return nil
}

func outputFilename(name, title string) string {
	base := name
	if base == "" {
		base = title
	}
	safe := naming.Sanitize(base)
	if safe == "" {
		safe = DefaultTitle
	}
	return fmt.Sprintf("%s.mp4", safe)
}
