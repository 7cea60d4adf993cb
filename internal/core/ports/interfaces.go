package ports

import (
	"context"

	"clipbatch/internal/core/domain"
)

// InfoFetcher resolves a video reference to its metadata without downloading it.
type InfoFetcher interface {
	// FetchInfo returns a *domain.SourceUnavailableError when the reference
	// cannot be resolved.
	FetchInfo(ctx context.Context, videoURL string) (domain.MediaInfo, error)
}

// Downloader retrieves the media behind a video reference.
type Downloader interface {
	// Download merges the best streams into one file under scratchDir and
	// returns its path. Failures are *domain.DownloadFailedError.
	Download(ctx context.Context, videoURL, scratchDir string) (string, error)
}

// MediaFetcher is the full acquisition side of a job.
type MediaFetcher interface {
	InfoFetcher
	Downloader
}

// Cutter decodes a local media file and re-encodes the [start, end] span to dst.
type Cutter interface {
	// Cut returns the probed duration of src. A nil end cuts to the end of the
	// media. Undecodable sources are *domain.SourceCorruptError.
	Cut(ctx context.Context, src, dst string, start int, end *int) (float64, error)
}

// ToolChecker verifies that the external trim tool can be run.
type ToolChecker interface {
	Check(ctx context.Context) error
}

// MetadataLog persists one metadata row per successful job.
type MetadataLog interface {
	Append(record domain.MetadataRecord) error
	Path() string
}

// SummaryWriter writes the batch summary table once, at the end of a batch.
type SummaryWriter interface {
	WriteSummary(path string, records []domain.BatchLogRecord) error
}

// JobSource reads the batch input table.
type JobSource interface {
	ReadJobs(path string) ([]domain.JobSpec, error)
}

// Storage owns the output directory and the per-job scratch areas.
type Storage interface {
	// EnsureOutputDir creates the output directory when absent.
	EnsureOutputDir() error

	// NewScratch creates a scratch area and returns it with its release func.
	// The release func removes everything under the area.
	NewScratch(jobID string) (string, func(), error)

	// ClaimPath reserves the final path for filename. number is the 1-based
	// row of the claiming job, 0 outside a batch.
	ClaimPath(filename string, number int) string

	// ReleasePath gives back a path returned by ClaimPath whose job failed.
	ReleasePath(path string)

	// Relocate moves src to dst without re-encoding.
	Relocate(src, dst string) error

	// OutputPath returns the path of a file inside the output directory.
	OutputPath(name string) string
}
