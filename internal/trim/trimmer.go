package trim

import (
	"context"
	"fmt"
	"os"

	"clipbatch/internal/core/domain"
	"clipbatch/internal/core/ports"
	"clipbatch/internal/logging"
)

// Relocator moves a file without re-encoding it.
type Relocator interface {
	Relocate(src, dst string) error
}

// Trimmer produces the final output media for a job.
type Trimmer struct {
	cutter    ports.Cutter
	relocator Relocator
	logger    logging.Logger
}

// NewTrimmer creates a Trimmer.
func NewTrimmer(cutter ports.Cutter, relocator Relocator, logger logging.Logger) *Trimmer {
	if logger == nil {
		logger = logging.NopLogger
	}
	return &Trimmer{
		cutter:    cutter,
		relocator: relocator,
		logger:    logger,
	}
}

// Trim writes dst from src. A nil range relocates src untouched; any other
// range is decoded and re-encoded. The returned duration is the one actually
// achieved.
func (t *Trimmer) Trim(ctx context.Context, src, dst string, rng *domain.TimeRange, info domain.MediaInfo) (domain.TrimResult, error) {
	if rng == nil {
		t.logger.Info("No cut requested, moving file to its final destination", "dst", dst)
		if err := t.relocator.Relocate(src, dst); err != nil {
			return domain.TrimResult{}, fmt.Errorf("failed to move video to %s: %w", dst, err)
		}
		return domain.TrimResult{Path: dst, DurationSeconds: info.DurationSeconds}, nil
	}

	var end *int
	if !rng.ToEnd {
		e := rng.End
		end = &e
	}

	t.logger.Info("Cutting video", "start", rng.Start, "end", describeEnd(rng), "clamped", rng.Clamped)

	probed, err := t.cutter.Cut(ctx, src, dst, rng.Start, end)
	if err != nil {
		return domain.TrimResult{}, err
	}

	// Media of unknown duration is only checked once the decoder has probed it
	if info.DurationSeconds <= 0 && probed > 0 && float64(rng.Start) >= probed {
		os.Remove(dst)
		return domain.TrimResult{}, domain.NewInvalidRangeError("start time is after the end of the video")
	}

	duration := info.DurationSeconds
	if duration <= 0 {
		duration = probed
	}
	return domain.TrimResult{
		Path:            dst,
		DurationSeconds: rng.Span(duration),
		Reencoded:       true,
	}, nil
}

func describeEnd(rng *domain.TimeRange) any {
	if rng.ToEnd {
		return "end of media"
	}
	return rng.End
}
