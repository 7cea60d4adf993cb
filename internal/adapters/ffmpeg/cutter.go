// Package ffmpeg cuts media with the ffmpeg/ffprobe binaries through goffmpeg.
package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/xfrr/goffmpeg"
	"github.com/xfrr/goffmpeg/transcoder"

	"clipbatch/internal/config"
	"clipbatch/internal/core/domain"
	"clipbatch/internal/logging"
	"clipbatch/internal/timespec"
)

// Tool implements ports.Cutter and ports.ToolChecker.
type Tool struct {
	settings config.TrimConfig
	logger   logging.Logger

	mu         sync.Mutex
	conf       goffmpeg.Configuration
	configured bool
}

// NewTool creates a Tool. ffmpeg and ffprobe are looked up on PATH the first
// time they are needed.
func NewTool(settings config.TrimConfig, logger logging.Logger) *Tool {
	if logger == nil {
		logger = logging.NopLogger
	}
	return &Tool{settings: settings, logger: logger}
}

func (t *Tool) configuration(ctx context.Context) (goffmpeg.Configuration, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.configured {
		return t.conf, nil
	}

	conf, err := goffmpeg.Configure(ctx)
	if err != nil {
		return goffmpeg.Configuration{}, domain.NewToolMissingError("ffmpeg", domain.LastLine(err.Error()))
	}

	t.conf = conf
	t.configured = true
	return conf, nil
}

// Check verifies that ffmpeg and ffprobe exist and run.
func (t *Tool) Check(ctx context.Context) error {
	conf, err := t.configuration(ctx)
	if err != nil {
		return err
	}

	binaries := []struct{ name, path string }{
		{"ffmpeg", conf.FFmpegBinPath()},
		{"ffprobe", conf.FFprobeBinPath()},
	}
	for _, bin := range binaries {
		cmd := exec.CommandContext(ctx, bin.path, "-version")
		if output, err := cmd.CombinedOutput(); err != nil {
			reason := domain.LastLine(string(output))
			if reason == "" {
				reason = err.Error()
			}
			return domain.NewToolMissingError(bin.name, reason)
		}
	}

	t.logger.Info("FFmpeg check succeeded", "ffmpeg", conf.FFmpegBinPath(), "ffprobe", conf.FFprobeBinPath())
	return nil
}

// Cut re-encodes src from start to end (or to the end of the media when end
// is nil) into dst and returns the probed duration of src. dst is removed
// when the cut fails.
func (t *Tool) Cut(ctx context.Context, src, dst string, start int, end *int) (duration float64, err error) {
	conf, err := t.configuration(ctx)
	if err != nil {
		return 0, err
	}

	trans := new(transcoder.Transcoder)
	trans.SetConfiguration(conf)

	defer func() {
		if err != nil {
			os.Remove(dst)
		}
	}()

	// Initialize probes the input; failing here means the file cannot be decoded
	if err := trans.Initialize(src, dst); err != nil {
		return 0, domain.NewSourceCorruptError(src, domain.LastLine(err.Error()))
	}

	metadata := trans.MediaFile().Metadata()
	duration, err = strconv.ParseFloat(metadata.Format.Duration, 64)
	if err != nil || duration <= 0 || len(metadata.Streams) == 0 {
		return 0, domain.NewSourceCorruptError(src, "no readable duration or streams")
	}

	endLabel := "end"
	trans.MediaFile().SetSeekTime(timespec.Format(float64(start)))
	if end != nil {
		trans.MediaFile().SetDuration(strconv.Itoa(*end - start))
		endLabel = timespec.Format(float64(*end))
	}
	trans.MediaFile().SetVideoCodec(t.settings.VideoCodec)
	trans.MediaFile().SetAudioCodec(t.settings.AudioCodec)

	t.logger.Debug("Starting cut", "src", src, "dst", dst, "start", start, "end", endLabel)

	done := trans.Run(false)
	select {
	case err = <-done:
	case <-ctx.Done():
		trans.Stop()
		<-done
		err = ctx.Err()
	}
	if err != nil {
		return 0, fmt.Errorf("ffmpeg cut failed: %s", domain.LastLine(err.Error()))
	}

	if _, statErr := os.Stat(dst); statErr != nil {
		err = fmt.Errorf("ffmpeg produced no output: %w", statErr)
		return 0, err
	}
	return duration, nil
}
