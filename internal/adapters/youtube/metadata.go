// Package youtube looks up video metadata natively, without the yt-dlp binary.
package youtube

import (
	"context"
	"net/http"
	"time"

	yt "github.com/kkdai/youtube/v2"

	"clipbatch/internal/core/domain"
	"clipbatch/internal/logging"
)

type videoGetter interface {
	GetVideoContext(ctx context.Context, url string) (*yt.Video, error)
}

// InfoFetcher implements ports.InfoFetcher on the YouTube player API.
// It does not report tags or categories.
type InfoFetcher struct {
	client  videoGetter
	timeout time.Duration
	logger  logging.Logger
}

// NewInfoFetcher creates an InfoFetcher whose lookups are bounded by timeout.
func NewInfoFetcher(timeout time.Duration, logger logging.Logger) *InfoFetcher {
	if logger == nil {
		logger = logging.NopLogger
	}
	return &InfoFetcher{
		client: &yt.Client{
			HTTPClient: &http.Client{Timeout: timeout},
		},
		timeout: timeout,
		logger:  logger,
	}
}

// FetchInfo resolves videoURL to its metadata.
func (f *InfoFetcher) FetchInfo(ctx context.Context, videoURL string) (domain.MediaInfo, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	video, err := f.client.GetVideoContext(ctx, videoURL)
	if err != nil {
		return domain.MediaInfo{}, domain.NewSourceUnavailableError(videoURL, err.Error())
	}

	info := domain.MediaInfo{
		ID:              video.ID,
		Title:           video.Title,
		DurationSeconds: video.Duration.Seconds(),
		UploadDate:      domain.UnknownDate,
	}
	if !video.PublishDate.IsZero() {
		info.UploadDate = video.PublishDate.Format("2006-01-02")
	}

	f.logger.Debug("Fetched native metadata", "id", video.ID, "author", video.Author)
	return info, nil
}
