package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"clipbatch/internal/config"
	"clipbatch/internal/core/domain"
	"clipbatch/internal/logging"
)

// downloadStem is the scratch file name yt-dlp is asked to produce.
const downloadStem = "full_video"

// intermediate matches per-format files yt-dlp leaves before merging.
var intermediate = regexp.MustCompile(`\.f\d+\.[^.]+$`)

type commandRunner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	err := cmd.Run()
	return out.Bytes(), stderr.Bytes(), err
}

// YtDlpFetcher uses the local yt-dlp binary for metadata lookup and download.
type YtDlpFetcher struct {
	binaryPath string
	cfg        config.FetchConfig
	logger     logging.Logger
	run        commandRunner
}

// NewYtDlpFetcher creates a new fetcher.
func NewYtDlpFetcher(cfg config.FetchConfig, logger logging.Logger) *YtDlpFetcher {
	if logger == nil {
		logger = logging.NopLogger
	}
	return &YtDlpFetcher{
		binaryPath: resolveBinary(cfg.Binary),
		cfg:        cfg,
		logger:     logger,
		run:        execRunner,
	}
}

func resolveBinary(binary string) string {
	if binary != "" && binary != "yt-dlp" {
		return binary
	}
	// A yt-dlp.exe next to the working directory wins over PATH
	if _, err := os.Stat("yt-dlp.exe"); err == nil {
		return ".\\yt-dlp.exe"
	}
	return "yt-dlp"
}

// videoInfo is the subset of `yt-dlp -J` output we persist.
type videoInfo struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Duration   *float64 `json:"duration"`
	UploadDate string   `json:"upload_date"`
	Tags       []string `json:"tags"`
	Categories []string `json:"categories"`
}

// FetchInfo looks up metadata with `yt-dlp -J` without downloading anything.
func (d *YtDlpFetcher) FetchInfo(ctx context.Context, videoURL string) (domain.MediaInfo, error) {
	if err := validateURL(videoURL); err != nil {
		return domain.MediaInfo{}, domain.NewSourceUnavailableError(videoURL, err.Error())
	}

	if d.cfg.InfoTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.InfoTimeout)
		defer cancel()
	}

	// -J: dump the info JSON of a single video
	// --skip-download: metadata only
	args := []string{"-J", "--skip-download", "--no-playlist", "--no-warnings"}
	args = append(args, d.socketTimeoutArgs()...)
	args = append(args, videoURL)

	out, stderr, err := d.run(ctx, d.binaryPath, args...)
	if err != nil {
		reason := domain.LastLine(string(stderr))
		if reason == "" {
			reason = err.Error()
		}
		return domain.MediaInfo{}, domain.NewSourceUnavailableError(videoURL, reason)
	}

	info, err := parseInfo(out)
	if err != nil {
		return domain.MediaInfo{}, domain.NewSourceUnavailableError(videoURL, err.Error())
	}
	return info, nil
}

// Download fetches the best streams under the configured height cap and
// merges them into one container inside scratchDir.
func (d *YtDlpFetcher) Download(ctx context.Context, videoURL, scratchDir string) (string, error) {
	template := filepath.Join(scratchDir, downloadStem+".%(ext)s")
	args := []string{
		"-f", formatSelector(d.cfg.MaxHeight),
		"--merge-output-format", d.cfg.MergeFormat,
		"-o", template,
		"--no-playlist",
		"--no-warnings",
		"--no-mtime",
		"--newline",
	}
	args = append(args, d.socketTimeoutArgs()...)
	args = append(args, videoURL)

	d.logger.Debug("Running yt-dlp download", "binary", d.binaryPath, "args", strings.Join(args, " "))

	_, stderr, err := d.run(ctx, d.binaryPath, args...)
	if err != nil {
		reason := domain.LastLine(string(stderr))
		if reason == "" {
			reason = err.Error()
		}
		return "", domain.NewDownloadFailedError(reason)
	}

	path, err := findDownloadedFile(scratchDir, downloadStem, d.cfg.MergeFormat)
	if err != nil {
		return "", domain.NewDownloadFailedError(err.Error())
	}
	return path, nil
}

func (d *YtDlpFetcher) socketTimeoutArgs() []string {
	if d.cfg.SocketTimeout <= 0 {
		return nil
	}
	return []string{"--socket-timeout", strconv.Itoa(int(d.cfg.SocketTimeout / time.Second))}
}

func formatSelector(maxHeight int) string {
	return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]", maxHeight, maxHeight)
}

func validateURL(videoURL string) error {
	u, err := url.Parse(strings.TrimSpace(videoURL))
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("malformed URL: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("malformed URL: missing host")
	}
	return nil
}

func parseInfo(raw []byte) (domain.MediaInfo, error) {
	var v videoInfo
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.MediaInfo{}, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	info := domain.MediaInfo{
		ID:         v.ID,
		Title:      v.Title,
		UploadDate: formatUploadDate(v.UploadDate),
		Tags:       v.Tags,
		Categories: v.Categories,
	}
	if v.Duration != nil && *v.Duration > 0 {
		info.DurationSeconds = *v.Duration
	}
	return info, nil
}

// formatUploadDate turns yt-dlp's YYYYMMDD into YYYY-MM-DD.
func formatUploadDate(raw string) string {
	t, err := time.Parse("20060102", raw)
	if err != nil {
		return domain.UnknownDate
	}
	return t.Format("2006-01-02")
}

// findDownloadedFile locates the merged file. yt-dlp may pick its own
// extension, so the directory is searched instead of assuming a name.
func findDownloadedFile(dir, stem, preferredExt string) (string, error) {
	expected := filepath.Join(dir, stem+"."+preferredExt)
	if _, err := os.Stat(expected); err == nil {
		return expected, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read scratch directory: %w", err)
	}

	var candidates []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, stem) {
			continue
		}
		if strings.HasSuffix(name, ".part") || strings.HasSuffix(name, ".ytdl") || intermediate.MatchString(name) {
			continue
		}
		candidates = append(candidates, name)
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("downloaded file not found in scratch directory %s", dir)
	}

	sort.Strings(candidates)
	return filepath.Join(dir, candidates[0]), nil
}
