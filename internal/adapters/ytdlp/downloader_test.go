package ytdlp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"clipbatch/internal/config"
	"clipbatch/internal/core/domain"
)

func newTestFetcher(run commandRunner) *YtDlpFetcher {
	cfg := config.DefaultConfig().Fetch
	cfg.Binary = "/usr/local/bin/yt-dlp"
	f := NewYtDlpFetcher(cfg, nil)
	f.run = run
	return f
}

func TestFetchInfo_ParsesOutput(t *testing.T) {
	payload := `{"id":"abc123","title":"Aula 1: Introdução","duration":125.4,
		"upload_date":"20240315","tags":["física","aula"],"categories":["Education"]}`

	var gotArgs []string
	f := newTestFetcher(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		gotArgs = args
		return []byte(payload), nil, nil
	})

	info, err := f.FetchInfo(context.Background(), "https://www.youtube.com/watch?v=abc123")
	if err != nil {
		t.Fatalf("FetchInfo failed: %v", err)
	}

	if info.Title != "Aula 1: Introdução" {
		t.Errorf("Title = %q", info.Title)
	}
	if info.DurationSeconds != 125.4 {
		t.Errorf("DurationSeconds = %v", info.DurationSeconds)
	}
	if info.UploadDate != "2024-03-15" {
		t.Errorf("UploadDate = %q", info.UploadDate)
	}
	if len(info.Tags) != 2 || info.Categories[0] != "Education" {
		t.Errorf("unexpected tags/categories: %v %v", info.Tags, info.Categories)
	}
	if gotArgs[0] != "-J" || gotArgs[len(gotArgs)-1] != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("unexpected args: %v", gotArgs)
	}
}

func TestFetchInfo_MissingFields(t *testing.T) {
	f := newTestFetcher(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return []byte(`{"id":"live1","title":"Live","duration":null}`), nil, nil
	})

	info, err := f.FetchInfo(context.Background(), "https://youtu.be/live1")
	if err != nil {
		t.Fatalf("FetchInfo failed: %v", err)
	}
	if info.DurationSeconds != 0 {
		t.Errorf("expected unknown duration, got %v", info.DurationSeconds)
	}
	if info.UploadDate != domain.UnknownDate {
		t.Errorf("UploadDate = %q; want unknown", info.UploadDate)
	}
}

func TestFetchInfo_SourceUnavailable(t *testing.T) {
	f := newTestFetcher(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		stderr := "WARNING: something\nERROR: [youtube] abc: Private video\n"
		return nil, []byte(stderr), errors.New("exit status 1")
	})

	_, err := f.FetchInfo(context.Background(), "https://www.youtube.com/watch?v=abc")
	if !domain.IsSourceUnavailableError(err) {
		t.Fatalf("expected SourceUnavailableError, got %v", err)
	}
	if !strings.Contains(err.Error(), "Private video") {
		t.Errorf("expected last stderr line in error, got %v", err)
	}
}

func TestFetchInfo_MalformedURL(t *testing.T) {
	called := false
	f := newTestFetcher(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		called = true
		return nil, nil, nil
	})

	for _, u := range []string{"not a url", "ftp://example.com/v", "https://"} {
		_, err := f.FetchInfo(context.Background(), u)
		if !domain.IsSourceUnavailableError(err) {
			t.Errorf("FetchInfo(%q) expected SourceUnavailableError, got %v", u, err)
		}
	}
	if called {
		t.Error("yt-dlp should not run for malformed URLs")
	}
}

func TestFetchInfo_InvalidJSON(t *testing.T) {
	f := newTestFetcher(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return []byte("not json"), nil, nil
	})

	_, err := f.FetchInfo(context.Background(), "https://www.youtube.com/watch?v=x")
	if !domain.IsSourceUnavailableError(err) {
		t.Fatalf("expected SourceUnavailableError, got %v", err)
	}
}

func TestFetchInfo_AppliesTimeout(t *testing.T) {
	f := newTestFetcher(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("expected a deadline on the lookup context")
		}
		return []byte(`{"title":"x"}`), nil, nil
	})
	f.cfg.InfoTimeout = time.Second

	if _, err := f.FetchInfo(context.Background(), "https://www.youtube.com/watch?v=x"); err != nil {
		t.Fatal(err)
	}
}

func TestDownload_FindsMergedFile(t *testing.T) {
	scratch := t.TempDir()
	var gotArgs []string
	f := newTestFetcher(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		gotArgs = args
		// yt-dlp chose mkv instead of the requested container
		return nil, nil, os.WriteFile(filepath.Join(scratch, "full_video.mkv"), []byte("data"), 0644)
	})

	path, err := f.Download(context.Background(), "https://www.youtube.com/watch?v=x", scratch)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if filepath.Base(path) != "full_video.mkv" {
		t.Errorf("unexpected path %s", path)
	}

	joined := strings.Join(gotArgs, " ")
	if !strings.Contains(joined, "bestvideo[height<=720]+bestaudio/best[height<=720]") {
		t.Errorf("format selector missing: %s", joined)
	}
	if !strings.Contains(joined, "--merge-output-format mp4") {
		t.Errorf("merge format missing: %s", joined)
	}
	if !strings.Contains(joined, "--socket-timeout 30") {
		t.Errorf("socket timeout missing: %s", joined)
	}
}

func TestDownload_Failure(t *testing.T) {
	f := newTestFetcher(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return nil, []byte("ERROR: unable to download video data: HTTP Error 403: Forbidden"), errors.New("exit status 1")
	})

	_, err := f.Download(context.Background(), "https://www.youtube.com/watch?v=x", t.TempDir())
	if !domain.IsDownloadFailedError(err) {
		t.Fatalf("expected DownloadFailedError, got %v", err)
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("expected reason in error, got %v", err)
	}
}

func TestDownload_NothingProduced(t *testing.T) {
	f := newTestFetcher(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return nil, nil, nil
	})

	_, err := f.Download(context.Background(), "https://www.youtube.com/watch?v=x", t.TempDir())
	if !domain.IsDownloadFailedError(err) {
		t.Fatalf("expected DownloadFailedError, got %v", err)
	}
}

func TestFindDownloadedFile(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected string
	}{
		{"Exact name", []string{"full_video.mp4", "full_video.webm"}, "full_video.mp4"},
		{"Other extension", []string{"full_video.webm"}, "full_video.webm"},
		{"Skips intermediates", []string{"full_video.f137.mp4", "full_video.f140.m4a", "full_video.mkv"}, "full_video.mkv"},
		{"Skips partial", []string{"full_video.mp4.part", "full_video.mkv"}, "full_video.mkv"},
		{"Ignores unrelated", []string{"cover.jpg", "full_video.webm"}, "full_video.webm"},
		{"Only intermediates", []string{"full_video.f137.mp4"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				if err := os.WriteFile(filepath.Join(dir, f), []byte("x"), 0644); err != nil {
					t.Fatal(err)
				}
			}

			got, err := findDownloadedFile(dir, downloadStem, "mp4")
			if tt.expected == "" {
				if err == nil {
					t.Errorf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("findDownloadedFile failed: %v", err)
			}
			if filepath.Base(got) != tt.expected {
				t.Errorf("got %s; want %s", filepath.Base(got), tt.expected)
			}
		})
	}
}

func TestResolveBinary_Explicit(t *testing.T) {
	if got := resolveBinary("/opt/bin/yt-dlp"); got != "/opt/bin/yt-dlp" {
		t.Errorf("resolveBinary = %s", got)
	}
}

func TestFetcher_Integration(t *testing.T) {
	if os.Getenv("CLIPBATCH_NETWORK_TESTS") == "" {
		t.Skip("set CLIPBATCH_NETWORK_TESTS to run against the real yt-dlp")
	}

	f := NewYtDlpFetcher(config.DefaultConfig().Fetch, nil)
	info, err := f.FetchInfo(context.Background(), "https://www.youtube.com/watch?v=jNQXAC9IVRw")
	if err != nil {
		t.Fatalf("FetchInfo failed: %v", err)
	}
	if info.Title == "" || info.DurationSeconds <= 0 {
		t.Errorf("unexpected info: %+v", info)
	}
}
