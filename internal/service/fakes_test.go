package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"clipbatch/internal/adapters/localstorage"
	"clipbatch/internal/core/domain"
	"clipbatch/internal/trim"
)

type fakeInfo struct {
	infos map[string]domain.MediaInfo
	calls int
}

func (f *fakeInfo) FetchInfo(ctx context.Context, videoURL string) (domain.MediaInfo, error) {
	f.calls++
	info, ok := f.infos[videoURL]
	if !ok {
		return domain.MediaInfo{}, domain.NewSourceUnavailableError(videoURL, "ERROR: Video unavailable")
	}
	return info, nil
}

type fakeDownloader struct {
	err   error
	calls int
}

func (d *fakeDownloader) Download(ctx context.Context, videoURL, scratchDir string) (string, error) {
	d.calls++
	if d.err != nil {
		return "", d.err
	}
	path := filepath.Join(scratchDir, "full_video.mp4")
	return path, os.WriteFile(path, []byte(videoURL), 0644)
}

type fakeTool struct {
	err   error
	calls int
}

func (t *fakeTool) Check(ctx context.Context) error {
	t.calls++
	return t.err
}

type fakeCutter struct {
	err   error
	calls int
}

func (c *fakeCutter) Cut(ctx context.Context, src, dst string, start int, end *int) (float64, error) {
	c.calls++
	if c.err != nil {
		return 0, c.err
	}
	return 0, os.WriteFile(dst, []byte("cut"), 0644)
}

type fakeMetadataLog struct {
	records []domain.MetadataRecord
	err     error
}

func (l *fakeMetadataLog) Append(record domain.MetadataRecord) error {
	if l.err != nil {
		return domain.NewLogWriteFailedError("meta.xlsx", l.err)
	}
	l.records = append(l.records, record)
	return nil
}

func (l *fakeMetadataLog) Path() string { return "meta.xlsx" }

type fakeSummary struct {
	path    string
	records []domain.BatchLogRecord
	writes  int
}

func (s *fakeSummary) WriteSummary(path string, records []domain.BatchLogRecord) error {
	s.writes++
	s.path = path
	s.records = append([]domain.BatchLogRecord(nil), records...)
	return nil
}

// harness wires a JobRunner to fakes and a real local storage under t.TempDir.
type harness struct {
	outDir     string
	scratchDir string
	info       *fakeInfo
	downloader *fakeDownloader
	tool       *fakeTool
	cutter     *fakeCutter
	metadata   *fakeMetadataLog
	storage    *localstorage.LocalStorage
	runner     *JobRunner
}

func newHarness(t *testing.T, infos map[string]domain.MediaInfo) *harness {
	t.Helper()
	root := t.TempDir()
	h := &harness{
		outDir:     filepath.Join(root, "out"),
		scratchDir: filepath.Join(root, "scratch"),
		info:       &fakeInfo{infos: infos},
		downloader: &fakeDownloader{},
		tool:       &fakeTool{},
		cutter:     &fakeCutter{},
		metadata:   &fakeMetadataLog{},
	}
	h.storage = localstorage.NewLocalStorage(h.outDir, h.scratchDir)
	trimmer := trim.NewTrimmer(h.cutter, h.storage, nil)
	h.runner = NewJobRunner(h.info, h.downloader, trimmer, h.tool, h.storage, h.metadata, nil)
	return h
}

func (h *harness) assertScratchReleased(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(h.scratchDir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("scratch areas left behind: %d", len(entries))
	}
}

func (h *harness) outputFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(h.outDir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
