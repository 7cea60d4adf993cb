package localstorage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
)

// LocalStorage implements ports.Storage for the local filesystem.
type LocalStorage struct {
	BaseDir    string
	ScratchDir string // parent of per-job scratch areas, system temp dir when empty

	mu      sync.Mutex
	claimed map[string]bool
}

// NewLocalStorage creates a new LocalStorage instance.
func NewLocalStorage(baseDir, scratchDir string) *LocalStorage {
	return &LocalStorage{
		BaseDir:    baseDir,
		ScratchDir: scratchDir,
		claimed:    make(map[string]bool),
	}
}

// EnsureOutputDir creates the output directory.
func (s *LocalStorage) EnsureOutputDir() error {
	if err := os.MkdirAll(s.BaseDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", s.BaseDir, err)
	}
	return nil
}

// NewScratch creates an isolated scratch directory for one job.
func (s *LocalStorage) NewScratch(jobID string) (string, func(), error) {
	if s.ScratchDir != "" {
		if err := os.MkdirAll(s.ScratchDir, 0755); err != nil {
			return "", nil, fmt.Errorf("failed to create scratch root %s: %w", s.ScratchDir, err)
		}
	}
	dir, err := os.MkdirTemp(s.ScratchDir, "clipbatch-"+jobID+"-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	release := func() {
		os.RemoveAll(dir)
	}
	return dir, release, nil
}

// ClaimPath returns the final path for filename. A name already claimed
// during this run gets the job number appended to its stem; files left by
// earlier runs are overwritten.
func (s *LocalStorage) ClaimPath(filename string, number int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := filename
	if s.claimed[name] {
		ext := filepath.Ext(filename)
		stem := strings.TrimSuffix(filename, ext)
		suffix := strconv.Itoa(number)
		name = stem + "_" + suffix + ext
		for n := 2; s.claimed[name]; n++ {
			name = stem + "_" + suffix + "_" + strconv.Itoa(n) + ext
		}
	}
	s.claimed[name] = true
	return s.OutputPath(name)
}

// ReleasePath frees a claimed name so a later job can take it unchanged.
func (s *LocalStorage) ReleasePath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.claimed, filepath.Base(path))
}

// OutputPath returns the path of name inside the output directory.
func (s *LocalStorage) OutputPath(name string) string {
	return filepath.Join(s.BaseDir, name)
}

// Relocate moves src to dst, copying when the two are on different devices.
func (s *LocalStorage) Relocate(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("failed to move %s: %w", src, err)
	}
	if err := copyFile(src, dst); err != nil {
		os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create video file %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to write video file: %w", err)
	}
	return out.Close()
}
