package domain

import (
	"errors"
	"fmt"
	"strings"
)

type InvalidTimeFormatError struct {
	Text string
}

func (e *InvalidTimeFormatError) Error() string {
	return fmt.Sprintf("invalid time format %q: use HH:MM:SS or MM:SS", e.Text)
}

func NewInvalidTimeFormatError(text string) error {
	return &InvalidTimeFormatError{Text: text}
}

func IsInvalidTimeFormatError(err error) bool {
	var target *InvalidTimeFormatError
	return errors.As(err, &target)
}

// SourceUnavailableError means the remote reference could not be resolved
// (removed, private, geo-blocked or malformed).
type SourceUnavailableError struct {
	URL    string
	Reason string
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source unavailable %s: %s", e.URL, e.Reason)
}

func NewSourceUnavailableError(url, reason string) error {
	return &SourceUnavailableError{URL: url, Reason: reason}
}

func IsSourceUnavailableError(err error) bool {
	var target *SourceUnavailableError
	return errors.As(err, &target)
}

type DownloadFailedError struct {
	Reason string
}

func (e *DownloadFailedError) Error() string {
	return "download failed: " + e.Reason
}

func NewDownloadFailedError(reason string) error {
	return &DownloadFailedError{Reason: reason}
}

func IsDownloadFailedError(err error) bool {
	var target *DownloadFailedError
	return errors.As(err, &target)
}

type InvalidRangeError struct {
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return "invalid range: " + e.Reason
}

func NewInvalidRangeError(reason string) error {
	return &InvalidRangeError{Reason: reason}
}

func IsInvalidRangeError(err error) bool {
	var target *InvalidRangeError
	return errors.As(err, &target)
}

// SourceCorruptError means the downloaded media could not be decoded.
type SourceCorruptError struct {
	Path   string
	Reason string
}

func (e *SourceCorruptError) Error() string {
	return fmt.Sprintf("source corrupt %s: %s", e.Path, e.Reason)
}

func NewSourceCorruptError(path, reason string) error {
	return &SourceCorruptError{Path: path, Reason: reason}
}

func IsSourceCorruptError(err error) bool {
	var target *SourceCorruptError
	return errors.As(err, &target)
}

// ToolMissingError is fatal for a whole run, never for a single row.
type ToolMissingError struct {
	Tool   string
	Reason string
}

func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("%s is not installed or not runnable: %s", e.Tool, e.Reason)
}

func NewToolMissingError(tool, reason string) error {
	return &ToolMissingError{Tool: tool, Reason: reason}
}

func IsToolMissingError(err error) bool {
	var target *ToolMissingError
	return errors.As(err, &target)
}

type LogWriteFailedError struct {
	Path string
	Err  error
}

func (e *LogWriteFailedError) Error() string {
	return fmt.Sprintf("failed to write log %s: %v", e.Path, e.Err)
}

func (e *LogWriteFailedError) Unwrap() error {
	return e.Err
}

func NewLogWriteFailedError(path string, err error) error {
	return &LogWriteFailedError{Path: path, Err: err}
}

func IsLogWriteFailedError(err error) bool {
	var target *LogWriteFailedError
	return errors.As(err, &target)
}

// LastLine returns the last non-empty line of text, trimmed.
func LastLine(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
