package domain

import "time"

// UnknownDate is the upload date of media whose date could not be read.
const UnknownDate = "unknown"

// JobStatus is the terminal state of one batch row.
type JobStatus string

const (
	StatusSuccess JobStatus = "Success"
	StatusFailure JobStatus = "Failure"
	StatusSkipped JobStatus = "Skipped"
)

// JobSpec is one row of batch input.
type JobSpec struct {
	Number int    `json:"video_number"` // 1-based position in the batch, 0 for a single run
	URL    string `json:"url"`
	Name   string `json:"name,omitempty"`  // overrides the fetched title for the output filename
	Start  string `json:"start,omitempty"` // "HH:MM:SS" or "MM:SS"
	End    string `json:"end,omitempty"`
}

// WantsTrim reports whether the job asked for a cut at all.
// A job with only an end time is cut from 0.
func (s JobSpec) WantsTrim() bool {
	return s.Start != "" || s.End != ""
}

// MediaInfo is the descriptive metadata of a remote video. DurationSeconds is 0
// when the duration is unknown (live streams, missing metadata).
type MediaInfo struct {
	ID              string
	Title           string
	DurationSeconds float64
	UploadDate      string // YYYY-MM-DD or "unknown"
	Tags            []string
	Categories      []string
}

// TimeRange is a validated cut. When ToEnd is set the cut runs to the end of
// the media and End is ignored.
type TimeRange struct {
	Start   int
	End     int
	ToEnd   bool
	Clamped bool // End was reduced to the media duration
}

// Span returns the length of the range in seconds. mediaDuration bounds
// open-ended ranges and ends past the media; 0 means unknown.
func (r TimeRange) Span(mediaDuration float64) float64 {
	if r.ToEnd || (mediaDuration > 0 && float64(r.End) > mediaDuration) {
		if mediaDuration <= 0 {
			return 0
		}
		return mediaDuration - float64(r.Start)
	}
	return float64(r.End - r.Start)
}

// TrimResult is what the trimmer produced.
type TrimResult struct {
	Path            string
	DurationSeconds float64 // achieved duration, not the requested one
	Reencoded       bool
}

// MetadataRecord is the row persisted to the metadata log for a successful job.
type MetadataRecord struct {
	Filename        string
	URL             string
	Title           string
	DurationSeconds float64
	DurationString  string
	UploadDate      string
	Tags            []string
	Categories      []string
}

// JobResult holds the outcome of one job.
type JobResult struct {
	JobID         string
	Number        int
	URL           string
	Status        JobStatus
	FinalFilePath string // set only on success
	FinalFilename string
	Metadata      MetadataRecord
	Detail        string
	CompletedAt   time.Time
}

// BatchLogRecord is one row of the batch summary.
type BatchLogRecord struct {
	VideoNumber int
	URL         string
	Status      JobStatus
	Detail      string
}
