// Package trim turns fetched media into the final output file, cut or untouched.
package trim

import (
	"math"

	"clipbatch/internal/core/domain"
	"clipbatch/internal/timespec"
)

// ResolveRange parses the requested bounds and validates them against the
// media duration. It returns nil when neither bound was given, which means
// no cut at all (not a cut covering the whole media).
//
// With a known duration, a start at or past the end of the media is invalid
// and an end past it is clamped to the end of the media. An end at or before the
// start is always invalid.
func ResolveRange(start, end string, info domain.MediaInfo) (*domain.TimeRange, error) {
	if start == "" && end == "" {
		return nil, nil
	}

	rng := &domain.TimeRange{ToEnd: true}
	if start != "" {
		s, err := timespec.Parse(start)
		if err != nil {
			return nil, err
		}
		rng.Start = s
	}
	if end != "" {
		e, err := timespec.Parse(end)
		if err != nil {
			return nil, err
		}
		rng.End = e
		rng.ToEnd = false
	}

	if duration := info.DurationSeconds; duration > 0 {
		if float64(rng.Start) >= duration {
			return nil, domain.NewInvalidRangeError("start time is after the end of the video")
		}
		if !rng.ToEnd && float64(rng.End) > duration {
			// Cut to the real end so a fractional tail is kept; End only records the clamp
			rng.End = int(math.Floor(duration))
			rng.ToEnd = true
			rng.Clamped = true
		}
	}

	if !rng.ToEnd && rng.End <= rng.Start {
		return nil, domain.NewInvalidRangeError("end time must be greater than start time")
	}
	return rng, nil
}
