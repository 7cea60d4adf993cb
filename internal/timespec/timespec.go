// Package timespec converts between human time strings and second counts.
package timespec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"clipbatch/internal/core/domain"
)

// MaxSeconds is the largest second count Parse accepts.
const MaxSeconds = math.MaxInt32

// Parse converts "HH:MM:SS" or "MM:SS" to seconds.
//
// Every component must be a non-negative integer and the total must not
// exceed MaxSeconds. Anything else fails with a *domain.InvalidTimeFormatError.
//
// Example:
//
//	Parse("01:10")    // 70
//	Parse("01:01:01") // 3661
func Parse(text string) (int, error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, domain.NewInvalidTimeFormatError(text)
	}

	values := make([]int, len(parts))
	for i, part := range parts {
		if part == "" || strings.TrimLeft(part, "0123456789") != "" {
			return 0, domain.NewInvalidTimeFormatError(text)
		}
		v, err := strconv.Atoi(part)
		if err != nil || v > MaxSeconds {
			return 0, domain.NewInvalidTimeFormatError(text)
		}
		values[i] = v
	}

	var total int64
	for _, v := range values {
		total = total*60 + int64(v)
	}
	if total > MaxSeconds {
		return 0, domain.NewInvalidTimeFormatError(text)
	}
	return int(total), nil
}

// Format renders seconds as zero-padded "HH:MM:SS", rounding to the nearest
// whole second. Unknown durations (0, negative, NaN) render as "00:00:00".
func Format(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	total := int64(math.Round(seconds))
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
