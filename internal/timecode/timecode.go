// Package timecode converts between playback offsets in seconds and the
// "M:SS" strings shown next to transcript lines and timestamp buttons.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalid is returned by Parse when the text is not a MM:SS timestamp.
var ErrInvalid = errors.New("invalid timestamp")

// Format renders seconds as "M:SS" with unpadded minutes.
func Format(seconds float64) string {
	minutes, secs := split(seconds)
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FormatPadded renders seconds as "MM:SS", the form the analysis backend
// uses for fact-check timestamps.
func FormatPadded(seconds float64) string {
	minutes, secs := split(seconds)
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// Range renders a "MM:SS-MM:SS" span.
func Range(start, end float64) string {
	return FormatPadded(start) + "-" + FormatPadded(end)
}

func split(seconds float64) (int, int) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	return total / 60, total % 60
}

// Parse converts "MM:SS" into seconds. For a range like "03:06-03:10" only
// the start is parsed. Both fields must be whole numbers: "1.5:00" and
// "00:59.5" are ErrInvalid, since the player seeks in integer seconds and the
// backend never emits fractional timestamps.
func Parse(text string) (int, error) {
	if i := strings.Index(text, "-"); i >= 0 {
		text = text[:i]
	}

	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return 0, ErrInvalid
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, ErrInvalid
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, ErrInvalid
	}

	return minutes*60 + seconds, nil
}
