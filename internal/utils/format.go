package utils

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	DateOnly = "2006-01-02"
	DateTime = "2006-01-02 15:04"
)

var byteUnits = []string{"B", "KB", "MB", "GB"}

// FormatBytes renders a byte count in base-1024 units with at most two
// decimals, trailing zeros trimmed: 0 -> "0 B", 1024 -> "1 KB",
// 5000000 -> "4.77 MB". Sizes beyond GB stay in GB.
func FormatBytes(n int64) string {
	if n == 0 {
		return "0 B"
	}
	v := float64(n)
	i := 0
	for math.Abs(v) >= 1024 && i < len(byteUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + byteUnits[i]
}

// LocalDate formats t as a calendar date in the local time zone, or "—" if zero.
func LocalDate(t time.Time) string {
	return TimeOrDash(t.Local(), DateOnly)
}

// TimeOrDash formats a time value using the given layout, or returns "—" if zero.
func TimeOrDash(t time.Time, layout string) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format(layout)
}

// ShortDigest keeps the algorithm prefix and the first 12 hex characters of a
// content digest, marking the cut with "...".
func ShortDigest(digest string) string {
	algo, hex, ok := strings.Cut(digest, ":")
	if !ok {
		if len(digest) > 12 {
			return digest[:12] + "..."
		}
		return digest
	}
	if len(hex) > 12 {
		return algo + ":" + hex[:12] + "..."
	}
	return digest
}
