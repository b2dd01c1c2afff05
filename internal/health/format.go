package health

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout renders "2024-05-01 13:04:05 UTC".
const TimestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders t in UTC, or "-" for the zero time.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(TimestampLayout) + " UTC"
}

// FormatDuration renders d as "1d 2h 3m 4s", rounded to the second.
// Leading zero units are dropped, so 65s is "1m 5s"; zero is "0s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Round(time.Second) / time.Second)

	days := total / 86400
	hours := (total % 86400) / 3600
	mins := (total % 3600) / 60
	secs := total % 60

	parts := make([]string, 0, 4)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if days > 0 || hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if days > 0 || hours > 0 || mins > 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	parts = append(parts, fmt.Sprintf("%ds", secs))

	return strings.Join(parts, " ")
}
