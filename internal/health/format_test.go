package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{-5 * time.Second, "0s"},
		{4 * time.Second, "4s"},
		{65 * time.Second, "1m 5s"},
		{2*time.Hour + 4*time.Second, "2h 0m 4s"},
		{26*time.Hour + 3*time.Minute + 4*time.Second, "1d 2h 3m 4s"},
		{1500 * time.Millisecond, "2s"},
		{72 * time.Hour, "3d 0h 0m 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.in))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("X", 2*3600)
	ts := time.Date(2024, 5, 1, 15, 4, 5, 0, loc)

	assert.Equal(t, "2024-05-01 13:04:05 UTC", FormatTimestamp(ts))
	assert.Equal(t, "-", FormatTimestamp(time.Time{}))
}
