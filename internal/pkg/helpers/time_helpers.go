package helpers

import (
	"time"

	"github.com/yigit/placementhub/internal/pkg/logger"
)

// DateLayout is the calendar date format used by exams, drives and exports.
const DateLayout = "2006-01-02"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		logger.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
