package forecast

import (
	"time"

	"github.com/skylook/weather-lookup-api/internal/models"
)

// DisplayWindowSize is how many hourly slots the presentation layer shows.
const DisplayWindowSize = 24

// SelectWindow slices the hourly series to the forward-looking display
// window: it starts at the first record whose timestamp is at or after now
// truncated to the top of the hour, and is capped at windowSize entries.
// When every record is in the past the earliest data is returned instead of
// an empty window.
func SelectWindow(records []models.HourlyRecord, now time.Time, windowSize int) []models.HourlyRecord {
	if len(records) == 0 || windowSize <= 0 {
		return nil
	}

	topOfHour := now.Truncate(time.Hour)

	start := 0
	found := false
	for i, rec := range records {
		if rec.Timestamp.IsZero() {
			continue
		}
		if !rec.Timestamp.Before(topOfHour) {
			start = i
			found = true
			break
		}
	}
	if !found {
		start = 0
	}

	end := start + windowSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}
