package scoring

import (
	"math"
	"time"
)

// Consistency returns the percentage of active days over the trailing
// window, capped at 365 days. An empty calendar yields 0.
func Consistency(calendar []DayCount) int {
	totalDays := len(calendar)
	if totalDays > 365 {
		totalDays = 365
	}
	if totalDays == 0 {
		return 0
	}

	// Count over the same trailing window as the divisor so the result
	// stays within [0,100] for over-long calendars.
	activeDays := 0
	for _, day := range calendar[len(calendar)-totalDays:] {
		if day.Count > 0 {
			activeDays++
		}
	}

	return int(math.Round(float64(activeDays) / float64(totalDays) * 100))
}

// CurrentStreak counts consecutive active days ending at the last calendar
// entry. A zero-count final day does not break a streak that ran through
// the day before, since the user may simply not have committed yet today.
func CurrentStreak(calendar []DayCount) int {
	if len(calendar) == 0 {
		return 0
	}

	streak := 0
	start := len(calendar) - 1
	if calendar[start].Count == 0 {
		start--
	}
	for i := start; i >= 0; i-- {
		if calendar[i].Count == 0 {
			break
		}
		streak++
	}
	return streak
}

// truncateToDay strips the time-of-day component so recency buckets do not
// jitter across timezones within the same calendar day.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
