package app

import (
	"time"

	"nexus-daily/model"
)

// RecordCompletion updates streak state for a task completed at now.
// Streaks advance once per calendar day; a gap of more than one day restarts at 1.
// Only false->true completion transitions should call it.
func RecordCompletion(stats model.Stats, now time.Time) model.Stats {
	today := model.DateOf(now)
	last := stats.LastCompletionDate

	switch {
	case last.IsZero():
		stats.CurrentStreak = 1
	case last == today.AddDays(-1):
		stats.CurrentStreak++
	case last != today:
		stats.CurrentStreak = 1
	}

	stats.LastCompletionDate = today
	stats.TotalTasksCompleted++
	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	return stats
}

// TrackWeek resets the weekly counters when day falls outside the stored week.
func TrackWeek(stats model.Stats, day model.Date) model.Stats {
	start := day.WeekStart()
	if stats.WeekStart != start {
		stats.WeekStart = start
		stats.WeeklyTasksCompleted = 0
		stats.WeeklyFocusTime = 0
	}
	return stats
}

// EffectiveStreak is the streak to display on today. It reads as 0 once a full day
// has passed without a completion, without touching the stored value.
func EffectiveStreak(stats model.Stats, today model.Date) int {
	last := stats.LastCompletionDate
	if last == today || last == today.AddDays(-1) {
		return stats.CurrentStreak
	}
	return 0
}
