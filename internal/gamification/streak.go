package gamification

import (
	"time"

	"github.com/studybuddy/backend/internal/models"
)

// UpdateStreak advances the daily streak for an activity happening on
// "today". Consecutive calendar days extend the streak, a second activity
// on the same day is a no-op, and any gap resets it to 1. LongestStreak
// never decreases.
func UpdateStreak(stats *models.UserStats, today time.Time) {
	day := truncateToDay(today)

	switch {
	case stats.LastActivityDate == nil:
		stats.CurrentStreak = 1
	case sameDay(*stats.LastActivityDate, day):
		return
	case sameDay(stats.LastActivityDate.AddDate(0, 0, 1), day):
		stats.CurrentStreak++
	default:
		stats.CurrentStreak = 1
	}

	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	stats.LastActivityDate = &day
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return truncateToDay(a).Equal(truncateToDay(b))
}
