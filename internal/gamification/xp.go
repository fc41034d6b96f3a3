package gamification

import (
	"fmt"
	"math"

	"github.com/studybuddy/backend/internal/models"
)

// XP awards per activity type.
const (
	XPExplanation     = 10
	XPQuizCompleted   = 20
	XPQuizPassedBonus = 10
	XPPerFlashcard    = 2
)

// XPRequiredForLevel returns the cumulative XP needed to reach level n:
// floor(100 * n^1.5). Level 1 is the floor every user starts at.
func XPRequiredForLevel(n int) int {
	if n <= 1 {
		return 0
	}
	return int(100 * math.Pow(float64(n), 1.5))
}

// AddXP applies a non-negative XP amount to the stats row: total, weekly
// and monthly counters all grow, and the level advances while the total
// crosses thresholds (a single large award can jump several levels).
// Returns whether at least one level was gained.
func AddXP(stats *models.UserStats, amount int) (bool, error) {
	if amount < 0 {
		return false, fmt.Errorf("%w: negative xp amount %d", ErrInvalidInput, amount)
	}
	if amount == 0 {
		return false, nil
	}

	stats.TotalXP += amount
	stats.WeeklyXP += amount
	stats.MonthlyXP += amount

	leveledUp := false
	for stats.TotalXP >= XPRequiredForLevel(stats.Level+1) {
		stats.Level++
		leveledUp = true
	}
	stats.XPForNextLevel = XPRequiredForLevel(stats.Level + 1)

	return leveledUp, nil
}

// LevelProgress returns the percentage of the way from the current level's
// XP threshold to the next one, clamped to [0, 100].
func LevelProgress(stats *models.UserStats) float64 {
	base := XPRequiredForLevel(stats.Level)
	next := XPRequiredForLevel(stats.Level + 1)
	if next <= base {
		return 100
	}
	progress := float64(stats.TotalXP-base) / float64(next-base) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// FocusSessionXP returns the XP for a completed focus session. A positive
// caller-supplied override wins; otherwise 3 XP per full 10 minutes plus 1.
func FocusSessionXP(durationMinutes, override int) int {
	if override > 0 {
		return override
	}
	return (durationMinutes/10)*3 + 1
}
