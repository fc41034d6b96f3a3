package gamification

import (
	"testing"
	"time"

	"github.com/studybuddy/backend/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestUpdateStreakFirstActivity(t *testing.T) {
	stats := &models.UserStats{}
	UpdateStreak(stats, day("2026-03-01"))

	if stats.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", stats.CurrentStreak)
	}
	if stats.LongestStreak != 1 {
		t.Errorf("LongestStreak = %d, want 1", stats.LongestStreak)
	}
	if stats.LastActivityDate == nil || !stats.LastActivityDate.Equal(day("2026-03-01")) {
		t.Errorf("LastActivityDate = %v, want 2026-03-01", stats.LastActivityDate)
	}
}

func TestUpdateStreakConsecutiveDays(t *testing.T) {
	stats := &models.UserStats{}
	for i, d := range []string{"2026-03-01", "2026-03-02", "2026-03-03"} {
		UpdateStreak(stats, day(d))
		if stats.CurrentStreak != i+1 {
			t.Fatalf("after day %s: CurrentStreak = %d, want %d", d, stats.CurrentStreak, i+1)
		}
	}
}

func TestUpdateStreakSameDayIsNoop(t *testing.T) {
	stats := &models.UserStats{}
	UpdateStreak(stats, day("2026-03-01"))
	UpdateStreak(stats, day("2026-03-02"))
	UpdateStreak(stats, day("2026-03-02"))

	if stats.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", stats.CurrentStreak)
	}
}

func TestUpdateStreakGapResets(t *testing.T) {
	stats := &models.UserStats{}
	UpdateStreak(stats, day("2026-03-01"))
	UpdateStreak(stats, day("2026-03-02"))
	UpdateStreak(stats, day("2026-03-05"))

	if stats.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", stats.CurrentStreak)
	}
	if stats.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", stats.LongestStreak)
	}
}

func TestUpdateStreakLongestNeverDecreases(t *testing.T) {
	stats := &models.UserStats{CurrentStreak: 5, LongestStreak: 12}
	last := day("2026-02-20")
	stats.LastActivityDate = &last

	UpdateStreak(stats, day("2026-03-01"))

	if stats.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", stats.CurrentStreak)
	}
	if stats.LongestStreak != 12 {
		t.Errorf("LongestStreak = %d, want 12", stats.LongestStreak)
	}
}

func TestUpdateStreakIgnoresTimeOfDay(t *testing.T) {
	stats := &models.UserStats{}
	UpdateStreak(stats, day("2026-03-01").Add(23*time.Hour+59*time.Minute))
	UpdateStreak(stats, day("2026-03-02").Add(5*time.Minute))

	if stats.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", stats.CurrentStreak)
	}
}
