package gamification

import (
	"errors"
	"testing"

	"github.com/studybuddy/backend/internal/models"
)

func newStats() *models.UserStats {
	return &models.UserStats{Level: 1, XPForNextLevel: XPRequiredForLevel(2)}
}

func TestXPRequiredForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 0},
		{2, 282},
		{3, 519},
		{5, 1118},
		{10, 3162},
	}
	for _, tt := range tests {
		if got := XPRequiredForLevel(tt.level); got != tt.want {
			t.Errorf("XPRequiredForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestAddXPAccumulates(t *testing.T) {
	stats := newStats()

	leveledUp, err := AddXP(stats, 100)
	if err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if leveledUp {
		t.Error("100 XP should not reach level 2 (needs 282)")
	}
	if stats.TotalXP != 100 || stats.WeeklyXP != 100 || stats.MonthlyXP != 100 {
		t.Errorf("counters = %d/%d/%d, want 100/100/100", stats.TotalXP, stats.WeeklyXP, stats.MonthlyXP)
	}
}

func TestAddXPLevelUp(t *testing.T) {
	stats := newStats()

	leveledUp, err := AddXP(stats, 282)
	if err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if !leveledUp {
		t.Error("282 XP should reach level 2")
	}
	if stats.Level != 2 {
		t.Errorf("Level = %d, want 2", stats.Level)
	}
	if stats.XPForNextLevel != XPRequiredForLevel(3) {
		t.Errorf("XPForNextLevel = %d, want %d", stats.XPForNextLevel, XPRequiredForLevel(3))
	}
}

func TestAddXPMultiLevelJump(t *testing.T) {
	stats := newStats()

	// 1200 XP crosses levels 2 (282), 3 (519), 4 (800) and 5 (1118) at once.
	leveledUp, err := AddXP(stats, 1200)
	if err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if !leveledUp {
		t.Error("expected level up")
	}
	if stats.Level != 5 {
		t.Errorf("Level = %d, want 5", stats.Level)
	}
}

func TestAddXPSplitEqualsWhole(t *testing.T) {
	a := newStats()
	b := newStats()

	if _, err := AddXP(a, 300); err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if _, err := AddXP(b, 120); err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if _, err := AddXP(b, 180); err != nil {
		t.Fatalf("AddXP: %v", err)
	}

	if a.TotalXP != b.TotalXP || a.Level != b.Level || a.XPForNextLevel != b.XPForNextLevel {
		t.Errorf("split award diverged: %+v vs %+v", a, b)
	}
}

func TestAddXPZeroIsNoop(t *testing.T) {
	stats := newStats()
	leveledUp, err := AddXP(stats, 0)
	if err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if leveledUp || stats.TotalXP != 0 {
		t.Errorf("zero award mutated stats: %+v", stats)
	}
}

func TestAddXPRejectsNegative(t *testing.T) {
	stats := newStats()
	_, err := AddXP(stats, -5)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if stats.TotalXP != 0 {
		t.Errorf("rejected award mutated stats: TotalXP = %d", stats.TotalXP)
	}
}

func TestLevelProgress(t *testing.T) {
	tests := []struct {
		name    string
		totalXP int
		level   int
		want    float64
	}{
		{"fresh level 1", 0, 1, 0},
		{"halfway to 2", 141, 1, 50},
		{"at threshold", 282, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := &models.UserStats{TotalXP: tt.totalXP, Level: tt.level}
			got := LevelProgress(stats)
			if got != tt.want {
				t.Errorf("LevelProgress = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelProgressClamped(t *testing.T) {
	stats := &models.UserStats{TotalXP: 10000, Level: 2}
	if got := LevelProgress(stats); got != 100 {
		t.Errorf("LevelProgress = %v, want 100", got)
	}
}

func TestFocusSessionXP(t *testing.T) {
	tests := []struct {
		minutes  int
		override int
		want     int
	}{
		{25, 0, 7},   // two full 10-minute blocks + 1
		{9, 0, 1},    // under one block
		{60, 0, 19},
		{25, 42, 42}, // override wins
	}
	for _, tt := range tests {
		if got := FocusSessionXP(tt.minutes, tt.override); got != tt.want {
			t.Errorf("FocusSessionXP(%d, %d) = %d, want %d", tt.minutes, tt.override, got, tt.want)
		}
	}
}
