package gamification

import (
	"testing"

	"github.com/studybuddy/backend/internal/models"
)

func testCatalog() []models.Badge {
	return []models.Badge{
		{ID: 1, Code: "FIRST_STEPS", RequirementType: models.ReqExplanationsCount, RequirementValue: 1, XPReward: 10},
		{ID: 2, Code: "CURIOUS_MIND", RequirementType: models.ReqExplanationsCount, RequirementValue: 10, XPReward: 50},
		{ID: 3, Code: "QUIZ_ROOKIE", RequirementType: models.ReqQuizzesCompleted, RequirementValue: 1, XPReward: 10},
		{ID: 4, Code: "RISING_STAR", RequirementType: models.ReqTotalXP, RequirementValue: 1000, XPReward: 50},
	}
}

func TestEligibleBadgesThresholds(t *testing.T) {
	stats := &models.UserStats{ExplanationsRequested: 10}
	eligible := EligibleBadges(testCatalog(), stats, map[int64]bool{})

	if len(eligible) != 2 {
		t.Fatalf("eligible = %d badges, want 2", len(eligible))
	}
	if eligible[0].Code != "FIRST_STEPS" || eligible[1].Code != "CURIOUS_MIND" {
		t.Errorf("eligible = %s, %s", eligible[0].Code, eligible[1].Code)
	}
}

func TestEligibleBadgesSkipsUnlocked(t *testing.T) {
	stats := &models.UserStats{ExplanationsRequested: 10}
	unlocked := map[int64]bool{1: true}

	eligible := EligibleBadges(testCatalog(), stats, unlocked)
	if len(eligible) != 1 || eligible[0].Code != "CURIOUS_MIND" {
		t.Fatalf("eligible = %v, want only CURIOUS_MIND", eligible)
	}

	// A second pass with everything unlocked finds nothing.
	unlocked[2] = true
	if again := EligibleBadges(testCatalog(), stats, unlocked); len(again) != 0 {
		t.Errorf("second pass unlocked %d badges, want 0", len(again))
	}
}

func TestEligibleBadgesSkipsUnknownType(t *testing.T) {
	catalog := []models.Badge{
		{ID: 9, Code: "MYSTERY", RequirementType: "PERFECT_WEEKS", RequirementValue: 1},
		{ID: 3, Code: "QUIZ_ROOKIE", RequirementType: models.ReqQuizzesCompleted, RequirementValue: 1},
	}
	stats := &models.UserStats{QuizzesCompleted: 1}

	eligible := EligibleBadges(catalog, stats, map[int64]bool{})
	if len(eligible) != 1 || eligible[0].Code != "QUIZ_ROOKIE" {
		t.Fatalf("eligible = %v, want only QUIZ_ROOKIE", eligible)
	}
}

func TestEligibleBadgesSkipsBadThreshold(t *testing.T) {
	catalog := []models.Badge{
		{ID: 9, Code: "BROKEN", RequirementType: models.ReqTotalXP, RequirementValue: 0},
	}
	stats := &models.UserStats{TotalXP: 5000}

	if eligible := EligibleBadges(catalog, stats, map[int64]bool{}); len(eligible) != 0 {
		t.Errorf("eligible = %v, want none", eligible)
	}
}

func TestRewardXPChainsIntoXPBadge(t *testing.T) {
	// 990 XP is below RISING_STAR's 1000 threshold, but the 50 XP reward
	// from CURIOUS_MIND pushes the total over it in the same event.
	stats := &models.UserStats{Level: 4, TotalXP: 990, ExplanationsRequested: 10}
	unlocked := map[int64]bool{1: true, 3: true}
	catalog := testCatalog()

	first := EligibleBadges(catalog, stats, unlocked)
	if len(first) != 1 || first[0].Code != "CURIOUS_MIND" {
		t.Fatalf("first pass = %v, want CURIOUS_MIND", first)
	}
	unlocked[first[0].ID] = true
	if _, err := AddXP(stats, first[0].XPReward); err != nil {
		t.Fatalf("AddXP: %v", err)
	}

	second := EligibleBadges(catalog, stats, unlocked)
	if len(second) != 1 || second[0].Code != "RISING_STAR" {
		t.Fatalf("second pass = %v, want RISING_STAR", second)
	}
	unlocked[second[0].ID] = true
	if _, err := AddXP(stats, second[0].XPReward); err != nil {
		t.Fatalf("AddXP: %v", err)
	}

	if third := EligibleBadges(catalog, stats, unlocked); len(third) != 0 {
		t.Fatalf("third pass = %v, want none", third)
	}
	if stats.TotalXP != 1090 {
		t.Errorf("TotalXP = %d, want 1090", stats.TotalXP)
	}
}

func alwaysInsert(models.Badge, int) (bool, error) { return true, nil }

func TestRunUnlockPassesRewardLevelsUp(t *testing.T) {
	// Level 2 at 500 XP is 19 short of level 3 (519). The 50 XP reward on
	// QUIZ_ROOKIE crosses the threshold, so the unlock itself must report
	// the level-up.
	catalog := []models.Badge{
		{ID: 3, Code: "QUIZ_ROOKIE", RequirementType: models.ReqQuizzesCompleted, RequirementValue: 1, XPReward: 50},
	}
	stats := &models.UserStats{Level: 2, TotalXP: 500, QuizzesCompleted: 1}

	newBadges, leveledUp, err := runUnlockPasses(catalog, stats, map[int64]bool{}, alwaysInsert)
	if err != nil {
		t.Fatalf("runUnlockPasses: %v", err)
	}
	if !leveledUp {
		t.Error("reward XP crossed the level threshold but leveledUp = false")
	}
	if stats.Level != 3 {
		t.Errorf("Level = %d, want 3", stats.Level)
	}
	if len(newBadges) != 1 || newBadges[0].XPReward != 50 {
		t.Errorf("newBadges = %+v", newBadges)
	}
}

func TestRunUnlockPassesNoLevelUpBelowThreshold(t *testing.T) {
	catalog := []models.Badge{
		{ID: 3, Code: "QUIZ_ROOKIE", RequirementType: models.ReqQuizzesCompleted, RequirementValue: 1, XPReward: 10},
	}
	stats := &models.UserStats{Level: 2, TotalXP: 300, QuizzesCompleted: 1}

	_, leveledUp, err := runUnlockPasses(catalog, stats, map[int64]bool{}, alwaysInsert)
	if err != nil {
		t.Fatalf("runUnlockPasses: %v", err)
	}
	if leveledUp {
		t.Error("310 XP is below level 3 (519) but leveledUp = true")
	}
}

func TestRunUnlockPassesChainsToFixpoint(t *testing.T) {
	// CURIOUS_MIND's 50 XP reward lifts 990 over RISING_STAR's 1000, which
	// must unlock in the same event.
	stats := &models.UserStats{Level: 4, TotalXP: 990, ExplanationsRequested: 10}
	unlocked := map[int64]bool{1: true, 3: true}

	newBadges, _, err := runUnlockPasses(testCatalog(), stats, unlocked, alwaysInsert)
	if err != nil {
		t.Fatalf("runUnlockPasses: %v", err)
	}
	if len(newBadges) != 2 {
		t.Fatalf("got %d badges, want CURIOUS_MIND then RISING_STAR", len(newBadges))
	}
	if stats.TotalXP != 1090 {
		t.Errorf("TotalXP = %d, want 1090", stats.TotalXP)
	}
}

func TestRunUnlockPassesLostInsertRaceSkipsReward(t *testing.T) {
	catalog := []models.Badge{
		{ID: 3, Code: "QUIZ_ROOKIE", RequirementType: models.ReqQuizzesCompleted, RequirementValue: 1, XPReward: 50},
	}
	stats := &models.UserStats{Level: 2, TotalXP: 500, QuizzesCompleted: 1}

	newBadges, leveledUp, err := runUnlockPasses(catalog, stats, map[int64]bool{},
		func(models.Badge, int) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("runUnlockPasses: %v", err)
	}
	if len(newBadges) != 0 || leveledUp || stats.TotalXP != 500 {
		t.Errorf("lost race applied effects: badges=%d leveledUp=%v xp=%d", len(newBadges), leveledUp, stats.TotalXP)
	}
}

func TestBadgeProgress(t *testing.T) {
	badge := models.Badge{RequirementType: models.ReqQuizzesCompleted, RequirementValue: 25}
	tests := []struct {
		completed int
		want      float64
	}{
		{0, 0},
		{5, 20},
		{25, 100},
		{40, 100},
	}
	for _, tt := range tests {
		stats := &models.UserStats{QuizzesCompleted: tt.completed}
		if got := BadgeProgress(badge, stats); got != tt.want {
			t.Errorf("BadgeProgress(%d/25) = %v, want %v", tt.completed, got, tt.want)
		}
	}
}
