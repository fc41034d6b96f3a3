package gamification

import (
	"log"

	"github.com/studybuddy/backend/internal/models"
)

// counterAccessors maps a badge requirement type to the stats counter it
// is checked against. Unknown types are skipped at evaluation time, so a
// bad catalog row can never break activity recording.
var counterAccessors = map[string]func(*models.UserStats) int{
	models.ReqExplanationsCount: func(s *models.UserStats) int { return s.ExplanationsRequested },
	models.ReqQuizzesCompleted:  func(s *models.UserStats) int { return s.QuizzesCompleted },
	models.ReqQuizzesPassed:     func(s *models.UserStats) int { return s.QuizzesPassed },
	models.ReqFlashcardsStudied: func(s *models.UserStats) int { return s.FlashcardsStudied },
	models.ReqStreakDays:        func(s *models.UserStats) int { return s.CurrentStreak },
	models.ReqTotalXP:           func(s *models.UserStats) int { return s.TotalXP },
	models.ReqLevel:             func(s *models.UserStats) int { return s.Level },
	models.ReqFocusSessions:     func(s *models.UserStats) int { return s.FocusSessionsCompleted },
}

// CounterValue returns the stats counter a badge is keyed on, and whether
// its requirement type is known.
func CounterValue(requirementType string, stats *models.UserStats) (int, bool) {
	accessor, ok := counterAccessors[requirementType]
	if !ok {
		return 0, false
	}
	return accessor(stats), true
}

// BadgeProgress returns how far along a user is toward a badge, as a
// percentage capped at 100.
func BadgeProgress(badge models.Badge, stats *models.UserStats) float64 {
	if badge.RequirementValue <= 0 {
		return 100
	}
	value, ok := CounterValue(badge.RequirementType, stats)
	if !ok {
		return 0
	}
	progress := float64(value) / float64(badge.RequirementValue) * 100
	if progress > 100 {
		return 100
	}
	return progress
}

// runUnlockPasses evaluates the catalog against stats repeatedly, applying
// each won badge's XP reward, until a pass unlocks nothing: reward XP can
// push TOTAL_XP or LEVEL badges over their own thresholds within the same
// event. insert records the unlock and reports whether this event won the
// row (a concurrent event may have inserted it first). Returns the freshly
// won badges and whether any reward crossed a level threshold.
func runUnlockPasses(catalog []models.Badge, stats *models.UserStats, unlocked map[int64]bool, insert func(b models.Badge, progressAtUnlock int) (bool, error)) ([]models.BadgeSummary, bool, error) {
	newBadges := []models.BadgeSummary{}
	leveledUp := false
	for {
		eligible := EligibleBadges(catalog, stats, unlocked)
		if len(eligible) == 0 {
			break
		}
		for _, b := range eligible {
			value, _ := CounterValue(b.RequirementType, stats)
			inserted, err := insert(b, value)
			if err != nil {
				return nil, false, err
			}
			unlocked[b.ID] = true
			if !inserted {
				continue
			}
			if b.XPReward > 0 {
				up, err := AddXP(stats, b.XPReward)
				if err != nil {
					return nil, false, err
				}
				leveledUp = leveledUp || up
			}
			newBadges = append(newBadges, models.BadgeSummary{
				Name:        b.Name,
				Icon:        b.Icon,
				Description: b.Description,
				XPReward:    b.XPReward,
			})
		}
	}
	return newBadges, leveledUp, nil
}

// EligibleBadges returns the active catalog badges whose requirement is
// met by stats and that are not already in the unlocked set. Catalog rows
// with an unknown requirement type or non-positive threshold are logged
// and skipped.
func EligibleBadges(badges []models.Badge, stats *models.UserStats, unlocked map[int64]bool) []models.Badge {
	var eligible []models.Badge
	for _, b := range badges {
		if unlocked[b.ID] {
			continue
		}
		if b.RequirementValue <= 0 {
			log.Printf("[gamification] skipping badge %s: bad requirement value %d", b.Code, b.RequirementValue)
			continue
		}
		value, ok := CounterValue(b.RequirementType, stats)
		if !ok {
			log.Printf("[gamification] skipping badge %s: unknown requirement type %q", b.Code, b.RequirementType)
			continue
		}
		if value >= b.RequirementValue {
			eligible = append(eligible, b)
		}
	}
	return eligible
}
