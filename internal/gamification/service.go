package gamification

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/studybuddy/backend/internal/cache"
	"github.com/studybuddy/backend/internal/models"
)

// ProgressRecorder receives per-topic learning aggregates from activity
// events. It lives outside the engine's transaction: a failure here is
// logged, never propagated.
type ProgressRecorder interface {
	RecordExplanation(userID int64, topic, subject string) error
	RecordQuiz(userID int64, topic, subject string, totalQuestions, correctAnswers, scorePercent int) error
}

const leaderboardCacheTTL = 30 * time.Second

type Service struct {
	store    *Store
	cache    cache.Cache
	progress ProgressRecorder
}

func NewService(store *Store, c cache.Cache, progress ProgressRecorder) *Service {
	return &Service{store: store, cache: c, progress: progress}
}

// ── Activity Recording ──────────────────────────────────

// record is the single path every activity event goes through: inside the
// locked stats transaction it applies the event's counter increments,
// advances the streak, awards XP, and evaluates badge unlocks.
func (s *Service) record(userID int64, eventType string, apply func(stats *models.UserStats) (int, error)) (*models.ActivityResult, error) {
	result := &models.ActivityResult{EventType: eventType, NewBadges: []models.BadgeSummary{}}

	err := s.store.WithUserStats(userID, func(tx *sql.Tx, stats *models.UserStats) error {
		xp, err := apply(stats)
		if err != nil {
			return err
		}

		UpdateStreak(stats, time.Now().UTC())

		leveledUp, err := AddXP(stats, xp)
		if err != nil {
			return err
		}
		result.XPEarned = xp
		result.LeveledUp = leveledUp

		newBadges, badgeLevelUp, err := s.evaluateBadges(tx, userID, stats)
		if err != nil {
			return err
		}
		result.NewBadges = newBadges
		result.LeveledUp = result.LeveledUp || badgeLevelUp

		result.NewTotalXP = stats.TotalXP
		result.NewLevel = stats.Level
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[gamification] user=%d event=%s xp=%d level=%d badges=%d",
		userID, eventType, result.XPEarned, result.NewLevel, len(result.NewBadges))
	return result, nil
}

// evaluateBadges runs the unlock passes against the catalog and unlock set
// loaded inside the activity transaction.
func (s *Service) evaluateBadges(tx *sql.Tx, userID int64, stats *models.UserStats) ([]models.BadgeSummary, bool, error) {
	catalog, err := s.store.ActiveBadgesTx(tx)
	if err != nil {
		return nil, false, err
	}
	unlocked, err := s.store.UnlockedBadgeIDsTx(tx, userID)
	if err != nil {
		return nil, false, err
	}

	return runUnlockPasses(catalog, stats, unlocked, func(b models.Badge, progressAtUnlock int) (bool, error) {
		inserted, err := s.store.InsertUnlockTx(tx, userID, b.ID, progressAtUnlock)
		if inserted {
			log.Printf("[gamification] user=%d unlocked badge %s", userID, b.Code)
		}
		return inserted, err
	})
}

func (s *Service) RecordExplanation(userID int64, topic, subject string) (*models.ActivityResult, error) {
	result, err := s.record(userID, "explanation", func(stats *models.UserStats) (int, error) {
		stats.ExplanationsRequested++
		return XPExplanation, nil
	})
	if err != nil {
		return nil, err
	}
	s.recordProgress(userID, topic, func() error {
		return s.progress.RecordExplanation(userID, topic, subject)
	})
	return result, nil
}

func (s *Service) RecordQuizCompletion(userID int64, passed bool, topic, subject string, scorePercent, totalQuestions, correctAnswers int) (*models.ActivityResult, error) {
	if scorePercent < 0 || totalQuestions < 0 || correctAnswers < 0 {
		return nil, fmt.Errorf("%w: negative quiz figures", ErrInvalidInput)
	}
	result, err := s.record(userID, "quiz", func(stats *models.UserStats) (int, error) {
		stats.QuizzesCompleted++
		xp := XPQuizCompleted
		if passed {
			stats.QuizzesPassed++
			xp += XPQuizPassedBonus
		}
		return xp, nil
	})
	if err != nil {
		return nil, err
	}
	s.recordProgress(userID, topic, func() error {
		return s.progress.RecordQuiz(userID, topic, subject, totalQuestions, correctAnswers, scorePercent)
	})
	return result, nil
}

func (s *Service) RecordFlashcardStudy(userID int64, cardsStudied int) (*models.ActivityResult, error) {
	if cardsStudied <= 0 {
		return nil, fmt.Errorf("%w: cards studied must be positive", ErrInvalidInput)
	}
	return s.record(userID, "flashcards", func(stats *models.UserStats) (int, error) {
		stats.FlashcardsStudied += cardsStudied
		return cardsStudied * XPPerFlashcard, nil
	})
}

func (s *Service) RecordFocusSession(userID int64, durationMinutes, xpOverride int) (*models.ActivityResult, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	if xpOverride < 0 {
		return nil, fmt.Errorf("%w: negative xp override", ErrInvalidInput)
	}
	return s.record(userID, "focus_session", func(stats *models.UserStats) (int, error) {
		stats.FocusSessionsCompleted++
		stats.TotalStudyTimeMinutes += durationMinutes
		return FocusSessionXP(durationMinutes, xpOverride), nil
	})
}

// recordProgress forwards topic aggregates after the activity committed.
func (s *Service) recordProgress(userID int64, topic string, fn func() error) {
	if s.progress == nil || strings.TrimSpace(topic) == "" {
		return
	}
	if err := fn(); err != nil {
		log.Printf("[gamification] progress update failed for user=%d topic=%q: %v", userID, topic, err)
	}
}

// ── Reads ───────────────────────────────────────────────

func (s *Service) GetStats(userID int64) (*models.UserStatsResponse, error) {
	stats, err := s.store.GetOrCreateStats(userID)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.store.CountUnlocked(userID)
	if err != nil {
		return nil, err
	}

	return &models.UserStatsResponse{
		UserID:                 stats.UserID,
		TotalXP:                stats.TotalXP,
		WeeklyXP:               stats.WeeklyXP,
		MonthlyXP:              stats.MonthlyXP,
		Level:                  stats.Level,
		LevelProgress:          LevelProgress(stats),
		XPForNextLevel:         stats.XPForNextLevel,
		CurrentStreak:          stats.CurrentStreak,
		LongestStreak:          stats.LongestStreak,
		ExplanationsRequested:  stats.ExplanationsRequested,
		QuizzesCompleted:       stats.QuizzesCompleted,
		QuizzesPassed:          stats.QuizzesPassed,
		FlashcardsStudied:      stats.FlashcardsStudied,
		FocusSessionsCompleted: stats.FocusSessionsCompleted,
		TotalStudyTimeMinutes:  stats.TotalStudyTimeMinutes,
		BadgesUnlocked:         unlocked,
	}, nil
}

func (s *Service) GetBadges(userID int64, filter string) ([]models.BadgeResponse, error) {
	stats, err := s.store.GetOrCreateStats(userID)
	if err != nil {
		return nil, err
	}
	return s.store.GetUserBadges(userID, filter, stats)
}

func (s *Service) MarkBadgesSeen(userID int64) error {
	return s.store.MarkAllBadgesSeen(userID)
}

// NormalizeMetric maps the URL metric segment onto the canonical metric
// names, accepting a few aliases.
func NormalizeMetric(metric string) string {
	switch strings.ToUpper(strings.TrimSpace(metric)) {
	case "XP", "TOTAL_XP", "TOTAL":
		return models.MetricXP
	case "WEEKLY_XP", "WEEKLY":
		return models.MetricWeeklyXP
	case "STREAK", "STREAK_DAYS":
		return models.MetricStreak
	case "LEVEL":
		return models.MetricLevel
	default:
		return strings.ToUpper(strings.TrimSpace(metric))
	}
}

func (s *Service) Leaderboard(ctx context.Context, metric string, limit int) ([]models.LeaderboardEntry, error) {
	metric = NormalizeMetric(metric)
	if _, ok := metricOrder[metric]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMetric, metric)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	key := fmt.Sprintf("leaderboard:%s:%d", metric, limit)
	var cached []models.LeaderboardEntry
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	entries, err := s.store.Leaderboard(metric, limit)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, key, entries, leaderboardCacheTTL)
	return entries, nil
}

func (s *Service) Rank(userID int64, metric string) (int, error) {
	return s.store.Rank(userID, NormalizeMetric(metric))
}

// ── Scheduler Entry Points ──────────────────────────────

func (s *Service) ResetWeeklyXP() (int64, error) {
	n, err := s.store.ResetWeeklyXP()
	if err == nil {
		log.Printf("[gamification] weekly xp reset: %d rows", n)
	}
	return n, err
}

func (s *Service) ResetMonthlyXP() (int64, error) {
	n, err := s.store.ResetMonthlyXP()
	if err == nil {
		log.Printf("[gamification] monthly xp reset: %d rows", n)
	}
	return n, err
}

func (s *Service) StaleStreaks(today time.Time) ([]models.StaleStreak, error) {
	return s.store.StaleStreaks(today)
}
