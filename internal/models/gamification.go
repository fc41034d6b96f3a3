package models

import "time"

// ── Badge Requirement Types ───────────────────────────────

// Requirement types name the UserStats counter a badge threshold is
// checked against. The gamification package maps these to accessors.
const (
	ReqExplanationsCount = "EXPLANATIONS_COUNT"
	ReqQuizzesCompleted  = "QUIZZES_COMPLETED"
	ReqQuizzesPassed     = "QUIZZES_PASSED"
	ReqFlashcardsStudied = "FLASHCARDS_STUDIED"
	ReqStreakDays        = "STREAK_DAYS"
	ReqTotalXP           = "TOTAL_XP"
	ReqLevel             = "LEVEL"
	ReqFocusSessions     = "FOCUS_SESSIONS"
)

// ── Leaderboard Metrics ───────────────────────────────────

const (
	MetricXP       = "XP"
	MetricWeeklyXP = "WEEKLY_XP"
	MetricStreak   = "STREAK"
	MetricLevel    = "LEVEL"
)

// ── Core Gamification Structs ─────────────────────────────

// UserStats is the single gamification row per user: XP counters, level,
// streaks, and activity counters. All counters are non-negative and only
// ever grow, except weekly/monthly XP which an external scheduler resets.
type UserStats struct {
	UserID                 int64      `json:"user_id"`
	TotalXP                int        `json:"total_xp"`
	WeeklyXP               int        `json:"weekly_xp"`
	MonthlyXP              int        `json:"monthly_xp"`
	Level                  int        `json:"level"`
	XPForNextLevel         int        `json:"xp_for_next_level"`
	ExplanationsRequested  int        `json:"explanations_requested"`
	QuizzesCompleted       int        `json:"quizzes_completed"`
	QuizzesPassed          int        `json:"quizzes_passed"`
	FlashcardsStudied      int        `json:"flashcards_studied"`
	FocusSessionsCompleted int        `json:"focus_sessions_completed"`
	TotalStudyTimeMinutes  int        `json:"total_study_time_minutes"`
	CurrentStreak          int        `json:"current_streak"`
	LongestStreak          int        `json:"longest_streak"`
	LastActivityDate       *time.Time `json:"last_activity_date"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// Badge is a catalog entry: an achievement unlocked once the counter named
// by RequirementType reaches RequirementValue.
type Badge struct {
	ID               int64     `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Icon             string    `json:"icon"`
	Color            string    `json:"color"`
	Category         string    `json:"category"`
	Rarity           string    `json:"rarity"`
	RequirementType  string    `json:"requirement_type"`
	RequirementValue int       `json:"requirement_value"`
	XPReward         int       `json:"xp_reward"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

// UserBadge is an unlock record. At most one exists per (user, badge);
// IsNew is the only field mutated after creation.
type UserBadge struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	BadgeID          int64     `json:"badge_id"`
	UnlockedAt       time.Time `json:"unlocked_at"`
	IsNew            bool      `json:"is_new"`
	ProgressAtUnlock int       `json:"progress_at_unlock"`
}

// ── Response Types ────────────────────────────────────────

// ActivityResult is returned from every activity-recording call. It is the
// only shape the quiz/flashcard/explanation/focus handlers depend on.
type ActivityResult struct {
	EventType  string         `json:"event_type"`
	XPEarned   int            `json:"xp_earned"`
	NewTotalXP int            `json:"new_total_xp"`
	NewLevel   int            `json:"new_level"`
	LeveledUp  bool           `json:"leveled_up"`
	NewBadges  []BadgeSummary `json:"new_badges"`
}

// BadgeSummary is the slim badge shape embedded in ActivityResult.
type BadgeSummary struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	XPReward    int    `json:"xp_reward"`
}

type UserStatsResponse struct {
	UserID                 int64   `json:"user_id"`
	TotalXP                int     `json:"total_xp"`
	WeeklyXP               int     `json:"weekly_xp"`
	MonthlyXP              int     `json:"monthly_xp"`
	Level                  int     `json:"level"`
	LevelProgress          float64 `json:"level_progress"`
	XPForNextLevel         int     `json:"xp_for_next_level"`
	CurrentStreak          int     `json:"current_streak"`
	LongestStreak          int     `json:"longest_streak"`
	ExplanationsRequested  int     `json:"explanations_requested"`
	QuizzesCompleted       int     `json:"quizzes_completed"`
	QuizzesPassed          int     `json:"quizzes_passed"`
	FlashcardsStudied      int     `json:"flashcards_studied"`
	FocusSessionsCompleted int     `json:"focus_sessions_completed"`
	TotalStudyTimeMinutes  int     `json:"total_study_time_minutes"`
	BadgesUnlocked         int     `json:"badges_unlocked"`
}

type BadgeResponse struct {
	ID          int64      `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Color       string     `json:"color"`
	Category    string     `json:"category"`
	Rarity      string     `json:"rarity"`
	XPReward    int        `json:"xp_reward"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
	IsNew       bool       `json:"is_new,omitempty"`
	Progress    float64    `json:"progress"`
}

// LeaderboardEntry is computed fresh from user_stats on each query. Rank is
// the 1-based position in the sort order; ties keep distinct ranks.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
	Username    string `json:"username"`
	Value       int    `json:"value"`
	Level       int    `json:"level"`
	Metric      string `json:"metric"`
}

// StaleStreak identifies a user whose streak should be broken by the
// external scheduler: last activity before today with a live streak.
type StaleStreak struct {
	UserID           int64     `json:"user_id"`
	CurrentStreak    int       `json:"current_streak"`
	LastActivityDate time.Time `json:"last_activity_date"`
}

// ── Request Types ─────────────────────────────────────────

type FocusSessionRequest struct {
	DurationMinutes int `json:"duration_minutes"`
	// XPEarned optionally overrides the backend formula when positive.
	XPEarned int `json:"xp_earned,omitempty"`
}
