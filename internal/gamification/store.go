package gamification

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/studybuddy/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const statsColumns = `user_id, total_xp, weekly_xp, monthly_xp, level, xp_for_next_level,
	explanations_requested, quizzes_completed, quizzes_passed, flashcards_studied,
	focus_sessions_completed, total_study_time_minutes,
	current_streak, longest_streak, last_activity_date, created_at, updated_at`

func scanStats(row interface{ Scan(...interface{}) error }) (*models.UserStats, error) {
	var s models.UserStats
	err := row.Scan(&s.UserID, &s.TotalXP, &s.WeeklyXP, &s.MonthlyXP, &s.Level, &s.XPForNextLevel,
		&s.ExplanationsRequested, &s.QuizzesCompleted, &s.QuizzesPassed, &s.FlashcardsStudied,
		&s.FocusSessionsCompleted, &s.TotalStudyTimeMinutes,
		&s.CurrentStreak, &s.LongestStreak, &s.LastActivityDate, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ── Stats Row ───────────────────────────────────────────

// GetOrCreateStats lazily creates the zero-valued stats row on first touch.
func (s *Store) GetOrCreateStats(userID int64) (*models.UserStats, error) {
	if err := s.ensureStatsRow(s.db, userID); err != nil {
		return nil, err
	}
	stats, err := scanStats(s.db.QueryRow(
		`SELECT `+statsColumns+` FROM user_stats WHERE user_id = $1`, userID))
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return stats, nil
}

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func (s *Store) ensureStatsRow(ex execer, userID int64) error {
	_, err := ex.Exec(
		`INSERT INTO user_stats (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "violates foreign key") {
			return ErrUserNotFound
		}
		return fmt.Errorf("upsert stats: %w", err)
	}
	return nil
}

// WithUserStats runs fn against the user's stats row locked for the
// duration of a transaction, then persists any mutation fn made. This is
// the per-user serialization point: concurrent activity events for the
// same user queue up on the row lock.
func (s *Store) WithUserStats(userID int64, fn func(tx *sql.Tx, stats *models.UserStats) error) error {
	if err := s.ensureStatsRow(s.db, userID); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stats, err := scanStats(tx.QueryRow(
		`SELECT `+statsColumns+` FROM user_stats WHERE user_id = $1 FOR UPDATE`, userID))
	if err != nil {
		return fmt.Errorf("lock stats: %w", err)
	}

	if err := fn(tx, stats); err != nil {
		return err
	}

	_, err = tx.Exec(
		`UPDATE user_stats SET
		    total_xp = $2, weekly_xp = $3, monthly_xp = $4, level = $5, xp_for_next_level = $6,
		    explanations_requested = $7, quizzes_completed = $8, quizzes_passed = $9,
		    flashcards_studied = $10, focus_sessions_completed = $11, total_study_time_minutes = $12,
		    current_streak = $13, longest_streak = $14, last_activity_date = $15,
		    updated_at = NOW()
		 WHERE user_id = $1`,
		userID, stats.TotalXP, stats.WeeklyXP, stats.MonthlyXP, stats.Level, stats.XPForNextLevel,
		stats.ExplanationsRequested, stats.QuizzesCompleted, stats.QuizzesPassed,
		stats.FlashcardsStudied, stats.FocusSessionsCompleted, stats.TotalStudyTimeMinutes,
		stats.CurrentStreak, stats.LongestStreak, stats.LastActivityDate,
	)
	if err != nil {
		return fmt.Errorf("update stats: %w", err)
	}

	return tx.Commit()
}

// ── Badges ──────────────────────────────────────────────

const badgeColumns = `id, code, name, description, icon, color, category, rarity,
	requirement_type, requirement_value, xp_reward, is_active, created_at`

func scanBadges(rows *sql.Rows) ([]models.Badge, error) {
	var badges []models.Badge
	for rows.Next() {
		var b models.Badge
		if err := rows.Scan(&b.ID, &b.Code, &b.Name, &b.Description, &b.Icon, &b.Color,
			&b.Category, &b.Rarity, &b.RequirementType, &b.RequirementValue,
			&b.XPReward, &b.IsActive, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// ActiveBadgesTx loads the active badge catalog inside the activity
// transaction.
func (s *Store) ActiveBadgesTx(tx *sql.Tx) ([]models.Badge, error) {
	rows, err := tx.Query(`SELECT ` + badgeColumns + ` FROM badges WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("get active badges: %w", err)
	}
	defer rows.Close()
	return scanBadges(rows)
}

func (s *Store) UnlockedBadgeIDsTx(tx *sql.Tx, userID int64) (map[int64]bool, error) {
	rows, err := tx.Query(`SELECT badge_id FROM user_badges WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("get unlocked badges: %w", err)
	}
	defer rows.Close()

	unlocked := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		unlocked[id] = true
	}
	return unlocked, rows.Err()
}

// InsertUnlockTx records a badge unlock. Returns false when another
// transaction already unlocked it (the unique constraint absorbs the race).
func (s *Store) InsertUnlockTx(tx *sql.Tx, userID, badgeID int64, progressAtUnlock int) (bool, error) {
	result, err := tx.Exec(
		`INSERT INTO user_badges (user_id, badge_id, progress_at_unlock)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, badge_id) DO NOTHING`,
		userID, badgeID, progressAtUnlock,
	)
	if err != nil {
		return false, fmt.Errorf("insert unlock: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// GetUserBadges returns the catalog annotated with the user's unlock state.
// filter: "all", "unlocked", or "new".
func (s *Store) GetUserBadges(userID int64, filter string, stats *models.UserStats) ([]models.BadgeResponse, error) {
	rows, err := s.db.Query(
		`SELECT b.id, b.code, b.name, b.description, b.icon, b.color, b.category, b.rarity,
		        b.requirement_type, b.requirement_value, b.xp_reward,
		        ub.unlocked_at, COALESCE(ub.is_new, false)
		 FROM badges b
		 LEFT JOIN user_badges ub ON ub.badge_id = b.id AND ub.user_id = $1
		 WHERE b.is_active
		 ORDER BY b.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get user badges: %w", err)
	}
	defer rows.Close()

	responses := []models.BadgeResponse{}
	for rows.Next() {
		var r models.BadgeResponse
		var b models.Badge
		var unlockedAt *time.Time
		if err := rows.Scan(&r.ID, &r.Code, &r.Name, &r.Description, &r.Icon, &r.Color,
			&r.Category, &r.Rarity, &b.RequirementType, &b.RequirementValue, &r.XPReward,
			&unlockedAt, &r.IsNew); err != nil {
			return nil, fmt.Errorf("scan badge response: %w", err)
		}
		r.Unlocked = unlockedAt != nil
		r.UnlockedAt = unlockedAt
		if r.Unlocked {
			r.Progress = 100
		} else {
			r.Progress = BadgeProgress(b, stats)
		}

		switch filter {
		case "unlocked":
			if !r.Unlocked {
				continue
			}
		case "new":
			if !r.IsNew {
				continue
			}
		}
		responses = append(responses, r)
	}
	return responses, rows.Err()
}

func (s *Store) MarkAllBadgesSeen(userID int64) error {
	_, err := s.db.Exec(
		`UPDATE user_badges SET is_new = false WHERE user_id = $1 AND is_new`,
		userID,
	)
	return err
}

func (s *Store) CountUnlocked(userID int64) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM user_badges WHERE user_id = $1`, userID,
	).Scan(&count)
	return count, err
}

// ── Leaderboards ────────────────────────────────────────

// metricOrder whitelists the ORDER BY clause per metric; anything else is
// rejected with ErrUnsupportedMetric before touching the database.
var metricOrder = map[string]string{
	models.MetricXP:       "s.total_xp DESC",
	models.MetricWeeklyXP: "s.weekly_xp DESC",
	models.MetricStreak:   "s.current_streak DESC",
	models.MetricLevel:    "s.level DESC, s.total_xp DESC",
}

var metricValue = map[string]string{
	models.MetricXP:       "s.total_xp",
	models.MetricWeeklyXP: "s.weekly_xp",
	models.MetricStreak:   "s.current_streak",
	models.MetricLevel:    "s.level",
}

func (s *Store) Leaderboard(metric string, limit int) ([]models.LeaderboardEntry, error) {
	order, ok := metricOrder[metric]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMetric, metric)
	}

	rows, err := s.db.Query(
		`SELECT u.id, u.name, COALESCE(u.username, ''), `+metricValue[metric]+`, s.level,
		        ROW_NUMBER() OVER (ORDER BY `+order+`) as rank
		 FROM user_stats s
		 JOIN users u ON u.id = s.user_id
		 ORDER BY `+order+`
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		var fullName string
		if err := rows.Scan(&e.UserID, &fullName, &e.Username, &e.Value, &e.Level, &e.Rank); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		e.DisplayName = models.User{Name: fullName}.DisplayName()
		e.Metric = metric
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Rank returns the user's 1-based position in the full metric ordering,
// or 0 when the user has no stats row.
func (s *Store) Rank(userID int64, metric string) (int, error) {
	order, ok := metricOrder[metric]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedMetric, metric)
	}

	var rank int
	err := s.db.QueryRow(
		`SELECT COALESCE(
		    (SELECT rank FROM (
		        SELECT s.user_id, ROW_NUMBER() OVER (ORDER BY `+order+`) as rank
		        FROM user_stats s
		    ) r WHERE r.user_id = $1),
		    0
		)`,
		userID,
	).Scan(&rank)
	return rank, err
}

// ── Scheduler Support ───────────────────────────────────

func (s *Store) ResetWeeklyXP() (int64, error) {
	result, err := s.db.Exec(
		`UPDATE user_stats SET weekly_xp = 0, updated_at = NOW() WHERE weekly_xp <> 0`,
	)
	if err != nil {
		return 0, fmt.Errorf("reset weekly xp: %w", err)
	}
	return result.RowsAffected()
}

func (s *Store) ResetMonthlyXP() (int64, error) {
	result, err := s.db.Exec(
		`UPDATE user_stats SET monthly_xp = 0, updated_at = NOW() WHERE monthly_xp <> 0`,
	)
	if err != nil {
		return 0, fmt.Errorf("reset monthly xp: %w", err)
	}
	return result.RowsAffected()
}

// StaleStreaks returns users whose streak is live but whose last activity
// predates today. The external scheduler decides what to do with them.
func (s *Store) StaleStreaks(today time.Time) ([]models.StaleStreak, error) {
	rows, err := s.db.Query(
		`SELECT user_id, current_streak, last_activity_date
		 FROM user_stats
		 WHERE current_streak > 0 AND last_activity_date < $1
		 ORDER BY last_activity_date`,
		truncateToDay(today),
	)
	if err != nil {
		return nil, fmt.Errorf("get stale streaks: %w", err)
	}
	defer rows.Close()

	stale := []models.StaleStreak{}
	for rows.Next() {
		var st models.StaleStreak
		if err := rows.Scan(&st.UserID, &st.CurrentStreak, &st.LastActivityDate); err != nil {
			return nil, err
		}
		stale = append(stale, st)
	}
	return stale, rows.Err()
}
