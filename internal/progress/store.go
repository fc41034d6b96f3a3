package progress

import (
	"database/sql"
	"fmt"

	"github.com/studybuddy/backend/internal/models"
)

// Store maintains the per-(user, topic) learning aggregates. It satisfies
// the gamification service's ProgressRecorder interface.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// masteryLevel derives the mastery tier from the running average score.
func masteryLevel(averageScore float64) string {
	switch {
	case averageScore >= 90:
		return models.MasteryAdvanced
	case averageScore >= 70:
		return models.MasteryIntermediate
	default:
		return models.MasteryBeginner
	}
}

// RecordExplanation touches the topic row without changing quiz figures.
func (s *Store) RecordExplanation(userID int64, topic, subject string) error {
	_, err := s.db.Exec(
		`INSERT INTO user_progress (user_id, topic, subject, last_activity_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (user_id, topic) DO UPDATE SET
		    subject = EXCLUDED.subject,
		    last_activity_at = NOW(),
		    updated_at = NOW()`,
		userID, topic, subject,
	)
	if err != nil {
		return fmt.Errorf("record explanation progress: %w", err)
	}
	return nil
}

// RecordQuiz folds a quiz submission into the topic aggregates and
// recomputes the average score and mastery level.
func (s *Store) RecordQuiz(userID int64, topic, subject string, totalQuestions, correctAnswers, scorePercent int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO user_progress (user_id, topic, subject)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, topic) DO NOTHING`,
		userID, topic, subject,
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}

	var p models.UserProgress
	err = tx.QueryRow(
		`SELECT quizzes_taken, questions_answered, correct_answers
		 FROM user_progress WHERE user_id = $1 AND topic = $2 FOR UPDATE`,
		userID, topic,
	).Scan(&p.QuizzesTaken, &p.QuestionsAnswered, &p.CorrectAnswers)
	if err != nil {
		return fmt.Errorf("lock progress: %w", err)
	}

	p.QuizzesTaken++
	p.QuestionsAnswered += totalQuestions
	p.CorrectAnswers += correctAnswers

	average := 0.0
	if p.QuestionsAnswered > 0 {
		average = float64(p.CorrectAnswers) / float64(p.QuestionsAnswered) * 100
	}

	_, err = tx.Exec(
		`UPDATE user_progress SET
		    quizzes_taken = $3, questions_answered = $4, correct_answers = $5,
		    average_score = $6, mastery_level = $7, subject = $8,
		    last_activity_at = NOW(), updated_at = NOW()
		 WHERE user_id = $1 AND topic = $2`,
		userID, topic, p.QuizzesTaken, p.QuestionsAnswered, p.CorrectAnswers,
		average, masteryLevel(average), subject,
	)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}

	return tx.Commit()
}

// ListForUser returns all topic aggregates for a user, most recent first.
func (s *Store) ListForUser(userID int64) ([]models.UserProgress, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, topic, subject, quizzes_taken, questions_answered,
		        correct_answers, average_score, mastery_level, last_activity_at,
		        created_at, updated_at
		 FROM user_progress
		 WHERE user_id = $1
		 ORDER BY last_activity_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	entries := []models.UserProgress{}
	for rows.Next() {
		var p models.UserProgress
		if err := rows.Scan(&p.ID, &p.UserID, &p.Topic, &p.Subject, &p.QuizzesTaken,
			&p.QuestionsAnswered, &p.CorrectAnswers, &p.AverageScore, &p.MasteryLevel,
			&p.LastActivityAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		entries = append(entries, p)
	}
	return entries, rows.Err()
}
