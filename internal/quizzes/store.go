package quizzes

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/studybuddy/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateQuiz inserts the quiz row and its questions atomically.
func (s *Store) CreateQuiz(quiz *models.Quiz, questions []models.QuizQuestion) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO quizzes (user_id, topic, subject, difficulty, total_questions)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		quiz.UserID, quiz.Topic, quiz.Subject, quiz.Difficulty, quiz.TotalQuestions,
	).Scan(&quiz.ID, &quiz.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}

	for i := range questions {
		q := &questions[i]
		q.QuizID = quiz.ID
		q.Position = i + 1
		err = tx.QueryRow(
			`INSERT INTO quiz_questions (quiz_id, position, question, options, correct_index, explanation)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			q.QuizID, q.Position, q.Question, pq.Array(q.Options), q.CorrectIndex, q.Explanation,
		).Scan(&q.ID)
		if err != nil {
			return fmt.Errorf("insert question %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetQuiz(userID, quizID int64) (*models.Quiz, error) {
	var q models.Quiz
	err := s.db.QueryRow(
		`SELECT id, user_id, topic, subject, difficulty, total_questions,
		        score, passed, completed_at, created_at
		 FROM quizzes WHERE id = $1 AND user_id = $2`,
		quizID, userID,
	).Scan(&q.ID, &q.UserID, &q.Topic, &q.Subject, &q.Difficulty, &q.TotalQuestions,
		&q.Score, &q.Passed, &q.CompletedAt, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *Store) GetQuestions(quizID int64) ([]models.QuizQuestion, error) {
	rows, err := s.db.Query(
		`SELECT id, quiz_id, position, question, options, correct_index, explanation
		 FROM quiz_questions WHERE quiz_id = $1 ORDER BY position`,
		quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	defer rows.Close()

	questions := []models.QuizQuestion{}
	for rows.Next() {
		var q models.QuizQuestion
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Position, &q.Question,
			pq.Array(&q.Options), &q.CorrectIndex, &q.Explanation); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *Store) ListForUser(userID int64, limit int) ([]models.Quiz, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, topic, subject, difficulty, total_questions,
		        score, passed, completed_at, created_at
		 FROM quizzes
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := []models.Quiz{}
	for rows.Next() {
		var q models.Quiz
		if err := rows.Scan(&q.ID, &q.UserID, &q.Topic, &q.Subject, &q.Difficulty,
			&q.TotalQuestions, &q.Score, &q.Passed, &q.CompletedAt, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// CompleteQuiz records the submission outcome. Returns false when the quiz
// was already completed — submissions are first-wins.
func (s *Store) CompleteQuiz(quizID int64, score int, passed bool) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE quizzes SET score = $2, passed = $3, completed_at = $4
		 WHERE id = $1 AND completed_at IS NULL`,
		quizID, score, passed, time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("complete quiz: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
