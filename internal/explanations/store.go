package explanations

import (
	"database/sql"
	"fmt"

	"github.com/studybuddy/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(e *models.Explanation) error {
	err := s.db.QueryRow(
		`INSERT INTO explanations (user_id, topic, subject, level, content)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		e.UserID, e.Topic, e.Subject, e.Level, e.Content,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert explanation: %w", err)
	}
	return nil
}

func (s *Store) Get(userID, id int64) (*models.Explanation, error) {
	var e models.Explanation
	err := s.db.QueryRow(
		`SELECT id, user_id, topic, subject, level, content, created_at
		 FROM explanations WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&e.ID, &e.UserID, &e.Topic, &e.Subject, &e.Level, &e.Content, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) ListForUser(userID int64, limit int) ([]models.Explanation, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, topic, subject, level, content, created_at
		 FROM explanations
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list explanations: %w", err)
	}
	defer rows.Close()

	entries := []models.Explanation{}
	for rows.Next() {
		var e models.Explanation
		if err := rows.Scan(&e.ID, &e.UserID, &e.Topic, &e.Subject, &e.Level, &e.Content, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan explanation: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
