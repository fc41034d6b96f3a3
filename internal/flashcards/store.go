package flashcards

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

func (s *Store) CreateDeck(deck *models.FlashcardDeck) error {
	err := s.db.QueryRow(
		`INSERT INTO flashcard_decks (user_id, name, subject, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		deck.UserID, deck.Name, deck.Subject, deck.Description,
	).Scan(&deck.ID, &deck.CreatedAt, &deck.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert deck: %w", err)
	}
	return nil
}

func (s *Store) GetDeck(userID, deckID int64) (*models.FlashcardDeck, error) {
	var d models.FlashcardDeck
	err := s.db.QueryRow(
		`SELECT d.id, d.user_id, d.name, d.subject, d.description,
		        (SELECT COUNT(*) FROM flashcards c WHERE c.deck_id = d.id),
		        d.created_at, d.updated_at
		 FROM flashcard_decks d
		 WHERE d.id = $1 AND d.user_id = $2`,
		deckID, userID,
	).Scan(&d.ID, &d.UserID, &d.Name, &d.Subject, &d.Description,
		&d.CardCount, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) ListDecks(userID int64) ([]models.FlashcardDeck, error) {
	rows, err := s.db.Query(
		`SELECT d.id, d.user_id, d.name, d.subject, d.description,
		        (SELECT COUNT(*) FROM flashcards c WHERE c.deck_id = d.id),
		        d.created_at, d.updated_at
		 FROM flashcard_decks d
		 WHERE d.user_id = $1
		 ORDER BY d.updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	defer rows.Close()

	decks := []models.FlashcardDeck{}
	for rows.Next() {
		var d models.FlashcardDeck
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.Subject, &d.Description,
			&d.CardCount, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan deck: %w", err)
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

func (s *Store) DeleteDeck(userID, deckID int64) error {
	result, err := s.db.Exec(
		`DELETE FROM flashcard_decks WHERE id = $1 AND user_id = $2`,
		deckID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) InsertCards(deckID int64, cards []models.Flashcard) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for i := range cards {
		c := &cards[i]
		c.DeckID = deckID
		err = tx.QueryRow(
			`INSERT INTO flashcards (deck_id, front, back)
			 VALUES ($1, $2, $3)
			 RETURNING id, created_at`,
			deckID, c.Front, c.Back,
		).Scan(&c.ID, &c.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert card %d: %w", i+1, err)
		}
	}

	_, err = tx.Exec(`UPDATE flashcard_decks SET updated_at = NOW() WHERE id = $1`, deckID)
	if err != nil {
		return fmt.Errorf("touch deck: %w", err)
	}

	return tx.Commit()
}

func (s *Store) ListCards(deckID int64) ([]models.Flashcard, error) {
	rows, err := s.db.Query(
		`SELECT id, deck_id, front, back, times_reviewed, times_correct, last_reviewed_at, created_at
		 FROM flashcards WHERE deck_id = $1 ORDER BY id`,
		deckID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	cards := []models.Flashcard{}
	for rows.Next() {
		var c models.Flashcard
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.TimesReviewed,
			&c.TimesCorrect, &c.LastReviewedAt, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// ApplyReviews bumps per-card review counters for one study session.
// Cards outside the deck are ignored; returns how many were updated.
func (s *Store) ApplyReviews(deckID int64, reviews []models.CardReview) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	applied := 0
	for _, r := range reviews {
		correctInc := 0
		if r.Correct {
			correctInc = 1
		}
		result, err := tx.Exec(
			`UPDATE flashcards SET
			    times_reviewed = times_reviewed + 1,
			    times_correct = times_correct + $3,
			    last_reviewed_at = NOW()
			 WHERE id = $1 AND deck_id = $2`,
			r.CardID, deckID, correctInc,
		)
		if err != nil {
			return 0, fmt.Errorf("apply review: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows > 0 {
			applied++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return applied, nil
}
