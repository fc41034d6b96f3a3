package flashcards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/studybuddy/backend/internal/gamification"
	"github.com/studybuddy/backend/internal/generator"
	"github.com/studybuddy/backend/internal/models"
)

var ErrDeckNotFound = errors.New("deck not found")

type Service struct {
	store *Store
	gen   *generator.Generator
	game  *gamification.Service
}

func NewService(store *Store, gen *generator.Generator, game *gamification.Service) *Service {
	return &Service{store: store, gen: gen, game: game}
}

func (s *Service) CreateDeck(userID int64, req models.CreateDeckRequest) (*models.FlashcardDeck, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: deck name is required", gamification.ErrInvalidInput)
	}

	deck := models.FlashcardDeck{
		UserID:      userID,
		Name:        name,
		Subject:     strings.TrimSpace(req.Subject),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.store.CreateDeck(&deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

func (s *Service) ListDecks(userID int64) ([]models.FlashcardDeck, error) {
	return s.store.ListDecks(userID)
}

func (s *Service) GetDeck(userID, deckID int64) (*models.FlashcardDeck, []models.Flashcard, error) {
	deck, err := s.store.GetDeck(userID, deckID)
	if err == sql.ErrNoRows {
		return nil, nil, ErrDeckNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	cards, err := s.store.ListCards(deckID)
	if err != nil {
		return nil, nil, err
	}
	return deck, cards, nil
}

func (s *Service) DeleteDeck(userID, deckID int64) error {
	err := s.store.DeleteDeck(userID, deckID)
	if err == sql.ErrNoRows {
		return ErrDeckNotFound
	}
	return err
}

// GenerateCards fills a deck with AI-generated cards.
func (s *Service) GenerateCards(ctx context.Context, userID, deckID int64, req models.GenerateCardsRequest) ([]models.Flashcard, error) {
	deck, err := s.store.GetDeck(userID, deckID)
	if err == sql.ErrNoRows {
		return nil, ErrDeckNotFound
	}
	if err != nil {
		return nil, err
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = deck.Name
	}
	count := req.Count
	if count <= 0 || count > 50 {
		count = 10
	}

	generated, _, err := s.gen.GenerateFlashcards(ctx, topic, deck.Subject, count)
	if err != nil {
		return nil, err
	}

	cards := make([]models.Flashcard, len(generated))
	for i, g := range generated {
		cards[i] = models.Flashcard{Front: g.Front, Back: g.Back}
	}
	if err := s.store.InsertCards(deckID, cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// Review applies a study session's per-card results and credits the
// activity with the number of cards actually reviewed.
func (s *Service) Review(userID, deckID int64, req models.ReviewSessionRequest) (*models.ReviewSessionResponse, error) {
	if len(req.Reviews) == 0 {
		return nil, fmt.Errorf("%w: no reviews in session", gamification.ErrInvalidInput)
	}

	if _, err := s.store.GetDeck(userID, deckID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrDeckNotFound
		}
		return nil, err
	}

	applied, err := s.store.ApplyReviews(deckID, req.Reviews)
	if err != nil {
		return nil, err
	}
	if applied == 0 {
		return nil, fmt.Errorf("%w: no cards matched the deck", gamification.ErrInvalidInput)
	}

	result, err := s.game.RecordFlashcardStudy(userID, applied)
	if err != nil {
		log.Printf("[flashcards] activity credit failed for user=%d deck=%d: %v", userID, deckID, err)
	}

	return &models.ReviewSessionResponse{CardsReviewed: applied, Gamification: result}, nil
}
