package explanations

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/studybuddy/backend/internal/gamification"
	"github.com/studybuddy/backend/internal/generator"
	"github.com/studybuddy/backend/internal/models"
)

type Service struct {
	store *Store
	gen   *generator.Generator
	game  *gamification.Service
}

func NewService(store *Store, gen *generator.Generator, game *gamification.Service) *Service {
	return &Service{store: store, gen: gen, game: game}
}

// Explain generates, stores, and credits a topic explanation. The
// gamification result rides along in the response; a failure there does
// not lose the stored explanation.
func (s *Service) Explain(ctx context.Context, userID int64, req models.ExplainRequest) (*models.ExplainResponse, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", gamification.ErrInvalidInput)
	}

	content, _, err := s.gen.GenerateExplanation(ctx, topic, req.Subject, req.Level)
	if err != nil {
		return nil, err
	}

	e := models.Explanation{
		UserID:  userID,
		Topic:   topic,
		Subject: strings.TrimSpace(req.Subject),
		Level:   generator.NormalizeLevel(req.Level),
		Content: content,
	}
	if err := s.store.Insert(&e); err != nil {
		return nil, err
	}

	result, err := s.game.RecordExplanation(userID, e.Topic, e.Subject)
	if err != nil {
		log.Printf("[explanations] activity credit failed for user=%d: %v", userID, err)
	}

	return &models.ExplainResponse{Explanation: e, Gamification: result}, nil
}

func (s *Service) History(userID int64, limit int) ([]models.Explanation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.ListForUser(userID, limit)
}
