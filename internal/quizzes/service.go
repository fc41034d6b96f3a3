package quizzes

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

// PassingScore is the minimum score percentage for a quiz to count as
// passed.
const PassingScore = 60

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrAlreadyCompleted = errors.New("quiz already completed")
)

type Service struct {
	store *Store
	gen   *generator.Generator
	game  *gamification.Service
}

func NewService(store *Store, gen *generator.Generator, game *gamification.Service) *Service {
	return &Service{store: store, gen: gen, game: game}
}

// Generate builds a new quiz from AI-generated questions and stores it
// unanswered.
func (s *Service) Generate(ctx context.Context, userID int64, req models.GenerateQuizRequest) (*models.QuizWithQuestions, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", gamification.ErrInvalidInput)
	}
	count := req.NumQuestions
	if count <= 0 || count > 20 {
		count = 5
	}

	generated, _, err := s.gen.GenerateQuiz(ctx, topic, req.Subject, req.Difficulty, count)
	if err != nil {
		return nil, err
	}

	quiz := models.Quiz{
		UserID:         userID,
		Topic:          topic,
		Subject:        strings.TrimSpace(req.Subject),
		Difficulty:     generator.NormalizeDifficulty(req.Difficulty),
		TotalQuestions: len(generated.Questions),
	}
	questions := make([]models.QuizQuestion, len(generated.Questions))
	for i, gq := range generated.Questions {
		questions[i] = models.QuizQuestion{
			Question:     gq.Question,
			Options:      gq.Options,
			CorrectIndex: gq.CorrectIndex,
			Explanation:  gq.Explanation,
		}
	}

	if err := s.store.CreateQuiz(&quiz, questions); err != nil {
		return nil, err
	}

	public := make([]models.QuizQuestionPublic, len(questions))
	for i, q := range questions {
		public[i] = q.Public()
	}
	return &models.QuizWithQuestions{Quiz: quiz, Questions: public}, nil
}

func (s *Service) Get(userID, quizID int64) (*models.QuizWithQuestions, error) {
	quiz, err := s.store.GetQuiz(userID, quizID)
	if err == sql.ErrNoRows {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	questions, err := s.store.GetQuestions(quizID)
	if err != nil {
		return nil, err
	}

	public := make([]models.QuizQuestionPublic, len(questions))
	for i, q := range questions {
		public[i] = q.Public()
	}
	return &models.QuizWithQuestions{Quiz: *quiz, Questions: public}, nil
}

func (s *Service) List(userID int64, limit int) ([]models.Quiz, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.ListForUser(userID, limit)
}

// grade counts correct answers and converts them to an integer score
// percentage (floor division, so 2/3 correct is 66).
func grade(questions []models.QuizQuestion, answers []int) (correct, score int) {
	for i, q := range questions {
		if answers[i] == q.CorrectIndex {
			correct++
		}
	}
	if len(questions) > 0 {
		score = correct * 100 / len(questions)
	}
	return correct, score
}

// Submit grades the answers, records the outcome, and credits the
// activity. Unanswered questions (-1) count as wrong.
func (s *Service) Submit(userID, quizID int64, req models.SubmitQuizRequest) (*models.QuizResult, error) {
	quiz, err := s.store.GetQuiz(userID, quizID)
	if err == sql.ErrNoRows {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	if quiz.CompletedAt != nil {
		return nil, ErrAlreadyCompleted
	}

	questions, err := s.store.GetQuestions(quizID)
	if err != nil {
		return nil, err
	}
	if len(req.Answers) != len(questions) {
		return nil, fmt.Errorf("%w: expected %d answers, got %d",
			gamification.ErrInvalidInput, len(questions), len(req.Answers))
	}

	correct, score := grade(questions, req.Answers)
	passed := score >= PassingScore

	completed, err := s.store.CompleteQuiz(quizID, score, passed)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, ErrAlreadyCompleted
	}

	result, err := s.game.RecordQuizCompletion(userID, passed, quiz.Topic, quiz.Subject, score, len(questions), correct)
	if err != nil {
		log.Printf("[quizzes] activity credit failed for user=%d quiz=%d: %v", userID, quizID, err)
	}

	return &models.QuizResult{
		QuizID:         quizID,
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: len(questions),
		Passed:         passed,
		Questions:      questions,
		Gamification:   result,
	}, nil
}
