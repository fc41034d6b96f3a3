package models

import "time"

// ── Explanations ──────────────────────────────────────────

type Explanation struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Topic     string    `json:"topic"`
	Subject   string    `json:"subject"`
	Level     string    `json:"level"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ExplainRequest struct {
	Topic   string `json:"topic"`
	Subject string `json:"subject"`
	// Level adjusts the depth of the explanation: beginner,
	// intermediate, or advanced. Defaults to beginner.
	Level string `json:"level"`
}

type ExplainResponse struct {
	Explanation  Explanation     `json:"explanation"`
	Gamification *ActivityResult `json:"gamification,omitempty"`
}

// ── Quizzes ───────────────────────────────────────────────

type Quiz struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	Topic          string     `json:"topic"`
	Subject        string     `json:"subject"`
	Difficulty     string     `json:"difficulty"`
	TotalQuestions int        `json:"total_questions"`
	Score          *int       `json:"score,omitempty"`
	Passed         *bool      `json:"passed,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type QuizQuestion struct {
	ID           int64    `json:"id"`
	QuizID       int64    `json:"quiz_id"`
	Position     int      `json:"position"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// QuizQuestionPublic is the question shape served while a quiz is in
// progress: no correct index, no explanation.
type QuizQuestionPublic struct {
	ID       int64    `json:"id"`
	Position int      `json:"position"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

func (q QuizQuestion) Public() QuizQuestionPublic {
	return QuizQuestionPublic{ID: q.ID, Position: q.Position, Question: q.Question, Options: q.Options}
}

type GenerateQuizRequest struct {
	Topic        string `json:"topic"`
	Subject      string `json:"subject"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"num_questions"`
}

type QuizWithQuestions struct {
	Quiz      Quiz                 `json:"quiz"`
	Questions []QuizQuestionPublic `json:"questions"`
}

type SubmitQuizRequest struct {
	// Answers holds the selected option index per question, in
	// question position order. -1 marks an unanswered question.
	Answers []int `json:"answers"`
}

type QuizResult struct {
	QuizID         int64           `json:"quiz_id"`
	Score          int             `json:"score"`
	CorrectAnswers int             `json:"correct_answers"`
	TotalQuestions int             `json:"total_questions"`
	Passed         bool            `json:"passed"`
	Questions      []QuizQuestion  `json:"questions"`
	Gamification   *ActivityResult `json:"gamification,omitempty"`
}

// ── Flashcards ────────────────────────────────────────────

type FlashcardDeck struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	CardCount   int       `json:"card_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Flashcard struct {
	ID             int64      `json:"id"`
	DeckID         int64      `json:"deck_id"`
	Front          string     `json:"front"`
	Back           string     `json:"back"`
	TimesReviewed  int        `json:"times_reviewed"`
	TimesCorrect   int        `json:"times_correct"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type CreateDeckRequest struct {
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

type GenerateCardsRequest struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

type CardReview struct {
	CardID  int64 `json:"card_id"`
	Correct bool  `json:"correct"`
}

type ReviewSessionRequest struct {
	Reviews []CardReview `json:"reviews"`
}

type ReviewSessionResponse struct {
	CardsReviewed int             `json:"cards_reviewed"`
	Gamification  *ActivityResult `json:"gamification,omitempty"`
}
