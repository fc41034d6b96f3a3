package models

import "time"

// UserProgress is the per-(user, topic) learning aggregate. Average score
// and mastery level are recomputed on every quiz submission.
type UserProgress struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	Topic             string    `json:"topic"`
	Subject           string    `json:"subject"`
	QuizzesTaken      int       `json:"quizzes_taken"`
	QuestionsAnswered int       `json:"questions_answered"`
	CorrectAnswers    int       `json:"correct_answers"`
	AverageScore      float64   `json:"average_score"`
	MasteryLevel      string    `json:"mastery_level"`
	LastActivityAt    time.Time `json:"last_activity_at"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

const (
	MasteryBeginner     = "beginner"
	MasteryIntermediate = "intermediate"
	MasteryAdvanced     = "advanced"
)
