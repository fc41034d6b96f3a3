package quizzes

import (
	"testing"

	"github.com/studybuddy/backend/internal/models"
)

func questionsWithAnswers(correct ...int) []models.QuizQuestion {
	qs := make([]models.QuizQuestion, len(correct))
	for i, c := range correct {
		qs[i] = models.QuizQuestion{CorrectIndex: c}
	}
	return qs
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name        string
		correct     []int
		answers     []int
		wantCorrect int
		wantScore   int
	}{
		{"all right", []int{0, 1, 2}, []int{0, 1, 2}, 3, 100},
		{"all wrong", []int{0, 1, 2}, []int{1, 2, 3}, 0, 0},
		{"two of three floors to 66", []int{0, 1, 2}, []int{0, 1, 0}, 2, 66},
		{"unanswered counts wrong", []int{0, 1}, []int{0, -1}, 1, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, score := grade(questionsWithAnswers(tt.correct...), tt.answers)
			if correct != tt.wantCorrect || score != tt.wantScore {
				t.Errorf("grade = (%d, %d), want (%d, %d)", correct, score, tt.wantCorrect, tt.wantScore)
			}
		})
	}
}

func TestPassingThreshold(t *testing.T) {
	// 3/5 = 60 passes, 2/4 = 50 does not.
	_, score := grade(questionsWithAnswers(0, 0, 0, 0, 0), []int{0, 0, 0, 1, 1})
	if score < PassingScore {
		t.Errorf("score %d should pass", score)
	}
	_, score = grade(questionsWithAnswers(0, 0, 0, 0), []int{0, 0, 1, 1})
	if score >= PassingScore {
		t.Errorf("score %d should not pass", score)
	}
}
