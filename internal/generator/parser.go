package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

type GeneratedQuiz struct {
	Questions []GeneratedQuestion `json:"questions"`
}

type GeneratedQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

type GeneratedCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type flashcardBatch struct {
	Cards []GeneratedCard `json:"cards"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

func ParseQuizResponse(responseBody string) (*GeneratedQuiz, error) {
	cleaned := stripCodeFences(responseBody)

	var quiz GeneratedQuiz
	if err := json.Unmarshal([]byte(cleaned), &quiz); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateQuiz(&quiz); err != nil {
		return nil, err
	}

	return &quiz, nil
}

func ParseFlashcardResponse(responseBody string) ([]GeneratedCard, error) {
	cleaned := stripCodeFences(responseBody)

	var batch flashcardBatch
	if err := json.Unmarshal([]byte(cleaned), &batch); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateCards(batch.Cards); err != nil {
		return nil, err
	}

	return batch.Cards, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func validateQuiz(quiz *GeneratedQuiz) error {
	var errs []string

	if len(quiz.Questions) == 0 {
		return &ValidationError{Errors: []string{"no questions in response"}}
	}

	for i, q := range quiz.Questions {
		qNum := i + 1

		if strings.TrimSpace(q.Question) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty question text", qNum))
		}
		if len(q.Options) != 4 {
			errs = append(errs, fmt.Sprintf("question %d: expected 4 options, got %d", qNum, len(q.Options)))
			continue
		}
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				errs = append(errs, fmt.Sprintf("question %d: option %d is empty", qNum, j+1))
			}
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("question %d: correct_index %d out of range", qNum, q.CorrectIndex))
		}
		if strings.TrimSpace(q.Explanation) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty explanation", qNum))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func validateCards(cards []GeneratedCard) error {
	var errs []string

	if len(cards) == 0 {
		return &ValidationError{Errors: []string{"no cards in response"}}
	}

	for i, c := range cards {
		if strings.TrimSpace(c.Front) == "" {
			errs = append(errs, fmt.Sprintf("card %d: empty front", i+1))
		}
		if strings.TrimSpace(c.Back) == "" {
			errs = append(errs, fmt.Sprintf("card %d: empty back", i+1))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
