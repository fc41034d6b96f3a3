package generator

import (
	"strings"
	"testing"
)

const validQuizJSON = `{
  "questions": [
    {
      "question": "What does a pointer hold?",
      "options": ["A value copy", "A memory address", "A type name", "A function"],
      "correct_index": 1,
      "explanation": "A pointer stores the address of a value, not the value itself."
    }
  ]
}`

func TestParseQuizResponseValid(t *testing.T) {
	quiz, err := ParseQuizResponse(validQuizJSON)
	if err != nil {
		t.Fatalf("ParseQuizResponse: %v", err)
	}
	if len(quiz.Questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(quiz.Questions))
	}
	q := quiz.Questions[0]
	if q.CorrectIndex != 1 || len(q.Options) != 4 {
		t.Errorf("question = %+v", q)
	}
}

func TestParseQuizResponseStripsFences(t *testing.T) {
	fenced := "```json\n" + validQuizJSON + "\n```"
	if _, err := ParseQuizResponse(fenced); err != nil {
		t.Fatalf("ParseQuizResponse with fences: %v", err)
	}
}

func TestParseQuizResponseRejectsBadShape(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"empty batch",
			`{"questions": []}`,
			"no questions",
		},
		{
			"wrong option count",
			`{"questions": [{"question":"q","options":["a","b"],"correct_index":0,"explanation":"e"}]}`,
			"expected 4 options",
		},
		{
			"correct index out of range",
			`{"questions": [{"question":"q","options":["a","b","c","d"],"correct_index":4,"explanation":"e"}]}`,
			"out of range",
		},
		{
			"missing explanation",
			`{"questions": [{"question":"q","options":["a","b","c","d"],"correct_index":0,"explanation":""}]}`,
			"empty explanation",
		},
		{
			"not json",
			`the model apologized instead of answering`,
			"failed to parse",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuizResponse(tt.body)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestParseFlashcardResponse(t *testing.T) {
	body := `{"cards":[{"front":"Goroutine","back":"A lightweight thread managed by the Go runtime."}]}`
	cards, err := ParseFlashcardResponse(body)
	if err != nil {
		t.Fatalf("ParseFlashcardResponse: %v", err)
	}
	if len(cards) != 1 || cards[0].Front != "Goroutine" {
		t.Errorf("cards = %+v", cards)
	}
}

func TestParseFlashcardResponseRejectsEmptySides(t *testing.T) {
	body := `{"cards":[{"front":"","back":"something"}]}`
	if _, err := ParseFlashcardResponse(body); err == nil || !strings.Contains(err.Error(), "empty front") {
		t.Errorf("err = %v, want empty front", err)
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := stripCodeFences(tt.input); got != tt.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMockClientOutputParses(t *testing.T) {
	if _, err := ParseQuizResponse(buildMockQuizJSON()); err != nil {
		t.Errorf("mock quiz JSON does not parse: %v", err)
	}
	if _, err := ParseFlashcardResponse(buildMockFlashcardJSON()); err != nil {
		t.Errorf("mock flashcard JSON does not parse: %v", err)
	}
}
