package generator

import (
	"strings"
	"testing"
)

func TestNormalizeLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"beginner", "beginner"},
		{"Advanced", "advanced"},
		{"  intermediate ", "intermediate"},
		{"expert", "beginner"},
		{"", "beginner"},
	}
	for _, tt := range tests {
		if got := NormalizeLevel(tt.input); got != tt.want {
			t.Errorf("NormalizeLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeDifficulty(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"easy", "easy"},
		{"HARD", "hard"},
		{"impossible", "medium"},
		{"", "medium"},
	}
	for _, tt := range tests {
		if got := NormalizeDifficulty(tt.input); got != tt.want {
			t.Errorf("NormalizeDifficulty(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildExplanationUserPrompt(t *testing.T) {
	prompt := BuildExplanationUserPrompt("recursion", "computer science", "advanced")

	for _, want := range []string{"recursion", "computer science", "advanced", "edge cases"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildExplanationUserPromptDefaultsLevel(t *testing.T) {
	prompt := BuildExplanationUserPrompt("recursion", "", "unknown-level")
	if !strings.Contains(prompt, "beginner") {
		t.Errorf("prompt should fall back to beginner:\n%s", prompt)
	}
	if strings.Contains(prompt, "subject area") {
		t.Errorf("empty subject should be omitted:\n%s", prompt)
	}
}

func TestBuildQuizUserPrompt(t *testing.T) {
	prompt := BuildQuizUserPrompt("photosynthesis", "biology", "hard", 5)

	for _, want := range []string{"5", "hard", "photosynthesis", "biology"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildFlashcardUserPrompt(t *testing.T) {
	prompt := BuildFlashcardUserPrompt("the French Revolution", "history", 10)

	for _, want := range []string{"10", "French Revolution", "history"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestSystemPromptsDemandJSONOnly(t *testing.T) {
	for name, prompt := range map[string]string{
		"quiz":      QuizSystemPrompt(),
		"flashcard": FlashcardSystemPrompt(),
	} {
		if !strings.Contains(prompt, "ONLY this JSON") {
			t.Errorf("%s system prompt missing JSON-only instruction", name)
		}
	}
}
