package generator

import (
	"fmt"
	"strings"
)

var validLevels = map[string]bool{
	"beginner":     true,
	"intermediate": true,
	"advanced":     true,
}

// NormalizeLevel clamps a caller-supplied depth level to the supported set.
func NormalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	if !validLevels[level] {
		return "beginner"
	}
	return level
}

var validDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

// NormalizeDifficulty clamps a caller-supplied quiz difficulty to the
// supported set.
func NormalizeDifficulty(difficulty string) string {
	difficulty = strings.ToLower(strings.TrimSpace(difficulty))
	if !validDifficulties[difficulty] {
		return "medium"
	}
	return difficulty
}

var levelGuidance = map[string]string{
	"beginner": `- Assume no prior knowledge of the topic
- Define every technical term the first time it appears
- Use at least one everyday analogy
- Keep sentences short and concrete`,
	"intermediate": `- Assume familiarity with the basics of the subject
- Focus on how the concepts connect and why they work
- Include one worked example
- Point out the most common misconception`,
	"advanced": `- Assume solid command of the subject's fundamentals
- Go into edge cases, limitations, and trade-offs
- Reference related concepts the reader should connect this to
- Do not re-explain basic terminology`,
}

func ExplanationSystemPrompt() string {
	return `You are an expert tutor writing a clear explanation of a study topic.

Write in plain prose with short paragraphs. Structure the explanation as:
1. What the concept is and why it matters
2. How it works, with a concrete example
3. Common mistakes or misconceptions

Respond with the explanation text only — no JSON, no markdown headings, no preamble.`
}

func BuildExplanationUserPrompt(topic, subject, level string) string {
	level = NormalizeLevel(level)
	prompt := fmt.Sprintf("Explain the topic %q", topic)
	if subject != "" {
		prompt += fmt.Sprintf(" (subject area: %s)", subject)
	}
	prompt += fmt.Sprintf(" at a %s level.\n\nDepth requirements:\n%s", level, levelGuidance[level])
	return prompt
}

func QuizSystemPrompt() string {
	return `You are an expert tutor generating a multiple-choice quiz as JSON.

OUTPUT FORMAT — respond with ONLY this JSON structure, no markdown fences, no commentary:
{
  "questions": [
    {
      "question": "the question text",
      "options": ["option 1", "option 2", "option 3", "option 4"],
      "correct_index": 0,
      "explanation": "why the correct option is right and the others are wrong"
    }
  ]
}

RULES:
- Exactly 4 options per question
- correct_index is the 0-based position of the right option
- Every question tests understanding, not memorized trivia
- Wrong options must be plausible — each should reflect a real misconception
- Vary the position of the correct option across questions
- Every question gets a non-empty explanation`
}

func BuildQuizUserPrompt(topic, subject, difficulty string, count int) string {
	difficulty = NormalizeDifficulty(difficulty)
	prompt := fmt.Sprintf("Generate %d %s questions about %q.", count, difficulty, topic)
	if subject != "" {
		prompt += fmt.Sprintf(" Subject area: %s.", subject)
	}
	return prompt
}

func FlashcardSystemPrompt() string {
	return `You are an expert tutor generating study flashcards as JSON.

OUTPUT FORMAT — respond with ONLY this JSON structure, no markdown fences, no commentary:
{
  "cards": [
    {"front": "term, question, or cue", "back": "the answer or definition"}
  ]
}

RULES:
- Each card tests ONE fact or concept
- Fronts are short cues, not full paragraphs
- Backs are complete but concise — one to three sentences
- Cover the topic's key terms, relationships, and common pitfalls
- No duplicate or near-duplicate cards`
}

func BuildFlashcardUserPrompt(topic, subject string, count int) string {
	prompt := fmt.Sprintf("Generate %d flashcards about %q.", count, topic)
	if subject != "" {
		prompt += fmt.Sprintf(" Subject area: %s.", subject)
	}
	return prompt
}
