package generator

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

// LLMClient is the interface both generator implementations satisfy.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// Generator wraps an LLMClient and adds study-content methods.
type Generator struct {
	llm   LLMClient
	model string
}

func NewGenerator() *Generator {
	var llm LLMClient
	model := "mock"

	if os.Getenv("USE_CLI_GENERATOR") == "true" {
		cliPath := os.Getenv("CLAUDE_CLI_PATH")
		if cliPath == "" {
			cliPath = "claude"
		}
		llm = NewCLIClient(cliPath)
		model = "claude-cli"
		log.Println("Generator using Claude CLI (local plan)")
	} else if os.Getenv("MOCK_GENERATOR") == "true" {
		llm = NewMockClient()
		log.Println("Generator using mock data")
	} else {
		model = os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = "claude-sonnet-4-5"
		}
		llm = NewAPIClient(model)
		log.Println("Generator using Anthropic API:", model)
	}

	return &Generator{llm: llm, model: model}
}

func (g *Generator) ModelName() string {
	return g.model
}

// GenerateExplanation produces a plain-text topic explanation at the
// requested depth level.
func (g *Generator) GenerateExplanation(ctx context.Context, topic, subject, level string) (string, *LLMResponse, error) {
	systemPrompt := ExplanationSystemPrompt()
	userPrompt := BuildExplanationUserPrompt(topic, subject, level)

	resp, err := g.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", nil, fmt.Errorf("generate explanation: %w", err)
	}

	content := strings.TrimSpace(resp.Content)
	if content == "" {
		return "", resp, fmt.Errorf("empty explanation response")
	}
	return content, resp, nil
}

// GenerateQuiz produces a validated multiple-choice quiz.
func (g *Generator) GenerateQuiz(ctx context.Context, topic, subject, difficulty string, count int) (*GeneratedQuiz, *LLMResponse, error) {
	systemPrompt := QuizSystemPrompt()
	userPrompt := BuildQuizUserPrompt(topic, subject, difficulty, count)

	resp, err := g.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, nil, fmt.Errorf("generate quiz: %w", err)
	}

	quiz, err := ParseQuizResponse(resp.Content)
	if err != nil {
		return nil, resp, fmt.Errorf("parse quiz response: %w", err)
	}
	return quiz, resp, nil
}

// GenerateFlashcards produces a validated batch of front/back cards.
func (g *Generator) GenerateFlashcards(ctx context.Context, topic, subject string, count int) ([]GeneratedCard, *LLMResponse, error) {
	systemPrompt := FlashcardSystemPrompt()
	userPrompt := BuildFlashcardUserPrompt(topic, subject, count)

	resp, err := g.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, nil, fmt.Errorf("generate flashcards: %w", err)
	}

	cards, err := ParseFlashcardResponse(resp.Content)
	if err != nil {
		return nil, resp, fmt.Errorf("parse flashcard response: %w", err)
	}
	return cards, resp, nil
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   4096,
		Temperature: param.NewOpt(0.7),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient — Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

// Generate keys the canned response off the system prompt so each content
// type parses against its own schema.
func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	var content string
	switch {
	case strings.Contains(systemPrompt, "quiz"):
		content = buildMockQuizJSON()
	case strings.Contains(systemPrompt, "flashcard"):
		content = buildMockFlashcardJSON()
	default:
		content = "[Mock] This topic builds on a handful of core ideas. First, the fundamentals: " +
			"the key terms and how they relate. Second, the mechanics: how the pieces interact " +
			"in practice, with a worked example. Finally, the common pitfalls students hit when " +
			"first applying the concept, and how to avoid them."
	}
	return &LLMResponse{
		Content:      content,
		PromptTokens: 500,
		OutputTokens: 800,
	}, nil
}

func buildMockQuizJSON() string {
	questions := "["
	for i := 0; i < 5; i++ {
		if i > 0 {
			questions += ","
		}
		questions += fmt.Sprintf(`{"question":"[Mock] Which statement about concept %d is accurate?","options":["[Mock] A plausible but incomplete description","[Mock] The accurate description of the concept","[Mock] A common misconception","[Mock] An unrelated statement"],"correct_index":1,"explanation":"[Mock] Option 2 is correct because it captures the defining property of concept %d."}`, i+1, i+1)
	}
	questions += "]"
	return fmt.Sprintf(`{"questions":%s}`, questions)
}

func buildMockFlashcardJSON() string {
	cards := "["
	for i := 0; i < 8; i++ {
		if i > 0 {
			cards += ","
		}
		cards += fmt.Sprintf(`{"front":"[Mock] Key term %d","back":"[Mock] Definition of key term %d with a short memorable example."}`, i+1, i+1)
	}
	cards += "]"
	return fmt.Sprintf(`{"cards":%s}`, cards)
}
