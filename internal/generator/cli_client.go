package generator

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CLIClient drives study-content generation through a locally installed
// claude CLI. Development convenience: explanations, quiz drafts, and
// flashcard batches come out of the developer's own subscription instead
// of a metered API key.
type CLIClient struct {
	cliPath string
}

func NewCLIClient(cliPath string) *CLIClient {
	return &CLIClient{cliPath: cliPath}
}

func (c *CLIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	cmd := exec.CommandContext(ctx,
		c.cliPath,
		"--print",
		"--output-format", "text",
		"--system-prompt", systemPrompt,
		"--max-turns", "1",
	)

	cmd.Stdin = strings.NewReader(userPrompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("claude CLI content generation failed: %w\nstderr: %s", err, stderr.String())
	}

	content := strings.TrimSpace(stdout.String())
	if content == "" {
		return nil, fmt.Errorf("claude CLI produced no study content")
	}

	// The CLI does not report token usage, so both counts stay zero.
	return &LLMResponse{Content: content}, nil
}
