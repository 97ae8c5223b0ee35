package summarize

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrUnavailable is returned when no API key is configured; the feature
// degrades to unavailable without affecting the rest of the system.
var ErrUnavailable = errors.New("summarization is not configured")

// Client wraps the OpenAI chat API for document summarization and diffing.
type Client struct {
	api   *openai.Client
	model string
}

func NewClient(apiKey, model string) *Client {
	if apiKey == "" {
		return &Client{}
	}
	return &Client{
		api:   openai.NewClient(apiKey),
		model: model,
	}
}

func (c *Client) Enabled() bool {
	return c.api != nil
}

// SummarizeDocument returns a free-text summary of the document at the given
// URL.
func (c *Client) SummarizeDocument(ctx context.Context, documentURL string) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize the design document at %s for a review dashboard. "+
			"Keep it under 120 words and focus on what a reviewer needs to know.",
		documentURL,
	)
	return c.complete(ctx, prompt)
}

// DiffDocuments returns a free-text description of what changed between two
// document versions.
func (c *Client) DiffDocuments(ctx context.Context, beforeURL, afterURL string) (string, error) {
	prompt := fmt.Sprintf(
		"Compare the document at %s (before) with the document at %s (after) "+
			"and describe the changes a reviewer should look at. Keep it under 150 words.",
		beforeURL, afterURL,
	)
	return c.complete(ctx, prompt)
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You summarize design documents for mockup reviewers.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarization request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("summarization returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
