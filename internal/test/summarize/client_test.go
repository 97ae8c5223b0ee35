package summarize_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"cardmock-backend/internal/summarize"
)

func TestClient_DisabledWithoutKey(t *testing.T) {
	c := summarize.NewClient("", "gpt-4o-mini")
	assert.False(t, c.Enabled())

	_, err := c.SummarizeDocument(context.Background(), "https://example.com/brief.pdf")
	assert.ErrorIs(t, err, summarize.ErrUnavailable)

	_, err = c.DiffDocuments(context.Background(), "https://example.com/v1.pdf", "https://example.com/v2.pdf")
	assert.ErrorIs(t, err, summarize.ErrUnavailable)
}

func TestClient_EnabledWithKey(t *testing.T) {
	c := summarize.NewClient("sk-test", "gpt-4o-mini")
	assert.True(t, c.Enabled())
}
