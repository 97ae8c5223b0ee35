package supabase_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardmock-backend/internal/supabase"
)

func TestStorageClient_PublicURL(t *testing.T) {
	client, err := supabase.NewStorageClient("https://example.supabase.co/", "test-key", "mockup-assets")
	require.NoError(t, err)

	url := client.PublicURL("orgs/org_123/mockups/abc/card.png")
	assert.Equal(t, "https://example.supabase.co/storage/v1/object/public/mockup-assets/orgs/org_123/mockups/abc/card.png", url)
}

func TestStoragePathFormat(t *testing.T) {
	orgID := "org_2abc"
	mockupID := uuid.New()
	filename := "summer-card.png"

	expectedPath := "orgs/" + orgID + "/mockups/" + mockupID.String() + "/" + filename

	assert.Contains(t, expectedPath, "orgs/")
	assert.Contains(t, expectedPath, "mockups/")
	assert.Contains(t, expectedPath, filename)
}
