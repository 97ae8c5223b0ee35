package notify_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardmock-backend/internal/notify"
)

func TestSlackNotifier_DisabledWithoutURL(t *testing.T) {
	n := notify.NewSlackNotifier("")
	assert.False(t, n.Enabled())

	// Posting through a disabled notifier is a no-op, not an error.
	assert.NoError(t, n.Post("should go nowhere"))
}

func TestSlackNotifier_PostsMessage(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := notify.NewSlackNotifier(server.URL)
	assert.True(t, n.Enabled())

	err := n.Post("Mockup \"Summer Card\" approved at stage 2")
	require.NoError(t, err)
	assert.Equal(t, "Mockup \"Summer Card\" approved at stage 2", received["text"])
}

func TestSlackNotifier_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer server.Close()

	n := notify.NewSlackNotifier(server.URL)
	err := n.Post("hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
