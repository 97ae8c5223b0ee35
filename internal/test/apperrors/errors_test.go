package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"cardmock-backend/internal/apperrors"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(apperrors.Validation("bad input")))
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusCode(apperrors.Auth("no token")))
	assert.Equal(t, http.StatusForbidden, apperrors.StatusCode(apperrors.Forbidden("not a reviewer")))
	assert.Equal(t, http.StatusNotFound, apperrors.StatusCode(apperrors.NotFound("missing")))
	assert.Equal(t, http.StatusConflict, apperrors.StatusCode(apperrors.Conflict("already reviewed")))
	assert.Equal(t, http.StatusBadGateway, apperrors.StatusCode(apperrors.Upstream("slack down", errors.New("timeout"))))
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(errors.New("plain error")))
}

func TestPublicMessage_MasksUnhandled(t *testing.T) {
	assert.Equal(t, "internal server error", apperrors.PublicMessage(errors.New("pq: relation does not exist")))
	assert.Equal(t, "missing", apperrors.PublicMessage(apperrors.NotFound("missing")))
}

func TestWrap_PreservesExistingKind(t *testing.T) {
	inner := apperrors.Conflict("already reviewed")
	wrapped := apperrors.Wrap("recording decision", fmt.Errorf("outer: %w", inner))

	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(wrapped))
	assert.Equal(t, "already reviewed", apperrors.PublicMessage(wrapped))
}

func TestWrap_UnknownBecomesUnhandled(t *testing.T) {
	wrapped := apperrors.Wrap("loading mockup", errors.New("connection refused"))

	assert.Equal(t, apperrors.KindUnhandled, apperrors.KindOf(wrapped))
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(wrapped))
}

func TestKindOf_PropagatesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("service layer: %w", apperrors.NotFound("share link expired"))
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
