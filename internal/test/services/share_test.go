package services_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cardmock-backend/internal/apperrors"
	"cardmock-backend/internal/models"
	"cardmock-backend/internal/services"
)

func activeLink() *models.ShareLink {
	return &models.ShareLink{
		Token:                 "tok",
		IdentityRequiredLevel: models.IdentityNone,
	}
}

func TestShareLinkGate_ActiveLink(t *testing.T) {
	assert.NoError(t, services.ShareLinkGate(activeLink(), time.Now()))
}

func TestShareLinkGate_Revoked(t *testing.T) {
	link := activeLink()
	link.RevokedAt = sql.NullTime{Time: time.Now().Add(-time.Hour), Valid: true}

	err := services.ShareLinkGate(link, time.Now())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "revoked")
}

func TestShareLinkGate_ExpiredDespiteRemainingUses(t *testing.T) {
	link := activeLink()
	link.ExpiresAt = sql.NullTime{Time: time.Now().Add(-time.Minute), Valid: true}
	link.MaxUses = sql.NullInt64{Int64: 10, Valid: true}
	link.UseCount = 1

	err := services.ShareLinkGate(link, time.Now())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "expired")
}

func TestShareLinkGate_NotYetExpired(t *testing.T) {
	link := activeLink()
	link.ExpiresAt = sql.NullTime{Time: time.Now().Add(time.Hour), Valid: true}

	assert.NoError(t, services.ShareLinkGate(link, time.Now()))
}

func TestShareLinkGate_Exhausted(t *testing.T) {
	link := activeLink()
	link.MaxUses = sql.NullInt64{Int64: 3, Valid: true}
	link.UseCount = 3

	err := services.ShareLinkGate(link, time.Now())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "exhausted")
}

func TestShareLinkGate_UnlimitedUses(t *testing.T) {
	link := activeLink()
	link.UseCount = 10000

	assert.NoError(t, services.ShareLinkGate(link, time.Now()))
}

func TestVerifyLinkPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	require.NoError(t, err)

	link := activeLink()
	link.PasswordHash = sql.NullString{String: string(hash), Valid: true}

	assert.NoError(t, services.VerifyLinkPassword(link, "open-sesame"))

	err = services.VerifyLinkPassword(link, "wrong")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
}

func TestVerifyLinkPassword_Unprotected(t *testing.T) {
	err := services.VerifyLinkPassword(activeLink(), "anything")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestIdentityGates(t *testing.T) {
	assert.False(t, services.CommentRequiresIdentity(models.IdentityNone))
	assert.True(t, services.CommentRequiresIdentity(models.IdentityComment))
	assert.True(t, services.CommentRequiresIdentity(models.IdentityApprove))

	assert.False(t, services.ApprovalRequiresIdentity(models.IdentityNone))
	assert.False(t, services.ApprovalRequiresIdentity(models.IdentityComment))
	assert.True(t, services.ApprovalRequiresIdentity(models.IdentityApprove))
}
