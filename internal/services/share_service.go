package services

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"cardmock-backend/internal/apperrors"
	"cardmock-backend/internal/models"
	"cardmock-backend/internal/supabase"
)

// ShareService mediates anonymous access to a single mockup through a bearer
// share token. A link is terminal once expired, exhausted, or revoked.
type ShareService struct {
	dbClient *supabase.DatabaseClient
}

func NewShareService(dbClient *supabase.DatabaseClient) *ShareService {
	return &ShareService{
		dbClient: dbClient,
	}
}

func (s *ShareService) CreateLink(orgID, createdBy string, mockupID uuid.UUID, req models.CreateShareLinkRequest) (*models.ShareLink, error) {
	// Link creation is tenant-scoped even though access is not.
	if _, err := s.dbClient.GetMockup(mockupID, orgID); err != nil {
		return nil, err
	}

	level := req.IdentityRequiredLevel
	if level == "" {
		level = models.IdentityNone
	}
	if level != models.IdentityNone && level != models.IdentityComment && level != models.IdentityApprove {
		return nil, apperrors.Validation("identity_required_level must be one of none, comment, approve")
	}

	var expiresAt sql.NullTime
	if req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return nil, apperrors.Validation("expires_at must be an RFC3339 timestamp")
		}
		expiresAt = sql.NullTime{Time: t, Valid: true}
	}

	var maxUses sql.NullInt64
	if req.MaxUses > 0 {
		maxUses = sql.NullInt64{Int64: int64(req.MaxUses), Valid: true}
	}

	var passwordHash string
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		passwordHash = string(hash)
	}

	token, err := randomToken()
	if err != nil {
		return nil, err
	}

	return s.dbClient.CreateShareLink(mockupID, orgID, token, passwordHash, level, createdBy, expiresAt, maxUses)
}

// ShareLinkGate checks the link's terminal states at the given time. Terminal
// links reject all further access regardless of any other attribute: an
// expired link with uses to spare is just as dead as an exhausted one.
func ShareLinkGate(link *models.ShareLink, now time.Time) error {
	if link.RevokedAt.Valid {
		return apperrors.NotFound("share link revoked")
	}
	if link.ExpiresAt.Valid && now.After(link.ExpiresAt.Time) {
		return apperrors.NotFound("share link expired")
	}
	if link.MaxUses.Valid && int64(link.UseCount) >= link.MaxUses.Int64 {
		return apperrors.NotFound("share link exhausted")
	}
	return nil
}

// VerifyLinkPassword checks a caller's password against the link's stored
// hash.
func VerifyLinkPassword(link *models.ShareLink, password string) error {
	if !link.PasswordHash.Valid {
		return apperrors.Validation("share link is not password protected")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(link.PasswordHash.String), []byte(password)); err != nil {
		return apperrors.Auth("incorrect password")
	}
	return nil
}

// CommentRequiresIdentity reports whether commenting on a link at this
// identity level needs an identified session.
func CommentRequiresIdentity(level string) bool {
	return level != models.IdentityNone
}

// ApprovalRequiresIdentity reports whether approving through a link at this
// identity level needs an identified session.
func ApprovalRequiresIdentity(level string) bool {
	return level == models.IdentityApprove
}

func (s *ShareService) gate(link *models.ShareLink) error {
	return ShareLinkGate(link, time.Now())
}

// Access resolves a share token. When the link is password protected the
// asset payload is withheld until Verify proves knowledge of the password;
// each protected retrieval is re-gated, nothing persists across requests.
// A successful unprotected access consumes one use and appends a view record.
func (s *ShareService) Access(token, ipAddress, userAgent string) (*models.SharedMockupResponse, error) {
	link, err := s.dbClient.GetShareLinkByToken(token)
	if err != nil {
		return nil, err
	}
	if err := s.gate(link); err != nil {
		return nil, err
	}

	if link.PasswordHash.Valid {
		return &models.SharedMockupResponse{
			IdentityRequiredLevel: link.IdentityRequiredLevel,
			PasswordRequired:      true,
		}, nil
	}

	return s.deliver(link, ipAddress, userAgent)
}

// Verify checks the supplied password and, on success, delivers the payload
// as one access.
func (s *ShareService) Verify(token, password, ipAddress, userAgent string) (*models.SharedMockupResponse, error) {
	link, err := s.dbClient.GetShareLinkByToken(token)
	if err != nil {
		return nil, err
	}
	if err := s.gate(link); err != nil {
		return nil, err
	}

	if err := VerifyLinkPassword(link, password); err != nil {
		return nil, err
	}

	return s.deliver(link, ipAddress, userAgent)
}

func (s *ShareService) deliver(link *models.ShareLink, ipAddress, userAgent string) (*models.SharedMockupResponse, error) {
	consumed, err := s.dbClient.ConsumeShareLinkUse(link.ID)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, apperrors.NotFound("share link exhausted")
	}

	// Analytics are enrichment; a failed append must not fail the view.
	if err := s.dbClient.RecordShareLinkView(link.ID, ipAddress, userAgent); err != nil {
		log.Printf("Failed to record share link view for %s: %v", link.ID, err)
	}

	mockup, err := s.dbClient.GetMockupByID(link.MockupID)
	if err != nil {
		return nil, err
	}

	resp := &models.SharedMockupResponse{
		MockupID:              mockup.ID.String(),
		Name:                  mockup.Name,
		IdentityRequiredLevel: link.IdentityRequiredLevel,
	}
	if mockup.ImageURL.Valid {
		resp.ImageURL = mockup.ImageURL.String
	}
	return resp, nil
}

// Identify records an anonymous caller's name and email, returning the opaque
// session token that unlocks gated write actions on this link.
func (s *ShareService) Identify(token, name, email string) (*models.PublicReviewer, error) {
	link, err := s.dbClient.GetShareLinkByToken(token)
	if err != nil {
		return nil, err
	}
	if err := s.gate(link); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, apperrors.Validation("name and email are required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperrors.Validation("email is not valid")
	}

	sessionToken, err := randomToken()
	if err != nil {
		return nil, err
	}

	return s.dbClient.CreatePublicReviewer(link.ID, sessionToken, name, email)
}

// Comment records anonymous feedback. Identity is required at the comment
// level and above.
func (s *ShareService) Comment(token, sessionToken, body string) (*models.PublicFeedback, error) {
	link, err := s.dbClient.GetShareLinkByToken(token)
	if err != nil {
		return nil, err
	}
	if err := s.gate(link); err != nil {
		return nil, err
	}

	if strings.TrimSpace(body) == "" {
		return nil, apperrors.Validation("comment body is required")
	}

	reviewer, err := s.requireIdentity(link, sessionToken, CommentRequiresIdentity(link.IdentityRequiredLevel))
	if err != nil {
		return nil, err
	}

	return s.createFeedback(link, models.FeedbackComment, reviewer, body)
}

// Approve records an anonymous approval. Identity is required only at the
// approve level.
func (s *ShareService) Approve(token, sessionToken string) (*models.PublicFeedback, error) {
	link, err := s.dbClient.GetShareLinkByToken(token)
	if err != nil {
		return nil, err
	}
	if err := s.gate(link); err != nil {
		return nil, err
	}

	reviewer, err := s.requireIdentity(link, sessionToken, ApprovalRequiresIdentity(link.IdentityRequiredLevel))
	if err != nil {
		return nil, err
	}

	return s.createFeedback(link, models.FeedbackApproval, reviewer, "")
}

func (s *ShareService) requireIdentity(link *models.ShareLink, sessionToken string, required bool) (*models.PublicReviewer, error) {
	if sessionToken == "" {
		if required {
			return nil, apperrors.Forbidden("this action requires your name and email; identify first")
		}
		return nil, nil
	}
	reviewer, err := s.dbClient.GetPublicReviewerBySession(link.ID, sessionToken)
	if err != nil {
		if required {
			return nil, apperrors.Forbidden("reviewer session is not valid for this link")
		}
		return nil, nil
	}
	return reviewer, nil
}

func (s *ShareService) createFeedback(link *models.ShareLink, kind string, reviewer *models.PublicReviewer, body string) (*models.PublicFeedback, error) {
	var name, email string
	if reviewer != nil {
		name = reviewer.Name
		email = reviewer.Email
	}
	return s.dbClient.CreatePublicFeedback(link.ID, link.MockupID, kind, name, email, body)
}

func randomToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
