package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"cardmock-backend/internal/apperrors"
	"cardmock-backend/internal/models"
)

const shareLinkColumns = `id, mockup_id, organization_id, token, password_hash,
	identity_required_level, expires_at, max_uses, use_count, revoked_at, created_by, created_at`

func scanShareLink(row interface{ Scan(...interface{}) error }) (*models.ShareLink, error) {
	var l models.ShareLink
	err := row.Scan(
		&l.ID, &l.MockupID, &l.OrganizationID, &l.Token, &l.PasswordHash,
		&l.IdentityRequiredLevel, &l.ExpiresAt, &l.MaxUses, &l.UseCount,
		&l.RevokedAt, &l.CreatedBy, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (d *DatabaseClient) CreateShareLink(mockupID uuid.UUID, orgID, token, passwordHash, identityLevel, createdBy string, expiresAt sql.NullTime, maxUses sql.NullInt64) (*models.ShareLink, error) {
	link, err := scanShareLink(d.db.QueryRow(`
		INSERT INTO share_links (mockup_id, organization_id, token, password_hash,
			identity_required_level, expires_at, max_uses, created_by)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)
		RETURNING `+shareLinkColumns+`
	`, mockupID, orgID, token, passwordHash, identityLevel, expiresAt, maxUses, createdBy))
	if err != nil {
		return nil, fmt.Errorf("failed to create share link: %w", err)
	}
	return link, nil
}

// GetShareLinkByToken is the one lookup that skips tenant scoping; the bearer
// token is the whole credential.
func (d *DatabaseClient) GetShareLinkByToken(token string) (*models.ShareLink, error) {
	link, err := scanShareLink(d.db.QueryRow(`
		SELECT `+shareLinkColumns+`
		FROM share_links
		WHERE token = $1
	`, token))
	if err != nil {
		return nil, translateErr(err, "share link not found", "")
	}
	return link, nil
}

func (d *DatabaseClient) ListShareLinksForMockup(mockupID uuid.UUID, orgID string) ([]models.ShareLink, error) {
	rows, err := d.db.Query(`
		SELECT `+shareLinkColumns+`
		FROM share_links
		WHERE mockup_id = $1 AND organization_id = $2
		ORDER BY created_at DESC
	`, mockupID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list share links: %w", err)
	}
	defer rows.Close()

	var links []models.ShareLink
	for rows.Next() {
		link, err := scanShareLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share link: %w", err)
		}
		links = append(links, *link)
	}

	return links, rows.Err()
}

func (d *DatabaseClient) RevokeShareLink(linkID uuid.UUID, orgID string) error {
	result, err := d.db.Exec(`
		UPDATE share_links
		SET revoked_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND revoked_at IS NULL
	`, linkID, orgID)
	if err != nil {
		return fmt.Errorf("failed to revoke share link: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperrors.NotFound("share link not found")
	}
	return nil
}

// ConsumeShareLinkUse atomically claims one use of the link. The guard in the
// WHERE clause is what prevents two concurrent views from pushing use_count
// past max_uses; no application-level lock is held.
func (d *DatabaseClient) ConsumeShareLinkUse(linkID uuid.UUID) (bool, error) {
	result, err := d.db.Exec(`
		UPDATE share_links
		SET use_count = use_count + 1
		WHERE id = $1 AND (max_uses IS NULL OR use_count < max_uses)
	`, linkID)
	if err != nil {
		return false, fmt.Errorf("failed to consume share link use: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RecordShareLinkView appends one analytics record; a re-fetch is a new view
// on purpose.
func (d *DatabaseClient) RecordShareLinkView(linkID uuid.UUID, ipAddress, userAgent string) error {
	_, err := d.db.Exec(`
		INSERT INTO share_link_views (share_link_id, ip_address, user_agent)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
	`, linkID, ipAddress, userAgent)
	return err
}

func (d *DatabaseClient) CreatePublicReviewer(linkID uuid.UUID, sessionToken, name, email string) (*models.PublicReviewer, error) {
	var r models.PublicReviewer
	err := d.db.QueryRow(`
		INSERT INTO public_reviewers (share_link_id, session_token, name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, share_link_id, session_token, name, email, created_at
	`, linkID, sessionToken, name, email).Scan(
		&r.ID, &r.ShareLinkID, &r.SessionToken, &r.Name, &r.Email, &r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create public reviewer: %w", err)
	}
	return &r, nil
}

func (d *DatabaseClient) GetPublicReviewerBySession(linkID uuid.UUID, sessionToken string) (*models.PublicReviewer, error) {
	var r models.PublicReviewer
	err := d.db.QueryRow(`
		SELECT id, share_link_id, session_token, name, email, created_at
		FROM public_reviewers
		WHERE share_link_id = $1 AND session_token = $2
	`, linkID, sessionToken).Scan(
		&r.ID, &r.ShareLinkID, &r.SessionToken, &r.Name, &r.Email, &r.CreatedAt,
	)
	if err != nil {
		return nil, translateErr(err, "reviewer session not found", "")
	}
	return &r, nil
}

func (d *DatabaseClient) CreatePublicFeedback(linkID, mockupID uuid.UUID, kind, reviewerName, reviewerEmail, body string) (*models.PublicFeedback, error) {
	var f models.PublicFeedback
	err := d.db.QueryRow(`
		INSERT INTO public_feedback (share_link_id, mockup_id, kind, reviewer_name, reviewer_email, body)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))
		RETURNING id, share_link_id, mockup_id, kind, reviewer_name, reviewer_email, body, created_at
	`, linkID, mockupID, kind, reviewerName, reviewerEmail, body).Scan(
		&f.ID, &f.ShareLinkID, &f.MockupID, &f.Kind,
		&f.ReviewerName, &f.ReviewerEmail, &f.Body, &f.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create public feedback: %w", err)
	}
	return &f, nil
}
