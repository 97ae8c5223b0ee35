package supabase

import (
	"fmt"

	"github.com/google/uuid"

	"cardmock-backend/internal/apperrors"
	"cardmock-backend/internal/models"
)

func (d *DatabaseClient) CreateClient(orgID, name, contactEmail string) (*models.Client, error) {
	var client models.Client
	err := d.db.QueryRow(`
		INSERT INTO clients (organization_id, name, contact_email)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id, organization_id, name, COALESCE(contact_email, ''), created_at, updated_at
	`, orgID, name, contactEmail).Scan(
		&client.ID, &client.OrganizationID, &client.Name, &client.ContactEmail,
		&client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &client, nil
}

func (d *DatabaseClient) GetClient(clientID uuid.UUID, orgID string) (*models.Client, error) {
	var client models.Client
	err := d.db.QueryRow(`
		SELECT id, organization_id, name, COALESCE(contact_email, ''), created_at, updated_at
		FROM clients
		WHERE id = $1 AND organization_id = $2
	`, clientID, orgID).Scan(
		&client.ID, &client.OrganizationID, &client.Name, &client.ContactEmail,
		&client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err, "client not found", "")
	}
	return &client, nil
}

func (d *DatabaseClient) ListClients(orgID string) ([]models.Client, error) {
	rows, err := d.db.Query(`
		SELECT id, organization_id, name, COALESCE(contact_email, ''), created_at, updated_at
		FROM clients
		WHERE organization_id = $1
		ORDER BY name ASC
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var client models.Client
		err := rows.Scan(
			&client.ID, &client.OrganizationID, &client.Name, &client.ContactEmail,
			&client.CreatedAt, &client.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

func (d *DatabaseClient) UpdateClient(clientID uuid.UUID, orgID, name, contactEmail string) (*models.Client, error) {
	var client models.Client
	err := d.db.QueryRow(`
		UPDATE clients
		SET name = $3, contact_email = NULLIF($4, ''), updated_at = NOW()
		WHERE id = $1 AND organization_id = $2
		RETURNING id, organization_id, name, COALESCE(contact_email, ''), created_at, updated_at
	`, clientID, orgID, name, contactEmail).Scan(
		&client.ID, &client.OrganizationID, &client.Name, &client.ContactEmail,
		&client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err, "client not found", "")
	}
	return &client, nil
}

func (d *DatabaseClient) DeleteClient(clientID uuid.UUID, orgID string) error {
	result, err := d.db.Exec(`
		DELETE FROM clients
		WHERE id = $1 AND organization_id = $2
	`, clientID, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperrors.NotFound("client not found")
	}
	return nil
}
