package supabase

import (
	"fmt"

	"cardmock-backend/internal/models"
)

// RecordIntegrationEvent appends an audit row for an outbound integration
// call. Integration failures are recorded, never propagated into core
// approval operations.
func (d *DatabaseClient) RecordIntegrationEvent(orgID, provider, eventType, status, detail string) error {
	_, err := d.db.Exec(`
		INSERT INTO integration_events (organization_id, provider, event_type, status, detail)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
	`, orgID, provider, eventType, status, detail)
	return err
}

func (d *DatabaseClient) ListIntegrationEvents(orgID string, limit int) ([]models.IntegrationEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := d.db.Query(`
		SELECT id, organization_id, provider, event_type, status, detail, created_at
		FROM integration_events
		WHERE organization_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list integration events: %w", err)
	}
	defer rows.Close()

	var events []models.IntegrationEvent
	for rows.Next() {
		var e models.IntegrationEvent
		err := rows.Scan(
			&e.ID, &e.OrganizationID, &e.Provider, &e.EventType,
			&e.Status, &e.Detail, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan integration event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
