package supabase

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"cardmock-backend/internal/apperrors"
)

// DatabaseClient wraps the direct PostgreSQL connection to the Supabase
// database. All authenticated queries are scoped by organization_id; only
// public share-link lookups skip the tenant filter.
type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

func (d *DatabaseClient) Ping() error {
	return d.db.Ping()
}

const uniqueViolation = "23505"

// translateErr maps driver-level failures into the error taxonomy: unique
// violations become conflicts, missing rows become not-found.
func translateErr(err error, notFoundMsg, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(notFoundMsg)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return apperrors.Conflict(conflictMsg)
	}
	return err
}
