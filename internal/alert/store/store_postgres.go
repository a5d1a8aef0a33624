package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tourshield/internal/alert/models"
	id "tourshield/pkg/domain"
)

// PostgresStore persists alerts in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed alert store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const alertColumns = `id, tourist_id, kind, severity, message, latitude, longitude, created_at`

func (s *PostgresStore) Create(ctx context.Context, alert *models.Alert) error {
	if alert == nil {
		return fmt.Errorf("alert is required")
	}
	query := `
		INSERT INTO alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(alert.ID),
		uuid.UUID(alert.TouristID),
		string(alert.Kind),
		string(alert.Severity),
		alert.Message,
		alert.Latitude,
		alert.Longitude,
		alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// ListRecent returns the newest alerts first, at most limit of them.
func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]*models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $1"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	return collectAlerts(rows)
}

func (s *PostgresStore) ListByTourist(ctx context.Context, touristID id.UserID) ([]*models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE tourist_id = $1 ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(touristID))
	if err != nil {
		return nil, fmt.Errorf("list alerts by tourist: %w", err)
	}
	defer rows.Close()
	return collectAlerts(rows)
}

func collectAlerts(rows *sql.Rows) ([]*models.Alert, error) {
	var alerts []*models.Alert
	for rows.Next() {
		var (
			alertID   uuid.UUID
			touristID uuid.UUID
			alert     models.Alert
			kind      string
			severity  string
		)
		err := rows.Scan(
			&alertID,
			&touristID,
			&kind,
			&severity,
			&alert.Message,
			&alert.Latitude,
			&alert.Longitude,
			&alert.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alert.ID = id.AlertID(alertID)
		alert.TouristID = id.UserID(touristID)
		alert.Kind = models.Kind(kind)
		alert.Severity = models.Severity(severity)
		alerts = append(alerts, &alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", err)
	}
	return alerts, nil
}
