package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"tourshield/internal/sentinel"
	"tourshield/internal/tourist/models"
	id "tourshield/pkg/domain"
)

// PostgresStore persists tourist records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed record store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const recordColumns = `user_id, full_name, country, city, latitude, longitude,
	safety_status, passport_status, flight_ticket_status,
	registration_date, verification_date`

// Create inserts a new record; one record per tourist.
func (s *PostgresStore) Create(ctx context.Context, record *models.TouristRecord) error {
	if record == nil {
		return fmt.Errorf("record is required")
	}
	query := `
		INSERT INTO tourist_records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(record.UserID),
		record.FullName,
		record.Country,
		record.City,
		record.Latitude,
		record.Longitude,
		string(record.SafetyStatus),
		string(record.PassportStatus),
		string(record.FlightTicketStatus),
		record.RegistrationDate,
		record.VerificationDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tourist record exists: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create tourist record: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByUserID(ctx context.Context, userID id.UserID) (*models.TouristRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM tourist_records WHERE user_id = $1`
	record, err := scanRecord(s.db.QueryRowContext(ctx, query, uuid.UUID(userID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tourist record not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find tourist record: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) Update(ctx context.Context, record *models.TouristRecord) error {
	if record == nil {
		return fmt.Errorf("record is required")
	}
	query := `
		UPDATE tourist_records
		SET full_name = $2, country = $3, city = $4, latitude = $5, longitude = $6,
		    safety_status = $7, passport_status = $8, flight_ticket_status = $9,
		    verification_date = $10
		WHERE user_id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(record.UserID),
		record.FullName,
		record.Country,
		record.City,
		record.Latitude,
		record.Longitude,
		string(record.SafetyStatus),
		string(record.PassportStatus),
		string(record.FlightTicketStatus),
		record.VerificationDate,
	)
	if err != nil {
		return fmt.Errorf("update tourist record: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tourist record rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("tourist record not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

// List returns matching records ordered by registration date, newest first.
func (s *PostgresStore) List(ctx context.Context, filter ListFilter) ([]*models.TouristRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM tourist_records WHERE 1=1`
	args := []any{}

	if filter.SafetyStatus != "" {
		args = append(args, string(filter.SafetyStatus))
		query += fmt.Sprintf(" AND safety_status = $%d", len(args))
	}
	if filter.Country != "" {
		args = append(args, filter.Country)
		query += fmt.Sprintf(" AND lower(country) = lower($%d)", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (full_name ILIKE $%d OR country ILIKE $%d OR city ILIKE $%d)", n, n, n)
	}
	query += " ORDER BY registration_date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tourist records: %w", err)
	}
	defer rows.Close()

	var records []*models.TouristRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tourist record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tourist records: %w", err)
	}
	return records, nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID id.UserID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tourist_records WHERE user_id = $1`, uuid.UUID(userID))
	if err != nil {
		return fmt.Errorf("delete tourist record: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tourist record rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("tourist record not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.TouristRecord, error) {
	var (
		userID         uuid.UUID
		record         models.TouristRecord
		safety         string
		passport       string
		flightTicket   string
		verificationAt sql.NullTime
	)
	err := row.Scan(
		&userID,
		&record.FullName,
		&record.Country,
		&record.City,
		&record.Latitude,
		&record.Longitude,
		&safety,
		&passport,
		&flightTicket,
		&record.RegistrationDate,
		&verificationAt,
	)
	if err != nil {
		return nil, err
	}
	record.UserID = id.UserID(userID)
	record.SafetyStatus = models.SafetyStatus(safety)
	record.PassportStatus = models.DocumentStatus(passport)
	record.FlightTicketStatus = models.DocumentStatus(flightTicket)
	if verificationAt.Valid {
		record.VerificationDate = &verificationAt.Time
	}
	return &record, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
