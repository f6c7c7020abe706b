package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/d-exit/team-management-appV5-sub000/models"
)

var ErrCompetitionNotFound = errors.New("competition not found")

// CompetitionRecord is a stored competition: the generated structure is kept
// as an opaque JSON payload, with the identifying columns alongside for
// listing and filtering.
type CompetitionRecord struct {
	ID        string
	Name      string
	Kind      models.CompetitionKind
	Payload   []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CompetitionRepository interface {
	Create(ctx context.Context, rec *CompetitionRecord) error
	GetByID(ctx context.Context, id string) (*CompetitionRecord, error)
	List(ctx context.Context) ([]CompetitionRecord, error)
	UpdatePayload(ctx context.Context, id string, payload []byte) error
	Delete(ctx context.Context, id string) error
}

type postgresCompetitionRepository struct {
	db *sql.DB
}

func NewPostgresCompetitionRepository(db *sql.DB) CompetitionRepository {
	return &postgresCompetitionRepository{db: db}
}

func (r *postgresCompetitionRepository) Create(ctx context.Context, rec *CompetitionRecord) error {
	query := `
		INSERT INTO competitions (id, name, kind, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, rec.ID, rec.Name, rec.Kind, rec.Payload).
		Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create competition: %w", err)
	}
	return nil
}

func (r *postgresCompetitionRepository) GetByID(ctx context.Context, id string) (*CompetitionRecord, error) {
	query := `SELECT id, name, kind, payload, created_at, updated_at FROM competitions WHERE id = $1`

	var rec CompetitionRecord
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&rec.ID, &rec.Name, &rec.Kind, &rec.Payload, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to get competition %s: %w", id, err)
	}
	return &rec, nil
}

// List returns competition rows without their payloads, newest first.
func (r *postgresCompetitionRepository) List(ctx context.Context) ([]CompetitionRecord, error) {
	query := `SELECT id, name, kind, created_at, updated_at FROM competitions ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	defer rows.Close()

	records := make([]CompetitionRecord, 0)
	for rows.Next() {
		var rec CompetitionRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Kind, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan competition row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate competition rows: %w", err)
	}
	return records, nil
}

func (r *postgresCompetitionRepository) UpdatePayload(ctx context.Context, id string, payload []byte) error {
	query := `UPDATE competitions SET payload = $1, updated_at = now() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, payload, id)
	if err != nil {
		return fmt.Errorf("failed to update competition %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrCompetitionNotFound)
}

func (r *postgresCompetitionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM competitions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete competition %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrCompetitionNotFound)
}
