package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
)

// extractionStore implements driven.ExtractionStore.
type extractionStore struct {
	store *Store
}

var _ driven.ExtractionStore = (*extractionStore)(nil)

const extractionColumns = `id, ref, strategy, questions, fields, created_at`

// timeLayout is fixed-width so created_at sorts lexically. The column is
// TEXT so the driver hands the stored string back untouched.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Save stores or overwrites an extraction.
func (s *extractionStore) Save(ctx context.Context, e *domain.Extraction) error {
	fields := e.Fields
	if fields == nil {
		fields = domain.NewFieldMap()
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshalling fields: %w", err)
	}

	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO extractions (id, ref, strategy, questions, field_count, fields, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			ref = excluded.ref,
			strategy = excluded.strategy,
			questions = excluded.questions,
			field_count = excluded.field_count,
			fields = excluded.fields,
			created_at = excluded.created_at
	`, e.ID, e.Ref, string(e.Strategy), e.Questions, fields.Len(), string(fieldsJSON),
		createdAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("saving extraction: %w", err)
	}
	return nil
}

// Get retrieves an extraction by ID.
func (s *extractionStore) Get(ctx context.Context, id string) (*domain.Extraction, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+extractionColumns+` FROM extractions WHERE id = ?`, id)
	return scanExtraction(row)
}

// List returns extractions, newest first.
func (s *extractionStore) List(ctx context.Context, limit int) ([]domain.Extraction, error) {
	query := `SELECT ` + extractionColumns + ` FROM extractions ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing extractions: %w", err)
	}
	defer rows.Close()

	var result []domain.Extraction
	for rows.Next() {
		e, err := scanExtraction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

// Latest returns the newest extraction for ref.
func (s *extractionStore) Latest(ctx context.Context, ref string) (*domain.Extraction, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+extractionColumns+` FROM extractions
		WHERE ref = ? ORDER BY created_at DESC, id DESC LIMIT 1
	`, ref)
	return scanExtraction(row)
}

// Delete removes an extraction.
func (s *extractionStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, `DELETE FROM extractions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting extraction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting extraction: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanExtraction(row scanner) (*domain.Extraction, error) {
	var (
		e          domain.Extraction
		strategy   string
		fieldsJSON string
		createdAt  string
	)
	if err := row.Scan(&e.ID, &e.Ref, &strategy, &e.Questions, &fieldsJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning extraction: %w", err)
	}

	e.Strategy = domain.LocateStrategy(strategy)
	e.Fields = domain.NewFieldMap()
	if err := json.Unmarshal([]byte(fieldsJSON), e.Fields); err != nil {
		return nil, fmt.Errorf("unmarshalling fields: %w", err)
	}
	// RFC3339Nano also accepts a trimmed fraction, as returned from a
	// DATETIME column by databases created before the TEXT schema.
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	e.CreatedAt = t
	return &e, nil
}
