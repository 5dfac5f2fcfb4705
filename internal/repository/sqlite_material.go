package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mkovalenko/avatara/internal/db"
	"github.com/mkovalenko/avatara/internal/domain"
)

// SQLiteMaterialRepo implements MaterialRepo using a SQLite database.
type SQLiteMaterialRepo struct {
	db db.DBTX
}

// NewSQLiteMaterialRepo creates a new SQLiteMaterialRepo.
func NewSQLiteMaterialRepo(conn db.DBTX) *SQLiteMaterialRepo {
	return &SQLiteMaterialRepo{db: conn}
}

func (r *SQLiteMaterialRepo) Create(ctx context.Context, m *domain.TrainingMaterial) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO training_materials (id, avatar_id, type, title, url, path, size_bytes, mime_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.PersonaID, string(m.Type), m.Title, m.URL, m.Path, m.SizeBytes, m.MimeType,
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting training material: %w", err)
	}
	return nil
}

func (r *SQLiteMaterialRepo) GetByID(ctx context.Context, id string) (*domain.TrainingMaterial, error) {
	query := `SELECT id, avatar_id, type, title, url, path, size_bytes, mime_type, created_at
		FROM training_materials WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	m, err := scanMaterial(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("training material: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning training material: %w", err)
	}
	return m, nil
}

func (r *SQLiteMaterialRepo) ListByPersona(ctx context.Context, personaID string) ([]*domain.TrainingMaterial, error) {
	query := `SELECT id, avatar_id, type, title, url, path, size_bytes, mime_type, created_at
		FROM training_materials WHERE avatar_id = ? ORDER BY created_at ASC, rowid ASC`
	rows, err := r.db.QueryContext(ctx, query, personaID)
	if err != nil {
		return nil, fmt.Errorf("listing training materials: %w", err)
	}
	defer rows.Close()

	var out []*domain.TrainingMaterial
	for rows.Next() {
		m, err := scanMaterial(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning training material: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteMaterialRepo) CountByPersona(ctx context.Context, personaID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM training_materials WHERE avatar_id = ?`, personaID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting training materials: %w", err)
	}
	return n, nil
}

func (r *SQLiteMaterialRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM training_materials WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting training material: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("training material %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteMaterialRepo) DeleteByPersona(ctx context.Context, personaID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM training_materials WHERE avatar_id = ?`, personaID)
	if err != nil {
		return fmt.Errorf("deleting training materials for persona: %w", err)
	}
	return nil
}

func scanMaterial(scan func(dest ...any) error) (*domain.TrainingMaterial, error) {
	var m domain.TrainingMaterial
	var mtype, createdAt string
	err := scan(&m.ID, &m.PersonaID, &mtype, &m.Title, &m.URL, &m.Path, &m.SizeBytes, &m.MimeType, &createdAt)
	if err != nil {
		return nil, err
	}
	m.Type = domain.MaterialType(mtype)
	m.CreatedAt = parseTime(createdAt)
	return &m, nil
}
