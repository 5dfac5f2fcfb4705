package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mkovalenko/avatara/internal/db"
	"github.com/mkovalenko/avatara/internal/domain"
)

// SQLiteCoachRepo implements CoachRepo using a SQLite database.
type SQLiteCoachRepo struct {
	db db.DBTX
}

// NewSQLiteCoachRepo creates a new SQLiteCoachRepo.
func NewSQLiteCoachRepo(conn db.DBTX) *SQLiteCoachRepo {
	return &SQLiteCoachRepo{db: conn}
}

func (r *SQLiteCoachRepo) Upsert(ctx context.Context, c *domain.Coach) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO coaches (id, email, created_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET email = excluded.email`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Email, c.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting coach: %w", err)
	}
	return nil
}

func (r *SQLiteCoachRepo) GetByID(ctx context.Context, id string) (*domain.Coach, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, email, created_at FROM coaches WHERE id = ?`, id))
}

func (r *SQLiteCoachRepo) GetByEmail(ctx context.Context, email string) (*domain.Coach, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, email, created_at FROM coaches WHERE email = ?`, email))
}

func (r *SQLiteCoachRepo) scanOne(row *sql.Row) (*domain.Coach, error) {
	var c domain.Coach
	var createdAt string
	if err := row.Scan(&c.ID, &c.Email, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("coach: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning coach: %w", err)
	}
	c.CreatedAt = parseTime(createdAt)
	return &c, nil
}
