package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mkovalenko/avatara/internal/db"
	"github.com/mkovalenko/avatara/internal/domain"
)

// SQLiteMessageRepo implements MessageRepo using a SQLite database.
type SQLiteMessageRepo struct {
	db db.DBTX
}

// NewSQLiteMessageRepo creates a new SQLiteMessageRepo.
func NewSQLiteMessageRepo(conn db.DBTX) *SQLiteMessageRepo {
	return &SQLiteMessageRepo{db: conn}
}

func (r *SQLiteMessageRepo) Create(ctx context.Context, turn *domain.ConversationTurn) error {
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO chat_messages (id, avatar_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		turn.ID, turn.PersonaID, string(turn.Role), turn.Text,
		turn.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting chat message: %w", err)
	}
	return nil
}

func (r *SQLiteMessageRepo) ListByPersona(ctx context.Context, personaID string) ([]domain.ConversationTurn, error) {
	query := `SELECT id, avatar_id, role, content, created_at
		FROM chat_messages WHERE avatar_id = ? ORDER BY created_at ASC, rowid ASC`
	rows, err := r.db.QueryContext(ctx, query, personaID)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	var out []domain.ConversationTurn
	for rows.Next() {
		var turn domain.ConversationTurn
		var role, createdAt string
		if err := rows.Scan(&turn.ID, &turn.PersonaID, &role, &turn.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		turn.Role = domain.TurnRole(role)
		turn.CreatedAt = parseTime(createdAt)
		out = append(out, turn)
	}
	return out, rows.Err()
}

func (r *SQLiteMessageRepo) DeleteByPersona(ctx context.Context, personaID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE avatar_id = ?`, personaID)
	if err != nil {
		return fmt.Errorf("deleting chat messages for persona: %w", err)
	}
	return nil
}
