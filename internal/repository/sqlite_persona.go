package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mkovalenko/avatara/internal/db"
	"github.com/mkovalenko/avatara/internal/domain"
)

// SQLitePersonaRepo implements PersonaRepo using a SQLite database.
type SQLitePersonaRepo struct {
	db db.DBTX
}

// NewSQLitePersonaRepo creates a new SQLitePersonaRepo.
func NewSQLitePersonaRepo(conn db.DBTX) *SQLitePersonaRepo {
	return &SQLitePersonaRepo{db: conn}
}

const personaColumns = `id, coach_id, avatar_name, professional_headline, photo_url,
	certification_status, affiliations, social_linkedin, social_instagram, social_website,
	tone_warmth, tone_formality, tone_playfulness, tone_empathy, communication_style,
	coaching_approach, conversation_flow, key_moments, topics_allowed, topics_blocked,
	crisis_response, out_of_scope_response, is_published, completion_pct, created_at, updated_at`

func (r *SQLitePersonaRepo) Create(ctx context.Context, p *domain.Persona) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.UpdatedAt = p.CreatedAt

	query := `INSERT INTO avatars (` + personaColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.CoachID, p.Name, p.Headline, p.PhotoURL,
		string(p.Certification), encodeStrings(p.Affiliations), p.LinkedIn, p.Instagram, p.Website,
		p.ToneWarmth, p.ToneFormality, p.TonePlayfulness, p.ToneEmpathy, p.CommunicationStyle,
		p.CoachingApproach, p.ConversationFlow, p.KeyMoments,
		encodeStrings(p.AllowedTopics), encodeStrings(p.BlockedTopics),
		p.CrisisResponse, p.OutOfScopeResponse,
		boolToInt(p.IsPublished), p.CompletionPct,
		p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting persona: %w", err)
	}
	return nil
}

func (r *SQLitePersonaRepo) GetByID(ctx context.Context, id string) (*domain.Persona, error) {
	query := `SELECT ` + personaColumns + ` FROM avatars WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePersonaRepo) GetLatestByCoach(ctx context.Context, coachID string) (*domain.Persona, error) {
	query := `SELECT ` + personaColumns + ` FROM avatars
		WHERE coach_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, coachID))
}

func (r *SQLitePersonaRepo) Update(ctx context.Context, p *domain.Persona) error {
	p.UpdatedAt = time.Now().UTC()

	query := `UPDATE avatars SET
		avatar_name = ?, professional_headline = ?, photo_url = ?,
		certification_status = ?, affiliations = ?,
		social_linkedin = ?, social_instagram = ?, social_website = ?,
		tone_warmth = ?, tone_formality = ?, tone_playfulness = ?, tone_empathy = ?,
		communication_style = ?, coaching_approach = ?, conversation_flow = ?, key_moments = ?,
		topics_allowed = ?, topics_blocked = ?, crisis_response = ?, out_of_scope_response = ?,
		is_published = ?, completion_pct = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Headline, p.PhotoURL,
		string(p.Certification), encodeStrings(p.Affiliations),
		p.LinkedIn, p.Instagram, p.Website,
		p.ToneWarmth, p.ToneFormality, p.TonePlayfulness, p.ToneEmpathy,
		p.CommunicationStyle, p.CoachingApproach, p.ConversationFlow, p.KeyMoments,
		encodeStrings(p.AllowedTopics), encodeStrings(p.BlockedTopics),
		p.CrisisResponse, p.OutOfScopeResponse,
		boolToInt(p.IsPublished), p.CompletionPct,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating persona: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("persona %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLitePersonaRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM avatars WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting persona: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("persona %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLitePersonaRepo) scanOne(row *sql.Row) (*domain.Persona, error) {
	var p domain.Persona
	var cert, affiliations, allowed, blocked string
	var published int
	var createdAt, updatedAt string

	err := row.Scan(
		&p.ID, &p.CoachID, &p.Name, &p.Headline, &p.PhotoURL,
		&cert, &affiliations, &p.LinkedIn, &p.Instagram, &p.Website,
		&p.ToneWarmth, &p.ToneFormality, &p.TonePlayfulness, &p.ToneEmpathy, &p.CommunicationStyle,
		&p.CoachingApproach, &p.ConversationFlow, &p.KeyMoments, &allowed, &blocked,
		&p.CrisisResponse, &p.OutOfScopeResponse, &published, &p.CompletionPct,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("persona: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning persona: %w", err)
	}

	p.Certification = domain.CertificationStatus(cert)
	p.Affiliations = decodeStrings(affiliations)
	p.AllowedTopics = decodeStrings(allowed)
	p.BlockedTopics = decodeStrings(blocked)
	p.IsPublished = intToBool(published)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}
