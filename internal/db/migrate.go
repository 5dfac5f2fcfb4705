package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent
// (CREATE ... IF NOT EXISTS), so re-running the full list is safe.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS coaches (
		id         TEXT PRIMARY KEY,
		email      TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS avatars (
		id                    TEXT PRIMARY KEY,
		coach_id              TEXT NOT NULL REFERENCES coaches(id) ON DELETE CASCADE,
		avatar_name           TEXT NOT NULL DEFAULT '',
		professional_headline TEXT NOT NULL DEFAULT '',
		photo_url             TEXT NOT NULL DEFAULT '',
		certification_status  TEXT NOT NULL DEFAULT 'none'
		                      CHECK(certification_status IN ('none','in-process','certified')),
		affiliations          TEXT NOT NULL DEFAULT '',
		social_linkedin       TEXT NOT NULL DEFAULT '',
		social_instagram      TEXT NOT NULL DEFAULT '',
		social_website        TEXT NOT NULL DEFAULT '',
		tone_warmth           INTEGER NOT NULL DEFAULT 50,
		tone_formality        INTEGER NOT NULL DEFAULT 50,
		tone_playfulness      INTEGER NOT NULL DEFAULT 50,
		tone_empathy          INTEGER NOT NULL DEFAULT 50,
		communication_style   TEXT NOT NULL DEFAULT '',
		coaching_approach     TEXT NOT NULL DEFAULT '',
		conversation_flow     TEXT NOT NULL DEFAULT '',
		key_moments           TEXT NOT NULL DEFAULT '',
		topics_allowed        TEXT NOT NULL DEFAULT '',
		topics_blocked        TEXT NOT NULL DEFAULT '',
		crisis_response       TEXT NOT NULL DEFAULT '',
		out_of_scope_response TEXT NOT NULL DEFAULT '',
		is_published          INTEGER NOT NULL DEFAULT 0,
		completion_pct        INTEGER NOT NULL DEFAULT 0,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_avatars_coach ON avatars(coach_id)`,

	`CREATE TABLE IF NOT EXISTS training_materials (
		id         TEXT PRIMARY KEY,
		avatar_id  TEXT NOT NULL REFERENCES avatars(id) ON DELETE CASCADE,
		type       TEXT NOT NULL CHECK(type IN ('link','document','video')),
		title      TEXT NOT NULL DEFAULT '',
		url        TEXT NOT NULL DEFAULT '',
		path       TEXT NOT NULL DEFAULT '',
		size_bytes INTEGER NOT NULL DEFAULT 0,
		mime_type  TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_materials_avatar ON training_materials(avatar_id)`,

	`CREATE TABLE IF NOT EXISTS chat_messages (
		id         TEXT PRIMARY KEY,
		avatar_id  TEXT NOT NULL REFERENCES avatars(id) ON DELETE CASCADE,
		role       TEXT NOT NULL CHECK(role IN ('user','assistant')),
		content    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_messages_avatar ON chat_messages(avatar_id)`,
}
