package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent, so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS conversation_logs (
		id                 TEXT PRIMARY KEY,
		created_at         TEXT NOT NULL,
		user_email         TEXT NOT NULL DEFAULT '',
		user_name          TEXT NOT NULL DEFAULT '',
		user_prompt        TEXT NOT NULL DEFAULT '',
		courses_count      INTEGER NOT NULL DEFAULT 0,
		user_courses_count INTEGER NOT NULL DEFAULT 0,
		cart_items_count   INTEGER NOT NULL DEFAULT 0,
		tasks_count        INTEGER NOT NULL DEFAULT 0,
		model_response     TEXT NOT NULL DEFAULT '',
		status             TEXT NOT NULL DEFAULT 'success'
		                   CHECK(status IN ('success','error')),
		error              TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_conversation_logs_created ON conversation_logs(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_conversation_logs_email ON conversation_logs(user_email)`,

	`CREATE TABLE IF NOT EXISTS conversation_actions (
		log_id   TEXT NOT NULL REFERENCES conversation_logs(id) ON DELETE CASCADE,
		seq      INTEGER NOT NULL,
		type     TEXT NOT NULL,
		executed INTEGER NOT NULL DEFAULT 0,
		payload  TEXT NOT NULL DEFAULT '{}',
		PRIMARY KEY (log_id, seq)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_conversation_actions_type ON conversation_actions(type)`,

	`ALTER TABLE conversation_logs ADD COLUMN prompt_style TEXT NOT NULL DEFAULT 'improved'`,
}
