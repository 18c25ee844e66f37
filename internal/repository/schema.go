package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DDL is restricted to the dialect shared by Postgres and SQLite so the
// same repository runs against both drivers. The user table belongs to the
// platform's user service; it applies ON DELETE CASCADE for user_id from
// its side of the schema.
const notificationsSchema = `
CREATE TABLE IF NOT EXISTS notifications (
    id TEXT PRIMARY KEY,
    user_id INTEGER NOT NULL,
    kind VARCHAR(20) NOT NULL,
    title VARCHAR(200) NOT NULL,
    message TEXT NOT NULL,
    link VARCHAR(500) NOT NULL DEFAULT '',
    is_read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL,
    related_object_id TEXT NOT NULL DEFAULT '',
    related_object_type VARCHAR(50) NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_notifications_user_unread
    ON notifications(user_id, is_read);

CREATE INDEX IF NOT EXISTS idx_notifications_created_at
    ON notifications(created_at DESC);
`

// InitSchema applies the notifications schema to the database.
func InitSchema(db *sqlx.DB) error {
	if _, err := db.Exec(notificationsSchema); err != nil {
		return fmt.Errorf("applying notifications schema: %w", err)
	}
	return nil
}
