// internal/db/migrate.go
package db

import (
    "database/sql"
    "fmt"
    "log"
)

// Migrate makes sure the three tables exist. Idempotent; safe to run on
// every startup.
func Migrate(conn *sql.DB) error {
    const createUsersSQL = `
    CREATE TABLE IF NOT EXISTS users (
        id SERIAL PRIMARY KEY,
        email VARCHAR(255) NOT NULL UNIQUE,
        password VARCHAR(255) NOT NULL,
        smtp_user VARCHAR(255) NOT NULL,
        smtp_pass VARCHAR(255) NOT NULL,
        smtp_host VARCHAR(255) NOT NULL,
        smtp_port INT NOT NULL DEFAULT 587,
        daily_limit INT NOT NULL DEFAULT 500,
        used_today INT NOT NULL DEFAULT 0,
        last_reset TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );`

    if _, err := conn.Exec(createUsersSQL); err != nil {
        return fmt.Errorf("creating users table: %w", err)
    }

    const createQueueSQL = `
    CREATE TABLE IF NOT EXISTS email_queue (
        id SERIAL PRIMARY KEY,
        user_id INT NOT NULL REFERENCES users(id),
        recipient_email VARCHAR(255) NOT NULL,
        recipient_data JSONB NOT NULL DEFAULT '{}',
        template_subject TEXT NOT NULL,
        template_body TEXT NOT NULL,
        status VARCHAR(16) NOT NULL DEFAULT 'pending',
        error_log TEXT NOT NULL DEFAULT '',
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );`

    if _, err := conn.Exec(createQueueSQL); err != nil {
        return fmt.Errorf("creating email_queue table: %w", err)
    }

    const createQueueIndexSQL = `
    CREATE INDEX IF NOT EXISTS idx_email_queue_user_status ON email_queue(user_id, status);`
    if _, err := conn.Exec(createQueueIndexSQL); err != nil {
        log.Printf("⚠️ failed to create email_queue index: %v", err)
    }

    const createWebhooksSQL = `
    CREATE TABLE IF NOT EXISTS webhooks (
        id SERIAL PRIMARY KEY,
        user_id INT NOT NULL REFERENCES users(id),
        token VARCHAR(64) NOT NULL UNIQUE,
        name VARCHAR(255) NOT NULL,
        action_type VARCHAR(32) NOT NULL DEFAULT 'send_email',
        template_subject TEXT NOT NULL,
        template_body TEXT NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );`

    if _, err := conn.Exec(createWebhooksSQL); err != nil {
        return fmt.Errorf("creating webhooks table: %w", err)
    }

    log.Println("✅ Database schema ready")
    return nil
}
