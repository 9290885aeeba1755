// internal/db/db.go
package db

import (
    "database/sql"
    "log"

    _ "github.com/lib/pq"
)

// Connect opens and pings a Postgres connection. The handle is passed
// explicitly to repositories; there is no package-level connection.
func Connect(dsn string) (*sql.DB, error) {
    conn, err := sql.Open("postgres", dsn)
    if err != nil {
        return nil, err
    }

    if err = conn.Ping(); err != nil {
        return nil, err
    }

    log.Println("✅ Connected to database")
    return conn, nil
}
