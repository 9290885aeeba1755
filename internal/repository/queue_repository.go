package repository

import (
    "database/sql"
    "encoding/json"
    "fmt"
    "time"

    "github.com/lib/pq"

    "github.com/clout-botaa/saas-mailer/internal/model"
)

type QueueRepositoryInterface interface {
    BulkCreate(msgs []*model.QueuedMessage) (int, error)
    ListPending(userID, limit int) ([]*model.QueuedMessage, error)
    UpdateStatus(id int, status, errorLog string) error
    ListSentIDs(userID int) ([]int, error)
    DeleteByIDs(ids []int) error
    CountByStatus(userID int) (map[string]int, error)
}

// DBTX is the slice of *sql.DB the queue repository uses. Tests
// substitute it to observe the statements without a database.
type DBTX interface {
    Exec(query string, args ...interface{}) (sql.Result, error)
    Query(query string, args ...interface{}) (*sql.Rows, error)
}

type QueueRepository struct {
    DB DBTX
    // ChunkSize bounds the rows per INSERT; 0 means the default of 100.
    ChunkSize int
}

const defaultChunkSize = 100

// BulkCreate inserts pending messages in chunks and returns the number
// of rows written. A failed chunk stops the insert; earlier chunks stay.
func (r *QueueRepository) BulkCreate(msgs []*model.QueuedMessage) (int, error) {
    chunk := r.ChunkSize
    if chunk <= 0 {
        chunk = defaultChunkSize
    }

    total := 0
    for start := 0; start < len(msgs); start += chunk {
        end := start + chunk
        if end > len(msgs) {
            end = len(msgs)
        }
        n, err := r.insertChunk(msgs[start:end])
        total += n
        if err != nil {
            return total, err
        }
    }
    return total, nil
}

func (r *QueueRepository) insertChunk(msgs []*model.QueuedMessage) (int, error) {
    if len(msgs) == 0 {
        return 0, nil
    }

    now := time.Now()
    query := `INSERT INTO email_queue (user_id, recipient_email, recipient_data, template_subject, template_body, status, error_log, created_at) VALUES `
    args := []interface{}{}
    argPos := 1

    for i, m := range msgs {
        m.Status = model.StatusPending
        m.CreatedAt = now

        data, err := json.Marshal(m.RecipientData)
        if err != nil {
            return 0, fmt.Errorf("encoding recipient data: %w", err)
        }

        if i > 0 {
            query += ", "
        }
        query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, 'pending', '', $%d)",
            argPos, argPos+1, argPos+2, argPos+3, argPos+4, argPos+5)
        args = append(args, m.UserID, m.RecipientEmail, data, m.TemplateSubject, m.TemplateBody, m.CreatedAt)
        argPos += 6
    }

    res, err := r.DB.Exec(query, args...)
    if err != nil {
        return 0, err
    }
    n, _ := res.RowsAffected()
    return int(n), nil
}

// ListPending fetches up to limit pending messages for the user in
// insertion order, so older entries are never starved.
func (r *QueueRepository) ListPending(userID, limit int) ([]*model.QueuedMessage, error) {
    query := `
        SELECT id, user_id, recipient_email, recipient_data, template_subject, template_body, status, error_log, created_at
        FROM email_queue
        WHERE user_id=$1 AND status='pending'
        ORDER BY id
        LIMIT $2
    `
    rows, err := r.DB.Query(query, userID, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    msgs := []*model.QueuedMessage{}
    for rows.Next() {
        m := &model.QueuedMessage{}
        var data []byte
        if err := rows.Scan(&m.ID, &m.UserID, &m.RecipientEmail, &data, &m.TemplateSubject, &m.TemplateBody, &m.Status, &m.ErrorLog, &m.CreatedAt); err != nil {
            return nil, err
        }
        if len(data) > 0 {
            if err := json.Unmarshal(data, &m.RecipientData); err != nil {
                return nil, fmt.Errorf("decoding recipient data for message %d: %w", m.ID, err)
            }
        }
        msgs = append(msgs, m)
    }
    return msgs, rows.Err()
}

func (r *QueueRepository) UpdateStatus(id int, status, errorLog string) error {
    query := `UPDATE email_queue SET status=$1, error_log=$2 WHERE id=$3`
    _, err := r.DB.Exec(query, status, errorLog, id)
    return err
}

// ListSentIDs returns ids of sent messages for the user, newest first.
func (r *QueueRepository) ListSentIDs(userID int) ([]int, error) {
    query := `
        SELECT id FROM email_queue
        WHERE user_id=$1 AND status='sent'
        ORDER BY created_at DESC, id DESC
    `
    rows, err := r.DB.Query(query, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    ids := []int{}
    for rows.Next() {
        var id int
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    return ids, rows.Err()
}

func (r *QueueRepository) DeleteByIDs(ids []int) error {
    if len(ids) == 0 {
        return nil
    }
    query := `DELETE FROM email_queue WHERE id = ANY($1)`
    _, err := r.DB.Exec(query, pq.Array(ids))
    return err
}

func (r *QueueRepository) CountByStatus(userID int) (map[string]int, error) {
    query := `SELECT status, COUNT(*) FROM email_queue WHERE user_id=$1 GROUP BY status`
    rows, err := r.DB.Query(query, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    stats := map[string]int{"pending": 0, "sent": 0, "failed": 0}
    for rows.Next() {
        var status string
        var count int
        if err := rows.Scan(&status, &count); err != nil {
            return nil, err
        }
        stats[status] = count
    }
    return stats, rows.Err()
}

var _ QueueRepositoryInterface = (*QueueRepository)(nil)
