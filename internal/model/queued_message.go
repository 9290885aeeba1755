// internal/model/queued_message.go
package model

import "time"

const (
    StatusPending = "pending"
    StatusSent    = "sent"
    StatusFailed  = "failed"
)

// QueuedMessage is one personalized email waiting in a user's queue.
// Status moves pending -> sent or pending -> failed, never back.
type QueuedMessage struct {
    ID              int               `db:"id" json:"id"`
    UserID          int               `db:"user_id" json:"user_id"`
    RecipientEmail  string            `db:"recipient_email" json:"recipient_email"`
    RecipientData   map[string]string `db:"recipient_data" json:"recipient_data"`
    TemplateSubject string            `db:"template_subject" json:"template_subject"`
    TemplateBody    string            `db:"template_body" json:"template_body"`
    Status          string            `db:"status" json:"status"`
    ErrorLog        string            `db:"error_log,omitempty" json:"error_log,omitempty"`
    CreatedAt       time.Time         `db:"created_at" json:"created_at"`
}
