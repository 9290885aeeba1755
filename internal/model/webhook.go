// internal/model/webhook.go
package model

import "time"

// Webhook is an automation trigger owned by a user. The token is the
// public trigger key; the action templates are rendered with the
// trigger payload's fields.
type Webhook struct {
    ID              int       `db:"id" json:"id"`
    UserID          int       `db:"user_id" json:"user_id"`
    Token           string    `db:"token" json:"token"`
    Name            string    `db:"name" json:"name"`
    ActionType      string    `db:"action_type" json:"action_type"` // send_email
    TemplateSubject string    `db:"template_subject" json:"template_subject"`
    TemplateBody    string    `db:"template_body" json:"template_body"`
    CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
