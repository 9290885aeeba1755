package repository

import (
    "database/sql"
    "time"

    appErrors "github.com/clout-botaa/saas-mailer/internal/errors"
    "github.com/clout-botaa/saas-mailer/internal/model"
)

type WebhookRepositoryInterface interface {
    Create(h *model.Webhook) error
    GetByToken(token string) (*model.Webhook, error)
    GetByID(id int) (*model.Webhook, error)
    ListByUser(userID int) ([]*model.Webhook, error)
}

type WebhookRepository struct {
    DB *sql.DB
}

const webhookColumns = `id, user_id, token, name, action_type, template_subject, template_body, created_at`

func (r *WebhookRepository) Create(h *model.Webhook) error {
    h.CreatedAt = time.Now()
    if h.ActionType == "" {
        h.ActionType = "send_email"
    }
    query := `
        INSERT INTO webhooks (user_id, token, name, action_type, template_subject, template_body, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
    return r.DB.QueryRow(query,
        h.UserID, h.Token, h.Name, h.ActionType, h.TemplateSubject, h.TemplateBody, h.CreatedAt,
    ).Scan(&h.ID)
}

func scanWebhook(row interface{ Scan(...any) error }) (*model.Webhook, error) {
    var h model.Webhook
    err := row.Scan(
        &h.ID, &h.UserID, &h.Token, &h.Name, &h.ActionType,
        &h.TemplateSubject, &h.TemplateBody, &h.CreatedAt,
    )
    if err != nil {
        return nil, err
    }
    return &h, nil
}

func (r *WebhookRepository) GetByToken(token string) (*model.Webhook, error) {
    query := `SELECT ` + webhookColumns + ` FROM webhooks WHERE token=$1`
    h, err := scanWebhook(r.DB.QueryRow(query, token))
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewWebhookNotFound(token)
        }
        return nil, err
    }
    return h, nil
}

func (r *WebhookRepository) GetByID(id int) (*model.Webhook, error) {
    query := `SELECT ` + webhookColumns + ` FROM webhooks WHERE id=$1`
    h, err := scanWebhook(r.DB.QueryRow(query, id))
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil // not found
        }
        return nil, err
    }
    return h, nil
}

func (r *WebhookRepository) ListByUser(userID int) ([]*model.Webhook, error) {
    query := `SELECT ` + webhookColumns + ` FROM webhooks WHERE user_id=$1 ORDER BY id`
    rows, err := r.DB.Query(query, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    hooks := []*model.Webhook{}
    for rows.Next() {
        h, err := scanWebhook(rows)
        if err != nil {
            return nil, err
        }
        hooks = append(hooks, h)
    }
    return hooks, rows.Err()
}

var _ WebhookRepositoryInterface = (*WebhookRepository)(nil)
