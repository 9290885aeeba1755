// internal/controller/hook_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "net/http"

    "github.com/go-chi/chi/v5"
    "github.com/google/uuid"

    appErrors "github.com/clout-botaa/saas-mailer/internal/errors"
    "github.com/clout-botaa/saas-mailer/internal/model"
    "github.com/clout-botaa/saas-mailer/internal/queue"
    "github.com/clout-botaa/saas-mailer/internal/repository"
    "github.com/clout-botaa/saas-mailer/internal/service"
)

type HookController struct {
    Hooks repository.WebhookRepositoryInterface
    Users repository.UserRepositoryInterface
    Queue queue.Queue
}

func (c *HookController) CreateHook(w http.ResponseWriter, r *http.Request) {
    var body struct {
        UserID          int    `json:"user_id"`
        Name            string `json:"name"`
        ActionType      string `json:"action_type"`
        TemplateSubject string `json:"template_subject"`
        TemplateBody    string `json:"template_body"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        writeError(w, http.StatusBadRequest, "invalid body")
        return
    }
    if body.Name == "" || body.TemplateSubject == "" || body.TemplateBody == "" {
        writeError(w, http.StatusBadRequest, "name, template_subject and template_body are required")
        return
    }

    if _, err := c.Users.GetByID(body.UserID); err != nil {
        var notFound *appErrors.ErrUserNotFound
        if errors.As(err, &notFound) {
            writeError(w, http.StatusNotFound, err.Error())
            return
        }
        writeError(w, http.StatusInternalServerError, err.Error())
        return
    }

    hook := &model.Webhook{
        UserID:          body.UserID,
        Token:           uuid.NewString(),
        Name:            body.Name,
        ActionType:      body.ActionType,
        TemplateSubject: body.TemplateSubject,
        TemplateBody:    body.TemplateBody,
    }
    if err := c.Hooks.Create(hook); err != nil {
        writeError(w, http.StatusInternalServerError, err.Error())
        return
    }

    writeJSON(w, http.StatusOK, map[string]interface{}{
        "status": "success",
        "hook":   hook,
    })
}

// TriggerHook accepts an arbitrary JSON object of string fields and
// queues one automation send. The payload must carry the recipient in
// an "email" field.
func (c *HookController) TriggerHook(w http.ResponseWriter, r *http.Request) {
    token := chi.URLParam(r, "token")

    hook, err := c.Hooks.GetByToken(token)
    if err != nil {
        var notFound *appErrors.ErrWebhookNotFound
        if errors.As(err, &notFound) {
            writeError(w, http.StatusNotFound, "unknown hook")
            return
        }
        writeError(w, http.StatusInternalServerError, err.Error())
        return
    }

    var fields map[string]string
    if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
        writeError(w, http.StatusBadRequest, "invalid body")
        return
    }
    if fields["email"] == "" {
        writeError(w, http.StatusBadRequest, "payload must include an email field")
        return
    }

    job, _ := json.Marshal(service.AutomationJob{HookID: hook.ID, Fields: fields})
    if err := c.Queue.Publish(service.AutomationTopic, job); err != nil {
        writeError(w, http.StatusInternalServerError, err.Error())
        return
    }

    writeJSON(w, http.StatusOK, map[string]string{
        "status":  "success",
        "message": "automation queued",
    })
}
