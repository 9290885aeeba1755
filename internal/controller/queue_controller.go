// internal/controller/queue_controller.go
package controller

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"

    appErrors "github.com/clout-botaa/saas-mailer/internal/errors"
    "github.com/clout-botaa/saas-mailer/internal/repository"
    "github.com/clout-botaa/saas-mailer/internal/service"
)

type QueueController struct {
    Users    repository.UserRepositoryInterface
    Queue    repository.QueueRepositoryInterface
    QueueSvc *service.QueueService
    Quota    *service.QuotaService
    Dispatch *service.DispatchService
}

// maxUploadMemory bounds the multipart form parse (32 MB).
const maxUploadMemory = 32 << 20

// Upload handles the upload-and-queue form: user_id, subject, body and
// a CSV contact file.
func (c *QueueController) Upload(w http.ResponseWriter, r *http.Request) {
    if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
        writeError(w, http.StatusBadRequest, "invalid multipart form")
        return
    }

    userID, err := strconv.Atoi(r.FormValue("user_id"))
    if err != nil {
        writeError(w, http.StatusBadRequest, "invalid user_id")
        return
    }
    subject := r.FormValue("subject")
    body := r.FormValue("body")
    if subject == "" || body == "" {
        writeError(w, http.StatusBadRequest, "subject and body are required")
        return
    }

    if _, err := c.Users.GetByID(userID); err != nil {
        var notFound *appErrors.ErrUserNotFound
        if errors.As(err, &notFound) {
            writeError(w, http.StatusNotFound, err.Error())
            return
        }
        writeError(w, http.StatusInternalServerError, err.Error())
        return
    }

    file, _, err := r.FormFile("file")
    if err != nil {
        writeError(w, http.StatusBadRequest, "contact file is required")
        return
    }
    defer file.Close()

    queued, err := c.QueueSvc.EnqueueContacts(userID, subject, body, file)
    if err != nil {
        writeError(w, http.StatusBadRequest, err.Error())
        return
    }

    writeJSON(w, http.StatusOK, map[string]interface{}{
        "status": "success",
        "queued": queued,
    })
}

// Stats reports the user's quota position and queue counts.
func (c *QueueController) Stats(w http.ResponseWriter, r *http.Request) {
    userID, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        writeError(w, http.StatusBadRequest, "invalid user id")
        return
    }

    user, err := c.Users.GetByID(userID)
    if err != nil {
        var notFound *appErrors.ErrUserNotFound
        if errors.As(err, &notFound) {
            writeError(w, http.StatusNotFound, err.Error())
            return
        }
        writeError(w, http.StatusInternalServerError, err.Error())
        return
    }

    remaining, err := c.Quota.Remaining(user)
    if err != nil {
        writeError(w, http.StatusInternalServerError, err.Error())
        return
    }

    counts, err := c.Queue.CountByStatus(userID)
    if err != nil {
        writeError(w, http.StatusInternalServerError, err.Error())
        return
    }

    writeJSON(w, http.StatusOK, map[string]interface{}{
        "status":      "success",
        "daily_limit": user.DailyLimit,
        "used_today":  user.UsedToday,
        "remaining":   remaining,
        "queue":       counts,
    })
}

// CronProcessor runs one dispatch pass. Meant to be hit by an external
// cron; the worker's own ticker is the usual trigger.
func (c *QueueController) CronProcessor(w http.ResponseWriter, r *http.Request) {
    result, err := c.Dispatch.Run()
    if err != nil {
        writeError(w, http.StatusInternalServerError, err.Error())
        return
    }

    writeJSON(w, http.StatusOK, map[string]interface{}{
        "status":     "success",
        "users":      len(result.Users),
        "total_sent": result.TotalSent,
    })
}
