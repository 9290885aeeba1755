// internal/service/queue_service.go
package service

import (
    "encoding/csv"
    "fmt"
    "io"
    "strings"

    "github.com/clout-botaa/saas-mailer/internal/model"
    "github.com/clout-botaa/saas-mailer/internal/repository"
)

// QueueService turns an uploaded contact list into pending queue rows.
type QueueService struct {
    Queue repository.QueueRepositoryInterface
}

// EnqueueContacts reads a CSV contact list (header row names the
// template fields; an "email" column is required) and bulk-inserts one
// pending message per contact. Returns the number queued.
func (s *QueueService) EnqueueContacts(userID int, subject, body string, r io.Reader) (int, error) {
    reader := csv.NewReader(r)
    reader.TrimLeadingSpace = true

    header, err := reader.Read()
    if err != nil {
        return 0, fmt.Errorf("reading header row: %w", err)
    }

    emailCol := -1
    for i, name := range header {
        header[i] = strings.TrimSpace(name)
        if strings.EqualFold(header[i], "email") {
            emailCol = i
        }
    }
    if emailCol < 0 {
        return 0, fmt.Errorf("contact list has no email column")
    }

    msgs := []*model.QueuedMessage{}
    for {
        record, err := reader.Read()
        if err == io.EOF {
            break
        }
        if err != nil {
            return 0, fmt.Errorf("reading contact row: %w", err)
        }

        recipient := strings.TrimSpace(record[emailCol])
        if recipient == "" {
            continue
        }

        data := map[string]string{}
        for i, v := range record {
            if i == emailCol || i >= len(header) {
                continue
            }
            data[strings.ToLower(header[i])] = strings.TrimSpace(v)
        }

        msgs = append(msgs, &model.QueuedMessage{
            UserID:          userID,
            RecipientEmail:  recipient,
            RecipientData:   data,
            TemplateSubject: subject,
            TemplateBody:    body,
        })
    }

    if len(msgs) == 0 {
        return 0, fmt.Errorf("contact list has no rows")
    }
    return s.Queue.BulkCreate(msgs)
}
