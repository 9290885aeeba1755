// internal/service/automation_service.go
package service

import (
    "encoding/json"
    "fmt"
    "log"

    "github.com/clout-botaa/saas-mailer/internal/mailer"
    "github.com/clout-botaa/saas-mailer/internal/queue"
    "github.com/clout-botaa/saas-mailer/internal/repository"
)

// AutomationTopic is the queue carrying webhook-triggered send jobs.
const AutomationTopic = "automation_sends"

// AutomationJob is the wire payload between the hook endpoint and the
// worker. Fields come straight from the trigger request body; "email"
// is the recipient.
type AutomationJob struct {
    HookID int               `json:"hook_id"`
    Fields map[string]string `json:"fields"`
}

// AutomationService executes webhook-triggered direct sends. These are
// one-off mails outside the batch engine, so they are not quota-gated.
type AutomationService struct {
    Hooks  repository.WebhookRepositoryInterface
    Users  repository.UserRepositoryInterface
    Mailer mailer.Mailer
}

// Process renders the hook's templates with the job fields and sends
// one email through the hook owner's account.
func (s *AutomationService) Process(j AutomationJob) error {
    hook, err := s.Hooks.GetByID(j.HookID)
    if err != nil {
        return err
    }
    if hook == nil {
        log.Println("⚠️ automation job for unknown hook", j.HookID)
        return nil // no retry
    }

    user, err := s.Users.GetByID(hook.UserID)
    if err != nil {
        return err
    }

    recipient := j.Fields["email"]
    if recipient == "" {
        log.Println("⚠️ automation job without recipient for hook", j.HookID)
        return nil // no retry
    }

    subject := RenderTemplate(hook.TemplateSubject, j.Fields)
    body := RenderTemplate(hook.TemplateBody, j.Fields)

    session, err := s.Mailer.Dial(mailer.Account{
        Host:     user.SMTPHost,
        Port:     user.SMTPPort,
        Username: user.SMTPUser,
        Password: user.SMTPPass,
    })
    if err != nil {
        return fmt.Errorf("dialing mail session: %w", err)
    }
    defer session.Close()

    return session.Send(user.SMTPUser, recipient, subject, body)
}

// StartAutomationSubscriber wires the service to the queue.
func StartAutomationSubscriber(q queue.Queue, svc *AutomationService) error {
    return q.Subscribe(AutomationTopic, func(body []byte) error {
        var j AutomationJob
        if err := json.Unmarshal(body, &j); err != nil {
            log.Println("⚠️ invalid automation job:", err)
            return nil // malformed, drop without retry
        }
        return svc.Process(j)
    })
}
