// internal/service/dispatch_service.go
package service

import (
    "fmt"
    "log"
    "time"

    appErrors "github.com/clout-botaa/saas-mailer/internal/errors"
    "github.com/clout-botaa/saas-mailer/internal/mailer"
    "github.com/clout-botaa/saas-mailer/internal/model"
    "github.com/clout-botaa/saas-mailer/internal/repository"
)

// DispatchService drains each user's pending queue up to the remaining
// quota, one user at a time, one message at a time. Runs are assumed not
// to overlap: the trigger interval must exceed the run duration, there
// is no cross-run lock on quota or queue rows.
type DispatchService struct {
    Users     repository.UserRepositoryInterface
    Queue     repository.QueueRepositoryInterface
    Quota     *QuotaService
    Mailer    mailer.Mailer
    Retention *RetentionService
    Reports   *ReportService

    // SendDelay is the pause after each successful send, to stay under
    // the provider's throttling radar. 2s in production.
    SendDelay time.Duration
}

// UserRunResult is the outcome of one user's batch within a run.
type UserRunResult struct {
    UserID    int
    Sent      int
    Failed    int
    Remaining int // allowance left after this batch
    Err       error
}

// RunResult aggregates one full pass over all users.
type RunResult struct {
    Users     []UserRunResult
    TotalSent int
}

// Run processes every user once. Per-user errors are recorded in the
// result and the run continues with the next user.
func (s *DispatchService) Run() (*RunResult, error) {
    users, err := s.Users.ListAll()
    if err != nil {
        return nil, err
    }

    result := &RunResult{}
    for _, u := range users {
        res := s.processUser(u)
        if res.Err != nil {
            log.Printf("⚠️ user %d: %v", u.ID, res.Err)
        }
        result.Users = append(result.Users, res)
        result.TotalSent += res.Sent
    }
    return result, nil
}

func (s *DispatchService) processUser(u *model.User) UserRunResult {
    res := UserRunResult{UserID: u.ID}

    remaining, err := s.Quota.Remaining(u)
    if err != nil {
        res.Err = err
        return res
    }
    res.Remaining = remaining
    if remaining <= 0 {
        return res
    }

    batch, err := s.Queue.ListPending(u.ID, remaining)
    if err != nil {
        res.Err = err
        return res
    }
    if len(batch) == 0 {
        return res
    }

    // One session for the whole batch.
    session, err := s.Mailer.Dial(mailer.Account{
        Host:     u.SMTPHost,
        Port:     u.SMTPPort,
        Username: u.SMTPUser,
        Password: u.SMTPPass,
    })
    if err != nil {
        res.Err = appErrors.NewSessionError(u.ID, err)
        s.Reports.Notify(u, "Send run could not start", err.Error())
        return res
    }

    var storeErr error
    for i, msg := range batch {
        subject := RenderTemplate(msg.TemplateSubject, msg.RecipientData)
        body := RenderTemplate(msg.TemplateBody, msg.RecipientData)

        if sendErr := session.Send(u.SMTPUser, msg.RecipientEmail, subject, body); sendErr != nil {
            if storeErr = s.Queue.UpdateStatus(msg.ID, model.StatusFailed, sendErr.Error()); storeErr != nil {
                break
            }
            res.Failed++
            continue
        }

        if storeErr = s.Queue.UpdateStatus(msg.ID, model.StatusSent, ""); storeErr != nil {
            // Sent but still pending in the store; it may be resent
            // next run. Accepted: delivery is best-effort, not
            // exactly-once.
            res.Sent++
            break
        }
        res.Sent++
        if i < len(batch)-1 {
            time.Sleep(s.SendDelay)
        }
    }
    session.Close()

    // Usage covers completed sends even when the batch aborted early.
    if err := s.Quota.RecordUsage(u, res.Sent); err != nil && storeErr == nil {
        storeErr = err
    }
    res.Remaining = remaining - res.Sent

    if storeErr != nil {
        res.Err = storeErr
        return res
    }

    if err := s.Retention.Cleanup(u.ID); err != nil {
        res.Err = err
        return res
    }

    s.Reports.Notify(u, "Send run finished",
        fmt.Sprintf("Sent %d emails this run (%d failed). Remaining allowance today: %d.",
            res.Sent, res.Failed, res.Remaining))
    return res
}
