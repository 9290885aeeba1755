// internal/service/report_service.go
package service

import (
    "log"

    "github.com/clout-botaa/saas-mailer/internal/mailer"
    "github.com/clout-botaa/saas-mailer/internal/model"
)

// ReportService mails run summaries to the user's own address through
// the user's own SMTP account.
type ReportService struct {
    Mailer mailer.Mailer
}

// Notify sends one report email. A failed report is logged and dropped;
// it must never block the run or the next user.
func (s *ReportService) Notify(u *model.User, subject, message string) {
    session, err := s.Mailer.Dial(mailer.Account{
        Host:     u.SMTPHost,
        Port:     u.SMTPPort,
        Username: u.SMTPUser,
        Password: u.SMTPPass,
    })
    if err != nil {
        log.Printf("⚠️ report to user %d not sent: %v", u.ID, err)
        return
    }
    defer session.Close()

    if err := session.Send(u.SMTPUser, u.Email, subject, message); err != nil {
        log.Printf("⚠️ report to user %d not sent: %v", u.ID, err)
    }
}
