// internal/mailer/mailer.go
package mailer

import (
    "gopkg.in/gomail.v2"
)

// Account holds one user's SMTP credentials.
type Account struct {
    Host     string
    Port     int
    Username string
    Password string
}

// Session is one authenticated SMTP connection. A batch sends all its
// messages through one session and closes it afterwards.
type Session interface {
    Send(from, to, subject, htmlBody string) error
    Close() error
}

// Mailer dials sessions. The dispatch engine takes this interface so
// tests can substitute an in-memory sender.
type Mailer interface {
    Dial(acc Account) (Session, error)
}

// SMTPMailer dials real SMTP sessions via gomail.
type SMTPMailer struct{}

func (SMTPMailer) Dial(acc Account) (Session, error) {
    d := gomail.NewDialer(acc.Host, acc.Port, acc.Username, acc.Password)
    sc, err := d.Dial()
    if err != nil {
        return nil, err
    }
    return &smtpSession{sc: sc}, nil
}

type smtpSession struct {
    sc gomail.SendCloser
}

func (s *smtpSession) Send(from, to, subject, htmlBody string) error {
    m := gomail.NewMessage()
    m.SetHeader("From", from)
    m.SetHeader("To", to)
    m.SetHeader("Subject", subject)
    m.SetBody("text/html", htmlBody)
    return gomail.Send(s.sc, m)
}

func (s *smtpSession) Close() error {
    return s.sc.Close()
}
