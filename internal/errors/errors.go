// internal/errors/errors.go
package appErrors

import "fmt"

// ErrUserNotFound is a sentinel error
type ErrUserNotFound struct {
    UserID int
}

func (e *ErrUserNotFound) Error() string {
    return fmt.Sprintf("user with ID %d not found", e.UserID)
}

// Helper constructor
func NewUserNotFound(id int) error {
    return &ErrUserNotFound{UserID: id}
}

// ErrWebhookNotFound is returned when a trigger token matches no hook
type ErrWebhookNotFound struct {
    Token string
}

func (e *ErrWebhookNotFound) Error() string {
    return fmt.Sprintf("webhook with token %q not found", e.Token)
}

func NewWebhookNotFound(token string) error {
    return &ErrWebhookNotFound{Token: token}
}

// SessionError wraps a failure to establish the outbound mail session.
// The whole batch for the user is abandoned when this is returned.
type SessionError struct {
    UserID int
    Err    error
}

func (e *SessionError) Error() string {
    return fmt.Sprintf("mail session for user %d: %v", e.UserID, e.Err)
}

func (e *SessionError) Unwrap() error {
    return e.Err
}

func NewSessionError(userID int, err error) error {
    return &SessionError{UserID: userID, Err: err}
}
