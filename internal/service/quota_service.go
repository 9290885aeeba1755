// internal/service/quota_service.go
package service

import (
    "time"

    "github.com/clout-botaa/saas-mailer/internal/model"
    "github.com/clout-botaa/saas-mailer/internal/repository"
)

// QuotaService owns used_today and last_reset. Nothing else mutates them.
type QuotaService struct {
    Users  repository.UserRepositoryInterface
    Period time.Duration // rolling window, 24h in production

    // Now is the clock; nil means time.Now.
    Now func() time.Time

    // Optional event hooks. OnReset fires after a period rollover is
    // persisted, OnExhausted after usage reaches the limit.
    OnReset     func(u *model.User)
    OnExhausted func(u *model.User)
}

func (s *QuotaService) now() time.Time {
    if s.Now != nil {
        return s.Now()
    }
    return time.Now()
}

// Remaining returns the user's send allowance for the current period,
// resetting the counter first if a full period has passed.
func (s *QuotaService) Remaining(u *model.User) (int, error) {
    now := s.now()
    if now.Sub(u.LastReset) >= s.Period {
        if err := s.Users.ResetUsage(u.ID, now); err != nil {
            return 0, err
        }
        u.UsedToday = 0
        u.LastReset = now
        if s.OnReset != nil {
            s.OnReset(u)
        }
    }

    remaining := u.DailyLimit - u.UsedToday
    if remaining < 0 {
        remaining = 0
    }
    return remaining, nil
}

// RecordUsage adds count successful sends to the user's counter.
func (s *QuotaService) RecordUsage(u *model.User, count int) error {
    if count <= 0 {
        return nil
    }
    newTotal := u.UsedToday + count
    if err := s.Users.UpdateUsage(u.ID, newTotal); err != nil {
        return err
    }
    u.UsedToday = newTotal
    if newTotal >= u.DailyLimit && s.OnExhausted != nil {
        s.OnExhausted(u)
    }
    return nil
}
