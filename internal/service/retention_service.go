// internal/service/retention_service.go
package service

import (
    "github.com/clout-botaa/saas-mailer/internal/repository"
)

// RetentionService prunes old sent records so the queue table stays
// bounded. Pending and failed records are never touched.
type RetentionService struct {
    Queue repository.QueueRepositoryInterface
    Keep  int // newest sent records kept per user
}

func (s *RetentionService) Cleanup(userID int) error {
    ids, err := s.Queue.ListSentIDs(userID) // newest first
    if err != nil {
        return err
    }
    if len(ids) <= s.Keep {
        return nil
    }
    return s.Queue.DeleteByIDs(ids[s.Keep:])
}
