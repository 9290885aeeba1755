package service_test

import (
	"testing"

	"github.com/clout-botaa/saas-mailer/internal/model"
	"github.com/clout-botaa/saas-mailer/internal/service"
)

func TestCleanupKeepsNewestSent(t *testing.T) {
	queueRepo := &dispatchQueueRepo{}
	for i := 1; i <= 9; i++ {
		m := pendingMsg(i, 1, "r@x.com")
		m.Status = model.StatusSent
		queueRepo.msgs = append(queueRepo.msgs, m)
	}

	cleaner := &service.RetentionService{Queue: queueRepo, Keep: 4}
	if err := cleaner.Cleanup(1); err != nil {
		t.Fatal(err)
	}

	if len(queueRepo.msgs) != 4 {
		t.Fatalf("expected 4 records kept, got %d", len(queueRepo.msgs))
	}
	// The 4 most recent by creation order survive.
	for _, m := range queueRepo.msgs {
		if m.ID < 6 {
			t.Errorf("old record %d should be deleted", m.ID)
		}
	}
}

func TestCleanupUnderThresholdDeletesNothing(t *testing.T) {
	queueRepo := &dispatchQueueRepo{}
	for i := 1; i <= 4; i++ {
		m := pendingMsg(i, 1, "r@x.com")
		m.Status = model.StatusSent
		queueRepo.msgs = append(queueRepo.msgs, m)
	}

	cleaner := &service.RetentionService{Queue: queueRepo, Keep: 4}
	if err := cleaner.Cleanup(1); err != nil {
		t.Fatal(err)
	}
	if len(queueRepo.deleted) != 0 {
		t.Errorf("expected no deletions, got %v", queueRepo.deleted)
	}
}

func TestCleanupIgnoresPendingAndFailed(t *testing.T) {
	queueRepo := &dispatchQueueRepo{}
	for i := 1; i <= 6; i++ {
		m := pendingMsg(i, 1, "r@x.com")
		m.Status = model.StatusSent
		queueRepo.msgs = append(queueRepo.msgs, m)
	}
	pending := pendingMsg(7, 1, "r@x.com")
	failed := pendingMsg(8, 1, "r@x.com")
	failed.Status = model.StatusFailed
	queueRepo.msgs = append(queueRepo.msgs, pending, failed)

	cleaner := &service.RetentionService{Queue: queueRepo, Keep: 4}
	if err := cleaner.Cleanup(1); err != nil {
		t.Fatal(err)
	}

	for _, id := range queueRepo.deleted {
		if id == 7 || id == 8 {
			t.Errorf("non-sent record %d must never be deleted", id)
		}
	}
	if len(queueRepo.deleted) != 2 {
		t.Errorf("expected 2 old sent records deleted, got %v", queueRepo.deleted)
	}
}
