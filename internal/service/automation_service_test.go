package service_test

import (
	"testing"
	"time"

	"github.com/clout-botaa/saas-mailer/internal/model"
	"github.com/clout-botaa/saas-mailer/internal/service"
)

type automationHookRepo struct {
	hooks map[int]*model.Webhook
}

func (m *automationHookRepo) Create(h *model.Webhook) error { return nil }

func (m *automationHookRepo) GetByToken(token string) (*model.Webhook, error) { return nil, nil }

func (m *automationHookRepo) GetByID(id int) (*model.Webhook, error) {
	return m.hooks[id], nil
}

func (m *automationHookRepo) ListByUser(userID int) ([]*model.Webhook, error) { return nil, nil }

func TestAutomationProcessSendsRenderedMail(t *testing.T) {
	users := newDispatchUserRepo(&model.User{
		ID: 1, Email: "owner@x.com", SMTPUser: "owner@x.com", LastReset: time.Now(),
	})
	hooks := &automationHookRepo{hooks: map[int]*model.Webhook{
		5: {ID: 5, UserID: 1, TemplateSubject: "Welcome {{NAME}}", TemplateBody: "<p>Hi {{NAME}}</p>"},
	}}
	m := &fakeMailer{}
	svc := &service.AutomationService{Hooks: hooks, Users: users, Mailer: m}

	err := svc.Process(service.AutomationJob{
		HookID: 5,
		Fields: map[string]string{"email": "lead@x.com", "name": "Ann"},
	})
	if err != nil {
		t.Fatal(err)
	}

	sent := m.allSent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(sent))
	}
	if sent[0].to != "lead@x.com" || sent[0].from != "owner@x.com" {
		t.Errorf("unexpected addressing: %+v", sent[0])
	}
	if sent[0].subject != "Welcome Ann" {
		t.Errorf("subject not rendered: %q", sent[0].subject)
	}
	if !m.sessions[0].closed {
		t.Error("session not closed")
	}
}

func TestAutomationProcessUnknownHookIsDropped(t *testing.T) {
	svc := &service.AutomationService{
		Hooks:  &automationHookRepo{hooks: map[int]*model.Webhook{}},
		Users:  newDispatchUserRepo(),
		Mailer: &fakeMailer{},
	}
	// Unknown hooks must not error, or the queue would retry forever.
	if err := svc.Process(service.AutomationJob{HookID: 99}); err != nil {
		t.Fatal(err)
	}
}

func TestAutomationProcessMissingRecipientIsDropped(t *testing.T) {
	users := newDispatchUserRepo(&model.User{ID: 1, LastReset: time.Now()})
	hooks := &automationHookRepo{hooks: map[int]*model.Webhook{
		5: {ID: 5, UserID: 1},
	}}
	m := &fakeMailer{}
	svc := &service.AutomationService{Hooks: hooks, Users: users, Mailer: m}

	if err := svc.Process(service.AutomationJob{HookID: 5, Fields: map[string]string{"name": "Ann"}}); err != nil {
		t.Fatal(err)
	}
	if len(m.allSent()) != 0 {
		t.Error("no mail expected without a recipient")
	}
}
