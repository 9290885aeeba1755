package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/clout-botaa/saas-mailer/internal/controller"
	appErrors "github.com/clout-botaa/saas-mailer/internal/errors"
	"github.com/clout-botaa/saas-mailer/internal/model"
	"github.com/clout-botaa/saas-mailer/internal/queue"
	"github.com/clout-botaa/saas-mailer/internal/service"
)

type mockHookRepo struct {
	hooks []*model.Webhook
}

func (m *mockHookRepo) Create(h *model.Webhook) error {
	h.ID = len(m.hooks) + 1
	m.hooks = append(m.hooks, h)
	return nil
}

func (m *mockHookRepo) GetByToken(token string) (*model.Webhook, error) {
	for _, h := range m.hooks {
		if h.Token == token {
			return h, nil
		}
	}
	return nil, appErrors.NewWebhookNotFound(token)
}

func (m *mockHookRepo) GetByID(id int) (*model.Webhook, error) {
	for _, h := range m.hooks {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, nil
}

func (m *mockHookRepo) ListByUser(userID int) ([]*model.Webhook, error) { return nil, nil }

func hookRouter(ctrl *controller.HookController) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/api/hooks", ctrl.CreateHook)
	r.Post("/api/hooks/{token}/trigger", ctrl.TriggerHook)
	return r
}

func TestCreateHookGeneratesToken(t *testing.T) {
	hooks := &mockHookRepo{}
	users := &mockUserRepo{byEmail: map[string]*model.User{
		"u@x.com": {ID: 1, Email: "u@x.com"},
	}}
	ctrl := &controller.HookController{Hooks: hooks, Users: users, Queue: queue.NewInMemoryQueue()}

	body, _ := json.Marshal(map[string]interface{}{
		"user_id":          1,
		"name":             "welcome",
		"template_subject": "Hi {{NAME}}",
		"template_body":    "<p>Hello {{NAME}}</p>",
	})
	req := httptest.NewRequest("POST", "/api/hooks", bytes.NewReader(body))
	w := httptest.NewRecorder()
	hookRouter(ctrl).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(hooks.hooks) != 1 || hooks.hooks[0].Token == "" {
		t.Fatal("hook not created with a token")
	}
	if hooks.hooks[0].ActionType != "send_email" {
		t.Errorf("expected default action type, got %q", hooks.hooks[0].ActionType)
	}
}

func TestTriggerHookQueuesJob(t *testing.T) {
	hooks := &mockHookRepo{hooks: []*model.Webhook{
		{ID: 3, UserID: 1, Token: "tok-123", TemplateSubject: "Hi {{NAME}}", TemplateBody: "b"},
	}}

	q := queue.NewInMemoryQueue()
	jobs := make(chan service.AutomationJob, 1)
	q.Subscribe(service.AutomationTopic, func(body []byte) error {
		var j service.AutomationJob
		if err := json.Unmarshal(body, &j); err != nil {
			return err
		}
		jobs <- j
		return nil
	})

	ctrl := &controller.HookController{Hooks: hooks, Users: &mockUserRepo{}, Queue: q}

	body, _ := json.Marshal(map[string]string{"email": "lead@x.com", "name": "Ann"})
	req := httptest.NewRequest("POST", "/api/hooks/tok-123/trigger", bytes.NewReader(body))
	w := httptest.NewRecorder()
	hookRouter(ctrl).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	j := <-jobs
	if j.HookID != 3 {
		t.Errorf("expected hook id 3, got %d", j.HookID)
	}
	if j.Fields["name"] != "Ann" || j.Fields["email"] != "lead@x.com" {
		t.Errorf("payload fields not forwarded: %+v", j.Fields)
	}
}

func TestTriggerHookUnknownToken(t *testing.T) {
	ctrl := &controller.HookController{
		Hooks: &mockHookRepo{},
		Users: &mockUserRepo{},
		Queue: queue.NewInMemoryQueue(),
	}

	body, _ := json.Marshal(map[string]string{"email": "lead@x.com"})
	req := httptest.NewRequest("POST", "/api/hooks/nope/trigger", bytes.NewReader(body))
	w := httptest.NewRecorder()
	hookRouter(ctrl).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestTriggerHookRequiresRecipient(t *testing.T) {
	hooks := &mockHookRepo{hooks: []*model.Webhook{{ID: 1, Token: "tok-123"}}}
	ctrl := &controller.HookController{Hooks: hooks, Users: &mockUserRepo{}, Queue: queue.NewInMemoryQueue()}

	body, _ := json.Marshal(map[string]string{"name": "Ann"})
	req := httptest.NewRequest("POST", "/api/hooks/tok-123/trigger", bytes.NewReader(body))
	w := httptest.NewRecorder()
	hookRouter(ctrl).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing email field, got %d", w.Code)
	}
}
