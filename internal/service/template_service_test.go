package service_test

import (
	"testing"

	"github.com/clout-botaa/saas-mailer/internal/service"
)

func TestRenderTemplateReplacesFields(t *testing.T) {
	got := service.RenderTemplate("Hi {{NAME}}", map[string]string{"name": "Ann"})
	if got != "Hi Ann" {
		t.Errorf("expected %q, got %q", "Hi Ann", got)
	}
}

func TestRenderTemplateCaseInsensitiveKeys(t *testing.T) {
	fields := map[string]string{"Name": "Ann", "company": "Acme"}
	got := service.RenderTemplate("{{name}} / {{NAME}} @ {{Company}}", fields)
	if got != "Ann / Ann @ Acme" {
		t.Errorf("unexpected render: %q", got)
	}
}

func TestRenderTemplateNoFieldsUnchanged(t *testing.T) {
	tpl := "Hi {{NAME}}, welcome to {{COMPANY}}"
	if got := service.RenderTemplate(tpl, map[string]string{}); got != tpl {
		t.Errorf("expected unchanged template, got %q", got)
	}
}

func TestRenderTemplateEmptyValueLeavesToken(t *testing.T) {
	// An empty field must not blank the token; missing data should stay
	// visible in the sent content.
	got := service.RenderTemplate("Dear {{TITLE}} {{NAME}}", map[string]string{
		"title": "",
		"name":  "Ann",
	})
	if got != "Dear {{TITLE}} Ann" {
		t.Errorf("expected token kept for empty value, got %q", got)
	}
}

func TestRenderTemplateUnknownTokenLeftVerbatim(t *testing.T) {
	got := service.RenderTemplate("Hi {{NAME}} from {{CITY}}", map[string]string{"name": "Bob"})
	if got != "Hi Bob from {{CITY}}" {
		t.Errorf("expected unknown token verbatim, got %q", got)
	}
}

func TestRenderTemplateIdempotentWithoutTokens(t *testing.T) {
	s := "plain text, no placeholders at all"
	if got := service.RenderTemplate(s, map[string]string{"name": "Ann"}); got != s {
		t.Errorf("expected %q, got %q", s, got)
	}
}
