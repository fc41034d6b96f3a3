package auth

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/studybuddy/backend/internal/models"
)

func TestValidateRegistration(t *testing.T) {
	valid := models.RegisterRequest{Email: "ada@example.com", Name: "Ada Lovelace", Password: "correcthorse"}
	if msg := validateRegistration(valid); msg != "" {
		t.Fatalf("valid request rejected: %q", msg)
	}

	tests := []struct {
		name    string
		mutate  func(*models.RegisterRequest)
		wantSub string
	}{
		{"missing email", func(r *models.RegisterRequest) { r.Email = "" }, "required"},
		{"missing name", func(r *models.RegisterRequest) { r.Name = "" }, "required"},
		{"missing password", func(r *models.RegisterRequest) { r.Password = "" }, "required"},
		{"no at sign", func(r *models.RegisterRequest) { r.Email = "ada.example.com" }, "valid email"},
		{"at sign first", func(r *models.RegisterRequest) { r.Email = "@example.com" }, "valid email"},
		{"at sign last", func(r *models.RegisterRequest) { r.Email = "ada@" }, "valid email"},
		{"name too long", func(r *models.RegisterRequest) { r.Name = strings.Repeat("a", 101) }, "100 characters"},
		{"password too short", func(r *models.RegisterRequest) { r.Password = "short12" }, "at least 8"},
		{"password too long", func(r *models.RegisterRequest) { r.Password = strings.Repeat("p", 73) }, "72 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			msg := validateRegistration(req)
			if msg == "" {
				t.Fatal("expected rejection")
			}
			if !strings.Contains(msg, tt.wantSub) {
				t.Errorf("message %q missing %q", msg, tt.wantSub)
			}
		})
	}
}

// Validation failures must be rejected before any database work happens;
// the nil DB panics if the handler gets past validation.
func TestRegisterRejectsInvalidBodyBeforeStorage(t *testing.T) {
	h := NewHandler(nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"email": `},
		{"short password", `{"email":"ada@example.com","name":"Ada","password":"short"}`},
		{"bad email", `{"email":"not-an-email","name":"Ada","password":"correcthorse"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.Register(w, r)

			if w.Code != 400 {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestLoginRejectsEmptyFields(t *testing.T) {
	h := NewHandler(nil)

	r := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"email":"","password":""}`))
	w := httptest.NewRecorder()

	h.Login(w, r)

	if w.Code != 400 {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
