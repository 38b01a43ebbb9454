package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/PelvinDreams/auth-api/internal/model"
	"github.com/PelvinDreams/auth-api/internal/pkg/password"
	"github.com/PelvinDreams/auth-api/internal/store"
)

type mockUserStore struct {
	createFunc  func(ctx context.Context, u *model.User) error
	createCalls int
	lastCreated *model.User
}

func (m *mockUserStore) Create(ctx context.Context, u *model.User) error {
	m.createCalls++
	m.lastCreated = u
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}
	return nil
}

func newSignupRouter(users UserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(users, logger)

	r := gin.New()
	r.POST("/api/auth/signup", h.Signup)
	return r
}

func postSignup(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignup_Normal(t *testing.T) {
	users := &mockUserStore{}
	r := newSignupRouter(users)

	w := postSignup(t, r, map[string]string{
		"fullName": "Ada Lovelace",
		"email":    "Ada@Example.com",
		"password": "s3cret",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if users.createCalls != 1 {
		t.Fatalf("expected exactly one user to be persisted")
	}

	u := users.lastCreated
	if u.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.Role != model.DefaultRole {
		t.Fatalf("expected default role, got %q", u.Role)
	}
	if u.PasswordHash == "s3cret" {
		t.Fatalf("plaintext must never be stored")
	}
	if !password.Verify("s3cret", u.PasswordHash) {
		t.Fatalf("stored digest must verify against the plaintext")
	}
}

func TestSignup_MissingFields(t *testing.T) {
	for _, body := range []map[string]string{
		{},
		{"email": "a@b.com", "password": "x"},
		{"fullName": "A", "password": "x"},
		{"fullName": "A", "email": "a@b.com"},
		{"fullName": "A", "email": "not-an-email", "password": "x"},
	} {
		users := &mockUserStore{}
		r := newSignupRouter(users)

		w := postSignup(t, r, body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %v: expected 400, got %d", body, w.Code)
		}
		if users.createCalls != 0 {
			t.Fatalf("body %v: no record may be persisted", body)
		}
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	seen := map[string]bool{}
	users := &mockUserStore{
		createFunc: func(ctx context.Context, u *model.User) error {
			if seen[u.Email] {
				return store.ErrConflict
			}
			seen[u.Email] = true
			return nil
		},
	}
	r := newSignupRouter(users)

	body := map[string]string{
		"fullName": "Ada",
		"email":    "ada@example.com",
		"password": "s3cret",
	}
	if w := postSignup(t, r, body); w.Code != http.StatusCreated {
		t.Fatalf("first signup: expected 201, got %d", w.Code)
	}
	if w := postSignup(t, r, body); w.Code != http.StatusConflict {
		t.Fatalf("second signup: expected 409, got %d", w.Code)
	}
	if len(seen) != 1 {
		t.Fatalf("expected a single record, got %d", len(seen))
	}
}

func TestSignup_StoreFailure(t *testing.T) {
	users := &mockUserStore{
		createFunc: func(ctx context.Context, u *model.User) error {
			return context.DeadlineExceeded
		},
	}
	r := newSignupRouter(users)

	w := postSignup(t, r, map[string]string{
		"fullName": "Ada",
		"email":    "ada@example.com",
		"password": "s3cret",
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	// 内部错误细节不能回显给客户端
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp["error"] != "signup failed" {
		t.Fatalf("expected generic error body, got %q", resp["error"])
	}
}
