package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/AbrahamLara/chat-app-backend/config"
	"github.com/AbrahamLara/chat-app-backend/internal/domain/user"
	"github.com/AbrahamLara/chat-app-backend/internal/services"
	"github.com/AbrahamLara/chat-app-backend/internal/transport/httpdto"
	apperrors "github.com/AbrahamLara/chat-app-backend/pkg/errors"
)

type memUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uuid.UUID]*user.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, u *user.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return apperrors.ErrAlreadyExists
		}
	}
	clone := *u
	m.users[u.ID] = &clone
	return nil
}

func (m *memUserRepo) SetPassword(ctx context.Context, id uuid.UUID, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (m *memUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, apperrors.ErrNotFound
	}
	return *u, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return user.User{}, apperrors.ErrNotFound
}

func (m *memUserRepo) ListUsers(ctx context.Context) ([]user.User, error) {
	result := make([]user.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func newAuthRouter() (*gin.Engine, *memUserRepo) {
	gin.SetMode(gin.TestMode)
	repo := newMemUserRepo()
	svc := services.NewAuthService(repo, &config.Config{
		JWTSecret:    "test-secret",
		JWTExpiryMin: 60,
		BcryptCost:   bcrypt.MinCost,
	})
	h := NewAuthHandler(svc)

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	return r, repo
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) httpdto.Response[map[string]any] {
	t.Helper()
	var resp httpdto.Response[map[string]any]
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestRegisterEndpoint(t *testing.T) {
	r, repo := newAuthRouter()

	w := doJSON(t, r, http.MethodPost, "/register", httpdto.RegisterRequest{
		Name: "A", Email: "a@x.com", Password: "password1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	if !resp.Success || resp.Data["message"] != httpdto.RegisterSucceeded {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(repo.users) != 1 {
		t.Errorf("expected one persisted user, got %d", len(repo.users))
	}
}

func TestRegisterEndpointDuplicateEmail(t *testing.T) {
	r, _ := newAuthRouter()

	doJSON(t, r, http.MethodPost, "/register", httpdto.RegisterRequest{Name: "A", Email: "a@x.com", Password: "password1"})
	w := doJSON(t, r, http.MethodPost, "/register", httpdto.RegisterRequest{Name: "B", Email: "a@x.com", Password: "password2"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != httpdto.CodeEmailInUse {
		t.Errorf("expected code %s, got %s", httpdto.CodeEmailInUse, resp.Code)
	}
}

func TestRegisterEndpointValidation(t *testing.T) {
	r, _ := newAuthRouter()

	w := doJSON(t, r, http.MethodPost, "/register", httpdto.RegisterRequest{Name: "A", Email: "not-an-email", Password: "short"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Fields["email"] == "" || resp.Fields["password"] == "" {
		t.Errorf("expected field errors for email and password, got %v", resp.Fields)
	}
}

func TestLoginEndpoint(t *testing.T) {
	r, _ := newAuthRouter()
	doJSON(t, r, http.MethodPost, "/register", httpdto.RegisterRequest{Name: "A", Email: "a@x.com", Password: "password1"})

	w := doJSON(t, r, http.MethodPost, "/login", httpdto.LoginRequest{Email: "a@x.com", Password: "password1"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	if token, _ := resp.Data["token"].(string); token == "" {
		t.Error("expected a token in the login response")
	}
}

func TestLoginEndpointWrongPassword(t *testing.T) {
	r, _ := newAuthRouter()
	doJSON(t, r, http.MethodPost, "/register", httpdto.RegisterRequest{Name: "A", Email: "a@x.com", Password: "password1"})

	w := doJSON(t, r, http.MethodPost, "/login", httpdto.LoginRequest{Email: "a@x.com", Password: "wrong"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != httpdto.CodeInvalidCredentials {
		t.Errorf("expected code %s, got %s", httpdto.CodeInvalidCredentials, resp.Code)
	}
}

func TestLoginEndpointUnknownEmail(t *testing.T) {
	r, _ := newAuthRouter()

	w := doJSON(t, r, http.MethodPost, "/login", httpdto.LoginRequest{Email: "nobody@x.com", Password: "password1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != httpdto.CodeInvalidEmail {
		t.Errorf("expected code %s, got %s", httpdto.CodeInvalidEmail, resp.Code)
	}
}

func TestRegisterEndpointMalformedJSON(t *testing.T) {
	r, _ := newAuthRouter()

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
