package admin

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"academy-backend/internal/auth"
	"academy-backend/internal/middleware"
	"academy-backend/internal/transport"
	"academy-backend/internal/validation"

	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	users []User
}

func (f *fakeRepo) Create(_ context.Context, user User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeRepo) GetByUsername(_ context.Context, username string) (User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return User{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func testManager() *auth.Manager {
	return &auth.Manager{
		Secret:     []byte("test-secret"),
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
		Issuer:     "academy-backend",
	}
}

func newTestHandler(repo *fakeRepo) *Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(NewService(repo), testManager(), "", false, validation.New(), log)
}

func cookieByName(t *testing.T, res *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLogoutAlwaysSucceedsAndClearsCookies(t *testing.T) {
	h := newTestHandler(&fakeRepo{})

	// no session at all
	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var env transport.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success {
		t.Fatalf("success = false, want true")
	}

	res := rec.Result()
	access := cookieByName(t, res, middleware.AuthCookieName)
	if access == nil {
		t.Fatalf("access cookie not set")
	}
	if access.Value != "" || access.MaxAge != -1 {
		t.Fatalf("access cookie not cleared: value=%q maxage=%d", access.Value, access.MaxAge)
	}
	refresh := cookieByName(t, res, RefreshCookieName)
	if refresh == nil {
		t.Fatalf("refresh cookie not set")
	}
	if refresh.MaxAge != -1 {
		t.Fatalf("refresh cookie not expired")
	}
	if refresh.Path != "/api/admin" {
		t.Fatalf("refresh cookie path = %q", refresh.Path)
	}
}

func TestRegisterFirstUserOpenSecondGated(t *testing.T) {
	repo := &fakeRepo{}
	h := newTestHandler(repo)

	body := `{"username":"Admin","password":"strongpass1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("first register status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if len(repo.users) != 1 || repo.users[0].Username != "admin" {
		t.Fatalf("stored users = %+v", repo.users)
	}
	if repo.users[0].PasswordHash == "strongpass1" {
		t.Fatalf("password stored in clear")
	}

	// second registration without credentials
	body = `{"username":"other","password":"strongpass2"}`
	req = httptest.NewRequest(http.MethodPost, "/api/admin/register", strings.NewReader(body))
	rec = httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("second register status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if len(repo.users) != 1 {
		t.Fatalf("unauthorized register stored a user")
	}
}

func TestRegisterGatedAcceptsValidCookie(t *testing.T) {
	repo := &fakeRepo{}
	h := newTestHandler(repo)
	svc := NewService(repo)
	if _, err := svc.Register(context.Background(), RegisterRequest{Username: "admin", Password: "strongpass1"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	token, err := testManager().NewAccessToken("admin", "admin")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	body := `{"username":"second","password":"strongpass2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/register", strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: token})
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("gated register status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if len(repo.users) != 2 {
		t.Fatalf("users = %d, want 2", len(repo.users))
	}
}

func TestLoginSetsCookiesAndRejectsBadPassword(t *testing.T) {
	repo := &fakeRepo{}
	h := newTestHandler(repo)
	svc := NewService(repo)
	if _, err := svc.Register(context.Background(), RegisterRequest{Username: "admin", Password: "strongpass1"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"username":"admin","password":"strongpass1"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want %d", rec.Code, http.StatusOK)
	}
	res := rec.Result()
	access := cookieByName(t, res, middleware.AuthCookieName)
	if access == nil || access.Value == "" {
		t.Fatalf("access cookie missing after login")
	}
	if access.Path != "/" {
		t.Fatalf("access cookie path = %q", access.Path)
	}
	claims, err := testManager().Parse(access.Value)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != "admin" || claims.Username != "admin" {
		t.Fatalf("claims = %+v", claims)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"username":"admin","password":"wrongpassword"}`))
	rec = httptest.NewRecorder()
	h.Login(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRefreshRotatesFromRefreshCookie(t *testing.T) {
	h := newTestHandler(&fakeRepo{})

	refresh, err := testManager().NewRefreshToken("admin", "admin")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/refresh", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: refresh})
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, want %d", rec.Code, http.StatusOK)
	}
	if cookieByName(t, rec.Result(), middleware.AuthCookieName) == nil {
		t.Fatalf("refresh did not set a new access cookie")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/admin/refresh", nil)
	rec = httptest.NewRecorder()
	h.Refresh(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing cookie status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
