package admin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"academy-backend/internal/auth"
	"academy-backend/internal/httpx"
	"academy-backend/internal/middleware"
	"academy-backend/internal/transport"
	"academy-backend/internal/validation"
)

// RefreshCookieName is scoped to the admin API prefix so the refresh token
// never rides along on public requests.
const RefreshCookieName = "admin_refresh_token"

type Handler struct {
	service      *Service
	manager      *auth.Manager
	adminKey     string
	cookieSecure bool
	val          *validation.Validator
	log          *slog.Logger
}

func NewHandler(service *Service, manager *auth.Manager, adminKey string, cookieSecure bool, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		service:      service,
		manager:      manager,
		adminKey:     adminKey,
		cookieSecure: cookieSecure,
		val:          val,
		log:          log,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req RegisterRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin register: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("admin register: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	hasUsers, err := h.service.HasUsers(ctx)
	if err != nil {
		log.Error("admin register: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	if hasUsers && !h.requestIsAdmin(r) {
		log.Warn("admin register: unauthorized", slog.String("username", req.Username))
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	user, err := h.service.Register(ctx, req)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			transport.WriteError(w, http.StatusConflict, "username already exists", nil)
			return
		}
		log.Error("admin register: error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin register: ok", slog.String("username", user.Username))
	transport.WriteData(w, http.StatusCreated, user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req LoginRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin login: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("admin login: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}
	if h.manager == nil || len(h.manager.Secret) == 0 {
		log.Warn("admin login: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	user, err := h.service.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Warn("admin login: invalid credentials", slog.String("username", req.Username))
			transport.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		log.Error("admin login: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if err := h.issueCookies(w, user.Username); err != nil {
		log.Error("admin login: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	log.Info("admin login: ok", slog.String("username", user.Username))
	transport.WriteData(w, http.StatusOK, map[string]string{
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	if h.manager == nil || len(h.manager.Secret) == 0 {
		log.Warn("admin refresh: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
		return
	}

	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		log.Warn("admin refresh: missing refresh token")
		transport.WriteError(w, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}

	claims, err := h.manager.Parse(cookie.Value)
	if err != nil || claims.Role != "admin" {
		log.Warn("admin refresh: invalid refresh token")
		transport.WriteError(w, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}

	if err := h.issueCookies(w, claims.Username); err != nil {
		log.Error("admin refresh: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	log.Info("admin refresh: ok", slog.String("username", claims.Username))
	transport.WriteMessage(w, http.StatusOK, "refreshed")
}

// Logout succeeds unconditionally: even with no session to end the cookies
// must come back expired.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	h.clearCookies(w)
	log.Info("admin logout: ok")
	transport.WriteMessage(w, http.StatusOK, "logged out")
}

func (h *Handler) issueCookies(w http.ResponseWriter, username string) error {
	access, err := h.manager.NewAccessToken(username, "admin")
	if err != nil {
		return err
	}
	refresh, err := h.manager.NewRefreshToken(username, "admin")
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    access,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.manager.AccessTTL.Seconds()),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    refresh,
		Path:     "/api/admin",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.manager.RefreshTTL.Seconds()),
	})
	return nil
}

func (h *Handler) clearCookies(w http.ResponseWriter) {
	expire := time.Now().Add(-1 * time.Hour)
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expire,
		MaxAge:   -1,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/api/admin",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expire,
		MaxAge:   -1,
	})
}

func (h *Handler) requestIsAdmin(r *http.Request) bool {
	if h.adminKey != "" && r.Header.Get("X-Admin-Key") == h.adminKey {
		return true
	}
	if h.manager == nil {
		return false
	}
	cookie, err := r.Cookie(middleware.AuthCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	claims, err := h.manager.Parse(cookie.Value)
	return err == nil && claims.Role == "admin"
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
