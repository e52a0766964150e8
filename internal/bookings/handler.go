package bookings

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"academy-backend/internal/captcha"
	"academy-backend/internal/httpx"
	"academy-backend/internal/middleware"
	"academy-backend/internal/transport"
	"academy-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

// CaptchaVerifier is what gates the public create endpoint; the score comes
// back even on rejection so it can be logged and surfaced.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (float64, error)
}

type Handler struct {
	service  *Service
	verifier CaptchaVerifier
	val      *validation.Validator
	log      *slog.Logger
}

func NewHandler(service *Service, verifier CaptchaVerifier, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		verifier: verifier,
		val:      val,
		log:      log,
	}
}

func (h *Handler) PublicCreate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("booking create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("booking create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	score, err := h.verifier.Verify(ctx, req.CaptchaToken, r.RemoteAddr)
	if err != nil {
		if errors.Is(err, captcha.ErrVerificationFailed) || errors.Is(err, captcha.ErrLowScore) {
			log.Warn("booking create: captcha rejected", slog.Float64("score", score))
			transport.WriteError(w, http.StatusForbidden, "captcha verification failed", map[string]string{
				"score": strconv.FormatFloat(score, 'f', 2, 64),
			})
			return
		}
		log.Error("booking create: captcha error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "captcha verification error", nil)
		return
	}

	item, err := h.service.Create(ctx, req, score)
	if err != nil {
		log.Error("booking create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("booking create: stored", slog.String("booking_id", item.ID), slog.Float64("score", score))
	transport.WriteData(w, http.StatusCreated, item)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	limit, offset, err := httpx.ParseLimitOffset(r.URL.Query(), 20, 100)
	if err != nil {
		log.Warn("admin bookings list: invalid query", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	filter := ListFilter{}
	if raw := strings.TrimSpace(r.URL.Query().Get("viewed")); raw != "" {
		viewed := raw == "true"
		filter.Viewed = &viewed
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, total, err := h.service.List(ctx, filter, limit, offset)
	if err != nil {
		log.Error("admin bookings list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin bookings list: ok", slog.Int("count", len(items)))
	transport.WriteData(w, http.StatusOK, map[string]interface{}{
		"items":  items,
		"limit":  limit,
		"offset": offset,
		"total":  total,
	})
}

func (h *Handler) AdminMarkViewed(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.MarkViewed(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			transport.WriteError(w, http.StatusNotFound, "booking not found", nil)
			return
		}
		log.Error("admin bookings viewed: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin bookings viewed: ok", slog.String("booking_id", id))
	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			transport.WriteError(w, http.StatusNotFound, "booking not found", nil)
			return
		}
		log.Error("admin bookings delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin bookings delete: ok", slog.String("booking_id", id))
	transport.WriteMessage(w, http.StatusOK, "booking deleted")
}

func (h *Handler) AdminUnreadCount(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := h.service.UnreadCount(ctx)
	if err != nil {
		log.Error("admin bookings unread: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	transport.WriteData(w, http.StatusOK, map[string]int64{"unread": count})
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
