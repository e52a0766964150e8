package sitemedia

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"academy-backend/internal/httpx"
	"academy-backend/internal/middleware"
	"academy-backend/internal/transport"
	"academy-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		val:     val,
		log:     log,
	}
}

func (h *Handler) PublicListHome(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.ListHomeMedia(ctx)
	if err != nil {
		log.Error("home media list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	transport.WriteData(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handler) PublicListCities(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.ListCityMedia(ctx)
	if err != nil {
		log.Error("cities media list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	transport.WriteData(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handler) AdminAddHome(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req AddHomeMediaRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin home media add: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("admin home media add: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.AddHomeMedia(ctx, req)
	if err != nil {
		log.Error("admin home media add: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin home media add: ok", slog.String("media_id", item.ID))
	transport.WriteData(w, http.StatusCreated, item)
}

func (h *Handler) AdminReorderHome(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req ReorderRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin home media reorder: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("admin home media reorder: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := h.service.ReorderHomeMedia(ctx, req.IDs); err != nil {
		if errors.Is(err, ErrNotFound) {
			transport.WriteError(w, http.StatusNotFound, "media item not found", nil)
			return
		}
		log.Error("admin home media reorder: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin home media reorder: ok", slog.Int("count", len(req.IDs)))
	transport.WriteMessage(w, http.StatusOK, "order updated")
}

func (h *Handler) AdminDeleteHome(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := h.service.DeleteHomeMedia(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			transport.WriteError(w, http.StatusNotFound, "media item not found", nil)
			return
		}
		log.Error("admin home media delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin home media delete: ok", slog.String("media_id", id))
	transport.WriteMessage(w, http.StatusOK, "media item deleted")
}

func (h *Handler) AdminSetCity(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	city := strings.TrimSpace(chi.URLParam(r, "city"))
	if city == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing city", nil)
		return
	}

	var req SetCityMediaRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin city media set: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("admin city media set: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.SetCityMedia(ctx, city, req)
	if err != nil {
		if errors.Is(err, ErrUnknownSlot) {
			log.Warn("admin city media set: unknown slot", slog.String("city", city))
			transport.WriteError(w, http.StatusBadRequest, "unknown city slot", nil)
			return
		}
		log.Error("admin city media set: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin city media set: ok", slog.String("city", city))
	transport.WriteData(w, http.StatusOK, item)
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
