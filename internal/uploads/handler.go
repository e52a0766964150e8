package uploads

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"academy-backend/internal/httpx"
	"academy-backend/internal/media"
	"academy-backend/internal/middleware"
	"academy-backend/internal/transport"
	"academy-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

// resourceFolders maps the URL resource segment to the media-host folder.
// Anything not listed here is rejected before touching the host.
var resourceFolders = map[string]string{
	"articles":         "articles",
	"courses":          "courses",
	"instructors":      "instructors",
	"accreditations":   "accreditations",
	"leadingCompanies": "leading_companies",
	"homeMedia":        "home_media",
	"citiesMedia":      "cities_media",
}

type DeleteRequest struct {
	PublicID     string `json:"public_id" validate:"required"`
	ResourceType string `json:"resource_type" validate:"omitempty,oneof=image video raw"`
}

type Handler struct {
	uploader     media.Uploader
	destroyer    media.Destroyer
	folderPrefix string
	maxBytes     int64
	val          *validation.Validator
	log          *slog.Logger
}

func NewHandler(uploader media.Uploader, destroyer media.Destroyer, folderPrefix string, maxUploadMB int64, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		uploader:     uploader,
		destroyer:    destroyer,
		folderPrefix: folderPrefix,
		maxBytes:     maxUploadMB << 20,
		val:          val,
		log:          log,
	}
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	resource := chi.URLParam(r, "resource")
	folder, ok := resourceFolders[resource]
	if !ok {
		log.Warn("upload: unknown resource", slog.String("resource", resource))
		transport.WriteError(w, http.StatusBadRequest, "unknown resource", nil)
		return
	}
	if h.uploader == nil {
		log.Warn("upload: media host not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "media host not configured", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		log.Warn("upload: body too large or malformed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, "file too large or malformed form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Warn("upload: missing file field")
		transport.WriteError(w, http.StatusBadRequest, "missing file field", nil)
		return
	}
	defer file.Close()

	if h.folderPrefix != "" {
		folder = fmt.Sprintf("%s/%s", h.folderPrefix, folder)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	asset, err := h.uploader.Upload(ctx, folder, header.Filename, file)
	if err != nil {
		log.Error("upload: media host error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "media host error", nil)
		return
	}

	log.Info("upload: ok",
		slog.String("resource", resource),
		slog.String("public_id", asset.PublicID),
	)
	transport.WriteData(w, http.StatusCreated, asset)
}

// Delete destroys an asset that never made it into a document, keeping the
// media host free of orphans when an admin abandons a form.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	resource := chi.URLParam(r, "resource")
	if _, ok := resourceFolders[resource]; !ok {
		log.Warn("upload delete: unknown resource", slog.String("resource", resource))
		transport.WriteError(w, http.StatusBadRequest, "unknown resource", nil)
		return
	}
	if h.destroyer == nil {
		transport.WriteError(w, http.StatusServiceUnavailable, "media host not configured", nil)
		return
	}

	var req DeleteRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("upload delete: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("upload delete: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := h.destroyer.Destroy(ctx, req.ResourceType, strings.TrimSpace(req.PublicID)); err != nil {
		log.Error("upload delete: media host error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "media host error", nil)
		return
	}

	log.Info("upload delete: ok", slog.String("public_id", req.PublicID))
	transport.WriteMessage(w, http.StatusOK, "asset deleted")
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
