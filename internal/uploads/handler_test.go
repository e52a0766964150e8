package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"academy-backend/internal/media"
	"academy-backend/internal/transport"
	"academy-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

type fakeUploader struct {
	folder   string
	filename string
}

func (f *fakeUploader) Upload(_ context.Context, folder, filename string, r io.Reader) (media.Asset, error) {
	f.folder = folder
	f.filename = filename
	_, _ = io.Copy(io.Discard, r)
	return media.Asset{
		URL:          "https://cdn.example.com/" + folder + "/" + filename,
		PublicID:     folder + "/abc123",
		ResourceType: "image",
	}, nil
}

type fakeDestroyer struct {
	destroyed []string
}

func (f *fakeDestroyer) Destroy(_ context.Context, _, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

func newTestHandler(uploader media.Uploader, destroyer media.Destroyer) *Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(uploader, destroyer, "academy", 10, validation.New(), log)
}

func withResource(req *http.Request, resource string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("resource", resource)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestUploadUnknownResourceRejected(t *testing.T) {
	h := newTestHandler(&fakeUploader{}, &fakeDestroyer{})

	body, contentType := multipartBody(t, "file", "x.png", "data")
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/unknownThing", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, withResource(req, "unknownThing"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var env transport.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Success || env.Error != "unknown resource" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestUploadRoutesToPrefixedFolder(t *testing.T) {
	uploader := &fakeUploader{}
	h := newTestHandler(uploader, &fakeDestroyer{})

	body, contentType := multipartBody(t, "file", "logo.png", "pngbytes")
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/leadingCompanies", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, withResource(req, "leadingCompanies"))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if uploader.folder != "academy/leading_companies" {
		t.Fatalf("folder = %q, want %q", uploader.folder, "academy/leading_companies")
	}
	if uploader.filename != "logo.png" {
		t.Fatalf("filename = %q", uploader.filename)
	}

	var env struct {
		Success bool        `json:"success"`
		Data    media.Asset `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.PublicID == "" || env.Data.URL == "" {
		t.Fatalf("asset = %+v", env.Data)
	}
}

func TestUploadMissingFileField(t *testing.T) {
	h := newTestHandler(&fakeUploader{}, &fakeDestroyer{})

	body, contentType := multipartBody(t, "wrong", "x.png", "data")
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/articles", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, withResource(req, "articles"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDeleteDestroysOrphan(t *testing.T) {
	destroyer := &fakeDestroyer{}
	h := newTestHandler(&fakeUploader{}, destroyer)

	req := httptest.NewRequest(http.MethodDelete, "/api/uploads/articles", strings.NewReader(`{"public_id":"academy/articles/abc123"}`))
	rec := httptest.NewRecorder()
	h.Delete(rec, withResource(req, "articles"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(destroyer.destroyed) != 1 || destroyer.destroyed[0] != "academy/articles/abc123" {
		t.Fatalf("destroyed = %v", destroyer.destroyed)
	}
}

func TestDeleteRequiresPublicID(t *testing.T) {
	h := newTestHandler(&fakeUploader{}, &fakeDestroyer{})

	req := httptest.NewRequest(http.MethodDelete, "/api/uploads/articles", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Delete(rec, withResource(req, "articles"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
